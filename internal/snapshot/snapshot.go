// Package snapshot reads and writes population snapshots in the graph_data format:
//
//	{"<id>": {"location": [x, y], "health": h}, ...}
//
// encoded as JSON or YAML. Every record is validated; a malformed record fails
// the whole snapshot with a domain.InvalidEntityError naming its ID.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"relocation-planner-service/internal/domain"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Record is the on-disk shape of one entity. Pointer fields distinguish a
// missing value from zero.
type Record struct {
	Location []float64 `json:"location" yaml:"location"`
	Health   *float64  `json:"health" yaml:"health"`
}

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes the snapshot at path.
func LoadFile(path string) (domain.Population, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: read %q: %w", path, err)
	}

	pop, err := Decode(bytes.NewReader(b), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", path, err)
	}
	return pop, nil
}

// Decode parses a snapshot from r.
func Decode(r io.Reader, format Format) (domain.Population, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("decode snapshot: unsupported format %q", format)
	}
}

func decodeJSON(r io.Reader) (domain.Population, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: parse json: %w", err)
	}

	records := make(map[string]Record, len(raw))
	for _, id := range sortedKeys(raw) {
		var rec Record
		if err := json.Unmarshal(raw[id], &rec); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", &domain.InvalidEntityError{ID: id, Reason: err.Error()})
		}
		records[id] = rec
	}

	return ToPopulation(records)
}

func decodeYAML(r io.Reader) (domain.Population, error) {
	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode snapshot: parse yaml: %w", err)
	}

	records := make(map[string]Record, len(raw))
	for _, id := range sortedKeys(raw) {
		node := raw[id]
		var rec Record
		if err := node.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", &domain.InvalidEntityError{ID: id, Reason: err.Error()})
		}
		records[id] = rec
	}

	return ToPopulation(records)
}

// ToPopulation validates records and converts them into a Population.
func ToPopulation(records map[string]Record) (domain.Population, error) {
	pop := make(domain.Population, len(records))

	for _, id := range sortedKeys(records) {
		e, err := records[id].toEntity(id)
		if err != nil {
			return nil, err
		}
		pop[id] = e
	}

	return pop, nil
}

func (r Record) toEntity(id string) (domain.Entity, error) {
	if r.Location == nil {
		return domain.Entity{}, &domain.InvalidEntityError{ID: id, Reason: "missing location"}
	}
	if len(r.Location) != 2 {
		return domain.Entity{}, &domain.InvalidEntityError{ID: id, Reason: fmt.Sprintf("location must have 2 coordinates, got %d", len(r.Location))}
	}
	if r.Health == nil {
		return domain.Entity{}, &domain.InvalidEntityError{ID: id, Reason: "missing health"}
	}

	e := domain.Entity{
		ID:       id,
		Position: domain.Position{X: r.Location[0], Y: r.Location[1]},
		Health:   *r.Health,
	}
	if err := e.Validate(); err != nil {
		return domain.Entity{}, err
	}
	return e, nil
}

// FromPopulation converts a population back into records, e.g. for export.
func FromPopulation(pop domain.Population) map[string]Record {
	out := make(map[string]Record, len(pop))
	for id, e := range pop {
		h := e.Health
		out[id] = Record{Location: e.Position.ToList(), Health: &h}
	}
	return out
}

// Encode writes pop to w; entities appear in ID order.
func Encode(w io.Writer, pop domain.Population, format Format) error {
	records := FromPopulation(pop)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	default:
		return fmt.Errorf("encode snapshot: unsupported format %q", format)
	}
	return nil
}

// WriteFile encodes pop to path in the format implied by its extension.
func WriteFile(path string, pop domain.Population) error {
	var buf bytes.Buffer
	if err := Encode(&buf, pop, FormatFromPath(path)); err != nil {
		return fmt.Errorf("write snapshot %q: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", path, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
