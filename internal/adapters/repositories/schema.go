package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/snapshot"
)

// SQL flavour of a connection; only placeholders and column types differ.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) floatType() string {
	if d == DialectPostgres {
		return "DOUBLE PRECISION"
	}
	return "REAL"
}

func (d Dialect) placeholders(n int) []any {
	out := make([]any, n)
	for i := range out {
		if d == DialectPostgres {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// Initialize the database schema.
// Coordinate and health columns are nullable so that partially written rows are
// reported as invalid entity records at read time instead of being hidden.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEntitiesQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS entities (
		entity_id TEXT PRIMARY KEY,
		x %[1]s,
		y %[1]s,
		health %[1]s
	);
	`, dialect.floatType())

	createLocationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_entities_location
	ON entities(x, y);
	`

	statements := []string{
		createEntitiesQuery,
		createLocationIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert every entity of pop in a single transaction.
func SeedPopulation(ctx context.Context, db *sql.DB, dialect Dialect, pop domain.Population) error {
	if db == nil {
		return errors.New("seed population: DB is nil")
	}

	if err := pop.Validate(); err != nil {
		return fmt.Errorf("seed population: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed population: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
	INSERT INTO entities (
		entity_id,
		x,
		y,
		health
	)
	VALUES (%s, %s, %s, %s)
	ON CONFLICT (entity_id) DO UPDATE
	SET x = EXCLUDED.x,
		y = EXCLUDED.y,
		health = EXCLUDED.health;
	`, dialect.placeholders(4)...)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed population: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range pop.IDs() {
		e := pop[id]
		if _, err := stmt.ExecContext(ctx, e.ID, e.Position.X, e.Position.Y, e.Health); err != nil {
			return fmt.Errorf("seed population: insert entity_id=%q: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed population: commit tx: %w", err)
	}

	return nil
}

// Populate the database from a graph_data snapshot file (JSON or YAML).
func SeedFromFile(ctx context.Context, db *sql.DB, dialect Dialect, path string) error {
	pop, err := snapshot.LoadFile(path)
	if err != nil {
		return fmt.Errorf("seed from file: %w", err)
	}

	if err := SeedPopulation(ctx, db, dialect, pop); err != nil {
		return fmt.Errorf("seed from file: %w", err)
	}

	return nil
}
