package services

import (
	"encoding/binary"
	"math"
	"relocation-planner-service/internal/domain"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes everything that determines a plan: the population, target,
// threshold and policy names. Entities are hashed in ID order so map iteration
// does not affect the result.
func Fingerprint(pop domain.Population, target domain.Position, threshold float64, orderPolicy, tieBreakPolicy string) string {
	h := xxhash.New()
	var buf [8]byte

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(s)
	}

	writeString(orderPolicy)
	writeString(tieBreakPolicy)
	writeFloat(target.X)
	writeFloat(target.Y)
	writeFloat(threshold)

	for _, id := range pop.IDs() {
		e := pop[id]
		writeString(id)
		writeFloat(e.Position.X)
		writeFloat(e.Position.Y)
		writeFloat(e.Health)
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
