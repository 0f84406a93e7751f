package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"relocation-planner-service/internal/api/dto"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
	"relocation-planner-service/internal/ports"
	"strings"
)

type EntityHandler struct {
	Repo ports.PopulationRepository
}

// List returns the stored population sorted by ID.
// ?id=a,b narrows the result when the repository supports lookups by ID.
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids := parseIDs(r.URL.Query().Get("id"))

	var (
		pop domain.Population
		err error
	)
	if lookup, ok := h.Repo.(ports.PopulationLookup); ok && len(ids) > 0 {
		pop, err = lookup.ListEntitiesByID(r.Context(), ids)
	} else {
		pop, err = h.Repo.ListEntities(r.Context())
		if err == nil && len(ids) > 0 {
			pop = filterByID(pop, ids)
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEntity) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "list entities failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListEntitiesResponse{Entities: make([]dto.EntityResponse, 0, len(pop))}
	for _, id := range pop.IDs() {
		res.Entities = append(res.Entities, dto.NewEntityResponse(pop[id]))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func parseIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func filterByID(pop domain.Population, ids []string) domain.Population {
	out := make(domain.Population, len(ids))
	for _, id := range ids {
		if e, ok := pop[id]; ok {
			out[id] = e
		}
	}
	return out
}
