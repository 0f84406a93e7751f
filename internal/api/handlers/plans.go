package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"relocation-planner-service/internal/api/dto"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
	"relocation-planner-service/internal/ports"
	"relocation-planner-service/internal/services"
	"relocation-planner-service/internal/snapshot"
)

// Planner parameters applied when a request omits them.
type PlannerDefaults struct {
	Target         domain.Position
	Threshold      float64
	OrderPolicy    string
	TieBreakPolicy string
}

type PlanHandler struct {
	Repo     ports.PopulationRepository
	Deps     services.Deps
	Defaults PlannerDefaults
}

// Plan computes a relocation plan over the stored population, or over the
// snapshot supplied inline in the request body.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.PlanPopulationRequest{
		Target:         h.Defaults.Target,
		Threshold:      h.Defaults.Threshold,
		OrderPolicy:    h.Defaults.OrderPolicy,
		TieBreakPolicy: h.Defaults.TieBreakPolicy,
	}
	if req.Target != nil {
		if len(req.Target) != 2 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("target must have 2 coordinates, got %d", len(req.Target)))
			return
		}
		svcReq.Target = domain.Position{X: req.Target[0], Y: req.Target[1]}
	}
	if req.Threshold != nil {
		svcReq.Threshold = *req.Threshold
	}
	if req.OrderPolicy != "" {
		svcReq.OrderPolicy = req.OrderPolicy
	}
	if req.TieBreakPolicy != "" {
		svcReq.TieBreakPolicy = req.TieBreakPolicy
	}

	var (
		res *services.PlanResult
		err error
	)
	if len(req.Population) > 0 && !bytes.Equal(bytes.TrimSpace(req.Population), []byte("null")) {
		pop, decErr := snapshot.Decode(bytes.NewReader(req.Population), snapshot.FormatJSON)
		if decErr != nil {
			writeError(w, r, http.StatusBadRequest, decErr.Error())
			return
		}
		res, err = services.PlanSnapshot(r.Context(), svcReq, pop, h.Deps)
	} else {
		if h.Repo == nil {
			writeError(w, r, http.StatusBadRequest, "population is required")
			return
		}
		res, err = services.PlanPopulation(r.Context(), svcReq, h.Repo, h.Deps)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEntity) || errors.Is(err, services.ErrUnknownPolicy) || errors.Is(err, services.ErrInvalidRequest) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "plan relocation failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(svcReq, res))
}
