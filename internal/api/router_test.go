package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"relocation-planner-service/internal/api/handlers"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
	"relocation-planner-service/internal/services"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyRepo struct{}

func (emptyRepo) ListEntities(context.Context) (domain.Population, error) {
	return domain.Population{}, nil
}

func TestRouterAssignsRequestID(t *testing.T) {
	router := NewRouter(emptyRepo{}, services.Deps{}, handlers.PlannerDefaults{Threshold: 0.9})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)
}

func TestRouterPropagatesRequestID(t *testing.T) {
	var seen string
	h := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = obs.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestStatusWriterRecordsImplicitOK(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	_, err := sw.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, 5, sw.bytes)
}

func TestRouterRoutesPlans(t *testing.T) {
	router := NewRouter(emptyRepo{}, services.Deps{}, handlers.PlannerDefaults{Threshold: 0.9})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entities", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entities":[]}`, rec.Body.String())
}
