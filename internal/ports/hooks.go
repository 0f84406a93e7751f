package ports

import (
	"context"
	"relocation-planner-service/internal/domain"
)

// Receives the categorised location graph of a finished plan for rendering.
type CohortVisualizer interface {
	VisualizeCohort(ctx context.Context, graph domain.LocationGraph) error
}

// Notified when the target location holds under-threshold entities.
type CommanderAlerter interface {
	AlertCommander(ctx context.Context, alert domain.Alert) error
}

// Asked to explain why an entity at the target was marked for replacement.
type OutcomeExplainer interface {
	ExplainOutcome(ctx context.Context, entity domain.Entity, threshold float64) error
}

// No-op implementations used when the caller injects nothing.
type NopVisualizer struct{}

func (NopVisualizer) VisualizeCohort(context.Context, domain.LocationGraph) error { return nil }

type NopAlerter struct{}

func (NopAlerter) AlertCommander(context.Context, domain.Alert) error { return nil }

type NopExplainer struct{}

func (NopExplainer) ExplainOutcome(context.Context, domain.Entity, float64) error { return nil }
