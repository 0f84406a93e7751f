package notify

import (
	"context"
	"log/slog"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
)

// LogVisualizer writes the location graph to the logger instead of rendering it.
type LogVisualizer struct{ Logger *slog.Logger }

func (v LogVisualizer) VisualizeCohort(ctx context.Context, g domain.LocationGraph) error {
	counts := map[domain.LocationCategory]int{}
	for _, c := range g.Categories {
		counts[c]++
	}

	logger(v.Logger).InfoContext(ctx, "cohort graph",
		"req_id", obs.RequestID(ctx),
		"target", g.Target.String(),
		"donor_locations", counts[domain.CategoryDonor],
		"neutral_locations", counts[domain.CategoryNeutral],
		"edges", len(g.Edges),
	)
	for _, e := range g.Edges {
		logger(v.Logger).DebugContext(ctx, "cohort edge", "from", e.From.String(), "to", e.To.String(), "label", e.Label())
	}
	return nil
}

// LogAlerter writes commander alerts at warn level.
type LogAlerter struct{ Logger *slog.Logger }

func (a LogAlerter) AlertCommander(ctx context.Context, alert domain.Alert) error {
	logger(a.Logger).WarnContext(ctx, "commander alert",
		"req_id", obs.RequestID(ctx),
		"target", alert.Target.String(),
		"threshold", alert.Threshold,
		"below_threshold", len(alert.BelowThreshold),
		"replaced", alert.Replaced,
		"unreplaced", alert.Unreplaced,
	)
	return nil
}

// LogExplainer records why an entity was marked for replacement.
type LogExplainer struct{ Logger *slog.Logger }

func (x LogExplainer) ExplainOutcome(ctx context.Context, e domain.Entity, threshold float64) error {
	logger(x.Logger).InfoContext(ctx, "replacement explained",
		"req_id", obs.RequestID(ctx),
		"entity", e.ID,
		"location", e.Position.String(),
		"health", e.Health,
		"threshold", threshold,
		"shortfall", threshold-e.Health,
	)
	return nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
