package services

import (
	"context"
	"fmt"
	"log/slog"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
	"relocation-planner-service/internal/ports"
	"time"

	"golang.org/x/sync/errgroup"
)

// PlanPopulationRequest names policies instead of carrying comparators so that
// requests can be fingerprinted and cached.
type PlanPopulationRequest struct {
	Target         domain.Position
	Threshold      float64
	OrderPolicy    string
	TieBreakPolicy string
}

// Hooks are the external collaborators notified after a plan is produced.
// Nil fields fall back to the no-op implementations in ports.
type Hooks struct {
	Visualizer ports.CohortVisualizer
	Alerter    ports.CommanderAlerter
	Explainer  ports.OutcomeExplainer
}

func (h Hooks) withDefaults() Hooks {
	if h.Visualizer == nil {
		h.Visualizer = ports.NopVisualizer{}
	}
	if h.Alerter == nil {
		h.Alerter = ports.NopAlerter{}
	}
	if h.Explainer == nil {
		h.Explainer = ports.NopExplainer{}
	}
	return h
}

// Deps bundles the optional collaborators of PlanPopulation and PlanSnapshot.
// HookTimeout bounds the whole hook dispatch; zero selects DefaultHookTimeout.
type Deps struct {
	Cache       ports.PlanCache
	CacheTTL    time.Duration
	Hooks       Hooks
	HookTimeout time.Duration
}

// DefaultHookTimeout keeps hook dispatch well inside the server's write timeout.
const DefaultHookTimeout = 5 * time.Second

// Outcome of a service-level planning call.
type PlanResult struct {
	Relocation
	Fingerprint string
	CacheHit    bool
}

// PlanPopulation loads the current population from the repository and plans over it.
func PlanPopulation(
	ctx context.Context,
	req PlanPopulationRequest,
	repo ports.PopulationRepository,
	deps Deps,
) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "services.PlanPopulation")(&err)

	pop, err := repo.ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan population: list entities: %w", err)
	}

	res, err := PlanSnapshot(ctx, req, pop, deps)
	if err != nil {
		return nil, fmt.Errorf("plan population: %w", err)
	}
	return res, nil
}

// PlanSnapshot plans over a caller-supplied population.
//
// A cached plan is reused when the snapshot fingerprint matches; the partition
// and graph are always recomputed from the snapshot. Cache and hook failures are
// logged and never fail the call.
func PlanSnapshot(
	ctx context.Context,
	req PlanPopulationRequest,
	pop domain.Population,
	deps Deps,
) (*PlanResult, error) {
	opts, err := ResolveMatchOptions(req.OrderPolicy, req.TieBreakPolicy)
	if err != nil {
		return nil, fmt.Errorf("plan snapshot: %w", err)
	}

	planReq := PlanRequest{Target: req.Target, Threshold: req.Threshold, Options: opts}
	if err := validateRequest(planReq); err != nil {
		return nil, fmt.Errorf("plan snapshot: %w", err)
	}
	if err := pop.Validate(); err != nil {
		return nil, fmt.Errorf("plan snapshot: %w", err)
	}

	fp := Fingerprint(pop, req.Target, req.Threshold, req.OrderPolicy, req.TieBreakPolicy)
	reqID := obs.RequestID(ctx)

	// Check the plan cache before running the matcher.
	if deps.Cache != nil {
		cached, ok, err := deps.Cache.Get(ctx, fp)
		if err != nil {
			slog.WarnContext(ctx, "plan cache read failed", "req_id", reqID, "fingerprint", fp, "err", err)
		} else if ok {
			part := PartitionPopulation(pop, req.Target, req.Threshold)
			res := &PlanResult{
				Relocation: Relocation{
					Partition: part,
					Plan:      cached,
					Graph:     BuildLocationGraph(pop, req.Target, cached),
				},
				Fingerprint: fp,
				CacheHit:    true,
			}
			dispatchHooks(ctx, deps, req, res)
			return res, nil
		}
	}

	rel, err := PlanRelocation(pop, planReq)
	if err != nil {
		return nil, fmt.Errorf("plan snapshot: %w", err)
	}

	slog.InfoContext(ctx, "relocation planned",
		"req_id", reqID,
		"entities", len(pop),
		"below_threshold", len(rel.Partition.BelowThreshold),
		"donor_pool", len(rel.Partition.HealthyElsewhere),
		"pairs", len(rel.Plan.Pairs),
		"unreplaced", len(rel.Plan.Unreplaced),
		"total_cost", rel.Plan.TotalCost,
	)

	if deps.Cache != nil {
		if err := deps.Cache.Put(ctx, fp, rel.Plan, deps.CacheTTL); err != nil {
			slog.WarnContext(ctx, "plan cache write failed", "req_id", reqID, "fingerprint", fp, "err", err)
		}
	}

	res := &PlanResult{Relocation: *rel, Fingerprint: fp}
	dispatchHooks(ctx, deps, req, res)
	return res, nil
}

// Bounds concurrent explainer calls.
const maxHookConcurrency = 4

// dispatchHooks notifies every collaborator and waits for all of them.
// Hooks share a context that outlives the caller's cancellation but expires after
// deps.HookTimeout; hooks must return once it is done.
// Hook errors are logged per call so one failing collaborator does not hide another.
func dispatchHooks(ctx context.Context, deps Deps, req PlanPopulationRequest, res *PlanResult) {
	hooks := deps.Hooks.withDefaults()
	reqID := obs.RequestID(ctx)

	timeout := deps.HookTimeout
	if timeout <= 0 {
		timeout = DefaultHookTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(maxHookConcurrency)

	logFailure := func(hook string, err error) {
		if err != nil {
			slog.WarnContext(ctx, "hook failed", "req_id", reqID, "hook", hook, "err", err)
		}
	}

	g.Go(func() error {
		logFailure("visualize_cohort", hooks.Visualizer.VisualizeCohort(ctx, res.Graph))
		return nil
	})

	below := res.Partition.BelowThreshold
	if len(below) > 0 {
		alert := domain.Alert{
			Target:         req.Target,
			Threshold:      req.Threshold,
			BelowThreshold: below.IDs(),
			Replaced:       len(res.Plan.Pairs),
			Unreplaced:     res.Plan.Unreplaced,
		}
		g.Go(func() error {
			logFailure("alert_commander", hooks.Alerter.AlertCommander(ctx, alert))
			return nil
		})

		for _, pair := range res.Plan.Pairs {
			entity := below[pair.Replaced]
			g.Go(func() error {
				logFailure("explain_outcome", hooks.Explainer.ExplainOutcome(ctx, entity, req.Threshold))
				return nil
			})
		}
	}

	_ = g.Wait()
}
