package cli

import (
	"encoding/json"
	"fmt"
	"relocation-planner-service/internal/adapters/notify"
	"relocation-planner-service/internal/api/dto"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/services"
	"relocation-planner-service/internal/snapshot"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type planFlags struct {
	file      string
	useDB     bool
	target    string
	threshold float64
	order     string
	tieBreak  string
}

func newPlanCmd(a *app) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a relocation plan and print it as JSON",
		Long: `Compute a relocation plan over a snapshot file or the stored population.

Unset parameters fall back to the planner configuration (TARGET_X, TARGET_Y,
HEALTH_THRESHOLD, ORDER_POLICY, TIEBREAK_POLICY, PLANNER_CONFIG).

Examples:
  planctl plan --file graph_data.json --target 2,3 --threshold 0.9
  planctl plan --db --tiebreak health-desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "graph_data snapshot file (JSON or YAML)")
	cmd.Flags().BoolVar(&f.useDB, "db", false, "plan over the stored population")
	cmd.Flags().StringVar(&f.target, "target", "", "target location as x,y")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "minimum acceptable health")
	cmd.Flags().StringVar(&f.order, "order", "", "iteration policy: id-asc or id-desc")
	cmd.Flags().StringVar(&f.tieBreak, "tiebreak", "", "donor tie-break policy: id-asc, id-desc or health-desc")
	cmd.MarkFlagsMutuallyExclusive("file", "db")
	cmd.MarkFlagsOneRequired("file", "db")

	return cmd
}

func (a *app) runPlan(cmd *cobra.Command, f planFlags) error {
	ctx := cmd.Context()

	req := services.PlanPopulationRequest{
		Target:         domain.Position{X: a.cfg.Planner.TargetX, Y: a.cfg.Planner.TargetY},
		Threshold:      a.cfg.Planner.Threshold,
		OrderPolicy:    a.cfg.Planner.OrderPolicy,
		TieBreakPolicy: a.cfg.Planner.TieBreakPolicy,
	}
	if f.target != "" {
		target, err := parseTarget(f.target)
		if err != nil {
			return err
		}
		req.Target = target
	}
	if cmd.Flags().Changed("threshold") {
		req.Threshold = f.threshold
	}
	if f.order != "" {
		req.OrderPolicy = f.order
	}
	if f.tieBreak != "" {
		req.TieBreakPolicy = f.tieBreak
	}

	deps := services.Deps{
		HookTimeout: a.cfg.HookTimeout,
		Hooks: services.Hooks{
			Visualizer: notify.LogVisualizer{Logger: a.logger},
			Alerter:    notify.LogAlerter{Logger: a.logger},
			Explainer:  notify.LogExplainer{Logger: a.logger},
		},
	}

	var (
		res *services.PlanResult
		err error
	)
	if f.file != "" {
		pop, loadErr := snapshot.LoadFile(f.file)
		if loadErr != nil {
			return loadErr
		}
		res, err = services.PlanSnapshot(ctx, req, pop, deps)
	} else {
		conn, dialect, openErr := a.openStore(ctx)
		if openErr != nil {
			return openErr
		}
		defer conn.Close()

		res, err = services.PlanPopulation(ctx, req, newRepository(conn, dialect), deps)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewPlanResponse(req, res))
}

// parseTarget reads "x,y".
func parseTarget(s string) (domain.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Position{}, fmt.Errorf("parse target %q: want x,y", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Position{}, fmt.Errorf("parse target %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Position{}, fmt.Errorf("parse target %q: %w", s, err)
	}
	return domain.Position{X: x, Y: y}, nil
}
