// SPDX-License-Identifier: MIT

package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcik/internal/cli/output"
	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/sweep"
)

type sweepView struct {
	Grid   sweep.Grid    `json:"grid" yaml:"grid"`
	Points []sweep.Point `json:"points" yaml:"points"`
}

// newSweepCommand creates the sweep command.
func newSweepCommand() *cobra.Command {
	var alphas, betas []float64
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Map Λ over a grid of couplings",
		Long: `Sweep runs propagate at every (α, β) of the grid in parallel, bounded by
--workers, and reports Λ at --origin. Points whose growth is undefined are
listed as such rather than failing the sweep.`,
		Example: `  mcik sweep --alphas 0.5,1,1.5 --betas 0,0.25,0.5 --workers 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err = rt.site("origin", rt.cfg.Origin); err != nil {
				return err
			}
			sq, err := lattice.ParseSquash(rt.cfg.Squash)
			if err != nil {
				return err
			}
			initial, err := rt.cfg.InitialState()
			if err != nil {
				return err
			}
			grid := sweep.Grid{Alphas: alphas, Betas: betas}
			job := sweep.Job{
				Size:      rt.cfg.Size,
				Precision: rt.cfg.Precision,
				Initial:   initial,
				Steps:     rt.cfg.Steps,
				Origin:    rt.cfg.Origin,
			}
			opts := []sweep.Option{
				sweep.WithLogger(rt.logger),
				sweep.WithMetrics(rt.metrics),
				sweep.WithSquash(sq),
			}
			if rt.cfg.Workers > 0 {
				opts = append(opts, sweep.WithWorkers(rt.cfg.Workers))
			}
			points, err := sweep.Run(cmd.Context(), grid, job, opts...)
			if err != nil {
				return err
			}

			rep := output.NewReport("sweep")
			rep.Meta = rt.meta()
			delete(rep.Meta, "alpha")
			delete(rep.Meta, "beta")
			rep.Meta["steps"] = rt.cfg.Steps
			rep.Meta["origin"] = rt.cfg.Origin
			rep.Columns = []string{"alpha", "beta", "lambda"}
			undefined := 0
			for _, p := range points {
				var v any = p.Lambda
				if !p.Defined {
					v = math.NaN()
					undefined++
				}
				rep.Rows = append(rep.Rows, []any{p.Alpha, p.Beta, v})
			}
			rep.Footer = output.FormatValue(len(points)) + " points, " + output.FormatValue(undefined) + " undefined"
			rep.Data = sweepView{Grid: grid, Points: points}

			return rt.renderer.Render(rep)
		},
	}
	cmd.Flags().Float64SliceVar(&alphas, "alphas", sweep.Range(0.25, 1.5, 6), "α values")
	cmd.Flags().Float64SliceVar(&betas, "betas", sweep.Range(0, 0.75, 4), "β values")

	return cmd
}
