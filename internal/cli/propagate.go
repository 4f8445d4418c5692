// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcik/internal/cli/output"
	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/propagate"
)

type propagateView struct {
	Steps   int                     `json:"steps" yaml:"steps"`
	Origin  int                     `json:"origin" yaml:"origin"`
	Lambda  *float64                `json:"lambda" yaml:"lambda"`
	Profile []propagate.GrowthPoint `json:"profile" yaml:"profile"`
	Final   []float64               `json:"final" yaml:"final"`
}

// newPropagateCommand creates the propagate command.
func newPropagateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "propagate",
		Short: "Accumulate K⁽ⁿ⁾ over --steps and report growth rates",
		Long: `Propagate multiplies the per-step kernels J⁽ⁿ⁻¹⁾···J⁽⁰⁾ along the
trajectory started at the seed state and prints the growth rate
Λ = log(Σᵢ|K[i][origin]|)/n for every origin. Origins whose response
vanishes or overflows are reported as undefined.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err = rt.site("origin", rt.cfg.Origin); err != nil {
				return err
			}
			var view *propagateView
			if rt.single() {
				view, err = runPropagate[float32](rt)
			} else {
				view, err = runPropagate[float64](rt)
			}
			if err != nil {
				return err
			}

			rep := output.NewReport("propagate")
			rep.Meta = rt.meta()
			rep.Meta["steps"] = view.Steps
			rep.Meta["origin"] = view.Origin
			rep.Columns = []string{"origin", "lambda"}
			for _, p := range view.Profile {
				var v any = p.Lambda
				if !p.Defined {
					v = math.NaN()
				}
				rep.Rows = append(rep.Rows, []any{p.Origin, v})
			}
			if view.Lambda != nil {
				rep.Footer = "Λ(origin " + output.FormatValue(view.Origin) + ") = " + output.FormatValue(*view.Lambda)
			} else {
				rep.Footer = "Λ(origin " + output.FormatValue(view.Origin) + ") undefined"
			}
			rep.Data = view

			return rt.renderer.Render(rep)
		},
	}
}

func runPropagate[T lattice.Float](rt *runtime) (*propagateView, error) {
	lat, initial, err := newLattice[T](rt)
	if err != nil {
		return nil, err
	}
	res, err := propagate.Propagate(lat, initial, rt.cfg.Steps,
		propagate.WithLogger(rt.logger),
		propagate.WithRecorder(rt.metrics),
		propagate.WithoutTrajectory())
	if err != nil {
		return nil, err
	}
	view := &propagateView{Steps: res.Steps, Origin: rt.cfg.Origin}
	for _, v := range res.Final() {
		view.Final = append(view.Final, float64(v))
	}
	if res.Steps == 0 {
		return view, nil
	}
	if view.Profile, err = res.Profile(); err != nil {
		return nil, err
	}
	lambda, err := res.Growth(rt.cfg.Origin)
	switch {
	case err == nil:
		view.Lambda = &lambda
	case errors.Is(err, propagate.ErrNumericDegeneracy):
		rt.logger.Warn("growth undefined", "origin", rt.cfg.Origin, "err", err)
	default:
		return nil, err
	}

	return view, nil
}
