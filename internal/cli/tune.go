// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcik/internal/cli/output"
	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/propagate"
	"github.com/katalvlaran/mcik/seed"
	"github.com/katalvlaran/mcik/strategy"
)

// degenerateScore ranks parameters whose growth is undefined below any defined one.
const degenerateScore = -math.MaxFloat64

// couplingLevers are the α and β levers tuned by the tune command.
var couplingLevers = []strategy.Lever{
	{Name: "alpha", Delta: 0.05, Min: 0, Max: 3},
	{Name: "beta", Delta: 0.05, Min: 0, Max: 2},
}

// couplingPairs probe raising β together with either direction of α.
var couplingPairs = []strategy.Pair{
	{A: strategy.Move{Lever: 0, Sign: +1}, B: strategy.Move{Lever: 1, Sign: +1}},
	{A: strategy.Move{Lever: 0, Sign: -1}, B: strategy.Move{Lever: 1, Sign: +1}},
}

type tuneView struct {
	Mode   string                `json:"mode" yaml:"mode"`
	Target float64               `json:"target" yaml:"target"`
	Levers []strategy.Lever      `json:"levers" yaml:"levers"`
	Steps  []strategy.Suggestion `json:"steps" yaml:"steps"`
}

// newTuneCommand creates the tune command.
func newTuneCommand() *cobra.Command {
	var (
		mode       string
		iterations int
		target     float64
	)
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Steer α and β toward a target growth rate",
		Long: `Tune hill-climbs the couplings so that Λ at --origin approaches
--target. Mode "k" nudges one lever at a time. Mode "kh" also probes
joint moves and takes them when the pair is synergistic.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err = rt.site("origin", rt.cfg.Origin); err != nil {
				return err
			}
			s, err := strategy.ForMode(mode, couplingLevers, couplingPairs,
				strategy.WithLogger(rt.logger), strategy.WithRecorder(rt.metrics))
			if err != nil {
				return err
			}
			initial, err := rt.cfg.InitialState()
			if err != nil {
				return err
			}
			eval := growthEvaluator(rt, initial, target)
			start := []float64{
				couplingLevers[0].Clamp(rt.cfg.Alpha),
				couplingLevers[1].Clamp(rt.cfg.Beta),
			}
			steps, err := strategy.Run(cmd.Context(), s, start, eval, iterations)
			if err != nil {
				return err
			}

			rep := output.NewReport("tune")
			rep.Meta = rt.meta()
			rep.Meta["mode"] = s.Name()
			rep.Meta["target"] = target
			rep.Meta["origin"] = rt.cfg.Origin
			rep.Columns = []string{"step", "alpha", "beta", "score", "evaluations"}
			for k, sg := range steps {
				rep.Rows = append(rep.Rows, []any{k + 1, sg.Params[0], sg.Params[1], sg.Score, sg.Evaluations})
			}
			if n := len(steps); n > 0 {
				last := steps[n-1]
				rep.Footer = "best α=" + output.FormatValue(last.Params[0]) +
					" β=" + output.FormatValue(last.Params[1]) +
					" score=" + output.FormatValue(last.Score)
			}
			rep.Data = tuneView{Mode: s.Name(), Target: target, Levers: couplingLevers, Steps: steps}

			return rt.renderer.Render(rep)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "kh", "strategy (k|kh)")
	cmd.Flags().IntVar(&iterations, "iterations", 10, "maximum strategy steps")
	cmd.Flags().Float64Var(&target, "target", 0, "desired growth rate Λ")

	return cmd
}

// growthEvaluator scores (α, β) by −|Λ − target| at the configured origin.
func growthEvaluator(rt *runtime, initial []float64, target float64) strategy.Evaluator {
	return func(_ context.Context, p []float64) (float64, error) {
		var (
			lambda float64
			err    error
		)
		if rt.single() {
			lambda, err = growthAt[float32](rt, initial, p[0], p[1])
		} else {
			lambda, err = growthAt[float64](rt, initial, p[0], p[1])
		}
		if errors.Is(err, propagate.ErrNumericDegeneracy) {
			return degenerateScore, nil
		}
		if err != nil {
			return 0, err
		}

		return -math.Abs(lambda - target), nil
	}
}

func growthAt[T lattice.Float](rt *runtime, initial []float64, alpha, beta float64) (float64, error) {
	sq, err := lattice.ParseSquash(rt.cfg.Squash)
	if err != nil {
		return 0, err
	}
	lat, err := lattice.New(rt.cfg.Size, T(alpha), T(beta), lattice.WithSquash(sq), lattice.WithLogger(rt.logger))
	if err != nil {
		return 0, err
	}
	res, err := propagate.Propagate(lat, seed.As[T](initial), rt.cfg.Steps,
		propagate.WithoutTrajectory(), propagate.WithLogger(rt.logger), propagate.WithRecorder(rt.metrics))
	if err != nil {
		return 0, err
	}

	return res.Growth(rt.cfg.Origin)
}
