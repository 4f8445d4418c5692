// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcik/internal/cli/output"
	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
)

type hessianView struct {
	Row         int     `json:"row" yaml:"row"`
	A           int     `json:"a" yaml:"a"`
	B           int     `json:"b" yaml:"b"`
	H           float64 `json:"h" yaml:"h"`
	Interaction string  `json:"interaction" yaml:"interaction"`
}

// newHessianCommand creates the hessian command.
func newHessianCommand() *cobra.Command {
	var (
		row, a, b int
		advance   int
		tol       float64
	)
	cmd := &cobra.Command{
		Use:   "hessian",
		Short: "Estimate the second-order kernel H(i; a, b)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range []struct {
				name string
				v    int
			}{{"row", row}, {"a", a}, {"b", b}} {
				if err = rt.site(f.name, f.v); err != nil {
					return err
				}
			}
			var h float64
			if rt.single() {
				h, err = hessianAt[float32](rt, advance, row, a, b)
			} else {
				h, err = hessianAt[float64](rt, advance, row, a, b)
			}
			if err != nil {
				return err
			}
			class := kernel.Classify(h, tol).String()

			rep := output.NewReport("hessian")
			rep.Meta = rt.meta()
			rep.Meta["advance"] = advance
			rep.Meta["tolerance"] = tol
			rep.Columns = []string{"i", "a", "b", "H", "interaction"}
			rep.Rows = [][]any{{row, a, b, h, class}}
			rep.Data = hessianView{Row: row, A: a, B: b, H: h, Interaction: class}

			return rt.renderer.Render(rep)
		},
	}
	cmd.Flags().IntVar(&row, "row", 0, "output site i")
	cmd.Flags().IntVar(&a, "a", 0, "first micro-cause site")
	cmd.Flags().IntVar(&b, "b", 1, "second micro-cause site")
	cmd.Flags().IntVar(&advance, "advance", 0, "Forward steps before deriving")
	cmd.Flags().Float64Var(&tol, "tol", 1e-9, "|H| below this is additive")

	return cmd
}

func hessianAt[T lattice.Float](rt *runtime, advance, i, a, b int) (float64, error) {
	lat, _, err := newLattice[T](rt)
	if err != nil {
		return 0, err
	}
	if err = lat.ForwardSteps(advance); err != nil {
		return 0, err
	}
	est, err := kernel.NewEstimator(lat)
	if err != nil {
		return 0, err
	}
	if err = est.Derive(); err != nil {
		return 0, err
	}
	rt.metrics.ObserveDerive()

	return est.Hessian(i, a, b)
}
