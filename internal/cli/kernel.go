// SPDX-License-Identifier: MIT

package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mcik/internal/cli/output"
	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
)

type kernelView struct {
	Column  int         `json:"column" yaml:"column"`
	Advance int         `json:"advance" yaml:"advance"`
	Kernel  [][]float64 `json:"kernel" yaml:"kernel"`
}

// newKernelCommand creates the kernel command.
func newKernelCommand() *cobra.Command {
	var (
		column  int
		advance int
	)
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Derive the one-step influence kernel K",
		Long: `Derive K[i][j] = ∂next_i/∂current_j by central finite differences at the
seed state advanced by --advance steps. With --column j only the response
to a micro-cause at site j is printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}
			if column >= 0 {
				if err = rt.site("column", column); err != nil {
					return err
				}
			}
			var rows [][]float64
			if rt.single() {
				rows, err = deriveKernel[float32](rt, advance)
			} else {
				rows, err = deriveKernel[float64](rt, advance)
			}
			if err != nil {
				return err
			}

			rep := output.NewReport("kernel")
			rep.Meta = rt.meta()
			rep.Meta["advance"] = advance
			if column >= 0 {
				rep.Meta["column"] = column
				rep.Columns = []string{"site", "K"}
				col := make([][]float64, len(rows))
				for i := range rows {
					rep.Rows = append(rep.Rows, []any{i, rows[i][column]})
					col[i] = []float64{rows[i][column]}
				}
				rep.Data = kernelView{Column: column, Advance: advance, Kernel: col}

				return rt.renderer.Render(rep)
			}
			rep.Columns = append(rep.Columns, "i\\j")
			for j := range rows {
				rep.Columns = append(rep.Columns, strconv.Itoa(j))
			}
			for i, r := range rows {
				row := []any{i}
				for _, v := range r {
					row = append(row, v)
				}
				rep.Rows = append(rep.Rows, row)
			}
			rep.Data = kernelView{Column: -1, Advance: advance, Kernel: rows}

			return rt.renderer.Render(rep)
		},
	}
	cmd.Flags().IntVar(&column, "column", -1, "print only column j")
	cmd.Flags().IntVar(&advance, "advance", 0, "Forward steps before deriving")

	return cmd
}

// deriveKernel advances the seeded lattice and returns K row by row.
func deriveKernel[T lattice.Float](rt *runtime, advance int) ([][]float64, error) {
	lat, _, err := newLattice[T](rt)
	if err != nil {
		return nil, err
	}
	if err = lat.ForwardSteps(advance); err != nil {
		return nil, err
	}
	est, err := kernel.NewEstimator(lat)
	if err != nil {
		return nil, err
	}
	if err = est.Derive(); err != nil {
		return nil, err
	}
	rt.metrics.ObserveDerive()
	k, err := est.Kernel()
	if err != nil {
		return nil, err
	}
	n := k.Rows()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	k.Do(func(i, j int, v float64) bool {
		rows[i][j] = v

		return true
	})

	return rows, nil
}
