// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/propagate"
	"github.com/katalvlaran/mcik/seed"
)

// Grid is the Cartesian product Alphas × Betas.
type Grid struct {
	Alphas []float64 `json:"alphas" yaml:"alphas"`
	Betas  []float64 `json:"betas" yaml:"betas"`
}

// Len returns the number of points.
func (g Grid) Len() int { return len(g.Alphas) * len(g.Betas) }

// Job is the experiment run at every grid point.
type Job struct {
	Size      int
	Precision lattice.Precision
	Initial   []float64 // len == Size
	Steps     int
	Origin    int
}

// Point is the growth metric at one (α, β). Lambda is zero when Defined is false.
type Point struct {
	Alpha   float64 `json:"alpha" yaml:"alpha"`
	Beta    float64 `json:"beta" yaml:"beta"`
	Lambda  float64 `json:"lambda" yaml:"lambda"`
	Defined bool    `json:"defined" yaml:"defined"`
}

// Run evaluates job at every grid point with at most WithWorkers goroutines.
//
// Implementation:
//   - Stage 1: validate grid and job; allocate the result slice.
//   - Stage 2: one errgroup task per point writes its own slot.
//   - Stage 3: Wait; the first non-degeneracy error cancels the rest.
//
// Errors:
//   - ErrEmptyGrid, ErrBadJob, ctx.Err(), or the first lattice/propagate error.
//     ErrNumericDegeneracy is recorded as Defined=false, never returned.
//
// Complexity: O(|grid|·Steps·N³) total work.
func Run(ctx context.Context, grid Grid, job Job, opts ...Option) ([]Point, error) {
	if grid.Len() == 0 {
		return nil, ErrEmptyGrid
	}
	if len(job.Initial) != job.Size {
		return nil, fmt.Errorf("Run: initial len %d, size %d: %w", len(job.Initial), job.Size, ErrBadJob)
	}
	o := gatherOptions(opts...)
	out := make([]Point, grid.Len())

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	o.logger.Info("sweep started", "points", len(out), "workers", o.workers, "precision", job.Precision)

	for ai, alpha := range grid.Alphas {
		for bi, beta := range grid.Betas {
			idx := ai*len(grid.Betas) + bi
			eg.Go(func() error {
				if err := egctx.Err(); err != nil {
					return err
				}
				p, err := evaluate(job, alpha, beta, o)
				if err != nil {
					return fmt.Errorf("Run: α=%g β=%g: %w", alpha, beta, err)
				}
				out[idx] = p
				if o.recorder != nil {
					o.recorder.ObserveSweepPoint(p.Defined)
				}
				o.logger.Debug("sweep point", "alpha", alpha, "beta", beta, "lambda", p.Lambda, "defined", p.Defined)

				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	o.logger.Info("sweep finished", "points", len(out))

	return out, nil
}

// evaluate dispatches on the job precision.
func evaluate(job Job, alpha, beta float64, o options) (Point, error) {
	if job.Precision == lattice.Single {
		return point[float32](job, alpha, beta, o)
	}

	return point[float64](job, alpha, beta, o)
}

// point runs one experiment in precision T.
func point[T lattice.Float](job Job, alpha, beta float64, o options) (Point, error) {
	lat, err := lattice.New(job.Size, T(alpha), T(beta), lattice.WithSquash(o.squash), lattice.WithLogger(o.logger))
	if err != nil {
		return Point{}, err
	}
	popts := []propagate.Option{propagate.WithoutTrajectory(), propagate.WithLogger(o.logger)}
	if o.recorder != nil {
		popts = append(popts, propagate.WithRecorder(o.recorder))
	}
	res, err := propagate.Propagate(lat, seed.As[T](job.Initial), job.Steps, popts...)
	if err != nil {
		return Point{}, err
	}
	p := Point{Alpha: alpha, Beta: beta}
	lambda, err := res.Growth(job.Origin)
	switch {
	case err == nil:
		p.Lambda, p.Defined = lambda, true
	case errors.Is(err, propagate.ErrNumericDegeneracy):
	default:
		return Point{}, err
	}

	return p, nil
}

// Sequential evaluates the same grid on the calling goroutine, in grid order.
// It is the reference Run is checked against.
func Sequential(grid Grid, job Job, opts ...Option) ([]Point, error) {
	if grid.Len() == 0 {
		return nil, ErrEmptyGrid
	}
	if len(job.Initial) != job.Size {
		return nil, fmt.Errorf("Sequential: initial len %d, size %d: %w", len(job.Initial), job.Size, ErrBadJob)
	}
	o := gatherOptions(opts...)
	out := make([]Point, 0, grid.Len())
	for _, alpha := range grid.Alphas {
		for _, beta := range grid.Betas {
			p, err := evaluate(job, alpha, beta, o)
			if err != nil {
				return nil, fmt.Errorf("Sequential: α=%g β=%g: %w", alpha, beta, err)
			}
			out = append(out, p)
		}
	}

	return out, nil
}

// Range returns n evenly spaced values from lo to hi inclusive; n == 1 yields lo.
func Range(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo

		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi

	return out
}
