// Package reduction provides the drivers that turn an inserted boundary
// matrix into its reduced form: a plain left-to-right pass, the twist
// variant that clears killed columns, and a chunked variant that reduces
// dimensions in parallel before merging pivots.
//
// Drivers operate exclusively through the Matrix surface and are cooperative:
// cancellation is checked between columns, never inside a column reduction.
package reduction

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/topogo/matrix"
)

// Matrix is the reduction surface shared by the boundary and R=DU species.
type Matrix interface {
	NumColumns() int
	Dimension(j int) int
	ReduceColumn(j int) error
	ReduceColumnLocal(j int, pivots *matrix.PivotTable) error
	MergePivots(local *matrix.PivotTable) error
	PivotOf(j int) (uint64, bool)
	ClearColumn(row uint64, killer int) error
}

// Standard reduces every column left to right.
func Standard(ctx context.Context, m Matrix) error {
	for j := 0; j < m.NumColumns(); j++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := m.ReduceColumn(j); err != nil {
			return err
		}
	}

	return nil
}

// Twist reduces dimensions from the top down and clears the column of every
// killed simplex before its own reduction is attempted. The cleared columns
// are exactly those whose reduction would end at zero, which trims roughly
// half the work on typical inputs.
func Twist(ctx context.Context, m Matrix) error {
	byDim := columnsByDimension(m)

	for d := len(byDim) - 1; d >= 0; d-- {
		for _, j := range byDim[d] {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := m.ReduceColumn(j); err != nil {
				return err
			}

			if d == 0 {
				continue
			}

			if p, ok := m.PivotOf(j); ok {
				if err := m.ClearColumn(p, j); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Chunk reduces each dimension as an independent chunk on the worker pool,
// each against a chunk-local pivot table, then merges the tables
// sequentially. Columns only ever add columns of their own dimension and
// pivot rows of distinct dimensions are disjoint, so the chunks share no
// pivot state. The matrix must be built without row access; workers at most
// limits the parallelism, values below one mean one worker per dimension.
func Chunk(ctx context.Context, m Matrix, workers int) error {
	byDim := columnsByDimension(m)

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	locals := make([]*matrix.PivotTable, len(byDim))

	for d, cols := range byDim {
		if len(cols) == 0 {
			continue
		}

		local := matrix.NewPivotTable()
		locals[d] = local
		chunk := cols

		g.Go(func() error {
			for _, j := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}

				if err := m.ReduceColumnLocal(j, local); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, local := range locals {
		if local == nil {
			continue
		}

		if err := m.MergePivots(local); err != nil {
			return err
		}
	}

	return nil
}

// columnsByDimension buckets column indices by dimension, preserving the
// filtration order inside each bucket.
func columnsByDimension(m Matrix) [][]int {
	var byDim [][]int

	for j := 0; j < m.NumColumns(); j++ {
		d := m.Dimension(j)
		for len(byDim) <= d {
			byDim = append(byDim, nil)
		}
		byDim[d] = append(byDim[d], j)
	}

	return byDim
}
