package task

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result holds what one task produced - exactly one slot per task
type Result[T any] struct {
	Value T
	Err   error
}

// Run calls fn for every index in [0, n) with at most limit calls in flight
// and waits for all of them. A failing task only fills its own slot, the
// others keep going. Panics inside fn are turned into that slot's error.
func Run[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	results := make([]Result[T], n)
	if n == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("task %d panicked: %v", i, r)
				}
			}()

			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			value, err := fn(ctx, i)
			results[i] = Result[T]{Value: value, Err: err}
			return nil // never cancel siblings
		})
	}

	_ = g.Wait()
	return results
}
