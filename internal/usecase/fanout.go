package usecase

import "github.com/sourcegraph/conc/pool"

// collect runs fn for every index in [0, n) with at most limit calls in flight and
// returns the results in index order.
func collect[T any](n, limit int, fn func(i int) T) []T {
	out := make([]T, n)
	if n == 0 {
		return out
	}
	if limit < 1 || limit > n {
		limit = n
	}

	p := pool.New().WithMaxGoroutines(limit)
	for i := 0; i < n; i++ {
		p.Go(func() {
			out[i] = fn(i)
		})
	}
	p.Wait()
	return out
}
