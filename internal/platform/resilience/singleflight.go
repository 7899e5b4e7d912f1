package resilience

import (
	"errors"
	"fmt"
	"sync"
)

// ErrFlightAborted is what waiters get when the call they joined panicked or exited
// without returning.
var ErrFlightAborted = errors.New("singleflight call aborted")

// SingleFlight collapses concurrent calls sharing a key into one execution.
// The zero value is ready to use.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	wg  sync.WaitGroup
	val T
	err error
}

// Do runs fn once per in-flight key. shared reports whether the result came from another caller.
// A panic in fn is re-raised in the caller that ran it.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall[T])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &flightCall[T]{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		c.wg.Done()
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
	}()

	var panicked any
	func() {
		returned := false
		defer func() {
			if returned {
				return
			}
			// c.err is set before the outer defer releases waiters.
			if r := recover(); r != nil {
				panicked = r
				c.err = fmt.Errorf("%w: panic: %v", ErrFlightAborted, r)
				return
			}
			c.err = ErrFlightAborted
		}()
		c.val, c.err = fn()
		returned = true
	}()

	if panicked != nil {
		panic(panicked)
	}
	return c.val, c.err, false
}
