// Package errgroup provides an adapter that mimics golang.org/x/sync/errgroup
// semantics on top of a supervised task set. It enables incremental migration
// of errgroup call sites onto the supervisor without changing their shape.
package errgroup

import (
	"context"
	"sync"

	"github.com/NetPo4ki/go-overseer/overseer"
)

// Group is an errgroup-like wrapper over an overseer.Supervisor with
// fail-fast semantics: the first task error cancels the group context.
type Group struct {
	sup    *overseer.Supervisor
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	firstErr error
}

// WithContext creates a Group bound to ctx. The returned context is canceled
// when any function passed to Go returns a non-nil error.
func WithContext(ctx context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	g := &Group{sup: overseer.New(), ctx: ctx, cancel: cancel}
	g.sup.Subscribe(g.onFinish)
	return g, g.ctx
}

// Go starts a function as a supervised task. It should return a non-nil
// error to signal failure.
func (g *Group) Go(f func() error) {
	if f == nil {
		return
	}
	t := overseer.NewFunc("", func(context.Context) error {
		return f()
	})
	if err := g.sup.Add(t); err != nil {
		g.fail(err)
	}
}

// Wait blocks until all functions have returned, then cancels the group
// context. It returns the first non-nil error or nil on success.
func (g *Group) Wait() error {
	g.sup.WaitAll()
	g.cancel()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.firstErr
}

func (g *Group) onFinish(t overseer.Task) {
	ft, ok := t.(*overseer.FuncTask)
	if !ok {
		return
	}
	if err := ft.Err(); err != nil {
		g.fail(err)
	}
}

func (g *Group) fail(err error) {
	g.mu.Lock()
	if g.firstErr == nil {
		g.firstErr = err
	}
	g.mu.Unlock()
	g.cancel()
}
