// Package scenario coordinates fan-out/fan-in groups of harness calls. A
// group issues independent calls against a shared client and joins on all of
// them; the first failure cancels the group context and wins.
package scenario

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group is a set of concurrent harness calls joined as one unit.
type Group struct {
	eg  *errgroup.Group
	ctx context.Context
}

// NewGroup creates a group whose calls share a context derived from ctx.
// The derived context is cancelled when any call fails.
func NewGroup(ctx context.Context) *Group {
	eg, gctx := errgroup.WithContext(ctx)
	return &Group{eg: eg, ctx: gctx}
}

// SetLimit caps the number of in-flight calls. Must be called before Go.
func (g *Group) SetLimit(n int) {
	g.eg.SetLimit(n)
}

// Go schedules one call on the group.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		return fn(g.ctx)
	})
}

// Wait joins on every scheduled call and returns the first error, if any.
func (g *Group) Wait() error {
	return g.eg.Wait()
}

// Run fans out fns concurrently and joins on all of them.
func Run(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g := NewGroup(ctx)
	for _, fn := range fns {
		g.Go(fn)
	}
	return g.Wait()
}
