package qpstore

import (
	"context"
	"io"
	"log/slog"

	"github.com/rwcarlsen/femloop/internal/ctxlog"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// constValuer always computes the same value and declares no guarantees.
type constValuer[T any] struct {
	val          T
	initOld      T
	initOlder    T
	guaranteeSet []string
	shifts       int
}

func (c *constValuer[T]) Compute(loc Location) (T, error) { return c.val, nil }
func (c *constValuer[T]) InitialOld() T                   { return c.initOld }
func (c *constValuer[T]) InitialOlder() T                 { return c.initOlder }
func (c *constValuer[T]) Guarantees() []string             { return c.guaranteeSet }
func (c *constValuer[T]) OnShift()                         { c.shifts++ }

// depValuer computes 1 + the current value of another id, used to build
// chains and cycles.
type depValuer struct {
	s   *Store
	dep int
}

func (d *depValuer) Compute(loc Location) (int, error) {
	v, err := Get[int](testCtx(), d.s, d.dep, loc)
	if err != nil {
		return 0, err
	}
	return v + 1, nil
}
func (d *depValuer) InitialOld() int     { return 0 }
func (d *depValuer) InitialOlder() int   { return 0 }
func (d *depValuer) Guarantees() []string { return nil }
func (d *depValuer) OnShift()             {}

// floatValuer is registered as a float64 valuer, used for TypeMismatch
// scenarios against a Get[int] call.
type floatValuer struct{ val float64 }

func (f *floatValuer) Compute(loc Location) (float64, error) { return f.val, nil }
func (f *floatValuer) InitialOld() float64                   { return 0 }
func (f *floatValuer) InitialOlder() float64                 { return 0 }
func (f *floatValuer) Guarantees() []string                  { return nil }
func (f *floatValuer) OnShift()                              {}
