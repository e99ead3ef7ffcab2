package qpstore

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Value is the type-erased interface over a computed result. Concrete
// values are produced only by valueBox[T], never constructed directly by
// callers.
type Value interface {
	// Clone returns an independent copy, used by Project when relocating
	// old-tier entries to new mesh locations.
	Clone() Value
	// Less reports whether this value orders before other. It is part of
	// the erased contract for callers that key auxiliary structures on
	// computed values; the store itself never calls it.
	Less(other Value) bool
	// Store and Load serialize the payload. The store makes no promise
	// about the wire shape beyond "writes are consumed in the same order
	// at load time" (msgpack's self-describing encoding satisfies that
	// without a caller-supplied schema).
	Store(w io.Writer) error
	Load(r io.Reader) error
}

// Valuer computes a T for a given Location. It is notified whenever the
// owning Store shifts its history tiers, and may declare guarantees a
// caller can demand via Get.
type Valuer[T any] interface {
	// Compute produces the current value at loc.
	Compute(loc Location) (T, error)
	// InitialOld is returned by GetOld when no "old" entry exists yet for
	// the requested location (before the first Shift).
	InitialOld() T
	// InitialOlder is returned by GetOlder when no "older" entry exists
	// yet for the requested location.
	InitialOlder() T
	// Guarantees lists the semantic properties this valuer's output
	// satisfies, e.g. "isotropic".
	Guarantees() []string
	// OnShift is called once per Store.Shift, after the history rotation.
	OnShift()
}

// LessFunc orders two values of type T for Value.Less. A nil LessFunc
// makes Less always report false, which is sufficient for valuers whose
// output is never used as a comparison key.
type LessFunc[T any] func(a, b T) bool

type valueBox[T any] struct {
	v    T
	less LessFunc[T]
}

func (b *valueBox[T]) Clone() Value {
	return &valueBox[T]{v: b.v, less: b.less}
}

func (b *valueBox[T]) Less(other Value) bool {
	if b.less == nil {
		return false
	}
	o, ok := other.(*valueBox[T])
	if !ok {
		return false
	}
	return b.less(b.v, o.v)
}

func (b *valueBox[T]) Store(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(b.v); err != nil {
		return fmt.Errorf("qpstore: store value: %w", err)
	}
	return nil
}

func (b *valueBox[T]) Load(r io.Reader) error {
	if err := msgpack.NewDecoder(r).Decode(&b.v); err != nil {
		return fmt.Errorf("qpstore: load value: %w", err)
	}
	return nil
}

// registration is the type-erased view of a typedRegistration[T] that
// the Store's dense per-id vectors can hold without knowing T.
type registration interface {
	computeErased(loc Location) (Value, error)
	guarantees() []string
	onShift()
	release()
}

type typedRegistration[T any] struct {
	v    Valuer[T]
	less LessFunc[T]
}

func (r *typedRegistration[T]) computeErased(loc Location) (Value, error) {
	val, err := r.v.Compute(loc)
	if err != nil {
		return nil, err
	}
	return &valueBox[T]{v: val, less: r.less}, nil
}

func (r *typedRegistration[T]) guarantees() []string { return r.v.Guarantees() }
func (r *typedRegistration[T]) onShift()             { r.v.OnShift() }

// release closes r.v if it implements io.Closer. Store.Close calls this
// only for ids registered with takeOwnership set.
func (r *typedRegistration[T]) release() {
	if c, ok := any(r.v).(io.Closer); ok {
		c.Close()
	}
}
