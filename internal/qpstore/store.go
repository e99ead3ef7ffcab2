package qpstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/rwcarlsen/femloop/internal/ctxlog"
)

// maxMapperDepth bounds mapper chain resolution, matching spec's
// "implementation-chosen, e.g. 64" depth limit.
const maxMapperDepth = 64

// MapperFunc resolves a Location to the id of the value that should
// actually service the request. Returning ErrMissingMapping (or wrapping
// it) signals that no underlying id covers this Location.
type MapperFunc func(loc Location) (int, error)

// KeyFunc normalizes a Location before it is used as a history-map key,
// making the addressing policy injectable per spec's Location
// "comparator" requirement. The identity function is used by default.
type KeyFunc func(Location) Location

// Store is a per-quadrature-point value cache: lazily computed,
// memoized only across a shift boundary via the current/old/older
// tiers, with mapper-based name aliasing and cyclic-dependency
// detection. It is not safe for concurrent use; see the package-level
// concurrency note in doc.go's sibling packages.
type Store struct {
	errorCheck bool
	keyFn      KeyFunc

	names map[string]int

	regs         []registration
	mappers      []MapperFunc
	ownership    []bool
	wantOld      []bool
	wantOlder    []bool
	externalCurr []bool

	current []map[Location]Value
	old     []map[Location]Value
	older   []map[Location]Value

	stack   []map[int]struct{}
	priming map[int]bool
}

// NewStore creates an empty Store. errorCheck enables the cycle guard;
// disabling it skips that check on every Get. The type guard, guarantee
// propagation and mapper resolution are unconditional: a caller is never
// handed a value of the wrong type or one that fails to meet a requested
// guarantee, regardless of errorCheck.
func NewStore(errorCheck bool, keyFn ...KeyFunc) *Store {
	kf := KeyFunc(func(l Location) Location { return l })
	if len(keyFn) > 0 && keyFn[0] != nil {
		kf = keyFn[0]
	}
	return &Store{
		errorCheck: errorCheck,
		keyFn:      kf,
		names:      make(map[string]int),
		stack:      []map[int]struct{}{make(map[int]struct{})},
		priming:    make(map[int]bool),
	}
}

// Add registers a new value under name, returning its stable id. The
// ownership flag records whether the store owns v: Store.Close closes
// owned valuers that implement io.Closer and leaves the others alone.
func Add[T any](s *Store, name string, v Valuer[T], takeOwnership bool, less LessFunc[T]) (int, error) {
	if _, exists := s.names[name]; exists {
		return 0, fmt.Errorf("qpstore: add %q: %w", name, ErrNameConflict)
	}
	id := len(s.regs)
	s.names[name] = id
	s.regs = append(s.regs, &typedRegistration[T]{v: v, less: less})
	s.mappers = append(s.mappers, nil)
	s.ownership = append(s.ownership, takeOwnership)
	s.wantOld = append(s.wantOld, false)
	s.wantOlder = append(s.wantOlder, false)
	s.externalCurr = append(s.externalCurr, false)
	s.current = append(s.current, make(map[Location]Value))
	s.old = append(s.old, make(map[Location]Value))
	s.older = append(s.older, make(map[Location]Value))
	return id, nil
}

// AddMapper registers a name whose resolution is delegated to fn: a
// request against this id calls fn(loc) and forwards to the id it
// returns, chasing further mappers up to maxMapperDepth.
func (s *Store) AddMapper(name string, fn MapperFunc) (int, error) {
	if _, exists := s.names[name]; exists {
		return 0, fmt.Errorf("qpstore: addMapper %q: %w", name, ErrNameConflict)
	}
	id := len(s.regs)
	s.names[name] = id
	s.regs = append(s.regs, nil)
	s.mappers = append(s.mappers, fn)
	s.ownership = append(s.ownership, false)
	s.wantOld = append(s.wantOld, false)
	s.wantOlder = append(s.wantOlder, false)
	s.externalCurr = append(s.externalCurr, false)
	s.current = append(s.current, make(map[Location]Value))
	s.old = append(s.old, make(map[Location]Value))
	s.older = append(s.older, make(map[Location]Value))
	return id, nil
}

// ID looks up the id registered under name.
func (s *Store) ID(name string) (int, error) {
	id, ok := s.names[name]
	if !ok {
		return 0, fmt.Errorf("qpstore: id %q: %w", name, ErrUnknownName)
	}
	return id, nil
}

// WantOld arms old-history tracking for name.
func (s *Store) WantOld(name string) error {
	id, err := s.ID(name)
	if err != nil {
		return err
	}
	s.wantOld[id] = true
	return nil
}

// WantOlder arms older-history tracking for name.
func (s *Store) WantOlder(name string) error {
	id, err := s.ID(name)
	if err != nil {
		return err
	}
	s.wantOlder[id] = true
	return nil
}

func (s *Store) checkID(id int) error {
	if id < 0 || id >= len(s.regs) {
		return fmt.Errorf("qpstore: id %d: %w", id, ErrUnknownID)
	}
	return nil
}

// resolve chases a mapper chain down to a value-backed id.
func (s *Store) resolve(id int, loc Location, depth int) (int, error) {
	if err := s.checkID(id); err != nil {
		return 0, err
	}
	if s.regs[id] != nil {
		return id, nil
	}
	if depth >= maxMapperDepth {
		return 0, fmt.Errorf("qpstore: id %d: %w", id, ErrMapperLoop)
	}
	next, err := s.mappers[id](loc)
	if err != nil {
		return 0, fmt.Errorf("qpstore: id %d: mapper: %w", id, err)
	}
	return s.resolve(next, loc, depth+1)
}

func frameMembers(frame map[int]struct{}) []int {
	ids := make([]int, 0, len(frame))
	for id := range frame {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Store) pushFrame() { s.stack = append(s.stack, make(map[int]struct{})) }
func (s *Store) popFrame()  { s.stack = s.stack[:len(s.stack)-1] }
func (s *Store) topFrame() map[int]struct{} { return s.stack[len(s.stack)-1] }

func checkGuarantees(declared, required []string) error {
	if len(required) == 0 {
		return nil
	}
	have := make(map[string]struct{}, len(declared))
	for _, g := range declared {
		have[g] = struct{}{}
	}
	for _, want := range required {
		if _, ok := have[want]; !ok {
			return fmt.Errorf("qpstore: guarantee %q: %w", want, ErrMissingGuarantee)
		}
	}
	return nil
}

// computeAndStage invokes reg's computation under the cycle guard,
// stages the result into the current tier when history is armed, and
// (only for external==true, i.e. a direct caller-issued Get) marks
// external_curr for id.
func (s *Store) computeAndStage(ctx context.Context, id int, reg registration, loc Location, external bool) (Value, error) {
	if s.errorCheck {
		frame := s.topFrame()
		if _, dup := frame[id]; dup {
			return nil, fmt.Errorf("qpstore: computing id %d, cycle members %v: %w", id, frameMembers(frame), ErrCyclicValueDependency)
		}
		frame[id] = struct{}{}
		defer delete(frame, id)
	}

	val, err := reg.computeErased(loc)
	if err != nil {
		return nil, fmt.Errorf("qpstore: computing id %d: %w", id, err)
	}

	key := s.keyFn(loc)
	if s.wantOld[id] || s.wantOlder[id] {
		s.current[id][key] = val
	}
	if external {
		s.externalCurr[id] = true
		ctxlog.FromContext(ctx).Debug("qpstore: computed value", "id", id, "external", true)
	}
	return val, nil
}

// Get computes and returns the current value for id at loc.
func Get[T any](ctx context.Context, s *Store, id int, loc Location, guarantees ...string) (T, error) {
	var zero T
	resolvedID, err := s.resolve(id, loc, 0)
	if err != nil {
		return zero, err
	}
	reg, ok := s.regs[resolvedID].(*typedRegistration[T])
	if !ok {
		return zero, fmt.Errorf("qpstore: get id %d: %w", resolvedID, ErrTypeMismatch)
	}
	if err := checkGuarantees(reg.guarantees(), guarantees); err != nil {
		return zero, err
	}
	val, err := s.computeAndStage(ctx, resolvedID, reg, loc, true)
	if err != nil {
		return zero, err
	}
	return val.(*valueBox[T]).v, nil
}

// GetOld returns the stored prior value for id at loc, computing and
// staging a current value first if none exists yet for this location.
func GetOld[T any](ctx context.Context, s *Store, id int, loc Location, guarantees ...string) (T, error) {
	return getHistory[T](ctx, s, id, loc, s.getOldMap, s.wantOld, func(r *typedRegistration[T]) T { return r.v.InitialOld() }, guarantees...)
}

// GetOlder returns the stored value two shifts prior for id at loc,
// computing and staging a current value first if none exists yet for
// this location.
func GetOlder[T any](ctx context.Context, s *Store, id int, loc Location, guarantees ...string) (T, error) {
	return getHistory[T](ctx, s, id, loc, s.getOlderMap, s.wantOlder, func(r *typedRegistration[T]) T { return r.v.InitialOlder() }, guarantees...)
}

func (s *Store) getOldMap(id int) map[Location]Value   { return s.old[id] }
func (s *Store) getOlderMap(id int) map[Location]Value { return s.older[id] }

func getHistory[T any](
	ctx context.Context,
	s *Store,
	id int,
	loc Location,
	tier func(id int) map[Location]Value,
	armed []bool,
	initial func(*typedRegistration[T]) T,
	guarantees ...string,
) (T, error) {
	var zero T
	resolvedID, err := s.resolve(id, loc, 0)
	if err != nil {
		return zero, err
	}
	reg, ok := s.regs[resolvedID].(*typedRegistration[T])
	if !ok {
		return zero, fmt.Errorf("qpstore: getOld/getOlder id %d: %w", resolvedID, ErrTypeMismatch)
	}
	if err := checkGuarantees(reg.guarantees(), guarantees); err != nil {
		return zero, err
	}

	armed[resolvedID] = true

	s.pushFrame()
	defer s.popFrame()

	key := s.keyFn(loc)
	// A valuer whose Compute accumulates off its own prior value (new =
	// old + delta) will re-enter this exact GetOld call while priming
	// its own current entry. s.priming bounds that to one nesting level:
	// the re-entrant call falls straight through to the stored/initial
	// old value instead of priming again.
	if _, ok := s.current[resolvedID][key]; !ok && !s.priming[resolvedID] {
		s.priming[resolvedID] = true
		_, err := s.computeAndStage(ctx, resolvedID, reg, loc, false)
		delete(s.priming, resolvedID)
		if err != nil {
			return zero, err
		}
	}

	if v, ok := tier(resolvedID)[key]; ok {
		return v.(*valueBox[T]).v, nil
	}
	return initial(reg), nil
}

// Shift rotates history tiers: older <- old, old <- current, current <-
// empty, and notifies every registered valuer. Per spec's concurrency
// contract it is a strict barrier and must never be called while a Get
// computation is in flight.
func (s *Store) Shift(ctx context.Context) {
	s.older = s.old
	s.old = s.current
	s.current = make([]map[Location]Value, len(s.regs))
	for i := range s.current {
		s.current[i] = make(map[Location]Value)
	}
	for _, reg := range s.regs {
		if reg != nil {
			reg.onShift()
		}
	}
	ctxlog.FromContext(ctx).Debug("qpstore: shifted history tiers", "ids", len(s.regs))
}

// Close releases every valuer registered with takeOwnership set and that
// implements io.Closer. It does not clear the store's own maps; Close is
// meant to be called once, at the end of a simulation run.
func (s *Store) Close() {
	for id, reg := range s.regs {
		if reg != nil && s.ownership[id] {
			reg.release()
		}
	}
}

// Project relocates old-tier entries from srcs to dsts, one-to-one by
// index, across every registered id. Any existing entry at a
// destination is dropped before the copy, and the source entry is
// removed after it. Intended to be called after Shift and before any
// GetOld, in support of mesh adaptation.
func (s *Store) Project(srcs, dsts []Location) error {
	if len(srcs) != len(dsts) {
		return fmt.Errorf("qpstore: project: %d srcs but %d dsts", len(srcs), len(dsts))
	}
	for id, reg := range s.regs {
		if reg == nil {
			continue
		}
		om := s.old[id]
		for i, src := range srcs {
			srcKey := s.keyFn(src)
			dstKey := s.keyFn(dsts[i])
			v, ok := om[srcKey]
			if !ok || srcKey == dstKey {
				continue
			}
			delete(om, dstKey)
			om[dstKey] = v.Clone()
			delete(om, srcKey)
		}
	}
	return nil
}
