package qpstore

import "errors"

var (
	// ErrNameConflict is returned by Add/AddMapper when the given name is
	// already registered.
	ErrNameConflict = errors.New("qpstore: name already registered")

	// ErrUnknownName is returned by ID for an unregistered name.
	ErrUnknownName = errors.New("qpstore: unknown name")

	// ErrUnknownID is returned when an id falls outside the registered
	// range.
	ErrUnknownID = errors.New("qpstore: unknown id")

	// ErrTypeMismatch is returned when a Get/GetOld/GetOlder call's type
	// parameter does not match the type the id was registered with.
	ErrTypeMismatch = errors.New("qpstore: type mismatch")

	// ErrCyclicValueDependency is returned when a value's computation
	// transitively requested its own current value.
	ErrCyclicValueDependency = errors.New("qpstore: cyclic value dependency")

	// ErrMapperLoop is returned when a mapper chain exceeds the maximum
	// resolution depth.
	ErrMapperLoop = errors.New("qpstore: mapper chain too deep")

	// ErrMissingGuarantee is returned when a Get call demands a guarantee
	// the valuer does not declare.
	ErrMissingGuarantee = errors.New("qpstore: missing guarantee")

	// ErrMissingMapping is returned by a mapper function when no
	// underlying id covers the requested Location.
	ErrMissingMapping = errors.New("qpstore: mapper has no mapping for location")
)
