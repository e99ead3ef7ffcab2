// Package qpstore implements a per-quadrature-point value store: a
// heterogeneous, name-indexed cache of lazily-computed values keyed by
// mesh Location, with current/old/older history tiers, cyclic-dependency
// detection, guarantee checking, and name aliasing via mappers.
package qpstore
