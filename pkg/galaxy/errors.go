// pkg/galaxy/errors.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

import "errors"

// Errors returned by route editing operations. All of these are rejected
// user actions, not faults: the operation that returns one of them has
// left the map unchanged.
var (
	ErrSameSystem           = errors.New("Route must connect two different systems")
	ErrDuplicateRoute       = errors.New("A route already exists between these systems")
	ErrBelowMinimumSystems  = errors.New("Route must have at least 2 systems")
	ErrSystemAlreadyInRoute = errors.New("System is already part of the route")
	ErrSystemNotInRoute     = errors.New("System is not part of the route")
	ErrSplitAtEndpoint      = errors.New("Cannot split route at the first or last system")
	ErrNoSharedEndpoint     = errors.New("Routes do not share a common endpoint")
	ErrSameRoute            = errors.New("Cannot merge a route with itself")
	ErrEmptySelection       = errors.New("No routes selected")
	ErrUnknownRoute         = errors.New("No route with that id")
	ErrUnknownSystem        = errors.New("No system with that id")
	ErrChainRoute           = errors.New("Operation only applies to two-system routes")
	ErrNoSuchShapePoint     = errors.New("No shape point at that index")
)
