// pkg/galaxy/group.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

import (
	"github.com/google/uuid"

	"github.com/stellarcart/galmap/pkg/util"
)

// RouteGroup is a named collection of routes (a trade lane label, say). It
// holds membership only; no geometry. A group that loses its last member
// is deleted rather than kept around empty.
type RouteGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	RouteIDs []string `json:"route_ids"`
}

// NewRouteGroup returns a group containing the given routes; creation with
// an empty selection is rejected.
func NewRouteGroup(name string, routeIDs []string) (*RouteGroup, error) {
	if len(routeIDs) == 0 {
		return nil, ErrEmptySelection
	}
	return &RouteGroup{
		ID:       uuid.NewString(),
		Name:     name,
		RouteIDs: util.DuplicateSlice(routeIDs),
	}, nil
}

func (g *RouteGroup) Contains(routeID string) bool {
	for _, id := range g.RouteIDs {
		if id == routeID {
			return true
		}
	}
	return false
}

// Prune removes the given route from the group's membership, returning
// true if the group is now empty and should be deleted.
func (g *RouteGroup) Prune(routeID string) (empty bool) {
	g.RouteIDs = util.FilterSlice(g.RouteIDs, func(id string) bool { return id != routeID })
	return len(g.RouteIDs) == 0
}

// ReplaceMember swaps one route id for one or more replacements, keeping
// the membership position; used when a member route is split in two.
func (g *RouteGroup) ReplaceMember(routeID string, replacements ...string) {
	for i, id := range g.RouteIDs {
		if id == routeID {
			ids := util.DuplicateSlice(g.RouteIDs[:i])
			ids = append(ids, replacements...)
			g.RouteIDs = append(ids, g.RouteIDs[i+1:]...)
			return
		}
	}
}
