// pkg/editor/engine.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package editor

import (
	"log/slog"

	"github.com/brunoga/deep"

	"github.com/stellarcart/galmap/pkg/galaxy"
	"github.com/stellarcart/galmap/pkg/log"
	"github.com/stellarcart/galmap/pkg/math"
	"github.com/stellarcart/galmap/pkg/util"
)

// Engine applies route editing operations to a project. All operations
// validate fully before touching anything and mutate deep copies that are
// only installed on success, so an operation that returns an error is an
// exact no-op on the document.
type Engine struct {
	Project *galaxy.Project
	Prefs   Prefs
	lg      *log.Logger
}

func NewEngine(p *galaxy.Project, prefs Prefs, lg *log.Logger) *Engine {
	return &Engine{Project: p, Prefs: prefs, lg: lg}
}

// defaultRouteName returns the "<StartName> - <EndName>" snapshot used
// when a route is created; renaming a system later does not rename the
// route.
func (e *Engine) defaultRouteName(startID, endID string) string {
	start, ok := e.Project.SystemName(startID)
	if !ok {
		start = startID
	}
	end, ok := e.Project.SystemName(endID)
	if !ok {
		end = endID
	}
	return start + " - " + end
}

// CreateRoute makes a new simple route from startID to endID, with any
// accumulated draw-preview waypoints becoming its initial shape points.
func (e *Engine) CreateRoute(startID, endID string, waypoints [][2]float32) (*galaxy.Route, error) {
	if startID == endID {
		return nil, galaxy.ErrSameSystem
	}
	for _, id := range []string{startID, endID} {
		if _, ok := e.Project.Systems[id]; !ok {
			return nil, galaxy.ErrUnknownSystem
		}
	}
	if e.Project.RouteBetween(startID, endID) != nil {
		return nil, galaxy.ErrDuplicateRoute
	}

	r := galaxy.NewRoute(e.defaultRouteName(startID, endID), startID, endID)
	r.ShapePoints = util.DuplicateSlice(waypoints)
	e.Project.Routes[r.ID] = r
	e.lg.Debug("created route", slog.String("id", r.ID), slog.String("name", r.Name))
	return r, nil
}

// InsertSystem adds a system to the route's member chain after the given
// position (0 inserts at the start of the route). A simple route is
// promoted to chain mode, which discards its shape points.
func (e *Engine) InsertSystem(routeID, systemID string, afterIndex int) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	if _, ok := e.Project.Systems[systemID]; !ok {
		return galaxy.ErrUnknownSystem
	}
	if r.ContainsSystem(systemID) {
		return galaxy.ErrSystemAlreadyInRoute
	}

	rc := deep.MustCopy(r)
	idx := math.Clamp(afterIndex, 0, len(rc.Systems))
	rc.Systems = util.InsertSliceElement(rc.Systems, idx, systemID)
	// Now a chain: chains render as straight segments only.
	rc.ShapePoints = nil

	e.Project.Routes[routeID] = rc
	e.lg.Debug("inserted system into route", slog.String("route", routeID),
		slog.String("system", systemID), slog.Int("index", idx))
	return nil
}

// InsertShapePoint adds a shape point to a simple route at the position
// in the shape-point ordering determined by which current path segment is
// closest to the click, so mid-route clicks stay order-correct instead of
// being appended blindly.
func (e *Engine) InsertShapePoint(routeID string, click [2]float32) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	if r.IsChain() {
		return galaxy.ErrChainRoute
	}

	start, ok := e.Project.SystemPosition(r.Systems[0])
	if !ok {
		return galaxy.ErrUnknownSystem
	}
	end, ok := e.Project.SystemPosition(r.Systems[1])
	if !ok {
		return galaxy.ErrUnknownSystem
	}

	anchors := make([][2]float32, 0, len(r.ShapePoints)+2)
	anchors = append(anchors, start)
	anchors = append(anchors, r.ShapePoints...)
	anchors = append(anchors, end)

	best, dmin := 0, float32(1e30)
	for i := 0; i < len(anchors)-1; i++ {
		if d := math.PointSegmentDistance(click, anchors[i], anchors[i+1]); d < dmin {
			best, dmin = i, d
		}
	}

	rc := deep.MustCopy(r)
	rc.ShapePoints = util.InsertSliceElement(rc.ShapePoints, best, click)
	e.Project.Routes[routeID] = rc
	return nil
}

// RemoveSystem removes a member system from a chain route; the removal is
// rejected if it would leave fewer than two members. A three-member chain
// demotes back to a simple route.
func (e *Engine) RemoveSystem(routeID, systemID string) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	idx := r.SystemIndex(systemID)
	if idx < 0 {
		return galaxy.ErrSystemNotInRoute
	}
	if len(r.Systems) <= 2 {
		return galaxy.ErrBelowMinimumSystems
	}

	rc := deep.MustCopy(r)
	rc.Systems = util.DeleteSliceElement(rc.Systems, idx)
	e.Project.Routes[routeID] = rc
	e.lg.Debug("removed system from route", slog.String("route", routeID),
		slog.String("system", systemID))
	return nil
}

// DeleteShapePoint removes the shape point at the given index; deleting
// the last one leaves the route rendering as a straight line.
func (e *Engine) DeleteShapePoint(routeID string, index int) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	if index < 0 || index >= len(r.ShapePoints) {
		return galaxy.ErrNoSuchShapePoint
	}

	rc := deep.MustCopy(r)
	rc.ShapePoints = util.DeleteSliceElement(rc.ShapePoints, index)
	e.Project.Routes[routeID] = rc
	return nil
}

// SplitRoute splits a route at an interior member system, replacing it
// with two new routes [start..split] and [split..end]. Both inherit the
// original's class, travel type, hazards, and group memberships.
func (e *Engine) SplitRoute(routeID, splitSystemID string) (*galaxy.Route, *galaxy.Route, error) {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return nil, nil, galaxy.ErrUnknownRoute
	}
	idx := r.SystemIndex(splitSystemID)
	if idx < 0 {
		return nil, nil, galaxy.ErrSystemNotInRoute
	}
	if idx == 0 || idx == len(r.Systems)-1 {
		return nil, nil, galaxy.ErrSplitAtEndpoint
	}

	makePart := func(systems []string) *galaxy.Route {
		part := galaxy.NewRoute(e.defaultRouteName(systems[0], systems[len(systems)-1]),
			systems[0], systems[len(systems)-1])
		part.Systems = util.DuplicateSlice(systems)
		part.Class = r.Class
		part.TravelType = r.TravelType
		part.Hazards = util.DuplicateSlice(r.Hazards)
		return part
	}
	first := makePart(r.Systems[:idx+1])
	second := makePart(r.Systems[idx:])

	delete(e.Project.Routes, routeID)
	e.Project.Routes[first.ID] = first
	e.Project.Routes[second.ID] = second
	for _, gid := range e.Project.GroupsContaining(routeID) {
		e.Project.Groups[gid].ReplaceMember(routeID, first.ID, second.ID)
	}

	e.lg.Debug("split route", slog.String("route", routeID),
		slog.String("at", splitSystemID),
		slog.String("first", first.ID), slog.String("second", second.ID))
	return first, second, nil
}

// MergeRoutes joins two routes that share an effective endpoint into one
// chain route, reversing one side as needed so the shared system becomes
// a single interior joint. The merged route inherits route a's attributes
// and the group memberships of both.
func (e *Engine) MergeRoutes(idA, idB string) (*galaxy.Route, error) {
	if idA == idB {
		// Both endpoint pairs trivially match; without this check the
		// orientation switch below would build a self-loop chain.
		return nil, galaxy.ErrSameRoute
	}
	a, ok := e.Project.Routes[idA]
	if !ok {
		return nil, galaxy.ErrUnknownRoute
	}
	b, ok := e.Project.Routes[idB]
	if !ok {
		return nil, galaxy.ErrUnknownRoute
	}

	startA, endA := a.Endpoints()
	startB, endB := b.Endpoints()

	var merged []string
	switch {
	case endA == startB:
		merged = append(a.MemberSystems(), b.Systems[1:]...)
	case endA == endB:
		merged = append(a.MemberSystems(), util.ReverseSlice(b.Systems)[1:]...)
	case startA == endB:
		merged = append(b.MemberSystems(), a.Systems[1:]...)
	case startA == startB:
		merged = append(util.ReverseSlice(b.Systems), a.Systems[1:]...)
	default:
		return nil, galaxy.ErrNoSharedEndpoint
	}

	r := galaxy.NewRoute(e.defaultRouteName(merged[0], merged[len(merged)-1]),
		merged[0], merged[len(merged)-1])
	r.Systems = merged
	r.Class = a.Class
	r.TravelType = a.TravelType
	r.Hazards = util.DuplicateSlice(a.Hazards)

	delete(e.Project.Routes, idA)
	delete(e.Project.Routes, idB)
	e.Project.Routes[r.ID] = r
	for _, old := range []string{idA, idB} {
		for _, gid := range e.Project.GroupsContaining(old) {
			g := e.Project.Groups[gid]
			if g.Contains(r.ID) {
				g.Prune(old)
			} else {
				g.ReplaceMember(old, r.ID)
			}
		}
	}

	e.lg.Debug("merged routes", slog.String("a", idA), slog.String("b", idB),
		slog.String("merged", r.ID))
	return r, nil
}

// ReshapeFromStroke replaces a simple route's shape with a freehand
// ghost-line stroke: the raw points are decimated and smoothed, the ends
// are snapped exactly onto the current system positions, and the interior
// becomes the new shape points. A stroke too short to shape anything
// resets the route to a straight line.
func (e *Engine) ReshapeFromStroke(routeID string, stroke [][2]float32) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	if r.IsChain() {
		return galaxy.ErrChainRoute
	}
	start, ok := e.Project.SystemPosition(r.Systems[0])
	if !ok {
		return galaxy.ErrUnknownSystem
	}
	end, ok := e.Project.SystemPosition(r.Systems[1])
	if !ok {
		return galaxy.ErrUnknownSystem
	}

	rc := deep.MustCopy(r)
	if len(stroke) < 2 {
		rc.ShapePoints = nil
	} else {
		pts := math.DecimateStroke(stroke, e.Prefs.DecimateTarget)
		pts = math.SmoothStroke(pts, e.Prefs.SmoothWindow)
		pts[0], pts[len(pts)-1] = start, end
		// Interior points only; the anchors come from the systems at
		// render time.
		rc.ShapePoints = util.DuplicateSlice(pts[1 : len(pts)-1])
	}

	e.Project.Routes[routeID] = rc
	e.lg.Debug("reshaped route from stroke", slog.String("route", routeID),
		slog.Int("rawPoints", len(stroke)), slog.Int("shapePoints", len(rc.ShapePoints)))
	return nil
}

// ResetToStraight clears a route's shape points; calling it again is a
// no-op.
func (e *Engine) ResetToStraight(routeID string) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	if len(r.ShapePoints) == 0 {
		return nil
	}
	rc := deep.MustCopy(r)
	rc.ShapePoints = nil
	e.Project.Routes[routeID] = rc
	return nil
}

// RenameRoute sets the route's display name.
func (e *Engine) RenameRoute(routeID, name string) error {
	r, ok := e.Project.Routes[routeID]
	if !ok {
		return galaxy.ErrUnknownRoute
	}
	rc := deep.MustCopy(r)
	rc.Name = name
	e.Project.Routes[routeID] = rc
	return nil
}

// DeleteRoute removes a route from the document and from every group's
// membership; groups left empty are deleted with it.
func (e *Engine) DeleteRoute(routeID string) error {
	if _, ok := e.Project.Routes[routeID]; !ok {
		return galaxy.ErrUnknownRoute
	}
	delete(e.Project.Routes, routeID)
	for _, gid := range e.Project.GroupsContaining(routeID) {
		if e.Project.Groups[gid].Prune(routeID) {
			e.lg.Debug("deleting emptied route group", slog.String("group", gid))
			delete(e.Project.Groups, gid)
		}
	}
	e.lg.Debug("deleted route", slog.String("route", routeID))
	return nil
}

// CreateGroup makes a named group from the given routes.
func (e *Engine) CreateGroup(name string, routeIDs []string) (*galaxy.RouteGroup, error) {
	for _, id := range routeIDs {
		if _, ok := e.Project.Routes[id]; !ok {
			return nil, galaxy.ErrUnknownRoute
		}
	}
	g, err := galaxy.NewRouteGroup(name, routeIDs)
	if err != nil {
		return nil, err
	}
	e.Project.Groups[g.ID] = g
	e.lg.Debug("created route group", slog.String("group", g.ID),
		slog.String("name", name), slog.Int("routes", len(routeIDs)))
	return g, nil
}
