// pkg/editor/controller.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package editor

import (
	"log/slog"

	"github.com/stellarcart/galmap/pkg/galaxy"
	"github.com/stellarcart/galmap/pkg/log"
	"github.com/stellarcart/galmap/pkg/util"
)

// State is the interaction controller's current mode. Exactly one edit
// gesture can be in flight at a time; the state machine is what enforces
// that (you cannot start drawing a route mid-reshape, for example).
type State int

const (
	// StateIdle: nothing selected, no gesture in progress.
	StateIdle State = iota
	// StateRouteSelected: one route selected for editing.
	StateRouteSelected
	// StateDrawing: a route draw gesture is accumulating waypoints.
	StateDrawing
	// StateReshaping: a ghost-line stroke is being captured over the
	// selected route.
	StateReshaping
)

func (s State) String() string {
	return [...]string{"Idle", "RouteSelected", "Drawing", "Reshaping"}[s]
}

// Action is an editing operation the controller can legally offer (in a
// context menu, say) given the current selection state.
type Action int

const (
	ActionInsertSystem Action = iota
	ActionRemoveSystem
	ActionSplit
	ActionMerge
	ActionReshape
	ActionResetToStraight
	ActionRename
	ActionDelete
)

// Controller translates pointer/keyboard gestures into engine operations.
// It holds only decision state, no GUI toolkit types; the windowing layer
// feeds it resolved targets (system hit, route hit, empty space) and it
// calls the engine. Engine rejections are surfaced to the user by the
// dialog layer; here they just leave the state unchanged.
type Controller struct {
	engine *Engine
	lg     *log.Logger

	state         State
	selectedRoute string
	// Ctrl-clicked routes accumulate here for group creation and merge;
	// this multi-selection is orthogonal to the primary selection.
	multiSelected []string

	// Draw gesture buffers, discarded on cancel.
	drawStartSystem string
	drawWaypoints   [][2]float32

	// Reshape stroke buffer.
	stroke [][2]float32
}

func NewController(engine *Engine, lg *log.Logger) *Controller {
	return &Controller{engine: engine, lg: lg}
}

func (c *Controller) State() State          { return c.state }
func (c *Controller) SelectedRoute() string { return c.selectedRoute }
func (c *Controller) MultiSelected() []string {
	return util.DuplicateSlice(c.multiSelected)
}

// ClickSystem handles a primary click on a system. Outside of a gesture
// it starts a route draw; during a draw it either cancels (same system)
// or commits the new route (different system).
func (c *Controller) ClickSystem(systemID string) (*galaxy.Route, error) {
	switch c.state {
	case StateDrawing:
		if systemID == c.drawStartSystem {
			// Clicking the starting system again abandons the draw.
			c.Cancel()
			return nil, nil
		}
		start, waypoints := c.drawStartSystem, c.drawWaypoints
		c.drawStartSystem, c.drawWaypoints = "", nil
		r, err := c.engine.CreateRoute(start, systemID, waypoints)
		if err != nil {
			// Back to whatever was selected before the draw started,
			// same as Cancel.
			c.state = util.Select(c.selectedRoute != "", StateRouteSelected, StateIdle)
			return nil, err
		}
		// Newly created routes come up selected.
		c.state = StateRouteSelected
		c.selectedRoute = r.ID
		return r, nil

	case StateReshaping:
		// Mid-stroke clicks don't retarget anything.
		return nil, nil

	default:
		c.state = StateDrawing
		c.drawStartSystem = systemID
		c.drawWaypoints = nil
		c.lg.Debug("started route draw", slog.String("system", systemID))
		return nil, nil
	}
}

// Click handles a primary click given only its map position, resolving a
// system hit with the preferences snap radius. Route hit testing needs
// the rendered geometry and stays with the windowing layer, which calls
// ClickRoute directly.
func (c *Controller) Click(p [2]float32) (*galaxy.Route, error) {
	if id := galaxy.FindSystemAt(p, c.engine.Project.Systems, c.engine.Prefs.SnapRadius); id != "" {
		return c.ClickSystem(id)
	}
	c.ClickEmpty(p)
	return nil, nil
}

// ClickEmpty handles a primary click on empty space: a waypoint during a
// draw, a deselect otherwise.
func (c *Controller) ClickEmpty(p [2]float32) {
	switch c.state {
	case StateDrawing:
		c.drawWaypoints = append(c.drawWaypoints, p)
	case StateReshaping:
		// ignore
	default:
		c.state = StateIdle
		c.selectedRoute = ""
	}
}

// ClickRoute selects the clicked route. During a gesture it is ignored.
func (c *Controller) ClickRoute(routeID string) {
	if c.state == StateDrawing || c.state == StateReshaping {
		return
	}
	c.state = StateRouteSelected
	c.selectedRoute = routeID
}

// ToggleMultiSelect adds or removes a route from the ctrl-click
// multi-selection used for grouping and merging.
func (c *Controller) ToggleMultiSelect(routeID string) {
	for i, id := range c.multiSelected {
		if id == routeID {
			c.multiSelected = util.DeleteSliceElement(c.multiSelected, i)
			return
		}
	}
	c.multiSelected = append(c.multiSelected, routeID)
}

// Cancel discards any in-progress gesture (Escape or right-click during a
// draw/reshape). Committed state is untouched.
func (c *Controller) Cancel() {
	if c.state == StateDrawing || c.state == StateReshaping {
		c.lg.Debug("cancelled gesture", slog.String("state", c.state.String()))
		c.drawStartSystem, c.drawWaypoints = "", nil
		c.stroke = nil
		c.state = util.Select(c.selectedRoute != "", StateRouteSelected, StateIdle)
	}
}

// BeginReshape starts ghost-line capture over the selected route. Only a
// selected simple route can be reshaped; chain routes always render as
// straight segments.
func (c *Controller) BeginReshape() bool {
	if c.state != StateRouteSelected {
		return false
	}
	r, ok := c.engine.Project.Routes[c.selectedRoute]
	if !ok || r.IsChain() {
		return false
	}
	c.state = StateReshaping
	c.stroke = nil
	return true
}

// StrokePoint appends a raw pointer sample to the reshape stroke.
func (c *Controller) StrokePoint(p [2]float32) {
	if c.state == StateReshaping {
		c.stroke = append(c.stroke, p)
	}
}

// EndReshape commits the captured stroke (modifier or button released).
func (c *Controller) EndReshape() error {
	if c.state != StateReshaping {
		return nil
	}
	stroke := c.stroke
	c.stroke = nil
	c.state = StateRouteSelected
	return c.engine.ReshapeFromStroke(c.selectedRoute, stroke)
}

// DeleteSelected deletes the selected route.
func (c *Controller) DeleteSelected() error {
	if c.state != StateRouteSelected {
		return nil
	}
	id := c.selectedRoute
	c.state = StateIdle
	c.selectedRoute = ""
	c.multiSelected = util.FilterSlice(c.multiSelected, func(mid string) bool { return mid != id })
	return c.engine.DeleteRoute(id)
}

// RouteActions returns the operations legal for a context menu on the
// given route in the current state.
func (c *Controller) RouteActions(routeID string) []Action {
	if c.state == StateDrawing || c.state == StateReshaping {
		return nil
	}
	r, ok := c.engine.Project.Routes[routeID]
	if !ok {
		return nil
	}

	actions := []Action{ActionRename, ActionDelete}
	if !r.IsChain() {
		actions = append(actions, ActionReshape)
		if len(r.ShapePoints) > 0 {
			actions = append(actions, ActionResetToStraight)
		}
	}
	if c.mergeTargets(routeID) {
		actions = append(actions, ActionMerge)
	}
	return actions
}

// mergeTargets reports whether merge should be offered: exactly two
// multi-selected routes, one of them the clicked one, sharing an
// effective endpoint.
func (c *Controller) mergeTargets(routeID string) bool {
	if len(c.multiSelected) != 2 {
		return false
	}
	if c.multiSelected[0] != routeID && c.multiSelected[1] != routeID {
		return false
	}
	a, ok := c.engine.Project.Routes[c.multiSelected[0]]
	if !ok {
		return false
	}
	b, ok := c.engine.Project.Routes[c.multiSelected[1]]
	if !ok {
		return false
	}
	startA, endA := a.Endpoints()
	startB, endB := b.Endpoints()
	return startA == startB || startA == endB || endA == startB || endA == endB
}

// SystemActions returns the operations legal for a context menu on the
// given system, which depend on its relationship to the selected route:
// members can be removed (and interior members split at), non-members
// inserted.
func (c *Controller) SystemActions(systemID string) []Action {
	if c.state != StateRouteSelected {
		return nil
	}
	r, ok := c.engine.Project.Routes[c.selectedRoute]
	if !ok {
		return nil
	}

	idx := r.SystemIndex(systemID)
	if idx < 0 {
		return []Action{ActionInsertSystem}
	}
	var actions []Action
	if len(r.Systems) > 2 {
		actions = append(actions, ActionRemoveSystem)
	}
	if idx > 0 && idx < len(r.Systems)-1 {
		actions = append(actions, ActionSplit)
	}
	return actions
}

// MergeMultiSelected merges the two multi-selected routes and selects
// the result.
func (c *Controller) MergeMultiSelected() (*galaxy.Route, error) {
	if len(c.multiSelected) != 2 {
		return nil, galaxy.ErrNoSharedEndpoint
	}
	r, err := c.engine.MergeRoutes(c.multiSelected[0], c.multiSelected[1])
	if err != nil {
		return nil, err
	}
	c.multiSelected = nil
	c.state = StateRouteSelected
	c.selectedRoute = r.ID
	return r, nil
}

// GroupMultiSelected creates a group from the multi-selection and clears
// it.
func (c *Controller) GroupMultiSelected(name string) (*galaxy.RouteGroup, error) {
	g, err := c.engine.CreateGroup(name, c.multiSelected)
	if err != nil {
		return nil, err
	}
	c.multiSelected = nil
	return g, nil
}
