// pkg/editor/controller_test.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package editor

import (
	"errors"
	"slices"
	"testing"

	"github.com/stellarcart/galmap/pkg/galaxy"
)

func testController() (*Controller, *Engine) {
	e := testEngine()
	return NewController(e, nil), e
}

func TestControllerDrawRoute(t *testing.T) {
	c, e := testController()

	if _, err := c.ClickSystem("S1"); err != nil {
		t.Fatalf("first click: %v", err)
	}
	if c.State() != StateDrawing {
		t.Fatalf("state %v", c.State())
	}

	// Empty-space clicks during a draw become waypoints.
	c.ClickEmpty([2]float32{30, 20})
	c.ClickEmpty([2]float32{60, 25})

	r, err := c.ClickSystem("S2")
	if err != nil {
		t.Fatalf("commit click: %v", err)
	}
	if r == nil {
		t.Fatalf("no route created")
	}
	if len(r.ShapePoints) != 2 {
		t.Errorf("waypoints %v", r.ShapePoints)
	}
	if c.State() != StateRouteSelected || c.SelectedRoute() != r.ID {
		t.Errorf("new route not selected: state %v, selected %q", c.State(), c.SelectedRoute())
	}
	if len(e.Project.Routes) != 1 {
		t.Errorf("project has %d routes", len(e.Project.Routes))
	}
}

func TestControllerClickSnap(t *testing.T) {
	c, e := testController()

	// A click within the snap radius of a system resolves to it.
	if _, err := c.Click([2]float32{5, 5}); err != nil {
		t.Fatalf("click: %v", err)
	}
	if c.State() != StateDrawing {
		t.Fatalf("near-system click did not start a draw: state %v", c.State())
	}
	// Out of range of every system: a waypoint.
	c.Click([2]float32{50, 50})
	r, err := c.Click([2]float32{98, 3})
	if err != nil {
		t.Fatalf("commit click: %v", err)
	}
	if r == nil || !slices.Equal(r.Systems, []string{"S1", "S2"}) {
		t.Fatalf("route %+v", r)
	}
	if len(r.ShapePoints) != 1 {
		t.Errorf("waypoints %v", r.ShapePoints)
	}
	if len(e.Project.Routes) != 1 {
		t.Errorf("project has %d routes", len(e.Project.Routes))
	}
}

func TestControllerDrawSameSystemCancels(t *testing.T) {
	c, e := testController()

	c.ClickSystem("S1")
	c.ClickEmpty([2]float32{30, 20})
	r, err := c.ClickSystem("S1")
	if r != nil || err != nil {
		t.Errorf("same-system click: route %v err %v", r, err)
	}
	if c.State() != StateIdle {
		t.Errorf("state %v after abandoned draw", c.State())
	}
	if len(e.Project.Routes) != 0 {
		t.Errorf("abandoned draw created a route")
	}

	// The discarded waypoints must not leak into the next draw.
	c.ClickSystem("S1")
	r, err = c.ClickSystem("S2")
	if err != nil {
		t.Fatalf("second draw: %v", err)
	}
	if len(r.ShapePoints) != 0 {
		t.Errorf("stale waypoints %v", r.ShapePoints)
	}
}

func TestControllerDrawDuplicateRejected(t *testing.T) {
	c, e := testController()
	r, _ := e.CreateRoute("S1", "S2", nil)

	c.ClickSystem("S1")
	if _, err := c.ClickSystem("S2"); !errors.Is(err, galaxy.ErrDuplicateRoute) {
		t.Errorf("got %v", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state %v after failed commit", c.State())
	}

	// With a route selected before the draw, a failed commit restores
	// that selection rather than leaving it half-cleared.
	c.ClickRoute(r.ID)
	c.ClickSystem("S1")
	if _, err := c.ClickSystem("S2"); !errors.Is(err, galaxy.ErrDuplicateRoute) {
		t.Errorf("got %v", err)
	}
	if c.State() != StateRouteSelected || c.SelectedRoute() != r.ID {
		t.Errorf("state %v selected %q after failed commit", c.State(), c.SelectedRoute())
	}
}

func TestControllerCancel(t *testing.T) {
	c, e := testController()
	r, _ := e.CreateRoute("S1", "S2", nil)

	// Cancel during a draw returns to the prior selection.
	c.ClickRoute(r.ID)
	c.ClickSystem("S3")
	if c.State() != StateDrawing {
		t.Fatalf("state %v", c.State())
	}
	c.Cancel()
	if c.State() != StateRouteSelected || c.SelectedRoute() != r.ID {
		t.Errorf("state %v selected %q after cancel", c.State(), c.SelectedRoute())
	}

	// Cancel with nothing selected goes idle.
	c.ClickEmpty([2]float32{500, 500})
	c.ClickSystem("S3")
	c.Cancel()
	if c.State() != StateIdle {
		t.Errorf("state %v", c.State())
	}
}

func TestControllerReshapeFlow(t *testing.T) {
	c, e := testController()
	r, _ := e.CreateRoute("S1", "S3", nil)

	// Reshape requires a selection.
	if c.BeginReshape() {
		t.Errorf("reshape allowed with nothing selected")
	}

	c.ClickRoute(r.ID)
	if !c.BeginReshape() {
		t.Fatalf("reshape refused for a selected simple route")
	}
	if c.State() != StateReshaping {
		t.Fatalf("state %v", c.State())
	}

	for i := 0; i <= 100; i++ {
		f := float32(i) / 100
		c.StrokePoint([2]float32{f * 200, 40 * f * (1 - f) * 4})
	}
	// Clicks mid-stroke must not retarget or deselect.
	c.ClickSystem("S4")
	c.ClickEmpty([2]float32{500, 500})
	if c.State() != StateReshaping {
		t.Fatalf("stroke interrupted: state %v", c.State())
	}

	if err := c.EndReshape(); err != nil {
		t.Fatalf("end reshape: %v", err)
	}
	if c.State() != StateRouteSelected {
		t.Errorf("state %v after reshape", c.State())
	}
	if got := e.Project.Routes[r.ID]; len(got.ShapePoints) == 0 {
		t.Errorf("reshape left no shape points")
	}
}

func TestControllerReshapeChainRefused(t *testing.T) {
	c, e := testController()
	r, _ := e.CreateRoute("S1", "S3", nil)
	e.InsertSystem(r.ID, "S2", 1)

	c.ClickRoute(r.ID)
	if c.BeginReshape() {
		t.Errorf("reshape allowed on a chain route")
	}
	if c.State() != StateRouteSelected {
		t.Errorf("state %v", c.State())
	}
}

func TestControllerRouteActions(t *testing.T) {
	c, e := testController()
	straight, _ := e.CreateRoute("S1", "S2", nil)
	curved, _ := e.CreateRoute("S2", "S3", [][2]float32{{150, 30}})
	chain, _ := e.CreateRoute("S1", "S4", nil)
	e.InsertSystem(chain.ID, "S3", 1)

	has := func(actions []Action, a Action) bool { return slices.Contains(actions, a) }

	a := c.RouteActions(straight.ID)
	if !has(a, ActionRename) || !has(a, ActionDelete) || !has(a, ActionReshape) {
		t.Errorf("straight route actions %v", a)
	}
	if has(a, ActionResetToStraight) {
		t.Errorf("reset offered for a route with no shape points")
	}

	a = c.RouteActions(curved.ID)
	if !has(a, ActionResetToStraight) {
		t.Errorf("curved route actions %v", a)
	}

	a = c.RouteActions(chain.ID)
	if has(a, ActionReshape) || has(a, ActionResetToStraight) {
		t.Errorf("chain route actions %v", a)
	}

	// Merge appears only with exactly two multi-selected routes sharing an
	// endpoint, one of them the clicked one.
	c.ToggleMultiSelect(straight.ID)
	if has(c.RouteActions(straight.ID), ActionMerge) {
		t.Errorf("merge offered with one selection")
	}
	c.ToggleMultiSelect(curved.ID)
	if !has(c.RouteActions(straight.ID), ActionMerge) {
		t.Errorf("merge not offered for adjacent pair")
	}
	if has(c.RouteActions(chain.ID), ActionMerge) {
		t.Errorf("merge offered on a route outside the selection")
	}

	// No actions mid-gesture.
	c.ClickSystem("S1")
	if a := c.RouteActions(straight.ID); a != nil {
		t.Errorf("actions during draw: %v", a)
	}
}

func TestControllerSystemActions(t *testing.T) {
	c, e := testController()
	r, _ := e.CreateRoute("S1", "S3", nil)

	// No selection, no actions.
	if a := c.SystemActions("S2"); a != nil {
		t.Errorf("actions with no selection: %v", a)
	}

	c.ClickRoute(r.ID)
	if a := c.SystemActions("S2"); !slices.Equal(a, []Action{ActionInsertSystem}) {
		t.Errorf("non-member actions %v", a)
	}
	// A two-system route's members can be neither removed nor split at.
	if a := c.SystemActions("S1"); len(a) != 0 {
		t.Errorf("endpoint actions on simple route: %v", a)
	}

	e.InsertSystem(r.ID, "S2", 1)
	a := c.SystemActions("S2")
	if !slices.Contains(a, ActionRemoveSystem) || !slices.Contains(a, ActionSplit) {
		t.Errorf("interior member actions %v", a)
	}
	a = c.SystemActions("S1")
	if !slices.Contains(a, ActionRemoveSystem) || slices.Contains(a, ActionSplit) {
		t.Errorf("endpoint member actions %v", a)
	}
}

func TestControllerDeleteSelected(t *testing.T) {
	c, e := testController()
	r, _ := e.CreateRoute("S1", "S2", nil)

	c.ClickRoute(r.ID)
	c.ToggleMultiSelect(r.ID)
	if err := c.DeleteSelected(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.State() != StateIdle || c.SelectedRoute() != "" {
		t.Errorf("state %v selected %q", c.State(), c.SelectedRoute())
	}
	if len(c.MultiSelected()) != 0 {
		t.Errorf("deleted route still multi-selected")
	}
	if len(e.Project.Routes) != 0 {
		t.Errorf("route not deleted")
	}

	// Delete with nothing selected is a no-op.
	if err := c.DeleteSelected(); err != nil {
		t.Errorf("idle delete: %v", err)
	}
}

func TestControllerMergeMultiSelected(t *testing.T) {
	c, e := testController()
	a, _ := e.CreateRoute("S1", "S2", nil)
	b, _ := e.CreateRoute("S2", "S3", nil)

	c.ToggleMultiSelect(a.ID)
	if _, err := c.MergeMultiSelected(); !errors.Is(err, galaxy.ErrNoSharedEndpoint) {
		t.Errorf("merge with one selection: got %v", err)
	}
	c.ToggleMultiSelect(b.ID)

	merged, err := c.MergeMultiSelected()
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if c.State() != StateRouteSelected || c.SelectedRoute() != merged.ID {
		t.Errorf("merged route not selected")
	}
	if len(c.MultiSelected()) != 0 {
		t.Errorf("multi-selection not cleared")
	}
}

func TestControllerGroupMultiSelected(t *testing.T) {
	c, e := testController()
	a, _ := e.CreateRoute("S1", "S2", nil)
	b, _ := e.CreateRoute("S3", "S4", nil)

	if _, err := c.GroupMultiSelected("Empty"); err == nil {
		t.Errorf("group allowed with empty selection")
	}

	c.ToggleMultiSelect(a.ID)
	c.ToggleMultiSelect(b.ID)
	// Toggling again removes from the selection.
	c.ToggleMultiSelect(b.ID)
	c.ToggleMultiSelect(b.ID)

	g, err := c.GroupMultiSelected("Lanes")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(g.RouteIDs) != 2 {
		t.Errorf("group members %v", g.RouteIDs)
	}
	if _, ok := e.Project.Groups[g.ID]; !ok {
		t.Errorf("group not installed")
	}
	if len(c.MultiSelected()) != 0 {
		t.Errorf("multi-selection not cleared")
	}
}
