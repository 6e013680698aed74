// pkg/galaxy/route.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"

	"github.com/stellarcart/galmap/pkg/math"
	"github.com/stellarcart/galmap/pkg/util"
)

// TravelType is the coarse category of hyperlane a route represents.
type TravelType string

const (
	TravelNormal           TravelType = "normal"
	TravelExpressLane      TravelType = "express_lane"
	TravelAncientHyperlane TravelType = "ancient_hyperlane"
	TravelBackwater        TravelType = "backwater"
)

var TravelTypes = []TravelType{TravelNormal, TravelExpressLane, TravelAncientHyperlane, TravelBackwater}

// Hazard tags a route with an environmental danger; each one present
// applies its own multiplicative travel-time penalty.
type Hazard string

const (
	HazardNebula         Hazard = "nebula"
	HazardHypershadow    Hazard = "hypershadow"
	HazardQuasar         Hazard = "quasar"
	HazardMinefield      Hazard = "minefield"
	HazardPirateActivity Hazard = "pirate_activity"
)

var Hazards = []Hazard{HazardNebula, HazardHypershadow, HazardQuasar, HazardMinefield, HazardPirateActivity}

const (
	MinRouteClass     = 1
	MaxRouteClass     = 5
	DefaultRouteClass = 3
)

// Route is a navigable connection between two or more systems.
//
// Systems always holds the full ordered member chain, at least two entries
// long; a route with exactly two members is a "simple" route and may carry
// ShapePoints that bend its rendered path, while a route with three or
// more members is a "chain" route that renders as straight segments
// between consecutive members and never has shape points. Keeping a single
// member list (rather than a separate start/end pair alongside an optional
// chain) means the two representations can never disagree.
type Route struct {
	ID          string
	Name        string
	Systems     []string
	ShapePoints [][2]float32
	Class       int
	TravelType  TravelType
	Hazards     []Hazard
}

// NewRoute returns a fresh simple route between the two given systems.
// Callers are responsible for the same-system and duplicate-pair checks;
// see editor.CreateRoute.
func NewRoute(name, startID, endID string) *Route {
	return &Route{
		ID:         uuid.NewString(),
		Name:       name,
		Systems:    []string{startID, endID},
		Class:      DefaultRouteClass,
		TravelType: TravelNormal,
	}
}

// IsChain reports whether the route is in chain mode (3+ member systems).
func (r *Route) IsChain() bool { return len(r.Systems) > 2 }

// Endpoints returns the effective start and end system ids.
func (r *Route) Endpoints() (string, string) {
	return r.Systems[0], r.Systems[len(r.Systems)-1]
}

// MemberSystems returns a copy of the full ordered member system list.
func (r *Route) MemberSystems() []string {
	return util.DuplicateSlice(r.Systems)
}

func (r *Route) ContainsSystem(id string) bool {
	return slices.Contains(r.Systems, id)
}

// SystemIndex returns the position of the given system in the member
// chain, or -1 if it is not a member.
func (r *Route) SystemIndex(id string) int {
	return slices.Index(r.Systems, id)
}

// ConnectsPair reports whether the route's effective endpoints are the
// given two systems, in either order.
func (r *Route) ConnectsPair(a, b string) bool {
	start, end := r.Endpoints()
	return (start == a && end == b) || (start == b && end == a)
}

func (r *Route) HasHazard(h Hazard) bool {
	return slices.Contains(r.Hazards, h)
}

func (r *Route) AddHazard(h Hazard) {
	if !r.HasHazard(h) {
		r.Hazards = append(r.Hazards, h)
	}
}

func (r *Route) RemoveHazard(h Hazard) {
	r.Hazards = util.FilterSlice(r.Hazards, func(rh Hazard) bool { return rh != h })
}

// RenderPath returns the polyline to draw for the route given current
// system positions. It is recomputed from live positions on every call;
// nothing about the rendered path is cached, so system moves are always
// reflected immediately. A route that references a system the locator
// doesn't know returns nil: rendering stays resilient to transient
// inconsistency mid-edit.
func (r *Route) RenderPath(loc SystemLocator) [][2]float32 {
	if r.IsChain() {
		// Chain routes draw as straight segments between members.
		pts := make([][2]float32, len(r.Systems))
		for i, id := range r.Systems {
			p, ok := loc.SystemPosition(id)
			if !ok {
				return nil
			}
			pts[i] = p
		}
		return pts
	}

	start, ok := loc.SystemPosition(r.Systems[0])
	if !ok {
		return nil
	}
	end, ok := loc.SystemPosition(r.Systems[1])
	if !ok {
		return nil
	}
	return math.EvaluatePath(start, r.ShapePoints, end)
}

// Length returns the rendered path length of the route in HSU, 0 if the
// route references a missing system.
func (r *Route) Length(loc SystemLocator) float32 {
	return math.PolylineLength(r.RenderPath(loc))
}

///////////////////////////////////////////////////////////////////////////
// Serialization

// routeJSON is the document representation. Documents written before
// route_class, travel_type, hazards, or system_chain existed omit those
// fields; loading fills in the stated defaults so old maps open cleanly.
type routeJSON struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	StartSystemID string       `json:"start_system_id"`
	EndSystemID   string       `json:"end_system_id"`
	SystemChain   []string     `json:"system_chain,omitempty"`
	ShapePoints   [][2]float32 `json:"shape_points,omitempty"`
	RouteClass    int          `json:"route_class,omitempty"`
	TravelType    TravelType   `json:"travel_type,omitempty"`
	Hazards       []Hazard     `json:"hazards,omitempty"`
}

func (r Route) MarshalJSON() ([]byte, error) {
	start, end := r.Endpoints()
	rj := routeJSON{
		ID:            r.ID,
		Name:          r.Name,
		StartSystemID: start,
		EndSystemID:   end,
		ShapePoints:   r.ShapePoints,
		RouteClass:    r.Class,
		TravelType:    r.TravelType,
		Hazards:       r.Hazards,
	}
	if r.IsChain() {
		rj.SystemChain = r.Systems
	}
	return json.Marshal(rj)
}

func (r *Route) UnmarshalJSON(b []byte) error {
	var rj routeJSON
	if err := json.Unmarshal(b, &rj); err != nil {
		return err
	}

	systems := rj.SystemChain
	if len(systems) < 2 {
		systems = []string{rj.StartSystemID, rj.EndSystemID}
	}

	*r = Route{
		ID:          rj.ID,
		Name:        rj.Name,
		Systems:     systems,
		ShapePoints: rj.ShapePoints,
		Class:       util.Select(rj.RouteClass != 0, rj.RouteClass, DefaultRouteClass),
		TravelType:  util.Select(rj.TravelType != "", rj.TravelType, TravelNormal),
		Hazards:     rj.Hazards,
	}
	if r.IsChain() {
		// Chain routes render as straight segments; stale shape points
		// from a hand-edited document are dropped.
		r.ShapePoints = nil
	}
	return nil
}
