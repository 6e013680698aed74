// pkg/galaxy/project.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

import (
	"encoding/json"
	"os"

	"github.com/stellarcart/galmap/pkg/math"
	"github.com/stellarcart/galmap/pkg/util"
)

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Template is a background reference image layer. The route core treats
// templates as opaque passthrough data; the template editor owns them.
type Template struct {
	ID       string     `json:"id"`
	Filepath string     `json:"filepath"`
	Position [2]float32 `json:"position"`
	Scale    float32    `json:"scale"`
	Opacity  float32    `json:"opacity"`
	Locked   bool       `json:"locked"`
	ZOrder   int        `json:"z_order"`
}

// Project is the complete editable document: one map, one user, edited
// synchronously on the event thread.
type Project struct {
	Metadata  Metadata
	Templates []Template
	Systems   map[string]*System
	Routes    map[string]*Route
	Groups    map[string]*RouteGroup
}

func NewProject() *Project {
	return &Project{
		Metadata: Metadata{Name: "Unnamed Map", Version: "1.0"},
		Systems:  make(map[string]*System),
		Routes:   make(map[string]*Route),
		Groups:   make(map[string]*RouteGroup),
	}
}

// SystemPosition implements SystemLocator with live positions.
func (p *Project) SystemPosition(id string) ([2]float32, bool) {
	if s, ok := p.Systems[id]; ok {
		return s.Position, true
	}
	return [2]float32{}, false
}

// SystemName implements SystemNamer.
func (p *Project) SystemName(id string) (string, bool) {
	if s, ok := p.Systems[id]; ok {
		return s.Name, true
	}
	return "", false
}

// RouteBetween returns the route whose effective endpoints are the given
// unordered pair of systems, if any exists.
func (p *Project) RouteBetween(a, b string) *Route {
	// Deterministic when (somehow) multiple match: lowest id wins.
	for _, id := range util.SortedMapKeys(p.Routes) {
		if p.Routes[id].ConnectsPair(a, b) {
			return p.Routes[id]
		}
	}
	return nil
}

// Bounds returns the bounding box of all system positions.
func (p *Project) Bounds() math.Extent2D {
	return math.Extent2DFromPoints(util.MapSlice(util.SortedMapKeys(p.Systems),
		func(id string) [2]float32 { return p.Systems[id].Position }))
}

// Rescale multiplies every world-space coordinate in the document by the
// given factor: system positions, route shape points, and template
// placement. Route geometry follows automatically since paths are always
// evaluated from live positions.
func (p *Project) Rescale(factor float32) {
	for _, s := range p.Systems {
		s.Position = math.Scale2f(s.Position, factor)
	}
	for _, r := range p.Routes {
		for i, sp := range r.ShapePoints {
			r.ShapePoints[i] = math.Scale2f(sp, factor)
		}
	}
	for i := range p.Templates {
		p.Templates[i].Position = math.Scale2f(p.Templates[i].Position, factor)
		p.Templates[i].Scale *= factor
	}
}

// GroupsContaining returns the ids of all groups that include the route.
func (p *Project) GroupsContaining(routeID string) []string {
	var ids []string
	for _, gid := range util.SortedMapKeys(p.Groups) {
		if p.Groups[gid].Contains(routeID) {
			ids = append(ids, gid)
		}
	}
	return ids
}

// Validate checks the document's route-level invariants, accumulating
// everything wrong rather than stopping at the first problem.
func (p *Project) Validate(e *util.ErrorLogger) {
	e.Push("Map " + p.Metadata.Name)
	defer e.Pop()

	seenPairs := make(map[[2]string]string)
	for _, id := range util.SortedMapKeys(p.Routes) {
		r := p.Routes[id]
		e.Push("Route " + r.Name)

		if len(r.Systems) < 2 {
			e.ErrorString("fewer than 2 member systems")
		}
		seen := make(map[string]bool)
		for _, sid := range r.Systems {
			if seen[sid] {
				e.ErrorString("system %q appears multiple times", sid)
			}
			seen[sid] = true
			if _, ok := p.Systems[sid]; !ok {
				e.ErrorString("references unknown system %q", sid)
			}
		}
		if r.IsChain() && len(r.ShapePoints) > 0 {
			e.ErrorString("chain route carries shape points")
		}
		if r.Class < MinRouteClass || r.Class > MaxRouteClass {
			e.ErrorString("route class %d outside [%d,%d]", r.Class, MinRouteClass, MaxRouteClass)
		}

		if len(r.Systems) >= 2 {
			start, end := r.Endpoints()
			pair := [2]string{min(start, end), max(start, end)}
			if other, ok := seenPairs[pair]; ok {
				e.ErrorString("duplicates route %q between the same systems", other)
			}
			seenPairs[pair] = r.Name
		}
		e.Pop()
	}

	for _, gid := range util.SortedMapKeys(p.Groups) {
		g := p.Groups[gid]
		e.Push("Group " + g.Name)
		if len(g.RouteIDs) == 0 {
			e.ErrorString("group has no member routes")
		}
		for _, rid := range g.RouteIDs {
			if _, ok := p.Routes[rid]; !ok {
				e.ErrorString("references unknown route %q", rid)
			}
		}
		e.Pop()
	}
}

///////////////////////////////////////////////////////////////////////////
// Document serialization

// projectJSON is the on-disk .galmap document. All sections are optional
// on load so documents from older editor versions open cleanly.
type projectJSON struct {
	Metadata  Metadata      `json:"metadata"`
	Templates []Template    `json:"templates,omitempty"`
	Systems   []*System     `json:"systems,omitempty"`
	Routes    []*Route      `json:"routes,omitempty"`
	Groups    []*RouteGroup `json:"route_groups,omitempty"`
}

func (p *Project) MarshalJSON() ([]byte, error) {
	pj := projectJSON{
		Metadata:  p.Metadata,
		Templates: p.Templates,
	}
	for _, id := range util.SortedMapKeys(p.Systems) {
		pj.Systems = append(pj.Systems, p.Systems[id])
	}
	for _, id := range util.SortedMapKeys(p.Routes) {
		pj.Routes = append(pj.Routes, p.Routes[id])
	}
	for _, id := range util.SortedMapKeys(p.Groups) {
		pj.Groups = append(pj.Groups, p.Groups[id])
	}
	return json.MarshalIndent(pj, "", "  ")
}

func (p *Project) UnmarshalJSON(b []byte) error {
	var pj projectJSON
	if err := util.UnmarshalJSON(b, &pj); err != nil {
		return err
	}

	*p = *NewProject()
	if pj.Metadata != (Metadata{}) {
		p.Metadata = pj.Metadata
	}
	for _, t := range pj.Templates {
		if t.Scale == 0 {
			t.Scale = 1
		}
		if t.Opacity == 0 {
			t.Opacity = 1
		}
		p.Templates = append(p.Templates, t)
	}
	for _, s := range pj.Systems {
		p.Systems[s.ID] = s
	}
	for _, r := range pj.Routes {
		p.Routes[r.ID] = r
	}
	for _, g := range pj.Groups {
		p.Groups[g.ID] = g
	}
	return nil
}

func LoadProject(path string) (*Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := NewProject()
	if err := util.UnmarshalJSON(b, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) Save(path string) error {
	// Call MarshalJSON directly so the indentation it produces survives.
	b, err := p.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
