// pkg/galaxy/export.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

import (
	"encoding/json"
	"io"

	"github.com/iancoleman/orderedmap"
	"github.com/klauspost/compress/zstd"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/stellarcart/galmap/pkg/util"
)

// ExportGame writes the game-readable subset of the project: systems,
// routes, and groups, but none of the editor-only data (templates etc).
// An ordered map keeps the key order stable across exports so the output
// diffs cleanly under version control.
func (p *Project) ExportGame(w io.Writer) error {
	out := orderedmap.New()
	out.Set("mapName", p.Metadata.Name)

	out.Set("systems", util.MapSlice(util.SortedMapKeys(p.Systems),
		func(id string) *System { return p.Systems[id] }))
	out.Set("routes", util.MapSlice(util.SortedMapKeys(p.Routes),
		func(id string) *Route { return p.Routes[id] }))
	out.Set("routeGroups", util.MapSlice(util.SortedMapKeys(p.Groups),
		func(id string) *RouteGroup { return p.Groups[id] }))

	stats := orderedmap.New()
	stats.Set("totalSystems", len(p.Systems))
	stats.Set("totalRoutes", len(p.Routes))
	stats.Set("totalRouteGroups", len(p.Groups))
	stats.Set("version", p.Metadata.Version)
	out.Set("stats", stats)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportGameZst writes the game export zstd-compressed, for the larger
// maps that ship alongside game builds.
func (p *Project) ExportGameZst(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := p.ExportGame(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ExportGeoJSON writes every route's evaluated render path as a
// LineString feature, for use with external mapping tools. Routes that
// reference missing systems are skipped.
func (p *Project) ExportGeoJSON(w io.Writer) error {
	fc := &geojson.FeatureCollection{}
	for _, id := range util.SortedMapKeys(p.Routes) {
		r := p.Routes[id]
		path := r.RenderPath(p)
		if path == nil {
			continue
		}

		coords := make([]geom.Coord, len(path))
		for i, pt := range path {
			coords[i] = geom.Coord{float64(pt[0]), float64(pt[1])}
		}
		ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
		if err != nil {
			return err
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       r.ID,
			Geometry: ls,
			Properties: map[string]interface{}{
				"name":        r.Name,
				"route_class": r.Class,
				"travel_type": string(r.TravelType),
				"hazards":     r.Hazards,
				"length_hsu":  r.Length(p),
			},
		})
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
