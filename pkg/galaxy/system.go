// pkg/galaxy/system.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

import (
	"encoding/json"

	"github.com/stellarcart/galmap/pkg/math"
)

// System is a star system placed on the map. The route subsystem only
// references systems by id; placement, statistics, and lifecycle belong to
// the systems editor.
type System struct {
	ID       string
	Name     string
	Position [2]float32
}

// The document format flattens positions to x/y fields.
type systemJSON struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
}

func (s System) MarshalJSON() ([]byte, error) {
	return json.Marshal(systemJSON{ID: s.ID, Name: s.Name, X: s.Position[0], Y: s.Position[1]})
}

func (s *System) UnmarshalJSON(b []byte) error {
	var sj systemJSON
	if err := json.Unmarshal(b, &sj); err != nil {
		return err
	}
	*s = System{ID: sj.ID, Name: sj.Name, Position: [2]float32{sj.X, sj.Y}}
	return nil
}

// SystemLocator provides live positions for systems by id. Route geometry
// is always evaluated against current positions, never cached ones, so a
// route whose endpoints have been dragged reports its updated path and
// length immediately.
type SystemLocator interface {
	SystemPosition(id string) ([2]float32, bool)
}

// SystemNamer resolves system display names; it is only consulted for
// one-time snapshots such as default route names.
type SystemNamer interface {
	SystemName(id string) (string, bool)
}

// FindSystemAt returns the id of a system within snapRadius of p, or ""
// if there is none. Ties go to the closest system.
func FindSystemAt(p [2]float32, systems map[string]*System, snapRadius float32) string {
	closest, dmin := "", snapRadius
	for id, s := range systems {
		if d := math.Distance2f(p, s.Position); d <= dmin {
			closest, dmin = id, d
		}
	}
	return closest
}
