// pkg/galaxy/travel.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package galaxy

// Travel-time modifiers. Base rule: 1 HSU takes one hour at an x1
// hyperdrive; route class, travel type, and each hazard then stack
// multiplicatively on the effective speed.

var routeClassModifiers = map[int]float32{
	1: 1.5, // fast
	2: 1.2,
	3: 1.0,
	4: 0.8,
	5: 0.6, // slow
}

var travelTypeModifiers = map[TravelType]float32{
	TravelNormal:           1.0,
	TravelExpressLane:      1.3,
	TravelAncientHyperlane: 0.9,
	TravelBackwater:        0.7,
}

var hazardModifiers = map[Hazard]float32{
	HazardNebula:         0.9,
	HazardHypershadow:    0.85,
	HazardQuasar:         0.8,
	HazardMinefield:      0.95,
	HazardPirateActivity: 0.95,
}

// HyperdriveRatings maps a ship's drive rating to its speed multiplier.
var HyperdriveRatings = map[string]float32{
	"x1": 1,
	"x2": 2,
	"x3": 3,
	"x4": 4,
}

// SpeedFactor returns the route's combined speed multiplier from its
// class, travel type, and hazards. Unknown values contribute 1.
func (r *Route) SpeedFactor() float32 {
	factor := float32(1)
	if m, ok := routeClassModifiers[r.Class]; ok {
		factor *= m
	}
	if m, ok := travelTypeModifiers[r.TravelType]; ok {
		factor *= m
	}
	for _, h := range r.Hazards {
		if m, ok := hazardModifiers[h]; ok {
			factor *= m
		}
	}
	return factor
}

// TravelTime returns the hours needed to traverse the route at the given
// hyperdrive rating, using live system positions for the length.
func (r *Route) TravelTime(loc SystemLocator, hyperdrive string) float32 {
	mult, ok := HyperdriveRatings[hyperdrive]
	if !ok {
		mult = 1
	}
	return r.Length(loc) / mult / r.SpeedFactor()
}
