// pkg/editor/prefs.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package editor

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stellarcart/galmap/pkg/math"
)

// Prefs are the user-tunable editing parameters, loaded from an optional
// YAML file in the config directory. Unknown keys are ignored so prefs
// files are portable across editor versions.
type Prefs struct {
	// SnapRadius is the distance within which a click lands on a system.
	SnapRadius float32 `yaml:"snap_radius"`
	// DecimateTarget is the number of points a ghost-line stroke is
	// reduced to before smoothing.
	DecimateTarget int `yaml:"decimate_target"`
	// SmoothWindow is the (odd) moving-average window applied to
	// decimated strokes.
	SmoothWindow int `yaml:"smooth_window"`
	// ReshapeModifier names the key held to draw a ghost line over a
	// selected route.
	ReshapeModifier string `yaml:"reshape_modifier"`
	// Autosave enables snapshotting the project after mutations.
	Autosave bool `yaml:"autosave"`
}

func DefaultPrefs() Prefs {
	return Prefs{
		SnapRadius:      20,
		DecimateTarget:  20,
		SmoothWindow:    3,
		ReshapeModifier: "shift",
		Autosave:        true,
	}
}

// LoadPrefs reads preferences from the given path, returning defaults if
// the file doesn't exist. Fields absent from the file keep their
// defaults.
func LoadPrefs(path string) (Prefs, error) {
	prefs := DefaultPrefs()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return prefs, nil
	} else if err != nil {
		return prefs, err
	}
	if err := yaml.Unmarshal(b, &prefs); err != nil {
		return DefaultPrefs(), err
	}
	// A nonsense value here would quietly disable stroke decimation and
	// store entire raw ghost lines as shape points.
	prefs.DecimateTarget = math.Max(prefs.DecimateTarget, 2)
	prefs.SnapRadius = math.Max(prefs.SnapRadius, 1)
	if prefs.SmoothWindow%2 == 0 {
		prefs.SmoothWindow++
	}
	return prefs, nil
}
