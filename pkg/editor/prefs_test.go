// pkg/editor/prefs_test.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrefsMissingFile(t *testing.T) {
	prefs, err := LoadPrefs(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing prefs file should not error: %v", err)
	}
	if prefs != DefaultPrefs() {
		t.Errorf("got %+v", prefs)
	}
}

func TestLoadPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	doc := `
snap_radius: 35
smooth_window: 5
some_future_setting: true
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	prefs, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.SnapRadius != 35 || prefs.SmoothWindow != 5 {
		t.Errorf("got %+v", prefs)
	}
	// Fields absent from the file keep their defaults.
	if prefs.DecimateTarget != DefaultPrefs().DecimateTarget || !prefs.Autosave {
		t.Errorf("defaults not preserved: %+v", prefs)
	}
}

func TestLoadPrefsClampsNonsense(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	doc := `
decimate_target: 0
snap_radius: -5
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	prefs, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.DecimateTarget < 2 {
		t.Errorf("decimate target %d not clamped", prefs.DecimateTarget)
	}
	if prefs.SnapRadius < 1 {
		t.Errorf("snap radius %v not clamped", prefs.SnapRadius)
	}
}

func TestLoadPrefsEvenWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("smooth_window: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	prefs, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.SmoothWindow != 5 {
		t.Errorf("even window not bumped to odd: %d", prefs.SmoothWindow)
	}
}
