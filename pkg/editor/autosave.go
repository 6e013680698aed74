// pkg/editor/autosave.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package editor

import (
	"time"

	"github.com/stellarcart/galmap/pkg/galaxy"
	"github.com/stellarcart/galmap/pkg/log"
	"github.com/stellarcart/galmap/pkg/util"
)

const autosavePath = "autosave.galmap"

// Autosaver snapshots the project into the user cache directory after
// edits so a crashed session can be offered for recovery on the next
// start. Snapshots are rate-limited; editing is synchronous and
// user-paced, so losing the last second or two of work is acceptable.
type Autosaver struct {
	lg       *log.Logger
	minGap   time.Duration
	lastSave time.Time
}

func NewAutosaver(lg *log.Logger) *Autosaver {
	return &Autosaver{lg: lg, minGap: 2 * time.Second}
}

// Changed records that the project was mutated and snapshots it if enough
// time has passed since the last snapshot.
func (a *Autosaver) Changed(p *galaxy.Project) {
	if time.Since(a.lastSave) < a.minGap {
		return
	}
	a.lastSave = time.Now()
	if err := util.CacheStoreObject(autosavePath, p); err != nil {
		a.lg.Warnf("autosave failed: %v", err)
	}
}

// Recover returns the most recent autosave snapshot and its timestamp, if
// one exists.
func (a *Autosaver) Recover() (*galaxy.Project, time.Time, bool) {
	p := galaxy.NewProject()
	when, err := util.CacheRetrieveObject(autosavePath, p)
	if err != nil {
		return nil, time.Time{}, false
	}
	return p, when, true
}
