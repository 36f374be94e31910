// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package state tracks what changed on a vertex since its images were last
written, and decides whether the next sync needs no work, a patch of the
neuron parameter region, or a full rebuild.
*/
package state

import (
	"sync"

	"github.com/goki/ki/kit"
)

// Action is what a sync must do to bring a core image up to date.
type Action int32

//go:generate stringer -type=Action

var KiT_Action = kit.Enums.AddEnum(ActionN, false, nil)

func (ev Action) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Action) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// NoAction means the last image is current.
	NoAction Action = iota

	// PatchValues rewrites only the neuron parameter region, in place.
	PatchValues

	// Rebuild requires re-placement and a full image rebuild.
	Rebuild

	ActionN
)

// DirtyState is the pair of change flags of one vertex.  Structural changes
// alter region sizes or placement; value changes only alter parameter or
// state values.  The flags are set by mutation operations and cleared only by
// a successful sync.
type DirtyState struct {
	mu         sync.Mutex
	structural bool
	value      bool
	gen        uint64
}

// NewDirtyState returns a state with the structural flag set, since a fresh
// vertex has never been built.
func NewDirtyState() *DirtyState {
	return &DirtyState{structural: true}
}

// MarkStructural records a change that needs a full rebuild.
func (ds *DirtyState) MarkStructural() {
	ds.mu.Lock()
	ds.structural = true
	ds.gen++
	ds.mu.Unlock()
}

// MarkValue records a change of parameter or state values only.
func (ds *DirtyState) MarkValue() {
	ds.mu.Lock()
	ds.value = true
	ds.gen++
	ds.mu.Unlock()
}

// Flags returns the structural and value flags.
func (ds *DirtyState) Flags() (structural, value bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.structural, ds.value
}

// Gen counts the marks made so far.
func (ds *DirtyState) Gen() uint64 {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.gen
}

// Action returns what a sync must do given the current flags.
func (ds *DirtyState) Action() Action {
	st, val := ds.Flags()
	switch {
	case st:
		return Rebuild
	case val:
		return PatchValues
	}
	return NoAction
}

// Clear resets the flags covered by a completed action: PatchValues clears
// the value flag, Rebuild clears both.
func (ds *DirtyState) Clear(act Action) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.clear(act)
}

// ClearAt clears as Clear does, but only if nothing was marked since Gen
// returned gen.  It reports whether the flags were cleared.
func (ds *DirtyState) ClearAt(act Action, gen uint64) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.gen != gen {
		return false
	}
	ds.clear(act)
	return true
}

func (ds *DirtyState) clear(act Action) {
	switch act {
	case PatchValues:
		ds.value = false
	case Rebuild:
		ds.structural = false
		ds.value = false
	}
}
