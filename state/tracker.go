// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"sync"

	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/log"
	"github.com/emer/spikemap/mapping"
)

var logger = log.NewModuleLogger("state")

// Builder produces the images a sync commits.
type Builder interface {
	// Build writes a complete image of the slice.
	Build(sl mapping.Slice) (*image.Image, error)

	// Patch returns prev with its neuron parameter region regenerated.
	Patch(sl mapping.Slice, prev *image.Image) (*image.Image, error)
}

// BatchBuilder builds many slices at once.  Sync uses it for rebuilds
// when the Builder provides it.
type BatchBuilder interface {
	BuildAll(slices []mapping.Slice) ([]*image.Image, error)
}

// Tracker holds the last known good image of each slice of a vertex and
// brings them up to date with the least work the dirty flags allow.
type Tracker struct {
	Dirty *DirtyState

	mu     sync.Mutex
	images map[mapping.Slice]*image.Image
}

// NewTracker returns a tracker over the given flags.
func NewTracker(ds *DirtyState) *Tracker {
	return &Tracker{Dirty: ds, images: make(map[mapping.Slice]*image.Image)}
}

// Image returns the last known good image of sl.
func (tr *Tracker) Image(sl mapping.Slice) (*image.Image, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	im, ok := tr.images[sl]
	return im, ok
}

// Decide returns the action the next sync of slices will take.  A patch
// becomes a rebuild when any slice has no image to patch.
func (tr *Tracker) Decide(slices []mapping.Slice) Action {
	act := tr.Dirty.Action()
	if act != PatchValues {
		return act
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, sl := range slices {
		if tr.images[sl] == nil {
			return Rebuild
		}
	}
	return act
}

// Sync runs the decided action over all slices.  New images are committed
// only if every slice succeeds; on error the flags and the last known good
// images are left as they were.  The flags are not cleared if they were
// marked again while the sync ran.
func (tr *Tracker) Sync(slices []mapping.Slice, b Builder) (Action, error) {
	gen := tr.Dirty.Gen()
	act := tr.Decide(slices)
	if act == NoAction {
		return act, nil
	}
	next := make(map[mapping.Slice]*image.Image, len(slices))
	if bb, ok := b.(BatchBuilder); ok && act == Rebuild {
		ims, err := bb.BuildAll(slices)
		if err != nil {
			logger.Warningf("%v failed, keeping last good images: %v", act, err)
			return act, err
		}
		for i, sl := range slices {
			next[sl] = ims[i]
		}
		tr.commit(act, next, gen)
		return act, nil
	}
	for _, sl := range slices {
		var im *image.Image
		var err error
		switch act {
		case PatchValues:
			prev, _ := tr.Image(sl)
			im, err = b.Patch(sl, prev)
		default:
			im, err = b.Build(sl)
		}
		if err != nil {
			logger.Warningf("%v of %v failed, keeping last good image: %v", act, sl, err)
			return act, err
		}
		next[sl] = im
	}
	tr.commit(act, next, gen)
	return act, nil
}

func (tr *Tracker) commit(act Action, next map[mapping.Slice]*image.Image, gen uint64) {
	tr.mu.Lock()
	if act == Rebuild {
		tr.images = make(map[mapping.Slice]*image.Image, len(next))
	}
	for sl, im := range next {
		tr.images[sl] = im
	}
	tr.mu.Unlock()
	if !tr.Dirty.ClearAt(act, gen) {
		logger.Infof("marked during %v, flags kept", act)
	}
}
