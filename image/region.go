// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"github.com/goki/ki/kit"
)

// RegionID names a region of a core image.  Values are in canonical order:
// regions are always reserved and laid out in increasing RegionID.
type RegionID int32

//go:generate stringer -type=RegionID

var KiT_RegionID = kit.Enums.AddEnum(RegionIDN, false, nil)

func (ev RegionID) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *RegionID) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// System holds the binary identity and timing of the core.
	System RegionID = iota

	// NeuronParams holds the fixed header, recorder globals and neuron data.
	NeuronParams

	// Recording holds the buffered recording channel setup.
	Recording

	// Profiling holds the profiler sample buffer.
	Profiling

	// Provenance holds diagnostic counters filled in by the core.
	Provenance

	// SynapticMatrix holds the synapse rows and plasticity parameters.
	SynapticMatrix

	RegionIDN
)

// Region is one reserved block of an image.  Offset is relative to the start
// of the image and is known once the image is finished.
type Region struct {
	ID     RegionID
	Label  string
	Offset int
	Size   int

	data []byte
}

// Data returns the region bytes.  For a region of a finished Image they are
// padded with zeros to Size; a region still reserved in a Spec holds only
// what has been written so far.
func (rg *Region) Data() []byte {
	return rg.data
}

// AlignWord rounds size up to a multiple of 4.
func AlignWord(size int) int {
	return (size + 3) &^ 3
}
