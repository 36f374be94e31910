// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikemap/mapping"
)

// Model is a compiled neuron implementation: its defaults, costs, and the
// word layout of its parameter and state data on a core.
type Model interface {
	// Name is the model name, e.g. "IF_cond_exp".
	Name() string

	// BinaryName is the name of the core executable the model runs in.
	BinaryName() string

	DefaultParams() [ParamN]float64
	DefaultState() [StateVarN]float64

	// Recordables lists the state variables that can be recorded, in stream order.
	Recordables() []StateVar

	NSynapseTypes() int

	// GlobalWeightScale scales weights before fixed-point conversion.
	GlobalWeightScale() float64

	// CPUCycles is the model cost per tick for n atoms, excluding base costs.
	CPUCycles(n int) int

	// DTCMBytes is the model's local memory use for n atoms.
	DTCMBytes(n int) int

	// SDRAMBytes is the byte length of Data for n atoms.
	SDRAMBytes(n int) int

	// Data returns the global and per-atom words for the atoms of sl.
	Data(pop *Population, sl mapping.Slice, tickMicros uint32) []uint32

	// ReadData updates the state variables of the atoms of sl from words
	// laid out as Data writes them.
	ReadData(pop *Population, sl mapping.Slice, words []uint32) error
}
