// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"math"

	"github.com/emer/spikemap/chans"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/fixed"
	"github.com/emer/spikemap/mapping"
)

// word counts of each section of the LIF conductance data
const (
	lifGlobalWords  = 1
	lifNeuronWords  = 8
	lifInputWords   = 2
	lifThreshWords  = 1
	lifSynapseWords = 6
	lifAtomWords    = lifNeuronWords + lifInputWords + lifThreshWords + lifSynapseWords
)

// LIFCond is a leaky integrate-and-fire neuron with conductance-based
// inputs, a static threshold and exponentially decaying synaptic currents.
type LIFCond struct {
	NeuronCycles int `desc:"per-atom cycles of the membrane update and reset"`
	InputCycles  int `desc:"per-atom cycles of the conductance input stage"`
	ThreshCycles int `desc:"per-atom cycles of the threshold test"`
	SynCycles    int `desc:"per-atom cycles of synaptic shaping"`
}

// NewLIFCond returns the model with default costs.
func NewLIFCond() *LIFCond {
	lc := &LIFCond{}
	lc.Defaults()
	return lc
}

func (lc *LIFCond) Defaults() {
	lc.NeuronCycles = 100
	lc.InputCycles = 10
	lc.ThreshCycles = 10
	lc.SynCycles = 100
}

func (lc *LIFCond) Name() string       { return "IF_cond_exp" }
func (lc *LIFCond) BinaryName() string { return "IF_cond_exp.aplx" }
func (lc *LIFCond) NSynapseTypes() int { return 2 }

// GlobalWeightScale for conductance inputs, which are small in absolute terms.
func (lc *LIFCond) GlobalWeightScale() float64 { return 1024 }

func (lc *LIFCond) DefaultParams() [ParamN]float64 {
	var pv [ParamN]float64
	pv[TauM] = 20
	pv[Cm] = 1
	pv[VRest] = -65
	pv[VReset] = -65
	pv[VThresh] = -50
	pv[TauRefrac] = 0.1
	pv[IOffset] = 0
	pv[ERevE] = 0
	pv[ERevI] = -70
	pv[TauSynE] = 5
	pv[TauSynI] = 5
	return pv
}

func (lc *LIFCond) DefaultState() [StateVarN]float64 {
	var sv [StateVarN]float64
	sv[V] = -65
	return sv
}

func (lc *LIFCond) Recordables() []StateVar {
	return []StateVar{V, IsynExc, IsynInh}
}

func (lc *LIFCond) CPUCycles(n int) int {
	return n * (lc.NeuronCycles + lc.InputCycles + lc.ThreshCycles + lc.SynCycles)
}

// DTCMBytes: per-atom structures are copied into local memory at start-up.
func (lc *LIFCond) DTCMBytes(n int) int {
	return n * lifAtomWords * 4
}

func (lc *LIFCond) SDRAMBytes(n int) int {
	return (lifGlobalWords + n*lifAtomWords) * 4
}

// Data writes, in order: the timestep, all neuron structs, all input
// structs, all thresholds, all synapse-shaping structs.
func (lc *LIFCond) Data(pop *Population, sl mapping.Slice, tickMicros uint32) []uint32 {
	n := sl.NAtoms()
	dt := float64(tickMicros) / 1000
	words := make([]uint32, 0, lifGlobalWords+n*lifAtomWords)
	words = append(words, s1615(dt))

	for i := sl.Lo; i <= sl.Hi; i++ {
		tauM := pop.Param(TauM, i)
		words = append(words,
			s1615(pop.State(V, i)),
			s1615(pop.Param(VRest, i)),
			s1615(tauM/pop.Param(Cm, i)),
			fixed.U032(math.Exp(-dt/tauM)),
			s1615(pop.Param(IOffset, i)),
			uint32(int32(pop.State(CountRefrac, i))),
			s1615(pop.Param(VReset, i)),
			uint32(int32(math.Ceil(pop.Param(TauRefrac, i)/dt))),
		)
	}
	for i := sl.Lo; i <= sl.Hi; i++ {
		words = append(words, s1615(pop.Param(ERevE, i)), s1615(pop.Param(ERevI, i)))
	}
	for i := sl.Lo; i <= sl.Hi; i++ {
		words = append(words, s1615(pop.Param(VThresh, i)))
	}
	for i := sl.Lo; i <= sl.Hi; i++ {
		tau := chans.Chans{E: pop.Param(TauSynE, i), I: pop.Param(TauSynI, i)}
		dc := tau.Decay(dt)
		in := tau.Init(dt)
		words = append(words,
			fixed.U032(dc.E), fixed.U032(in.E),
			fixed.U032(dc.I), fixed.U032(in.I),
			s1615(pop.State(IsynExc, i)),
			s1615(pop.State(IsynInh, i)),
		)
	}
	return words
}

// ReadData decodes the state variables, leaving parameters untouched.
func (lc *LIFCond) ReadData(pop *Population, sl mapping.Slice, words []uint32) error {
	n := sl.NAtoms()
	if len(words) < lifGlobalWords+n*lifAtomWords {
		return errs.New(errs.Invalid, "%s: neuron data has %d words, need %d", lc.Name(), len(words), lifGlobalWords+n*lifAtomWords)
	}
	vm := make([]float64, n)
	refr := make([]float64, n)
	exc := make([]float64, n)
	inh := make([]float64, n)
	nrn := words[lifGlobalWords:]
	syn := nrn[n*(lifNeuronWords+lifInputWords+lifThreshWords):]
	for i := 0; i < n; i++ {
		nw := nrn[i*lifNeuronWords:]
		vm[i] = fixed.FromS1615(int32(nw[0]))
		refr[i] = float64(int32(nw[5]))
		sw := syn[i*lifSynapseWords:]
		exc[i] = fixed.FromS1615(int32(sw[4]))
		inh[i] = fixed.FromS1615(int32(sw[5]))
	}
	pop.setStateFrom(V, sl, vm)
	pop.setStateFrom(CountRefrac, sl, refr)
	pop.setStateFrom(IsynExc, sl, exc)
	pop.setStateFrom(IsynInh, sl, inh)
	return nil
}

func s1615(v float64) uint32 {
	return uint32(fixed.S1615(v))
}
