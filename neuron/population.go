// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/state"
)

// Population is an ordered set of N atoms of one model.  Atom identity is the
// index.  Values change only through the setters, which mark the owning
// vertex's value flag.
type Population struct {
	Name  string
	N     int
	Model Model
	Rec   *Recorder
	Dirty *state.DirtyState

	params [ParamN][]float64
	state  [StateVarN][]float64
}

// NewPopulation returns n atoms with the model's default parameters and
// initial state.
func NewPopulation(name string, n int, model Model) *Population {
	pop := &Population{Name: name, N: n, Model: model, Dirty: state.NewDirtyState()}
	pv := model.DefaultParams()
	sv := model.DefaultState()
	for p := Param(0); p < ParamN; p++ {
		pop.params[p] = fill(n, pv[p])
	}
	for v := StateVar(0); v < StateVarN; v++ {
		pop.state[v] = fill(n, sv[v])
	}
	pop.Rec = NewRecorder(n, model.Recordables(), pop.Dirty)
	return pop
}

func fill(n int, val float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = val
	}
	return vals
}

func (pop *Population) checkAtom(idx int) error {
	if idx < 0 || idx >= pop.N {
		return errs.New(errs.Invalid, "%s: atom %d out of range [0, %d)", pop.Name, idx, pop.N)
	}
	return nil
}

// Param returns parameter p of atom idx.
func (pop *Population) Param(p Param, idx int) float64 {
	return pop.params[p][idx]
}

// State returns state variable v of atom idx.
func (pop *Population) State(v StateVar, idx int) float64 {
	return pop.state[v][idx]
}

// ParamValues returns a copy of parameter p for all atoms.
func (pop *Population) ParamValues(p Param) []float64 {
	return append([]float64(nil), pop.params[p]...)
}

// StateValues returns a copy of state variable v for all atoms.
func (pop *Population) StateValues(v StateVar) []float64 {
	return append([]float64(nil), pop.state[v]...)
}

// SetParam sets parameter p on all atoms.
func (pop *Population) SetParam(p Param, val float64) {
	for i := range pop.params[p] {
		pop.params[p][i] = val
	}
	pop.Dirty.MarkValue()
}

// SetParamAt sets parameter p of atom idx.
func (pop *Population) SetParamAt(p Param, idx int, val float64) error {
	if err := pop.checkAtom(idx); err != nil {
		return err
	}
	pop.params[p][idx] = val
	pop.Dirty.MarkValue()
	return nil
}

// SetParamByName sets a parameter on all atoms by external name.
// An unknown name is a lookup error and nothing changes.
func (pop *Population) SetParamByName(name string, val float64) error {
	p, err := ParamByName(name)
	if err != nil {
		return err
	}
	pop.SetParam(p, val)
	return nil
}

// ParamByName returns a copy of the named parameter for all atoms.
func (pop *Population) ParamByName(name string) ([]float64, error) {
	p, err := ParamByName(name)
	if err != nil {
		return nil, err
	}
	return pop.ParamValues(p), nil
}

// Initialize sets the initial value of state variable v on all atoms.
func (pop *Population) Initialize(v StateVar, val float64) {
	for i := range pop.state[v] {
		pop.state[v][i] = val
	}
	pop.Dirty.MarkValue()
}

// InitializeAt sets the initial value of state variable v for atom idx.
func (pop *Population) InitializeAt(v StateVar, idx int, val float64) error {
	if err := pop.checkAtom(idx); err != nil {
		return err
	}
	pop.state[v][idx] = val
	pop.Dirty.MarkValue()
	return nil
}

// InitializeByName sets a state variable on all atoms by external name,
// accepting either "v" or "v_init" forms.
func (pop *Population) InitializeByName(name string, val float64) error {
	v, err := StateVarByName(name)
	if err != nil {
		return err
	}
	pop.Initialize(v, val)
	return nil
}

// setStateFrom overwrites state for the atoms of sl from device values.
// It does not mark the vertex dirty: the device already holds these values.
func (pop *Population) setStateFrom(v StateVar, sl mapping.Slice, vals []float64) {
	copy(pop.state[v][sl.Lo:sl.Hi+1], vals)
}
