// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"github.com/emer/spikemap/errs"
)

// Synapse is one generated connection.  Source and Target are population
// atom indexes, Weight is fixed point, Delay is in ticks.
type Synapse struct {
	Source uint32
	Target uint32
	Weight uint16
	Delay  uint32
	Type   uint8
}

var SynapseVars = []string{"Source", "Target", "Weight", "Delay", "Type"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

// SynapseVarByName returns the index of the variable in the Synapse, or a
// Lookup error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, errs.New(errs.Lookup, "synapse variable %q not valid, one of %v", varNm, SynapseVars)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float64 {
	switch idx {
	case 0:
		return float64(sy.Source)
	case 1:
		return float64(sy.Target)
	case 2:
		return float64(sy.Weight)
	case 3:
		return float64(sy.Delay)
	case 4:
		return float64(sy.Type)
	}
	return 0
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float64, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return sy.VarByIndex(i), nil
}

// Synapses is a generated block of connections.
type Synapses []Synapse

// Values returns the named variable of every synapse.
func (ss Synapses) Values(varNm string) ([]float64, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, len(ss))
	for k := range ss {
		vals[k] = ss[k].VarByIndex(i)
	}
	return vals, nil
}

// RowLengths returns the number of synapses from each pre atom in [lo, lo+n),
// over all delay stages.
func (ss Synapses) RowLengths(lo, n int) []int {
	rl := make([]int, n)
	for _, sy := range ss {
		r := int(sy.Source) - lo
		if r >= 0 && r < n {
			rl[r]++
		}
	}
	return rl
}
