// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"math"

	"github.com/emer/spikemap/connect"
	"github.com/emer/spikemap/plastic"
)

// Projection is a set of synapses from one population into the population
// that owns the Manager.
type Projection struct {
	Name  string
	Pre   string `desc:"name of the sending population"`
	NPre  int    `desc:"atoms in the sending population"`
	Type  uint8  `desc:"synapse type the projection drives, e.g. 0 excitatory, 1 inhibitory"`
	Conn  *connect.IndexProb
	STDP  *plastic.STDP `desc:"plasticity rule; nil for static synapses"`
	post  string
	nPost int
	surf  *connect.Surface
}

// Plastic reports whether the projection carries a plasticity rule.
func (pj *Projection) Plastic() bool {
	return pj.STDP != nil
}

// Pair returns the population pair the projection's surface is keyed on.
func (pj *Projection) Pair() connect.Pair {
	return connect.Pair{Pre: pj.Pre, Post: pj.post, NPre: pj.NPre, NPost: pj.nPost}
}

// WeightMax is the largest weight the projection can carry, in model units,
// including any weight the plasticity rule can reach.
func (pj *Projection) WeightMax() float64 {
	w := pj.Conn.WeightMax()
	if pj.STDP != nil {
		w = math.Max(w, math.Abs(pj.STDP.Weight.MaxWeight()))
	}
	return w
}
