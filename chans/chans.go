// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the excitatory and inhibitory synaptic channels of a
conductance-based point neuron: reversal potentials, synaptic time constants,
and the per-timestep decay factors derived from them.
*/
package chans

import (
	"math"
)

// Chans holds one value for each synaptic receptor channel.
type Chans struct {
	E float64 `desc:"excitatory (AMPA, glutamate) channel"`
	I float64 `desc:"inhibitory (GABA-A, chloride) channel"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, i float64) {
	ch.E, ch.I = e, i
}

// Decay returns the per-step exponential decay exp(-dt/tau) for each channel,
// treating ch as time constants in ms.
func (ch *Chans) Decay(dtMs float64) Chans {
	return Chans{E: decay(dtMs, ch.E), I: decay(dtMs, ch.I)}
}

// Init returns the input scaling (tau/dt)*(1-decay) for each channel, so a
// unit input integrated over one step has unit area.
func (ch *Chans) Init(dtMs float64) Chans {
	return Chans{E: initScale(dtMs, ch.E), I: initScale(dtMs, ch.I)}
}

func decay(dt, tau float64) float64 {
	if tau <= 0 {
		return 0
	}
	return math.Exp(-dt / tau)
}

func initScale(dt, tau float64) float64 {
	if tau <= 0 {
		return 1
	}
	return (tau / dt) * (1 - decay(dt, tau))
}

// Drive returns the conductance driving force (erev - v) for each channel.
func (ch *Chans) Drive(v float64) Chans {
	return Chans{E: ch.E - v, I: ch.I - v}
}
