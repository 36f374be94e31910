// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron provides populations of point neurons for mapping onto cores.

A Population holds the per-atom parameter and state values of one group of
neurons of the same Model, indexed by the Param and StateVar enums.  Values
are float64 on the host and are converted to the fixed point formats the
cores use only when a slice of the population is written out by Model.Data.

The Model interface is what a neuron type provides: its binary, the sizes of
its per-atom data, cycle costs, recordable variables and the encoding of
parameters and state.  LIFCond is the conductance based leaky integrate and
fire model with exponential synapses, one excitatory and one inhibitory
synapse type.

The Recorder keeps the recording selection of a population: the spike
stream plus one stream per recordable state variable, each with a sampling
rate and an optional subset of atoms.  Changing the selection changes region
sizes, so it is marked as a structural change on the population's
state.DirtyState, whereas SetParam and Initialize are value changes that only
require the neuron parameter region to be patched.
*/
package neuron
