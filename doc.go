// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikemap is the overall repository for mapping spiking neural network
populations onto the cores of a many-core neuromorphic machine, implemented
in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* neuron: populations of point neurons, their parameters, state variables,
models (conductance based LIF) and recording selection.

* connect: the index expression connector, which draws synapses with a
probability given as an expression of the pre and post indexes.

* plastic: spike pair STDP with multiplicative weight dependence, and the
parameter blocks it writes to the core.

* synapse: the incoming projections of a population and the synaptic matrix
image each core reads its synapses from.

* resource: CPU, DTCM and SDRAM budgets of a slice of a population.

* image: region layout and the binary memory image loaded onto a core.

* state: tracking of parameter and structural changes, deciding whether
images can be patched in place or must be rebuilt.

* vertex: ties all of the above together for one population, building images
in parallel and reading state back from the machine.

* examples: these actually compile into runnable programs.  examples/compile
maps a recurrent population and reports the budgets of its cores.
*/
package spikemap
