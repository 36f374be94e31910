// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vertex ties a population to the machine: it estimates the resources
of each slice, builds the memory image of each placed slice, keeps the
images in sync with parameter and recording changes, and reads state back
from the cores after a run.

A PopulationVertex composes its behaviours from per-concern parts: the
neuron.Population holds values, the neuron.Recorder the recording selection,
the synapse.Manager the incoming projections, the resource.Estimator the
budgets and the state.Tracker the last known good images.  The capability
interfaces below are what other code should depend on.
*/
package vertex

import (
	"sync"

	"github.com/emer/emergent/timer"
	"github.com/goki/ki/ints"

	"github.com/emer/spikemap/config"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/log"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/neuron"
	"github.com/emer/spikemap/resource"
	"github.com/emer/spikemap/state"
	"github.com/emer/spikemap/synapse"
)

var logger = log.NewModuleLogger("vertex")

// Recordable can record spikes and state variables.
type Recordable interface {
	SetRecording(name string, on bool, rate int, atoms []int) error
	Recorder() *neuron.Recorder
}

// Settable has named parameters.
type Settable interface {
	SetParam(name string, val float64) error
	GetParam(name string) ([]float64, error)
}

// Initializable has named state variables with initial values.
type Initializable interface {
	Initialize(name string, val float64) error
	GetState(name string) ([]float64, error)
}

// AcceptsIncomingSynapses can be the target of projections.
type AcceptsIncomingSynapses interface {
	AddProjection(pj *synapse.Projection) error
	Connect(e mapping.Edge) error
	Synapses() *synapse.Manager
}

// SliceFunChan carries work to a build thread.
type SliceFunChan chan func(th int)

// PopulationVertex is a population mapped onto cores, one slice per core.
type PopulationVertex struct {
	Pop     *neuron.Population
	Syn     *synapse.Manager
	Est     *resource.Estimator
	Tracker *state.Tracker
	Cfg     *config.Config

	// Alloc is shared by all vertices of one compilation.
	Alloc *mapping.Allocator

	Slices []mapping.Slice

	NThreads int                    `desc:"number of build threads, 1 builds in the calling goroutine"`
	ThrChans []SliceFunChan         `view:"-" desc:"work channels, per thread"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, to see how evenly builds are spread"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function"`
	WaitGp   sync.WaitGroup         `view:"-"`

	mu     sync.RWMutex
	places map[mapping.Slice]mapping.Placement
	keys   map[mapping.Slice]mapping.RoutingKey
}

var (
	_ Recordable              = (*PopulationVertex)(nil)
	_ Settable                = (*PopulationVertex)(nil)
	_ Initializable           = (*PopulationVertex)(nil)
	_ AcceptsIncomingSynapses = (*PopulationVertex)(nil)
	_ state.Builder           = (*PopulationVertex)(nil)
	_ state.BatchBuilder      = (*PopulationVertex)(nil)
)

// NewPopulationVertex maps pop with the given configuration and starts
// cfg.Machine.Workers build threads.  Close stops them.
func NewPopulationVertex(pop *neuron.Population, cfg *config.Config, alloc *mapping.Allocator) *PopulationVertex {
	md := pop.Model
	vt := &PopulationVertex{Pop: pop, Cfg: cfg, Alloc: alloc}
	vt.Syn = synapse.NewManager(pop.Name, pop.N, md.NSynapseTypes(), md.GlobalWeightScale(), cfg.Simulation.TickMicros)
	vt.Est = resource.NewEstimator(md, pop.Rec, vt.Syn, cfg)
	vt.Tracker = state.NewTracker(pop.Dirty)
	vt.places = make(map[mapping.Slice]mapping.Placement)
	vt.keys = make(map[mapping.Slice]mapping.RoutingKey)
	vt.BuildThreads(cfg.Machine.Workers)
	vt.StartThreads()
	return vt
}

// Name is the population name.
func (vt *PopulationVertex) Name() string {
	return vt.Pop.Name
}

// SetSlices sets the partition of the population into per-core slices.
// Each slice must fit one core's atom limit and the 8 bit post index of
// the synaptic matrix.
func (vt *PopulationVertex) SetSlices(slices []mapping.Slice) error {
	if err := mapping.ValidatePartition(vt.Pop.N, slices); err != nil {
		return err
	}
	max := ints.MinInt(vt.Cfg.Machine.MaxAtomsPerCore, synapse.MaxPostAtoms)
	for _, sl := range slices {
		if sl.NAtoms() > max {
			return errs.New(errs.Capacity, "%s: slice %v has %d atoms, a core holds %d", vt.Name(), sl, sl.NAtoms(), max)
		}
	}
	vt.Slices = append([]mapping.Slice(nil), slices...)
	vt.Pop.Dirty.MarkStructural()
	return nil
}

// Place records where sl is loaded and the key its spikes are sent with.
func (vt *PopulationVertex) Place(sl mapping.Slice, pl mapping.Placement, key mapping.RoutingKey) {
	vt.mu.Lock()
	vt.places[sl] = pl
	vt.keys[sl] = key
	vt.mu.Unlock()
	vt.Pop.Dirty.MarkStructural()
}

// Placement returns the placement of sl.
func (vt *PopulationVertex) Placement(sl mapping.Slice) (mapping.Placement, mapping.RoutingKey, bool) {
	vt.mu.RLock()
	defer vt.mu.RUnlock()
	pl, ok := vt.places[sl]
	return pl, vt.keys[sl], ok
}

// EstimateResources returns the requirement of sl.
func (vt *PopulationVertex) EstimateResources(sl mapping.Slice) resource.Resources {
	return vt.Est.Estimate(sl)
}

// Sync brings the images of all slices up to date.
func (vt *PopulationVertex) Sync() (state.Action, error) {
	return vt.Tracker.Sync(vt.Slices, vt)
}

// Recorder returns the recording selection.
func (vt *PopulationVertex) Recorder() *neuron.Recorder {
	return vt.Pop.Rec
}

// SetRecording enables or disables a stream; see neuron.Recorder.SetRecording.
func (vt *PopulationVertex) SetRecording(name string, on bool, rate int, atoms []int) error {
	return vt.Pop.Rec.SetRecording(name, on, rate, atoms)
}

// SetParam sets a parameter of every atom by name, e.g. "tau_m".
func (vt *PopulationVertex) SetParam(name string, val float64) error {
	return vt.Pop.SetParamByName(name, val)
}

// GetParam returns the values of a parameter by name.
func (vt *PopulationVertex) GetParam(name string) ([]float64, error) {
	return vt.Pop.ParamByName(name)
}

// Initialize sets the initial value of a state variable of every atom, e.g. "v" or "v_init".
func (vt *PopulationVertex) Initialize(name string, val float64) error {
	return vt.Pop.InitializeByName(name, val)
}

// GetState returns the values of a state variable by name.
func (vt *PopulationVertex) GetState(name string) ([]float64, error) {
	v, err := neuron.StateVarByName(name)
	if err != nil {
		return nil, err
	}
	return vt.Pop.StateValues(v), nil
}

// AddProjection adds a projection into the population.  Projections change
// the synaptic matrix size, so this is a structural change.
func (vt *PopulationVertex) AddProjection(pj *synapse.Projection) error {
	if err := vt.Syn.AddProjection(pj); err != nil {
		return err
	}
	vt.Pop.Dirty.MarkStructural()
	return nil
}

// Connect adds an edge of a projection.
func (vt *PopulationVertex) Connect(e mapping.Edge) error {
	if err := vt.Syn.Connect(e); err != nil {
		return err
	}
	vt.Pop.Dirty.MarkStructural()
	return nil
}

// GetSynapses returns a variable of every synapse of the named incoming
// projection, e.g. "Weight" (fixed point) or "Delay" (ticks).
func (vt *PopulationVertex) GetSynapses(proj, varNm string) ([]float64, error) {
	return vt.Syn.ConnectionValues(proj, varNm)
}

// Synapses returns the synapse manager.
func (vt *PopulationVertex) Synapses() *synapse.Manager {
	return vt.Syn
}
