// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package resource estimates the compute and memory a slice of a population
needs on one core.  Estimates depend only on the slice, the model, the
recording selection, the synapse manager and the configuration, so they can
be made before any core is placed.  The region sizes it computes are the
sizes the image builder reserves.
*/
package resource

import (
	"fmt"

	"github.com/c2h5oh/datasize"

	"github.com/emer/spikemap/config"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/neuron"
)

const (
	// SystemBytes is the system region: hash, tick, time scale and sdp port.
	SystemBytes = 4 * 4

	// NeuronHeaderBytes is the fixed prefix of the neuron parameter region.
	NeuronHeaderBytes = 8 * 4

	// ProvenanceWords is the counters of the provenance region.
	ProvenanceWords = 10

	// RecordingHeaderWords precede the per-stream sizes and pointers.
	RecordingHeaderWords = 5
)

// Costs are the base costs of the neuron executable.
type Costs struct {
	BaseNeuronCycles int `desc:"cycles per tick of the neuron loop"`
	BaseMainCycles   int `desc:"cycles per tick of the main loop"`
	PerNeuronCycles  int `desc:"cycles per tick per atom"`
	BaseNeuronDTCM   int
	BaseMainDTCM     int
	PerMallocSDRAM   int `desc:"allocator overhead per allocation"`
	BasicMallocs     int `desc:"allocations every core makes"`
}

func (cs *Costs) Defaults() {
	cs.BaseNeuronCycles = 10
	cs.BaseMainCycles = 0
	cs.PerNeuronCycles = 22
	cs.BaseNeuronDTCM = 36
	cs.BaseMainDTCM = 12
	cs.PerMallocSDRAM = 8
	cs.BasicMallocs = 2
}

// Synapses is the synapse side of a population.
type Synapses interface {
	CPUCycles() int
	DTCMBytes() int
	SDRAMBytes(post mapping.Slice) int
	NMallocs() int
}

// Resources is the requirement of one slice.
type Resources struct {
	CPUCycles int
	DTCM      datasize.ByteSize
	SDRAM     datasize.ByteSize

	// RecordingSDRAM is the part of SDRAM taken by recording buffers.
	RecordingSDRAM datasize.ByteSize
}

func (rs Resources) String() string {
	return fmt.Sprintf("cpu: %d cycles, dtcm: %v, sdram: %v (recording %v)", rs.CPUCycles, rs.DTCM.HumanReadable(), rs.SDRAM.HumanReadable(), rs.RecordingSDRAM.HumanReadable())
}

// Fits fails with a capacity error if rs exceeds the core limits.
func (rs Resources) Fits(mc *config.Machine) error {
	switch {
	case uint64(rs.DTCM) > mc.DTCMBytes:
		return errs.New(errs.Capacity, "dtcm %v exceeds core %v", rs.DTCM.HumanReadable(), datasize.ByteSize(mc.DTCMBytes).HumanReadable())
	case uint64(rs.SDRAM) > mc.SDRAMBytes:
		return errs.New(errs.Capacity, "sdram %v exceeds core %v", rs.SDRAM.HumanReadable(), datasize.ByteSize(mc.SDRAMBytes).HumanReadable())
	}
	return nil
}

// Estimator computes Resources for slices of one population.
type Estimator struct {
	Costs Costs
	Model neuron.Model
	Rec   *neuron.Recorder
	Syn   Synapses `desc:"nil when nothing projects to the population"`
	Cfg   *config.Config
}

// NewEstimator returns an estimator with default costs.
func NewEstimator(model neuron.Model, rec *neuron.Recorder, syn Synapses, cfg *config.Config) *Estimator {
	es := &Estimator{Model: model, Rec: rec, Syn: syn, Cfg: cfg}
	es.Costs.Defaults()
	return es
}

// Estimate returns the requirement of sl.
func (es *Estimator) Estimate(sl mapping.Slice) Resources {
	return Resources{
		CPUCycles:      es.CPUCycles(sl),
		DTCM:           datasize.ByteSize(es.DTCMBytes(sl)),
		SDRAM:          datasize.ByteSize(es.SDRAMBytes(sl)),
		RecordingSDRAM: datasize.ByteSize(es.RecordingBytes(sl)),
	}
}

// CPUCycles is the per-tick cost of sl.
func (es *Estimator) CPUCycles(sl mapping.Slice) int {
	n := sl.NAtoms()
	cy := es.Costs.BaseNeuronCycles + es.Costs.BaseMainCycles + es.Costs.PerNeuronCycles*n
	cy += es.Rec.CPUCycles(n) + es.Model.CPUCycles(n)
	if es.Syn != nil {
		cy += es.Syn.CPUCycles()
	}
	return cy
}

// DTCMBytes is the local memory of sl.
func (es *Estimator) DTCMBytes(sl mapping.Slice) int {
	sz := es.Costs.BaseNeuronDTCM + es.Costs.BaseMainDTCM
	sz += es.Model.DTCMBytes(sl.NAtoms()) + es.Rec.DTCMBytes(sl)
	if es.Syn != nil {
		sz += es.Syn.DTCMBytes()
	}
	return sz
}

// NMallocs is the allocations a core makes: the basic ones, the synapse
// ones and one per recorded stream.
func (es *Estimator) NMallocs() int {
	n := es.Costs.BasicMallocs + es.Rec.NEnabled()
	if es.Syn != nil {
		n += es.Syn.NMallocs()
	}
	return n
}

// NeuronParamsBytes is the fixed prefix, the recorder globals and the model data.
func (es *Estimator) NeuronParamsBytes(sl mapping.Slice) int {
	return NeuronHeaderBytes + es.Rec.GlobalBytes(sl) + es.Model.SDRAMBytes(sl.NAtoms())
}

// RecordingHeaderBytes is the recording region of nStreams streams.
func RecordingHeaderBytes(nStreams int) int {
	return 4 * (RecordingHeaderWords + 2*nStreams)
}

// ProfilingBytes is a sample count then two words per sample.
func ProfilingBytes(nSamples int) int {
	return 4 + 8*nSamples
}

// ProvenanceBytes is the provenance counters.
func ProvenanceBytes() int {
	return 4 * ProvenanceWords
}

// RegionSizes returns the byte size of each image region of sl.
func (es *Estimator) RegionSizes(sl mapping.Slice) [image.RegionIDN]int {
	var rs [image.RegionIDN]int
	rs[image.System] = SystemBytes
	rs[image.NeuronParams] = es.NeuronParamsBytes(sl)
	rs[image.Recording] = RecordingHeaderBytes(es.Rec.NStreams())
	rs[image.Profiling] = ProfilingBytes(int(es.Cfg.Reports.ProfileSamples))
	rs[image.Provenance] = ProvenanceBytes()
	if es.Syn != nil {
		rs[image.SynapticMatrix] = es.Syn.SDRAMBytes(sl)
	}
	return rs
}

// ImageBytes is the size of the image of sl, header included.
func (es *Estimator) ImageBytes(sl mapping.Slice) int {
	sz := image.HeaderBytes
	for _, r := range es.RegionSizes(sl) {
		sz += image.AlignWord(r)
	}
	return sz
}

// RecordingBuffers returns the SDRAM of each stream's recording buffer.
// With auto pause and resume a stream is capped at its configured buffer,
// but never below the minimum buffer; otherwise it holds the whole run.
// A run of unknown length is sized at the cap.
func (es *Estimator) RecordingBuffers(sl mapping.Slice) []int {
	bc := &es.Cfg.Buffers
	ticks := int(es.Cfg.Simulation.RunTicks)
	out := make([]int, es.Rec.NStreams())
	for si, st := range es.Rec.Streams {
		if !st.Recording() {
			continue
		}
		smax := bc.VariableBufferSize
		if st.Spikes {
			smax = bc.SpikeBufferSize
		}
		capb := int(smax)
		if int(bc.MinimumBufferSDRAM) > capb {
			capb = int(bc.MinimumBufferSDRAM)
		}
		if ticks == 0 {
			out[si] = capb
			continue
		}
		full := es.Rec.Buffered(si, sl, ticks)
		if bc.UseAutoPauseAndResume && full > capb {
			full = capb
		}
		out[si] = full
	}
	return out
}

// RecordingBytes is the total of RecordingBuffers.
func (es *Estimator) RecordingBytes(sl mapping.Slice) int {
	sz := 0
	for _, b := range es.RecordingBuffers(sl) {
		sz += b
	}
	return sz
}

// SDRAMBytes is the image, the allocator overheads and the recording buffers of sl.
func (es *Estimator) SDRAMBytes(sl mapping.Slice) int {
	return es.ImageBytes(sl) + es.NMallocs()*es.Costs.PerMallocSDRAM + es.RecordingBytes(sl)
}
