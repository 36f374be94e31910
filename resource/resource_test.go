// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/spikemap/config"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/neuron"
)

// freeModel costs nothing beyond the base costs.
type freeModel struct {
	neuron.LIFCond
}

func (fm *freeModel) CPUCycles(n int) int  { return 0 }
func (fm *freeModel) DTCMBytes(n int) int  { return 0 }
func (fm *freeModel) SDRAMBytes(n int) int { return 0 }

type fixedSyn struct {
	cycles, dtcm, perAtom, mallocs int
}

func (fs *fixedSyn) CPUCycles() int                  { return fs.cycles }
func (fs *fixedSyn) DTCMBytes() int                  { return fs.dtcm }
func (fs *fixedSyn) SDRAMBytes(sl mapping.Slice) int { return fs.perAtom * sl.NAtoms() }
func (fs *fixedSyn) NMallocs() int                   { return fs.mallocs }

func TestCPUScenario(t *testing.T) {
	model := &freeModel{}
	model.Defaults()
	pop := neuron.NewPopulation("pop", 100, model)
	slices := mapping.Chunk(100, 50)
	require.NoError(t, mapping.ValidatePartition(100, slices))
	es := NewEstimator(model, pop.Rec, &fixedSyn{}, config.Default())
	assert.Equal(t, 1110, es.Estimate(slices[0]).CPUCycles)
	assert.Equal(t, 1110, es.Estimate(slices[1]).CPUCycles)
	assert.Equal(t, 48, es.DTCMBytes(slices[0]))
}

func TestSDRAMBreakdown(t *testing.T) {
	model := &freeModel{}
	pop := neuron.NewPopulation("pop", 10, model)
	cfg := config.Default()
	cfg.Reports.ProfileSamples = 3
	es := NewEstimator(model, pop.Rec, &fixedSyn{perAtom: 8, mallocs: 4}, cfg)
	sl := mapping.NewSlice(0, 9)

	rs := es.RegionSizes(sl)
	assert.Equal(t, 16, rs[image.System])
	assert.Equal(t, 32+4*(8+5*4), rs[image.NeuronParams])
	assert.Equal(t, 4*(5+2*4), rs[image.Recording])
	assert.Equal(t, 4+8*3, rs[image.Profiling])
	assert.Equal(t, 40, rs[image.Provenance])
	assert.Equal(t, 80, rs[image.SynapticMatrix])

	sum := image.HeaderBytes
	for _, r := range rs {
		sum += r
	}
	assert.Equal(t, sum+(2+4)*8, es.SDRAMBytes(sl))
}

func TestRecordingBuffers(t *testing.T) {
	model := neuron.NewLIFCond()
	pop := neuron.NewPopulation("pop", 64, model)
	cfg := config.Default()
	cfg.Simulation.RunTicks = 1000
	cfg.Buffers.SpikeBufferSize = 1024
	cfg.Buffers.MinimumBufferSDRAM = 512
	es := NewEstimator(model, pop.Rec, nil, cfg)
	sl := mapping.NewSlice(0, 63)
	assert.Equal(t, 0, es.RecordingBytes(sl))

	require.NoError(t, pop.Rec.SetRecording("spikes", true, 1, nil))
	full := 1000 * (4 + 8)
	cfg.Buffers.UseAutoPauseAndResume = false
	assert.Equal(t, full, es.RecordingBuffers(sl)[0])
	cfg.Buffers.UseAutoPauseAndResume = true
	assert.Equal(t, 1024, es.RecordingBuffers(sl)[0])
	cfg.Buffers.MinimumBufferSDRAM = 4096
	assert.Equal(t, 4096, es.RecordingBuffers(sl)[0])

	cfg.Simulation.RunTicks = 0
	assert.Equal(t, 4096, es.RecordingBytes(sl))
	assert.Equal(t, 3, es.NMallocs())
}

func TestMonotone(t *testing.T) {
	model := neuron.NewLIFCond()
	pop := neuron.NewPopulation("pop", 256, model)
	require.NoError(t, pop.Rec.SetRecording("spikes", true, 1, nil))
	require.NoError(t, pop.Rec.SetRecording("v", true, 2, []int{1, 5, 100, 200}))
	cfg := config.Default()
	cfg.Simulation.RunTicks = 500
	es := NewEstimator(model, pop.Rec, &fixedSyn{cycles: 5, dtcm: 7, perAtom: 12, mallocs: 4}, cfg)
	prev := es.Estimate(mapping.NewSlice(0, 0))
	for hi := 1; hi < 256; hi++ {
		cur := es.Estimate(mapping.NewSlice(0, hi))
		assert.GreaterOrEqual(t, cur.CPUCycles, prev.CPUCycles)
		assert.GreaterOrEqual(t, cur.DTCM, prev.DTCM)
		assert.GreaterOrEqual(t, cur.SDRAM, prev.SDRAM)
		prev = cur
	}
}

func TestFits(t *testing.T) {
	mc := &config.Default().Machine
	rs := Resources{DTCM: 10, SDRAM: 10}
	assert.NoError(t, rs.Fits(mc))
	rs.DTCM = 1 << 30
	assert.True(t, errors.Is(rs.Fits(mc), errs.ErrCapacity))
}
