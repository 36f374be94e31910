// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertex

import (
	"crypto/md5"
	"encoding/binary"
	"net"

	"golang.org/x/exp/rand"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
)

// regionLabels name the regions in reports.
var regionLabels = [image.RegionIDN]string{"System", "NeuronParams", "Recording", "Profiling", "Provenance", "SynapticMatrix"}

// BinaryHash is the first word of the md5 of the core binary name.
func BinaryHash(name string) uint32 {
	sum := md5.Sum([]byte(name))
	return binary.LittleEndian.Uint32(sum[:4])
}

// Backoff is the random back-off of the core with the given id, in
// [0, id].  It is drawn from a source seeded with the id, so it depends only
// on the id.
func Backoff(id int) uint32 {
	if id < 0 {
		id = 0
	}
	rng := rand.New(rand.NewSource(uint64(id)))
	return uint32(rng.Intn(id + 1))
}

// Build builds sl at its recorded placement.  It implements state.Builder.
func (vt *PopulationVertex) Build(sl mapping.Slice) (*image.Image, error) {
	pl, key, _ := vt.Placement(sl)
	return vt.BuildImage(sl, pl, key, vt.Alloc)
}

// BuildImage writes the complete image of sl.  The core takes a fresh id
// from alloc on every build, rebuilds included, and the id seeds its random
// back-off.  Every region is sized
// by the estimator before the first write, and the image is only returned
// if every region is written.
func (vt *PopulationVertex) BuildImage(sl mapping.Slice, pl mapping.Placement, key mapping.RoutingKey, alloc *mapping.Allocator) (*image.Image, error) {
	rs := vt.EstimateResources(sl)
	if err := rs.Fits(&vt.Cfg.Machine); err != nil {
		return nil, errs.Wrap(errs.Capacity, err, "%s %v", vt.Name(), sl)
	}
	if alloc == nil {
		alloc = &mapping.Allocator{}
	}
	backoff := Backoff(alloc.Next())

	sizes := vt.Est.RegionSizes(sl)
	sp := image.NewSpec()
	for id := image.RegionID(0); id < image.RegionIDN; id++ {
		if err := sp.Reserve(id, sizes[id], regionLabels[id]); err != nil {
			return nil, err
		}
	}
	if err := vt.writeSystem(sp); err != nil {
		return nil, err
	}
	if err := sp.Focus(image.NeuronParams); err != nil {
		return nil, err
	}
	if err := sp.WriteWords(vt.neuronParamWords(sl, key, backoff)); err != nil {
		return nil, err
	}
	if err := vt.writeRecording(sp, sl); err != nil {
		return nil, err
	}
	if err := sp.Focus(image.Profiling); err != nil {
		return nil, err
	}
	if err := sp.WriteUint32(vt.Cfg.Reports.ProfileSamples); err != nil {
		return nil, err
	}
	if err := sp.Focus(image.Provenance); err != nil {
		return nil, err
	}
	if err := sp.WriteWords(make([]uint32, provenanceWords)); err != nil {
		return nil, err
	}
	if err := sp.Focus(image.SynapticMatrix); err != nil {
		return nil, err
	}
	if err := vt.Syn.Write(sp, sl); err != nil {
		return nil, err
	}
	im, err := sp.Finish()
	if err != nil {
		return nil, err
	}
	logger.Debugf("%s %v on %v: image %v, %d bytes", vt.Name(), sl, pl.Core, im.ID, im.Size)
	return im, nil
}

func (vt *PopulationVertex) writeSystem(sp *image.Spec) error {
	if err := sp.Focus(image.System); err != nil {
		return err
	}
	sim := &vt.Cfg.Simulation
	return sp.WriteWords([]uint32{
		BinaryHash(vt.Pop.Model.BinaryName()),
		sim.TickMicros * sim.TimeScaleFactor,
		sim.TimeScaleFactor,
		vt.Cfg.Machine.SDPPort,
	})
}

// neuronParamWords is the whole neuron parameter region: the fixed header,
// the recorder globals and the model data.
func (vt *PopulationVertex) neuronParamWords(sl mapping.Slice, key mapping.RoutingKey, backoff uint32) []uint32 {
	sim := &vt.Cfg.Simulation
	md := vt.Pop.Model
	n := sl.NAtoms()
	isi := uint32(float64(sim.TickMicros*sim.TimeScaleFactor) / (float64(n) * 2.0))
	valid := uint32(0)
	if key.Valid {
		valid = 1
	}
	words := []uint32{
		backoff,
		isi,
		valid,
		key.Key,
		uint32(n),
		uint32(md.NSynapseTypes()),
		sim.IncomingSpikeBufferSize,
		uint32(len(md.Recordables())),
	}
	words = append(words, vt.Pop.Rec.Data(sl)...)
	return append(words, md.Data(vt.Pop, sl, sim.TickMicros)...)
}

func (vt *PopulationVertex) writeRecording(sp *image.Spec, sl mapping.Slice) error {
	if err := sp.Focus(image.Recording); err != nil {
		return err
	}
	bc := &vt.Cfg.Buffers
	bufs := vt.Est.RecordingBuffers(sl)
	words := []uint32{
		uint32(len(bufs)),
		bc.TimeBetweenRequests,
		bc.BufferSizeBeforeRequest,
		ipv4Word(bc.ReceiveHost),
		uint32(bc.ReceivePort),
	}
	for _, b := range bufs {
		words = append(words, uint32(b))
	}
	// pointers are filled in by the core
	return sp.WriteWords(append(words, make([]uint32, len(bufs))...))
}

func ipv4Word(host string) uint32 {
	ip := net.ParseIP(host).To4()
	if ip == nil {
		return 0
	}
	return binary.BigEndian.Uint32(ip)
}
