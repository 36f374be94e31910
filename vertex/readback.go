// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertex

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/resource"
)

const provenanceWords = resource.ProvenanceWords

// Patch regenerates the neuron parameter region of prev from the current
// values.  The back-off and key already in prev are kept, so nothing the
// placement decided changes.  It implements state.Builder.
func (vt *PopulationVertex) Patch(sl mapping.Slice, prev *image.Image) (*image.Image, error) {
	return vt.RegenerateValueRegion(sl, prev)
}

// RegenerateValueRegion returns a copy of prev with the neuron parameter
// region rewritten.  Offsets and sizes do not change.
func (vt *PopulationVertex) RegenerateValueRegion(sl mapping.Slice, prev *image.Image) (*image.Image, error) {
	if prev == nil {
		return nil, errs.New(errs.Invalid, "%s %v: no image to patch", vt.Name(), sl)
	}
	old := prev.RegionData(image.NeuronParams)
	if len(old) < resource.NeuronHeaderBytes {
		return nil, errs.New(errs.Invalid, "%s %v: neuron parameter region of %d bytes", vt.Name(), sl, len(old))
	}
	backoff := binary.LittleEndian.Uint32(old[0:])
	key := mapping.RoutingKey{Valid: binary.LittleEndian.Uint32(old[8:]) != 0, Key: binary.LittleEndian.Uint32(old[12:])}
	words := vt.neuronParamWords(sl, key, backoff)
	data := make([]byte, 0, 4*len(words))
	for _, w := range words {
		data = binary.LittleEndian.AppendUint32(data, w)
	}
	return prev.Patch(image.NeuronParams, data)
}

// ReadBack updates the state variables of sl from the neuron parameter
// region as read from its core.  The fixed header and the recorder globals
// are skipped, and parameters are left untouched.
func (vt *PopulationVertex) ReadBack(sl mapping.Slice, raw []byte) error {
	skip := resource.NeuronHeaderBytes + vt.Pop.Rec.GlobalBytes(sl)
	if len(raw) < skip {
		return errs.New(errs.Invalid, "%s %v: read back %d bytes, header alone is %d", vt.Name(), sl, len(raw), skip)
	}
	body := raw[skip:]
	words := make([]uint32, len(body)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(body[4*i:])
	}
	return vt.Pop.Model.ReadData(vt.Pop, sl, words)
}

// ReadBackFromMachine reads the neuron parameter region of sl from its
// core through tr, locating it from the image header at the base address.
// Transport errors are returned unchanged.
func (vt *PopulationVertex) ReadBackFromMachine(ctx context.Context, tr mapping.Transport, sl mapping.Slice) error {
	pl, _, ok := vt.Placement(sl)
	if !ok {
		return errs.New(errs.Lookup, "%s %v: not placed", vt.Name(), sl)
	}
	hdr, err := tr.ReadMemory(ctx, pl.Core, pl.BaseAddress, image.HeaderBytes)
	if err != nil {
		return err
	}
	tbl, err := image.ParseHeader(hdr)
	if err != nil {
		return err
	}
	off := tbl[image.NeuronParams]
	raw, err := tr.ReadMemory(ctx, pl.Core, pl.BaseAddress+off, vt.Est.NeuronParamsBytes(sl))
	if err != nil {
		return err
	}
	return vt.ReadBack(sl, raw)
}

// Provenance is the decoded provenance region of a core: the system
// counters followed by the neuron counters.
type Provenance struct {
	TransmissionEventOverflow uint32
	CallbackQueueOverloads    uint32
	DMAQueueOverloads         uint32
	TimerTickOverruns         uint32
	MaxTimerTickOverrun       uint32

	PreSynapticEvents        uint32
	SaturationCount          uint32
	BufferOverflowCount      uint32
	CurrentTimerTick         uint32
	PlasticWeightSaturations uint32
}

// Warnings lists the counters that indicate the run was degraded.
func (pv *Provenance) Warnings() []string {
	var ws []string
	add := func(n uint32, what string) {
		if n > 0 {
			ws = append(ws, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(pv.TransmissionEventOverflow, "transmission events were dropped")
	add(pv.CallbackQueueOverloads, "callback queue overloads")
	add(pv.DMAQueueOverloads, "dma queue overloads")
	add(pv.TimerTickOverruns, "timer ticks overran")
	add(pv.SaturationCount, "synaptic weight saturations")
	add(pv.BufferOverflowCount, "input buffer overflows")
	add(pv.PlasticWeightSaturations, "plastic weight saturations")
	return ws
}

// DecodeProvenance decodes a provenance region read back from a core.
func DecodeProvenance(raw []byte) (*Provenance, error) {
	if len(raw) < 4*provenanceWords {
		return nil, errs.New(errs.Invalid, "provenance region of %d bytes, need %d", len(raw), 4*provenanceWords)
	}
	w := func(i int) uint32 { return binary.LittleEndian.Uint32(raw[4*i:]) }
	pv := &Provenance{
		TransmissionEventOverflow: w(0),
		CallbackQueueOverloads:    w(1),
		DMAQueueOverloads:         w(2),
		TimerTickOverruns:         w(3),
		MaxTimerTickOverrun:       w(4),
		PreSynapticEvents:         w(5),
		SaturationCount:           w(6),
		BufferOverflowCount:       w(7),
		CurrentTimerTick:          w(8),
		PlasticWeightSaturations:  w(9),
	}
	for _, m := range pv.Warnings() {
		logger.Warningf("%s", m)
	}
	return pv, nil
}
