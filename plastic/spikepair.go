// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plastic

import (
	"encoding/binary"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/fixed"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/log"
)

var logger = log.NewModuleLogger("plastic")

const (
	// LUTSize is the entry count of each timing table.
	LUTSize = 256

	// LUTShift maps tick differences to table indexes.
	LUTShift = 0

	// SupportedTickMicros is the only tick the tables are generated for.
	SupportedTickMicros = 1000
)

// SpikePair is pair-based STDP: potentiation decays with TauPlus after a
// pre-then-post pair, depression with TauMinus after post-then-pre.
type SpikePair struct {
	TauPlus  float64 `desc:"potentiation time constant in ms"`
	TauMinus float64 `desc:"depression time constant in ms"`
}

// NewSpikePair returns a rule with the given time constants.
func NewSpikePair(tauPlus, tauMinus float64) *SpikePair {
	return &SpikePair{TauPlus: tauPlus, TauMinus: tauMinus}
}

func (sp *SpikePair) Defaults() {
	sp.TauPlus = 20
	sp.TauMinus = 20
}

func (sp *SpikePair) Name() string       { return "SpikePairRule" }
func (sp *SpikePair) NWeightTerms() int  { return 1 }
func (sp *SpikePair) PreTraceBytes() int { return 2 }

// ParamsSize is the two tables as half-words.
func (sp *SpikePair) ParamsSize() int {
	return 2 * (LUTSize + LUTSize)
}

// Tables computes the two tables without writing them.  They depend only on
// the time constants, so every core of a population gets the same tables.
func (sp *SpikePair) Tables() (plus, minus *LUT) {
	return ExpLUT(sp.TauPlus, LUTSize, LUTShift), ExpLUT(sp.TauMinus, LUTSize, LUTShift)
}

// Write emits the potentiation then depression tables.  Any tick other than
// 1 ms is unsupported and nothing is written.
func (sp *SpikePair) Write(spec *image.Spec, tickMicros uint32) error {
	if err := sp.CheckTick(tickMicros); err != nil {
		return err
	}
	plus, minus := sp.Tables()
	vals := make([]int16, 0, plus.Size()+minus.Size())
	vals = append(vals, plus.Values...)
	vals = append(vals, minus.Values...)
	return spec.WriteInt16s(vals)
}

// CheckTick accepts only 1 ms ticks.
func (sp *SpikePair) CheckTick(tickMicros uint32) error {
	if tickMicros != SupportedTickMicros {
		return errs.New(errs.Unsupported, "%s: lookup tables only support %d us ticks, got %d", sp.Name(), SupportedTickMicros, tickMicros)
	}
	return nil
}

// RowHeaders returns zeroed headers with the first half-word of the first
// row set to fixed-point one.
func (sp *SpikePair) RowHeaders(nRows, headerBytes int) []byte {
	hdr := make([]byte, nRows*headerBytes)
	if nRows > 0 && headerBytes >= 2 {
		binary.LittleEndian.PutUint16(hdr, fixed.STDPOne)
	}
	return hdr
}

// Provenance reports the last entry of each table Write emits.  A non-zero
// last entry means the table does not decay to zero within its range.
func (sp *SpikePair) Provenance() []Provenance {
	var prov []Provenance
	add := func(name string, lt *LUT) {
		p := Provenance{Rule: sp.Name(), Name: name + "_last_entry", Value: int(lt.Last())}
		if p.Value > 0 {
			p.Warn = true
			p.Msg = "the last entry of the " + name + " table is non-zero: " + name + " may be too large for the table size"
			logger.Warningf("%s", p.Msg)
		}
		prov = append(prov, p)
	}
	plus, minus := sp.Tables()
	add("tau_plus", plus)
	add("tau_minus", minus)
	return prov
}
