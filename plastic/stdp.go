// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plastic

import (
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/image"
)

// RowHeaderBytes is the fixed part of a plastic row header, before the pre trace.
const RowHeaderBytes = 4

// STDP composes a timing and a weight dependence into one rule.
type STDP struct {
	Timing TimingDependence
	Weight WeightDependence
}

// NewSTDP returns pair-based multiplicative STDP with default parameters.
func NewSTDP() *STDP {
	tm := &SpikePair{}
	tm.Defaults()
	wt := &Multiplicative{}
	wt.Defaults()
	return &STDP{Timing: tm, Weight: wt}
}

// ParamsSize is the timing block followed by the weight block.
func (st *STDP) ParamsSize() (int, error) {
	wsz, err := st.Weight.ParamsSize(st.Timing.NWeightTerms())
	if err != nil {
		return 0, err
	}
	return st.Timing.ParamsSize() + wsz, nil
}

// Write emits both blocks.  Every capability check of both parts runs
// before the first byte is written.
func (st *STDP) Write(spec *image.Spec, tickMicros uint32, weightScale float64) error {
	sz, err := st.ParamsSize()
	if err != nil {
		return err
	}
	if err := st.Timing.CheckTick(tickMicros); err != nil {
		return err
	}
	if rem := spec.Remaining(); rem < sz {
		return errs.New(errs.Capacity, "stdp parameters need %d bytes, %d remain", sz, rem)
	}
	if err := st.Timing.Write(spec, tickMicros); err != nil {
		return err
	}
	return st.Weight.Write(spec, weightScale, st.Timing.NWeightTerms())
}

// RowHeaderSize is the per-row header of a plastic row: the fixed part plus the pre trace.
func (st *STDP) RowHeaderSize() int {
	return RowHeaderBytes + st.Timing.PreTraceBytes()
}

// Provenance returns the timing rule's diagnostics.
func (st *STDP) Provenance() []Provenance {
	return st.Timing.Provenance()
}
