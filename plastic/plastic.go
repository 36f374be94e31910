// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package plastic compiles spike-timing dependent plasticity rules into the
fixed-point parameter blocks read by the core: exponential decay lookup
tables for the timing dependence and scaled bounds for the weight dependence.
ParamsSize always equals the bytes Write emits.
*/
package plastic

import (
	"github.com/emer/spikemap/image"
)

// TimingDependence is the spike-timing part of a rule.
type TimingDependence interface {
	Name() string
	// NWeightTerms is the number of weight terms the rule updates.
	NWeightTerms() int
	ParamsSize() int
	// CheckTick fails if tables cannot be generated for the tick.
	CheckTick(tickMicros uint32) error
	// Write emits the parameters, failing before any write if tickMicros is
	// not supported.
	Write(sp *image.Spec, tickMicros uint32) error
	// PreTraceBytes is the per-row pre-synaptic trace size.
	PreTraceBytes() int
	// RowHeaders returns the initial plastic row headers for nRows rows of headerBytes.
	RowHeaders(nRows, headerBytes int) []byte
	Provenance() []Provenance
}

// WeightDependence is the weight-bound part of a rule.
type WeightDependence interface {
	Name() string
	ParamsSize(nTerms int) (int, error)
	// MaxWeight is the largest weight the rule can reach.
	MaxWeight() float64
	Write(sp *image.Spec, weightScale float64, nTerms int) error
}

// Provenance is a diagnostic value produced while compiling a rule.
type Provenance struct {
	Rule  string
	Name  string
	Value int
	// Warn is set when the value shows a likely configuration problem.
	Warn bool
	Msg  string
}
