// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fixed converts between float values and the fixed-point
// encodings read by the on-core runtime, which has no floating point.
package fixed

import (
	"math"
)

const (
	// S1615Shift is the fraction width of the signed 16.15 accum type.
	S1615Shift = 15

	// S1615One is 1.0 in S1615.
	S1615One = 1 << S1615Shift

	// STDPShift is the fraction width used by plasticity tables and row headers.
	STDPShift = 11

	// STDPOne is 1.0 in STDP fixed point.
	STDPOne = 1 << STDPShift
)

// S1615 encodes v as a signed 16.15 word, saturating at the representable range.
func S1615(v float64) int32 {
	return saturate32(math.Round(v * S1615One))
}

// FromS1615 decodes a signed 16.15 word.
func FromS1615(w int32) float64 {
	return float64(w) / S1615One
}

// U032 encodes v in [0, 1) as an unsigned 0.32 fraction.
func U032(v float64) uint32 {
	s := math.Round(v * (1 << 32))
	switch {
	case s <= 0:
		return 0
	case s >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(s)
}

// FromU032 decodes an unsigned 0.32 fraction.
func FromU032(w uint32) float64 {
	return float64(w) / (1 << 32)
}

// STDP encodes v with STDPShift fraction bits into an int16, saturating.
func STDP(v float64) int16 {
	s := math.Round(v * STDPOne)
	switch {
	case s > math.MaxInt16:
		return math.MaxInt16
	case s < math.MinInt16:
		return math.MinInt16
	}
	return int16(s)
}

// Scaled rounds v*scale into a saturated int32.
func Scaled(v, scale float64) int32 {
	return saturate32(math.Round(v * scale))
}

func saturate32(s float64) int32 {
	switch {
	case s > math.MaxInt32:
		return math.MaxInt32
	case s < math.MinInt32:
		return math.MinInt32
	}
	return int32(s)
}
