// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plastic

import (
	"github.com/goki/mat32"

	"github.com/emer/spikemap/fixed"
)

// LUT is an exponential decay lookup table in STDP fixed point.  Entry i is
// the decay after (i << Shift) ticks.
type LUT struct {
	Tau    float64
	Shift  uint
	Values []int16
}

// ExpLUT returns a size-entry table of round(exp(-(i<<shift)/tau) * one).
func ExpLUT(tau float64, size int, shift uint) *LUT {
	lt := &LUT{Tau: tau, Shift: shift, Values: make([]int16, size)}
	for i := range lt.Values {
		t := float32(i << shift)
		lt.Values[i] = fixed.STDP(float64(mat32.Exp(-t / float32(tau))))
	}
	return lt
}

// Size returns the number of entries.
func (lt *LUT) Size() int {
	return len(lt.Values)
}

// Bytes returns the encoded size of the table.
func (lt *LUT) Bytes() int {
	return 2 * len(lt.Values)
}

// Last returns the final entry.  A non-zero last entry means the table is
// too short to decay fully and late spike pairs are truncated.
func (lt *LUT) Last() int16 {
	if len(lt.Values) == 0 {
		return 0
	}
	return lt.Values[len(lt.Values)-1]
}

// Lookup returns the decay for a time difference in ticks, 0 past the end.
func (lt *LUT) Lookup(dt int) int16 {
	i := dt >> lt.Shift
	if i < 0 || i >= len(lt.Values) {
		return 0
	}
	return lt.Values[i]
}
