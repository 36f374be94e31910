// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0 / S1615One

func TestS1615(t *testing.T) {
	vals := []float64{-65, -70.5, 0, 0.25, 1, 20, -1.0 / 3}
	for _, v := range vals {
		dif := math.Abs(FromS1615(S1615(v)) - v)
		if dif > difTol {
			t.Errorf("S1615 err: v: %v, got: %v, dif: %v\n", v, FromS1615(S1615(v)), dif)
		}
	}
	assert.Equal(t, int32(S1615One), S1615(1))
	assert.Equal(t, int32(math.MaxInt32), S1615(1e6))
	assert.Equal(t, int32(math.MinInt32), S1615(-1e6))
}

func TestU032(t *testing.T) {
	assert.Equal(t, uint32(1<<31), U032(0.5))
	assert.Equal(t, uint32(0), U032(-0.1))
	assert.Equal(t, uint32(math.MaxUint32), U032(1))
	assert.InDelta(t, 0.904837, FromU032(U032(math.Exp(-0.1))), 1e-6)
}

func TestSTDP(t *testing.T) {
	assert.Equal(t, int16(STDPOne), STDP(1))
	assert.Equal(t, int16(1024), STDP(0.5))
	assert.Equal(t, int16(math.MaxInt16), STDP(100))
	assert.Equal(t, int32(-512), Scaled(-0.5, 1024))
}
