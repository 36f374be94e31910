// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plastic

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/fixed"
	"github.com/emer/spikemap/image"
)

func newSpec(t *testing.T, size int) *image.Spec {
	sp := image.NewSpec()
	require.NoError(t, sp.Reserve(image.SynapticMatrix, size, "SynapticMatrix"))
	require.NoError(t, sp.Focus(image.SynapticMatrix))
	return sp
}

func TestExpLUTDecay(t *testing.T) {
	for _, tau := range []float64{1, 5, 16.7, 20, 100} {
		lt := ExpLUT(tau, 256, 0)
		require.Equal(t, 256, lt.Size())
		assert.InDelta(t, fixed.STDPOne, lt.Values[0], 1, "tau %v", tau)
		for i := 0; i < lt.Size()-1; i++ {
			if lt.Values[i] < lt.Values[i+1] {
				t.Errorf("tau %v: table[%d]=%d < table[%d]=%d", tau, i, lt.Values[i], i+1, lt.Values[i+1])
			}
		}
		for _, i := range []int{1, 10, 50} {
			want := math.Round(math.Exp(-float64(i)/tau) * fixed.STDPOne)
			assert.InDelta(t, want, lt.Values[i], 1, "tau %v entry %d", tau, i)
		}
	}
	lt := ExpLUT(20, 16, 2)
	assert.Equal(t, lt.Values[1], lt.Lookup(4))
	assert.Equal(t, int16(0), lt.Lookup(16*4))
}

func TestSpikePairWrite(t *testing.T) {
	rule := NewSpikePair(20, 20)
	sp := newSpec(t, rule.ParamsSize())
	require.NoError(t, rule.Write(sp, 1000))
	assert.Equal(t, rule.ParamsSize(), sp.Written(image.SynapticMatrix))
	assert.Equal(t, 0, sp.Remaining())

	im, err := sp.Finish()
	require.NoError(t, err)
	b := im.RegionData(image.SynapticMatrix)
	assert.Equal(t, uint16(fixed.STDPOne), binary.LittleEndian.Uint16(b))
	assert.Equal(t, uint16(fixed.STDPOne), binary.LittleEndian.Uint16(b[2*LUTSize:]))

	prov := rule.Provenance()
	require.Len(t, prov, 2)
	assert.Equal(t, "tau_plus_last_entry", prov[0].Name)
	assert.False(t, prov[0].Warn)
}

func TestSpikePairProvenanceWarns(t *testing.T) {
	rule := NewSpikePair(200, 20)
	sp := newSpec(t, rule.ParamsSize())
	require.NoError(t, rule.Write(sp, 1000))
	prov := rule.Provenance()
	assert.True(t, prov[0].Warn)
	assert.Greater(t, prov[0].Value, 0)
	assert.False(t, prov[1].Warn)
}

func TestUnsupportedTickWritesNothing(t *testing.T) {
	st := NewSTDP()
	sz, err := st.ParamsSize()
	require.NoError(t, err)
	sp := newSpec(t, sz)
	for _, tick := range []uint32{100, 500, 999, 1001, 2000} {
		err := st.Write(sp, tick, 1024)
		assert.True(t, errors.Is(err, errs.ErrUnsupported), "tick %d", tick)
		id, n := sp.Cursor()
		assert.Equal(t, image.SynapticMatrix, id)
		assert.Equal(t, 0, n)

		err = st.Timing.Write(sp, tick)
		assert.True(t, errors.Is(err, errs.ErrUnsupported))
		assert.Equal(t, 0, sp.Written(image.SynapticMatrix))
	}
}

func TestMultiplicative(t *testing.T) {
	mw := &Multiplicative{WMin: 0, WMax: 0.5, APlus: 0.01, AMinus: 0.012}
	sz, err := mw.ParamsSize(1)
	require.NoError(t, err)
	assert.Equal(t, 16, sz)

	_, err = mw.ParamsSize(2)
	assert.True(t, errors.Is(err, errs.ErrUnsupported))

	sp := newSpec(t, sz)
	assert.True(t, errors.Is(mw.Write(sp, 2048, 2), errs.ErrUnsupported))
	assert.Equal(t, 0, sp.Written(image.SynapticMatrix))

	require.NoError(t, mw.Write(sp, 2048, 1))
	assert.Equal(t, sz, sp.Written(image.SynapticMatrix))
	im, err := sp.Finish()
	require.NoError(t, err)
	b := im.RegionData(image.SynapticMatrix)
	assert.Equal(t, int32(0), int32(binary.LittleEndian.Uint32(b)))
	assert.Equal(t, int32(1024), int32(binary.LittleEndian.Uint32(b[4:])))
	assert.Equal(t, int32(20), int32(binary.LittleEndian.Uint32(b[8:])))
	assert.Equal(t, int32(25), int32(binary.LittleEndian.Uint32(b[12:])))
}

func TestSTDPSizeMatchesWrite(t *testing.T) {
	st := NewSTDP()
	sz, err := st.ParamsSize()
	require.NoError(t, err)
	assert.Equal(t, 2*(256+256)+16, sz)

	sp := newSpec(t, sz+8)
	require.NoError(t, st.Write(sp, 1000, 1024))
	assert.Equal(t, sz, sp.Written(image.SynapticMatrix))

	small := newSpec(t, sz-4)
	err = st.Write(small, 1000, 1024)
	assert.True(t, errors.Is(err, errs.ErrCapacity))
	assert.Equal(t, 0, small.Written(image.SynapticMatrix))
}

func TestSTDPConcurrentWrite(t *testing.T) {
	st := NewSTDP()
	sz, err := st.ParamsSize()
	require.NoError(t, err)
	const nthr = 4
	out := make([][]byte, nthr)
	werrs := make([]error, nthr)
	var wg sync.WaitGroup
	for th := 0; th < nthr; th++ {
		wg.Add(1)
		go func(th int) {
			defer wg.Done()
			sp := image.NewSpec()
			if werrs[th] = sp.Reserve(image.SynapticMatrix, sz, "SynapticMatrix"); werrs[th] != nil {
				return
			}
			if werrs[th] = sp.Focus(image.SynapticMatrix); werrs[th] != nil {
				return
			}
			if werrs[th] = st.Write(sp, 1000, 1024); werrs[th] != nil {
				return
			}
			st.Provenance()
			im, err := sp.Finish()
			if werrs[th] = err; err == nil {
				out[th] = im.RegionData(image.SynapticMatrix)
			}
		}(th)
	}
	wg.Wait()
	for th := 0; th < nthr; th++ {
		require.NoError(t, werrs[th])
		assert.Equal(t, out[0], out[th])
	}
	prov := st.Provenance()
	require.Len(t, prov, 2)
	assert.Equal(t, "tau_minus_last_entry", prov[1].Name)
}

func TestProvenanceWithoutWrite(t *testing.T) {
	rule := NewSpikePair(20, 20)
	plus, _ := rule.Tables()
	prov := rule.Provenance()
	require.Len(t, prov, 2)
	assert.Equal(t, int(plus.Last()), prov[0].Value)
}

func TestRowHeaders(t *testing.T) {
	st := NewSTDP()
	assert.Equal(t, 6, st.RowHeaderSize())
	hdr := st.Timing.RowHeaders(3, 6)
	require.Len(t, hdr, 18)
	assert.Equal(t, uint16(fixed.STDPOne), binary.LittleEndian.Uint16(hdr))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(hdr[6:]))
}
