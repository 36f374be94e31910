// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/fixed"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/state"
)

func TestNames(t *testing.T) {
	for p := Param(0); p < ParamN; p++ {
		got, err := ParamByName(p.SnakeName())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	p, err := ParamByName("e_rev_E")
	require.NoError(t, err)
	assert.Equal(t, ERevE, p)
	assert.Equal(t, "tau_m", TauM.SnakeName())

	v, err := StateVarByName("v_init")
	require.NoError(t, err)
	assert.Equal(t, V, v)
	v, err = StateVarByName("isyn_exc")
	require.NoError(t, err)
	assert.Equal(t, IsynExc, v)

	_, err = ParamByName("tau_q")
	assert.True(t, errors.Is(err, errs.ErrLookup))
	_, err = StateVarByName("u")
	assert.True(t, errors.Is(err, errs.ErrLookup))
}

func TestSettersMarkValue(t *testing.T) {
	pop := NewPopulation("exc", 10, NewLIFCond())
	pop.Dirty.Clear(state.Rebuild)
	assert.Equal(t, state.NoAction, pop.Dirty.Action())

	require.NoError(t, pop.SetParamByName("tau_m", 10))
	assert.Equal(t, state.PatchValues, pop.Dirty.Action())
	assert.Equal(t, 10.0, pop.Param(TauM, 9))

	pop.Dirty.Clear(state.PatchValues)
	err := pop.SetParamByName("nope", 1)
	assert.True(t, errors.Is(err, errs.ErrLookup))
	assert.Equal(t, state.NoAction, pop.Dirty.Action(), "failed lookup must not mark")

	require.NoError(t, pop.InitializeByName("v_init", -60))
	assert.Equal(t, -60.0, pop.State(V, 3))
	assert.Error(t, pop.SetParamAt(VThresh, 10, 0))
}

func TestRecorderSizes(t *testing.T) {
	pop := NewPopulation("exc", 100, NewLIFCond())
	rc := pop.Rec
	sl := mapping.NewSlice(0, 49)
	assert.Equal(t, 4, rc.NStreams())
	assert.Equal(t, 0, rc.CPUCycles(50))
	assert.Equal(t, 4*(8+25*4), rc.GlobalBytes(sl))

	pop.Dirty.Clear(state.Rebuild)
	require.NoError(t, rc.SetRecording("spikes", true, 1, nil))
	assert.Equal(t, state.Rebuild, pop.Dirty.Action())
	require.NoError(t, rc.SetRecording("v", true, 2, []int{48, 3, 70}))
	assert.Equal(t, 2, rc.Streams[1].NRecording(sl))
	assert.Equal(t, 1, rc.Streams[1].NRecording(mapping.NewSlice(50, 99)))

	assert.Equal(t, 4+2*4, rc.BufferedPerTick(0, sl))
	assert.Equal(t, 4+2*4, rc.BufferedPerTick(1, sl))
	assert.Equal(t, 12*5, rc.Buffered(1, sl, 10))
	assert.Equal(t, 0, rc.Buffered(2, sl, 10))

	_, err := rc.StreamByName("count_refrac")
	assert.True(t, errors.Is(err, errs.ErrLookup))
	assert.Error(t, rc.SetRecording("v", true, 1, []int{3, 3}))
}

func TestRecorderData(t *testing.T) {
	pop := NewPopulation("exc", 5, NewLIFCond())
	require.NoError(t, pop.Rec.SetRecording("isyn_inh", true, 4, []int{1, 3}))
	sl := mapping.NewSlice(0, 4)
	words := pop.Rec.Data(sl)
	assert.Len(t, words, pop.Rec.GlobalBytes(sl)/4)
	// stream 3 is isyn_inh: rate, count, then indexes 2,0 | 2,1 | 2,pad
	st := words[3*5:]
	assert.Equal(t, uint32(4), st[0])
	assert.Equal(t, uint32(2), st[1])
	assert.Equal(t, uint32(2)|uint32(0)<<16, st[2])
	assert.Equal(t, uint32(2)|uint32(1)<<16, st[3])
	assert.Equal(t, uint32(2), st[4])
}

func TestLIFRoundTrip(t *testing.T) {
	lif := NewLIFCond()
	pop := NewPopulation("exc", 20, lif)
	for i := 0; i < 20; i++ {
		require.NoError(t, pop.InitializeAt(V, i, -65+float64(i)*0.5))
		require.NoError(t, pop.InitializeAt(CountRefrac, i, float64(i%3)))
		require.NoError(t, pop.InitializeAt(IsynExc, i, float64(i)*0.125))
	}
	sl := mapping.NewSlice(10, 19)
	words := lif.Data(pop, sl, 1000)
	assert.Len(t, words, lif.SDRAMBytes(10)/4)

	other := NewPopulation("copy", 20, lif)
	require.NoError(t, lif.ReadData(other, sl, words))
	for i := sl.Lo; i <= sl.Hi; i++ {
		for v := StateVar(0); v < StateVarN; v++ {
			assert.Equal(t, pop.State(v, i), other.State(v, i), "%v atom %d", v, i)
		}
	}
	assert.Equal(t, -65.0, other.State(V, 0), "atoms outside the slice untouched")

	// T_refract is ceil(tau_refrac / dt) in ticks
	nw := words[lifGlobalWords:]
	assert.Equal(t, uint32(1), nw[7])
	assert.Equal(t, uint32(fixed.S1615(1)), words[0])

	assert.Error(t, lif.ReadData(other, sl, words[:5]))
}
