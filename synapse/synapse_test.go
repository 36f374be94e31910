// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/spikemap/connect"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/fixed"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/plastic"
)

func allToAll(t *testing.T, weight, delayMs float64) *connect.IndexProb {
	ip, err := connect.NewIndexProb("1.0", true)
	require.NoError(t, err)
	ip.Weights = connect.Const(weight)
	ip.Delays = connect.Const(delayMs)
	return ip
}

func newTestManager(t *testing.T, pj *Projection) *Manager {
	mg := NewManager("b", 20, 2, 1024, 1000)
	require.NoError(t, mg.AddProjection(pj))
	require.NoError(t, mg.Connect(mapping.Edge{Projection: pj.Name, Pre: mapping.NewSlice(0, 9), Post: mapping.NewSlice(0, 19)}))
	return mg
}

// writeMatrix reserves exactly the sized region and writes it.
func writeMatrix(t *testing.T, mg *Manager, post mapping.Slice) []uint32 {
	sz := mg.SDRAMBytes(post)
	sp := image.NewSpec()
	require.NoError(t, sp.Reserve(image.SynapticMatrix, sz, "matrix"))
	require.NoError(t, sp.Focus(image.SynapticMatrix))
	require.NoError(t, mg.Write(sp, post))
	assert.Equal(t, sz, sp.Written(image.SynapticMatrix))
	im, err := sp.Finish()
	require.NoError(t, err)
	data := im.RegionData(image.SynapticMatrix)
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return words
}

func TestRingBufferShift(t *testing.T) {
	assert.Equal(t, uint32(0), RingBufferShift(0, 1024))
	assert.Equal(t, uint32(0), RingBufferShift(0.0005, 1024))
	assert.Equal(t, uint32(9), RingBufferShift(0.5, 1024))
	assert.Equal(t, uint32(10), RingBufferShift(1, 1024))
	assert.Equal(t, uint32(MaxShift), RingBufferShift(1e9, 1024))
	assert.Equal(t, 1024.0*64, WeightScale(1024, 9))
	assert.Equal(t, 1024.0*32768, WeightScale(1024, 0))
}

func TestSynapseWord(t *testing.T) {
	w := SynapseWord(32768, 16, 1, 255)
	wt, res, typ, idx := DecodeSynapseWord(w)
	assert.Equal(t, uint16(32768), wt)
	assert.Equal(t, 16, res)
	assert.Equal(t, uint8(1), typ)
	assert.Equal(t, 255, idx)
	assert.Equal(t, uint32(0xF<<12|1<<8|255), ControlWord(16, 1, 255))
}

func TestStaticMatrix(t *testing.T) {
	pj := &Projection{Name: "ab", Pre: "a", NPre: 10, Type: 0, Conn: allToAll(t, 0.5, 2)}
	mg := newTestManager(t, pj)
	post := mapping.NewSlice(0, 19)

	ly := mg.Layout(post)
	require.Len(t, ly.Blocks, 1)
	bl := ly.Blocks[0]
	assert.Equal(t, 20, bl.MaxRow)
	assert.Equal(t, 1, bl.NStages)
	assert.Equal(t, 21, bl.RowWords)
	assert.Equal(t, 4*3+4+4*(BlockHeaderWords+10*21), ly.Bytes())

	ws := writeMatrix(t, mg, post)
	assert.Equal(t, []uint32{2, 9, 0}, ws[:3])
	assert.Equal(t, uint32(1), ws[3])
	assert.Equal(t, []uint32{0, 10, 20, 1}, ws[4:8])
	rows := ws[8:]
	for r := 0; r < 10; r++ {
		row := rows[r*21 : (r+1)*21]
		require.Equal(t, uint32(20), row[0])
		for k := 0; k < 20; k++ {
			wt, res, typ, idx := DecodeSynapseWord(row[1+k])
			assert.Equal(t, uint16(32768), wt)
			assert.Equal(t, 2, res)
			assert.Equal(t, uint8(0), typ)
			assert.Equal(t, k, idx)
		}
	}
}

func TestDelayStages(t *testing.T) {
	pj := &Projection{Name: "ab", Pre: "a", NPre: 10, Type: 1, Conn: allToAll(t, 0.5, 20)}
	mg := newTestManager(t, pj)
	post := mapping.NewSlice(0, 19)
	ly := mg.Layout(post)
	require.Len(t, ly.Blocks, 1)
	assert.Equal(t, 2, ly.Blocks[0].NStages)

	ws := writeMatrix(t, mg, post)
	assert.Equal(t, []uint32{0, 10, 20, 2}, ws[4:8])
	rows := ws[8:]
	for r := 0; r < 10; r++ {
		assert.Equal(t, uint32(0), rows[r*21], "stage 0 row %d", r)
		st1 := rows[(10+r)*21 : (11+r)*21]
		require.Equal(t, uint32(20), st1[0])
		_, res, typ, _ := DecodeSynapseWord(st1[1])
		assert.Equal(t, 4, res)
		assert.Equal(t, uint8(1), typ)
	}
}

func TestPlasticMatrix(t *testing.T) {
	st := plastic.NewSTDP()
	pj := &Projection{Name: "ab", Pre: "a", NPre: 10, Type: 0, Conn: allToAll(t, 0.5, 1), STDP: st}
	mg := newTestManager(t, pj)
	post := mapping.NewSlice(0, 19)
	ly := mg.Layout(post)
	psz, err := st.ParamsSize()
	require.NoError(t, err)
	assert.Equal(t, psz, ly.Params)
	// multiplicative wmax 1 sets the shift
	assert.Equal(t, uint32(10), ly.Shifts[0])
	hw := headerWords(st)
	assert.Equal(t, 2, hw)
	assert.Equal(t, 1+hw+20, ly.Blocks[0].RowWords)

	ws := writeMatrix(t, mg, post)
	off := 3 + psz/4
	assert.Equal(t, uint32(1), ws[off])
	rows := ws[off+1+BlockHeaderWords:]
	rw := ly.Blocks[0].RowWords
	assert.Equal(t, uint32(fixed.STDPOne), rows[1]&0xFFFF)
	assert.Equal(t, uint32(0), rows[rw+1])
	for r := 0; r < 10; r++ {
		row := rows[r*rw : (r+1)*rw]
		require.Equal(t, uint32(20), row[0])
		w := row[1+hw+3]
		assert.Equal(t, uint32(512*32), w&0xFFFF)
		assert.Equal(t, ControlWord(1, 0, 3), w>>16)
	}
}

func TestConnections(t *testing.T) {
	pj := &Projection{Name: "ab", Pre: "a", NPre: 10, Type: 1, Conn: allToAll(t, 0.5, 3)}
	mg := newTestManager(t, pj)
	syns, err := mg.Connections("ab")
	require.NoError(t, err)
	assert.Len(t, syns, 10*20)
	for _, n := range syns.RowLengths(0, 10) {
		assert.Equal(t, 20, n)
	}

	dl, err := mg.ConnectionValues("ab", "Delay")
	require.NoError(t, err)
	require.Len(t, dl, 200)
	assert.Equal(t, 3.0, dl[0])
	wt, err := mg.ConnectionValues("ab", "Weight")
	require.NoError(t, err)
	assert.Equal(t, 32768.0, wt[0])

	_, err = mg.ConnectionValues("ab", "Nope")
	assert.True(t, errors.Is(err, errs.ErrLookup))
	_, err = mg.Connections("none")
	assert.True(t, errors.Is(err, errs.ErrLookup))
}

func TestWriteDeterministic(t *testing.T) {
	ip, err := connect.NewIndexProb("exp(-fabs(i - j) / 4.0)", true)
	require.NoError(t, err)
	ip.Weights = connect.Uniform(0.1, 0.5)
	ip.Delays = connect.Uniform(1, 30)
	pj := &Projection{Name: "ab", Pre: "a", NPre: 10, Conn: ip}
	mg := newTestManager(t, pj)
	post := mapping.NewSlice(0, 19)
	assert.Equal(t, writeMatrix(t, mg, post), writeMatrix(t, mg, post))
}

func TestWriteFailsBeforeWriting(t *testing.T) {
	pj := &Projection{Name: "ab", Pre: "a", NPre: 10, Conn: allToAll(t, 0.5, 1)}
	mg := newTestManager(t, pj)
	post := mapping.NewSlice(0, 19)
	sp := image.NewSpec()
	require.NoError(t, sp.Reserve(image.SynapticMatrix, mg.SDRAMBytes(post)-4, "matrix"))
	require.NoError(t, sp.Focus(image.SynapticMatrix))
	err := mg.Write(sp, post)
	assert.True(t, errors.Is(err, errs.ErrCapacity))
	assert.Equal(t, 0, sp.Written(image.SynapticMatrix))

	big := NewManager("c", 300, 1, 1, 1000)
	err = big.Write(sp, mapping.NewSlice(0, 299))
	assert.True(t, errors.Is(err, errs.ErrCapacity))
	assert.Equal(t, 0, sp.Written(image.SynapticMatrix))
}

func TestAddProjectionChecks(t *testing.T) {
	mg := NewManager("b", 20, 2, 1024, 1000)
	err := mg.AddProjection(&Projection{Name: "far", Pre: "a", NPre: 10, Conn: allToAll(t, 1, 200)})
	assert.True(t, errors.Is(err, errs.ErrCapacity))

	err = mg.AddProjection(&Projection{Name: "type", Pre: "a", NPre: 10, Type: 2, Conn: allToAll(t, 1, 1)})
	assert.True(t, errors.Is(err, errs.ErrInvalid))

	require.NoError(t, mg.AddProjection(&Projection{Name: "p1", Pre: "a", NPre: 10, Conn: allToAll(t, 1, 1), STDP: plastic.NewSTDP()}))
	err = mg.AddProjection(&Projection{Name: "p2", Pre: "a", NPre: 10, Conn: allToAll(t, 1, 1), STDP: plastic.NewSTDP()})
	assert.True(t, errors.Is(err, errs.ErrUnsupported))
	err = mg.AddProjection(&Projection{Name: "p1", Pre: "a", NPre: 10, Conn: allToAll(t, 1, 1)})
	assert.True(t, errors.Is(err, errs.ErrInvalid))

	fast := NewManager("b", 20, 2, 1024, 100)
	err = fast.AddProjection(&Projection{Name: "p", Pre: "a", NPre: 10, Conn: allToAll(t, 1, 1), STDP: plastic.NewSTDP()})
	assert.True(t, errors.Is(err, errs.ErrUnsupported))

	err = mg.Connect(mapping.Edge{Projection: "none", Pre: mapping.NewSlice(0, 9), Post: mapping.NewSlice(0, 9)})
	assert.True(t, errors.Is(err, errs.ErrLookup))
	err = mg.Connect(mapping.Edge{Projection: "p1", Pre: mapping.NewSlice(0, 10), Post: mapping.NewSlice(0, 9)})
	assert.True(t, errors.Is(err, errs.ErrInvalid))
	assert.Equal(t, []string{"p1"}, mg.ProjectionNames())
}
