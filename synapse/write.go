// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"encoding/binary"

	"github.com/emer/spikemap/connect"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
)

// SynapseWord packs a static synapse: weight in the high half-word, then
// the residual delay minus one in 4 bits, the type in 4 bits and the post
// index in 8 bits.
func SynapseWord(weight uint16, residual int, typ uint8, index int) uint32 {
	return uint32(weight)<<16 | ControlWord(residual, typ, index)
}

// ControlWord is the low half of SynapseWord, used alone by plastic rows.
func ControlWord(residual int, typ uint8, index int) uint32 {
	return uint32(residual-1)&0xF<<12 | uint32(typ)&0xF<<8 | uint32(index)&0xFF
}

// DecodeSynapseWord is the inverse of SynapseWord.
func DecodeSynapseWord(w uint32) (weight uint16, residual int, typ uint8, index int) {
	return uint16(w >> 16), int(w>>12&0xF) + 1, uint8(w >> 8 & 0xF), int(w & 0xFF)
}

// Generate draws the synapses of every block of ly, in block order.
// It fails on the first block that overflows its bound.
func (mg *Manager) Generate(ly *Layout) ([]connect.Synapses, error) {
	out := make([]connect.Synapses, len(ly.Blocks))
	for i := range ly.Blocks {
		bl := &ly.Blocks[i]
		e := bl.Edge
		g := connect.Gen{SynType: bl.Proj.Type, WeightScale: ly.Scales[bl.Proj.Type], TickMs: mg.TickMs()}
		syns, err := bl.Proj.Conn.Generate(bl.Proj.Pair(), e.Pre, e.Post, g, bl.Proj.Conn.SliceRand(e.Pre, e.Post))
		if err != nil {
			return nil, err
		}
		out[i] = syns
	}
	return out, nil
}

// Rows encodes the synapses of a block into its fixed-size rows, stage
// major: all rows of stage 0, then all rows of stage 1, and so on.
func (mg *Manager) Rows(ly *Layout, bl *Block, syns connect.Synapses) ([]uint32, error) {
	nr := bl.NRows()
	words := make([]uint32, bl.NStages*nr*bl.RowWords)
	hw := 0
	if bl.Proj.Plastic() {
		hw = headerWords(bl.Proj.STDP)
		hdr := bl.Proj.STDP.Timing.RowHeaders(bl.NStages*nr, hw*4)
		for r := 0; r < bl.NStages*nr; r++ {
			base := r * bl.RowWords
			for k := 0; k < hw; k++ {
				words[base+1+k] = binary.LittleEndian.Uint32(hdr[(r*hw+k)*4:])
			}
		}
	}
	for _, sy := range syns {
		stage, res := mg.Delays.Stage(int(sy.Delay))
		if stage >= bl.NStages {
			return nil, errs.New(errs.Capacity, "%s: synapse %d->%d delay %d ticks beyond %d stages", bl.Proj.Name, sy.Source, sy.Target, sy.Delay, bl.NStages)
		}
		base := (stage*nr + int(sy.Source) - bl.Edge.Pre.Lo) * bl.RowWords
		n := int(words[base])
		if n >= bl.MaxRow {
			return nil, errs.New(errs.Capacity, "%s: row of pre atom %d stage %d exceeds %d synapses", bl.Proj.Name, sy.Source, stage, bl.MaxRow)
		}
		idx := int(sy.Target) - ly.Post.Lo
		var w uint32
		if bl.Proj.Plastic() {
			w = uint32(sy.Weight) | ControlWord(res, sy.Type, idx)<<16
		} else {
			w = SynapseWord(sy.Weight, res, sy.Type, idx)
		}
		words[base+1+hw+n] = w
		words[base] = uint32(n + 1)
	}
	return words, nil
}

// Write emits the matrix region of post into spec, which must be focused
// on it.  All synapses are generated and encoded, and the remaining room
// checked, before the first write.
func (mg *Manager) Write(spec *image.Spec, post mapping.Slice) error {
	if post.NAtoms() > MaxPostAtoms {
		return errs.New(errs.Capacity, "%s: slice %v has more than %d atoms", mg.Post, post, MaxPostAtoms)
	}
	ly := mg.Layout(post)
	all, err := mg.Generate(ly)
	if err != nil {
		return err
	}
	rows := make([][]uint32, len(ly.Blocks))
	for i := range ly.Blocks {
		if rows[i], err = mg.Rows(ly, &ly.Blocks[i], all[i]); err != nil {
			return err
		}
	}
	if ly.STDP != nil {
		if err := ly.STDP.Timing.CheckTick(mg.TickMicros); err != nil {
			return err
		}
	}
	if rem, sz := spec.Remaining(), ly.Bytes(); rem < sz {
		return errs.New(errs.Capacity, "%s: synaptic matrix of %v needs %d bytes, %d remain", mg.Post, post, sz, rem)
	}

	hdr := make([]uint32, 0, 1+len(ly.Shifts))
	hdr = append(hdr, uint32(len(ly.Shifts)))
	hdr = append(hdr, ly.Shifts...)
	if err := spec.WriteWords(hdr); err != nil {
		return err
	}
	if ly.STDP != nil {
		if err := ly.STDP.Write(spec, mg.TickMicros, ly.Scales[mg.plasticType(ly)]); err != nil {
			return err
		}
	}
	if err := spec.WriteUint32(uint32(len(ly.Blocks))); err != nil {
		return err
	}
	for i := range ly.Blocks {
		bl := &ly.Blocks[i]
		bh := []uint32{uint32(bl.Edge.Pre.Lo), uint32(bl.NRows()), uint32(bl.MaxRow), uint32(bl.NStages)}
		if err := spec.WriteWords(bh); err != nil {
			return err
		}
		if err := spec.WriteWords(rows[i]); err != nil {
			return err
		}
	}
	nsyn, fill := 0, 0
	for i, s := range all {
		nsyn += len(s)
		bl := &ly.Blocks[i]
		for _, n := range s.RowLengths(bl.Edge.Pre.Lo, bl.NRows()) {
			if n > fill {
				fill = n
			}
		}
	}
	logger.Debugf("%s %v: %d blocks, %d synapses, longest row %d, %d bytes", mg.Post, post, len(ly.Blocks), nsyn, fill, ly.Bytes())
	return nil
}

// Connections regenerates the synapses of the named projection over all of
// its edges, in the order the edges were added.  Generation is deterministic,
// so these are the synapses the images hold.
func (mg *Manager) Connections(proj string) (connect.Synapses, error) {
	if _, err := mg.Projection(proj); err != nil {
		return nil, err
	}
	mg.mu.RLock()
	var posts []mapping.Slice
	seen := make(map[mapping.Slice]bool)
	for _, e := range mg.edges {
		if e.Projection == proj && !seen[e.Post] {
			seen[e.Post] = true
			posts = append(posts, e.Post)
		}
	}
	mg.mu.RUnlock()
	var out connect.Synapses
	for _, post := range posts {
		ly := mg.Layout(post)
		all, err := mg.Generate(ly)
		if err != nil {
			return nil, err
		}
		for i := range ly.Blocks {
			if ly.Blocks[i].Proj.Name == proj {
				out = append(out, all[i]...)
			}
		}
	}
	return out, nil
}

// ConnectionValues returns the named variable, e.g. "Weight" or "Delay", of
// every synapse of the named projection.  Weights are in fixed point.
func (mg *Manager) ConnectionValues(proj, varNm string) ([]float64, error) {
	if _, err := connect.SynapseVarByName(varNm); err != nil {
		return nil, err
	}
	syns, err := mg.Connections(proj)
	if err != nil {
		return nil, err
	}
	return syns.Values(varNm)
}

// plasticType is the synapse type of the first plastic projection, whose
// weight scale the weight dependence is written with.
func (mg *Manager) plasticType(ly *Layout) uint8 {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	for _, nm := range mg.names {
		if pj := mg.projs[nm]; pj.STDP == ly.STDP {
			return pj.Type
		}
	}
	return 0
}
