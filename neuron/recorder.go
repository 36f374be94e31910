// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"sort"

	"github.com/goki/ki/ints"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/state"
)

// Stream is one recorded output of a population: spikes, or one state variable.
type Stream struct {
	Spikes bool
	Var    StateVar

	// Rate is the sampling interval in ticks, 0 when not recording.
	Rate int

	// Atoms are the recorded atom indexes in ascending order, nil for all atoms.
	Atoms []int
}

// Name returns "spikes" or the state variable name.
func (st *Stream) Name() string {
	if st.Spikes {
		return "spikes"
	}
	return st.Var.SnakeName()
}

// Recording returns true if the stream is enabled.
func (st *Stream) Recording() bool {
	return st.Rate > 0
}

// NRecording returns the number of recorded atoms of sl.
func (st *Stream) NRecording(sl mapping.Slice) int {
	if !st.Recording() {
		return 0
	}
	if st.Atoms == nil {
		return sl.NAtoms()
	}
	lo := sort.SearchInts(st.Atoms, sl.Lo)
	hi := sort.SearchInts(st.Atoms, sl.Hi+1)
	return hi - lo
}

// Recorder holds the recording selection of a population.  Stream 0 is
// spikes, followed by the model recordables in order.
type Recorder struct {
	N       int
	Streams []*Stream
	dirty   *state.DirtyState
}

// NewRecorder returns a recorder with every stream disabled.
func NewRecorder(n int, vars []StateVar, dirty *state.DirtyState) *Recorder {
	rc := &Recorder{N: n, dirty: dirty}
	rc.Streams = append(rc.Streams, &Stream{Spikes: true})
	for _, v := range vars {
		rc.Streams = append(rc.Streams, &Stream{Var: v})
	}
	return rc
}

// NStreams returns the number of streams including spikes.
func (rc *Recorder) NStreams() int {
	return len(rc.Streams)
}

// StreamByName returns the stream called name, "spikes" or a state variable name.
func (rc *Recorder) StreamByName(name string) (*Stream, error) {
	if name == "spikes" {
		return rc.Streams[0], nil
	}
	v, err := StateVarByName(name)
	if err != nil {
		return nil, err
	}
	for _, st := range rc.Streams[1:] {
		if st.Var == v {
			return st, nil
		}
	}
	return nil, errs.New(errs.Lookup, "variable %v is not recordable", name)
}

// SetRecording enables or disables a stream by name with the given sampling
// rate and atom selection (nil for all).  Recording changes region sizes, so
// it marks a structural change.
func (rc *Recorder) SetRecording(name string, on bool, rate int, atoms []int) error {
	st, err := rc.StreamByName(name)
	if err != nil {
		return err
	}
	if !on {
		st.Rate = 0
		st.Atoms = nil
		rc.dirty.MarkStructural()
		return nil
	}
	if rate < 1 {
		return errs.New(errs.Invalid, "sampling rate %d for %s", rate, name)
	}
	var sel []int
	if atoms != nil {
		sel = append([]int(nil), atoms...)
		sort.Ints(sel)
		for i, a := range sel {
			if a < 0 || a >= rc.N || (i > 0 && sel[i-1] == a) {
				return errs.New(errs.Invalid, "recording selection for %s: bad atom %d", name, a)
			}
		}
	}
	st.Rate = rate
	st.Atoms = sel
	rc.dirty.MarkStructural()
	return nil
}

// NEnabled returns how many streams are recording.
func (rc *Recorder) NEnabled() int {
	n := 0
	for _, st := range rc.Streams {
		if st.Recording() {
			n++
		}
	}
	return n
}

// CPUCycles is the per-tick recording cost for n atoms.
func (rc *Recorder) CPUCycles(n int) int {
	return n * 8 * rc.NEnabled()
}

// DTCMBytes is the local buffer space of the enabled streams.
func (rc *Recorder) DTCMBytes(sl mapping.Slice) int {
	sz := 0
	for _, st := range rc.Streams {
		if !st.Recording() {
			continue
		}
		sz += 8 + rc.recordBytes(st, sl)
	}
	return sz
}

func (rc *Recorder) recordBytes(st *Stream, sl mapping.Slice) int {
	nr := st.NRecording(sl)
	if st.Spikes {
		return ints.MaxInt(1, (nr+31)/32) * 4
	}
	return nr * 4
}

// GlobalBytes is the size of the recorder globals written at the start of the
// neuron parameter data: per stream a rate, a count and a uint16 index per atom.
func (rc *Recorder) GlobalBytes(sl mapping.Slice) int {
	return len(rc.Streams) * streamHeaderBytes(sl.NAtoms())
}

func streamHeaderBytes(n int) int {
	return 8 + ((n+1)/2)*4
}

// Data returns the recorder globals for sl.  Each atom gets its slot among the
// recorded atoms of sl, or the recorded count when it is not recorded.
func (rc *Recorder) Data(sl mapping.Slice) []uint32 {
	n := sl.NAtoms()
	words := make([]uint32, 0, rc.GlobalBytes(sl)/4)
	for _, st := range rc.Streams {
		nr := st.NRecording(sl)
		words = append(words, uint32(st.Rate), uint32(nr))
		idx := make([]uint16, (n+1)/2*2)
		slot := 0
		for i := 0; i < n; i++ {
			if st.Recording() && rc.records(st, sl.Lo+i) {
				idx[i] = uint16(slot)
				slot++
			} else {
				idx[i] = uint16(nr)
			}
		}
		for i := 0; i < len(idx); i += 2 {
			words = append(words, uint32(idx[i])|uint32(idx[i+1])<<16)
		}
	}
	return words
}

func (rc *Recorder) records(st *Stream, atom int) bool {
	if st.Atoms == nil {
		return true
	}
	i := sort.SearchInts(st.Atoms, atom)
	return i < len(st.Atoms) && st.Atoms[i] == atom
}

// BufferedPerTick is the SDRAM written per sampled tick by stream si for sl:
// a timestamp plus a spike bitfield or one word per recorded atom.
func (rc *Recorder) BufferedPerTick(si int, sl mapping.Slice) int {
	st := rc.Streams[si]
	if !st.Recording() {
		return 0
	}
	return 4 + rc.recordBytes(st, sl)
}

// Buffered is the SDRAM stream si needs to hold a run of ticks.
func (rc *Recorder) Buffered(si int, sl mapping.Slice, ticks int) int {
	st := rc.Streams[si]
	if !st.Recording() {
		return 0
	}
	samples := (ticks + st.Rate - 1) / st.Rate
	return rc.BufferedPerTick(si, sl) * samples
}
