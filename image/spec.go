// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"encoding/binary"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/log"
)

var logger = log.NewModuleLogger("image")

// Spec builds one core image through a sequential write cursor.  All regions
// are reserved first, in canonical order; then writes append to the focused
// region.  There is no seek.  A write that would pass the end of the region
// fails and writes nothing.  Nothing is visible outside the Spec until Finish.
type Spec struct {
	regions [RegionIDN]*Region
	last    RegionID
	focus   *Region
	writing bool
}

// NewSpec returns an empty spec.
func NewSpec() *Spec {
	return &Spec{last: -1}
}

// Reserve declares region id with the given size in bytes, rounded up to a
// whole word.  Regions must be reserved in increasing id order and before
// the first write.
func (sp *Spec) Reserve(id RegionID, size int, label string) error {
	switch {
	case id < 0 || id >= RegionIDN:
		return errs.New(errs.Invalid, "reserve: region %d not valid", id)
	case sp.writing:
		return errs.New(errs.Invalid, "reserve %v: writes have started", id)
	case id <= sp.last:
		return errs.New(errs.Invalid, "reserve %v: out of order after %v", id, sp.last)
	case size < 0:
		return errs.New(errs.Invalid, "reserve %v: negative size %d", id, size)
	}
	sz := AlignWord(size)
	sp.regions[id] = &Region{ID: id, Label: label, Size: sz, data: make([]byte, 0, sz)}
	sp.last = id
	return nil
}

// Reserved returns the region if it has been reserved.
func (sp *Spec) Reserved(id RegionID) (*Region, bool) {
	if id < 0 || id >= RegionIDN || sp.regions[id] == nil {
		return nil, false
	}
	return sp.regions[id], true
}

// Focus selects the region that subsequent writes append to.
func (sp *Spec) Focus(id RegionID) error {
	rg, ok := sp.Reserved(id)
	if !ok {
		return errs.New(errs.Invalid, "focus: region %v not reserved", id)
	}
	sp.focus = rg
	sp.writing = true
	return nil
}

// Cursor returns the focused region and the number of bytes written to it.
func (sp *Spec) Cursor() (RegionID, int) {
	if sp.focus == nil {
		return RegionIDN, 0
	}
	return sp.focus.ID, len(sp.focus.data)
}

// Written returns the bytes written to region id so far.
func (sp *Spec) Written(id RegionID) int {
	rg, ok := sp.Reserved(id)
	if !ok {
		return 0
	}
	return len(rg.data)
}

// Remaining returns the unwritten bytes of the focused region.
func (sp *Spec) Remaining() int {
	if sp.focus == nil {
		return 0
	}
	return sp.focus.Size - len(sp.focus.data)
}

func (sp *Spec) room(n int) error {
	if sp.focus == nil {
		return errs.New(errs.Invalid, "write with no region in focus")
	}
	if len(sp.focus.data)+n > sp.focus.Size {
		return errs.New(errs.Capacity, "region %v: writing %d bytes at %d overflows size %d", sp.focus.ID, n, len(sp.focus.data), sp.focus.Size)
	}
	return nil
}

// WriteUint32 appends one little-endian word.
func (sp *Spec) WriteUint32(v uint32) error {
	if err := sp.room(4); err != nil {
		return err
	}
	sp.focus.data = binary.LittleEndian.AppendUint32(sp.focus.data, v)
	return nil
}

// WriteInt32 appends one signed word.
func (sp *Spec) WriteInt32(v int32) error {
	return sp.WriteUint32(uint32(v))
}

// WriteUint16 appends one half-word.
func (sp *Spec) WriteUint16(v uint16) error {
	if err := sp.room(2); err != nil {
		return err
	}
	sp.focus.data = binary.LittleEndian.AppendUint16(sp.focus.data, v)
	return nil
}

// WriteWords appends words as a single write: all or nothing.
func (sp *Spec) WriteWords(ws []uint32) error {
	if err := sp.room(4 * len(ws)); err != nil {
		return err
	}
	for _, w := range ws {
		sp.focus.data = binary.LittleEndian.AppendUint32(sp.focus.data, w)
	}
	return nil
}

// WriteInt16s appends half-words as a single write: all or nothing.
func (sp *Spec) WriteInt16s(hs []int16) error {
	if err := sp.room(2 * len(hs)); err != nil {
		return err
	}
	for _, h := range hs {
		sp.focus.data = binary.LittleEndian.AppendUint16(sp.focus.data, uint16(h))
	}
	return nil
}

// WriteBytes appends raw bytes as a single write.
func (sp *Spec) WriteBytes(b []byte) error {
	if err := sp.room(len(b)); err != nil {
		return err
	}
	sp.focus.data = append(sp.focus.data, b...)
	return nil
}

// Finish lays the reserved regions out after the image header and returns
// the image.  Unwritten region tails are zero.
func (sp *Spec) Finish() (*Image, error) {
	if sp.last < 0 {
		return nil, errs.New(errs.Invalid, "finish: no regions reserved")
	}
	im := newImage()
	off := HeaderBytes
	for id := RegionID(0); id < RegionIDN; id++ {
		rg := sp.regions[id]
		if rg == nil {
			continue
		}
		data := make([]byte, rg.Size)
		copy(data, rg.data)
		im.Regions = append(im.Regions, &Region{ID: id, Label: rg.Label, Offset: off, Size: rg.Size, data: data})
		off += rg.Size
	}
	im.Size = off
	logger.Debugf("finished image %v: %d regions, %d bytes", im.ID, len(im.Regions), im.Size)
	return im, nil
}
