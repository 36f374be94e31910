// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package image lays out the regions of a core memory image and writes them
// into one buffer behind a header of region offsets.
package image

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/google/uuid"

	"github.com/emer/spikemap/errs"
)

const (
	// Magic starts every image header.
	Magic = 0xAD130AD6

	// Version of the image header layout.
	Version = 0x00010000

	// HeaderBytes is the image header: magic, version, region count and one
	// offset word per region id (0 when the region is absent).
	HeaderBytes = 4 * (3 + int(RegionIDN))
)

// Image is a finished, immutable core image.  Patch returns a new Image
// rather than modifying the receiver, so a previously committed image stays
// valid if a later step fails.
type Image struct {
	// ID is unique per built or patched image.
	ID      uuid.UUID
	Regions []*Region
	Size    int
}

func newImage() *Image {
	return &Image{ID: uuid.New()}
}

// Region returns the region with the given id.
func (im *Image) Region(id RegionID) (*Region, bool) {
	for _, rg := range im.Regions {
		if rg.ID == id {
			return rg, true
		}
	}
	return nil, false
}

// RegionData returns a copy of the bytes of region id, nil if absent.
func (im *Image) RegionData(id RegionID) []byte {
	rg, ok := im.Region(id)
	if !ok {
		return nil
	}
	return append([]byte(nil), rg.data...)
}

// Header returns the encoded image header.
func (im *Image) Header() []byte {
	b := make([]byte, 0, HeaderBytes)
	b = binary.LittleEndian.AppendUint32(b, Magic)
	b = binary.LittleEndian.AppendUint32(b, Version)
	b = binary.LittleEndian.AppendUint32(b, uint32(RegionIDN))
	var offs [RegionIDN]uint32
	for _, rg := range im.Regions {
		offs[rg.ID] = uint32(rg.Offset)
	}
	for _, o := range offs {
		b = binary.LittleEndian.AppendUint32(b, o)
	}
	return b
}

// Bytes returns the header followed by every region in canonical order.
func (im *Image) Bytes() []byte {
	b := make([]byte, 0, im.Size)
	b = append(b, im.Header()...)
	for _, rg := range im.Regions {
		b = append(b, rg.data...)
	}
	return b
}

// Patch returns a copy of the image with region id replaced by data.  The
// new data must exactly fill the region, so no offset moves.
func (im *Image) Patch(id RegionID, data []byte) (*Image, error) {
	rg, ok := im.Region(id)
	if !ok {
		return nil, errs.New(errs.Invalid, "patch: region %v not in image", id)
	}
	if len(data) != rg.Size {
		return nil, errs.New(errs.Capacity, "patch: region %v is %d bytes, got %d", id, rg.Size, len(data))
	}
	ni := newImage()
	ni.Size = im.Size
	for _, r := range im.Regions {
		nr := *r
		if r.ID == id {
			nr.data = append([]byte(nil), data...)
		}
		ni.Regions = append(ni.Regions, &nr)
	}
	return ni, nil
}

// Report returns a human readable table of region sizes.
func (im *Image) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Image %v: %v\n", im.ID, (datasize.ByteSize)(im.Size).HumanReadable())
	for _, rg := range im.Regions {
		fmt.Fprintf(&b, "%16s:\t Offset: %6d\t Size: %v\n", rg.ID, rg.Offset, (datasize.ByteSize)(rg.Size).HumanReadable())
	}
	return b.String()
}

// Table is a decoded image header: the byte offset of each region id, 0 if absent.
type Table [RegionIDN]uint32

// ParseHeader decodes an image header as written by Header.
func ParseHeader(b []byte) (Table, error) {
	var tb Table
	if len(b) < HeaderBytes {
		return tb, errs.New(errs.Invalid, "image header: %d bytes, need %d", len(b), HeaderBytes)
	}
	if m := binary.LittleEndian.Uint32(b); m != Magic {
		return tb, errs.New(errs.Invalid, "image header: bad magic %#x", m)
	}
	if n := binary.LittleEndian.Uint32(b[8:]); n != uint32(RegionIDN) {
		return tb, errs.New(errs.Invalid, "image header: %d regions, expected %d", n, RegionIDN)
	}
	for i := range tb {
		tb[i] = binary.LittleEndian.Uint32(b[12+4*i:])
	}
	return tb, nil
}
