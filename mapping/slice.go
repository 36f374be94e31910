// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mapping defines what the planning pipeline consumes from the
// partitioner, router and transport: atom slices, core placements,
// routing keys, incoming edges and memory reads.
package mapping

import (
	"fmt"
	"sort"

	"github.com/emer/spikemap/errs"
)

// Slice is an inclusive atom range [Lo, Hi] assigned to one core.
type Slice struct {
	Lo int
	Hi int
}

// NewSlice returns the slice [lo, hi].
func NewSlice(lo, hi int) Slice {
	return Slice{Lo: lo, Hi: hi}
}

// NAtoms returns the number of atoms in the slice.
func (s Slice) NAtoms() int {
	return s.Hi - s.Lo + 1
}

// Contains returns true if atom is inside the slice.
func (s Slice) Contains(atom int) bool {
	return atom >= s.Lo && atom <= s.Hi
}

func (s Slice) String() string {
	return fmt.Sprintf("[%d:%d]", s.Lo, s.Hi)
}

// ValidatePartition checks that slices cover [0, n) exactly, with no gaps or
// overlaps, when ordered by Lo.  The argument is not modified.
func ValidatePartition(n int, slices []Slice) error {
	if n <= 0 {
		return errs.New(errs.Invalid, "partition of %d atoms", n)
	}
	ord := make([]Slice, len(slices))
	copy(ord, slices)
	sort.Slice(ord, func(i, j int) bool { return ord[i].Lo < ord[j].Lo })
	next := 0
	for _, s := range ord {
		if s.Hi < s.Lo {
			return errs.New(errs.Invalid, "slice %v is empty", s)
		}
		switch {
		case s.Lo > next:
			return errs.New(errs.Invalid, "gap before slice %v: atoms %d..%d unassigned", s, next, s.Lo-1)
		case s.Lo < next:
			return errs.New(errs.Invalid, "slice %v overlaps previous slice ending at %d", s, next-1)
		}
		next = s.Hi + 1
	}
	if next != n {
		return errs.New(errs.Invalid, "slices cover %d of %d atoms", next, n)
	}
	return nil
}

// Chunk splits n atoms into ordered slices of at most max atoms.
// It is the trivial partitioner used by tests and the example tool.
func Chunk(n, max int) []Slice {
	if n <= 0 || max <= 0 {
		return nil
	}
	sl := make([]Slice, 0, (n+max-1)/max)
	for lo := 0; lo < n; lo += max {
		hi := lo + max - 1
		if hi >= n {
			hi = n - 1
		}
		sl = append(sl, Slice{Lo: lo, Hi: hi})
	}
	return sl
}
