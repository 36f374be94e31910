// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/spikemap/errs"
)

func TestChunkPartitions(t *testing.T) {
	for _, n := range []int{1, 7, 100, 255, 256, 257, 1000} {
		for _, max := range []int{1, 3, 50, 256} {
			sl := Chunk(n, max)
			require.NoError(t, ValidatePartition(n, sl), "n=%d max=%d", n, max)
			tot := 0
			for _, s := range sl {
				assert.LessOrEqual(t, s.NAtoms(), max)
				tot += s.NAtoms()
			}
			assert.Equal(t, n, tot)
		}
	}
	sl := Chunk(100, 50)
	assert.Equal(t, []Slice{{0, 49}, {50, 99}}, sl)
}

func TestValidatePartitionErrors(t *testing.T) {
	cases := map[string][]Slice{
		"gap":      {{0, 9}, {11, 19}},
		"overlap":  {{0, 10}, {10, 19}},
		"short":    {{0, 9}, {10, 18}},
		"long":     {{0, 9}, {10, 20}},
		"empty":    {{0, 9}, {10, 9}, {10, 19}},
		"no start": {{1, 19}},
	}
	for nm, sl := range cases {
		err := ValidatePartition(20, sl)
		require.Error(t, err, nm)
		assert.True(t, errors.Is(err, errs.ErrInvalid), nm)
	}
	// order does not matter
	assert.NoError(t, ValidatePartition(20, []Slice{{10, 19}, {0, 9}}))
}

func TestAllocatorConcurrent(t *testing.T) {
	al := &Allocator{}
	var wg sync.WaitGroup
	seen := make([]int, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seen[i] = al.Next()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, al.Count())
	got := map[int]bool{}
	for _, id := range seen {
		got[id] = true
	}
	assert.Len(t, got, 100)
}

func TestEdgeList(t *testing.T) {
	el := EdgeList{
		{Projection: "a", Pre: Slice{0, 9}, Post: Slice{0, 9}, Key: KeyOf(0x100)},
		{Projection: "a", Pre: Slice{10, 19}, Post: Slice{0, 9}, Key: NoKey},
		{Projection: "a", Pre: Slice{0, 9}, Post: Slice{10, 19}},
	}
	in := el.IncomingEdges(Slice{0, 9})
	assert.Len(t, in, 2)
	assert.True(t, in[0].Key.Valid)
	assert.False(t, in[1].Key.Valid)
}
