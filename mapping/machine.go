// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping

import (
	"context"
	"fmt"
	"sync/atomic"
)

// CoreCoord identifies a core by chip x, y and processor p.
type CoreCoord struct {
	X, Y, P int
}

func (c CoreCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.P)
}

// Placement is where a slice lives: its core and the base address its image is loaded at.
type Placement struct {
	Core        CoreCoord
	BaseAddress uint32
}

// RoutingKey is an optional outgoing key.  Valid is false when the vertex sends nothing.
type RoutingKey struct {
	Key   uint32
	Valid bool
}

// KeyOf returns a valid routing key.
func KeyOf(key uint32) RoutingKey {
	return RoutingKey{Key: key, Valid: true}
}

// NoKey is the absent routing key.
var NoKey = RoutingKey{}

// Transport reads device memory.  Errors are returned to callers unchanged.
type Transport interface {
	ReadMemory(ctx context.Context, core CoreCoord, address uint32, length int) ([]byte, error)
}

// Allocator hands out process-wide core ids.  It is owned by the caller and
// shared by all builders of one compilation; Next is safe for concurrent use.
type Allocator struct {
	next int64
}

// Next returns the next id, starting at 1.
func (a *Allocator) Next() int {
	return int(atomic.AddInt64(&a.next, 1))
}

// Count returns how many ids have been issued.
func (a *Allocator) Count() int {
	return int(atomic.LoadInt64(&a.next))
}
