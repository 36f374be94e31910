// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"github.com/emer/spikemap/errs"
)

// DelayLimits describes how far spikes can be delayed: natively by the
// receiving core, plus by delay extension stages, each adding a block of ticks.
type DelayLimits struct {
	NativeTicks     int `desc:"delay ticks the receiving core supports directly"`
	ExtensionBlocks int `desc:"maximum number of delay extension stages"`
	TicksPerBlock   int `desc:"ticks added by each delay extension stage"`
}

func (dl *DelayLimits) Defaults() {
	dl.NativeTicks = 16
	dl.ExtensionBlocks = 8
	dl.TicksPerBlock = 16
}

// MaxTicks is the largest supported delay.
func (dl *DelayLimits) MaxTicks() int {
	return dl.NativeTicks + dl.ExtensionBlocks*dl.TicksPerBlock
}

// CheckMaxDelay fails if a delay of maxTicks cannot be represented.
func (dl *DelayLimits) CheckMaxDelay(maxTicks int) error {
	if maxTicks > dl.MaxTicks() {
		return errs.New(errs.Capacity, "the maximum delay %d ticks is not supported: limit is %d native + %d x %d extension", maxTicks, dl.NativeTicks, dl.ExtensionBlocks, dl.TicksPerBlock)
	}
	if maxTicks < 1 {
		return errs.New(errs.Invalid, "delay of %d ticks: must be at least 1", maxTicks)
	}
	return nil
}

// NStages returns how many delay stages, the native one included, are
// needed for delays up to maxTicks.
func (dl *DelayLimits) NStages(maxTicks int) int {
	if maxTicks <= dl.NativeTicks {
		return 1
	}
	return 1 + (maxTicks-dl.NativeTicks+dl.TicksPerBlock-1)/dl.TicksPerBlock
}

// Stage splits a delay into its stage and the residual native delay.
// Stage 0 is native; stage s > 0 passes through s extension blocks first.
func (dl *DelayLimits) Stage(ticks int) (stage, residual int) {
	if ticks <= dl.NativeTicks {
		return 0, ticks
	}
	over := ticks - dl.NativeTicks
	stage = (over + dl.TicksPerBlock - 1) / dl.TicksPerBlock
	return stage, ticks - stage*dl.TicksPerBlock
}
