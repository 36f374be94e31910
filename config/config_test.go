// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/spikemap/errs"
)

func TestDefaultValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 1.0, c.Simulation.TickMillis())
}

func TestReadOverrides(t *testing.T) {
	src := `
simulation:
  tick_us: 100
  time_scale_factor: 10
buffers:
  use_auto_pause_and_resume: false
reports:
  n_profile_samples: 64
`
	c, err := Read(strings.NewReader(src), "yaml")
	require.NoError(t, err)
	assert.Equal(t, uint32(100), c.Simulation.TickMicros)
	assert.Equal(t, uint32(10), c.Simulation.TimeScaleFactor)
	assert.False(t, c.Buffers.UseAutoPauseAndResume)
	assert.Equal(t, uint32(64), c.Reports.ProfileSamples)
	// untouched keys keep their defaults
	assert.Equal(t, uint32(256), c.Simulation.IncomingSpikeBufferSize)
	assert.Equal(t, 256, c.Machine.MaxAtomsPerCore)
}

func TestReadRejectsInvalid(t *testing.T) {
	src := `
simulation:
  tick_us: 0
`
	_, err := Read(strings.NewReader(src), "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalid))
}
