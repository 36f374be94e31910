// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the simulation, buffering and machine settings
// consumed while planning and compiling core images.
package config

// Config is the complete settings tree.
type Config struct {
	Simulation Simulation `mapstructure:"simulation"`
	Buffers    Buffers    `mapstructure:"buffers"`
	Reports    Reports    `mapstructure:"reports"`
	Machine    Machine    `mapstructure:"machine"`
}

// Simulation holds run timing settings.
type Simulation struct {
	// TickMicros is the simulation timestep in microseconds.
	TickMicros uint32 `mapstructure:"tick_us" validate:"min=1"`

	// TimeScaleFactor slows real time relative to simulated time.
	TimeScaleFactor uint32 `mapstructure:"time_scale_factor" validate:"min=1"`

	// IncomingSpikeBufferSize is the number of spikes each core can queue.
	IncomingSpikeBufferSize uint32 `mapstructure:"incoming_spike_buffer_size" validate:"min=1"`

	// RunTicks is the run length used to size recording buffers, 0 for unbounded.
	RunTicks uint32 `mapstructure:"run_ticks"`
}

// Buffers holds recording buffer settings.
type Buffers struct {
	EnableBufferedRecording bool   `mapstructure:"enable_buffered_recording"`
	SpikeBufferSize         uint64 `mapstructure:"spike_buffer_size"`
	VariableBufferSize      uint64 `mapstructure:"variable_buffer_size"`
	UseAutoPauseAndResume   bool   `mapstructure:"use_auto_pause_and_resume"`
	MinimumBufferSDRAM      uint64 `mapstructure:"minimum_buffer_sdram"`
	BufferSizeBeforeRequest uint32 `mapstructure:"buffer_size_before_receive"`
	TimeBetweenRequests     uint32 `mapstructure:"time_between_requests"`
	ReceiveHost             string `mapstructure:"receive_buffer_host" validate:"omitempty,ipv4"`
	ReceivePort             uint16 `mapstructure:"receive_buffer_port"`
}

// Reports holds diagnostic settings.
type Reports struct {
	// ProfileSamples is the number of profiler samples reserved per core, 0 disables profiling.
	ProfileSamples uint32 `mapstructure:"n_profile_samples"`
}

// Machine describes the per-core limits used by the partitioner and checked by the builder.
type Machine struct {
	MaxAtomsPerCore int    `mapstructure:"max_atoms_per_core" validate:"min=1"`
	DTCMBytes       uint64 `mapstructure:"dtcm_bytes" validate:"min=1"`
	SDRAMBytes      uint64 `mapstructure:"sdram_bytes" validate:"min=1"`
	SDPPort         uint32 `mapstructure:"sdp_port" validate:"max=7"`
	Workers         int    `mapstructure:"workers" validate:"min=0"`
}
