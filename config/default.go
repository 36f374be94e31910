// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/spf13/viper"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			TickMicros:              1000,
			TimeScaleFactor:         1,
			IncomingSpikeBufferSize: 256,
		},
		Buffers: Buffers{
			EnableBufferedRecording: true,
			SpikeBufferSize:         1 << 20,
			VariableBufferSize:      1 << 20,
			UseAutoPauseAndResume:   true,
			MinimumBufferSDRAM:      1 << 20,
			BufferSizeBeforeRequest: 16 << 10,
			TimeBetweenRequests:     50,
			ReceiveHost:             "0.0.0.0",
			ReceivePort:             0,
		},
		Machine: Machine{
			MaxAtomsPerCore: 256,
			DTCMBytes:       64 << 10,
			SDRAMBytes:      7 << 20,
			SDPPort:         1,
		},
	}
}

// ViperSetDefaults sets the default values for the viper config.
func ViperSetDefaults(v *viper.Viper) {
	setDefaults(v)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("simulation.tick_us", d.Simulation.TickMicros)
	v.SetDefault("simulation.time_scale_factor", d.Simulation.TimeScaleFactor)
	v.SetDefault("simulation.incoming_spike_buffer_size", d.Simulation.IncomingSpikeBufferSize)
	v.SetDefault("simulation.run_ticks", d.Simulation.RunTicks)

	v.SetDefault("buffers.enable_buffered_recording", d.Buffers.EnableBufferedRecording)
	v.SetDefault("buffers.spike_buffer_size", d.Buffers.SpikeBufferSize)
	v.SetDefault("buffers.variable_buffer_size", d.Buffers.VariableBufferSize)
	v.SetDefault("buffers.use_auto_pause_and_resume", d.Buffers.UseAutoPauseAndResume)
	v.SetDefault("buffers.minimum_buffer_sdram", d.Buffers.MinimumBufferSDRAM)
	v.SetDefault("buffers.buffer_size_before_receive", d.Buffers.BufferSizeBeforeRequest)
	v.SetDefault("buffers.time_between_requests", d.Buffers.TimeBetweenRequests)
	v.SetDefault("buffers.receive_buffer_host", d.Buffers.ReceiveHost)
	v.SetDefault("buffers.receive_buffer_port", d.Buffers.ReceivePort)

	v.SetDefault("reports.n_profile_samples", d.Reports.ProfileSamples)

	v.SetDefault("machine.max_atoms_per_core", d.Machine.MaxAtomsPerCore)
	v.SetDefault("machine.dtcm_bytes", d.Machine.DTCMBytes)
	v.SetDefault("machine.sdram_bytes", d.Machine.SDRAMBytes)
	v.SetDefault("machine.sdp_port", d.Machine.SDPPort)
	v.SetDefault("machine.workers", d.Machine.Workers)
}
