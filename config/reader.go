// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"io"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/log"
)

// ReadConfig reads "spikemap.{yaml,json,toml}" from . or ./configs.
func ReadConfig() (*Config, error) {
	return ReadNamedConfig("spikemap")
}

// ReadNamedConfig reads the named config file from . or ./configs.
func ReadNamedConfig(name string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// Read reads a config of the given type ("yaml", "json", "toml") from r.
func Read(r io.Reader, typ string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(typ)
	setDefaults(v)

	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		log.Debugf("Unmarshaling Config failed. %v", err)
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate = validator.New()

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errs.Wrap(errs.Invalid, err, "config")
	}
	return nil
}

// TickMillis returns the timestep in milliseconds.
func (s *Simulation) TickMillis() float64 {
	return float64(s.TickMicros) / 1000
}
