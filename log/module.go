// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"github.com/neuronlabs/uni-logger"
)

// ModuleLogger prefixes messages with a package name and may hold its own level.
// It writes through the package logger so SetLogger affects every module.
type ModuleLogger struct {
	Name  string
	level unilogger.Level
}

// NewModuleLogger registers a logger for the named module.
func NewModuleLogger(name string) *ModuleLogger {
	m := &ModuleLogger{Name: name, level: LUNKNOWN}
	modules = append(modules, m)
	return m
}

// Level returns the module level, or the package level if none was set.
func (m *ModuleLogger) Level() unilogger.Level {
	if m.level == LUNKNOWN {
		return currentLevel
	}
	return m.level
}

// SetLevel sets the module level.
func (m *ModuleLogger) SetLevel(level unilogger.Level) {
	m.level = level
}

// SetModulesLevel sets the level of every registered module.
func SetModulesLevel(level unilogger.Level) {
	for _, m := range modules {
		m.SetLevel(level)
	}
}

func (m *ModuleLogger) enabled(level unilogger.Level) bool {
	return logger != nil && level >= m.Level()
}

func (m *ModuleLogger) Debugf(format string, args ...interface{}) {
	if m.enabled(LDEBUG) {
		logger.Debugf(m.Name+": "+format, args...)
	}
}

func (m *ModuleLogger) Infof(format string, args ...interface{}) {
	if m.enabled(LINFO) {
		logger.Infof(m.Name+": "+format, args...)
	}
}

func (m *ModuleLogger) Warningf(format string, args ...interface{}) {
	if m.enabled(LWARNING) {
		logger.Warningf(m.Name+": "+format, args...)
	}
}

func (m *ModuleLogger) Errorf(format string, args ...interface{}) {
	if m.enabled(LERROR) {
		logger.Errorf(m.Name+": "+format, args...)
	}
}
