// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log is the leveled logger shared by all spikemap packages.
// Nothing is written until Default, New or SetLogger is called.
package log

import (
	"io"
	"log"
	"os"

	"github.com/neuronlabs/uni-logger"

	"github.com/emer/spikemap/errs"
)

const (
	LDEBUG   = unilogger.DEBUG
	LINFO    = unilogger.INFO
	LWARNING = unilogger.WARNING
	LERROR   = unilogger.ERROR
	LUNKNOWN = unilogger.UNKNOWN
)

var (
	logger       unilogger.LeveledLogger
	currentLevel = LINFO
	modules      []*ModuleLogger
)

// Default sets a basic logger writing to os.Stderr.
func Default() {
	New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// New sets a basic logger writing to out with the given prefix and flags.
func New(out io.Writer, prefix string, flags int) {
	basic := unilogger.NewBasicLogger(out, prefix, flags)
	basic.SetOutputDepth(4)
	SetLogger(basic)
}

// SetLogger replaces the current logger and applies the current level to it.
func SetLogger(l unilogger.LeveledLogger) {
	logger = l
	if ls, ok := l.(unilogger.LevelSetter); ok {
		ls.SetLevel(currentLevel)
	}
}

// Logger returns the current logger, nil if none set.
func Logger() unilogger.LeveledLogger {
	return logger
}

// Level returns the current level.
func Level() unilogger.Level {
	return currentLevel
}

// SetLevel sets the level of the current logger.
func SetLevel(level unilogger.Level) error {
	if level == LUNKNOWN {
		return errs.New(errs.Invalid, "can't set unknown logger level")
	}
	currentLevel = level
	if logger == nil {
		return nil
	}
	ls, ok := logger.(unilogger.LevelSetter)
	if !ok {
		return errs.New(errs.Unsupported, "logger doesn't implement LevelSetter")
	}
	ls.SetLevel(level)
	return nil
}

func Debugf(format string, args ...interface{}) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}
