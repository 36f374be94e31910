// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"errors"
	"fmt"

	"github.com/goki/ki/kit"
)

// Class classifies every error produced while planning or compiling a core image.
type Class int32

//go:generate stringer -type=Class

var KiT_Class = kit.Enums.AddEnum(ClassN, false, nil)

func (ev Class) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Class) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Capacity is a resource bound that was exceeded: delay range, row length, region size.
	Capacity Class = iota

	// Unsupported is a configuration the compiled rules cannot express, such as a
	// tick other than 1 ms for the timing lookup tables.
	Unsupported

	// Lookup is an unknown parameter or state variable name.
	Lookup

	// Invalid is a broken caller contract: overlapping slices, bad expressions, negative sizes.
	Invalid

	ClassN
)

// Error is a classified error.  Err optionally holds the underlying cause.
type Error struct {
	Class Class
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spikemap: [%s] %s: %v", e.Class, e.Msg, e.Err)
	}
	return fmt.Sprintf("spikemap: [%s] %s", e.Class, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same class, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Class == e.Class && (t.Msg == "" || t.Msg == e.Msg)
}

// New returns a classified error with a formatted message.
func New(cls Class, format string, args ...interface{}) error {
	return &Error{Class: cls, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err, keeping it as the cause.
func Wrap(cls Class, err error, format string, args ...interface{}) error {
	return &Error{Class: cls, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ClassOf returns the class of the first *Error in err's chain.
func ClassOf(err error) (Class, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return ClassN, false
}

// Sentinels for errors.Is matching by class.
var (
	ErrCapacity    = &Error{Class: Capacity}
	ErrUnsupported = &Error{Class: Unsupported}
	ErrLookup      = &Error{Class: Lookup}
	ErrInvalid     = &Error{Class: Invalid}
)
