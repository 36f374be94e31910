// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsByClass(t *testing.T) {
	err := New(Capacity, "row length %d exceeds %d", 40, 32)
	assert.True(t, errors.Is(err, ErrCapacity))
	assert.False(t, errors.Is(err, ErrUnsupported))

	wrapped := fmt.Errorf("slice 3: %w", err)
	assert.True(t, errors.Is(wrapped, ErrCapacity))
	cls, ok := ClassOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, Capacity, cls)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("link down")
	err := Wrap(Invalid, cause, "reading core")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "Invalid")
	assert.Contains(t, err.Error(), "link down")
}

func TestClassString(t *testing.T) {
	var c Class
	assert.NoError(t, c.FromString("Lookup"))
	assert.Equal(t, Lookup, c)
	assert.Error(t, c.FromString("Nope"))
	assert.Equal(t, "Unsupported", Unsupported.String())
}
