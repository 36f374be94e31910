// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf, "", 0)
	defer SetLogger(nil)
	require.NoError(t, SetLevel(LINFO))

	m := NewModuleLogger("image")
	m.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	m.Infof("region %s", "system")
	assert.Contains(t, buf.String(), "image: region system")

	buf.Reset()
	m.SetLevel(LERROR)
	m.Warningf("dropped")
	assert.Empty(t, buf.String())
}

func TestSetUnknownLevel(t *testing.T) {
	assert.Error(t, SetLevel(LUNKNOWN))
}
