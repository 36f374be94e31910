// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func TestDecayInit(t *testing.T) {
	tau := Chans{}
	tau.SetAll(5, 10)
	dc := tau.Decay(1)
	if math.Abs(dc.E-math.Exp(-0.2)) > difTol || math.Abs(dc.I-math.Exp(-0.1)) > difTol {
		t.Errorf("Decay err: %v", dc)
	}
	in := tau.Init(1)
	if math.Abs(in.E-5*(1-math.Exp(-0.2))) > difTol {
		t.Errorf("Init err: %v", in)
	}
	if in.E >= 1 || in.I >= 1 {
		t.Errorf("Init must stay below 1 for U032: %v", in)
	}
	zero := Chans{}
	if zero.Decay(1).E != 0 || zero.Init(1).E != 1 {
		t.Errorf("zero tau err")
	}
}

func TestDrive(t *testing.T) {
	erev := Chans{E: 0, I: -70}
	dr := erev.Drive(-65)
	if dr.E != 65 || dr.I != -5 {
		t.Errorf("Drive err: %v", dr)
	}
}
