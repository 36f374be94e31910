// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plastic

import (
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/fixed"
	"github.com/emer/spikemap/image"
)

// Multiplicative is soft-bounded weight dependence: potentiation scales with
// the distance to WMax and depression with the distance to WMin.
type Multiplicative struct {
	WMin   float64 `desc:"minimum weight"`
	WMax   float64 `desc:"maximum weight"`
	APlus  float64 `desc:"potentiation learning rate"`
	AMinus float64 `desc:"depression learning rate"`
}

func (mw *Multiplicative) Defaults() {
	mw.WMin = 0
	mw.WMax = 1
	mw.APlus = 0.01
	mw.AMinus = 0.01
}

func (mw *Multiplicative) Name() string { return "multiplicative" }

func (mw *Multiplicative) MaxWeight() float64 { return mw.WMax }

// ParamsSize is four words for a single term; more terms are unsupported.
func (mw *Multiplicative) ParamsSize(nTerms int) (int, error) {
	if nTerms != 1 {
		return 0, errs.New(errs.Unsupported, "multiplicative weight dependence only supports single terms, got %d", nTerms)
	}
	return 4 * 4, nil
}

// Write emits WMin, WMax, APlus, AMinus scaled by weightScale.
func (mw *Multiplicative) Write(spec *image.Spec, weightScale float64, nTerms int) error {
	if _, err := mw.ParamsSize(nTerms); err != nil {
		return err
	}
	return spec.WriteWords([]uint32{
		uint32(fixed.Scaled(mw.WMin, weightScale)),
		uint32(fixed.Scaled(mw.WMax, weightScale)),
		uint32(fixed.Scaled(mw.APlus, weightScale)),
		uint32(fixed.Scaled(mw.AMinus, weightScale)),
	})
}
