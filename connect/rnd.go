// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"math"

	"github.com/emer/emergent/erand"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/emer/spikemap/errs"
)

// GaussClip is the number of standard deviations Gaussian draws are clipped
// to, so Max is a hard bound.
const GaussClip = 3

// RndParams is a weight or delay distribution.  Uniform draws are in
// Mean +/- Var, Gaussian draws have standard deviation Var, and Mean always
// returns Mean.
type RndParams struct {
	erand.RndParams
}

// Const returns a distribution that always yields v.
func Const(v float64) RndParams {
	rp := RndParams{}
	rp.Dist = erand.Mean
	rp.Mean = v
	return rp
}

// Uniform returns a uniform distribution over [lo, hi].
func Uniform(lo, hi float64) RndParams {
	rp := RndParams{}
	rp.Dist = erand.Uniform
	rp.Mean = (lo + hi) / 2
	rp.Var = (hi - lo) / 2
	return rp
}

// Gaussian returns a clipped normal distribution.
func Gaussian(mean, sd float64) RndParams {
	rp := RndParams{}
	rp.Dist = erand.Gaussian
	rp.Mean = mean
	rp.Var = sd
	return rp
}

// Validate checks that the distribution kind is supported.
func (rp *RndParams) Validate() error {
	switch rp.Dist {
	case erand.Mean, erand.Uniform, erand.Gaussian:
		if rp.Var < 0 {
			return errs.New(errs.Invalid, "distribution %v: negative spread %v", rp.Dist, rp.Var)
		}
		return nil
	}
	return errs.New(errs.Unsupported, "distribution %v not supported for weights or delays", rp.Dist)
}

// Max is the largest value Gen can return.
func (rp *RndParams) Max() float64 {
	switch rp.Dist {
	case erand.Uniform:
		return rp.Mean + rp.Var
	case erand.Gaussian:
		return rp.Mean + GaussClip*rp.Var
	}
	return rp.Mean
}

// Min is the smallest value Gen can return.
func (rp *RndParams) Min() float64 {
	switch rp.Dist {
	case erand.Uniform:
		return rp.Mean - rp.Var
	case erand.Gaussian:
		return rp.Mean - GaussClip*rp.Var
	}
	return rp.Mean
}

// GenN draws n values from the distribution using rng.
func (rp *RndParams) GenN(n int, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	switch rp.Dist {
	case erand.Uniform:
		ud := distuv.Uniform{Min: rp.Min(), Max: rp.Max(), Src: rng}
		for i := range out {
			out[i] = ud.Rand()
		}
	case erand.Gaussian:
		nd := distuv.Normal{Mu: rp.Mean, Sigma: rp.Var, Src: rng}
		lo, hi := rp.Min(), rp.Max()
		for i := range out {
			out[i] = math.Max(lo, math.Min(hi, nd.Rand()))
		}
	default:
		for i := range out {
			out[i] = rp.Mean
		}
	}
	return out
}
