// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MissChance is the chance, spread over all possible connections, that a
// generated count is allowed to exceed its bound.
const MissChance = 1.0 / 100

// ProbableMaximumSelected returns an upper bound on how many of nSelected
// trials succeed with probability p: the binomial quantile at
// 1 - MissChance/nTotal.
func ProbableMaximumSelected(nTotal, nSelected int, p float64) int {
	switch {
	case nSelected <= 0 || p <= 0:
		return 0
	case p >= 1:
		return nSelected
	}
	q := 1 - MissChance/float64(nTotal)
	bn := distuv.Binomial{N: float64(nSelected), P: p}
	k := int(math.Floor(bn.Mean()))
	for k < nSelected && bn.CDF(float64(k)) < q {
		k++
	}
	return k
}
