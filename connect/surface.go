// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"math"

	"github.com/emer/etable/etensor"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/mapping"
)

// Pair identifies a pre/post population pair of a connector.
type Pair struct {
	Pre   string
	Post  string
	NPre  int
	NPost int
}

// Same returns true when the pair connects a population to itself.
func (pr Pair) Same() bool {
	return pr.Pre == pr.Post
}

// Total is the number of possible connections.
func (pr Pair) Total() int {
	return pr.NPre * pr.NPost
}

// Surface is the connection probability of every (pre, post) atom pair,
// shape [NPre, NPost], row-major.
type Surface struct {
	Probs *etensor.Float64
	Max   float64
}

// NewSurface evaluates ex over the whole index grid of pr.  Values are
// clamped to [0, 1]; a NaN is an error.
func NewSurface(pr Pair, ex *Expression) (*Surface, error) {
	if pr.NPre <= 0 || pr.NPost <= 0 {
		return nil, errs.New(errs.Invalid, "surface %s->%s: %dx%d atoms", pr.Pre, pr.Post, pr.NPre, pr.NPost)
	}
	probs := etensor.NewFloat64([]int{pr.NPre, pr.NPost}, nil, []string{"Pre", "Post"})
	ev := ex.Evaluator()
	sf := &Surface{Probs: probs}
	for i := 0; i < pr.NPre; i++ {
		for j := 0; j < pr.NPost; j++ {
			p, err := ev.Eval(i, j)
			if err != nil {
				return nil, err
			}
			if math.IsNaN(p) {
				return nil, errs.New(errs.Invalid, "expression %q is NaN at i=%d j=%d", ex.Source, i, j)
			}
			p = math.Max(0, math.Min(1, p))
			probs.Values[i*pr.NPost+j] = p
			if p > sf.Max {
				sf.Max = p
			}
		}
	}
	return sf, nil
}

// At returns the probability for pre atom i and post atom j.
func (sf *Surface) At(i, j int) float64 {
	return sf.Probs.Values[i*sf.Probs.Dim(1)+j]
}

// Block returns the row-major probabilities of the pre x post slice cross product.
func (sf *Surface) Block(pre, post mapping.Slice) []float64 {
	np := post.NAtoms()
	out := make([]float64, 0, pre.NAtoms()*np)
	for i := pre.Lo; i <= pre.Hi; i++ {
		row := i * sf.Probs.Dim(1)
		out = append(out, sf.Probs.Values[row+post.Lo:row+post.Hi+1]...)
	}
	return out
}
