// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package connect generates synapses from a probability expression over the
pre and post atom indexes.  The probability surface of a population pair is
computed once and cached; capacity bounds are derived from it before any
synapse is drawn, and generation fails rather than exceed them.
*/
package connect

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/log"
	"github.com/emer/spikemap/mapping"
)

var logger = log.NewModuleLogger("connect")

// IndexProb connects atom pairs with a probability given by an expression
// over the pre index i and post index j.
type IndexProb struct {
	Expr      *Expression
	AllowSelf bool      `desc:"allow an atom to connect to itself when a population projects to itself"`
	Weights   RndParams `desc:"weight distribution, in model units"`
	Delays    RndParams `desc:"delay distribution, in ms"`

	// Seed is the base seed of the per slice pair random streams.
	Seed uint64

	mu    sync.Mutex
	surfs map[Pair]*Surface
}

// NewIndexProb compiles the expression and returns a connector with unit
// weights and 1 ms delays.
func NewIndexProb(src string, allowSelf bool) (*IndexProb, error) {
	ex, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return &IndexProb{Expr: ex, AllowSelf: allowSelf, Weights: Const(1), Delays: Const(1), Seed: 1}, nil
}

// Validate checks the distributions.
func (ip *IndexProb) Validate() error {
	if err := ip.Weights.Validate(); err != nil {
		return err
	}
	if err := ip.Delays.Validate(); err != nil {
		return err
	}
	if ip.Delays.Min() <= 0 {
		return errs.New(errs.Invalid, "delays must be positive, minimum is %v", ip.Delays.Min())
	}
	return nil
}

// Surface returns the cached probability surface of pr, computing it on
// first use.  It is safe for concurrent use.
func (ip *IndexProb) Surface(pr Pair) (*Surface, error) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if sf, ok := ip.surfs[pr]; ok {
		return sf, nil
	}
	sf, err := NewSurface(pr, ip.Expr)
	if err != nil {
		return nil, err
	}
	if ip.surfs == nil {
		ip.surfs = make(map[Pair]*Surface)
	}
	ip.surfs[pr] = sf
	logger.Debugf("surface %s->%s %dx%d: max p %v", pr.Pre, pr.Post, pr.NPre, pr.NPost, sf.Max)
	return sf, nil
}

// MaxRowLength bounds the synapses from one pre atom into post.
func (ip *IndexProb) MaxRowLength(pr Pair, post mapping.Slice) (int, error) {
	sf, err := ip.Surface(pr)
	if err != nil {
		return 0, err
	}
	return ProbableMaximumSelected(pr.Total(), post.NAtoms(), sf.Max), nil
}

// MaxColLength bounds the synapses into one post atom.
func (ip *IndexProb) MaxColLength(pr Pair) (int, error) {
	sf, err := ip.Surface(pr)
	if err != nil {
		return 0, err
	}
	return ProbableMaximumSelected(pr.Total(), pr.NPre, sf.Max), nil
}

// MaxConnections bounds the synapses of the whole pair.
func (ip *IndexProb) MaxConnections(pr Pair) (int, error) {
	sf, err := ip.Surface(pr)
	if err != nil {
		return 0, err
	}
	return ProbableMaximumSelected(pr.Total(), pr.Total(), sf.Max), nil
}

// WeightMax is the largest weight that can be generated, in model units.
func (ip *IndexProb) WeightMax() float64 {
	return math.Max(math.Abs(ip.Weights.Max()), math.Abs(ip.Weights.Min()))
}

// DelayTicks converts a delay in ms to whole ticks, at least 1.
func DelayTicks(ms, tickMs float64) int {
	d := int(math.Round(ms / tickMs))
	if d < 1 {
		return 1
	}
	return d
}

// MaxDelayTicks is the largest delay that can be generated, in ticks.
func (ip *IndexProb) MaxDelayTicks(tickMs float64) int {
	return DelayTicks(ip.Delays.Max(), tickMs)
}

// SliceRand returns the random stream for a slice pair, derived from Seed
// so each slice pair is reproducible independently of build order.
func (ip *IndexProb) SliceRand(pre, post mapping.Slice) *rand.Rand {
	seed := ip.Seed*0x9E3779B97F4A7C15 ^ uint64(pre.Lo)<<32 ^ uint64(post.Lo)
	return rand.New(rand.NewSource(seed))
}

// Gen holds the per-call settings of Generate.
type Gen struct {
	SynType     uint8
	WeightScale float64 `desc:"multiplies weights into fixed point"`
	TickMs      float64
}

// Generate draws the synapses from pre to post using rng.  One uniform draw
// is consumed per atom pair in row-major order, including pairs that can
// never connect, so the stream stays aligned.  It fails with a capacity
// error if any pre atom's row exceeds MaxRowLength.
func (ip *IndexProb) Generate(pr Pair, pre, post mapping.Slice, g Gen, rng *rand.Rand) (Synapses, error) {
	sf, err := ip.Surface(pr)
	if err != nil {
		return nil, err
	}
	maxRow := ProbableMaximumSelected(pr.Total(), post.NAtoms(), sf.Max)
	probs := sf.Block(pre, post)
	np := post.NAtoms()
	draws := make([]float64, len(probs))
	for k := range draws {
		draws[k] = rng.Float64()
	}
	if !ip.AllowSelf && pr.Same() {
		for k := range draws {
			if pre.Lo+k/np == post.Lo+k%np {
				draws[k] = math.Inf(1)
			}
		}
	}
	var ids []int
	row, rowN := -1, 0
	for k, d := range draws {
		if !(d < probs[k]) {
			continue
		}
		if r := k / np; r != row {
			row, rowN = r, 0
		}
		rowN++
		if rowN > maxRow {
			return nil, errs.New(errs.Capacity, "%s->%s %v->%v: pre atom %d has more than %d synapses", pr.Pre, pr.Post, pre, post, pre.Lo+row, maxRow)
		}
		ids = append(ids, k)
	}
	ws := ip.Weights.GenN(len(ids), rng)
	ds := ip.Delays.GenN(len(ids), rng)
	syns := make(Synapses, len(ids))
	for n, k := range ids {
		syns[n] = Synapse{
			Source: uint32(k/np + pre.Lo),
			Target: uint32(k%np + post.Lo),
			Weight: weightFixed(ws[n], g.WeightScale),
			Delay:  uint32(DelayTicks(ds[n], g.TickMs)),
			Type:   g.SynType,
		}
	}
	return syns, nil
}

func weightFixed(w, scale float64) uint16 {
	v := math.Round(math.Abs(w) * scale)
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
