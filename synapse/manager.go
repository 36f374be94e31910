// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package synapse manages the synaptic matrix of a post-synaptic population:
the projections into it, the edges that connect its slices, and the sizing
and writing of the matrix region of each core image.

Sizes are derived from the connectors' capacity bounds only, so a core's
matrix region can be reserved before any synapse is generated.
*/
package synapse

import (
	"math"
	"sync"

	"github.com/emer/spikemap/connect"
	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/log"
	"github.com/emer/spikemap/mapping"
	"github.com/emer/spikemap/plastic"
)

var logger = log.NewModuleLogger("synapse")

const (
	// MaxPostAtoms is the largest post slice an 8 bit target index can address.
	MaxPostAtoms = 256

	// MaxShift bounds the ring buffer left shift of a synapse type.
	MaxShift = 15

	// BlockHeaderWords is the header of each matrix block.
	BlockHeaderWords = 4
)

// Manager owns the projections and edges into one population.
type Manager struct {
	Post              string
	NPost             int
	NSynapseTypes     int
	GlobalWeightScale float64 `desc:"model-wide weight multiplier applied before fixed point"`
	TickMicros        uint32
	Delays            connect.DelayLimits

	Cycles  int `desc:"cpu cycles of synapse processing per tick"`
	DTCM    int `desc:"local memory of synapse processing in bytes"`
	Mallocs int `desc:"allocations the synapse code makes from the image"`

	mu    sync.RWMutex
	projs map[string]*Projection
	names []string
	edges mapping.EdgeList
}

// NewManager returns a manager for the population post of nPost atoms.
func NewManager(post string, nPost, nSynapseTypes int, globalWeightScale float64, tickMicros uint32) *Manager {
	mg := &Manager{Post: post, NPost: nPost, NSynapseTypes: nSynapseTypes, GlobalWeightScale: globalWeightScale, TickMicros: tickMicros}
	mg.Defaults()
	return mg
}

func (mg *Manager) Defaults() {
	mg.Delays.Defaults()
	mg.Cycles = 0
	mg.DTCM = 0
	mg.Mallocs = 4
}

// TickMs is the tick duration in ms.
func (mg *Manager) TickMs() float64 {
	return float64(mg.TickMicros) / 1000
}

// AddProjection validates pj and registers it.  The probability surface is
// computed here, and every check that depends only on the projection runs
// here, so sizing and writing later cannot fail on them.
func (mg *Manager) AddProjection(pj *Projection) error {
	switch {
	case pj.Name == "":
		return errs.New(errs.Invalid, "%s: projection has no name", mg.Post)
	case pj.Conn == nil:
		return errs.New(errs.Invalid, "%s: projection %s has no connector", mg.Post, pj.Name)
	case pj.NPre <= 0:
		return errs.New(errs.Invalid, "%s: projection %s from %d atoms", mg.Post, pj.Name, pj.NPre)
	case int(pj.Type) >= mg.NSynapseTypes:
		return errs.New(errs.Invalid, "%s: projection %s synapse type %d, population has %d", mg.Post, pj.Name, pj.Type, mg.NSynapseTypes)
	}
	if err := pj.Conn.Validate(); err != nil {
		return err
	}
	if err := mg.Delays.CheckMaxDelay(pj.Conn.MaxDelayTicks(mg.TickMs())); err != nil {
		cls, _ := errs.ClassOf(err)
		return errs.Wrap(cls, err, "%s: projection %s", mg.Post, pj.Name)
	}
	if pj.STDP != nil {
		if _, err := pj.STDP.ParamsSize(); err != nil {
			return err
		}
		if err := pj.STDP.Timing.CheckTick(mg.TickMicros); err != nil {
			return err
		}
	}

	mg.mu.Lock()
	defer mg.mu.Unlock()
	if _, has := mg.projs[pj.Name]; has {
		return errs.New(errs.Invalid, "%s: projection %s already added", mg.Post, pj.Name)
	}
	if st := mg.dynamics(); st != nil && pj.STDP != nil && st != pj.STDP {
		return errs.New(errs.Unsupported, "%s: projection %s: only one plasticity rule per population", mg.Post, pj.Name)
	}
	pj.post, pj.nPost = mg.Post, mg.NPost
	sf, err := pj.Conn.Surface(pj.Pair())
	if err != nil {
		return err
	}
	pj.surf = sf
	if mg.projs == nil {
		mg.projs = make(map[string]*Projection)
	}
	mg.projs[pj.Name] = pj
	mg.names = append(mg.names, pj.Name)
	logger.Debugf("%s: projection %s from %s, type %d, plastic %v", mg.Post, pj.Name, pj.Pre, pj.Type, pj.Plastic())
	return nil
}

// Projection returns the named projection.
func (mg *Manager) Projection(name string) (*Projection, error) {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	pj, has := mg.projs[name]
	if !has {
		return nil, errs.New(errs.Lookup, "%s: projection %s not found", mg.Post, name)
	}
	return pj, nil
}

// Connect adds an edge of a registered projection.
func (mg *Manager) Connect(e mapping.Edge) error {
	pj, err := mg.Projection(e.Projection)
	if err != nil {
		return err
	}
	switch {
	case e.Pre.Lo < 0 || e.Pre.Hi >= pj.NPre || e.Pre.Hi < e.Pre.Lo:
		return errs.New(errs.Invalid, "%s: edge of %s: pre slice %v outside %d atoms", mg.Post, pj.Name, e.Pre, pj.NPre)
	case e.Post.Lo < 0 || e.Post.Hi >= mg.NPost || e.Post.Hi < e.Post.Lo:
		return errs.New(errs.Invalid, "%s: edge of %s: post slice %v outside %d atoms", mg.Post, pj.Name, e.Post, mg.NPost)
	}
	mg.mu.Lock()
	mg.edges = append(mg.edges, e)
	mg.mu.Unlock()
	return nil
}

// IncomingEdges returns the edges ending at post, in the order they were added.
func (mg *Manager) IncomingEdges(post mapping.Slice) []mapping.Edge {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return mg.edges.IncomingEdges(post)
}

// Dynamics returns the plasticity rule shared by the plastic projections, or nil.
func (mg *Manager) Dynamics() *plastic.STDP {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return mg.dynamics()
}

func (mg *Manager) dynamics() *plastic.STDP {
	for _, nm := range mg.names {
		if st := mg.projs[nm].STDP; st != nil {
			return st
		}
	}
	return nil
}

// Shifts returns the ring buffer left shift of each synapse type: the
// smallest shift whose 16 bit weights can hold the largest weight of any
// projection of that type.
func (mg *Manager) Shifts() []uint32 {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	maxw := make([]float64, mg.NSynapseTypes)
	for _, pj := range mg.projs {
		maxw[pj.Type] = math.Max(maxw[pj.Type], pj.WeightMax())
	}
	sh := make([]uint32, mg.NSynapseTypes)
	for t, w := range maxw {
		sh[t] = RingBufferShift(w, mg.GlobalWeightScale)
	}
	return sh
}

// RingBufferShift is the smallest shift in [0, MaxShift] with
// maxWeight * globalScale <= 2^shift.
func RingBufferShift(maxWeight, globalScale float64) uint32 {
	v := maxWeight * globalScale
	if v <= 1 {
		return 0
	}
	s := int(math.Ceil(math.Log2(v)))
	if s > MaxShift {
		return MaxShift
	}
	return uint32(s)
}

// WeightScale converts model weights of a type with the given shift into
// 16 bit fixed point.
func WeightScale(globalScale float64, shift uint32) float64 {
	return globalScale * float64(uint32(1)<<(MaxShift-shift))
}

// Block is the sizing of the matrix block of one edge.
type Block struct {
	Edge     mapping.Edge
	Proj     *Projection
	MaxRow   int `desc:"bound on synapses per pre atom"`
	NStages  int `desc:"delay stages, the native one included"`
	RowWords int `desc:"words per row, all rows padded to it"`
}

// NRows is the pre atoms of the block.
func (bl *Block) NRows() int {
	return bl.Edge.Pre.NAtoms()
}

// Bytes is the block header plus its rows.
func (bl *Block) Bytes() int {
	return 4 * (BlockHeaderWords + bl.NStages*bl.NRows()*bl.RowWords)
}

// Layout is the sizing of the matrix region of one post slice.
type Layout struct {
	Post   mapping.Slice
	Shifts []uint32
	Scales []float64
	STDP   *plastic.STDP
	Params int `desc:"bytes of plasticity parameters"`
	Blocks []Block
}

// Bytes is the region size.
func (ly *Layout) Bytes() int {
	sz := 4*(1+len(ly.Shifts)) + ly.Params + 4
	for i := range ly.Blocks {
		sz += ly.Blocks[i].Bytes()
	}
	return sz
}

// Layout sizes the matrix region of post from the capacity bounds of its
// incoming edges, one block per edge in the order the edges were added.
func (mg *Manager) Layout(post mapping.Slice) *Layout {
	ly := &Layout{Post: post, Shifts: mg.Shifts(), STDP: mg.Dynamics()}
	ly.Scales = make([]float64, len(ly.Shifts))
	for t, s := range ly.Shifts {
		ly.Scales[t] = WeightScale(mg.GlobalWeightScale, s)
	}
	if ly.STDP != nil {
		ly.Params, _ = ly.STDP.ParamsSize()
	}
	for _, e := range mg.IncomingEdges(post) {
		pj, err := mg.Projection(e.Projection)
		if err != nil {
			continue
		}
		pr := pj.Pair()
		bl := Block{Edge: e, Proj: pj}
		bl.MaxRow = connect.ProbableMaximumSelected(pr.Total(), post.NAtoms(), pj.surf.Max)
		bl.NStages = mg.Delays.NStages(pj.Conn.MaxDelayTicks(mg.TickMs()))
		bl.RowWords = 1 + bl.MaxRow
		if pj.Plastic() {
			bl.RowWords += headerWords(pj.STDP)
		}
		ly.Blocks = append(ly.Blocks, bl)
	}
	return ly
}

func headerWords(st *plastic.STDP) int {
	return (st.RowHeaderSize() + 3) / 4
}

// SDRAMBytes is the matrix region size of post.
func (mg *Manager) SDRAMBytes(post mapping.Slice) int {
	return mg.Layout(post).Bytes()
}

// CPUCycles is the per-tick cost of synapse processing.
func (mg *Manager) CPUCycles() int {
	return mg.Cycles
}

// DTCMBytes is the local memory of synapse processing.
func (mg *Manager) DTCMBytes() int {
	return mg.DTCM
}

// NMallocs is the allocations the synapse code makes.
func (mg *Manager) NMallocs() int {
	return mg.Mallocs
}

// ProjectionNames returns the projection names in the order they were added.
func (mg *Manager) ProjectionNames() []string {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return append([]string(nil), mg.names...)
}
