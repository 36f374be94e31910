// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/timer"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/ints"

	"github.com/emer/spikemap/image"
	"github.com/emer/spikemap/mapping"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// BuildThreads allocates nthr build threads; fewer than 2 builds in the
// calling goroutine.
func (vt *PopulationVertex) BuildThreads(nthr int) {
	vt.NThreads = ints.MaxInt(nthr, 1)
	vt.ThrChans = make([]SliceFunChan, vt.NThreads)
	vt.ThrTimes = make([]timer.Time, vt.NThreads)
	vt.FunTimes = make(map[string]*timer.Time)
	if vt.NThreads <= 1 {
		return
	}
	for th := 0; th < vt.NThreads; th++ {
		vt.ThrChans[th] = make(SliceFunChan)
	}
}

// StartThreads starts the build threads, which monitor the channels for work
func (vt *PopulationVertex) StartThreads() {
	if vt.NThreads <= 1 {
		return
	}
	for th := 0; th < vt.NThreads; th++ {
		go vt.ThrWorker(th)
	}
}

// StopThreads stops the build threads
func (vt *PopulationVertex) StopThreads() {
	if vt.NThreads <= 1 {
		return
	}
	for th := 0; th < vt.NThreads; th++ {
		close(vt.ThrChans[th])
	}
	vt.NThreads = 1
}

// Close stops the build threads.  The vertex builds in the calling
// goroutine afterwards.
func (vt *PopulationVertex) Close() {
	vt.StopThreads()
}

// ThrWorker is the worker function run by the build threads
func (vt *PopulationVertex) ThrWorker(tt int) {
	for fun := range vt.ThrChans[tt] {
		vt.ThrTimes[tt].Start()
		fun(tt)
		vt.ThrTimes[tt].Stop()
		vt.WaitGp.Done()
	}
}

// ThrSliceFun calls fun for each of n slice indexes, striding them over the
// build threads if NThreads > 1, and otherwise in the current goroutine.
func (vt *PopulationVertex) ThrSliceFun(n int, fun func(si int), funame string) {
	vt.FunTimerStart(funame)
	if vt.NThreads <= 1 {
		for si := 0; si < n; si++ {
			fun(si)
		}
	} else {
		nthr := vt.NThreads
		for th := 0; th < nthr; th++ {
			vt.WaitGp.Add(1)
			vt.ThrChans[th] <- func(tt int) {
				for si := tt; si < n; si += nthr {
					fun(si)
				}
			}
		}
		vt.WaitGp.Wait()
	}
	vt.FunTimerStop(funame)
}

// BuildAll builds the images of slices in parallel, each at its recorded
// placement.  Either every image is returned, in slice order, or the error
// of the first failing slice and no images.  It implements state.BatchBuilder.
func (vt *PopulationVertex) BuildAll(slices []mapping.Slice) ([]*image.Image, error) {
	ims := make([]*image.Image, len(slices))
	berrs := make([]error, len(slices))
	vt.ThrSliceFun(len(slices), func(si int) {
		ims[si], berrs[si] = vt.Build(slices[si])
	}, "BuildAll")
	for si, err := range berrs {
		if err != nil {
			logger.Errorf("%s: build of %v failed: %v", vt.Name(), slices[si], err)
			return nil, err
		}
	}
	return ims, nil
}

// TimerReport reports the amount of time spent in each function, and in each thread
func (vt *PopulationVertex) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", vt.Name(), vt.NThreads)
	fmt.Fprintf(&b, "\tFunction Name\tTotal Secs\tPct\n")
	fnms := make([]string, 0, len(vt.FunTimes))
	for k := range vt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	tot := 0.0
	for _, fn := range fnms {
		tot += vt.FunTimes[fn].TotalSecs()
	}
	for _, fn := range fnms {
		secs := vt.FunTimes[fn].TotalSecs()
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", fn, secs, 100*(secs/tot))
	}
	fmt.Fprintf(&b, "\tTotal   \t%6.4g\n", tot)
	if len(vt.ThrTimes) <= 1 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tTotal Secs\tPct\n")
	tot = 0
	for th := range vt.ThrTimes {
		tot += vt.ThrTimes[th].TotalSecs()
	}
	for th := range vt.ThrTimes {
		secs := vt.ThrTimes[th].TotalSecs()
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", th, secs, 100*(secs/tot))
	}
	return b.String()
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (vt *PopulationVertex) FunTimerStart(fun string) {
	ft, ok := vt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		vt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (vt *PopulationVertex) FunTimerStop(fun string) {
	ft := vt.FunTimes[fun]
	ft.Stop()
}

//////////////////////////////////////////////////////////////////////////////////////
//  Reports

// ResourceTable returns the estimated resources of each slice, one row per slice.
func (vt *PopulationVertex) ResourceTable() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", vt.Name()+"Resources")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{"Slice", etensor.STRING, nil, nil},
		{"Atoms", etensor.INT64, nil, nil},
		{"CPU", etensor.INT64, nil, nil},
		{"DTCM", etensor.INT64, nil, nil},
		{"SDRAM", etensor.INT64, nil, nil},
		{"Recording", etensor.INT64, nil, nil},
	}
	dt.SetFromSchema(sch, len(vt.Slices))
	for row, sl := range vt.Slices {
		rs := vt.EstimateResources(sl)
		dt.SetCellString("Slice", row, sl.String())
		dt.SetCellFloat("Atoms", row, float64(sl.NAtoms()))
		dt.SetCellFloat("CPU", row, float64(rs.CPUCycles))
		dt.SetCellFloat("DTCM", row, float64(rs.DTCM))
		dt.SetCellFloat("SDRAM", row, float64(rs.SDRAM))
		dt.SetCellFloat("Recording", row, float64(rs.RecordingSDRAM))
	}
	return dt
}

// SizeReport returns a string reporting the budget of each slice and the
// total for the population.
func (vt *PopulationVertex) SizeReport() string {
	var b strings.Builder
	cpu := 0
	var dtcm, sdram datasize.ByteSize
	for _, sl := range vt.Slices {
		rs := vt.EstimateResources(sl)
		cpu += rs.CPUCycles
		dtcm += rs.DTCM
		sdram += rs.SDRAM
		fmt.Fprintf(&b, "%14s:\t Atoms: %d\t CPU: %d\t DTCM: %v\t SDRAM: %v\n", sl, sl.NAtoms(), rs.CPUCycles, rs.DTCM.HumanReadable(), rs.SDRAM.HumanReadable())
	}
	fmt.Fprintf(&b, "\n%14s:\t Atoms: %d\t Cores: %d\t CPU: %d\t DTCM: %v\t SDRAM: %v\n", vt.Name(), vt.Pop.N, len(vt.Slices), cpu, dtcm.HumanReadable(), sdram.HumanReadable())
	return b.String()
}
