// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "fmt"

// DVFSMode selects what Dvfs does with a (from, to) table pair.
type DVFSMode int

const (
	// ModeSwitch performs an immediate, lasting frequency change.
	ModeSwitch DVFSMode = iota
	// ModeTrain runs a training pass against to without leaving the
	// live clock there.
	ModeTrain
	// ModeTrainSwitch trains to and then leaves the live clock there.
	ModeTrainSwitch
)

// Controller holds the process-wide state a single DRAM training/DVFS
// session threads through every operation in this package: the active
// table index, which PLL is idle, the pending FSP bank, the
// pattern-RAM-loaded guard and the periodic-compensation scratch. The
// reference implementation keeps these as file-scope globals (single
// writer by construction, per its concurrency model); this type exists so
// a caller can run more than one independent session — e.g. one per test —
// without them clobbering each other, while every operation that touches
// this state still does so without locking, matching the reference's
// single-threaded, cooperative-by-absence model.
type Controller struct {
	Platform Platform

	// Tables is the per-SKU table set TrainDRAM selected, retained for the
	// bootloader's lifetime: trained values captured during training live
	// here, and the runtime periodic-compensation pass reads them back.
	Tables []TimingTable

	ActiveTimingTableIdx int
	NextPLL              bool
	FSPForNextFreq       bool
	WroteTrainingPattern bool

	PeriodicTimerCompensationIntermediates [9 * 16]uint32
}

// NewController returns a Controller bound to platform. The EMC/MC Bus is
// supplied separately to every operation rather than stored, so tests can
// swap in a recording mock per call without needing a second Controller.
func NewController(platform Platform) *Controller {
	return &Controller{Platform: platform}
}

// Dvfs implements the dvfs(from, to, mode) entry point of §4.8: it plans
// the clock source for the from->to transition and then either performs a
// plain switch, a training pass, or a training pass immediately followed
// by a switch, depending on mode.
func (c *Controller) Dvfs(bus Bus, from, to *TimingTable, mode DVFSMode) {
	plannedClkSrc := c.PlanClockSource(from, to)

	switch mode {
	case ModeSwitch:
		c.FreqChange(bus, from, to, 0, plannedClkSrc, 0)
	case ModeTrain:
		c.TrainFreq(bus, from, to, false, plannedClkSrc)
	case ModeTrainSwitch:
		c.TrainFreq(bus, from, to, true, plannedClkSrc)
	}
}

// TrainDRAM is the bootloader entry point (§4.8): it resolves the fuse's
// DRAM ID to a timing table set, determines whether DRAM is already
// running at a trained rate, and if not, trains every rate above the boot
// entry in turn before switching to the final one.
//
// Boot rate is recognized by comparing the live CLK_SOURCE_EMC against
// each table's clk_src_emc; if it matches a later entry than the boot
// (index 0) one, DRAM is assumed already trained by a previous stage and
// TrainDRAM returns without touching anything. If it matches no entry,
// TrainDRAM reports through Platform.FatalError and returns the error.
func (c *Controller) TrainDRAM(bus Bus) error {
	dramID := c.Platform.FuseGetDRAMID()

	tables, err := SelectTables(dramID)
	if err != nil {
		c.Platform.FatalError("%s", err)
		return err
	}

	c.Tables = tables

	carClkSourceEMC := c.Platform.CarRead(CarClkSourceEMC)

	bootIndex := -1
	for i := range tables {
		if carClkSourceEMC == tables[i].ClkSrcEMC {
			bootIndex = i
			break
		}
	}

	if bootIndex < 0 {
		err := fmt.Errorf("mtc: current CLK_SOURCE_EMC does not match any table entry for DRAM id %d", dramID)
		c.Platform.FatalError("%s", err)
		return err
	}

	if bootIndex != 0 {
		return nil
	}

	for i := 1; i < len(tables); i++ {
		c.Dvfs(bus, &tables[0], &tables[i], ModeTrain)
	}

	c.Dvfs(bus, &tables[0], &tables[len(tables)-1], ModeSwitch)
	c.ActiveTimingTableIdx = len(tables) - 1

	return nil
}

// PeriodicCompensation is the optional runtime pass a caller may drive on a
// timer after TrainDRAM: one DQSOSC sample folded into the active table's
// moving average. Trimmer adjustments derived from the updated averages
// apply on the next FreqChange when the drift exceeds the tree margin. It
// returns the largest observed drift in taps, or 0 when the active table
// has periodic training disabled.
func (c *Controller) PeriodicCompensation(bus Bus) int32 {
	if len(c.Tables) == 0 {
		return 0
	}

	t := &c.Tables[c.ActiveTimingTableIdx]
	if !t.PeriodicTraining {
		return 0
	}

	return c.PeriodicCompensationHandler(bus, PeriodicTrainingSequence, t.DramDevNum, t, t)
}
