// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "testing"

func TestFSPAlternationAcrossTwoFreqChanges(t *testing.T) {
	// A plain (non-training) FreqChange call toggles FSPForNextFreq once;
	// training calls toggle it a second time at phase 30 and net to no
	// change, so this invariant is exercised with trainingMask == 0.
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	src := TimingTable{RateKHz: 800000, ClkSrcEMC: ClkSrcPLLMOUT0}
	dst := TimingTable{RateKHz: 1600000, ClkSrcEMC: ClkSrcPLLMBOUT0}

	before := c.FSPForNextFreq

	c.FreqChange(bus, &src, &dst, 0, dst.ClkSrcEMC, 0)
	afterFirst := c.FSPForNextFreq

	if afterFirst == before {
		t.Fatalf("expected FSPForNextFreq to toggle on a plain FreqChange call")
	}

	c.FreqChange(bus, &src, &dst, 0, dst.ClkSrcEMC, 0)
	afterSecond := c.FSPForNextFreq

	if afterSecond != before {
		t.Fatalf("expected two FreqChange calls to restore FSPForNextFreq to its original state")
	}
}

func TestTrainedIdempotence(t *testing.T) {
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	src := TimingTable{RateKHz: 800000, ClkSrcEMC: ClkSrcPLLMOUT0}
	dst := TimingTable{RateKHz: 1600000, ClkSrcEMC: ClkSrcPLLMBOUT0, NeedsTraining: TrainCA, TrainingPattern: -1}

	c.TrainFreq(bus, &src, &dst, false, dst.ClkSrcEMC)

	if !dst.Trained {
		t.Fatalf("expected dst.Trained == true after TrainFreq")
	}

	writesBefore := len(bus.trace)

	c.TrainFreq(bus, &src, &dst, false, dst.ClkSrcEMC)

	if len(bus.trace) != writesBefore {
		t.Fatalf("second TrainFreq call on an already-trained table issued %d new writes, want 0",
			len(bus.trace)-writesBefore)
	}
}

func TestTrainDRAMHappyPath(t *testing.T) {
	// Boot at the index-0 rate for DRAM id 0x8 (MarikoIowaSamsung4gb) and
	// run the full train-then-switch sequence against the recording mock.
	bus := newRecordingBus()
	platform := newFakePlatform(0x8)

	tables, err := SelectTables(0x8)
	if err != nil {
		t.Fatalf("SelectTables: %v", err)
	}

	platform.CarWrite(CarClkSourceEMC, tables[0].ClkSrcEMC)

	c := NewController(platform)

	if err := c.TrainDRAM(bus); err != nil {
		t.Fatalf("TrainDRAM returned an error: %v", err)
	}

	// Pattern RAM is loaded exactly once: 256 DQ beats, 256 DMI nibbles,
	// 256 CTRL strobes with the arm bit set.
	if n := bus.countWrites(EMCBase + EmcTrainingPatramCtrl); n != PatternLen {
		t.Fatalf("EMC_TRAINING_PATRAM_CTRL written %d times, want %d", n, PatternLen)
	}
	if n := bus.countWrites(EMCBase + EmcTrainingPatramDQ); n != PatternLen {
		t.Fatalf("EMC_TRAINING_PATRAM_DQ written %d times, want %d", n, PatternLen)
	}

	for _, w := range bus.trace {
		if w.addr == EMCBase+EmcTrainingPatramCtrl && w.val&0x80000000 == 0 {
			t.Fatalf("PATRAM_CTRL write %#x missing the arm bit", w.val)
		}
	}

	if !c.WroteTrainingPattern {
		t.Fatalf("expected WroteTrainingPattern set after TrainDRAM")
	}

	if !c.Tables[1].Trained {
		t.Fatalf("expected the mid-rate table marked trained after TrainDRAM")
	}

	// The final CLK_SOURCE_EMC word drives the highest-rate entry; its
	// clock source is already a PLLMB word, which substitutePLL passes
	// through unchanged.
	if got := platform.CarRead(CarClkSourceEMC); got != tables[2].ClkSrcEMC {
		t.Fatalf("final CLK_SOURCE_EMC = %#x, want %#x", got, tables[2].ClkSrcEMC)
	}

	if c.ActiveTimingTableIdx != 2 {
		t.Fatalf("ActiveTimingTableIdx = %d, want 2", c.ActiveTimingTableIdx)
	}
}

func TestTrainDRAMSkipsWhenAlreadyAtHighRate(t *testing.T) {
	bus := newRecordingBus()
	platform := newFakePlatform(0x8) // MarikoIowaSamsung4gb -> table-set index 5

	tables, err := SelectTables(0x8)
	if err != nil {
		t.Fatalf("SelectTables: %v", err)
	}

	platform.CarWrite(CarClkSourceEMC, tables[1].ClkSrcEMC)

	c := NewController(platform)

	if err := c.TrainDRAM(bus); err != nil {
		t.Fatalf("TrainDRAM returned an error: %v", err)
	}

	if len(bus.trace) != 0 {
		t.Fatalf("expected no MMIO writes when boot rate is already non-zero index, got %d", len(bus.trace))
	}
}

func TestTrainDRAMUnmappedDRAMIDReportsFatal(t *testing.T) {
	bus := newRecordingBus()
	platform := newFakePlatform(0x1D)

	c := NewController(platform)

	if err := c.TrainDRAM(bus); err == nil {
		t.Fatalf("expected TrainDRAM to return an error for an unmapped DRAM id")
	}

	if len(platform.fatalCalls) != 1 {
		t.Fatalf("expected exactly one FatalError call, got %d", len(platform.fatalCalls))
	}
}

func TestRefreshShiftScalesStagedRefresh(t *testing.T) {
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	var src, dst TimingTable
	src.RateKHz = 800000
	dst.RateKHz = 1600000
	dst.BurstRegs[idxEmcRefresh] = 0x400

	c.FreqChange(bus, &src, &dst, 0, dst.ClkSrcEMC, 1)

	found := false
	for _, w := range bus.trace {
		if w.addr == burstRegsAddr[idxEmcRefresh] && w.val == 0x200 {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected EMC_REFRESH staged as 0x400>>1 with refreshShift 1")
	}
}
