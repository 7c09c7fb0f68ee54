// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "testing"

func TestApplyPeriodicCompensationTrimmerRecoversBrlshftBelowMargin(t *testing.T) {
	// With no clock-tree drift the trimmer must reproduce the coarse
	// shifts already in the table: every intermediate tap equals its
	// byte's shift<<6, the normalization subtracts exactly that, and the
	// reassembled DATA_BRLSHFT word carries the original 3-bit shifts.
	c := NewController(newFakePlatform(0))

	var tbl TimingTable
	tbl.RateKHz = 1600000
	tbl.TreeMargin = 10

	const shifts = 2 | 2<<3 | 2<<6 | 2<<9 // shift 2 for bytes 0-3
	tbl.TrimPerChRegs[idxEmc0DataBrlshft0] = shifts

	got := c.applyPeriodicCompensationTrimmer(&tbl, EMC0Base+EmcDataBrlshft0)

	if got != shifts {
		t.Fatalf("DATA_BRLSHFT_0 = %#x, want original shifts %#x", got, uint32(shifts))
	}

	// Normalization leaves the rank-0 intermediates at zero.
	for i := 0; i < 72; i++ {
		if c.PeriodicTimerCompensationIntermediates[i] != 0 {
			t.Fatalf("intermediate[%d] = %d after normalization, want 0",
				i, c.PeriodicTimerCompensationIntermediates[i])
		}
	}
}

func TestApplyPeriodicCompensationTrimmerAddsDriftOverMargin(t *testing.T) {
	c := NewController(newFakePlatform(0))

	var tbl TimingTable
	tbl.RateKHz = 1600000
	tbl.TreeMargin = 1

	base := c.applyPeriodicCompensationTrimmer(&tbl, EMCBase+0x800)

	tbl.CurrentDRAMClktree[0] = 1000
	tbl.TrainedDRAMClktree[0] = 0

	drifted := c.applyPeriodicCompensationTrimmer(&tbl, EMCBase+0x800)

	if drifted == base {
		t.Fatalf("expected drift beyond tree_margin to perturb the rank0 byte0 trimmer word")
	}
}

func TestVrefSaveAndModify(t *testing.T) {
	// A vref training pass rebuilds the per-channel MRW values from the
	// hardware-chosen vref adjusted by the matching save_restore mod reg:
	// the mod reg's top bit selects subtraction of its low 7 bits.
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	var dst TimingTable
	dst.SaveRestoreModRegs[0] = 0x80000003

	bus.mem[EMCBase+EmcTrainingOptDqObVrefRank0] = 0x25

	st := &freqChangeState{trainingMask: TrainWrite | TrainWriteVref, training: true}
	c.phase24ReadTrainingResults(bus, &dst, st)

	// Slot 4 is emc0_mrw12, the channel-0 output-buffer vref, paired with
	// mod reg 0.
	if got := dst.BurstRegPerCh[4] & 0xff; got != 0x25-3 {
		t.Fatalf("emc0_mrw12 low byte = %#x, want %#x", got, 0x25-3)
	}

	bus.mem[EMCBase+EmcTrainingOptDqObVrefRank0] = 0x25
	dst.SaveRestoreModRegs[0] = 0x00000003

	c.phase24ReadTrainingResults(bus, &dst, st)

	if got := dst.BurstRegPerCh[4] & 0xff; got != 0x25+3 {
		t.Fatalf("emc0_mrw12 low byte = %#x, want %#x (MSB clear adds)", got, 0x25+3)
	}
}
