// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "testing"

func TestMovavgWeightedUpdateLaw(t *testing.T) {
	// new = (sample*100 + old*weight) / (weight + 1), fixed-point scaled.
	got := movavgWeightedUpdate(1000, 20, 4)

	if want := int32((20*100 + 1000*4) / 5); got != want {
		t.Fatalf("movavgWeightedUpdate(1000, 20, 4) = %d, want %d", got, want)
	}
}

func TestMovavgWeightedUpdateZeroWeightTakesSample(t *testing.T) {
	got := movavgWeightedUpdate(1000, 20, 0)

	if got != 20*MovavgPrecisionFactor {
		t.Fatalf("movavgWeightedUpdate with zero weight = %d, want fixed-point sample %d",
			got, 20*MovavgPrecisionFactor)
	}
}

func TestEMAResetAfterDVFSSequence(t *testing.T) {
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	src := &TimingTable{RateKHz: 800000, PeriodicTraining: false, RunClocks: 0x20}
	dst := &TimingTable{RateKHz: 800000, PtfvDvfsSamples: 4, PtfvConfigCtrl: 0}

	for i := range dst.PtfvDqsoscMovavg {
		dst.PtfvDqsoscMovavg[i] = 12345
	}

	c.PeriodicCompensationHandler(bus, DVFSSequence, 1, src, dst)

	// devNum 1 samples quadrants 0-3. The mock's EMC_MRR reads 0, clamped
	// to 1, so every sample is 1e6*512/(800*2*1) = 320000; the four PT1
	// samples average back to that, fixed-point scaled. Quadrants 4-7 are
	// not sampled and keep the zero the reset left in them.
	for i, v := range dst.PtfvDqsoscMovavg {
		want := int32(0)
		if i < 4 {
			want = 320000 * MovavgPrecisionFactor
		}
		if v != want {
			t.Fatalf("PtfvDqsoscMovavg[%d] = %d, want reset-then-averaged %d", i, v, want)
		}
	}
}

func TestEMACarryOverScalesBySampleCount(t *testing.T) {
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	src := &TimingTable{RateKHz: 800000, PeriodicTraining: true}
	dst := &TimingTable{RateKHz: 1600000, PtfvDvfsSamples: 4, PtfvConfigCtrl: 1}

	for i := range src.PtfvDqsoscMovavg {
		src.PtfvDqsoscMovavg[i] = 100
	}

	c.PeriodicCompensationHandler(bus, DVFSSequence, 0, src, dst)

	// devNum 0 means no quadrant is re-sampled, so the carried-over sum
	// (source EMA * dvfs sample count) survives the call untouched.
	for i, v := range dst.PtfvDqsoscMovavg {
		if v != 400 {
			t.Fatalf("PtfvDqsoscMovavg[%d] = %d, want carried-over 100*4", i, v)
		}
	}
}

func TestPeriodicTrainingNoTrimWritesBelowMargin(t *testing.T) {
	// With current == trained clock-tree state, a runtime compensation pass
	// must leave every trimmer register untouched.
	bus := newRecordingBus()
	c := NewController(newFakePlatform(0))

	src := &TimingTable{RateKHz: 1600000, RunClocks: 0x20}
	dst := &TimingTable{RateKHz: 1600000, TreeMargin: 1 << 20, PtfvMovavgWeight: 50}

	copy(dst.CurrentDRAMClktree[:], dst.TrainedDRAMClktree[:])

	c.PeriodicCompensationHandler(bus, PeriodicTrainingSequence, 2, src, dst)

	for _, addr := range trimRegsAddr {
		if n := bus.countWrites(addr); n != 0 {
			t.Fatalf("trimmer register %#x written %d times by a below-margin pass, want 0", addr, n)
		}
	}

	for _, addr := range trimPerChRegsAddr {
		if n := bus.countWrites(addr); n != 0 {
			t.Fatalf("BRLSHFT register %#x written %d times by a below-margin pass, want 0", addr, n)
		}
	}
}

func TestActualOscClocksBreakpoints(t *testing.T) {
	cases := []struct {
		in   uint32
		want uint32
	}{
		{0x10, 0x100},
		{0x3f, 0x3f0},
		{0x40, 2048},
		{0x7f, 2048},
		{0x80, 4096},
		{0xbf, 4096},
		{0xc0, 8192},
		{0xff, 8192},
	}

	for _, c := range cases {
		if got := actualOscClocks(c.in); got != c.want {
			t.Errorf("actualOscClocks(%#x) = %d, want %d", c.in, got, c.want)
		}
	}
}
