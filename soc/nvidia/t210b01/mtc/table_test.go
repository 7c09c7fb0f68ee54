// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "testing"

func TestAddressArrayLengthParity(t *testing.T) {
	tables := tableS4gb03

	for _, tbl := range tables {
		if len(tbl.BurstRegs) != len(burstRegsAddr) {
			t.Fatalf("BurstRegs length %d != burstRegsAddr length %d", len(tbl.BurstRegs), len(burstRegsAddr))
		}
		if len(tbl.BurstRegPerCh) != len(burstPerChRegsAddr) {
			t.Fatalf("BurstRegPerCh length mismatch")
		}
		if len(tbl.TrimRegs) != len(trimRegsAddr) {
			t.Fatalf("TrimRegs length mismatch")
		}
	}
}

func TestUnionAliasedAccess(t *testing.T) {
	var tbl TimingTable

	tbl.SetBurstRegAt(idxEmcCfg, 0xdeadbeef)

	if got := tbl.EmcCfgValue(); got != 0xdeadbeef {
		t.Fatalf("EmcCfgValue() = %#x, want %#x", got, uint32(0xdeadbeef))
	}

	if got := tbl.BurstRegAt(idxEmcCfg); got != 0xdeadbeef {
		t.Fatalf("BurstRegAt(idxEmcCfg) = %#x, want %#x", got, uint32(0xdeadbeef))
	}
}

func TestRateMonotonic(t *testing.T) {
	for name, set := range map[string][3]TimingTable{
		"S4gb01":    tableS4gb01,
		"S4gb03":    tableS4gb03,
		"S1y4gbY01": tableS1y4gbY01,
	} {
		for i := 1; i < len(set); i++ {
			if set[i].RateKHz <= set[i-1].RateKHz {
				t.Fatalf("%s: entry %d rate %d not greater than entry %d rate %d",
					name, i, set[i].RateKHz, i-1, set[i-1].RateKHz)
			}
		}
	}
}

func TestSharedZQResistor(t *testing.T) {
	var tbl TimingTable

	if tbl.SharedZQResistor() {
		t.Fatalf("zero-value table should not report a shared ZQ resistor")
	}

	tbl.SetBurstRegAt(idxEmcZcalWaitCnt, 1<<31)

	if !tbl.SharedZQResistor() {
		t.Fatalf("expected SharedZQResistor() once bit 31 is set")
	}
}
