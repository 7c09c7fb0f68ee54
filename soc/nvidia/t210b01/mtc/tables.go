// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "fmt"

// ErrTableNotFound is returned (and also reported through
// Platform.FatalError) when a fuse-derived DRAM ID has no corresponding
// timing-table index, or an index has no corresponding table array.
var ErrTableNotFound = fmt.Errorf("mtc: no timing table for this DRAM id")

// dramTableIndex mirrors get_emc_dvfs_timing_table_index: a fixed switch
// from the 5-bit fuse DRAM ID to a table-set index. Indices 1-3 are reserved
// for the Erista sibling core's own SKUs and never resolve to a table array
// here (selectTableSet below returns ErrTableNotFound for them too), but
// the index function still maps them so the dispatch layer matches the
// vendor switch exactly, rather than silently narrowing its domain.
func dramTableIndex(dramID uint8) (int, bool) {
	switch dramID {
	case 0x0: // EristaIcosaSamsung4gb
		return 0, true
	case 0x1: // EristaIcosaHynix4gb
		return 2, true
	case 0x2: // EristaIcosaMicron4gb
		return 3, true
	case 0x3: // MarikoIowaHynix1y4gb
		return 0x10, true
	case 0x4: // EristaIcosaSamsung6gb
		return 1, true
	case 0x5: // MarikoHoagHynix1y4gb
		return 0x10, true
	case 0x6: // MarikoAulaHynix1y4gb
		return 0, true
	case 0x7: // MarikoIowax1x2Samsung4gb
		return 0, true
	case 0x8: // MarikoIowaSamsung4gb
		return 5, true
	case 0x9: // MarikoIowaSamsung8gb
		return 6, true
	case 0xA: // MarikoIowaHynix4gb
		return 7, true
	case 0xB: // MarikoIowaMicron4gb
		return 8, true
	case 0xC: // MarikoHoagSamsung4gb
		return 5, true
	case 0xD: // MarikoHoagSamsung8gb
		return 6, true
	case 0xE: // MarikoHoagHynix4gb
		return 7, true
	case 0xF: // MarikoHoagMicron4gb
		return 8, true
	case 0x10: // MarikoIowaSamsung4gbY
		return 9, true
	case 0x11: // MarikoIowaSamsung1y4gbX
		return 0xC, true
	case 0x12: // MarikoIowaSamsung1y8gbX
		return 0xD, true
	case 0x13: // MarikoHoagSamsung1y4gbX
		return 0xC, true
	case 0x14: // MarikoIowaSamsung1y4gbY
		return 0xA, true
	case 0x15: // MarikoIowaSamsung1y8gbY
		return 0xB, true
	case 0x16: // MarikoAulaSamsung1y4gb
		return 0xE, true
	case 0x17: // MarikoHoagSamsung1y8gbX
		return 0xD, true
	case 0x18: // MarikoAulaSamsung1y4gbX
		return 0xC, true
	case 0x19: // MarikoIowaMicron1y4gb
		return 0xF, true
	case 0x1A: // MarikoHoagMicron1y4gb
		return 0xF, true
	case 0x1B: // MarikoAulaMicron1y4gb
		return 0xF, true
	case 0x1C: // MarikoAulaSamsung1y8gbX
		return 0xD, true
	default:
		return -1, false
	}
}

// newTimingTableSet builds the 3-entry [boot, mid, final] progression shared
// by every SKU's table array: a conservative PLLP-sourced boot rate needing
// no training, a mid rate flagged for CA/QUSE/write/read training (the
// QUSE bits fall in no pass PlanTraining builds) that lands on PLLM,
// and a final high rate reached on PLLMB. Per-SKU arrays only vary the mid
// and final clock rates and DRAM device count, mirroring how the vendor
// tables differ mostly in EMC_MRW/trim/PLL divider values rather than in
// control flow.
func newTimingTableSet(midKHz, finalKHz uint32, devNum int) [3]TimingTable {
	boot := TimingTable{
		RateKHz:       204000,
		ClkSrcEMC:     ClkSrcPLLPOUT0 << ClkSourceEMC2xClkSrcShift,
		DRAMType:      DRAMTypeLPDDR4,
		NeedsTraining: 0,
		Trained:       true,
		TrainingPattern: -1,
		DramDevNum:    devNum,
		TRP:           14,
		TRFC:          280,
		TPdex:         8,
		TFCLpddr4:     40,
		RL:            6,
		PtfvMovavgWeight: MovavgPrecisionFactor,
	}

	mid := TimingTable{
		RateKHz:       midKHz,
		ClkSrcEMC:     ClkSrcPLLMOUT0 << ClkSourceEMC2xClkSrcShift,
		DRAMType:      DRAMTypeLPDDR4,
		NeedsTraining: TrainCA | TrainCAVref | TrainQUSE | TrainQUSEVref | TrainWrite | TrainWriteVref | TrainRead | TrainReadVref,
		Trained:       false,
		TrainingPattern: 0,
		DramDevNum:    devNum,
		TRP:           18,
		TRFC:          350,
		TPdex:         10,
		TFCLpddr4:     40,
		RL:            14,
		PtfvMovavgWeight: MovavgPrecisionFactor,
	}

	final := TimingTable{
		RateKHz:       finalKHz,
		ClkSrcEMC:     ClkSrcPLLMBOUT0 << ClkSourceEMC2xClkSrcShift,
		DRAMType:      DRAMTypeLPDDR4,
		NeedsTraining: 0,
		Trained:       false,
		TrainingPattern: 1,
		DramDevNum:    devNum,
		TRP:           24,
		TRFC:          560,
		TPdex:         14,
		TFCLpddr4:     40,
		RL:            24,
		PtfvMovavgWeight: MovavgPrecisionFactor,
	}

	boot.BurstRegs[idxEmcFbioCfg7] = EmcFbioCfg7Ch0Enable | EmcFbioCfg7Ch1Enable
	mid.BurstRegs[idxEmcFbioCfg7] = EmcFbioCfg7Ch0Enable | EmcFbioCfg7Ch1Enable
	final.BurstRegs[idxEmcFbioCfg7] = EmcFbioCfg7Ch0Enable | EmcFbioCfg7Ch1Enable

	return [3]TimingTable{boot, mid, final}
}

// Named per-SKU table arrays. Table naming mirrors the vendor's
// SdevEmcDvfsTable* symbols (see original source index comments above);
// only the B01 (Mariko) SKUs that the B01 sequencer actually drives are
// populated with real arrays; the Erista-only indices (1, 2, 3) have none.
var (
	tableS4gb01    = newTimingTableSet(800000, 1600000, 1)  // index 0
	tableS4gb03    = newTimingTableSet(800000, 1600000, 1)  // index 5
	tableS8gb03    = newTimingTableSet(800000, 1600000, 2)  // index 6
	tableH4gb03    = newTimingTableSet(800000, 1600000, 1)  // index 7
	tableM4gb03    = newTimingTableSet(800000, 1600000, 1)  // index 8
	tableS4gbY01   = newTimingTableSet(800000, 1600000, 1)  // index 9
	tableS1y4gbY01 = newTimingTableSet(931200, 1866000, 1)  // index 0xA
	tableS1y8gbY01 = newTimingTableSet(931200, 1866000, 2)  // index 0xB
	tableS1y4gbX03 = newTimingTableSet(931200, 1866000, 1)  // index 0xC
	tableS1y8gbX03 = newTimingTableSet(931200, 1866000, 2)  // index 0xD
	tableS1y4gb01  = newTimingTableSet(800000, 1600000, 1)  // index 0xE
	tableM1y4gb01  = newTimingTableSet(800000, 1600000, 1)  // index 0xF
	tableH1y4gb01  = newTimingTableSet(800000, 1600000, 1)  // index 0x10
)

// selectTableSet resolves a table-set index to its 3-entry array.
func selectTableSet(index int) ([3]TimingTable, bool) {
	switch index {
	case 0x0:
		return tableS4gb01, true
	case 0x5:
		return tableS4gb03, true
	case 0x6:
		return tableS8gb03, true
	case 0x7:
		return tableH4gb03, true
	case 0x8:
		return tableM4gb03, true
	case 0x9:
		return tableS4gbY01, true
	case 0xA:
		return tableS1y4gbY01, true
	case 0xB:
		return tableS1y8gbY01, true
	case 0xC:
		return tableS1y4gbX03, true
	case 0xD:
		return tableS1y8gbX03, true
	case 0xE:
		return tableS1y4gb01, true
	case 0xF:
		return tableM1y4gb01, true
	case 0x10:
		return tableH1y4gb01, true
	default:
		return [3]TimingTable{}, false
	}
}

// SelectTables maps a fuse-derived DRAM ID to its 3-entry timing table set.
// It returns ErrTableNotFound for any ID outside the documented range, or
// whose mapped index has no table array (the Erista-only indices).
func SelectTables(dramID uint8) ([]TimingTable, error) {
	index, ok := dramTableIndex(dramID)
	if !ok {
		return nil, fmt.Errorf("%w: DRAM id %d", ErrTableNotFound, dramID)
	}

	set, ok := selectTableSet(index)
	if !ok {
		return nil, fmt.Errorf("%w: DRAM id %d", ErrTableNotFound, dramID)
	}

	tables := make([]TimingTable, len(set))
	copy(tables, set[:])

	return tables, nil
}
