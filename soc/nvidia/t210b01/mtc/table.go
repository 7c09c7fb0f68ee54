// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// Training status bitmask values (TimingTable.NeedsTraining and
// FreqChange's trainingMask).
const (
	TrainCA         uint16 = 1 << 0
	TrainCAVref     uint16 = 1 << 1
	TrainQUSE       uint16 = 1 << 2
	TrainQUSEVref   uint16 = 1 << 3
	TrainWrite      uint16 = 1 << 4
	TrainWriteVref  uint16 = 1 << 5
	TrainRead       uint16 = 1 << 6
	TrainReadVref   uint16 = 1 << 7
	TrainSecondRank uint16 = 1 << 8
	TrainBitLevel   uint16 = 1 << 9
)

// DRAM types the sequencer branches on. Only LPDDR4 is ever exercised on
// Mariko; the others exist so the control-flow shared with the Erista
// sibling core is visible, per spec.md §1.
type DRAMType int

const (
	DRAMTypeLPDDR4 DRAMType = iota
	DRAMTypeLPDDR2
	DRAMTypeLPDDR3
	DRAMTypeDDR3
)

// Register-address list lengths. These arrays are the schema of spec.md
// §3.2: every TimingTable carries exactly this many values per array
// field, in exactly this order.
const (
	NumBurstRegs       = 228
	NumBurstPerChRegs  = 8
	NumVrefPerChRegs   = 4
	NumTrainingModRegs = 20
	NumTrimRegs        = 138
	NumTrimPerChRegs   = 10
	NumBurstMCRegs     = 33
	NumLaScaleRegs     = 24
)

// burstRegsAddr is the fixed address list backing TimingTable.BurstRegs.
// The offsets are the B01 EMC burst-register map, transcribed in order.
var burstRegsAddr = [NumBurstRegs]uint32{
	EMCBase + 0x02c, EMCBase + 0x030, EMCBase + 0x590, EMCBase + 0x580, EMCBase + 0x0c0, EMCBase + 0x034,
	EMCBase + 0x038, EMCBase + 0x03c, EMCBase + 0x040, EMCBase + 0x044, EMCBase + 0x048, EMCBase + 0x144,
	EMCBase + 0x0ac, EMCBase + 0x0bc, EMCBase + 0x0f8, EMCBase + 0x0fc, EMCBase + 0x108, EMCBase + 0x10c,
	EMCBase + 0x5c0, EMCBase + 0x04c, EMCBase + 0x050, EMCBase + 0x054, EMCBase + 0x058, EMCBase + 0x0b8,
	EMCBase + 0x4e0, EMCBase + 0x05c, EMCBase + 0x498, EMCBase + 0x494, EMCBase + 0x2d0, EMCBase + 0x490,
	EMCBase + 0x48c, EMCBase + 0x060, EMCBase + 0x568, EMCBase + 0x468, EMCBase + 0x46c, EMCBase + 0x14c,
	EMCBase + 0x4a4, EMCBase + 0x150, EMCBase + 0x154, EMCBase + 0x56c, EMCBase + 0x064, EMCBase + 0x068,
	EMCBase + 0x06c, EMCBase + 0x2cc, EMCBase + 0x2d8, EMCBase + 0x2d4, EMCBase + 0x070, EMCBase + 0x074,
	EMCBase + 0x3dc, EMCBase + 0x078, EMCBase + 0x07c, EMCBase + 0x080, EMCBase + 0x084, EMCBase + 0x088,
	EMCBase + 0x08c, EMCBase + 0x11c, EMCBase + 0x118, EMCBase + 0x0b4, EMCBase + 0x090, EMCBase + 0x3e4,
	EMCBase + 0x094, EMCBase + 0x158, EMCBase + 0x15c, EMCBase + 0x098, EMCBase + 0x09c, EMCBase + 0x0a0,
	EMCBase + 0x0a4, EMCBase + 0x4a8, EMCBase + 0x0a8, EMCBase + 0x0b0, EMCBase + 0x104, EMCBase + 0x584,
	EMCBase + 0x2bc, EMCBase + 0x2c0, EMCBase + 0xcf4, EMCBase + 0x55c, EMCBase + 0x554, EMCBase + 0x610,
	EMCBase + 0x614, EMCBase + 0x630, EMCBase + 0x634, EMCBase + 0x4ac, EMCBase + 0x670, EMCBase + 0x674,
	EMCBase + 0x680, EMCBase + 0x684, EMCBase + 0x688, EMCBase + 0x68c, EMCBase + 0x690, EMCBase + 0x694,
	EMCBase + 0x6a0, EMCBase + 0x6a4, EMCBase + 0x6a8, EMCBase + 0x6ac, EMCBase + 0x6b0, EMCBase + 0x6b4,
	EMCBase + 0xc00, EMCBase + 0xc04, EMCBase + 0xc08, EMCBase + 0xc0c, EMCBase + 0xc10, EMCBase + 0xc20,
	EMCBase + 0xc24, EMCBase + 0xc28, EMCBase + 0x80c, EMCBase + 0x81c, EMCBase + 0x82c, EMCBase + 0x83c,
	EMCBase + 0x84c, EMCBase + 0x85c, EMCBase + 0x86c, EMCBase + 0x87c, EMCBase + 0x88c, EMCBase + 0x89c,
	EMCBase + 0x8ac, EMCBase + 0x8bc, EMCBase + 0x90c, EMCBase + 0x91c, EMCBase + 0x92c, EMCBase + 0x93c,
	EMCBase + 0x94c, EMCBase + 0x95c, EMCBase + 0x96c, EMCBase + 0x97c, EMCBase + 0x980, EMCBase + 0x984,
	EMCBase + 0x988, EMCBase + 0x98c, EMCBase + 0x990, EMCBase + 0x994, EMCBase + 0x998, EMCBase + 0x99c,
	EMCBase + 0x9a0, EMCBase + 0x9a4, EMCBase + 0x9a8, EMCBase + 0x9ac, EMCBase + 0x9b0, EMCBase + 0x9b4,
	EMCBase + 0x9b8, EMCBase + 0x9bc, EMCBase + 0x480, EMCBase + 0x310, EMCBase + 0x314, EMCBase + 0x100,
	EMCBase + 0x2e0, EMCBase + 0x2e4, EMCBase + 0x0c8, EMCBase + 0x0c4, EMCBase + 0x464, EMCBase + 0x5e4,
	EMCBase + 0x5e8, EMCBase + 0x5f8, EMCBase + 0xc78, EMCBase + 0xc44, EMCBase + 0x00c, EMCBase + 0x560,
	EMCBase + 0x3e0, EMCBase + 0x564, EMCBase + 0x594, EMCBase + 0x598, EMCBase + 0x5a4, EMCBase + 0x5a8,
	EMCBase + 0xc40, EMCBase + 0xc54, EMCBase + 0xc50, EMCBase + 0xc5c, EMCBase + 0xc58, EMCBase + 0xc60,
	EMCBase + 0xc64, EMCBase + 0xc34, EMCBase + 0xc38, EMCBase + 0xcf0, EMCBase + 0x330, EMCBase + 0x318,
	EMCBase + 0x334, EMCBase + 0x31c, EMCBase + 0xc3c, EMCBase + 0x49c, EMCBase + 0x720, EMCBase + 0x724,
	EMCBase + 0x728, EMCBase + 0x72c, EMCBase + 0x730, EMCBase + 0x734, EMCBase + 0x5f0, EMCBase + 0x740,
	EMCBase + 0x744, EMCBase + 0x748, EMCBase + 0x74c, EMCBase + 0x750, EMCBase + 0x754, EMCBase + 0x760,
	EMCBase + 0x770, EMCBase + 0x774, EMCBase + 0x778, EMCBase + 0x780, EMCBase + 0x784, EMCBase + 0x788,
	EMCBase + 0x110, EMCBase + 0x114, EMCBase + 0x3b4, EMCBase + 0x460, EMCBase + 0x3bc, EMCBase + 0x3c4,
	EMCBase + 0x3f4, EMCBase + 0x3f8, EMCBase + 0x4c4, EMCBase + 0x3fc, EMCBase + 0x400, EMCBase + 0xe04,
	EMCBase + 0xe44, EMCBase + 0xe6c, EMCBase + 0xe30, EMCBase + 0xe34, EMCBase + 0xe38, EMCBase + 0xe3c,
	EMCBase + 0xe0c, EMCBase + 0xe10, EMCBase + 0xe14, EMCBase + 0xed0, EMCBase + 0xe24, EMCBase + 0xe28,
	EMCBase + 0xe2c, EMCBase + 0xe18, EMCBase + 0xe1c, EMCBase + 0xe20, EMCBase + 0xe5c, EMCBase + 0x4d0,
}

// Named indices into burstRegsAddr for the registers the sequencer reads
// back out of the table by name (the struct view of the union-aliased
// storage).
const (
	idxEmcCfg                = 154 // EMC_BASE + 0x00c
	idxEmcRefresh            =  46 // EMC_BASE + 0x070
	idxEmcTrefbw             =  69 // EMC_BASE + 0x0b0
	idxEmcMrsWaitCnt         = 146 // EMC_BASE + 0x0c8
	idxEmcCfgDigDll          =  72 // EMC_BASE + 0x2bc
	idxEmcZcalInterval       = 144 // EMC_BASE + 0x2e0
	idxEmcZcalWaitCnt        = 145 // EMC_BASE + 0x2e4
	idxEmcFbioCfg7           =  71 // EMC_BASE + 0x584
	idxEmcPmacroDllCfg1      =  97 // EMC_BASE + 0xc04
	idxEmcPmacroVttgenCtrl1  = 170 // EMC_BASE + 0xc38
)

// burstPerChRegsAddr mirrors the per-channel MRW10-13 list: mode-register
// writes issued once per channel aperture, and the training results (§4.4
// step 24) stored back per channel.
var burstPerChRegsAddr = [NumBurstPerChRegs]uint32{
	EMC0Base + EmcMrw10, EMC1Base + EmcMrw10,
	EMC0Base + EmcMrw11, EMC1Base + EmcMrw11,
	EMC0Base + EmcMrw12, EMC1Base + EmcMrw12,
	EMC0Base + EmcMrw13, EMC1Base + EmcMrw13,
}

// burstPerChVrefSource maps each per-channel MRW slot to the TRAINING_OPT
// vref result register its value is rebuilt from after a vref training
// pass: MRW10/11 carry the DQS input-buffer vref per rank, MRW12/13 the DQ
// output-buffer vref per rank.
var burstPerChVrefSource = [NumBurstPerChRegs]uint32{
	EMCBase + EmcTrainingOptDqsIbVrefRank0, EMCBase + EmcTrainingOptDqsIbVrefRank0,
	EMCBase + EmcTrainingOptDqsIbVrefRank1, EMCBase + EmcTrainingOptDqsIbVrefRank1,
	EMCBase + EmcTrainingOptDqObVrefRank0, EMCBase + EmcTrainingOptDqObVrefRank0,
	EMCBase + EmcTrainingOptDqObVrefRank1, EMCBase + EmcTrainingOptDqObVrefRank1,
}

// burstPerChModReg maps each per-channel MRW slot to its save_restore mod
// reg: [0..3] adjust the output-buffer (write) vrefs in MRW12/13, [4..7]
// the input-buffer (read) vrefs in MRW10/11; [8..11] are reserved for the
// CA vrefs.
var burstPerChModReg = [NumBurstPerChRegs]int{4, 5, 6, 7, 0, 1, 2, 3}

var vrefPerChRegsAddr = [NumVrefPerChRegs]uint32{
	EMC0Base + EmcTrainingOptDqsIbVrefRank0, EMC1Base + EmcTrainingOptDqsIbVrefRank0,
	EMC0Base + EmcTrainingOptDqsIbVrefRank1, EMC1Base + EmcTrainingOptDqsIbVrefRank1,
}

var trainingModRegsAddr = [NumTrainingModRegs]uint32{
	EMC0Base + EmcTrainingRwOffsetIbByte0, EMC1Base + EmcTrainingRwOffsetIbByte0,
	EMC0Base + EmcTrainingRwOffsetIbByte1, EMC1Base + EmcTrainingRwOffsetIbByte1,
	EMC0Base + EmcTrainingRwOffsetIbByte2, EMC1Base + EmcTrainingRwOffsetIbByte2,
	EMC0Base + EmcTrainingRwOffsetIbByte3, EMC1Base + EmcTrainingRwOffsetIbByte3,
	EMC0Base + EmcTrainingRwOffsetIbMisc, EMC1Base + EmcTrainingRwOffsetIbMisc,
	EMC0Base + EmcTrainingRwOffsetObByte0, EMC1Base + EmcTrainingRwOffsetObByte0,
	EMC0Base + EmcTrainingRwOffsetObByte1, EMC1Base + EmcTrainingRwOffsetObByte1,
	EMC0Base + EmcTrainingRwOffsetObByte2, EMC1Base + EmcTrainingRwOffsetObByte2,
	EMC0Base + EmcTrainingRwOffsetObByte3, EMC1Base + EmcTrainingRwOffsetObByte3,
	EMC0Base + EmcTrainingRwOffsetObMisc, EMC1Base + EmcTrainingRwOffsetObMisc,
}

// trimPerChRegsAddr: the BRLSHFT coarse trimmers, one aperture each.
var trimPerChRegsAddr = [NumTrimPerChRegs]uint32{
	EMC0Base + EmcCmdBrlshft0, EMC1Base + EmcCmdBrlshft1,
	EMC0Base + EmcDataBrlshft0, EMC1Base + EmcDataBrlshft0,
	EMC0Base + EmcDataBrlshft1, EMC1Base + EmcDataBrlshft1,
	EMC0Base + EmcQuseBrlshft0, EMC1Base + EmcQuseBrlshft1,
	EMC0Base + EmcQuseBrlshft2, EMC1Base + EmcQuseBrlshft3,
}

// Indices into TrimPerChRegs for the DATA_BRLSHFT words the trimmer
// compensation reconstructs its coarse shifts from.
const (
	idxEmc0DataBrlshft0 = 2
	idxEmc1DataBrlshft0 = 3
	idxEmc0DataBrlshft1 = 4
	idxEmc1DataBrlshft1 = 5
)

// trimRegsAddr: the DDLL fine trimmers. The OB short-DQ clusters (rank0
// bytes at 0x800, rank0 cmd at 0x880, rank1 bytes at 0x900, three words
// per sub-unit) are the ones periodic compensation rewrites.
var trimRegsAddr = [NumTrimRegs]uint32{
	EMCBase + 0x640, EMCBase + 0x644, EMCBase + 0x648, EMCBase + 0x64c, EMCBase + 0x650, EMCBase + 0x654,
	EMCBase + 0x658, EMCBase + 0x65c, EMCBase + 0xa00, EMCBase + 0xa04, EMCBase + 0xa08, EMCBase + 0xa10,
	EMCBase + 0xa14, EMCBase + 0xa18, EMCBase + 0xa20, EMCBase + 0xa24, EMCBase + 0xa28, EMCBase + 0xa30,
	EMCBase + 0xa34, EMCBase + 0xa38, EMCBase + 0xa40, EMCBase + 0xa44, EMCBase + 0xa48, EMCBase + 0xa50,
	EMCBase + 0xa54, EMCBase + 0xa58, EMCBase + 0xa60, EMCBase + 0xa64, EMCBase + 0xa68, EMCBase + 0xa70,
	EMCBase + 0xa74, EMCBase + 0xa78, EMCBase + 0xa80, EMCBase + 0xa84, EMCBase + 0xa88, EMCBase + 0xa90,
	EMCBase + 0xa94, EMCBase + 0xa98, EMCBase + 0xaa0, EMCBase + 0xaa4, EMCBase + 0xaa8, EMCBase + 0xab0,
	EMCBase + 0xab4, EMCBase + 0xab8, EMCBase + 0xac0, EMCBase + 0xac4, EMCBase + 0xac8, EMCBase + 0xad0,
	EMCBase + 0xad4, EMCBase + 0xad8, EMCBase + 0xae0, EMCBase + 0xae4, EMCBase + 0xae8, EMCBase + 0xaf0,
	EMCBase + 0xaf4, EMCBase + 0xaf8, EMCBase + 0xbe0, EMCBase + 0xbe4, EMCBase + 0xbe8, EMCBase + 0xbec,
	EMCBase + 0x600, EMCBase + 0x604, EMCBase + 0x608, EMCBase + 0x60c, EMCBase + 0x610, EMCBase + 0x614,
	EMCBase + 0x620, EMCBase + 0x624, EMCBase + 0x628, EMCBase + 0x62c, EMCBase + 0x800, EMCBase + 0x804,
	EMCBase + 0x808, EMCBase + 0x810, EMCBase + 0x814, EMCBase + 0x818, EMCBase + 0x820, EMCBase + 0x824,
	EMCBase + 0x828, EMCBase + 0x830, EMCBase + 0x834, EMCBase + 0x838, EMCBase + 0x840, EMCBase + 0x844,
	EMCBase + 0x848, EMCBase + 0x850, EMCBase + 0x854, EMCBase + 0x858, EMCBase + 0x860, EMCBase + 0x864,
	EMCBase + 0x868, EMCBase + 0x870, EMCBase + 0x874, EMCBase + 0x878, EMCBase + 0x880, EMCBase + 0x884,
	EMCBase + 0x888, EMCBase + 0x890, EMCBase + 0x894, EMCBase + 0x898, EMCBase + 0x8a0, EMCBase + 0x8a4,
	EMCBase + 0x8a8, EMCBase + 0x8b0, EMCBase + 0x8b4, EMCBase + 0x8b8, EMCBase + 0x900, EMCBase + 0x904,
	EMCBase + 0x908, EMCBase + 0x910, EMCBase + 0x914, EMCBase + 0x918, EMCBase + 0x920, EMCBase + 0x924,
	EMCBase + 0x928, EMCBase + 0x930, EMCBase + 0x934, EMCBase + 0x938, EMCBase + 0x940, EMCBase + 0x944,
	EMCBase + 0x948, EMCBase + 0x950, EMCBase + 0x954, EMCBase + 0x958, EMCBase + 0x960, EMCBase + 0x964,
	EMCBase + 0x968, EMCBase + 0x970, EMCBase + 0x974, EMCBase + 0x978, EMCBase + 0x6c0, EMCBase + 0x6c4,
	EMCBase + 0x6c8, EMCBase + 0x6cc, EMCBase + 0x6d0, EMCBase + 0x6d4, EMCBase + 0x6d8, EMCBase + 0x6dc,
}

// trimObShortDQBase returns the index into trimRegsAddr (and TrimRegs) of
// the first of the three packed words for an OB short-DQ (rank, byte)
// sub-unit.
func trimObShortDQBase(rank, byteN int) int {
	if rank == 0 {
		return 70 + 3*byteN
	}
	return 106 + 3*byteN
}

var burstMCRegsAddr = [NumBurstMCRegs]uint32{
	MCBase + McEmemArbCfg, MCBase + McEmemArbOutstandingReq,
	MCBase + McEmemArbRefpbHpCtrl, MCBase + McEmemArbRefpbBankCtrl,
	MCBase + McEmemArbTimingRcd, MCBase + McEmemArbTimingRp,
	MCBase + McEmemArbTimingRc, MCBase + McEmemArbTimingRas,
	MCBase + McEmemArbTimingFaw, MCBase + McEmemArbTimingRrd,
	MCBase + McEmemArbTimingRap2Pre, MCBase + McEmemArbTimingWap2Pre,
	MCBase + McEmemArbTimingR2R, MCBase + McEmemArbTimingW2W,
	MCBase + McEmemArbTimingR2W, MCBase + McEmemArbTimingCcdmw,
	MCBase + McEmemArbTimingW2R, MCBase + McEmemArbTimingRfcpb,
	MCBase + McEmemArbDaTurns, MCBase + McEmemArbDaCovers,
	MCBase + McEmemArbMisc0, MCBase + McEmemArbMisc1, MCBase + McEmemArbMisc2,
	MCBase + McEmemArbRing1Throttle, MCBase + McEmemArbDhystCtrl,
	MCBase + McEmemArbDhystTimeoutUtil0, MCBase + McEmemArbDhystTimeoutUtil1,
	MCBase + McEmemArbDhystTimeoutUtil2, MCBase + McEmemArbDhystTimeoutUtil3,
	MCBase + McEmemArbDhystTimeoutUtil4, MCBase + McEmemArbDhystTimeoutUtil5,
	MCBase + McEmemArbDhystTimeoutUtil6, MCBase + McEmemArbDhystTimeoutUtil7,
}

var laScaleRegsAddr = [NumLaScaleRegs]uint32{
	MCBase + McMllMpcorerPtsaRate, MCBase + McFtopPtsaRate,
	MCBase + McPtsaGrantDecrement,
	MCBase + McLatencyAllowanceXusb0, MCBase + McLatencyAllowanceXusb1,
	MCBase + McLatencyAllowanceTsec0,
	MCBase + McLatencyAllowanceSdmmca0, MCBase + McLatencyAllowanceSdmmcaa0,
	MCBase + McLatencyAllowanceSdmmc0, MCBase + McLatencyAllowanceSdmmcab0,
	MCBase + McLatencyAllowancePpcs0, MCBase + McLatencyAllowancePpcs1,
	MCBase + McLatencyAllowanceMpcore0,
	MCBase + McLatencyAllowanceHc0, MCBase + McLatencyAllowanceHc1,
	MCBase + McLatencyAllowanceAvpc0,
	MCBase + McLatencyAllowanceGpu0, MCBase + McLatencyAllowanceGpu20,
	MCBase + McLatencyAllowanceNvenc0, MCBase + McLatencyAllowanceNvdec0,
	MCBase + McLatencyAllowanceVic0, MCBase + McLatencyAllowanceVi20,
	MCBase + McLatencyAllowanceIsp20, MCBase + McLatencyAllowanceIsp21,
}

// ClockTreeDim indexes the per-channel x per-device x per-sub-unit
// clock-tree snapshots (c{0,1}d{0,1}u{0,1} in spec.md §3.1).
type ClockTreeDim struct {
	Channel int // 0 or 1
	Device  int // 0 or 1
	Unit    int // 0 or 1
}

// Index returns the flat [0,8) index for a ClockTreeDim triple.
func (d ClockTreeDim) Index() int {
	return d.Channel<<2 | d.Device<<1 | d.Unit
}

// TimingTable is a single DVFS operating point: a versioned POD describing
// the EMC/MC/PLL configuration, DRAM mode-register values and training
// state for one rate. See spec.md §3.1 for the full field catalogue; this
// type carries every field that catalogue names.
type TimingTable struct {
	RateKHz   uint32
	ClkSrcEMC uint32
	DRAMType  DRAMType

	// Training status.
	NeedsTraining    uint16
	Trained          bool
	TrainingPattern  int
	PeriodicTraining bool

	// Clock-tree snapshots and EMA accumulators, 8 entries each
	// (c{0,1}d{0,1}u{0,1}).
	CurrentDRAMClktree [8]int32
	TrainedDRAMClktree [8]int32
	PtfvDqsoscMovavg   [8]int32

	// EMA tuning.
	PtfvDvfsSamples  uint32
	PtfvWriteSamples uint32
	PtfvMovavgWeight uint32
	PtfvConfigCtrl   uint32 // bit 0: reuse previous EMA across frequencies

	RunClocks  uint32 // osc-count selector
	TreeMargin int32  // drift threshold in taps

	// Burst register groups (the union-aliased arrays, §3.1/§3.2/§9).
	BurstRegs           [NumBurstRegs]uint32
	ShadowRegsCATrain   [NumBurstRegs]uint32
	ShadowRegsRdWrTrain [NumBurstRegs]uint32
	BurstRegPerCh       [NumBurstPerChRegs]uint32
	TrimRegs            [NumTrimRegs]uint32
	TrimPerChRegs       [NumTrimPerChRegs]uint32
	VrefPerChRegs       [NumVrefPerChRegs]uint32
	TrainingModRegs     [NumTrainingModRegs]uint32
	BurstMCRegs         [NumBurstMCRegs]uint32
	LaScaleRegs         [NumLaScaleRegs]uint32

	// DRAM timing scalars.
	TRP       uint32
	TRFC      uint32
	TPdex     uint32
	TFCLpddr4 uint32
	RL        uint32

	// Misc knobs (§3.1 "Misc knobs").
	EmcMRW                    uint32
	EmcMRW2                   uint32
	EmcMRW3                   uint32
	EmcMRW4                   uint32
	EmcCfg2                   uint32
	EmcSelDpdCtrl             uint32
	EmcFdpdCtrlCmdNoRamp      uint32
	AutoCalConfig             [8]uint32
	PllMSSCfg                 uint32
	PllMSSCtrl1               uint32
	PllMSSCtrl2               uint32
	PllMBSSCfg                uint32
	PllMBSSCtrl1              uint32
	PllMBSSCtrl2              uint32
	DivM                      uint32
	DivN                      uint32
	DivP                      uint32
	PllEnSSC                  uint32
	MiscCfg0                  uint32
	MiscCfg1                  uint32
	MiscCfg2                  uint32
	ClkChangeDelay            uint32
	PipeClkDelay              uint32
	RampWait                  uint32
	SrcClockDiv               uint32
	VttVddaDrvEn              bool
	SaveRestoreModRegs        [12]uint32
	SaveRestoreClkStopPD      uint32
	OptCCShortZcal            bool
	OptShortZcal              bool
	OptDoSwQrst               bool
	CyaAllowRefCC             bool
	CyaIssuePcRef             bool
	RefB4SrefEn               bool
	TZQCalLpddr4              uint32
	ZQCalBeforeCCCutoff       uint32
	MinMRSWait                uint32
	ZqOpCCShortZcal           uint32
	ZqOpCCLongZcal            uint32
	ZcalWaitTimePsCCShortZcal uint32
	ZcalWaitTimePsCCLongZcal  uint32
	EmcTrainingReadCtrlMisc   uint32
	DramDevNum                int
}

// BurstRegAt returns the value of the i-th burst register, reading through
// the same backing array the named-index accessors use — the Go analogue
// of the reference union's array view.
func (t *TimingTable) BurstRegAt(i int) uint32 { return t.BurstRegs[i] }

// SetBurstRegAt writes the i-th burst register.
func (t *TimingTable) SetBurstRegAt(i int, v uint32) { t.BurstRegs[i] = v }

// EmcCfgValue is the named-field view of BurstRegs[idxEmcCfg].
func (t *TimingTable) EmcCfgValue() uint32 { return t.BurstRegs[idxEmcCfg] }

// EmcMrsWaitCntValue is the named-field view of BurstRegs[idxEmcMrsWaitCnt].
func (t *TimingTable) EmcMrsWaitCntValue() uint32 { return t.BurstRegs[idxEmcMrsWaitCnt] }

// FbioCfg7Value is the named-field view of BurstRegs[idxEmcFbioCfg7], the
// channel-enable word the sequencer filters every per-channel write on.
func (t *TimingTable) FbioCfg7Value() uint32 { return t.BurstRegs[idxEmcFbioCfg7] }

// SharedZQResistor reports whether this table's channels share a single ZQ
// calibration resistor, encoded (per spec.md Open Question 4) as bit 31 of
// the ZCAL_WAIT_CNT burst register.
func (t *TimingTable) SharedZQResistor() bool {
	return t.BurstRegs[idxEmcZcalWaitCnt]>>31&1 == 1
}
