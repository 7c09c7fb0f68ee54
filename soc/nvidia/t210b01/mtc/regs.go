// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// Register apertures. EMC0/EMC1 mirror a per-channel subset of the EMC
// register file; channel-enable comes from EMC_FBIO_CFG7.
const (
	MCBase   = 0x70019000
	EMCBase  = 0x7001b000
	EMC0Base = 0x7001e000
	EMC1Base = 0x7001f000
)

// EMC register offsets, relative to EMCBase (or EMC0Base/EMC1Base for the
// per-channel mirrors). The burst-register map itself lives in
// burstRegsAddr (table.go); the names here are the registers the sequencer
// manipulates directly.
const (
	EmcIntStatus     = 0x000
	EmcDbg           = 0x008
	EmcCfg           = 0x00c
	EmcAdrCfg        = 0x010
	EmcPin           = 0x024
	EmcTimingControl = 0x028
	EmcRC            = 0x02c
	EmcRFC           = 0x030
	EmcRefresh       = 0x070
	EmcTrefbw        = 0x0b0

	EmcMrsWaitCnt2 = 0x0c4
	EmcMrsWaitCnt  = 0x0c8
	EmcRef         = 0x0d4
	EmcSelfRef     = 0x0e0
	EmcMrw         = 0x0e8
	EmcMrr         = 0x0ec
	EmcFbioCfg5    = 0x104
	EmcMpc         = 0x128
	EmcMrw2        = 0x134
	EmcMrw3        = 0x138
	EmcMrw4        = 0x13c

	EmcAutoCalConfig               = 0x2a4
	EmcStallThenExeAfterClkchange  = 0x2a8
	EmcEmcStatus                   = 0x2b4
	EmcCfg2                        = 0x2b8
	EmcCfgDigDll                   = 0x2bc
	EmcCfgDigDllPeriod             = 0x2c0
	EmcDigDllStatus                = 0x2c4
	EmcZcalInterval                = 0x2e0
	EmcZcalWaitCnt                 = 0x2e4
	EmcZqCal                       = 0x2ec
	EmcXM2CompPadCtrl              = 0x30c
	EmcPmacroBrickCtrlRfu1         = 0x330
	EmcPmacroBrickCtrlRfu2         = 0x334

	EmcCcfifoData = 0x3b8
	EmcCcfifoAddr = 0x3c0
	EmcSelDpdCtrl = 0x3d8
	EmcIssueQrst  = 0x3e8

	EmcAutoCalConfig2 = 0x458
	EmcAutoCalConfig3 = 0x45c
	EmcFdpdCtrlCmdNoRamp = 0x4d8
	EmcSwitchBackCtrl    = 0x4e4

	// LPDDR4 extended mode-register writes. MRW6-9/14/15 live in the main
	// aperture; MRW10-13 are per-channel (EMC0/EMC1) registers.
	EmcMrw5  = 0x4a0
	EmcMrw6  = 0x4a4
	EmcMrw7  = 0x4a8
	EmcMrw8  = 0x4ac
	EmcMrw9  = 0x4b0
	EmcMrw10 = 0x4b4
	EmcMrw11 = 0x4b8
	EmcMrw12 = 0x4bc
	EmcMrw13 = 0x4c0
	EmcMrw14 = 0x4c4
	EmcMrw15 = 0x4c8

	EmcAutoCalConfig7 = 0x574
	EmcFbioCfg7       = 0x584
	EmcDataBrlshft0   = 0x588
	EmcDataBrlshft1   = 0x58c
	EmcCfgPipeClk     = 0x5ac
	EmcAutoCalConfig4 = 0x5b0
	EmcAutoCalConfig5 = 0x5b4
	EmcCmdBrlshft0    = 0x5c4
	EmcCmdBrlshft1    = 0x5c8
	EmcCmdBrlshft2    = 0x5cc
	EmcCmdBrlshft3    = 0x5d0
	EmcQuseBrlshft0   = 0x5d4
	EmcQuseBrlshft1   = 0x5d8
	EmcQuseBrlshft2   = 0x5dc
	EmcQuseBrlshft3   = 0x5e0
	EmcDllCfg0        = 0x5e4
	EmcDllCfg1        = 0x5e8
	EmcAutoCalConfig6 = 0x5f4
	EmcAutoCalConfig8 = 0x5fc

	EmcTrDvfs = 0x778

	EmcPmacroDllCfg0          = 0xc00
	EmcPmacroDllCfg1          = 0xc04
	EmcPmacroDllCfg2          = 0xc08
	EmcPmacroDataPadTxCtrl    = 0xc20
	EmcPmacroCmdPadTxCtrl     = 0xc28
	EmcPmacroCfgPmGlobal0     = 0xc30
	EmcPmacroVttgenCtrl0      = 0xc34
	EmcPmacroVttgenCtrl1      = 0xc38
	EmcPmacroVttgenCtrl2      = 0xc3c
	EmcPmacroAutocalCfgCommon = 0xc78
	EmcPmacroTrainingCtrl0    = 0xcf8
	EmcPmacroTrainingCtrl1    = 0xcfc

	EmcTrainingCmd          = 0xe00
	EmcTrainingCtrl         = 0xe04
	EmcTrainingStatus       = 0xe08
	EmcTrainingQuseCtrlMisc = 0xe14
	EmcTrainingSettle       = 0xe44
	EmcTrainingMpc          = 0xe5c

	EmcTrainingOptDqsIbVrefRank0 = 0xe48
	EmcTrainingOptDqsIbVrefRank1 = 0xe4c
	EmcTrainingOptDqObVrefRank0  = 0xe50
	EmcTrainingOptDqObVrefRank1  = 0xe54
	EmcTrainingOptCaVrefRank0    = 0xe58
	EmcTrainingOptCaVrefRank1    = 0xe60

	EmcTrainingRwOffsetIbByte0 = 0xe74
	EmcTrainingRwOffsetIbByte1 = 0xe78
	EmcTrainingRwOffsetIbByte2 = 0xe7c
	EmcTrainingRwOffsetIbByte3 = 0xe80
	EmcTrainingRwOffsetIbMisc  = 0xe84
	EmcTrainingRwOffsetObByte0 = 0xe88
	EmcTrainingRwOffsetObByte1 = 0xe8c
	EmcTrainingRwOffsetObByte2 = 0xe90
	EmcTrainingRwOffsetObByte3 = 0xe94
	EmcTrainingRwOffsetObMisc  = 0xe98

	EmcTrainingPatramDQ   = 0xeb0
	EmcTrainingPatramDMI  = 0xeb4
	EmcTrainingPatramCtrl = 0xeb8
)

// EMC bit fields the sequencer tests or masks.
const (
	EmcCfgDigDllCfgDllEn = 1 << 0

	EmcDigDllStatusDllLockB01 = 1 << 15

	EmcCfgDynSelfRef    = 1 << 28
	EmcCfgDramAcpd      = 1 << 29
	EmcCfgDramClkstopSR = 1 << 30
	EmcCfgDramClkstopPD = 1 << 31

	EmcSelDpdCtrlClkSelDpdEn   = 1 << 2
	EmcSelDpdCtrlCaSelDpdEn    = 1 << 3
	EmcSelDpdCtrlResetSelDpdEn = 1 << 4
	EmcSelDpdCtrlOdtSelDpdEn   = 1 << 5
	EmcSelDpdCtrlDataSelDpdEn  = 1 << 8

	EmcFbioCfg7Ch0Enable = 1 << 1
	EmcFbioCfg7Ch1Enable = 1 << 2

	EmcZqCalCmd        = 1 << 0
	EmcZqCalLong       = 1 << 4
	EmcZqCalDevSelShift = 30

	EmcIntStatusClkchangeComplete = 1 << 4

	EmcEmcStatusTimingUpdateStalled = 1 << 23

	EmcDbgWriteMuxActive = 1 << 1

	EmcDbgCfgSwapShift        = 26
	EmcDbgCfgSwapAssemblyOnly = 1
	EmcDbgCfgSwapActiveOnly   = 2
)

// MC register offsets, relative to MCBase.
const (
	McEmemAdrCfg = 0x054

	McEmemArbCfg            = 0x090
	McEmemArbOutstandingReq = 0x094
	McEmemArbTimingRcd      = 0x098
	McEmemArbTimingRp       = 0x09c
	McEmemArbTimingRc       = 0x0a0
	McEmemArbTimingRas      = 0x0a4
	McEmemArbTimingFaw      = 0x0a8
	McEmemArbTimingRrd      = 0x0ac
	McEmemArbTimingRap2Pre  = 0x0b0
	McEmemArbTimingWap2Pre  = 0x0b4
	McEmemArbTimingR2R      = 0x0b8
	McEmemArbTimingW2W      = 0x0bc
	McEmemArbTimingR2W      = 0x0c0
	McEmemArbTimingW2R      = 0x0c4
	McEmemArbMisc2          = 0x0c8
	McEmemArbDaTurns        = 0x0d0
	McEmemArbDaCovers       = 0x0d4
	McEmemArbMisc0          = 0x0d8
	McEmemArbMisc1          = 0x0dc
	McEmemArbRing1Throttle  = 0x0e0

	McLatencyAllowanceAvpc0   = 0x2e4
	McLatencyAllowanceHc0     = 0x310
	McLatencyAllowanceHc1     = 0x314
	McLatencyAllowanceMpcore0 = 0x320
	McLatencyAllowanceNvenc0  = 0x328
	McLatencyAllowancePpcs0   = 0x344
	McLatencyAllowancePpcs1   = 0x348
	McLatencyAllowanceIsp20   = 0x370
	McLatencyAllowanceIsp21   = 0x374
	McLatencyAllowanceXusb0   = 0x37c
	McLatencyAllowanceXusb1   = 0x380
	McLatencyAllowanceTsec0   = 0x390
	McLatencyAllowanceVic0    = 0x394
	McLatencyAllowanceVi20    = 0x398
	McLatencyAllowanceGpu0    = 0x3ac
	McLatencyAllowanceSdmmca0  = 0x3b8
	McLatencyAllowanceSdmmcaa0 = 0x3bc
	McLatencyAllowanceSdmmc0   = 0x3c0
	McLatencyAllowanceSdmmcab0 = 0x3c4
	McLatencyAllowanceNvdec0   = 0x3d8
	McLatencyAllowanceGpu20    = 0x3e8

	McMllMpcorerPtsaRate = 0x44c
	McFtopPtsaRate       = 0x50c

	McEmemArbTimingRfcpb  = 0x6c4
	McEmemArbTimingCcdmw  = 0x6c8
	McEmemArbRefpbHpCtrl  = 0x6f0
	McEmemArbRefpbBankCtrl = 0x6f4

	McPtsaGrantDecrement = 0x960

	McEmemArbDhystCtrl         = 0xbcc
	McEmemArbDhystTimeoutUtil0 = 0xbd0
	McEmemArbDhystTimeoutUtil1 = 0xbd4
	McEmemArbDhystTimeoutUtil2 = 0xbd8
	McEmemArbDhystTimeoutUtil3 = 0xbdc
	McEmemArbDhystTimeoutUtil4 = 0xbe0
	McEmemArbDhystTimeoutUtil5 = 0xbe4
	McEmemArbDhystTimeoutUtil6 = 0xbe8
	McEmemArbDhystTimeoutUtil7 = 0xbec
)

// CAR (clock-and-reset) offsets touched by the PLL programmer and clock
// source planner. The CAR aperture itself is owned by the external CAR
// driver (Platform.CarRead/CarWrite); this core only knows the offsets and
// bit layouts of the registers relevant to EMC clocking.
const (
	CarPLLMBase  = 0x0090
	CarPLLMMisc1 = 0x0098
	CarPLLMMisc2 = 0x009c

	CarPLLMBBase  = 0x05e8
	CarPLLMBMisc1 = 0x05ec

	CarPLLMSSCfg   = 0x0100
	CarPLLMSSCtrl1 = 0x0104
	CarPLLMSSCtrl2 = 0x0108

	CarPLLMBSSCfg   = 0x05f0
	CarPLLMBSSCtrl1 = 0x05f4
	CarPLLMBSSCtrl2 = 0x05f8

	CarClkSourceEMC     = 0x019c
	CarClkSourceEMCDLL  = 0x0664
	CarClkSourceEMCSafe = 0x066c

	// PLL_BASE bit positions, shared by PLLM and PLLMB.
	PLLBaseEnable    = 30
	PLLBaseLock      = 27
	PLLBaseDivPShift = 20
	PLLBaseDivPMask  = 0x7
	PLLBaseDivNShift = 8
	PLLBaseDivNMask  = 0xff
	PLLBaseDivMShift = 0
	PLLBaseDivMMask  = 0xff

	PLLMMisc2LockEnable = 0x10

	// EMC_2X_CLK_SRC field of CLK_SOURCE_EMC (CAR).
	ClkSourceEMC2xClkSrcShift = 29
	ClkSourceEMC2xClkSrcMask  = 0x7
	ClkSourceEMCDivShift      = 0
	ClkSourceEMCDivMask       = 0xff
)

// EMC_2X_CLK_SRC encodings (mirrors the timing table's clk_src_emc field).
const (
	ClkSrcPLLMOUT0  = 0
	ClkSrcPLLCOUT0  = 1
	ClkSrcPLLPOUT0  = 2
	ClkSrcCLKM      = 3
	ClkSrcPLLMUD    = 4
	ClkSrcPLLMBUD   = 5
	ClkSrcPLLMBOUT0 = 6
	ClkSrcPLLPUD    = 7
)
