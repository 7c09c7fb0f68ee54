// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// rampRateThresholdKHz is the rate threshold (kHz) the power ramp
// sequences branch on.
const rampRateThresholdKHz = 407997

// emcRead/emcWrite access the primary EMC aperture by register offset.
func emcRead(bus Bus, off uint32) uint32 { return bus.Read(EMCBase + off) }

func emcWrite(bus Bus, off uint32, val uint32) { bus.Write(EMCBase+off, val) }

func mcWrite(bus Bus, off uint32, val uint32) { bus.Write(MCBase+off, val) }

// emcWritePerCh routes a write to one of the per-channel apertures,
// dropping it when the addressed channel is disabled in fbioCfg7.
func emcWritePerCh(bus Bus, val uint32, addr uint32, fbioCfg7 uint32) {
	switch addr & 0xfffff000 {
	case EMC0Base:
		if fbioCfg7&EmcFbioCfg7Ch0Enable != 0 {
			bus.Write(addr, val)
		}
	case EMC1Base:
		if fbioCfg7&EmcFbioCfg7Ch1Enable != 0 {
			bus.Write(addr, val)
		}
	}
}

// activeWrite bypasses the shadow bank for one write: EMC_DBG.WRITE_MUX is
// flipped to ACTIVE so the value lands in the live register immediately,
// then the previous EMC_DBG is restored. Ordinary writes land in the
// shadow copy and only take effect at the next EMC_TIMING_UPDATE.
func activeWrite(bus Bus, off uint32, val uint32) {
	dbg := emcRead(bus, EmcDbg)
	emcWrite(bus, EmcDbg, dbg|EmcDbgWriteMuxActive)
	emcWrite(bus, off, val)
	emcWrite(bus, EmcDbg, dbg)
}

// emcStatusUpdateTimeout bounds every status-bit busy-wait: 1000
// iterations of 1us each, per enabled channel.
const emcStatusUpdateTimeout = 1000

// waitForUpdate busy-waits for the masked bits of the per-channel EMC
// status register at statusOff, on whichever channels chanCfg enables, to
// reach updated. It returns a per-channel UpdateTimeout bitmask for
// channels that never got there.
func (c *Controller) waitForUpdate(bus Bus, statusOff uint32, bitMask uint32, updated bool, chanCfg uint32) UpdateTimeout {
	var result UpdateTimeout

	check := func(present bool, base uint32, timeoutBit UpdateTimeout) {
		if !present {
			return
		}
		for i := 0; i < emcStatusUpdateTimeout; i++ {
			if ((bus.Read(base+statusOff) & bitMask) != 0) == updated {
				return
			}
			c.Platform.Udelay(1)
		}
		result |= timeoutBit
	}

	check(chanCfg&EmcFbioCfg7Ch0Enable != 0, EMC0Base, UpdateTimeoutChannel0)
	check(chanCfg&EmcFbioCfg7Ch1Enable != 0, EMC1Base, UpdateTimeoutChannel1)

	return result
}

// emcTimingUpdate triggers EMC_TIMING_UPDATE and waits for the hardware to
// clear the TIMING_UPDATE_STALLED status bit.
func (c *Controller) emcTimingUpdate(bus Bus, fbioCfg7 uint32) UpdateTimeout {
	emcWrite(bus, EmcTimingControl, 1)

	return c.waitForUpdate(bus, EmcEmcStatus, EmcEmcStatusTimingUpdateStalled, false, fbioCfg7)
}

// freqChangeState carries the per-call working state FreqChange threads
// through its 30 phases, standing in for the reference sequencer's large
// set of local variables (dvfs_power_ramp_down/up results, the latched FSP
// banks, the compensate_trimmer_applicable flag, and so on).
type freqChangeState struct {
	trainingMask   uint16
	training       bool
	refreshShift   int
	compensateTrim bool
	zcalEnCC       bool
	fspWr, fspOp   uint32
	fspCatr        uint32
	rampDownDelay  uint32
	rampUpDelay    uint32
	zqWaitLong     uint32
	zqWaitShort    uint32
	fbioCfg7       uint32
	targetClkSrc   uint32
}

// FreqChange is the 30-phase frequency-change sequencer (§4.4), the core
// operation this package exists to implement. A trainingMask of 0 performs
// a plain DVFS switch to dst; any other mask runs a training pass: the
// pipeline switches to dst, trains, then returns to src and saves results
// into dst.
//
// Failure semantics follow the reference design: the only failure mode is
// the phase-23 clock-change-complete timeout, which is treated as a no-op
// return rather than unwound — there is nothing meaningful to roll back to,
// and the only callers (the training loop and the final switch) tolerate a
// DRAM left running at the source rate.
//
// refreshShift right-shifts the staged EMC_REFRESH/EMC_TREFBW values
// (fast-refresh scaling); values above 2 are treated as 0, like the
// reference. Every caller in this package passes 0; see DESIGN.md Open
// Question 1.
func (c *Controller) FreqChange(bus Bus, src, dst *TimingTable, trainingMask uint16, targetClkSrc uint32, refreshShift int) {
	if refreshShift > 2 || refreshShift < 0 {
		refreshShift = 0
	}

	st := &freqChangeState{
		trainingMask: trainingMask,
		training:     trainingMask != 0,
		refreshShift: refreshShift,
		fbioCfg7:     dst.FbioCfg7Value(),
		targetClkSrc: targetClkSrc,
	}

	// opt_zcal_en_cc: always true on LPDDR4, otherwise only when the
	// destination enables a ZCAL interval the source had off.
	st.zcalEnCC = dst.DRAMType == DRAMTypeLPDDR4 ||
		(dst.BurstRegAt(idxEmcZcalInterval) != 0 && src.BurstRegAt(idxEmcZcalInterval) == 0)

	c.phase1Quiesce(bus, dst, st)

	if !st.training && src.PeriodicTraining {
		c.phase2PeriodicCompensation(bus, src, dst, st)
	}

	c.phase3DLLPrelock(bus, src, dst, st)
	c.phase4StageAutocal(bus, dst, st)
	c.phase5SelectZQCALTiming(dst, st)
	c.phase6TrainingCKEGate(bus, dst, st)
	c.phase7PickFSPBanks(bus, dst, st)
	c.phase8WriteShadowBank(bus, src, dst, st)
	c.phase9WritePerChannel(bus, dst, st)
	c.phase10WriteTrimmers(bus, dst, st)

	fifo := NewCCFIFO(bus)

	if dst.MiscCfg2&0x10 == 0 {
		st.rampDownDelay = c.phase11RampDown(fifo, src, dst)
	}
	c.phase12ClockChangeBarrier(fifo, dst, st)
	st.rampUpDelay = c.phase13RampUp(fifo, src, dst, st)
	c.phase14CKEBringup(fifo, dst)
	c.phase15ZQLatch(fifo, dst, st)

	if st.training {
		c.phase16TrainingKickoff(fifo, src, dst, st)
	}

	if dst.DRAMType != DRAMTypeLPDDR4 {
		c.phase17ExitSelfRefresh(fifo)
		c.phase18SendDestinationMRWs(fifo, dst)
		c.phase19NonLPDDR4ZQCAL(fifo, dst, st)
	}

	c.phase20IssueRef(fifo, dst, st)
	c.phase21RestoreZCALInterval(bus, src, dst, st)
	c.phase22RestorePipeClk(bus, dst)

	timeout := c.phase23TriggerClockChange(bus, src, dst, st, targetClkSrc)
	fifo.Commit()
	if !timeout.None() {
		return
	}

	if st.training {
		c.phase24ReadTrainingResults(bus, dst, st)
	}

	if dst.RateKHz > src.RateKHz && !st.training {
		c.phase25MCUpdown(bus, dst, st)
	}

	c.phase26RestoreZCAL(bus, dst, st)
	c.phase27RestoreEmcCfg(bus, dst)

	if st.training && dst.DRAMType == DRAMTypeLPDDR4 {
		c.phase28RewindShadowState(bus, src)
	}

	c.phase29PowerFixWorkaround(bus, dst)
	c.phase30ReenableAutocal(bus, src, dst, st)
}

func (c *Controller) phase1Quiesce(bus Bus, dst *TimingTable, st *freqChangeState) {
	// Disable the digital DLL and wait for the disable to settle.
	emcWrite(bus, EmcCfgDigDll, emcRead(bus, EmcCfgDigDll)&^uint32(EmcCfgDigDllCfgDllEn))
	c.emcTimingUpdate(bus, st.fbioCfg7)
	c.waitForUpdate(bus, EmcCfgDigDll, EmcCfgDigDllCfgDllEn, false, st.fbioCfg7)

	// Disable autocal, leaving the stop bits armed.
	emcWrite(bus, EmcAutoCalConfig, (dst.AutoCalConfig[0]&0x7ffff9ff)|0x600)
	emcRead(bus, EmcAutoCalConfig)

	// Disable the dynamic power features through the shadow bypass.
	cfg := dst.BurstRegAt(idxEmcCfg)
	cfg &^= EmcCfgDynSelfRef | EmcCfgDramAcpd | EmcCfgDramClkstopSR | EmcCfgDramClkstopPD
	activeWrite(bus, EmcCfg, cfg)

	selDpd := dst.EmcSelDpdCtrl
	selDpd &^= EmcSelDpdCtrlClkSelDpdEn | EmcSelDpdCtrlCaSelDpdEn |
		EmcSelDpdCtrlResetSelDpdEn | EmcSelDpdCtrlOdtSelDpdEn | EmcSelDpdCtrlDataSelDpdEn
	activeWrite(bus, EmcSelDpdCtrl, selDpd)
}

func (c *Controller) phase2PeriodicCompensation(bus Bus, src, dst *TimingTable, st *freqChangeState) {
	copy(dst.CurrentDRAMClktree[:], dst.TrainedDRAMClktree[:])

	adel := c.PeriodicCompensationHandler(bus, DVFSSequence, dst.DramDevNum, src, dst)
	if adel > dst.TreeMargin {
		st.compensateTrim = true
	}
}

func (c *Controller) phase3DLLPrelock(bus Bus, src, dst *TimingTable, st *freqChangeState) {
	if dst.BurstRegAt(idxEmcCfgDigDll)&EmcCfgDigDllCfgDllEn == 0 {
		emcWrite(bus, EmcCfgDigDll, emcRead(bus, EmcCfgDigDll)&^uint32(EmcCfgDigDllCfgDllEn))
		return
	}

	activeWrite(bus, EmcPmacroDllCfg1, dst.BurstRegAt(idxEmcPmacroDllCfg1))

	c.carSet(CarClkSourceEMCDLL, 0)

	emcWrite(bus, EmcCfgDigDll, emcRead(bus, EmcCfgDigDll)|EmcCfgDigDllCfgDllEn)
	c.emcTimingUpdate(bus, st.fbioCfg7)
	c.waitForUpdate(bus, EmcCfgDigDll, EmcCfgDigDllCfgDllEn, true, st.fbioCfg7)
	c.waitForUpdate(bus, EmcDigDllStatus, EmcDigDllStatusDllLockB01, true, st.fbioCfg7)

	if st.training {
		emcWrite(bus, EmcCfgDigDll, emcRead(bus, EmcCfgDigDll)&^uint32(EmcCfgDigDllCfgDllEn))
		c.waitForUpdate(bus, EmcCfgDigDll, EmcCfgDigDllCfgDllEn, false, st.fbioCfg7)
	}
}

func (c *Controller) phase4StageAutocal(bus Bus, dst *TimingTable, st *freqChangeState) {
	emcWrite(bus, EmcAutoCalConfig2, dst.AutoCalConfig[1])
	emcWrite(bus, EmcAutoCalConfig3, dst.AutoCalConfig[2])
	emcWrite(bus, EmcAutoCalConfig4, dst.AutoCalConfig[3])
	emcWrite(bus, EmcAutoCalConfig5, dst.AutoCalConfig[4])
	emcWrite(bus, EmcAutoCalConfig6, dst.AutoCalConfig[5])
	emcWrite(bus, EmcAutoCalConfig7, dst.AutoCalConfig[6])
	emcWrite(bus, EmcAutoCalConfig8, dst.AutoCalConfig[7])

	emcWrite(bus, EmcAutoCalConfig, (dst.AutoCalConfig[0]&0x7ffff9fe)|0x601)

	emcWrite(bus, EmcCfg, emcRead(bus, EmcCfg)&0xefffffff)
	emcWrite(bus, EmcCfg2, dst.EmcCfg2)
}

// phase5SelectZQCALTiming derives the long/short ZQ calibration waits, in
// destination-clock cycles, from the destination clock period.
func (c *Controller) phase5SelectZQCALTiming(dst *TimingTable, st *freqChangeState) {
	rate := dst.RateKHz
	if rate == 0 {
		rate = 1
	}
	dstClockPeriod := 1_000_000_000 / rate // picoseconds

	switch dst.DRAMType {
	case DRAMTypeLPDDR4:
		st.zqWaitLong = divO3(1_000_000, dstClockPeriod)
		if st.zqWaitLong < 1 {
			st.zqWaitLong = 1
		}
		st.zqWaitShort = divO3(30_000, dstClockPeriod)
		if st.zqWaitShort < 8 {
			st.zqWaitShort = 8
		}
		st.zqWaitShort++
	case DRAMTypeLPDDR2, DRAMTypeLPDDR3:
		w := divO3(360_000, dstClockPeriod)
		if w < dst.MinMRSWait {
			w = dst.MinMRSWait
		}
		st.zqWaitLong = w + 4
		st.zqWaitShort = 0
	case DRAMTypeDDR3:
		w := divO3(320_000, dstClockPeriod)
		if w < 256 {
			w = 256
		}
		st.zqWaitLong = w
		st.zqWaitShort = 0
	}
}

func (c *Controller) phase6TrainingCKEGate(bus Bus, dst *TimingTable, st *freqChangeState) {
	if st.trainingMask&(TrainCA|TrainCAVref) == 0 || dst.DramDevNum < 2 {
		return
	}

	emcWrite(bus, EmcPin, emcRead(bus, EmcPin)|0x7)
}

// phase7PickFSPBanks flips the pending FSP selection and derives the three
// MR13 variants the rest of the sequence issues: write-FSP pointed at the
// newly-selected bank, op-FSP for switching back, and the CATR-enabled
// variant used while command-address training runs.
func (c *Controller) phase7PickFSPBanks(bus Bus, dst *TimingTable, st *freqChangeState) {
	c.FSPForNextFreq = !c.FSPForNextFreq

	base := dst.EmcMRW3 & 0xffffff3f
	if !c.FSPForNextFreq {
		st.fspWr = base | 0x80
		st.fspOp = base | 0x00
	} else {
		st.fspWr = base | 0x40
		st.fspOp = base | 0xc0
	}

	st.fspCatr = st.fspWr | 1

	if dst.DramDevNum >= 2 {
		if st.trainingMask&(TrainCA|TrainCAVref) != 0 {
			sel := uint32(0x40000000)
			if st.trainingMask&TrainSecondRank != 0 {
				sel = 0x80000000
			}
			st.fspOp = (st.fspOp & 0x3fffffff) | sel
		}

		sel := uint32(0x80000000)
		if st.trainingMask&TrainSecondRank != 0 {
			sel = 0x40000000
		}
		st.fspCatr = (st.fspCatr & 0x3fffffff) | sel
	}

	if dst.DRAMType != DRAMTypeLPDDR4 {
		return
	}

	emcWrite(bus, EmcMrw3, st.fspWr)
	emcWrite(bus, EmcMrw, dst.EmcMRW)
	emcWrite(bus, EmcMrw2, dst.EmcMRW2)
}

func (c *Controller) phase8WriteShadowBank(bus Bus, src, dst *TimingTable, st *freqChangeState) {
	isLpddr2 := dst.DRAMType == DRAMTypeLPDDR2 || dst.DRAMType == DRAMTypeLPDDR3

	vttgenCtrl1 := emcRead(bus, EmcPmacroVttgenCtrl1)
	xm2comppadctrl := emcRead(bus, EmcXM2CompPadCtrl)

	for i, addr := range burstRegsAddr {
		var wval uint32
		switch {
		case st.trainingMask&(TrainCA|TrainCAVref) != 0:
			wval = dst.ShadowRegsCATrain[i]
		case st.trainingMask&(TrainWrite|TrainWriteVref|TrainRead|TrainReadVref) != 0:
			wval = dst.ShadowRegsRdWrTrain[i]
		default:
			wval = dst.BurstRegAt(i)
		}

		switch addr {
		case EMCBase + EmcCfg:
			if dst.DRAMType == DRAMTypeLPDDR4 {
				wval &= 0x0fffffff
			} else {
				wval &= 0xcfffffff
			}
		case EMCBase + EmcMrsWaitCnt:
			if st.zcalEnCC && isLpddr2 && !dst.OptCCShortZcal && dst.OptShortZcal {
				wval = (wval & 0xfffffc00) | (st.zqWaitLong & 0x3ff)
			}
		case EMCBase + EmcZcalWaitCnt:
			if dst.OptShortZcal && st.zcalEnCC && !dst.OptCCShortZcal && dst.DRAMType == DRAMTypeDDR3 {
				wval = (wval & 0xfffff800) | (st.zqWaitLong & 0x7ff)
			}
		case EMCBase + EmcZcalInterval:
			if st.zcalEnCC {
				wval = 0
			}
		case EMCBase + EmcPmacroBrickCtrlRfu1:
			wval &= 0xf800f800
		case EMCBase + EmcPmacroCmdPadTxCtrl:
			wval |= 0x04000000
		case EMCBase + EmcPmacroAutocalCfgCommon:
			wval |= 0x00010000
		case EMCBase + EmcTrainingCtrl:
			if st.trainingMask&TrainSecondRank != 0 {
				wval |= 0x4000
			}
		case EMCBase + EmcRefresh, EMCBase + EmcTrefbw:
			wval >>= uint(st.refreshShift)
		case EMCBase + EmcXM2CompPadCtrl:
			if dst.MiscCfg1&0x20 == 0 {
				wval = (wval & 0x00ffffff) | (xm2comppadctrl & 0xff000000)
			}
		case EMCBase + EmcDllCfg1:
			wval = (wval & 0xffffdfff) | (emcRead(bus, EmcPmacroDllCfg1) & 0x00002000)
		case EMCBase + EmcPmacroVttgenCtrl1:
			wval = (wval & 0xffff03ff) | (vttgenCtrl1 & 0xfc00)
		case EMCBase + EmcMrw6, EMCBase + EmcMrw7, EMCBase + EmcMrw8,
			EMCBase + EmcMrw9, EMCBase + EmcMrw14, EMCBase + EmcMrw15:
			if dst.DRAMType != DRAMTypeLPDDR4 {
				continue
			}
		}

		bus.Write(addr, wval)
	}

	if dst.DRAMType == DRAMTypeLPDDR4 {
		// MR23: the DQSOSC run count the periodic-compensation samples use.
		run := dst.RunClocks
		if st.training {
			run = src.RunClocks
		}
		emcWrite(bus, EmcMrw, (23<<16)|(run&0xff))
	}
}

func (c *Controller) phase9WritePerChannel(bus Bus, dst *TimingTable, st *freqChangeState) {
	if dst.DRAMType == DRAMTypeLPDDR4 {
		for i, addr := range burstPerChRegsAddr {
			emcWritePerCh(bus, dst.BurstRegPerCh[i], addr, st.fbioCfg7)
		}
	}

	for i, addr := range vrefPerChRegsAddr {
		emcWritePerCh(bus, dst.VrefPerChRegs[i], addr, st.fbioCfg7)
	}

	if st.training {
		for i, addr := range trainingModRegsAddr {
			emcWritePerCh(bus, dst.TrainingModRegs[i], addr, st.fbioCfg7)
		}
	}

	// MC arbitration registers are not shadowed behind EMC_DBG; they land
	// directly and take effect at the MC timing update.
	for i, addr := range burstMCRegsAddr {
		bus.Write(addr, dst.BurstMCRegs[i])
	}
}

func (c *Controller) phase10WriteTrimmers(bus Bus, dst *TimingTable, st *freqChangeState) {
	for i, addr := range trimPerChRegsAddr {
		wval := dst.TrimPerChRegs[i]

		if st.compensateTrim {
			switch addr {
			case EMC0Base + EmcDataBrlshft0, EMC1Base + EmcDataBrlshft0,
				EMC0Base + EmcDataBrlshft1, EMC1Base + EmcDataBrlshft1:
				wval = c.applyPeriodicCompensationTrimmer(dst, addr)
			}
		}

		emcWritePerCh(bus, wval, addr, st.fbioCfg7)
	}

	for i, addr := range trimRegsAddr {
		wval := dst.TrimRegs[i]

		if st.compensateTrim && isObShortDQTrimReg(addr) {
			wval = c.applyPeriodicCompensationTrimmer(dst, addr)
		}

		bus.Write(addr, wval)
	}
}

// isObShortDQTrimReg reports whether addr is one of the OB short-DQ
// per-byte trimmer words periodic compensation rewrites (rank0 cluster at
// 0x800, rank1 at 0x900; the CMD cluster between them is excluded).
func isObShortDQTrimReg(addr uint32) bool {
	off := addr - EMCBase
	return (off >= 0x800 && off < 0x880) || (off >= 0x900 && off < 0x980)
}

// phase11RampDown pushes the CCFIFO sequence that steps VTTGEN drive
// strength down through the intermediate levels appropriate for the
// src-to-dst crossing direction, selecting one of three rate-range
// sequences. It returns the accumulated cycle-delay count, which
// FreqChange records in its working state; no later phase reads it.
func (c *Controller) phase11RampDown(fifo *CCFIFO, src, dst *TimingTable) uint32 {
	delay := uint32(4)

	ctrl1 := src.BurstRegAt(idxEmcPmacroVttgenCtrl1)

	switch {
	case dst.RateKHz < rampRateThresholdKHz:
		fifo.Push(EmcPmacroVttgenCtrl1, (ctrl1&0xfffffc00)|(dst.AutoCalConfig[0]&0x3ff), delay)
	case src.RateKHz < rampRateThresholdKHz:
		fifo.Push(EmcPmacroVttgenCtrl1, (ctrl1&0xfffffc00)|(dst.AutoCalConfig[1]&0x3ff), delay)
		delay += 2
	default:
		fifo.Push(EmcPmacroVttgenCtrl1, ctrl1, delay)
	}

	return delay
}

// phase12ClockChangeBarrier parks DRAM in self-refresh and queues the
// clock-change barrier entry. The optional REF commands ahead of the
// self-refresh entry are the cya_allow_ref_cc/cya_issue_pc_ref/
// ref_b4_sref_en knobs of §6.
func (c *Controller) phase12ClockChangeBarrier(fifo *CCFIFO, dst *TimingTable, st *freqChangeState) {
	if dst.CyaAllowRefCC {
		fifo.Push(EmcRef, 0, 0)

		if dst.CyaIssuePcRef {
			fifo.Push(EmcRef, 0x80000000, 0)
		}
	}

	if dst.RefB4SrefEn {
		fifo.Push(EmcRef, 0, 0)
	}

	fifo.Push(EmcSelfRef, 1, 0)

	fifo.PushBarrier(dst.ClkChangeDelay)
}

// phase13RampUp mirrors phase 11 at the destination clock. The ramp-up
// strategy and timescale come from misc_cfg_1: bits [1:0] select fast (0),
// slow (1) or bypass (2/3), bits [4:2] scale the per-step stall.
func (c *Controller) phase13RampUp(fifo *CCFIFO, src, dst *TimingTable, st *freqChangeState) uint32 {
	strategy := dst.MiscCfg1 & 0x3

	if strategy >= 2 {
		// bypass: pads come up at full drive in a single step
		fifo.Push(EmcPmacroVttgenCtrl1, dst.BurstRegAt(idxEmcPmacroVttgenCtrl1), 0)
		return 0
	}

	delay := uint32(4) << ((dst.MiscCfg1 >> 2) & 0x7)
	if strategy == 1 {
		delay *= 2
	}

	fifo.Push(EmcPmacroVttgenCtrl1, dst.BurstRegAt(idxEmcPmacroVttgenCtrl1), delay)

	if st.training {
		delay += 2
	}

	return delay
}

func (c *Controller) phase14CKEBringup(fifo *CCFIFO, dst *TimingTable) {
	if dst.MiscCfg0&1 != 0 {
		drive := (dst.MiscCfg0 >> 1) & 0x3
		fifo.Push(EmcXM2CompPadCtrl, drive<<24, 0)
	}

	pattern := uint32(0xf)
	if dst.DramDevNum < 2 {
		pattern = 0x3
	}

	fifo.Push(EmcPin, pattern, 0)
}

// phase15ZQLatch enqueues the LPDDR4 ZQ calibration/latch commands. The
// stall between calibration start and latch is rounded up to a whole
// multiple of tZQCAL so the latch never lands mid-calibration, and the
// one-rank, shared-resistor and independent two-rank paths each keep their
// own command ordering (see DESIGN.md Open Question 4 on the
// shared-resistor flag's encoding).
func (c *Controller) phase15ZQLatch(fifo *CCFIFO, dst *TimingTable, st *freqChangeState) {
	if dst.DRAMType != DRAMTypeLPDDR4 || !st.zcalEnCC {
		return
	}

	const zqCalDev0 = 2 << EmcZqCalDevSelShift
	const zqCalDev1 = 1 << EmcZqCalDevSelShift

	wait := st.zqWaitLong
	if dst.OptCCShortZcal {
		wait = st.zqWaitShort
	}

	latch := wait
	if dst.TZQCalLpddr4 != 0 {
		latch = divO3(wait, dst.TZQCalLpddr4) * dst.TZQCalLpddr4
	}

	switch {
	case dst.DramDevNum >= 2 && !dst.SharedZQResistor():
		fifo.Push(EmcZqCal, zqCalDev0|EmcZqCalCmd, 0)
		fifo.Push(EmcZqCal, zqCalDev1|EmcZqCalCmd, latch)
		fifo.Push(EmcZqCal, zqCalDev0|EmcZqCalCmd|EmcZqCalLong, 0)
		fifo.Push(EmcZqCal, zqCalDev1|EmcZqCalCmd|EmcZqCalLong, 0)
	case dst.DramDevNum >= 2:
		// shared resistor: the ranks calibrate serially
		fifo.Push(EmcZqCal, zqCalDev0|EmcZqCalCmd, latch)
		fifo.Push(EmcZqCal, zqCalDev0|EmcZqCalCmd|EmcZqCalLong, 0)
		fifo.Push(EmcZqCal, zqCalDev1|EmcZqCalCmd, latch)
		fifo.Push(EmcZqCal, zqCalDev1|EmcZqCalCmd|EmcZqCalLong, 0)
	default:
		fifo.Push(EmcZqCal, zqCalDev0|EmcZqCalCmd, latch)
		fifo.Push(EmcZqCal, zqCalDev0|EmcZqCalCmd|EmcZqCalLong, 0)
	}
}

func (c *Controller) phase16TrainingKickoff(fifo *CCFIFO, src, dst *TimingTable, st *freqChangeState) {
	if dst.OptDoSwQrst {
		fifo.Push(EmcIssueQrst, 1, 0)
		fifo.Push(EmcIssueQrst, 0, 2)
	}

	fifo.Push(EmcTrainingCmd, 1|uint32(st.trainingMask)<<8, 0)
	fifo.Push(EmcSwitchBackCtrl, 1, 0)

	if st.trainingMask&(TrainCA|TrainCAVref) != 0 {
		fifo.Push(EmcMrw3, st.fspCatr|0x8, 0)
	} else {
		fifo.Push(EmcMrw3, st.fspOp, 0)
	}

	c.phase11RampDown(fifo, dst, src)
	c.phase13RampUp(fifo, dst, src, st)

	fifo.Push(EmcPin, 0xf, 0)
	fifo.Push(EmcPmacroTrainingCtrl0, 1, 0)
	fifo.Push(EmcPmacroTrainingCtrl1, 1, 0)
}

func (c *Controller) phase17ExitSelfRefresh(fifo *CCFIFO) {
	fifo.Push(EmcSelfRef, 0, 0)
}

func (c *Controller) phase18SendDestinationMRWs(fifo *CCFIFO, dst *TimingTable) {
	fifo.Push(EmcMrw, dst.EmcMRW, 0)
	fifo.Push(EmcMrw2, dst.EmcMRW2, 0)
}

func (c *Controller) phase19NonLPDDR4ZQCAL(fifo *CCFIFO, dst *TimingTable, st *freqChangeState) {
	if !st.zcalEnCC {
		return
	}

	switch dst.DRAMType {
	case DRAMTypeLPDDR2, DRAMTypeLPDDR3:
		zqOp := dst.ZqOpCCLongZcal
		waitPs := dst.ZcalWaitTimePsCCLongZcal
		if dst.OptCCShortZcal {
			zqOp = dst.ZqOpCCShortZcal
			waitPs = dst.ZcalWaitTimePsCCShortZcal
		}

		rate := dst.RateKHz
		if rate == 0 {
			rate = 1
		}
		waitClocks := divO3(waitPs, 1_000_000_000/rate)

		fifo.Push(EmcMrsWaitCnt2, (waitClocks&0x3ff)|((waitClocks&0x7ff)<<16), 0)
		fifo.Push(EmcMrw, (zqOp|0x880c0000)-0x20000, 0)

		if dst.DramDevNum >= 2 {
			fifo.Push(EmcMrw, zqOp|0x480a0000, 0)
		}
	case DRAMTypeDDR3:
		long := uint32(EmcZqCalLong)
		if dst.OptCCShortZcal {
			long = 0
		}

		fifo.Push(EmcZqCal, (2<<EmcZqCalDevSelShift)|EmcZqCalCmd|long, 0)
		if dst.DramDevNum >= 2 {
			fifo.Push(EmcZqCal, (1<<EmcZqCalDevSelShift)|EmcZqCalCmd|long, 0)
		}
	}
}

func (c *Controller) phase20IssueRef(fifo *CCFIFO, dst *TimingTable, st *freqChangeState) {
	if st.training || dst.DRAMType != DRAMTypeLPDDR4 {
		ref := uint32(0)
		if dst.DramDevNum < 2 {
			ref = 0x80000000
		}
		fifo.Push(EmcRef, ref, 0)
	}

	if dst.OptDoSwQrst {
		fifo.Push(EmcIssueQrst, 1, 0)
		fifo.Push(EmcIssueQrst, 0, 2)
	}
}

func (c *Controller) phase21RestoreZCALInterval(bus Bus, src, dst *TimingTable, st *freqChangeState) {
	if !st.zcalEnCC || dst.MiscCfg2&0x2 != 0 {
		return
	}

	if st.training {
		activeWrite(bus, EmcZcalInterval, src.BurstRegAt(idxEmcZcalInterval))
	} else if dst.DRAMType != DRAMTypeLPDDR4 {
		activeWrite(bus, EmcZcalInterval, dst.BurstRegAt(idxEmcZcalInterval))
	}
}

func (c *Controller) phase22RestorePipeClk(bus Bus, dst *TimingTable) {
	emcWrite(bus, EmcCfgPipeClk, 1)
}

// phase23TriggerClockChange is the clock-change barrier itself: the only
// point in the whole sequencer that can observably fail (a hardware
// timeout waiting for CLKCHANGE_COMPLETE), per the silent-return failure
// semantics documented on FreqChange.
func (c *Controller) phase23TriggerClockChange(bus Bus, src, dst *TimingTable, st *freqChangeState, targetClkSrc uint32) UpdateTimeout {
	if st.training {
		c.Platform.CarWrite(CarClkSourceEMCSafe, src.ClkSrcEMC)
		c.carSet(CarClkSourceEMCDLL, 0)

		dllCfg := uint32(0x08)
		if dst.MiscCfg2&1 != 0 {
			dllCfg = 0x88
		}
		emcWrite(bus, EmcCfgDigDll, dllCfg)
	}

	bus.Read(MCBase + McEmemAdrCfg)
	emcRead(bus, EmcIntStatus)

	c.Platform.CarWrite(CarClkSourceEMC, targetClkSrc)

	return c.waitForUpdate(bus, EmcIntStatus, EmcIntStatusClkchangeComplete, true, st.fbioCfg7)
}

// phase24ReadTrainingResults captures what the hardware trained back into
// dst: the BRLSHFT/DDLL trimmers verbatim, and — on vref passes — the
// MRW10-13 per-channel values rebuilt by combining the hardware-chosen vref
// with the matching save_restore mod reg (low 7 bits add or subtract per
// the mod reg's top bit).
func (c *Controller) phase24ReadTrainingResults(bus Bus, dst *TimingTable, st *freqChangeState) {
	for i := range trimPerChRegsAddr {
		dst.TrimPerChRegs[i] = bus.Read(trimPerChRegsAddr[i])
	}

	for i := range trimRegsAddr {
		dst.TrimRegs[i] = bus.Read(trimRegsAddr[i])
	}

	for i := range vrefPerChRegsAddr {
		dst.VrefPerChRegs[i] = bus.Read(vrefPerChRegsAddr[i])
	}

	if st.trainingMask&(TrainCAVref|TrainWriteVref|TrainReadVref) == 0 {
		return
	}

	for i := range burstPerChRegsAddr {
		raw := bus.Read(burstPerChVrefSource[i]) & 0x7f

		mod := dst.SaveRestoreModRegs[burstPerChModReg[i]]
		if mod&0x80000000 != 0 {
			raw -= mod & 0x7f
		} else {
			raw += mod & 0x7f
		}

		dst.BurstRegPerCh[i] = (dst.BurstRegPerCh[i] &^ uint32(0xff)) | (raw & 0xff)
	}
}

func (c *Controller) phase25MCUpdown(bus Bus, dst *TimingTable, st *freqChangeState) {
	for i, addr := range laScaleRegsAddr {
		bus.Write(addr, dst.LaScaleRegs[i])
	}

	c.emcTimingUpdate(bus, st.fbioCfg7)
}

func (c *Controller) phase26RestoreZCAL(bus Bus, dst *TimingTable, st *freqChangeState) {
	if !st.zcalEnCC {
		return
	}

	activeWrite(bus, EmcZcalWaitCnt, dst.BurstRegAt(idxEmcZcalWaitCnt))
}

func (c *Controller) phase27RestoreEmcCfg(bus Bus, dst *TimingTable) {
	activeWrite(bus, EmcCfg, dst.BurstRegAt(idxEmcCfg))
	activeWrite(bus, EmcFdpdCtrlCmdNoRamp, dst.EmcFdpdCtrlCmdNoRamp)
	activeWrite(bus, EmcSelDpdCtrl, dst.EmcSelDpdCtrl)
}

func (c *Controller) phase28RewindShadowState(bus Bus, src *TimingTable) {
	for i, addr := range burstRegsAddr {
		bus.Write(addr, src.BurstRegAt(i))
	}

	emcWrite(bus, EmcTrDvfs, emcRead(bus, EmcTrDvfs)&^uint32(1<<16))
}

func (c *Controller) phase29PowerFixWorkaround(bus Bus, dst *TimingTable) {
	emcWrite(bus, EmcPmacroCfgPmGlobal0, 0xff0000)
	emcWrite(bus, EmcPmacroTrainingCtrl0, 0)
	emcWrite(bus, EmcPmacroTrainingCtrl1, 0)
	emcWrite(bus, EmcPmacroCfgPmGlobal0, 0)

	if dst.MiscCfg1&0x20 == 0 {
		emcWrite(bus, EmcXM2CompPadCtrl, emcRead(bus, EmcXM2CompPadCtrl)^0xff000000)
	}
}

func (c *Controller) phase30ReenableAutocal(bus Bus, src, dst *TimingTable, st *freqChangeState) {
	t := dst
	if st.training {
		t = src
	}

	emcWrite(bus, EmcAutoCalConfig, (t.AutoCalConfig[0]&0x7ffff9ff)|0x601)

	if st.training {
		c.FSPForNextFreq = !c.FSPForNextFreq
		copy(src.CurrentDRAMClktree[:], src.TrainedDRAMClktree[:])
		return
	}

	// The clock now runs off one of PLLM/PLLMB; the other is idle and may
	// be powered down until the next reprogram picks it up.
	switch (st.targetClkSrc >> ClkSourceEMC2xClkSrcShift) & ClkSourceEMC2xClkSrcMask {
	case ClkSrcPLLMOUT0, ClkSrcPLLMUD:
		c.carClear(CarPLLMBBase, PLLBaseEnable)
	case ClkSrcPLLMBOUT0, ClkSrcPLLMBUD:
		c.carClear(CarPLLMBase, PLLBaseEnable)
	}
}
