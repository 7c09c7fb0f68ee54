// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// loadTrainingPattern copies dst's selected RAM pattern into the EMC's
// internal pattern RAM, exactly once per boot (guarded by
// c.WroteTrainingPattern, §3.3/§4.5 step 1). Subsequent training passes,
// even against a different destination table, reuse whatever pattern was
// first loaded — that guard is part of the reference design, not an
// oversight.
func (c *Controller) loadTrainingPattern(bus Bus, dst *TimingTable) {
	if c.WroteTrainingPattern {
		return
	}

	if dst.TrainingPattern >= 0 && dst.TrainingPattern < NumTrainingPatterns {
		p := &ramPattern[dst.TrainingPattern]

		for i := 0; i < PatternLen; i++ {
			emcWrite(bus, EmcTrainingPatramDQ, p.dq[i])
			emcWrite(bus, EmcTrainingPatramDMI, uint32(p.dmi[i]))
			emcWrite(bus, EmcTrainingPatramCtrl, 0x80000000|uint32(i))
		}
	}

	emcWrite(bus, EmcTrainingQuseCtrlMisc, (dst.EmcTrainingReadCtrlMisc&0xffff0000)|0x1000)

	c.WroteTrainingPattern = true
}

// trainingPass is one sub-pass PlanTraining decomposes needs_training into:
// a training_mask bit group that FreqChange can run as a single training
// invocation.
type trainingPass struct {
	mask uint16
}

// PlanTraining decomposes a needs_training bitmask into the ordered list of
// FreqChange sub-passes §4.5 step 2 describes, replacing the reference
// implementation's nested if-chain with a small table-driven scan: CA/
// CA_VREF first (with a second, SECOND_RANK-tagged pass on two-rank
// devices), then WRITE/WRITE_VREF/READ/READ_VREF as one combined pass.
func PlanTraining(needsTraining uint16, twoRank bool) []trainingPass {
	const caGroup = 0x203
	const caGroupSecondRank = 0x303
	const rwGroup = 0x2f0

	var passes []trainingPass

	if needsTraining&caGroup != 0 {
		passes = append(passes, trainingPass{mask: needsTraining & caGroup})

		if twoRank {
			passes = append(passes, trainingPass{mask: needsTraining&caGroupSecondRank | TrainSecondRank})
		}
	}

	if needsTraining&rwGroup != 0 {
		passes = append(passes, trainingPass{mask: needsTraining & rwGroup})
	}

	return passes
}

// recoverDLLAfterTrainingPass restores the digital DLL and shadow register
// bank state after a single training sub-pass, per §4.5 step 3: it swaps
// the shadow bank back to ACTIVE_ONLY, reprograms EMC_PMACRO_DLL_CFG_1
// preserving the clock-source-select field, re-enables or re-disables the
// DLL per the source table and waits for lock before rearming autocal.
func (c *Controller) recoverDLLAfterTrainingPass(bus Bus, src, dst *TimingTable) {
	const mddllSelClkSrc = 0x3 << 16

	fbioCfg7 := src.FbioCfg7Value()

	dbg := emcRead(bus, EmcDbg)
	emcWrite(bus, EmcDbg, (dbg&^uint32(3<<EmcDbgCfgSwapShift))|(EmcDbgCfgSwapAssemblyOnly<<EmcDbgCfgSwapShift))
	c.emcTimingUpdate(bus, fbioCfg7)
	emcWrite(bus, EmcDbg, (dbg&^uint32(3<<EmcDbgCfgSwapShift))|(EmcDbgCfgSwapActiveOnly<<EmcDbgCfgSwapShift))

	cur := emcRead(bus, EmcPmacroDllCfg1)
	emcWrite(bus, EmcPmacroDllCfg1, (dst.BurstRegAt(idxEmcPmacroDllCfg1)&^uint32(mddllSelClkSrc))|(cur&mddllSelClkSrc))

	dllEnabled := src.BurstRegAt(idxEmcCfgDigDll)&EmcCfgDigDllCfgDllEn != 0

	if dllEnabled {
		emcWrite(bus, EmcCfgDigDll, emcRead(bus, EmcCfgDigDll)|EmcCfgDigDllCfgDllEn)
	} else {
		emcWrite(bus, EmcCfgDigDll, emcRead(bus, EmcCfgDigDll)&^uint32(EmcCfgDigDllCfgDllEn))
	}

	c.emcTimingUpdate(bus, fbioCfg7)

	if dllEnabled {
		c.waitForUpdate(bus, EmcDigDllStatus, EmcDigDllStatusDllLockB01, true, fbioCfg7)
	}

	c.emcTimingUpdate(bus, fbioCfg7)

	emcWrite(bus, EmcAutoCalConfig, emcRead(bus, EmcAutoCalConfig)|0x601)
}

// TrainFreq is the training orchestrator (§4.5): it loads the pattern RAM
// if needed, runs every sub-pass PlanTraining derives from dst's
// NeedsTraining (unless dst is already Trained), marks dst trained, and —
// when updateClk is set — performs one final plain FreqChange to actually
// switch the live clock to dst.
func (c *Controller) TrainFreq(bus Bus, src, dst *TimingTable, updateClk bool, targetClkSrc uint32) {
	c.loadTrainingPattern(bus, dst)

	if dst.NeedsTraining != 0 && !dst.Trained {
		for _, pass := range PlanTraining(dst.NeedsTraining, dst.DramDevNum >= 2) {
			c.FreqChange(bus, src, dst, pass.mask, targetClkSrc, 0)
			c.recoverDLLAfterTrainingPass(bus, src, dst)
		}

		dst.Trained = true
	}

	if updateClk {
		c.FreqChange(bus, src, dst, 0, targetClkSrc, 0)
	}
}
