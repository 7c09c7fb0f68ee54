// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// MovavgPrecisionFactor is the fixed-point scale factor used by every
// moving-average accumulator in this package. All EMA arithmetic below is
// integer-only and must stay that way: substituting floating point would
// change rounding behavior at the margins update_clock_tree_delay relies
// on.
const MovavgPrecisionFactor = 100

// compensationSequence selects which periodic-compensation entry point
// (§4.6) a call to PeriodicCompensationHandler is for.
type compensationSequence int

const (
	DVFSSequence compensationSequence = iota
	WriteTrainingSequence
	PeriodicTrainingSequence
)

// clockTreeUpdateType selects how updateClockTreeDelay folds a new raw
// sample into the moving average.
type clockTreeUpdateType int

const (
	dvfsPT1 clockTreeUpdateType = iota
	dvfsUpdate
	trainingPT1
	trainingUpdate
	periodicTrainingUpdate
)

// movavgIncrement converts a raw sample to fixed point and adds it into an
// accumulator (the __INCREMENT_PTFV macro).
func movavgIncrement(accum int32, sample int32) int32 {
	return accum + sample*MovavgPrecisionFactor
}

// movavgAverage divides an accumulated fixed-point sum by the sample count,
// producing the averaged EMA value, still fixed-point scaled
// (__AVERAGE_PTFV).
func movavgAverage(sum int32, samples uint32) int32 {
	if samples == 0 {
		return 0
	}
	return sum / int32(samples)
}

// movavgWeightedUpdate folds a new raw sample into an existing fixed-point
// moving average (__WEIGHTED_UPDATE_PTFV):
//
//	new = (sample*100 + old*weight) / (weight + 1)
//
// used by the runtime periodic-training path instead of a plain average.
func movavgWeightedUpdate(movavg int32, sample int32, weight uint32) int32 {
	w := int32(weight)
	return (sample*MovavgPrecisionFactor + movavg*w) / (w + 1)
}

// movavgAC converts a fixed-point moving average back to integral taps
// (__MOVAVG_AC).
func movavgAC(movavg int32) int32 {
	return movavg / MovavgPrecisionFactor
}

// actualOscClocks converts an EMC run_clocks oscillator-count selector into
// the actual number of oscillator clocks it represents (actual_osc_clocks).
func actualOscClocks(in uint32) uint32 {
	switch {
	case in < 0x40:
		return in * 16
	case in < 0x80:
		return 2048
	case in < 0xc0:
		return 4096
	default:
		return 8192
	}
}

// startPeriodicCompensation issues the one-shot MPC request (EMC_MPC ←
// 0x4B) that triggers a hardware DQSOSC sample, with the mandatory dummy
// read-back the reference sequencer performs to retire the write before
// observing results.
func startPeriodicCompensation(bus Bus) {
	emcWrite(bus, EmcMpc, 0x4b)
	emcRead(bus, EmcMpc)
}

// updateClockTreeDelay samples the first devNum*4 (at most eight)
// (channel, device, sub-unit) quadrants: for each it reads the low byte of
// EMC_MRR as the DQSOSC count, turns it into a clock-tree delay sample and
// folds it into dst's EMA state according to updateType. It issues no MRR
// command of its own and does not read the MR19 high byte. It returns the
// largest absolute delta (in taps) across the sampled quadrants; the PT1
// accumulation types return 0.
func updateClockTreeDelay(bus Bus, src, dst *TimingTable, devNum int, updateType clockTreeUpdateType) int32 {
	var maxDelta int32

	rateMHz := int32(src.RateKHz / 1000)
	if rateMHz == 0 {
		rateMHz = 1
	}

	for i := 0; i < 8 && i < devNum*4; i++ {
		raw := emcRead(bus, EmcMrr) & 0xff
		if raw == 0 {
			raw = 1
		}

		cval := int32((1000 * 1000 * int64(actualOscClocks(src.RunClocks))) / (int64(rateMHz) * 2 * int64(raw)))

		switch updateType {
		case dvfsPT1, trainingPT1:
			dst.PtfvDqsoscMovavg[i] = movavgIncrement(dst.PtfvDqsoscMovavg[i], cval)
			continue
		case dvfsUpdate:
			dst.PtfvDqsoscMovavg[i] = movavgAverage(dst.PtfvDqsoscMovavg[i], dst.PtfvDvfsSamples)
		case trainingUpdate:
			dst.PtfvDqsoscMovavg[i] = movavgAverage(dst.PtfvDqsoscMovavg[i], dst.PtfvWriteSamples)
		case periodicTrainingUpdate:
			dst.PtfvDqsoscMovavg[i] = movavgWeightedUpdate(dst.PtfvDqsoscMovavg[i], cval, dst.PtfvMovavgWeight)
		}

		ac := movavgAC(dst.PtfvDqsoscMovavg[i])

		tdel := dst.CurrentDRAMClktree[i] - ac
		if tdel < 0 {
			tdel = -tdel
		}
		if tdel > maxDelta {
			maxDelta = tdel
		}

		dstRateMHz := int64(dst.RateKHz / 1000)
		forceCopy := updateType == dvfsUpdate && dst.CurrentDRAMClktree[i] == 0

		if forceCopy || (int64(tdel)*128*dstRateMHz)/1_000_000 > int64(dst.TreeMargin) {
			dst.CurrentDRAMClktree[i] = ac
		}

		if updateType == trainingUpdate {
			dst.TrainedDRAMClktree[i] = dst.CurrentDRAMClktree[i]
		}
	}

	return maxDelta
}

// PeriodicCompensationHandler implements the three periodic-compensation
// entry points of §4.6. seq selects which: DVFSSequence runs during a
// frequency change (FreqChange step 2), WriteTrainingSequence is the
// post-training variant (no caller in this package invokes it; TrainFreq
// does not), and PeriodicTrainingSequence is the one-shot
// runtime refresh a caller drives on a timer outside of any frequency
// change. The inter-sample delay gives the DQSOSC oscillator time to run
// for the selected run_clocks count at the source rate before its result
// register is read back.
func (c *Controller) PeriodicCompensationHandler(bus Bus, seq compensationSequence, devNum int, src, dst *TimingTable) int32 {
	rateKHz := src.RateKHz
	if rateKHz == 0 {
		rateKHz = 1
	}

	sampleDelayUs := 2 + (1000*actualOscClocks(src.RunClocks))/rateKHz

	switch seq {
	case DVFSSequence:
		if src.PeriodicTraining && dst.PtfvConfigCtrl&1 != 0 {
			for i := range dst.PtfvDqsoscMovavg {
				dst.PtfvDqsoscMovavg[i] = src.PtfvDqsoscMovavg[i] * int32(dst.PtfvDvfsSamples)
			}
		} else {
			for i := range dst.PtfvDqsoscMovavg {
				dst.PtfvDqsoscMovavg[i] = 0
			}

			for n := uint32(0); n < dst.PtfvDvfsSamples; n++ {
				startPeriodicCompensation(bus)
				c.Platform.Udelay(sampleDelayUs)
				updateClockTreeDelay(bus, src, dst, devNum, dvfsPT1)
			}
		}

		return updateClockTreeDelay(bus, src, dst, devNum, dvfsUpdate)

	case WriteTrainingSequence:
		for n := uint32(0); n < dst.PtfvWriteSamples; n++ {
			startPeriodicCompensation(bus)
			c.Platform.Udelay(sampleDelayUs)
			updateClockTreeDelay(bus, src, dst, devNum, trainingPT1)
		}

		return updateClockTreeDelay(bus, src, dst, devNum, trainingUpdate)

	case PeriodicTrainingSequence:
		startPeriodicCompensation(bus)
		c.Platform.Udelay(sampleDelayUs)
		return updateClockTreeDelay(bus, src, dst, devNum, periodicTrainingUpdate)

	default:
		return 0
	}
}

// applyPeriodicCompensationTrimmer rebuilds the requested trimmer word
// with the measured clock-tree drift folded in. It reconstructs a 9-entry
// intermediate tap array for each of the 16 (rank, byte) sub-units from
// the packed OB short-DQ trim words plus the coarse DATA_BRLSHFT shift,
// adds the per-quadrant drift (current minus trained clock tree, scaled to
// taps at the destination rate) when it exceeds the tree margin,
// re-extracts the coarse shifts by normalizing each byte group to its
// minimum, and reassembles whichever register trimReg addresses. The
// intermediates persist in the controller's compensation scratch so the
// paired DATA_BRLSHFT/short-DQ rewrites agree with each other.
func (c *Controller) applyPeriodicCompensationTrimmer(t *TimingTable, trimReg uint32) uint32 {
	rateMHz := int32(t.RateKHz / 1000)

	var adj [16]uint32
	for i := range adj {
		adj[i] = 8
	}

	scratch := &c.PeriodicTimerCompensationIntermediates

	for rank := 0; rank < 2; rank++ {
		for byteN := 0; byteN < 8; byteN++ {
			var shft uint32
			switch {
			case rank == 0 && byteN < 4:
				shft = t.TrimPerChRegs[idxEmc0DataBrlshft0]
			case rank == 0:
				shft = t.TrimPerChRegs[idxEmc1DataBrlshft0]
			case byteN < 4:
				shft = t.TrimPerChRegs[idxEmc0DataBrlshft1]
			default:
				shft = t.TrimPerChRegs[idxEmc1DataBrlshft1]
			}

			base := ((shft >> (3 * uint(byteN))) & 7) << 6

			ti := trimObShortDQBase(rank, byteN)
			val0 := t.TrimRegs[ti+0]
			val1 := t.TrimRegs[ti+1]
			val2 := t.TrimRegs[ti+2]

			o := 9 * (8*rank + byteN)
			scratch[o+0] = base + (val0>>0)&0xff
			scratch[o+1] = base + (val0>>8)&0xff
			scratch[o+2] = base + (val0>>16)&0xff
			scratch[o+3] = base + (val0>>24)&0xff
			scratch[o+4] = base + (val1>>0)&0xff
			scratch[o+5] = base + (val1>>8)&0xff
			scratch[o+6] = base + (val1>>16)&0xff
			scratch[o+7] = base + (val1>>24)&0xff
			scratch[o+8] = base + (val2>>0)&0xff
		}
	}

	applyDrift := func(quads [4]int, scratchBase, adjBase int) {
		for i := 0; i < 4; i++ {
			delta := 128 * (t.CurrentDRAMClktree[quads[i]] - t.TrainedDRAMClktree[quads[i]])
			taps := delta * rateMHz / 1_000_000

			var sum uint32
			if taps > t.TreeMargin {
				sum = uint32(taps)
			}

			for j := 0; j < 18; j++ {
				bi := 1
				if j < 9 {
					bi = 0
				}

				scratch[scratchBase+18*i+j] += sum
				if v := scratch[scratchBase+18*i+j]; v < adj[adjBase+2*i+bi]<<6 {
					adj[adjBase+2*i+bi] = v >> 6
				}
			}
			for j := 0; j < 18; j++ {
				bi := 1
				if j < 9 {
					bi = 0
				}

				scratch[scratchBase+18*i+j] -= adj[adjBase+2*i+bi] << 6
			}
		}
	}

	off := trimReg - EMCBase

	switch {
	case (off >= 0x800 && off < 0x880) ||
		trimReg == EMC0Base+EmcDataBrlshft0 || trimReg == EMC1Base+EmcDataBrlshft0:
		applyDrift([4]int{0, 1, 4, 5}, 0, 0) // c0d0u0, c0d0u1, c1d0u0, c1d0u1
	case (off >= 0x900 && off < 0x980) ||
		trimReg == EMC0Base+EmcDataBrlshft1 || trimReg == EMC1Base+EmcDataBrlshft1:
		applyDrift([4]int{2, 3, 6, 7}, 72, 8) // c0d1u0, c0d1u1, c1d1u0, c1d1u1
	}

	switch trimReg {
	case EMC0Base + EmcDataBrlshft0:
		return (adj[0]&7)<<0 | (adj[1]&7)<<3 | (adj[2]&7)<<6 | (adj[3]&7)<<9
	case EMC1Base + EmcDataBrlshft0:
		return (adj[4]&7)<<12 | (adj[5]&7)<<15 | (adj[6]&7)<<18 | (adj[7]&7)<<21
	case EMC0Base + EmcDataBrlshft1:
		return (adj[8]&7)<<0 | (adj[9]&7)<<3 | (adj[10]&7)<<6 | (adj[11]&7)<<9
	case EMC1Base + EmcDataBrlshft1:
		return (adj[12]&7)<<12 | (adj[13]&7)<<15 | (adj[14]&7)<<18 | (adj[15]&7)<<21
	}

	rank := 0
	if off >= 0x900 {
		rank = 1
		off -= 0x900
	} else {
		off -= 0x800
	}

	byteN := int(off >> 4)
	o := 9 * (8*rank + byteN)

	switch (off & 0xf) / 4 {
	case 0:
		return (scratch[o+0]&0xff)<<0 | (scratch[o+1]&0xff)<<8 |
			(scratch[o+2]&0xff)<<16 | (scratch[o+3]&0xff)<<24
	case 1:
		return (scratch[o+4]&0xff)<<0 | (scratch[o+5]&0xff)<<8 |
			(scratch[o+6]&0xff)<<16 | (scratch[o+7]&0xff)<<24
	default:
		return (scratch[o+8] & 0xff) << 0
	}
}
