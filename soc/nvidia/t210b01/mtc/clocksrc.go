// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// divO3 is ceil(a/b) computed with integer-only arithmetic, the Go
// equivalent of div_o3 in the reference sequencer: used wherever the
// original took a ceiling of an integer ratio rather than rounding.
func divO3(a, b uint32) uint32 {
	q := a / b
	if b*q < a {
		return q + 1
	}
	return q
}

// needsPLLReprogram mirrors pll_reprogram: it compares the *effective*
// output frequency of source and destination clock-source words (PLL rate
// already baked into rate_khz; the current PLL's post-divider scales both
// sides alike, so only the rates and the CLK_SOURCE_EMC divisor fields
// vary the ratio) and reports whether the deviation exceeds
// ±1%, or whether the two sides come from genuinely different PLL
// families (excluding the UD/non-UD distinction within the same PLL,
// which the "| 4" masking in the original collapses). Every register this
// reads (CLK_SOURCE_EMC, PLLM_BASE, PLLMB_BASE) lives in the CAR aperture,
// reached exclusively through platform.
func needsPLLReprogram(platform Platform, rateToKHz, clkSrcEMCTo, rateFromKHz, clkSrcEMCFrom uint32) bool {
	postDiv := uint32(1)

	switch (platform.CarRead(CarClkSourceEMC) >> ClkSourceEMC2xClkSrcShift) & ClkSourceEMC2xClkSrcMask {
	case ClkSrcPLLMOUT0, ClkSrcPLLMUD:
		postDiv = 1 + (platform.CarRead(CarPLLMBase)>>20)&1
	case ClkSrcPLLMBOUT0, ClkSrcPLLMBUD:
		postDiv = 1 + (platform.CarRead(CarPLLMBBase)>>20)&1
	}

	srcTo := (clkSrcEMCTo >> ClkSourceEMC2xClkSrcShift) & ClkSourceEMC2xClkSrcMask
	srcFrom := (clkSrcEMCFrom >> ClkSourceEMC2xClkSrcShift) & ClkSourceEMC2xClkSrcMask

	var divTo, divFrom uint32
	if srcTo != ClkSrcPLLMUD && srcTo != ClkSrcPLLMBUD {
		divTo = clkSrcEMCTo & ClkSourceEMCDivMask
	}
	if srcFrom != ClkSrcPLLMUD && srcFrom != ClkSrcPLLMBUD {
		divFrom = clkSrcEMCFrom & ClkSourceEMCDivMask
	}

	if srcTo != srcFrom && ((srcTo|4) != 4 || (srcFrom|4) != 4) {
		return true
	}

	valTo := (float64(divTo&1)*0.5 + float64(divTo>>1+1)) * float64(rateToKHz) * float64(postDiv)
	valFrom := (float64(divFrom&1)*0.5 + float64(divFrom>>1+1)) * float64(rateFromKHz) * float64(postDiv)

	if valTo == 0 {
		return true
	}

	ratio := valFrom / valTo

	return ratio > 1.01 || ratio < 0.99
}

// PlanClockSource implements the clock source planning step of the
// frequency-change sequencer (§4.2): it decides whether the destination
// table's clk_src_emc can drive the switch verbatim, or whether the idle
// PLL must first be reprogrammed and the word rewritten to point at it.
// c.nextPLL is read and, when reprogramming happens, toggled. This step
// only ever touches the CAR aperture (CLK_SOURCE_EMC, PLLM/PLLMB), so it
// takes no EMC/MC Bus argument.
func (c *Controller) PlanClockSource(from, to *TimingTable) uint32 {
	clkSrcTo := to.ClkSrcEMC

	if needsPLLReprogram(c.Platform, to.RateKHz, to.ClkSrcEMC, from.RateKHz, from.ClkSrcEMC) {
		c.NextPLL = !c.NextPLL
		clkSrcTo = substitutePLL(clkSrcTo, c.NextPLL)
		c.ProgramPLL(c.NextPLL, to)
		return clkSrcTo
	}

	if c.NextPLL {
		clkSrcTo = substitutePLL(clkSrcTo, true)
	}

	return clkSrcTo
}

// substitutePLL rewrites the EMC_2X_CLK_SRC field of clkSrcEMC to point at
// PLLMB (or PLLMB_UD) in place of PLLM (or PLLM_UD) when usePLLMB is set;
// the word is returned unchanged otherwise.
func substitutePLL(clkSrcEMC uint32, usePLLMB bool) uint32 {
	if !usePLLMB {
		return clkSrcEMC
	}

	src := (clkSrcEMC >> ClkSourceEMC2xClkSrcShift) & ClkSourceEMC2xClkSrcMask

	switch src {
	case ClkSrcPLLMOUT0:
		src = ClkSrcPLLMBOUT0
	case ClkSrcPLLMUD:
		src = ClkSrcPLLMBUD
	default:
		return clkSrcEMC
	}

	return (clkSrcEMC &^ (ClkSourceEMC2xClkSrcMask << ClkSourceEMC2xClkSrcShift)) |
		(src << ClkSourceEMC2xClkSrcShift)
}
