// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// ProgramPLL implements the PLL programmer (§4.3): it writes divm/divn/divp
// from timing into the selected PLL's _BASE register, enables the PLL,
// installs spread-spectrum config when timing.PllEnSSC&1 is set, and for
// PLLM additionally arms the lock-detect enable, before busy-waiting on the
// lock bit. usePLLMB selects PLLMB over PLLM. PLLM/PLLMB live in the CAR
// aperture, so this operates exclusively through Platform.CarRead/CarWrite,
// never the EMC/MC Bus.
func (c *Controller) ProgramPLL(usePLLMB bool, timing *TimingTable) {
	p := c.Platform

	base := (timing.DivM & PLLBaseDivMMask) |
		((timing.DivN & PLLBaseDivNMask) << PLLBaseDivNShift) |
		((timing.DivP & 1) << PLLBaseDivPShift)

	if usePLLMB {
		p.CarWrite(CarPLLMBBase, base)
		p.CarRead(CarPLLMBBase)

		p.CarWrite(CarPLLMBMisc1, p.CarRead(CarPLLMBMisc1)|0x10000000)

		if timing.PllEnSSC&1 != 0 {
			p.CarWrite(CarPLLMBSSCfg, timing.PllMBSSCfg)
			p.CarWrite(CarPLLMBSSCtrl1, timing.PllMBSSCtrl1)
			p.CarWrite(CarPLLMBSSCtrl2, timing.PllMBSSCtrl2)
		} else {
			p.CarWrite(CarPLLMBSSCfg, timing.PllMBSSCfg&0xbfffffff)
			p.CarWrite(CarPLLMBSSCtrl2, timing.PllMBSSCtrl2&0x0000ffff)
		}

		c.carSet(CarPLLMBBase, PLLBaseEnable)
		c.carWait(CarPLLMBBase, PLLBaseLock, 1, 1)

		return
	}

	p.CarWrite(CarPLLMBase, base)
	p.CarRead(CarPLLMBase)

	p.CarWrite(CarPLLMMisc2, p.CarRead(CarPLLMMisc2)|PLLMMisc2LockEnable)

	if timing.PllEnSSC&1 != 0 {
		p.CarWrite(CarPLLMSSCfg, timing.PllMSSCfg)
		p.CarWrite(CarPLLMSSCtrl1, timing.PllMSSCtrl1)
		p.CarWrite(CarPLLMSSCtrl2, timing.PllMSSCtrl2)
	} else {
		p.CarWrite(CarPLLMSSCfg, timing.PllMSSCfg&0xbfffffff)
		p.CarWrite(CarPLLMSSCtrl2, timing.PllMSSCtrl2&0x0000ffff)
	}

	c.carSet(CarPLLMBase, PLLBaseEnable)
	c.carWait(CarPLLMBase, PLLBaseLock, 1, 1)
}
