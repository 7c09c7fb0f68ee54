// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import "testing"

func TestProgramPLLM(t *testing.T) {
	platform := newFakePlatform(0)
	c := &Controller{Platform: platform}

	timing := TimingTable{DivM: 1, DivN: 100, DivP: 0, PllEnSSC: 0}

	c.ProgramPLL(false, &timing)

	base := platform.CarRead(CarPLLMBase)
	if divN := (base >> PLLBaseDivNShift) & PLLBaseDivNMask; divN != 100 {
		t.Fatalf("PLLM_BASE divn = %d, want 100 (raw base %#x)", divN, base)
	}

	if platform.CarRead(CarPLLMMisc2)&PLLMMisc2LockEnable == 0 {
		t.Fatalf("expected PLLM lock-detect enable bit set in MISC2")
	}
}

func TestProgramPLLMB(t *testing.T) {
	platform := newFakePlatform(0)
	c := &Controller{Platform: platform}

	timing := TimingTable{DivM: 1, DivN: 120, DivP: 0, PllEnSSC: 1,
		PllMBSSCfg: 0x1, PllMBSSCtrl1: 0x2, PllMBSSCtrl2: 0x3}

	c.ProgramPLL(true, &timing)

	if platform.CarRead(CarPLLMBSSCfg) != 0x1 {
		t.Fatalf("expected spread-spectrum config to be installed when PllEnSSC&1 is set")
	}
}
