// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// NumTrainingPatterns is the number of RAM training patterns
// TimingTable.TrainingPattern may index into.
const NumTrainingPatterns = 22

// PatternLen is the number of (DQ, DMI) entries in a single training
// pattern, and the number of EMC_TRAINING_PATRAM_CTRL indices it is loaded
// through.
const PatternLen = 256

// trainingPattern is one RAM training pattern: 256 32-bit DQ beats and
// their corresponding DMI (data mask inversion) nibbles.
type trainingPattern struct {
	dq  [PatternLen]uint32
	dmi [PatternLen]uint8
}

// ramPattern holds the 22 training patterns loaded into the EMC's internal
// pattern RAM once per boot (§4.5, "load pattern RAM"). The vendor patterns
// are proprietary pseudo-random sequences tuned for signal integrity
// coverage; the values here are a deterministic synthetic stand-in with the
// same shape (see DESIGN.md) rather than a reproduction of vendor firmware
// bytes, which are not present anywhere in this repository's sources.
var ramPattern [NumTrainingPatterns]trainingPattern

func init() {
	for p := 0; p < NumTrainingPatterns; p++ {
		seed := uint32(p)*0x9e3779b9 + 1
		for i := 0; i < PatternLen; i++ {
			seed = seed*1664525 + 1013904223
			ramPattern[p].dq[i] = seed
			ramPattern[p].dmi[i] = uint8(seed >> 24)
		}
	}
}
