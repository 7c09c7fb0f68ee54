// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// UpdateTimeout is a per-channel bitmask reported by waitForUpdate: bit 2
// set for channel 0, bit 2 shifted for channel 1 mirrors the reference
// sequencer's "result |= 4" accumulation, kept as a named type instead of a
// bare uint32 so callers can't confuse it with an ordinary register value.
type UpdateTimeout uint32

const (
	UpdateTimeoutChannel0 UpdateTimeout = 1 << 2
	UpdateTimeoutChannel1 UpdateTimeout = 1 << 3
)

// None reports whether no channel timed out.
func (t UpdateTimeout) None() bool { return t == 0 }
