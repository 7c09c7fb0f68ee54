// NVIDIA Tegra X1/X1+ (Mariko/B01) DRAM training and DVFS core
// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mtc implements LPDDR4 memory training and DVFS (Dynamic
// Voltage/Frequency Scaling) for the Tegra X1/X1+ (Mariko, a.k.a. B01)
// external memory controller (EMC) and memory controller (MC), bringing
// DRAM from its conservative bootstrap rate up to full operating
// frequency and performing the per-device calibration required for
// reliable high-speed operation along the way.
//
// This package only implements the clock/register choreography: PLL
// programming, EMC/MC register sequencing, DRAM mode-register training and
// the runtime clock-tree compensation loop. It has no opinion on how the
// surrounding bootloader loads its payload, drives a display or talks to
// storage, and it never touches the clock-and-reset (CAR) or fuse blocks
// directly — both are reached exclusively through the Platform interface,
// so this package can be driven from a register-recording mock in tests as
// well as from real silicon.
//
// This package is only meant to be used with `GOOS=tamago` as supported by
// the TamaGo framework for bare metal Go on ARM SoCs, see
// https://github.com/usbarmory/tamago.
package mtc

import "runtime"

// Platform collects the hardware collaborators this core consumes but does
// not own: the clock-and-reset block, the fuse array and a microsecond
// delay primitive. A board package wires a concrete Platform to a
// Controller; tests wire a fake one.
type Platform interface {
	// CarRead returns the 32-bit value at the given offset within the
	// clock-and-reset (CAR) register aperture.
	CarRead(offset uint32) uint32

	// CarWrite stores val at the given offset within the CAR register
	// aperture.
	CarWrite(offset uint32, val uint32)

	// FuseGetDRAMID returns the 5-bit fuse-derived DRAM identifier
	// (0x0-0x1C) burned in at manufacturing time.
	FuseGetDRAMID() uint8

	// Udelay busy-waits for approximately the given number of
	// microseconds.
	Udelay(us uint32)

	// FatalError reports an unrecoverable condition and never returns
	// to its caller (it aborts the boot process). Implementations that
	// need to observe the call for testing purposes may instead record
	// it and return, in which case the caller's own control flow after
	// FatalError is undefined and must not be relied upon.
	FatalError(format string, args ...any)
}

// carSet sets a single bit of the CAR register at addr through
// Platform.CarRead/CarWrite, the CAR-aperture analogue of the bus.go Set
// helper used for EMC/MC registers.
func (c *Controller) carSet(addr uint32, pos int) {
	c.Platform.CarWrite(addr, c.Platform.CarRead(addr)|(1<<uint(pos)))
}

// carClear clears a single bit of the CAR register at addr.
func (c *Controller) carClear(addr uint32, pos int) {
	c.Platform.CarWrite(addr, c.Platform.CarRead(addr)&^(1<<uint(pos)))
}

// carWait spins until the masked/shifted bits of the CAR register at addr
// equal val, the CAR-aperture analogue of bus.go's Wait helper.
func (c *Controller) carWait(addr uint32, pos int, mask uint32, val uint32) {
	for (c.Platform.CarRead(addr)>>pos)&mask != val {
		runtime.Gosched()
	}
}
