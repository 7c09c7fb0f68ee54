// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

// CCFIFO models the EMC's clock-change FIFO (§4.7, §3.4): a hardware queue
// of (address, data, post-execution-stall) triples, compiled at the source
// clock and drained by the EMC itself as it crosses the clock-change
// barrier. Software only ever appends; the builder refuses to let callers
// emit further entries after Commit marks the barrier crossed, mirroring
// the one-shot nature of a real frequency change.
type CCFIFO struct {
	bus       Bus
	committed bool
}

// NewCCFIFO returns a CCFIFO builder writing through bus.
func NewCCFIFO(bus Bus) *CCFIFO {
	return &CCFIFO{bus: bus}
}

// Push queues a write of data to the EMC register at offset off; once the
// entry executes, the FIFO stalls stall EMC cycles before the next entry.
func (f *CCFIFO) Push(off uint32, data uint32, stall uint32) {
	if f.committed {
		panic("mtc: CCFIFO.Push after commit")
	}

	emcWrite(f.bus, EmcCcfifoData, data)
	emcWrite(f.bus, EmcCcfifoAddr, (off&0xffff)|((stall&0x7fff)<<16)|0x80000000)
}

// PushBarrier queues the distinguished clock-change barrier entry
// (EMC_STALL_THEN_EXE_AFTER_CLKCHANGE) followed by the dummy
// EMC_INTSTATUS write that stalls clkChangeDelay cycles past it (§4.4 step
// 12). After this call the caller is expected to trigger the clock change
// and then Commit.
func (f *CCFIFO) PushBarrier(clkChangeDelay uint32) {
	f.Push(EmcStallThenExeAfterClkchange, 1, 0)
	f.Push(EmcIntStatus, 0, clkChangeDelay)
}

// Commit marks the FIFO drained; no further entries may be pushed.
func (f *CCFIFO) Commit() {
	f.committed = true
}
