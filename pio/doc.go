// Package pio implements the per-state-machine cycle engine of a
// Programmable I/O block: fetch/decode/execute, shift registers with
// autopush/autopull, FIFO stall semantics, side-set/delay accounting and
// the EXECCTRL/SHIFTCTRL/PINCTRL configuration registers that govern all
// of it.
//
// The four collaborators a state machine needs — code Memory, GPIO,
// IRQ bank and FIFO — are contracts; this package supplies minimal
// in-memory defaults and leaves hardware-backed implementations to
// adaptor packages.
package pio
