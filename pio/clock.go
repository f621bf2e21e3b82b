package pio

import (
	"errors"
	"math"
)

// PLL is the fractional clock-divider contract a state machine's
// engine ticks against. The real PLL numerics are out of scope; the
// core only needs rising edges reported at the configured rate and
// the CLKDIV register's integer/fractional split.
type PLL interface {
	SetCLKDIV(div uint32)
	GetCLKDIV() uint32
	SetDivIntegerBits(whole uint16)
	SetDivFractionalBits(frac uint8)
	// Tick advances the divider's internal accumulator by one input
	// clock and reports whether this input clock produced a state
	// machine rising edge.
	Tick() (risingEdge bool)
}

// clkDivFracPos and clkDivIntPos mirror the RP2040 CLKDIV register layout used in
// tinygo-org-pio's config.go: fractional bits in 8..15, integer bits
// in 16..31.
const (
	clkDivFracPos = 8
	clkDivIntPos  = 16
)

func packClkDiv(whole uint16, frac uint8) uint32 {
	return (uint32(frac) << clkDivFracPos) | (uint32(whole) << clkDivIntPos)
}

func unpackClkDiv(div uint32) (whole uint16, frac uint8) {
	whole = uint16(div >> clkDivIntPos)
	frac = uint8(div >> clkDivFracPos)
	return
}

// ClkDiv is the default PLL implementation: a behavioral fractional
// divider that accumulates a phase counter and fires a rising edge
// whenever the accumulated phase reaches one full output period.
// whole=1, frac=0 (the reset default) ticks every input clock.
type ClkDiv struct {
	whole uint16
	frac  uint8
	acc   uint32 // accumulated 1/256ths of an input clock
}

// NewClkDiv returns a divider defaulting to whole=1, frac=0 — one
// output edge per input clock, matching rp2-pio's
// DefaultStateMachineConfig.
func NewClkDiv() *ClkDiv { return &ClkDiv{whole: 1} }

func (c *ClkDiv) SetCLKDIV(div uint32) { c.whole, c.frac = unpackClkDiv(div) }
func (c *ClkDiv) GetCLKDIV() uint32    { return packClkDiv(c.whole, c.frac) }

func (c *ClkDiv) SetDivIntegerBits(whole uint16)  { c.whole = whole }
func (c *ClkDiv) SetDivFractionalBits(frac uint8) { c.frac = frac }

// Tick advances the divider by one input clock. The output period, in
// input clocks, is whole + frac/256; Tick fires a rising edge once the
// accumulated phase reaches one full output period.
func (c *ClkDiv) Tick() bool {
	period := uint32(c.whole)<<8 | uint32(c.frac)
	if period == 0 {
		period = 1 << 8
	}
	c.acc += 1 << 8
	if c.acc >= period {
		c.acc -= period
		return true
	}
	return false
}

// ClkDivFromPeriod computes CLKDIV whole/frac to reach a given state
// machine cycle period given the host clock frequency. period is in
// nanoseconds, freq in Hz.
func ClkDivFromPeriod(period, freq uint32) (whole uint16, frac uint8, err error) {
	clkdiv := 256 * uint64(period) * uint64(freq) / uint64(1e9)
	return splitClkdiv(clkdiv)
}

// ClkDivFromFrequency computes CLKDIV whole/frac to reach a given state
// machine cycle frequency given the host clock frequency, both in Hz.
func ClkDivFromFrequency(freq, hostFreq uint32) (whole uint16, frac uint8, err error) {
	return splitClkdiv(256 * uint64(hostFreq) / uint64(freq))
}

func splitClkdiv(clkdiv uint64) (whole uint16, frac uint8, err error) {
	if clkdiv > 256*uint64(math.MaxUint16) {
		return 0, 0, errors.New("pio: clock divider too large for requested period or frequency")
	} else if clkdiv < 256 {
		return 0, 0, errors.New("pio: clock divider too small for requested period or frequency")
	}
	whole = uint16(clkdiv / 256)
	frac = uint8(clkdiv % 256)
	return whole, frac, nil
}
