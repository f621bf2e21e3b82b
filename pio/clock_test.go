package pio

import "testing"

func TestClkDivDefaultTicksEveryEdge(t *testing.T) {
	c := NewClkDiv()
	for i := 0; i < 4; i++ {
		if !c.Tick() {
			t.Fatalf("tick %d: expected rising edge with default 1:1 divider", i)
		}
	}
}

func TestClkDivHalvesRate(t *testing.T) {
	c := NewClkDiv()
	c.SetDivIntegerBits(2)
	edges := 0
	for i := 0; i < 8; i++ {
		if c.Tick() {
			edges++
		}
	}
	if edges != 4 {
		t.Errorf("edges = %d, want 4 for a /2 divider over 8 input clocks", edges)
	}
}

func TestClkDivPackRoundTrip(t *testing.T) {
	c := NewClkDiv()
	c.SetCLKDIV(packClkDiv(12, 200))
	whole, frac := unpackClkDiv(c.GetCLKDIV())
	if whole != 12 || frac != 200 {
		t.Errorf("got whole=%d frac=%d, want 12,200", whole, frac)
	}
}

func TestClkDivFromFrequencyRoundsWithinRange(t *testing.T) {
	whole, frac, err := ClkDivFromFrequency(1_000_000, 125_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if whole != 125 || frac != 0 {
		t.Errorf("whole=%d frac=%d, want 125,0", whole, frac)
	}
}
