package pio

import "testing"

func TestRingFIFOBasic(t *testing.T) {
	f := NewRingFIFO()
	if !f.TXEmpty() {
		t.Fatal("new FIFO TX should be empty")
	}
	f.TXPut(1)
	f.TXPut(2)
	if f.TXEmpty() {
		t.Fatal("TX should not be empty after put")
	}
	if got := f.TXPull(); got != 1 {
		t.Errorf("TXPull = %d, want 1", got)
	}
	if got := f.TXPull(); got != 2 {
		t.Errorf("TXPull = %d, want 2", got)
	}
	if !f.TXEmpty() {
		t.Fatal("TX should be empty again")
	}
}

func TestRingFIFOFullness(t *testing.T) {
	f := NewRingFIFO()
	for i := 0; i < fifoBaseDepth; i++ {
		if f.RXFull() {
			t.Fatalf("RX full too early at i=%d", i)
		}
		f.RXPush(uint32(i))
	}
	if !f.RXFull() {
		t.Fatal("RX should be full after filling to depth")
	}
}

func TestRingFIFOJoinDoublesDepth(t *testing.T) {
	f := NewRingFIFO()
	f.SetJoinRX(true)
	for i := 0; i < fifoBaseDepth*2; i++ {
		if f.RXFull() {
			t.Fatalf("RX full too early at i=%d after join", i)
		}
		f.RXPush(uint32(i))
	}
	if !f.RXFull() {
		t.Fatal("RX should be full after filling to doubled depth")
	}
}

func TestRingFIFOLevels(t *testing.T) {
	f := NewRingFIFO()
	f.RXPush(1)
	f.RXPush(2)
	if f.RXLevel() != 2 {
		t.Errorf("RXLevel = %d, want 2", f.RXLevel())
	}
	f.RXGet()
	if f.RXLevel() != 1 {
		t.Errorf("RXLevel = %d, want 1", f.RXLevel())
	}
}
