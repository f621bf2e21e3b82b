package snapshot

import (
	"testing"

	"rp2040pio/pio"
)

func newSM() *pio.StateMachine {
	return pio.NewStateMachine(0, pio.NewProgramMemory(), pio.NewPinArray(), pio.NewIRQBank(), pio.NewRingFIFO(), pio.NewClkDiv())
}

func TestRoundTrip(t *testing.T) {
	sm := newSM()
	sm.SetX(0xdeadbeef)
	sm.SetY(42)
	if err := sm.SetWrapTop(17); err != nil {
		t.Fatal(err)
	}
	if err := sm.SetPC(5); err != nil {
		t.Fatal(err)
	}
	sm.Enable()

	data, err := Marshal(sm)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	restored := newSM()
	if err := Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if restored.X != 0xdeadbeef || restored.Y != 42 {
		t.Errorf("X=%#x Y=%d, want X=0xdeadbeef Y=42", restored.X, restored.Y)
	}
	if restored.PC != 5 {
		t.Errorf("PC = %d, want 5", restored.PC)
	}
	if !restored.Enabled {
		t.Error("Enabled should round-trip as true")
	}
	if restored.GetEXECCTRL() != sm.GetEXECCTRL() {
		t.Errorf("EXECCTRL = %#x, want %#x", restored.GetEXECCTRL(), sm.GetEXECCTRL())
	}
}

func TestCaptureReadsShiftRegisters(t *testing.T) {
	sm := newSM()
	sm.SetISR(0x1234, 8)
	sm.SetOSR(0x5678, 16)

	r := Capture(sm)
	if r.ISRValue != 0x1234 || r.ISRCount != 8 {
		t.Errorf("ISR = %#x/%d, want 0x1234/8", r.ISRValue, r.ISRCount)
	}
	if r.OSRValue != 0x5678 || r.OSRCount != 16 {
		t.Errorf("OSR = %#x/%d, want 0x5678/16", r.OSRValue, r.OSRCount)
	}
}
