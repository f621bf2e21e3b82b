package pio

import "testing"

func newTestSM() *StateMachine {
	sm := NewStateMachine(0, NewProgramMemory(), NewPinArray(), NewIRQBank(), NewRingFIFO(), NewClkDiv())
	sm.Enabled = true
	sm.ClockEnabled = true
	return sm
}

func encodeWord(class uint8, delay uint8, operandHigh, operandLow uint8) uint16 {
	// operandHigh occupies bits 5..7 of lsb (e.g. dest/cond/src selector),
	// operandLow occupies bits 0..4.
	lsb := (operandHigh << 5) | (operandLow & 0x1f)
	return uint16(class)<<13 | uint16(delay&0x1f)<<8 | uint16(lsb)
}

// S1: delay accounting.
func TestScenarioS1Delay(t *testing.T) {
	sm := newTestSM()
	mem := sm.memory.(*ProgramMemory)
	// SET X, 1 with delay 3.
	mem.Set(0, encodeWord(classSET, 3, uint8(SetDestX), 1))
	sm.SetWrapTop(0)
	sm.SetWrapBottom(0)

	if err := sm.ClockRisingEdge(); err != nil {
		t.Fatalf("tick 1: %v", err)
	}
	if sm.X != 1 || sm.PC != 0 || sm.pendingDelay != 3 {
		t.Fatalf("after tick 1: X=%d PC=%d pendingDelay=%d, want X=1 PC=0 delay=3", sm.X, sm.PC, sm.pendingDelay)
	}

	for i, want := range []uint8{2, 1, 0} {
		if err := sm.ClockRisingEdge(); err != nil {
			t.Fatalf("tick %d: %v", i+2, err)
		}
		if sm.pendingDelay != want {
			t.Fatalf("tick %d: pendingDelay=%d, want %d", i+2, sm.pendingDelay, want)
		}
		if sm.PC != 0 {
			t.Fatalf("tick %d: PC should stay 0 while delay elapses, got %d", i+2, sm.PC)
		}
	}

	if err := sm.ClockRisingEdge(); err != nil {
		t.Fatalf("tick 5: %v", err)
	}
	if sm.X != 1 || sm.pendingDelay != 3 {
		t.Fatalf("tick 5 should re-execute SET: X=%d pendingDelay=%d", sm.X, sm.pendingDelay)
	}
}

// S2: autopush composes two 4-bit shifts into one byte in RX.
func TestScenarioS2AutopushLeft(t *testing.T) {
	sm := newTestSM()
	sm.SetPushThresh(8)
	sm.SetAutopush(true)
	sm.SetInShiftDir(ShiftLeft)

	sm.isr.shiftIn(ShiftLeft, 0xA, 4)
	sm.isr.shiftIn(ShiftLeft, 0xB, 4)
	if stall := sm.rxPush(true, true); stall {
		t.Fatal("rxPush should not stall with room in RX")
	}
	if sm.isr.value != 0 || sm.isr.count != 0 {
		t.Errorf("ISR should reset after autopush: value=0x%x count=%d", sm.isr.value, sm.isr.count)
	}
	rx := sm.fifo.(*RingFIFO)
	if rx.RXLevel() != 1 {
		t.Fatalf("RX level = %d, want 1", rx.RXLevel())
	}
	if got := rx.RXGet(); got != 0xAB {
		t.Errorf("RX word = 0x%x, want 0xAB", got)
	}
}

// S3: a blocking PULL stalls while TX is empty and completes once a
// word is available.
func TestScenarioS3BlockingPull(t *testing.T) {
	sm := newTestSM()
	sm.SetAutopull(false)

	if stall := sm.txPull(false, true); !stall {
		t.Fatal("txPull(block) on empty TX should stall")
	}
	if sm.PC != 0 {
		t.Errorf("PC should be untouched by a stalled pull, got %d", sm.PC)
	}

	tx := sm.fifo.(*RingFIFO)
	tx.TXPut(0x1234)
	if stall := sm.txPull(false, true); stall {
		t.Fatal("txPull should complete once TX has a word")
	}
	if sm.osr.value != 0x1234 || sm.osr.count != 0 {
		t.Errorf("OSR = 0x%x count=%d, want 0x1234 count=0", sm.osr.value, sm.osr.count)
	}
}

// S4: JMP X-- fires on the pre-decrement value and decrements
// regardless, including past zero.
func TestScenarioS4JmpXDec(t *testing.T) {
	sm := newTestSM()
	sm.X = 2
	op := jmpOp{Address: 5, Cond: JmpXNZeroDec}

	if state := op.execute(sm); state != ResultJump || sm.PC != 5 || sm.X != 1 {
		t.Fatalf("first exec: state=%v PC=%d X=%d, want Jump/5/1", state, sm.PC, sm.X)
	}
	if state := op.execute(sm); state != ResultJump || sm.PC != 5 || sm.X != 0 {
		t.Fatalf("second exec: state=%v PC=%d X=%d, want Jump/5/0", state, sm.PC, sm.X)
	}
	if state := op.execute(sm); state != ResultComplete || sm.X != 0xffffffff {
		t.Fatalf("third exec: state=%v X=%d, want Complete/underflow", state, sm.X)
	}
}

// S5: OUT EXEC stalls, injects the instruction, and the engine runs
// it on the following cycle without re-fetching memory.
func TestScenarioS5OutExec(t *testing.T) {
	sm := newTestSM()
	mem := sm.memory.(*ProgramMemory)

	nop := encodeWord(classMOV, 0, uint8(MovDestY), uint8(MovSrcY))
	sm.osr.value = uint32(nop)
	sm.osr.count = 0

	mem.Set(0, encodeWord(classOUT, 0, uint8(OutExec), 0)) // bitcount 0 => 32
	sm.PC = 0

	if err := sm.ClockRisingEdge(); err != nil {
		t.Fatalf("tick 1: %v", err)
	}
	if sm.pendingInstruction == nil || *sm.pendingInstruction != nop {
		t.Fatalf("pendingInstruction = %v, want %04x", sm.pendingInstruction, nop)
	}
	if sm.PC != 0 {
		t.Errorf("PC should not advance on stall, got %d", sm.PC)
	}

	if err := sm.ClockRisingEdge(); err != nil {
		t.Fatalf("tick 2: %v", err)
	}
	if sm.pendingInstruction != nil {
		t.Error("pending instruction should be consumed")
	}
	if sm.PC != 1 {
		t.Errorf("PC after running injected NOP = %d, want 1", sm.PC)
	}
}

// S6: wrap rewrites PC to WRAP_BOTTOM the cycle after WRAP_TOP
// completes, regardless of WRAP_BOTTOM <= WRAP_TOP.
func TestScenarioS6Wrap(t *testing.T) {
	sm := newTestSM()
	mem := sm.memory.(*ProgramMemory)
	sm.SetWrapTop(3)
	sm.SetWrapBottom(1)
	sm.PC = 3
	mem.Set(3, encodeWord(classMOV, 0, uint8(MovDestY), uint8(MovSrcY)))

	if err := sm.ClockRisingEdge(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if sm.PC != 1 {
		t.Errorf("PC after wrap = %d, want 1", sm.PC)
	}
}

func TestBitReverseInvolution(t *testing.T) {
	sm := newTestSM()
	sm.X = 0x12345678
	op := movOp{Dest: MovDestX, Op: MovOpBitReverse, Src: MovSrcX}
	op.execute(sm)
	op.execute(sm)
	if sm.X != 0x12345678 {
		t.Errorf("X after two bit-reversals = 0x%x, want 0x12345678", sm.X)
	}
}

func TestJmpXNotEqualYComparesBothRegisters(t *testing.T) {
	sm := newTestSM()
	sm.X, sm.Y = 5, 5
	op := jmpOp{Address: 9, Cond: JmpXNotEqualY}
	if state := op.execute(sm); state != ResultComplete {
		t.Fatalf("X==Y should not fire X!=Y, got %v", state)
	}
	sm.Y = 6
	if state := op.execute(sm); state != ResultJump || sm.PC != 9 {
		t.Fatalf("X!=Y should fire once registers differ, got %v PC=%d", state, sm.PC)
	}
}

func TestInYReadsY(t *testing.T) {
	sm := newTestSM()
	sm.Y = 0xAA
	op := inOp{Source: InY, BitCount: 8}
	op.execute(sm)
	if sm.isr.value != 0xAA {
		t.Errorf("ISR after IN Y = 0x%x, want 0xAA (not X)", sm.isr.value)
	}
}

func TestRelativeIRQIndexing(t *testing.T) {
	// index = 0x10 | r, effective = (smNum + r) & 0x3.
	if got := relativeIRQIndex(2, 0x10|1); got != 3 {
		t.Errorf("relativeIRQIndex(2, 0x11) = %d, want 3", got)
	}
}

func TestDecodeErrorIsFatalButDoesNotAdvancePC(t *testing.T) {
	sm := newTestSM()
	mem := sm.memory.(*ProgramMemory)
	// WAIT with reserved source selector 3.
	mem.Set(0, encodeWord(classWAIT, 0, 3, 0))
	sm.PC = 0

	err := sm.ClockRisingEdge()
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if sm.PC != 0 {
		t.Errorf("PC should not advance on decode error, got %d", sm.PC)
	}
}

func TestSideEnGatesSideSetApplication(t *testing.T) {
	sm := newTestSM()
	sm.SetSideEn(true)
	if err := sm.SetSideSetCount(2); err != nil {
		t.Fatal(err)
	}
	// df = 0b0_00_01 (enable bit clear, value bits 01, low bits delay).
	_, ss := decodeDelayAndSideSet(0b00001, sm.pinCtrl.SidesetCount, sm.execCtrl.SideEn)
	if ss.Present {
		t.Error("side-set should not apply when the enable bit is clear")
	}
	// df = 0b1_01_01 -> enable set, side value bits (df&0xF)>>3 = 0b0101>>3 = 0
	_, ss2 := decodeDelayAndSideSet(0b10101, sm.pinCtrl.SidesetCount, sm.execCtrl.SideEn)
	if !ss2.Present {
		t.Error("side-set should apply when the enable bit is set")
	}
}
