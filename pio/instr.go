package pio

import "fmt"

// ResultState reports how an executed instruction wants the engine to
// treat the program counter and delay counter.
type ResultState uint8

const (
	// ResultComplete is the normal case: the engine advances PC with
	// wrap and arms the instruction's delay.
	ResultComplete ResultState = iota
	// ResultStall means the instruction did not retire; PC is
	// unchanged and no delay is armed. The engine re-runs the same
	// instruction next tick.
	ResultStall
	// ResultJump means the instruction updated PC itself; the engine
	// must not apply wrap, but it does arm the delay.
	ResultJump
)

func (s ResultState) String() string {
	switch s {
	case ResultComplete:
		return "complete"
	case ResultStall:
		return "stall"
	case ResultJump:
		return "jump"
	default:
		return "unknown"
	}
}

// SideSetField is the decoded side-set portion of an instruction word.
// Present is false both when SIDESET_COUNT is 0 and when SIDE_EN gates
// the side-set off for this particular instruction.
type SideSetField struct {
	Present bool
	Value   uint8
}

// Operation is a decoded instruction's class-specific behavior.
type Operation interface {
	fmt.Stringer
	execute(sm *StateMachine) ResultState
}

// Instruction is a fully decoded 16-bit instruction word: its shared
// delay/side-set annotation plus the class-specific Operation.
type Instruction struct {
	Delay   uint8
	SideSet SideSetField
	Op      Operation
}

func (ins *Instruction) String() string {
	s := ins.Op.String()
	if ins.SideSet.Present {
		s += fmt.Sprintf(" side %d", ins.SideSet.Value)
	}
	if ins.Delay != 0 {
		s += fmt.Sprintf(" [%d]", ins.Delay)
	}
	return s
}

// decodeDelayAndSideSet splits the shared 5-bit delay/side-set field
// (bits 8..12 of the instruction word): when SIDE_EN is set, the top
// bit of the field gates whether the remaining side-set bits are
// actually applied. The reference Java decoder computes the value
// unconditionally but never checks the gate bit; this function
// applies the gate.
func decodeDelayAndSideSet(df uint8, sidesetCount uint8, sideEn bool) (delay uint8, ss SideSetField) {
	delayMask := uint8(0x1f >> sidesetCount)
	delay = df & delayMask

	if sidesetCount == 0 {
		return delay, SideSetField{}
	}
	if sideEn {
		enableBit := (df >> 4) & 1
		if enableBit == 0 {
			return delay, SideSetField{}
		}
		value := (df & 0x0f) >> (5 - sidesetCount)
		return delay, SideSetField{Present: true, Value: value}
	}
	value := df >> (5 - sidesetCount)
	return delay, SideSetField{Present: true, Value: value}
}

// opcode classes, from bits 13..15 of the instruction word.
const (
	classJMP      = 0
	classWAIT     = 1
	classIN       = 2
	classOUT      = 3
	classPUSHPULL = 4
	classMOV      = 5
	classIRQ      = 6
	classSET      = 7
)

// Decode materializes an Instruction from a 16-bit word, given the
// decoding state machine's current SIDESET_COUNT and SIDE_EN. It
// returns a *DecodeError for reserved opcodes or operand encodings.
func Decode(word uint16, sidesetCount uint8, sideEn bool) (*Instruction, error) {
	class := uint8(word>>13) & 0x7
	df := uint8(word>>8) & 0x1f
	lsb := uint8(word)

	delay, ss := decodeDelayAndSideSet(df, sidesetCount, sideEn)

	var op Operation
	var err error
	switch class {
	case classJMP:
		op, err = decodeJmp(word, lsb)
	case classWAIT:
		op, err = decodeWait(word, lsb)
	case classIN:
		op, err = decodeIn(word, lsb)
	case classOUT:
		op, err = decodeOut(word, lsb)
	case classPUSHPULL:
		op, err = decodePushPull(word, lsb)
	case classMOV:
		op, err = decodeMov(word, lsb)
	case classIRQ:
		op, err = decodeIRQ(word, lsb)
	case classSET:
		op, err = decodeSet(word, lsb)
	}
	if err != nil {
		return nil, err
	}
	return &Instruction{Delay: delay, SideSet: ss, Op: op}, nil
}

// checkIRQIndex validates the shared WAIT/IRQ 5-bit index operand:
// bit 0x08 must be clear, and relative (0x10) and 0x04 addressing
// must not both be requested.
func checkIRQIndex(word uint16, index uint8) error {
	if index&0x08 != 0 {
		return decodeErrorf(word, "reserved IRQ index bit 0x08 set (index=0x%02x)", index)
	}
	if index&0x10 != 0 && index&0x04 != 0 {
		return decodeErrorf(word, "IRQ index cannot combine relative (0x10) and 0x04 (index=0x%02x)", index)
	}
	return nil
}
