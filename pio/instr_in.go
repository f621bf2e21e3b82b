package pio

import "fmt"

// InSource selects what an IN instruction reads bits from.
type InSource uint8

const (
	InPins InSource = 0
	InX    InSource = 1
	InY    InSource = 2
	InNull InSource = 3
	InISR  InSource = 6
	InOSR  InSource = 7
)

func (s InSource) String() string {
	switch s {
	case InPins:
		return "pins"
	case InX:
		return "x"
	case InY:
		return "y"
	case InNull:
		return "null"
	case InISR:
		return "isr"
	case InOSR:
		return "osr"
	default:
		return "?"
	}
}

type inOp struct {
	Source   InSource
	BitCount uint8 // 1..32, 32 stored as 32
}

func decodeIn(word uint16, lsb uint8) (Operation, error) {
	srcBits := InSource((lsb >> 5) & 0x7)
	switch srcBits {
	case InPins, InX, InY, InNull, InISR, InOSR:
	default:
		return nil, decodeErrorf(word, "IN source %d is reserved", srcBits)
	}
	n := lsb & 0x1f
	if n == 0 {
		n = 32
	}
	return inOp{Source: srcBits, BitCount: n}, nil
}

func (op inOp) String() string {
	return fmt.Sprintf("in %s, %d", op.Source, op.BitCount)
}

func (op inOp) execute(sm *StateMachine) ResultState {
	var data uint32
	switch op.Source {
	case InPins:
		data = sm.gpio.GetPins(uint(sm.pinCtrl.InBase), uint(op.BitCount))
	case InX:
		data = sm.X
	case InY:
		data = sm.Y
	case InNull:
		data = 0
	case InISR:
		data = sm.isr.value
	case InOSR:
		data = sm.osr.value
	}
	sm.isr.shiftIn(sm.shiftCtrl.InShiftDir, data, uint(op.BitCount))
	if sm.rxPush(true, true) {
		return ResultStall
	}
	return ResultComplete
}
