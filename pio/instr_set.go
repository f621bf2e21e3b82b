package pio

import "fmt"

// SetDest selects what a SET instruction writes its 5-bit immediate to.
type SetDest uint8

const (
	SetDestPins    SetDest = 0
	SetDestX       SetDest = 1
	SetDestY       SetDest = 2
	SetDestPinDirs SetDest = 4
)

func (d SetDest) String() string {
	switch d {
	case SetDestPins:
		return "pins"
	case SetDestX:
		return "x"
	case SetDestY:
		return "y"
	case SetDestPinDirs:
		return "pindirs"
	default:
		return "?"
	}
}

type setOp struct {
	Dest SetDest
	Data uint8
}

func decodeSet(word uint16, lsb uint8) (Operation, error) {
	dest := SetDest((lsb >> 5) & 0x7)
	switch dest {
	case SetDestPins, SetDestX, SetDestY, SetDestPinDirs:
	default:
		return nil, decodeErrorf(word, "SET destination %d is reserved", dest)
	}
	return setOp{Dest: dest, Data: lsb & 0x1f}, nil
}

func (op setOp) String() string {
	return fmt.Sprintf("set %s, %d", op.Dest, op.Data)
}

func (op setOp) execute(sm *StateMachine) ResultState {
	data := uint32(op.Data)
	switch op.Dest {
	case SetDestPins:
		sm.gpio.SetPins(data, uint(sm.pinCtrl.SetBase), uint(sm.pinCtrl.SetCount))
	case SetDestX:
		sm.X = data
	case SetDestY:
		sm.Y = data
	case SetDestPinDirs:
		sm.gpio.SetPinDirs(data, uint(sm.pinCtrl.SetBase), uint(sm.pinCtrl.SetCount))
	}
	return ResultComplete
}
