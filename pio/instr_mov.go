package pio

import "fmt"

// MovDest selects what a MOV instruction writes to.
type MovDest uint8

const (
	MovDestPins MovDest = 0
	MovDestX    MovDest = 1
	MovDestY    MovDest = 2
	MovDestExec MovDest = 4
	MovDestPC   MovDest = 5
	MovDestISR  MovDest = 6
	MovDestOSR  MovDest = 7
)

// MovSrc selects what a MOV instruction reads from.
type MovSrc uint8

const (
	MovSrcPins   MovSrc = 0
	MovSrcX      MovSrc = 1
	MovSrcY      MovSrc = 2
	MovSrcNull   MovSrc = 3
	MovSrcStatus MovSrc = 5
	MovSrcISR    MovSrc = 6
	MovSrcOSR    MovSrc = 7
)

// MovOp is the optional transform applied between read and write.
type MovOp uint8

const (
	MovOpNone       MovOp = 0
	MovOpInvert     MovOp = 1
	MovOpBitReverse MovOp = 2
)

func (d MovDest) String() string {
	switch d {
	case MovDestPins:
		return "pins"
	case MovDestX:
		return "x"
	case MovDestY:
		return "y"
	case MovDestExec:
		return "exec"
	case MovDestPC:
		return "pc"
	case MovDestISR:
		return "isr"
	case MovDestOSR:
		return "osr"
	default:
		return "?"
	}
}

func (s MovSrc) String() string {
	switch s {
	case MovSrcPins:
		return "pins"
	case MovSrcX:
		return "x"
	case MovSrcY:
		return "y"
	case MovSrcNull:
		return "null"
	case MovSrcStatus:
		return "status"
	case MovSrcISR:
		return "isr"
	case MovSrcOSR:
		return "osr"
	default:
		return "?"
	}
}

type movOp struct {
	Dest MovDest
	Op   MovOp
	Src  MovSrc
}

func decodeMov(word uint16, lsb uint8) (Operation, error) {
	dest := MovDest((lsb >> 5) & 0x7)
	switch dest {
	case MovDestPins, MovDestX, MovDestY, MovDestExec, MovDestPC, MovDestISR, MovDestOSR:
	default:
		return nil, decodeErrorf(word, "MOV destination %d is reserved", dest)
	}

	op := MovOp((lsb >> 3) & 0x3)
	if op == 3 {
		return nil, decodeErrorf(word, "MOV operation 3 is reserved")
	}

	src := MovSrc(lsb & 0x7)
	switch src {
	case MovSrcPins, MovSrcX, MovSrcY, MovSrcNull, MovSrcStatus, MovSrcISR, MovSrcOSR:
	default:
		return nil, decodeErrorf(word, "MOV source %d is reserved", src)
	}

	return movOp{Dest: dest, Op: op, Src: src}, nil
}

func (op movOp) String() string {
	switch op.Op {
	case MovOpInvert:
		return fmt.Sprintf("mov %s, ~%s", op.Dest, op.Src)
	case MovOpBitReverse:
		return fmt.Sprintf("mov %s, ::%s", op.Dest, op.Src)
	default:
		return fmt.Sprintf("mov %s, %s", op.Dest, op.Src)
	}
}

func (op movOp) execute(sm *StateMachine) ResultState {
	var data uint32
	switch op.Src {
	case MovSrcPins:
		data = sm.gpio.GetPins(uint(sm.pinCtrl.InBase), 32)
	case MovSrcX:
		data = sm.X
	case MovSrcY:
		data = sm.Y
	case MovSrcNull:
		data = 0
	case MovSrcStatus:
		data = sm.movStatus()
	case MovSrcISR:
		data = sm.isr.value
	case MovSrcOSR:
		data = sm.osr.value
	}

	switch op.Op {
	case MovOpInvert:
		data = ^data
	case MovOpBitReverse:
		data = reverse32(data)
	}

	switch op.Dest {
	case MovDestPins:
		sm.gpio.SetPins(data, uint(sm.pinCtrl.OutBase), 32)
	case MovDestX:
		sm.X = data
	case MovDestY:
		sm.Y = data
	case MovDestExec:
		sm.insertInstruction(uint16(data))
	case MovDestPC:
		sm.PC = uint8(data) & 0x1f
	case MovDestISR:
		sm.isr.value = data
	case MovDestOSR:
		sm.osr.value = data
	}

	switch op.Dest {
	case MovDestExec:
		return ResultStall
	case MovDestPC:
		return ResultJump
	default:
		return ResultComplete
	}
}
