package pio

import "fmt"

// OutDest selects what an OUT instruction writes shifted bits to.
type OutDest uint8

const (
	OutPins    OutDest = 0
	OutX       OutDest = 1
	OutY       OutDest = 2
	OutNull    OutDest = 3
	OutPinDirs OutDest = 4
	OutPC      OutDest = 5
	OutISR     OutDest = 6
	OutExec    OutDest = 7
)

func (d OutDest) String() string {
	switch d {
	case OutPins:
		return "pins"
	case OutX:
		return "x"
	case OutY:
		return "y"
	case OutNull:
		return "null"
	case OutPinDirs:
		return "pindirs"
	case OutPC:
		return "pc"
	case OutISR:
		return "isr"
	case OutExec:
		return "exec"
	default:
		return "?"
	}
}

type outOp struct {
	Dest     OutDest
	BitCount uint8
}

func decodeOut(word uint16, lsb uint8) (Operation, error) {
	dest := OutDest((lsb >> 5) & 0x7)
	n := lsb & 0x1f
	if n == 0 {
		n = 32
	}
	return outOp{Dest: dest, BitCount: n}, nil
}

func (op outOp) String() string {
	return fmt.Sprintf("out %s, %d", op.Dest, op.BitCount)
}

func (op outOp) execute(sm *StateMachine) ResultState {
	data := sm.osr.shiftOut(sm.shiftCtrl.OutShiftDir, uint(op.BitCount))

	switch op.Dest {
	case OutPins:
		sm.gpio.SetPins(data, uint(sm.pinCtrl.OutBase), uint(op.BitCount))
	case OutX:
		sm.X = data
	case OutY:
		sm.Y = data
	case OutNull:
	case OutPinDirs:
		sm.gpio.SetPinDirs(data, uint(sm.pinCtrl.OutBase), uint(op.BitCount))
	case OutPC:
		sm.PC = uint8(data) & 0x1f
	case OutISR:
		sm.isr.value = data
	case OutExec:
		sm.insertInstruction(uint16(data))
	}

	stall := sm.txPull(true, true)

	switch {
	case op.Dest == OutExec:
		return ResultStall
	case op.Dest == OutPC:
		return ResultJump
	case stall:
		return ResultStall
	default:
		return ResultComplete
	}
}
