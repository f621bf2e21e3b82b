package pio

import "fmt"

// JmpCond selects which of the eight JMP conditions to test.
type JmpCond uint8

const (
	JmpAlways      JmpCond = iota
	JmpXZero               // !X
	JmpXNZeroDec           // X--
	JmpYZero               // !Y
	JmpYNZeroDec           // Y--
	JmpXNotEqualY          // X!=Y
	JmpPinInput            // PIN
	JmpOSRNotEmpty         // !OSRE
)

func (c JmpCond) String() string {
	switch c {
	case JmpAlways:
		return ""
	case JmpXZero:
		return "!x"
	case JmpXNZeroDec:
		return "x--"
	case JmpYZero:
		return "!y"
	case JmpYNZeroDec:
		return "y--"
	case JmpXNotEqualY:
		return "x!=y"
	case JmpPinInput:
		return "pin"
	case JmpOSRNotEmpty:
		return "!osre"
	default:
		return "?"
	}
}

type jmpOp struct {
	Address uint8
	Cond    JmpCond
}

func decodeJmp(word uint16, lsb uint8) (Operation, error) {
	return jmpOp{
		Address: lsb & 0x1f,
		Cond:    JmpCond((lsb >> 5) & 0x7),
	}, nil
}

func (op jmpOp) String() string {
	if op.Cond == JmpAlways {
		return fmt.Sprintf("jmp %d", op.Address)
	}
	return fmt.Sprintf("jmp %s, %d", op.Cond, op.Address)
}

func (op jmpOp) execute(sm *StateMachine) ResultState {
	fire := false
	switch op.Cond {
	case JmpAlways:
		fire = true
	case JmpXZero:
		fire = sm.X == 0
	case JmpXNZeroDec:
		fire = sm.X != 0
		sm.X--
	case JmpYZero:
		fire = sm.Y == 0
	case JmpYNZeroDec:
		fire = sm.Y != 0
		sm.Y--
	case JmpXNotEqualY:
		fire = sm.X != sm.Y
	case JmpPinInput:
		fire = sm.gpio.GetBit(uint(sm.execCtrl.JmpPin))
	case JmpOSRNotEmpty:
		fire = uint(sm.osr.count) < normalizeThreshold(sm.shiftCtrl.PullThresh)
	}
	if fire {
		sm.PC = op.Address & 0x1f
		return ResultJump
	}
	return ResultComplete
}
