package pio

import "fmt"

type pushOp struct {
	IfFull bool
	Block  bool
}

type pullOp struct {
	IfEmpty bool
	Block   bool
}

// decodePushPull disambiguates PUSH from PULL using bit 0x80 of the
// operand byte (the class's major opcode bits alone, 100, are shared
// between the two — see rp2-pio/instr.go's INSTR_BITS_PUSH=0x8000 vs
// INSTR_BITS_PULL=0x8080 for the same split at encode time).
func decodePushPull(word uint16, lsb uint8) (Operation, error) {
	if lsb&0x1f != 0 {
		return nil, decodeErrorf(word, "PUSH/PULL reserved operand bits must be zero (got 0x%02x)", lsb&0x1f)
	}
	ifFlag := lsb&0x40 != 0
	block := lsb&0x20 != 0
	if lsb&0x80 != 0 {
		return pullOp{IfEmpty: ifFlag, Block: block}, nil
	}
	return pushOp{IfFull: ifFlag, Block: block}, nil
}

func (op pushOp) String() string {
	return fmt.Sprintf("push %s %s", boolFlag(op.IfFull, "iffull"), boolFlag(op.Block, "block"))
}

func (op pushOp) execute(sm *StateMachine) ResultState {
	if sm.rxPush(op.IfFull, op.Block) {
		return ResultStall
	}
	return ResultComplete
}

func (op pullOp) String() string {
	return fmt.Sprintf("pull %s %s", boolFlag(op.IfEmpty, "ifempty"), boolFlag(op.Block, "block"))
}

func (op pullOp) execute(sm *StateMachine) ResultState {
	if sm.txPull(op.IfEmpty, op.Block) {
		return ResultStall
	}
	return ResultComplete
}

func boolFlag(b bool, name string) string {
	if b {
		return name
	}
	return ""
}
