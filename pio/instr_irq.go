package pio

import "fmt"

type irqOp struct {
	Clear bool
	Wait  bool
	Index uint8
}

func decodeIRQ(word uint16, lsb uint8) (Operation, error) {
	if lsb&0x80 != 0 {
		return nil, decodeErrorf(word, "IRQ reserved bit 0x80 set")
	}
	index := lsb & 0x1f
	if err := checkIRQIndex(word, index); err != nil {
		return nil, err
	}
	clr := lsb&0x40 != 0
	wait := lsb&0x20 != 0
	if clr {
		// A clear-and-wait encoding is accepted; wait has no effect
		// once the flag is already being cleared this instruction.
		wait = false
	}
	return irqOp{Clear: clr, Wait: wait, Index: index}, nil
}

func (op irqOp) String() string {
	switch {
	case op.Clear:
		return fmt.Sprintf("irq clear %d", op.Index)
	case op.Wait:
		return fmt.Sprintf("irq wait %d", op.Index)
	default:
		return fmt.Sprintf("irq set %d", op.Index)
	}
}

func (op irqOp) execute(sm *StateMachine) ResultState {
	idx := relativeIRQIndex(sm.Num, op.Index)
	if op.Clear {
		sm.irq.Clear(idx)
		return ResultComplete
	}
	sm.irq.Set(idx)
	if op.Wait && sm.irq.Get(idx) {
		return ResultStall
	}
	return ResultComplete
}
