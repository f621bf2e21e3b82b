package pio

import "fmt"

// WaitSource selects what a WAIT instruction samples.
type WaitSource uint8

const (
	WaitGPIO WaitSource = iota // absolute GPIO pad index
	WaitPin                    // IN_BASE-relative GPIO index
	WaitIRQ                    // shared IRQ flag bank
)

type waitOp struct {
	Polarity bool
	Source   WaitSource
	Index    uint8
}

func decodeWait(word uint16, lsb uint8) (Operation, error) {
	srcBits := (lsb >> 5) & 0x3
	if srcBits == 3 {
		return nil, decodeErrorf(word, "WAIT source 3 is reserved")
	}
	op := waitOp{
		Polarity: (lsb>>7)&1 != 0,
		Source:   WaitSource(srcBits),
		Index:    lsb & 0x1f,
	}
	if op.Source == WaitIRQ {
		if err := checkIRQIndex(word, op.Index); err != nil {
			return nil, err
		}
	}
	return op, nil
}

func (op waitOp) String() string {
	pol := 0
	if op.Polarity {
		pol = 1
	}
	var src string
	switch op.Source {
	case WaitGPIO:
		src = "gpio"
	case WaitPin:
		src = "pin"
	case WaitIRQ:
		src = "irq"
	}
	return fmt.Sprintf("wait %d %s %d", pol, src, op.Index)
}

func (op waitOp) execute(sm *StateMachine) ResultState {
	var bit bool
	var irqIndex uint
	switch op.Source {
	case WaitGPIO:
		bit = sm.gpio.GetBit(uint(op.Index))
	case WaitPin:
		bit = sm.gpio.GetBit(uint(sm.pinCtrl.InBase+op.Index) & 0x1f)
	case WaitIRQ:
		irqIndex = relativeIRQIndex(sm.Num, op.Index)
		bit = sm.irq.Get(irqIndex)
	}
	if bit != op.Polarity {
		return ResultStall
	}
	if op.Source == WaitIRQ && op.Polarity {
		sm.irq.Clear(irqIndex)
	}
	return ResultComplete
}
