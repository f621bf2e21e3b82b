package pio

import "fmt"

// StateMachine is one of the (up to four) independent PIO execution
// engines: fetch/decode/execute loop, shift registers, scratch
// registers, and the three packed configuration registers.
type StateMachine struct {
	// Num identifies this state machine (0..3) for relative IRQ
	// addressing.
	Num uint8

	X, Y uint32

	isr shiftReg
	osr shiftReg

	PC uint8

	Enabled      bool
	ClockEnabled bool

	pendingDelay       uint8
	pendingInstruction *uint16

	execCtrl  execCtrl
	shiftCtrl shiftCtrl
	pinCtrl   pinCtrl

	memory Memory
	gpio   GPIO
	irq    IRQ
	fifo   FIFO
	pll    PLL
}

// NewStateMachine constructs a state machine with the RP2040's reset
// defaults: WRAP_TOP at the top of memory, OSR starting empty
// (osrShiftCount=32), everything else zero.
func NewStateMachine(num uint8, memory Memory, gpio GPIO, irq IRQ, fifo FIFO, pll PLL) *StateMachine {
	sm := &StateMachine{
		Num:    num & 0x3,
		memory: memory,
		gpio:   gpio,
		irq:    irq,
		fifo:   fifo,
		pll:    pll,
	}
	sm.execCtrl.WrapTop = 0x1f
	sm.osr.count = 32
	return sm
}

// Restart clears internal state which is otherwise difficult to reach
// from outside: shift counters, PC, the pending delay and pending
// instruction slot. Configuration registers are untouched, matching
// tinygo-org-pio's own StateMachine.Restart, which only clears state
// "otherwise difficult to access" and leaves EXECCTRL/SHIFTCTRL/
// PINCTRL alone.
func (sm *StateMachine) Restart() {
	sm.isr = shiftReg{}
	sm.osr = shiftReg{count: 32}
	sm.PC = 0
	sm.pendingDelay = 0
	sm.pendingInstruction = nil
}

// Enable turns the state machine on; Disable halts it. Neither
// resets any state — restarting is a separate, explicit operation.
func (sm *StateMachine) Enable()  { sm.Enabled = true }
func (sm *StateMachine) Disable() { sm.Enabled = false }

// insertInstruction queues word to be fetched in place of memory[PC]
// on the next cycle (used by OUT EXEC and MOV EXEC). Inserting a
// second instruction while one is pending is a programming error.
func (sm *StateMachine) insertInstruction(word uint16) {
	if sm.pendingInstruction != nil {
		panic(badPendingInstruction)
	}
	w := word
	sm.pendingInstruction = &w
}

// InsertInstruction is the external-loader form of insertInstruction.
func (sm *StateMachine) InsertInstruction(word uint16) { sm.insertInstruction(word) }

func (sm *StateMachine) fetch() uint16 {
	if sm.pendingInstruction != nil {
		word := *sm.pendingInstruction
		sm.pendingInstruction = nil
		return word
	}
	return sm.memory.Get(sm.PC)
}

// ClockRisingEdge runs one cycle if the state machine is enabled and
// clock-gated on: while a delay is pending it only counts the delay
// down by one, otherwise it does one fetch/decode/execute. A decode error is
// returned to the caller; the engine does not advance PC and leaves
// disabling the state machine to the host.
func (sm *StateMachine) ClockRisingEdge() error {
	if !sm.Enabled || !sm.ClockEnabled {
		return nil
	}
	if sm.pendingDelay > 0 {
		sm.pendingDelay--
		return nil
	}

	word := sm.fetch()
	instr, err := Decode(word, sm.pinCtrl.SidesetCount, sm.execCtrl.SideEn)
	if err != nil {
		return err
	}

	state := instr.Op.execute(sm)

	if instr.SideSet.Present {
		sm.applySideSet(instr.SideSet.Value)
	}

	switch state {
	case ResultComplete:
		if sm.PC == sm.execCtrl.WrapTop {
			sm.PC = sm.execCtrl.WrapBottom
		} else {
			sm.PC = (sm.PC + 1) & 0x1f
		}
	case ResultJump:
		// PC was already set by the instruction; no wrap applies.
	case ResultStall:
		// PC unchanged, no delay armed.
	}

	if state != ResultStall {
		sm.pendingDelay = instr.Delay
	}
	return nil
}

// Tick advances the state machine's clock divider by one host clock
// and runs a cycle if that produced a rising edge.
func (sm *StateMachine) Tick() error {
	if sm.pll.Tick() {
		return sm.ClockRisingEdge()
	}
	return nil
}

func (sm *StateMachine) applySideSet(value uint8) {
	base := uint(sm.pinCtrl.SidesetBase)
	count := uint(sm.pinCtrl.SidesetCount)
	data := uint32(value)
	if sm.execCtrl.SidePindir == SidePinDirs {
		sm.gpio.SetPinDirs(data, base, count)
	} else {
		sm.gpio.SetPins(data, base, count)
	}
}

// rxPush implements the autopush-aware ISR->RX transfer. It returns
// true when the caller should stall.
func (sm *StateMachine) rxPush(ifFull, block bool) bool {
	isrFull := uint(sm.isr.count) >= normalizeThreshold(sm.shiftCtrl.PushThresh)
	do := !ifFull || (isrFull && sm.shiftCtrl.Autopush)
	if !do {
		return false
	}
	if sm.fifo.RXFull() {
		return block
	}
	sm.fifo.RXPush(sm.isr.value)
	sm.isr.value = 0
	sm.isr.count = 0
	return false
}

// txPull implements the autopull-aware TX->OSR transfer. It returns
// true when the caller should stall.
func (sm *StateMachine) txPull(ifEmpty, block bool) bool {
	osrEmpty := uint(sm.osr.count) >= normalizeThreshold(sm.shiftCtrl.PullThresh)
	do := !ifEmpty || (osrEmpty && sm.shiftCtrl.Autopull)
	if !do {
		return false
	}
	if sm.fifo.TXEmpty() {
		if !block {
			sm.osr.value = sm.X
			sm.osr.count = 0
		}
		return block
	}
	sm.osr.value = sm.fifo.TXPull()
	sm.osr.count = 0
	return false
}

// movStatus computes the value MOV STATUS reads: all-ones when the
// selected FIFO level is below STATUS_N, else zero.
func (sm *StateMachine) movStatus() uint32 {
	var level int
	if sm.execCtrl.StatusSel {
		level = sm.fifo.RXLevel()
	} else {
		level = sm.fifo.TXLevel()
	}
	if level < int(sm.execCtrl.StatusN) {
		return ^uint32(0)
	}
	return 0
}

// Memory, GPIO, IRQ, FIFO and PLL expose the collaborators a state
// machine was constructed with, so a host can reach past the
// StateMachine API for things like direct memory loads or FIFO
// inspection that aren't part of the device's own register interface.
func (sm *StateMachine) Memory() Memory { return sm.memory }
func (sm *StateMachine) GPIO() GPIO     { return sm.gpio }
func (sm *StateMachine) IRQ() IRQ       { return sm.irq }
func (sm *StateMachine) FIFO() FIFO     { return sm.fifo }
func (sm *StateMachine) PLL() PLL       { return sm.pll }

// ---- register-level accessors ----

func (sm *StateMachine) GetEXECCTRL() uint32  { return packExecCtrl(sm.execCtrl) }
func (sm *StateMachine) GetSHIFTCTRL() uint32 { return packShiftCtrl(sm.shiftCtrl) }
func (sm *StateMachine) GetPINCTRL() uint32   { return packPinCtrl(sm.pinCtrl) }

func (sm *StateMachine) SetEXECCTRL(v uint32) error {
	c := unpackExecCtrl(v)
	if err := validateRange("JMP_PIN", c.JmpPin, 31); err != nil {
		return err
	}
	if err := validateRange("WRAP_TOP", c.WrapTop, 31); err != nil {
		return err
	}
	if err := validateRange("WRAP_BOTTOM", c.WrapBottom, 31); err != nil {
		return err
	}
	sm.execCtrl = c
	return nil
}

func (sm *StateMachine) SetSHIFTCTRL(v uint32) error {
	sm.shiftCtrl = unpackShiftCtrl(v)
	sm.fifo.SetJoinRX(sm.shiftCtrl.JoinRX)
	sm.fifo.SetJoinTX(sm.shiftCtrl.JoinTX)
	return nil
}

func (sm *StateMachine) SetPINCTRL(v uint32) error {
	c := unpackPinCtrl(v)
	if err := validateRange("SIDESET_COUNT", c.SidesetCount, 5); err != nil {
		return err
	}
	if err := validateRange("SET_COUNT", c.SetCount, 5); err != nil {
		return err
	}
	if err := validateRange("OUT_COUNT", c.OutCount, 31); err != nil {
		return err
	}
	if err := validateRange("IN_BASE", c.InBase, 31); err != nil {
		return err
	}
	if err := validateRange("SIDESET_BASE", c.SidesetBase, 31); err != nil {
		return err
	}
	if err := validateRange("SET_BASE", c.SetBase, 31); err != nil {
		return err
	}
	if err := validateRange("OUT_BASE", c.OutBase, 31); err != nil {
		return err
	}
	sm.pinCtrl = c
	return nil
}

func (sm *StateMachine) SetCLKDIV(div uint32) { sm.pll.SetCLKDIV(div) }
func (sm *StateMachine) GetCLKDIV() uint32    { return sm.pll.GetCLKDIV() }

// ---- granular setters, one per named field ----

func (sm *StateMachine) SetPC(pc uint8) error {
	if err := validateRange("PC", pc, 31); err != nil {
		return err
	}
	sm.PC = pc
	return nil
}

func (sm *StateMachine) SetX(x uint32) { sm.X = x }
func (sm *StateMachine) SetY(y uint32) { sm.Y = y }

func (sm *StateMachine) SetISRValue(v uint32) { sm.isr.value = v }
func (sm *StateMachine) SetOSRValue(v uint32) { sm.osr.value = v }

// ISR and OSR expose the shift registers' full state (value and
// saturating shift count), used by pio/snapshot to capture and
// restore a state machine exactly.
func (sm *StateMachine) ISR() (value uint32, count uint8) { return sm.isr.value, sm.isr.count }
func (sm *StateMachine) OSR() (value uint32, count uint8) { return sm.osr.value, sm.osr.count }

// SetISR and SetOSR restore both the value and shift count, the
// counterpart to ISR and OSR.
func (sm *StateMachine) SetISR(value uint32, count uint8) {
	sm.isr = shiftReg{value: value, count: count}
}
func (sm *StateMachine) SetOSR(value uint32, count uint8) {
	sm.osr = shiftReg{value: value, count: count}
}

func (sm *StateMachine) SetSideSetCount(c uint8) error {
	if err := validateRange("SIDESET_COUNT", c, 5); err != nil {
		return err
	}
	sm.pinCtrl.SidesetCount = c
	return nil
}

func (sm *StateMachine) SetSetCount(c uint8) error {
	if err := validateRange("SET_COUNT", c, 5); err != nil {
		return err
	}
	sm.pinCtrl.SetCount = c
	return nil
}

func (sm *StateMachine) SetOutCount(c uint8) error {
	if err := validateRange("OUT_COUNT", c, 31); err != nil {
		return err
	}
	sm.pinCtrl.OutCount = c
	return nil
}

func (sm *StateMachine) SetInBase(b uint8) error {
	if err := validateRange("IN_BASE", b, 31); err != nil {
		return err
	}
	sm.pinCtrl.InBase = b
	return nil
}

func (sm *StateMachine) SetSidesetBase(b uint8) error {
	if err := validateRange("SIDESET_BASE", b, 31); err != nil {
		return err
	}
	sm.pinCtrl.SidesetBase = b
	return nil
}

func (sm *StateMachine) SetSetBase(b uint8) error {
	if err := validateRange("SET_BASE", b, 31); err != nil {
		return err
	}
	sm.pinCtrl.SetBase = b
	return nil
}

func (sm *StateMachine) SetOutBase(b uint8) error {
	if err := validateRange("OUT_BASE", b, 31); err != nil {
		return err
	}
	sm.pinCtrl.OutBase = b
	return nil
}

func (sm *StateMachine) SetJmpPin(p uint8) error {
	if err := validateRange("JMP_PIN", p, 31); err != nil {
		return err
	}
	sm.execCtrl.JmpPin = p
	return nil
}

func (sm *StateMachine) SetWrapTop(p uint8) error {
	if err := validateRange("WRAP_TOP", p, 31); err != nil {
		return err
	}
	sm.execCtrl.WrapTop = p
	return nil
}

func (sm *StateMachine) SetWrapBottom(p uint8) error {
	if err := validateRange("WRAP_BOTTOM", p, 31); err != nil {
		return err
	}
	sm.execCtrl.WrapBottom = p
	return nil
}

func (sm *StateMachine) SetStatusSel(v bool) { sm.execCtrl.StatusSel = v }

func (sm *StateMachine) SetStatusN(n uint8) error {
	if err := validateRange("STATUS_N", n, 15); err != nil {
		return err
	}
	sm.execCtrl.StatusN = n
	return nil
}

func (sm *StateMachine) SetSideEn(v bool)           { sm.execCtrl.SideEn = v }
func (sm *StateMachine) SetSidePindir(v SidePindir) { sm.execCtrl.SidePindir = v }

func (sm *StateMachine) SetPullThresh(t uint8) error {
	if err := validateRange("PULL_THRESH", t, 31); err != nil {
		return err
	}
	sm.shiftCtrl.PullThresh = t
	return nil
}

func (sm *StateMachine) SetPushThresh(t uint8) error {
	if err := validateRange("PUSH_THRESH", t, 31); err != nil {
		return err
	}
	sm.shiftCtrl.PushThresh = t
	return nil
}

func (sm *StateMachine) SetInShiftDir(d ShiftDir)  { sm.shiftCtrl.InShiftDir = d }
func (sm *StateMachine) SetOutShiftDir(d ShiftDir) { sm.shiftCtrl.OutShiftDir = d }
func (sm *StateMachine) SetAutopull(v bool)        { sm.shiftCtrl.Autopull = v }
func (sm *StateMachine) SetAutopush(v bool)        { sm.shiftCtrl.Autopush = v }

func (sm *StateMachine) SetJoinRX(v bool) {
	sm.shiftCtrl.JoinRX = v
	sm.fifo.SetJoinRX(v)
}

func (sm *StateMachine) SetJoinTX(v bool) {
	sm.shiftCtrl.JoinTX = v
	sm.fifo.SetJoinTX(v)
}

// DumpMemory renders the full 32-word code memory as a mnemonic
// disassembly, substituting "???" for words that fail to decode,
// matching the RP2040 PIO disassembly tools' dump format.
func (sm *StateMachine) DumpMemory() string {
	out := ""
	for addr := 0; addr < MemorySize; addr++ {
		word := sm.memory.Get(uint8(addr))
		instr, err := Decode(word, sm.pinCtrl.SidesetCount, sm.execCtrl.SideEn)
		marker := "  "
		if addr == int(sm.PC) {
			marker = "->"
		}
		if err != nil {
			out += fmt.Sprintf("%s %02d: %04x  ???\n", marker, addr, word)
			continue
		}
		out += fmt.Sprintf("%s %02d: %04x  %s\n", marker, addr, word, instr)
	}
	return out
}
