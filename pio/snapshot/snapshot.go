// Package snapshot encodes and restores a state machine's register
// file as CBOR, for save/restore across cmd/piosim sessions and as a
// test fixture format.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"rp2040pio/pio"
)

// Registers is the CBOR wire form of a StateMachine's register file:
// scratch registers, shift registers, program counter, and the three
// packed configuration registers.
type Registers struct {
	X uint32 `cbor:"1,keyasint"`
	Y uint32 `cbor:"2,keyasint"`

	ISRValue uint32 `cbor:"3,keyasint"`
	ISRCount uint8  `cbor:"4,keyasint"`
	OSRValue uint32 `cbor:"5,keyasint"`
	OSRCount uint8  `cbor:"6,keyasint"`

	PC uint8 `cbor:"7,keyasint"`

	ExecCtrl  uint32 `cbor:"8,keyasint"`
	ShiftCtrl uint32 `cbor:"9,keyasint"`
	PinCtrl   uint32 `cbor:"10,keyasint"`

	Enabled      bool `cbor:"11,keyasint,omitempty"`
	ClockEnabled bool `cbor:"12,keyasint,omitempty"`
}

// Capture reads sm's register file into a Registers value.
func Capture(sm *pio.StateMachine) Registers {
	isrValue, isrCount := sm.ISR()
	osrValue, osrCount := sm.OSR()
	return Registers{
		X:            sm.X,
		Y:            sm.Y,
		ISRValue:     isrValue,
		ISRCount:     isrCount,
		OSRValue:     osrValue,
		OSRCount:     osrCount,
		PC:           sm.PC,
		ExecCtrl:     sm.GetEXECCTRL(),
		ShiftCtrl:    sm.GetSHIFTCTRL(),
		PinCtrl:      sm.GetPINCTRL(),
		Enabled:      sm.Enabled,
		ClockEnabled: sm.ClockEnabled,
	}
}

// Restore writes r's fields back into sm, in register-dependency order:
// the packed config registers first (SetPINCTRL validates against
// SIDESET_COUNT-free bounds, not against register values from r), then
// everything else.
func Restore(sm *pio.StateMachine, r Registers) error {
	if err := sm.SetEXECCTRL(r.ExecCtrl); err != nil {
		return fmt.Errorf("snapshot: EXECCTRL: %w", err)
	}
	if err := sm.SetSHIFTCTRL(r.ShiftCtrl); err != nil {
		return fmt.Errorf("snapshot: SHIFTCTRL: %w", err)
	}
	if err := sm.SetPINCTRL(r.PinCtrl); err != nil {
		return fmt.Errorf("snapshot: PINCTRL: %w", err)
	}
	if err := sm.SetPC(r.PC); err != nil {
		return fmt.Errorf("snapshot: PC: %w", err)
	}
	sm.SetX(r.X)
	sm.SetY(r.Y)
	sm.SetISR(r.ISRValue, r.ISRCount)
	sm.SetOSR(r.OSRValue, r.OSRCount)
	if r.Enabled {
		sm.Enable()
	} else {
		sm.Disable()
	}
	sm.ClockEnabled = r.ClockEnabled
	return nil
}

// Marshal encodes sm's register file as CBOR.
func Marshal(sm *pio.StateMachine) ([]byte, error) {
	return cbor.Marshal(Capture(sm))
}

// Unmarshal decodes CBOR-encoded register state and restores it into
// sm.
func Unmarshal(data []byte, sm *pio.StateMachine) error {
	var r Registers
	if err := cbor.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return Restore(sm, r)
}
