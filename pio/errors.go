package pio

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by validated setters when a value is
// out of range for the field it targets.
var ErrInvalidArgument = errors.New("pio: invalid argument")

// DecodeError reports that a 16-bit instruction word could not be
// decoded: a reserved opcode, a reserved operand selector, or a
// constraint the opcode class places on its operand bits.
type DecodeError struct {
	Word   uint16
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pio: decode error at word 0x%04x: %s", e.Word, e.Reason)
}

func decodeErrorf(word uint16, format string, args ...any) *DecodeError {
	return &DecodeError{Word: word, Reason: fmt.Sprintf(format, args...)}
}

const badPendingInstruction = "pio: pending instruction slot already occupied"
