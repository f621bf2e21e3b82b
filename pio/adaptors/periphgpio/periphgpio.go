//go:build linux

// Package periphgpio backs pio.GPIO and pio.IRQ with real Linux GPIO
// headers through periph.io, so a StateMachine can drive and sample
// actual pins instead of the in-memory defaults.
package periphgpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Pins wires a contiguous, host-numbered window of PIO GPIO indices to
// named periph.io pins (e.g. "GPIO5", "GPIO6", ...). Index i of the
// emulator's pad space maps to Names[i]; an empty Names entry leaves
// that pad unconnected.
type Pins struct {
	pins []gpio.PinIO
}

// Open resolves names through the periph.io registry and initializes
// the host drivers. Call it once per process; it mirrors the
// host.Init pattern used throughout the rest of this codebase's
// hardware drivers.
func Open(names []string) (*Pins, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periphgpio: %w", err)
	}
	pins := make([]gpio.PinIO, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("periphgpio: unknown pin %q at index %d", name, i)
		}
		pins[i] = p
	}
	return &Pins{pins: pins}, nil
}

func (p *Pins) pin(i uint) gpio.PinIO {
	if int(i) >= len(p.pins) {
		return nil
	}
	return p.pins[i]
}

// GetBit satisfies pio.GPIO.
func (p *Pins) GetBit(i uint) bool {
	pin := p.pin(i)
	return pin != nil && pin.Read() == gpio.High
}

// GetPins satisfies pio.GPIO.
func (p *Pins) GetPins(base, count uint) uint32 {
	var v uint32
	for i := uint(0); i < count; i++ {
		if p.GetBit(base + i) {
			v |= uint32(1) << i
		}
	}
	return v
}

// SetPins satisfies pio.GPIO, driving each connected pin as an output
// at the requested level. A pin that a prior SetPinDirs call made an
// input is switched to an output as well; direction is not checked.
func (p *Pins) SetPins(data uint32, base, count uint) {
	for i := uint(0); i < count; i++ {
		pin := p.pin(base + i)
		if pin == nil {
			continue
		}
		level := gpio.Low
		if data&(uint32(1)<<i) != 0 {
			level = gpio.High
		}
		pin.Out(level)
	}
}

// SetPinDirs satisfies pio.GPIO: bit set means output, clear means
// floating input, matching the RP2040 pad direction convention.
func (p *Pins) SetPinDirs(data uint32, base, count uint) {
	for i := uint(0); i < count; i++ {
		pin := p.pin(base + i)
		if pin == nil {
			continue
		}
		if data&(uint32(1)<<i) != 0 {
			pin.Out(gpio.Low)
		} else {
			pin.In(gpio.Float, gpio.NoEdge)
		}
	}
}

// IRQLines is an IRQ-flag bank that also asserts a physical output pin
// for each flag, so a host interrupt controller wired to these pins
// can observe PIO IRQs. Lines not backed by a pin still behave as a
// plain software flag.
type IRQLines struct {
	flags [8]bool
	pins  []gpio.PinIO
}

// OpenIRQ resolves names the same way Open does, one per IRQ flag.
func OpenIRQ(names []string) (*IRQLines, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periphgpio: %w", err)
	}
	pins := make([]gpio.PinIO, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("periphgpio: unknown pin %q at irq index %d", name, i)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("periphgpio: driving irq pin %q: %w", name, err)
		}
		pins[i] = p
	}
	return &IRQLines{pins: pins}, nil
}

func (l *IRQLines) Get(i uint) bool { return l.flags[i%uint(len(l.flags))] }

func (l *IRQLines) Set(i uint) {
	idx := i % uint(len(l.flags))
	l.flags[idx] = true
	if int(idx) < len(l.pins) && l.pins[idx] != nil {
		l.pins[idx].Out(gpio.High)
	}
}

func (l *IRQLines) Clear(i uint) {
	idx := i % uint(len(l.flags))
	l.flags[idx] = false
	if int(idx) < len(l.pins) && l.pins[idx] != nil {
		l.pins[idx].Out(gpio.Low)
	}
}
