package pio

// MemorySize is the fixed number of 16-bit instruction words shared
// code memory holds, matching the RP2040's 32-word PIO instruction
// memory.
const MemorySize = 32

// Memory is the shared code-RAM contract: read-only from the engine,
// written only by an external loader.
type Memory interface {
	Get(addr uint8) uint16
}

// ProgramMemory is the default in-memory code store.
type ProgramMemory struct {
	words [MemorySize]uint16
}

func NewProgramMemory() *ProgramMemory { return &ProgramMemory{} }

func (m *ProgramMemory) Get(addr uint8) uint16 { return m.words[addr&0x1f] }

// Load writes a program starting at offset, wrapping at MemorySize.
func (m *ProgramMemory) Load(offset uint8, words []uint16) {
	for i, w := range words {
		m.words[(uint(offset)+uint(i))&0x1f] = w
	}
}

// Set writes a single word, used by external loaders and tests.
func (m *ProgramMemory) Set(addr uint8, word uint16) {
	m.words[addr&0x1f] = word
}
