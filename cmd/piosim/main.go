// Command piosim is a minimal interactive shell around a single PIO
// state machine, for exercising programs without real hardware.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"rp2040pio/pio"
	"rp2040pio/pio/snapshot"
)

var (
	programFile = flag.String("program", "", "path to a file of whitespace-separated hex instruction words to preload at address 0")
	verbose     = flag.Bool("verbose", false, "print the decoded instruction on every tick")
)

func main() {
	flag.Parse()

	sm := pio.NewStateMachine(0, pio.NewProgramMemory(), pio.NewPinArray(), pio.NewIRQBank(), pio.NewRingFIFO(), pio.NewClkDiv())
	sm.Enable()
	sm.ClockEnabled = true

	if *programFile != "" {
		if err := loadProgramFile(sm, *programFile); err != nil {
			fmt.Fprintf(os.Stderr, "piosim: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("piosim - interactive PIO state machine shell")
	fmt.Println("type 'help' for available commands, 'quit' to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		args, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if err := dispatch(sm, args); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "piosim: %v\n", err)
		os.Exit(1)
	}
}

var errQuit = fmt.Errorf("quit")

func dispatch(sm *pio.StateMachine, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		printHelp()
	case "load":
		return cmdLoad(sm, rest)
	case "set":
		return cmdSet(sm, rest)
	case "tick":
		return cmdTick(sm, rest)
	case "push":
		return cmdPush(sm, rest)
	case "pull":
		return cmdPull(sm)
	case "dump":
		fmt.Print(sm.DumpMemory())
	case "state":
		printState(sm)
	case "save":
		return cmdSave(sm, rest)
	case "restore":
		return cmdRestore(sm, rest)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return nil
}

func printHelp() {
	fmt.Println(`
commands:
  load <addr> <hex16>...       write instruction words to memory
  set x|y|pc <value>           write a scalar register
  set wraptop|wrapbottom <n>   configure execution wrap
  tick [n]                     advance n clock cycles (default 1)
  push <hex32>                 enqueue a word to TX, as a host write would
  pull                         dequeue one word from RX and print it
  dump                         disassemble the full 32-word program memory
  state                        print X, Y, PC and the shift registers
  save <file>                  write a CBOR register snapshot
  restore <file>               load a CBOR register snapshot
  quit                         exit`)
}

func cmdLoad(sm *pio.StateMachine, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: load <addr> <hex16>...")
	}
	addr, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return fmt.Errorf("bad address: %w", err)
	}
	words := make([]uint16, 0, len(args)-1)
	for _, w := range args[1:] {
		v, err := strconv.ParseUint(w, 0, 16)
		if err != nil {
			return fmt.Errorf("bad instruction word %q: %w", w, err)
		}
		words = append(words, uint16(v))
	}
	mem, ok := sm.Memory().(*pio.ProgramMemory)
	if !ok {
		return fmt.Errorf("load requires the default in-memory program store")
	}
	mem.Load(uint8(addr), words)
	return nil
}

func cmdSet(sm *pio.StateMachine, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set <field> <value>")
	}
	field, raw := args[0], args[1]
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", raw, err)
	}
	switch field {
	case "x":
		sm.SetX(uint32(v))
	case "y":
		sm.SetY(uint32(v))
	case "pc":
		return sm.SetPC(uint8(v))
	case "wraptop":
		return sm.SetWrapTop(uint8(v))
	case "wrapbottom":
		return sm.SetWrapBottom(uint8(v))
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func cmdTick(sm *pio.StateMachine, args []string) error {
	n := uint64(1)
	if len(args) > 0 {
		var err error
		n, err = strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return fmt.Errorf("bad tick count: %w", err)
		}
	}
	for i := uint64(0); i < n; i++ {
		if err := sm.Tick(); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if *verbose {
			fmt.Printf("tick %d: PC=%d X=%#x Y=%#x\n", i, sm.PC, sm.X, sm.Y)
		}
	}
	return nil
}

func cmdPush(sm *pio.StateMachine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: push <hex32>")
	}
	v, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("bad word: %w", err)
	}
	fifo, ok := sm.FIFO().(*pio.RingFIFO)
	if !ok {
		return fmt.Errorf("push requires the default in-memory FIFO")
	}
	fifo.TXPut(uint32(v))
	return nil
}

func cmdPull(sm *pio.StateMachine) error {
	fifo, ok := sm.FIFO().(*pio.RingFIFO)
	if !ok {
		return fmt.Errorf("pull requires the default in-memory FIFO")
	}
	if fifo.RXLevel() == 0 {
		return fmt.Errorf("RX FIFO is empty")
	}
	fmt.Printf("%#08x\n", fifo.RXGet())
	return nil
}

func cmdSave(sm *pio.StateMachine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: save <file>")
	}
	data, err := snapshot.Marshal(sm)
	if err != nil {
		return err
	}
	return os.WriteFile(args[0], data, 0o644)
}

func cmdRestore(sm *pio.StateMachine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: restore <file>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return snapshot.Unmarshal(data, sm)
}

func printState(sm *pio.StateMachine) {
	isrValue, isrCount := sm.ISR()
	osrValue, osrCount := sm.OSR()
	fmt.Printf("PC=%d  X=%#010x  Y=%#010x\n", sm.PC, sm.X, sm.Y)
	fmt.Printf("ISR=%#010x (%d bits)  OSR=%#010x (%d bits)\n", isrValue, isrCount, osrValue, osrCount)
	fmt.Printf("enabled=%t clockEnabled=%t\n", sm.Enabled, sm.ClockEnabled)
}

func loadProgramFile(sm *pio.StateMachine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	mem, ok := sm.Memory().(*pio.ProgramMemory)
	if !ok {
		return fmt.Errorf("-program requires the default in-memory program store")
	}
	var words []uint16
	for _, tok := range strings.Fields(string(data)) {
		v, err := strconv.ParseUint(tok, 0, 16)
		if err != nil {
			return fmt.Errorf("bad instruction word %q: %w", tok, err)
		}
		words = append(words, uint16(v))
	}
	mem.Load(0, words)
	return nil
}
