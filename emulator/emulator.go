// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/mipsim/cpu"
	"github.com/ezrec/mipsim/internal"
	"github.com/ezrec/mipsim/memory"
)

const (
	MEMORY_SIZE = 64 * 1024 // Default memory size, in bytes.
	TEXT_BASE   = 0x0000    // Address of the first program instruction.
)

// Emulator state. CPU + memory + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Ram      *memory.Ram  // Main memory.
}

// NewEmulator creates a new emulator with size bytes of memory.
func NewEmulator(size uint32) (emu *Emulator) {
	ram := memory.NewRam(size)

	emu = &Emulator{
		Cpu:     cpu.NewCpu(ram),
		Program: &cpu.Program{Base: TEXT_BASE},
		Ram:     ram,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	emulator_defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%d", emu.Ram.Size()),
		"TEXT_BASE":   fmt.Sprintf("%d", TEXT_BASE),
	}

	return internal.IterSeq2Concat(maps.All(emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble parses source text into the emulator's program.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{
		Verbose: emu.Verbose,
		Base:    TEXT_BASE,
	}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// LoadImage reads a big-endian word image as the emulator's program.
func (emu *Emulator) LoadImage(input io.Reader) (err error) {
	emu.Ram.Reset()

	count, err := emu.Ram.Load(input, TEXT_BASE)
	if err != nil {
		return
	}

	emu.Program = cpu.NewProgram(TEXT_BASE, emu.Ram.Data[TEXT_BASE/memory.WORD_BYTES:][:count])
	return
}

// SaveImage writes the program as a big-endian word image.
func (emu *Emulator) SaveImage(output io.Writer) (err error) {
	ram := memory.NewRam(emu.Program.End())
	for address, code := range emu.Program.Codes() {
		ram.Store(address, uint32(code))
	}

	return ram.Save(output, emu.Program.Base, len(emu.Program.Opcodes))
}

// Reset memory and the CPU, places the program in memory, and sets the
// pc to its first instruction.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Ram.Verbose = emu.Verbose

	if emu.Program.End() > emu.Ram.Size() || emu.Program.End() < emu.Program.Base {
		err = ErrProgramSize
		return
	}

	emu.Ram.Reset()
	for address, code := range emu.Program.Codes() {
		emu.Ram.Store(address, uint32(code))
	}

	err = emu.Cpu.Reset(emu.Program.Base)
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() uint32 {
	return emu.Cpu.Pc
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	op, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return op.Code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return op.LineNo
}

// Tick performs a single instruction of the emulator. It is done when
// the pc leaves the program text.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Program.Contains(emu.Cpu.Pc) {
		done = true
		return
	}

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if errors.Is(err, cpu.ErrPcEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program is done, an instruction
// fails, or the context is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
