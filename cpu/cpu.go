package cpu

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/mipsim/memory"
)

// Memory is the word store the CPU fetches from and stores to.
type Memory memory.Memory

var _cpu_defines = map[string]string{
	"INSTRUCTION_WIDTH": fmt.Sprintf("%v", INSTRUCTION_WIDTH),
}

// Cpu is the architectural state of the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory // Reference to the memory, not owned by the CPU.

	Pc       uint32                 // Byte address of the next instruction.
	Register [REGISTER_COUNT]uint32 // Register bank.
	Hi       uint32                 // High word of a product, or remainder.
	Lo       uint32                 // Low word of a product, or quotient.

	Ticks int // Completed instructions since reset.

	nextPc uint32 // Pc after the executing instruction.
}

// NewCpu creates a new CPU attached to a memory.
func NewCpu(mem Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: mem,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%5s: %04x_%04x\n", "pc", cpu.Pc>>16, cpu.Pc&0xffff)
	fmt.Fprintf(&sb, "%5s: %04x_%04x\n", "hi", cpu.Hi>>16, cpu.Hi&0xffff)
	fmt.Fprintf(&sb, "%5s: %04x_%04x\n", "lo", cpu.Lo>>16, cpu.Lo&0xffff)
	for n, val := range cpu.Register {
		fmt.Fprintf(&sb, "%5s: %04x_%04x\n", RegisterName(uint32(n)), val>>16, val&0xffff)
	}

	text = sb.String()
	return
}

// Reset the CPU state.
// - Clears the registers, hi and lo.
// - Zeros statistics counters.
// - Sets the pc to the entry point.
//
// Memory is not modified.
func (cpu *Cpu) Reset(pc uint32) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset, pc %08x", pc)
	}

	if pc%INSTRUCTION_WIDTH != 0 {
		err = ErrPcAlign
		return
	}

	clear(cpu.Register[:])
	cpu.Hi = 0
	cpu.Lo = 0
	cpu.Ticks = 0
	cpu.Pc = pc

	return
}

// FetchCode fetches the instruction word at the pc.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Pc%INSTRUCTION_WIDTH != 0 {
		err = ErrPcAlign
		return
	}

	if cpu.Memory == nil {
		err = ErrPcEmpty
		return
	}

	word, ok := cpu.Memory.Fetch(cpu.Pc)
	if !ok {
		if cpu.Verbose {
			log.Printf("cpu: %08x: no instruction", cpu.Pc)
		}
		err = ErrPcEmpty
		return
	}

	code = Code(word)
	return
}

// Step fetches, decodes and executes a single instruction.
func (cpu *Cpu) Step() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Execute executes a single instruction word at the current pc.
// On error, the CPU state is unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrCode{Pc: cpu.Pc, Code: code}, err)
		}
	}()

	desc, fields, err := Decode(code)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%08x: %v", cpu.Pc, desc.Basic(fields))
	}

	cpu.nextPc = cpu.Pc + INSTRUCTION_WIDTH

	err = desc.Execute(cpu, fields)
	if err != nil {
		return
	}

	cpu.Pc = cpu.nextPc
	cpu.Ticks++

	return
}

// Run steps the CPU until the pc leaves memory, an instruction fails,
// or the context is done. Leaving memory is not an error.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		err = cpu.Step()
		if errors.Is(err, ErrPcEmpty) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}
