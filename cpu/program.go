package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location.
type Opcode struct {
	LineNo  int      // Source line, or 0 for a loaded image.
	Address uint32   // Byte address of the instruction.
	Words   []string // Source words, after expansion.
	Code    Code     // Machine word.
	Basic   string   // Canonical text.
}

// Program is an assembled instruction stream, contiguous from Base.
type Program struct {
	Base    uint32
	Opcodes []Opcode
}

// NewProgram builds a program listing from an image of machine words.
// Words that do not decode are listed as data.
func NewProgram(base uint32, words []uint32) (prog *Program) {
	prog = &Program{Base: base}

	for n, word := range words {
		code := Code(word)
		basic, err := Disassemble(code)
		if err != nil {
			basic = fmt.Sprintf(".word %v", code)
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Address: base + uint32(n*INSTRUCTION_WIDTH),
			Code:    code,
			Basic:   basic,
		})
	}

	return
}

// End returns the address just past the last instruction.
func (prog *Program) End() uint32 {
	return prog.Base + uint32(len(prog.Opcodes)*INSTRUCTION_WIDTH)
}

// Contains reports if address is within the program text.
func (prog *Program) Contains(address uint32) bool {
	return address >= prog.Base && address < prog.End()
}

// Debug returns the opcode at address.
func (prog *Program) Debug(address uint32) (op *Opcode, ok bool) {
	if !prog.Contains(address) || (address-prog.Base)%INSTRUCTION_WIDTH != 0 {
		return
	}

	op = &prog.Opcodes[(address-prog.Base)/INSTRUCTION_WIDTH]
	ok = true
	return
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint32(code))
	}

	return
}

// Codes iterates over the address and word of each instruction.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(address uint32, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}

// String returns the program listing: address, word, canonical text,
// and source line.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, op := range prog.Opcodes {
		line := fmt.Sprintf("%08x: %v  %-24s", op.Address, op.Code, op.Basic)
		if op.LineNo != 0 {
			line += fmt.Sprintf(" ; %d: %v", op.LineNo, strings.Join(op.Words, " "))
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
