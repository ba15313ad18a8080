package cpu

import (
	"fmt"

	"github.com/ezrec/mipsim/bitfield"
)

// INSTRUCTION_WIDTH is the size of an instruction, in bytes.
const INSTRUCTION_WIDTH = 4

// Format is an instruction bit layout.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(0) // R
	FORMAT_I = Format(1) // I
	FORMAT_J = Format(2) // J
)

// Operand is the role of a textual operand in an instruction's syntax.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_RS        = Operand(0) // rs
	OPERAND_RT        = Operand(1) // rt
	OPERAND_RD        = Operand(2) // rd
	OPERAND_SHAMT     = Operand(3) // shamt
	OPERAND_IMMEDIATE = Operand(4) // immediate
	OPERAND_ADDRESS   = Operand(5) // address
	OPERAND_OFFSET_RS = Operand(6) // offset(rs)
)

// Mnemonic identifies an instruction of the catalog.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MNEMONIC_SLL   = Mnemonic(0)  // sll
	MNEMONIC_SRL   = Mnemonic(1)  // srl
	MNEMONIC_MFHI  = Mnemonic(2)  // mfhi
	MNEMONIC_MFLO  = Mnemonic(3)  // mflo
	MNEMONIC_MULT  = Mnemonic(4)  // mult
	MNEMONIC_MULTU = Mnemonic(5)  // multu
	MNEMONIC_DIV   = Mnemonic(6)  // div
	MNEMONIC_ADD   = Mnemonic(7)  // add
	MNEMONIC_ADDU  = Mnemonic(8)  // addu
	MNEMONIC_SUB   = Mnemonic(9)  // sub
	MNEMONIC_SUBU  = Mnemonic(10) // subu
	MNEMONIC_AND   = Mnemonic(11) // and
	MNEMONIC_OR    = Mnemonic(12) // or
	MNEMONIC_J     = Mnemonic(13) // j
	MNEMONIC_ADDI  = Mnemonic(14) // addi
	MNEMONIC_ADDIU = Mnemonic(15) // addiu
	MNEMONIC_ANDI  = Mnemonic(16) // andi
	MNEMONIC_ORI   = Mnemonic(17) // ori
	MNEMONIC_LUI   = Mnemonic(18) // lui
	MNEMONIC_LW    = Mnemonic(19) // lw
	MNEMONIC_SW    = Mnemonic(20) // sw
)

// Code is a single 32-bit instruction word.
type Code uint32

// Opcode returns bits [31:26].
func (code Code) Opcode() uint32 {
	return bitfield.MustGet(uint32(code), 31, 26)
}

// Rs returns bits [25:21].
func (code Code) Rs() uint32 {
	return bitfield.MustGet(uint32(code), 25, 21)
}

// Rt returns bits [20:16].
func (code Code) Rt() uint32 {
	return bitfield.MustGet(uint32(code), 20, 16)
}

// Rd returns bits [15:11].
func (code Code) Rd() uint32 {
	return bitfield.MustGet(uint32(code), 15, 11)
}

// Shamt returns bits [10:6].
func (code Code) Shamt() uint32 {
	return bitfield.MustGet(uint32(code), 10, 6)
}

// Funct returns bits [5:0].
func (code Code) Funct() uint32 {
	return bitfield.MustGet(uint32(code), 5, 0)
}

// Immediate returns bits [15:0], sign-extended.
func (code Code) Immediate() int32 {
	return bitfield.AsSigned(int64(bitfield.MustGet(uint32(code), 15, 0)), 16)
}

// Address returns bits [25:0], still in units of instruction words.
func (code Code) Address() uint32 {
	return bitfield.MustGet(uint32(code), 25, 0)
}

// String returns the word in hexadecimal.
func (code Code) String() string {
	return fmt.Sprintf("0x%08x", uint32(code))
}

// Fields holds the decoded field values of an instruction.
// Which fields are meaningful depends on the instruction format.
type Fields struct {
	Opcode    uint32
	Rs        uint32
	Rt        uint32
	Rd        uint32
	Shamt     uint32
	Funct     uint32
	Immediate int32  // Sign-extended from 16 bits.
	Address   uint32 // Word address, as stored in a J format word.
}
