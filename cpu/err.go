package cpu

import (
	"github.com/ezrec/mipsim/bitfield"
	"github.com/ezrec/mipsim/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEmpty         = translate.Error("pc empty")
	ErrPcAlign         = translate.Error("pc misaligned")
	ErrIntegerOverflow = translate.Error("integer overflow")
	ErrMemoryAccess    = translate.Error("memory access error")
	ErrNotImplemented  = translate.Error("not implemented")

	// Instruction encode and decode errors
	ErrUnknownInstruction   = translate.Error("unknown instruction")
	ErrInvalidOperands      = translate.Error("invalid operands")
	ErrInvalidAddressSyntax = translate.Error("invalid address syntax")

	// Assembler errors
	ErrEquateSyntax    = translate.Error(".equ syntax")
	ErrEquateDuplicate = translate.Error(".equ duplicated")
	ErrMacroSyntax     = translate.Error(".macro syntax")
	ErrMacroNesting    = translate.Error(".macro in .macro prohibited")
	ErrMacroDuplicate  = translate.Error(".macro duplicated")
	ErrMacroLonely     = translate.Error(".macro without .endm")
	ErrMacroLonelyEndm = translate.Error(".endm without .macro")
)

// ErrCode attaches the location and word of a failing instruction.
type ErrCode struct {
	Pc   uint32
	Code Code
}

func (err ErrCode) Error() string {
	basic, derr := Disassemble(err.Code)
	if derr != nil {
		return f("pc 0x%08x code 0x%08x", err.Pc, uint32(err.Code))
	}
	return f("pc 0x%08x code 0x%08x '%v'", err.Pc, uint32(err.Code), basic)
}

// ErrDecode is a word with no catalog entry.
type ErrDecode Code

func (err ErrDecode) Error() string {
	code := Code(err)
	return f("no instruction for opcode 0x%02x funct 0x%02x", code.Opcode(), code.Funct())
}

func (err ErrDecode) Unwrap() error {
	return ErrUnknownInstruction
}

// ErrMnemonic is a mnemonic with no catalog entry.
type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("'%v' is not an instruction", string(err))
}

func (err ErrMnemonic) Unwrap() error {
	return ErrUnknownInstruction
}

// ErrInstruction names the instruction text that failed to assemble.
type ErrInstruction struct {
	Text string
	Err  error
}

func (err ErrInstruction) Error() string {
	return f("instruction '%v' %v", err.Text, err.Err)
}

func (err ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrAddress is a load from an address the memory could not supply.
type ErrAddress uint32

func (err ErrAddress) Error() string {
	return f("memory access error at address %x", uint32(err))
}

func (err ErrAddress) Unwrap() error {
	return ErrMemoryAccess
}

// ErrOverflow is a signed result that does not fit in a word.
type ErrOverflow struct {
	Mnemonic Mnemonic
	A        int64
	B        int64
}

func (err ErrOverflow) Error() string {
	return f("integer overflow %v %d %d", err.Mnemonic, err.A, err.B)
}

func (err ErrOverflow) Unwrap() error {
	return ErrIntegerOverflow
}

// ErrRegister is an operand that does not name a register.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrRegister) Unwrap() error {
	return ErrInvalidOperands
}

// ErrParseNumber is an operand that is not a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrInvalidOperands
}

// ErrImmediate is an immediate that does not fit in 16 bits.
type ErrImmediate int64

func (err ErrImmediate) Error() string {
	return f("immediate %d outside of [-32768, 65535]", int64(err))
}

func (err ErrImmediate) Unwrap() error {
	return bitfield.ErrFieldOverflow
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
