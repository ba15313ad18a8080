package cpu

import (
	"strconv"
	"strings"

	"github.com/ezrec/mipsim/bitfield"
)

// Codec packs instruction operands into a word, and unpacks a word into
// its raw fields.
type Codec interface {
	// Assemble encodes the operand words of an instruction, returning
	// the machine word and the canonical text.
	Assemble(args []string, desc *Descriptor) (code Code, basic string, err error)
	// Disassemble extracts the raw fields of a word.
	Disassemble(code Code) Fields
}

// RFormat is the register-register layout.
type RFormat struct{}

// IFormat is the immediate and load/store layout.
type IFormat struct{}

// JFormat is the jump layout.
type JFormat struct{}

var codecs = [...]Codec{
	FORMAT_R: RFormat{},
	FORMAT_I: IFormat{},
	FORMAT_J: JFormat{},
}

// field is a value to be packed into bits [to:from].
type field struct {
	value uint32
	to    int
	from  int
}

// pack builds a word from fields. It fails rather than truncates a value.
func pack(fields ...field) (code Code, err error) {
	var word uint32
	for _, fl := range fields {
		word, err = bitfield.Set(word, fl.value, fl.to, fl.from)
		if err != nil {
			return
		}
	}

	code = Code(word)
	return
}

// Assemble encodes `OP rd, rs, rt` and its variants.
func (RFormat) Assemble(args []string, desc *Descriptor) (code Code, basic string, err error) {
	fields, err := parseOperands(args, desc)
	if err != nil {
		return
	}

	code, err = pack(
		field{desc.Opcode, 31, 26},
		field{fields.Rs, 25, 21},
		field{fields.Rt, 20, 16},
		field{fields.Rd, 15, 11},
		field{fields.Shamt, 10, 6},
		field{desc.Funct, 5, 0},
	)
	if err != nil {
		return
	}

	basic = desc.Basic(fields)
	return
}

func (RFormat) Disassemble(code Code) Fields {
	return Fields{
		Opcode: code.Opcode(),
		Rs:     code.Rs(),
		Rt:     code.Rt(),
		Rd:     code.Rd(),
		Shamt:  code.Shamt(),
		Funct:  code.Funct(),
	}
}

// Assemble encodes `OP rt, rs, immediate` and its variants.
func (IFormat) Assemble(args []string, desc *Descriptor) (code Code, basic string, err error) {
	fields, err := parseOperands(args, desc)
	if err != nil {
		return
	}

	code, err = pack(
		field{desc.Opcode, 31, 26},
		field{fields.Rs, 25, 21},
		field{fields.Rt, 20, 16},
		field{bitfield.AsUnsigned(int64(fields.Immediate), 16), 15, 0},
	)
	if err != nil {
		return
	}

	basic = desc.Basic(fields)
	return
}

func (IFormat) Disassemble(code Code) Fields {
	return Fields{
		Opcode:    code.Opcode(),
		Rs:        code.Rs(),
		Rt:        code.Rt(),
		Immediate: code.Immediate(),
	}
}

// Assemble encodes `OP address`, where address is a byte address.
func (JFormat) Assemble(args []string, desc *Descriptor) (code Code, basic string, err error) {
	fields, err := parseOperands(args, desc)
	if err != nil {
		return
	}

	code, err = pack(
		field{desc.Opcode, 31, 26},
		field{fields.Address, 25, 0},
	)
	if err != nil {
		return
	}

	basic = desc.Basic(fields)
	return
}

func (JFormat) Disassemble(code Code) Fields {
	return Fields{
		Opcode:  code.Opcode(),
		Address: code.Address(),
	}
}

// parseOperands resolves operand words against the syntax of desc.
func parseOperands(args []string, desc *Descriptor) (fields Fields, err error) {
	fields.Opcode = desc.Opcode
	fields.Funct = desc.Funct

	for n, role := range desc.Syntax {
		if n >= len(args) {
			err = ErrInvalidOperands
			return
		}
		arg := args[n]

		switch role {
		case OPERAND_RS:
			fields.Rs, err = parseRegister(arg)
		case OPERAND_RT:
			fields.Rt, err = parseRegister(arg)
		case OPERAND_RD:
			fields.Rd, err = parseRegister(arg)
		case OPERAND_SHAMT:
			fields.Shamt, err = parseUnsigned(arg)
		case OPERAND_IMMEDIATE:
			fields.Immediate, err = parseImmediate(arg)
		case OPERAND_ADDRESS:
			var address uint32
			address, err = parseUnsigned(arg)
			fields.Address = (address >> 2) & bitfield.Mask(26)
		case OPERAND_OFFSET_RS:
			fields.Immediate, fields.Rs, err = parseOffsetBase(arg)
		}
		if err != nil {
			return
		}
	}

	if len(args) > len(desc.Syntax) {
		err = ErrInvalidOperands
		return
	}

	return
}

func parseRegister(word string) (index uint32, err error) {
	index, ok := LookupRegister(word)
	if !ok {
		err = ErrRegister(word)
	}
	return
}

// parseNumber reads a decimal, 0x hex, 0o octal or 0b binary integer.
func parseNumber(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

func parseUnsigned(word string) (value uint32, err error) {
	v64, err := parseNumber(word)
	if err != nil {
		return
	}
	if v64 < 0 || v64 > int64(^uint32(0)) {
		err = ErrParseNumber(word)
		return
	}
	value = uint32(v64)
	return
}

// parseImmediate reads a 16-bit immediate, written either signed or unsigned.
func parseImmediate(word string) (value int32, err error) {
	v64, err := parseNumber(word)
	if err != nil {
		return
	}
	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrImmediate(v64)
		return
	}
	value = int32(v64)
	return
}

// parseOffsetBase reads the `offset(rs)` operand of loads and stores.
// An empty offset is zero, and the base register may omit its '$'.
func parseOffsetBase(word string) (offset int32, base uint32, err error) {
	open := strings.Index(word, "(")
	shut := strings.Index(word, ")")
	if open < 0 || shut < open {
		err = ErrInvalidAddressSyntax
		return
	}

	offsetText := strings.TrimSpace(word[:open])
	baseText := strings.TrimSpace(word[open+1 : shut])
	if !strings.HasPrefix(baseText, "$") {
		baseText = "$" + baseText
	}

	if len(offsetText) != 0 {
		offset, err = parseImmediate(offsetText)
		if err != nil {
			return
		}
	}

	base, err = parseRegister(baseText)
	return
}
