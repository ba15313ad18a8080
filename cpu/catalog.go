package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Descriptor binds a mnemonic to its syntax, bit layout, and semantics.
type Descriptor struct {
	Mnemonic Mnemonic  // Instruction mnemonic.
	Name     string    // Descriptive name.
	Syntax   []Operand // Operand roles, in source order.
	Format   Format    // Bit layout.
	Opcode   uint32    // Opcode, bits [31:26].
	Funct    uint32    // Function code, bits [5:0]. Only used by FORMAT_R.
}

// Symbol returns the upper-case mnemonic.
func (desc *Descriptor) Symbol() string {
	return strings.ToUpper(desc.Mnemonic.String())
}

// Codec returns the format codec of the instruction.
func (desc *Descriptor) Codec() Codec {
	return codecs[desc.Format]
}

// Execute applies the instruction's semantics to the cpu state.
func (desc *Descriptor) Execute(cpu *Cpu, fields Fields) error {
	return semantics[desc.Mnemonic](cpu, fields)
}

// Basic renders the canonical text of the instruction: the lower-case
// mnemonic followed by its operands, with registers written by number.
func (desc *Descriptor) Basic(fields Fields) string {
	words := []string{desc.Mnemonic.String()}
	for _, role := range desc.Syntax {
		var word string
		switch role {
		case OPERAND_RS:
			word = fmt.Sprintf("$%d", fields.Rs)
		case OPERAND_RT:
			word = fmt.Sprintf("$%d", fields.Rt)
		case OPERAND_RD:
			word = fmt.Sprintf("$%d", fields.Rd)
		case OPERAND_SHAMT:
			word = fmt.Sprintf("%d", fields.Shamt)
		case OPERAND_IMMEDIATE:
			word = fmt.Sprintf("%d", fields.Immediate)
		case OPERAND_ADDRESS:
			word = fmt.Sprintf("%d", fields.Address<<2)
		case OPERAND_OFFSET_RS:
			word = fmt.Sprintf("%d($%d)", fields.Immediate, fields.Rs)
		}
		words = append(words, word)
	}

	return strings.Join(words, " ")
}

// entry is a catalog definition, in the style of an assembler manual.
type entry struct {
	mnemonic Mnemonic
	syntax   string
	format   Format
	name     string
	opcode   uint32
	funct    uint32
}

var catalogEntries = []entry{
	{MNEMONIC_SLL, "rd, rt, shamt", FORMAT_R, "Shift Left Logical", 0x00, 0x00},
	{MNEMONIC_SRL, "rd, rt, shamt", FORMAT_R, "Shift Right Logical", 0x00, 0x02},
	{MNEMONIC_MFHI, "rd", FORMAT_R, "Move From HI", 0x00, 0x10},
	{MNEMONIC_MFLO, "rd", FORMAT_R, "Move From LO", 0x00, 0x12},
	{MNEMONIC_MULT, "rs, rt", FORMAT_R, "Multiply Word", 0x00, 0x18},
	{MNEMONIC_MULTU, "rs, rt", FORMAT_R, "Multiply Unsigned Word", 0x00, 0x19},
	{MNEMONIC_DIV, "rs, rt", FORMAT_R, "Divide Word", 0x00, 0x1a},
	{MNEMONIC_ADD, "rd, rs, rt", FORMAT_R, "Add Word", 0x00, 0x20},
	{MNEMONIC_ADDU, "rd, rs, rt", FORMAT_R, "Add Unsigned Word", 0x00, 0x21},
	{MNEMONIC_SUB, "rd, rs, rt", FORMAT_R, "Subtract Word", 0x00, 0x22},
	{MNEMONIC_SUBU, "rd, rs, rt", FORMAT_R, "Subtract Unsigned Word", 0x00, 0x23},
	{MNEMONIC_AND, "rd, rs, rt", FORMAT_R, "And", 0x00, 0x24},
	{MNEMONIC_OR, "rd, rs, rt", FORMAT_R, "Or", 0x00, 0x25},
	{MNEMONIC_J, "address", FORMAT_J, "Jump", 0x02, 0x00},
	{MNEMONIC_ADDI, "rt, rs, immediate", FORMAT_I, "Add Immediate Word", 0x08, 0x00},
	{MNEMONIC_ADDIU, "rt, rs, immediate", FORMAT_I, "Add Immediate Unsigned Word", 0x09, 0x00},
	{MNEMONIC_ANDI, "rt, rs, immediate", FORMAT_I, "And Immediate", 0x0c, 0x00},
	{MNEMONIC_ORI, "rt, rs, immediate", FORMAT_I, "Or Immediate", 0x0d, 0x00},
	{MNEMONIC_LUI, "rt, immediate", FORMAT_I, "Load Upper Immediate", 0x0f, 0x00},
	{MNEMONIC_LW, "rt, offset(rs)", FORMAT_I, "Load Word", 0x23, 0x00},
	{MNEMONIC_SW, "rt, offset(rs)", FORMAT_I, "Store Word", 0x2b, 0x00},
}

// Catalog is an immutable set of instruction descriptors.
type Catalog struct {
	descriptors []Descriptor
	bySymbol    map[string]*Descriptor
	byCode      map[uint32]*Descriptor
}

// catalog is built once, and never modified afterwards.
var catalog = newCatalog(catalogEntries)

// codeKey combines an opcode and funct pair. Funct only matters for FORMAT_R.
func codeKey(format Format, opcode, funct uint32) uint32 {
	if format != FORMAT_R {
		funct = 0
	}
	return (opcode << 6) | funct
}

// operandMap maps the syntax words of catalogEntries to operand roles.
var operandMap = map[string]Operand{
	"rs":         OPERAND_RS,
	"rt":         OPERAND_RT,
	"rd":         OPERAND_RD,
	"shamt":      OPERAND_SHAMT,
	"immediate":  OPERAND_IMMEDIATE,
	"address":    OPERAND_ADDRESS,
	"offset(rs)": OPERAND_OFFSET_RS,
}

// newCatalog builds a catalog. Any inconsistency in the entries panics,
// as the table is fixed at compile time.
func newCatalog(entries []entry) (cat *Catalog) {
	cat = &Catalog{
		descriptors: make([]Descriptor, len(entries)),
		bySymbol:    make(map[string]*Descriptor, len(entries)),
		byCode:      make(map[uint32]*Descriptor, len(entries)),
	}

	for n, ent := range entries {
		desc := &cat.descriptors[n]
		*desc = Descriptor{
			Mnemonic: ent.mnemonic,
			Name:     ent.name,
			Format:   ent.format,
			Opcode:   ent.opcode,
			Funct:    ent.funct,
		}
		for _, word := range strings.Split(ent.syntax, ",") {
			role, ok := operandMap[strings.TrimSpace(word)]
			if !ok {
				panic(fmt.Sprintf("catalog: %v: unknown operand %q", ent.mnemonic, word))
			}
			desc.Syntax = append(desc.Syntax, role)
		}

		if int(ent.mnemonic) >= len(semantics) || semantics[ent.mnemonic] == nil {
			panic(fmt.Sprintf("catalog: %v: no semantics", ent.mnemonic))
		}

		symbol := ent.mnemonic.String()
		if _, dup := cat.bySymbol[symbol]; dup {
			panic(fmt.Sprintf("catalog: %v: duplicated mnemonic", ent.mnemonic))
		}
		cat.bySymbol[symbol] = desc

		key := codeKey(ent.format, ent.opcode, ent.funct)
		if other, dup := cat.byCode[key]; dup {
			panic(fmt.Sprintf("catalog: %v: opcode 0x%02x funct 0x%02x used by %v",
				ent.mnemonic, ent.opcode, ent.funct, other.Mnemonic))
		}
		cat.byCode[key] = desc
	}

	return
}

// Len returns the number of descriptors.
func (cat *Catalog) Len() int {
	return len(cat.descriptors)
}

// All returns an iterator over the descriptors, in catalog order.
func (cat *Catalog) All() iter.Seq[*Descriptor] {
	return func(yield func(*Descriptor) bool) {
		for n := range cat.descriptors {
			if !yield(&cat.descriptors[n]) {
				return
			}
		}
	}
}

// LookupSymbol finds a descriptor by mnemonic, ignoring case.
func (cat *Catalog) LookupSymbol(symbol string) (desc *Descriptor, ok bool) {
	desc, ok = cat.bySymbol[strings.ToLower(symbol)]
	return
}

// LookupCode finds a descriptor by opcode, and by funct when opcode is 0.
func (cat *Catalog) LookupCode(opcode, funct uint32) (desc *Descriptor, ok bool) {
	format := FORMAT_I
	if opcode == 0 {
		format = FORMAT_R
	}
	desc, ok = cat.byCode[codeKey(format, opcode, funct)]
	return
}

// Decode finds the descriptor of a word and extracts its fields.
func (cat *Catalog) Decode(code Code) (desc *Descriptor, fields Fields, err error) {
	desc, ok := cat.LookupCode(code.Opcode(), code.Funct())
	if !ok {
		err = ErrDecode(code)
		return
	}

	fields = desc.Codec().Disassemble(code)
	return
}

// Instructions returns the process-wide instruction catalog.
func Instructions() *Catalog {
	return catalog
}

// Mnemonics returns the sorted upper-case mnemonics of the catalog.
func Mnemonics() (symbols []string) {
	for desc := range catalog.All() {
		symbols = append(symbols, desc.Symbol())
	}
	slices.Sort(symbols)
	return
}

// Decode finds the descriptor of a word in the instruction catalog.
func Decode(code Code) (desc *Descriptor, fields Fields, err error) {
	return catalog.Decode(code)
}

// Disassemble returns the canonical text of a word.
func Disassemble(code Code) (basic string, err error) {
	desc, fields, err := catalog.Decode(code)
	if err != nil {
		return
	}

	basic = desc.Basic(fields)
	return
}
