// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":            "0",
	"INSTRUCTION_WIDTH": fmt.Sprintf("%d", INSTRUCTION_WIDTH),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass macro assembler. Each source line holds at
// most one instruction; there are no labels or pseudo-instructions.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Base    uint32   // Address of the first instruction.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// tokenize splits an instruction into its mnemonic and operand words.
// Operands are separated by commas, spaces, or both.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Assemble encodes a single instruction, such as "ADD $t0, $t1, $t2",
// returning the machine word and its canonical text.
func Assemble(text string) (code Code, basic string, err error) {
	code, basic, err = assembleWords(tokenize(text))
	if err != nil {
		err = ErrInstruction{Text: text, Err: err}
	}

	return
}

// assembleWords encodes a tokenized instruction.
func assembleWords(words []string) (code Code, basic string, err error) {
	if len(words) == 0 {
		err = ErrMnemonic("")
		return
	}

	desc, ok := catalog.LookupSymbol(words[0])
	if !ok {
		err = ErrMnemonic(words[0])
		return
	}

	code, basic, err = desc.Codec().Assemble(words[1:], desc)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = parseNumber(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// substitute replaces a word, or the parts of an `offset(rs)` word,
// that name an equate.
func (asm *Assembler) substitute(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}

	open := strings.Index(word, "(")
	shut := strings.LastIndex(word, ")")
	if open < 0 || shut < open {
		return word
	}

	offset := word[:open]
	base := word[open+1 : shut]
	if equate, ok := asm.Equate[offset]; ok {
		offset = equate
	}
	if equate, ok := asm.Equate[base]; ok {
		base = equate
	}

	return offset + "(" + base + ")" + word[shut+1:]
}

// parseLine parses a single line as an instruction.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = tokenize(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		words[n] = asm.substitute(word)
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddress gets the address of the next instruction.
func (asm *Assembler) currentAddress() uint32 {
	return asm.Base + uint32(len(asm.Opcode)*INSTRUCTION_WIDTH)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		if cut := strings.IndexAny(text, "#;"); cut >= 0 {
			text = text[:cut]
		}
		line = strings.TrimSpace(text)
		words := tokenize(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Base:    asm.Base,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords assembles the words of a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	code, basic, err := assembleWords(words)
	if err != nil {
		return
	}

	opcode := Opcode{
		LineNo:  lineno,
		Address: asm.currentAddress(),
		Words:   slices.Clone(words),
		Code:    code,
		Basic:   basic,
	}

	if asm.Verbose {
		log.Printf("%08x: %v %v", opcode.Address, code, basic)
	}

	asm.Opcode = append(asm.Opcode, opcode)

	return
}
