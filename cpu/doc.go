// Package cpu implements the processor and assembler for a 32-bit MIPS subset.
//
// The CPU has thirty-two 32-bit general-purpose registers ($zero through $ra),
// a byte-addressed program counter (pc), and the hi/lo pair that receives
// multiply and divide results. Instructions are fixed 32-bit words in one of
// three formats:
//
//	R: [opcode:31-26][rs:25-21][rt:20-16][rd:15-11][shamt:10-6][funct:5-0]
//	I: [opcode:31-26][rs:25-21][rt:20-16][immediate:15-0]
//	J: [opcode:31-26][address:25-0]
//
// A fixed catalog binds each mnemonic to its format, opcode/funct pair, and
// execution semantics. The assembler turns source text into machine words
// through the catalog, and the CPU fetches words from Memory, decodes them
// through the same catalog, and executes them one step at a time.
package cpu
