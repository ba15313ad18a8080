// Package memory provides the word-addressable store of the simulator.
//
// Addresses are byte addresses; words are 32 bits wide and must be
// aligned on a 4-byte boundary. Program images are sequences of
// big-endian 32-bit words.
package memory

// Memory is the capability the CPU needs from its store.
type Memory interface {
	// Fetch reads the word at address. ok is false if nothing can be
	// read there.
	Fetch(address uint32) (value uint32, ok bool)
	// Store writes the word at address.
	Store(address uint32, value uint32)
}

// WORD_BYTES is the size of a memory word, in bytes.
const WORD_BYTES = 4
