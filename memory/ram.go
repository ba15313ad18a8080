package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
)

// Ram is a fixed-size word store starting at address 0.
// Misaligned and out of range fetches miss; such stores are dropped.
type Ram struct {
	Verbose bool     // If set, logs dropped stores.
	Data    []uint32 // Word contents, indexed by address / WORD_BYTES.
}

var _ Memory = (*Ram)(nil)

// NewRam creates a zeroed store of size bytes, rounded down to whole words.
func NewRam(size uint32) (ram *Ram) {
	ram = &Ram{
		Data: make([]uint32, size/WORD_BYTES),
	}

	return
}

// Size returns the size of the store, in bytes.
func (ram *Ram) Size() uint32 {
	return uint32(len(ram.Data)) * WORD_BYTES
}

// Reset zeroes the store.
func (ram *Ram) Reset() {
	clear(ram.Data)
}

func (ram *Ram) index(address uint32) (index int, ok bool) {
	if address%WORD_BYTES != 0 {
		return
	}
	index = int(address / WORD_BYTES)
	ok = index < len(ram.Data)
	return
}

// Fetch reads the word at address.
func (ram *Ram) Fetch(address uint32) (value uint32, ok bool) {
	index, ok := ram.index(address)
	if ok {
		value = ram.Data[index]
	}
	return
}

// Store writes the word at address.
func (ram *Ram) Store(address uint32, value uint32) {
	index, ok := ram.index(address)
	if !ok {
		if ram.Verbose {
			log.Print(f("ram: store 0x%08x to %08x dropped", value, address))
		}
		return
	}
	ram.Data[index] = value
}

// Load reads a big-endian word image into the store at address, until
// the end of input. It returns the number of words loaded.
func (ram *Ram) Load(in io.Reader, address uint32) (count int, err error) {
	index, ok := ram.index(address)
	if !ok && address%WORD_BYTES != 0 {
		err = ErrImageAlign
		return
	}

	var buf [WORD_BYTES]byte
	for {
		_, err = io.ReadFull(in, buf[:])
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrImagePartial
			return
		}
		if err != nil {
			return
		}
		if index+count >= len(ram.Data) {
			err = ErrImageFull
			return
		}
		ram.Data[index+count] = binary.BigEndian.Uint32(buf[:])
		count++
	}
}

// Save writes count words starting at address as a big-endian word image.
func (ram *Ram) Save(out io.Writer, address uint32, count int) (err error) {
	index, ok := ram.index(address)
	if !ok && address%WORD_BYTES != 0 {
		err = ErrImageAlign
		return
	}
	if count < 0 || index+count > len(ram.Data) {
		err = fmt.Errorf("%w: %d words at %08x", ErrImageFull, count, address)
		return
	}

	buf := make([]byte, 0, count*WORD_BYTES)
	for _, word := range ram.Data[index : index+count] {
		buf = binary.BigEndian.AppendUint32(buf, word)
	}

	_, err = out.Write(buf)
	return
}
