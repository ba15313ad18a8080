// Package bitfield extracts and inserts bit ranges of 32-bit words, and
// converts between the signed and unsigned readings of a word.
//
// Bit ranges are written [to:from], MSB first, with 0 <= from <= to <= 31.
package bitfield

import (
	"math"
)

// Width of a machine word, in bits.
const Width = 32

// Mask returns a right-aligned mask of n one bits, for n in 0..32.
func Mask(n int) uint32 {
	if n >= Width {
		return math.MaxUint32
	}
	if n <= 0 {
		return 0
	}
	return uint32(1)<<n - 1
}

func checkRange(to, from int) (err error) {
	if to < from || to >= Width || from < 0 {
		err = ErrBitRange{To: to, From: from}
	}
	return
}

// Get returns the unsigned value of bits [to:from] of word.
func Get(word uint32, to, from int) (value uint32, err error) {
	err = checkRange(to, from)
	if err != nil {
		return
	}

	value = (word >> from) & Mask(to-from+1)
	return
}

// Set returns word with bits [to:from] replaced by bits.
// The input word is not modified.
func Set(word uint32, bits uint32, to, from int) (value uint32, err error) {
	err = checkRange(to, from)
	if err != nil {
		return
	}

	mask := Mask(to - from + 1)
	if bits > mask {
		err = ErrBitOverflow{Value: bits, To: to, From: from}
		return
	}

	value = (word &^ (mask << from)) | (bits << from)
	return
}

// MustGet is Get for ranges known to be valid at compile time.
func MustGet(word uint32, to, from int) uint32 {
	value, err := Get(word, to, from)
	if err != nil {
		panic(err)
	}
	return value
}

// ToSigned reads a word as two's-complement.
func ToSigned(word uint32) int32 {
	return int32(word)
}

// ToUnsigned reads a two's-complement value as an unsigned word.
func ToUnsigned(value int32) uint32 {
	return uint32(value)
}

func clampBits(n uint) uint {
	if n > Width {
		return Width
	}
	return n
}

// AsUnsigned masks value to n bits and zero-extends it to a word.
func AsUnsigned(value int64, n uint) uint32 {
	n = clampBits(n)
	return uint32(uint64(value)) & Mask(int(n))
}

// AsSigned masks value to n bits and sign-extends bit n-1 to a word.
func AsSigned(value int64, n uint) int32 {
	n = clampBits(n)
	if n == 0 {
		return 0
	}

	masked := int64(AsUnsigned(value, n))
	sign := int64(1) << (n - 1)
	return int32((masked ^ sign) - sign)
}

// DetectSignedOverflow reports if an exact result is outside of the int32 range.
func DetectSignedOverflow(result int64) bool {
	return result > math.MaxInt32 || result < math.MinInt32
}

// DetectUnsignedOverflow reports if an exact result is outside of the uint32 range.
func DetectUnsignedOverflow(result int64) bool {
	return result > math.MaxUint32 || result < 0
}
