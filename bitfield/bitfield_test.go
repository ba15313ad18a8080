package bitfield

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  uint32
		to    int
		from  int
		value uint32
	}){
		{0x00000000, 31, 0, 0},
		{0xffffffff, 31, 0, 0xffffffff},
		{0x8c_0f_0008, 31, 26, 0x23},
		{0x8c_0f_0008, 25, 21, 0x00},
		{0x8e_08_0008, 25, 21, 0x10},
		{0x8e_08_0008, 20, 16, 0x08},
		{0x8e_08_fff8, 15, 0, 0xfff8},
		{0x00094100, 10, 6, 4},
		{0x80000000, 31, 31, 1},
		{0x00000001, 0, 0, 1},
	}

	for _, entry := range table {
		value, err := Get(entry.word, entry.to, entry.from)
		name := fmt.Sprintf("%#08x[%d:%d]", entry.word, entry.to, entry.from)
		assert.NoError(err, name)
		assert.Equal(entry.value, value, name)
	}
}

func TestGetRange(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		to   int
		from int
	}){
		{0, 1},
		{32, 0},
		{31, -1},
		{-1, -1},
		{40, 33},
	}

	for _, entry := range table {
		_, err := Get(0xffffffff, entry.to, entry.from)
		assert.True(errors.Is(err, ErrInvalidRange), "%+v", entry)

		_, err = Set(0, 0, entry.to, entry.from)
		assert.True(errors.Is(err, ErrInvalidRange), "%+v", entry)

		var br ErrBitRange
		assert.True(errors.As(err, &br))
		assert.Equal(entry.to, br.To)
		assert.Equal(entry.from, br.From)
	}
}

func TestSet(t *testing.T) {
	assert := assert.New(t)

	word, err := Set(0, 0x23, 31, 26)
	assert.NoError(err)
	assert.Equal(uint32(0x8c000000), word)

	word, err = Set(word, 0x10, 25, 21)
	assert.NoError(err)
	word, err = Set(word, 0x08, 20, 16)
	assert.NoError(err)
	word, err = Set(word, 0xfff8, 15, 0)
	assert.NoError(err)
	assert.Equal(uint32(0x8e08fff8), word)

	// Replacement clears the old bits.
	word, err = Set(0xffffffff, 0, 15, 8)
	assert.NoError(err)
	assert.Equal(uint32(0xffff00ff), word)

	word, err = Set(0, 0xffffffff, 31, 0)
	assert.NoError(err)
	assert.Equal(uint32(0xffffffff), word)
}

func TestSetOverflow(t *testing.T) {
	assert := assert.New(t)

	word, err := Set(0x12345678, 32, 10, 6)
	assert.True(errors.Is(err, ErrFieldOverflow))
	assert.Equal(uint32(0), word)

	var bo ErrBitOverflow
	assert.True(errors.As(err, &bo))
	assert.Equal(uint32(32), bo.Value)

	_, err = Set(0, 0x40, 31, 26)
	assert.True(errors.Is(err, ErrFieldOverflow))

	_, err = Set(0, 0x3f, 31, 26)
	assert.NoError(err)
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	words := []uint32{0, 0xffffffff, 0x12345678, 0x80000001, 0xdeadbeef, 0x02400820}

	for _, w := range words {
		for from := range Width {
			for to := from; to < Width; to++ {
				bits, err := Get(w, to, from)
				assert.NoError(err)
				got, err := Set(w, bits, to, from)
				assert.NoError(err)
				if got != w {
					assert.Equal(w, got, "[%d:%d]", to, from)
				}

				cleared, err := Set(w, 0, to, from)
				assert.NoError(err)
				got, err = Set(cleared, bits, to, from)
				assert.NoError(err)
				if got != w {
					assert.Equal(w, got, "cleared [%d:%d]", to, from)
				}
			}
		}
	}
}

func TestSigned(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(-1), ToSigned(0xffffffff))
	assert.Equal(int32(math.MinInt32), ToSigned(0x80000000))
	assert.Equal(int32(math.MaxInt32), ToSigned(0x7fffffff))
	assert.Equal(uint32(0xffffffff), ToUnsigned(-1))
	assert.Equal(uint32(0x80000000), ToUnsigned(math.MinInt32))

	for _, w := range []uint32{0, 1, 0x7fffffff, 0x80000000, 0xfffffffe} {
		assert.Equal(w, ToUnsigned(ToSigned(w)))
	}
}

func TestAsSigned(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(-8), AsSigned(0xfff8, 16))
	assert.Equal(int32(0x7fff), AsSigned(0x7fff, 16))
	assert.Equal(int32(-32768), AsSigned(0x8000, 16))
	assert.Equal(int32(-1), AsSigned(0x1ffff, 16))
	assert.Equal(int32(-1), AsSigned(1, 1))
	assert.Equal(int32(0), AsSigned(2, 1))
	assert.Equal(int32(-1), AsSigned(0xffffffff, 32))
	assert.Equal(int32(0), AsSigned(0x1234, 0))

	assert.Equal(uint32(0xfff8), AsUnsigned(-8, 16))
	assert.Equal(uint32(0xffff), AsUnsigned(0xffff, 16))
	assert.Equal(uint32(0xffffffff), AsUnsigned(-1, 32))
	assert.Equal(uint32(0xffffffff), AsUnsigned(-1, 40))
}

func TestAsSignedRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for n := uint(1); n <= Width; n++ {
		lo := -(int64(1) << (n - 1))
		hi := (int64(1) << (n - 1)) - 1
		for _, v := range []int64{lo, lo + 1, -1, 0, 1, hi - 1, hi} {
			if v < lo || v > hi {
				continue
			}
			got := AsSigned(int64(AsUnsigned(v, n)), n)
			if int64(got) != v {
				assert.Equal(v, int64(got), "n=%d", n)
			}
		}
	}
}

func TestOverflow(t *testing.T) {
	assert := assert.New(t)

	assert.False(DetectSignedOverflow(math.MaxInt32))
	assert.False(DetectSignedOverflow(math.MinInt32))
	assert.True(DetectSignedOverflow(math.MaxInt32 + 1))
	assert.True(DetectSignedOverflow(math.MinInt32 - 1))

	assert.False(DetectUnsignedOverflow(0))
	assert.False(DetectUnsignedOverflow(math.MaxUint32))
	assert.True(DetectUnsignedOverflow(math.MaxUint32 + 1))
	assert.True(DetectUnsignedOverflow(-1))
}

func TestMask(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0), Mask(0))
	assert.Equal(uint32(0x1f), Mask(5))
	assert.Equal(uint32(0x3ffffff), Mask(26))
	assert.Equal(uint32(0xffffffff), Mask(32))
}
