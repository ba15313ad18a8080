package bitfield

import (
	"github.com/ezrec/mipsim/translate"
)

var f = translate.From

var (
	ErrInvalidRange  = translate.Error("invalid bit range")
	ErrFieldOverflow = translate.Error("field overflow")
)

// ErrBitRange reports a [to:from] range outside of a 32-bit word.
type ErrBitRange struct {
	To   int
	From int
}

func (err ErrBitRange) Error() string {
	return f("bits [%d:%d] not within [31:0]", err.To, err.From)
}

func (err ErrBitRange) Unwrap() error {
	return ErrInvalidRange
}

// ErrBitOverflow reports a value too wide for its destination bit range.
type ErrBitOverflow struct {
	Value uint32
	To    int
	From  int
}

func (err ErrBitOverflow) Error() string {
	return f("value %d exceeds maximum %d of bits [%d:%d]",
		err.Value, Mask(err.To-err.From+1), err.To, err.From)
}

func (err ErrBitOverflow) Unwrap() error {
	return ErrFieldOverflow
}
