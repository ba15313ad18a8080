package emulator

import (
	"github.com/ezrec/mipsim/translate"
)

var f = translate.From

var (
	ErrProgramSize = translate.Error("program exceeds memory")
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     uint32
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %08x %v", err.Pc, err.Err)
	}
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
