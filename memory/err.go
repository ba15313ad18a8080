package memory

import (
	"github.com/ezrec/mipsim/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageFull    = translate.Error("image exceeds memory")
	ErrImagePartial = translate.Error("image ends within a word")
	ErrImageAlign   = translate.Error("image address misaligned")
)
