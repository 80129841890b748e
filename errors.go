package tagverify

import (
	"github.com/simonhull/tagverify/internal/types"
)

// DecodeError is returned when a file or a tag value cannot be decoded.
type DecodeError = types.DecodeError

// UnsupportedFormatError is returned for files no reader understands.
type UnsupportedFormatError = types.UnsupportedFormatError

// Warning is a non-fatal issue found while reading tags.
type Warning = types.Warning

var (
	// ErrDecode is matched by every [DecodeError].
	ErrDecode = types.ErrDecode
	// ErrSetup is matched by every error that prevents a run from starting.
	ErrSetup = types.ErrSetup
)
