package types

import (
	"errors"
	"fmt"
)

// ErrDecode is matched by every [DecodeError] through errors.Is.
var ErrDecode = errors.New("decode error")

// DecodeError is returned when a file or a single tag value cannot be decoded.
//
// Readers return it for corrupt containers; [Frame] accessors return it
// for payloads that cannot be turned into text.
type DecodeError struct {
	Err    error
	Path   string
	What   string
	Reason string
	Offset int64
}

func (e *DecodeError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	switch {
	case e.Path != "" && e.Offset > 0:
		return fmt.Sprintf("%s: decode %s at offset %d: %s", e.Path, e.What, e.Offset, msg)
	case e.Path != "":
		return fmt.Sprintf("%s: decode %s: %s", e.Path, e.What, msg)
	default:
		return fmt.Sprintf("decode %s: %s", e.What, msg)
	}
}

// Is reports whether target is [ErrDecode].
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned when a file is not a container the
// registered readers understand.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered while reading tags.
//
// Warnings never fail a read. They are collected in TagSet.Warnings and
// surface in verbose output.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "id3", "info", "frame"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// ErrSetup is matched by every error that prevents a run from starting:
// an unusable rule file, a missing target directory or a bad configuration.
var ErrSetup = errors.New("setup error")
