package rules

import (
	"fmt"

	"github.com/simonhull/tagverify/internal/types"
)

// ErrEmptyRuleSet is returned when a rule file yields no usable rules.
var ErrEmptyRuleSet = fmt.Errorf("%w: no valid tags found in the file", types.ErrSetup)

// MalformedInputError is returned when a rule file has the wrong shape.
type MalformedInputError struct {
	Err    error
	Path   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed rule file: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed rule file: %s", e.Path, e.Reason)
}

// Is reports whether target is [types.ErrSetup].
func (e *MalformedInputError) Is(target error) bool {
	return target == types.ErrSetup
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// EncodingError is returned when a rule file is not valid UTF-8.
type EncodingError struct {
	Path   string
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 at byte offset %d, make sure the file is saved with UTF-8 encoding",
		e.Path, e.Offset)
}

// Is reports whether target is [types.ErrSetup].
func (e *EncodingError) Is(target error) bool {
	return target == types.ErrSetup
}
