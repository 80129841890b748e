// Package match evaluates resolved tag values against expected values.
//
// An expectation is either a literal, compared byte for byte, or a
// pattern, which must match the whole value. Which one a rule is depends
// only on the characters of its expected text, see [IsPattern].
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// PatternChars are the characters that turn an expected value into a pattern.
const PatternChars = "[]*?+"

// DefaultTimeout bounds a single pattern evaluation.
const DefaultTimeout = 2 * time.Second

// IsPattern reports whether expected contains any of [PatternChars].
func IsPattern(expected string) bool {
	return strings.ContainsAny(expected, PatternChars)
}

// Status classifies a [Result].
type Status int

const (
	// StatusMatched means the value was found and satisfied the expectation.
	StatusMatched Status = iota
	// StatusMismatched means the value was found but did not satisfy it.
	StatusMismatched
	// StatusMissing means no value was found.
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusMismatched:
		return "mismatched"
	default:
		return "missing"
	}
}

// MarshalText renders the status by name in JSON and YAML reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of checking one tag of one file.
// An empty Actual means the tag was not found.
type Result struct {
	TagID     string `yaml:"tag"`
	Expected  string `yaml:"expected"`
	Actual    string `yaml:"actual"`
	Matched   bool   `yaml:"matched"`
	IsPattern bool   `yaml:"pattern"`
}

// Status derives the classification. Missing takes precedence: an empty
// value is never reported as mismatched.
func (r Result) Status() Status {
	switch {
	case r.Actual == "":
		return StatusMissing
	case r.Matched:
		return StatusMatched
	default:
		return StatusMismatched
	}
}

// Matcher is a compiled expectation for one tag.
type Matcher struct {
	re        *regexp2.Regexp
	err       error
	tagID     string
	expected  string
	isPattern bool
}

// New compiles an expectation. Pattern expectations are anchored at both
// ends; a pattern that does not compile is kept and never matches, its
// error is available from [Matcher.Err].
func New(tagID, expected string) *Matcher {
	m := &Matcher{
		tagID:     tagID,
		expected:  expected,
		isPattern: IsPattern(expected),
	}
	if m.isPattern {
		m.re, m.err = Compile(expected)
	}
	return m
}

// Compile anchors pattern to the whole input and compiles it.
func Compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = DefaultTimeout
	return re, nil
}

// Err returns the pattern compile error, if any.
func (m *Matcher) Err() error {
	return m.err
}

// IsPattern reports whether the expectation is a pattern.
func (m *Matcher) IsPattern() bool {
	return m.isPattern
}

// Match checks value. It is pure: the same value always yields the same
// result.
func (m *Matcher) Match(value string) Result {
	res := Result{
		TagID:     m.tagID,
		Expected:  m.expected,
		Actual:    value,
		IsPattern: m.isPattern,
	}

	switch {
	case value == "":
		res.Matched = false
	case !m.isPattern:
		res.Matched = value == m.expected
	case m.err != nil:
		res.Matched = false
	default:
		ok, err := m.re.MatchString(value)
		res.Matched = err == nil && ok
	}

	return res
}
