// Package rules parses rule files into the canonical expected-tag table.
//
// A rule file is a comma- or tab-separated table. Each row names a tag,
// describes it and gives the expected value:
//
//	# Tag,Description,Pattern
//	TALB,(Album),My Album Title
//	TPE1,(Artist),[A-Z][a-z]+\s[A-Z][a-z]+
//	TXXX,(SERIES)**,.*
//
// Rows whose first cell starts with '#' are comments. Extra columns are
// ignored. A user-defined text frame row (tag "TXXX") is keyed by its
// description, so the last row above becomes the rule "TXXX:SERIES".
package rules

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/tagverify/internal/match"
)

const (
	// Sentinel is the tag label of user-defined text frames.
	Sentinel = "TXXX"

	commentMarker = "#"
	minColumns    = 3

	// bullet stands in for a literal comma inside patterns of legacy rule files.
	bullet = "•"
)

// Parse reads and parses the rule file at path.
func Parse(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "read rule file", Err: err}
	}
	return ParseBytes(path, data)
}

// ParseBytes parses rule file content. path is only used in errors.
func ParseBytes(path string, data []byte) (*RuleSet, error) {
	if !utf8.Valid(data) {
		return nil, &EncodingError{Path: path, Offset: firstInvalid(data)}
	}

	data, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "strip byte order mark", Err: err}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = DetectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	set := newRuleSet(path)
	seenRows := false
	checked := false

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Path: path, Reason: "read rows", Err: err}
		}
		seenRows = true

		if skipRow(row) {
			continue
		}

		if !checked {
			if len(row) < minColumns {
				return nil, &MalformedInputError{Path: path, Reason: "file must have at least 3 columns"}
			}
			checked = true
		}

		if len(row) < minColumns {
			line, _ := r.FieldPos(0)
			slog.Debug("skip short row", slog.String("file", path), slog.Int("line", line), slog.Int("columns", len(row)))
			continue
		}

		rule, ok := parseRow(row)
		if !ok {
			line, _ := r.FieldPos(0)
			slog.Warn("skip rule without tag or pattern", slog.String("file", path), slog.Int("line", line))
			continue
		}

		slog.Debug("read rule",
			slog.String("tag", rule.TagID),
			slog.String("description", rule.Description),
			slog.String("pattern", rule.Pattern),
			slog.Bool("is_pattern", rule.IsPattern),
		)
		if err := rule.Err(); err != nil {
			slog.Warn("pattern does not compile, rule will never match",
				slog.String("tag", rule.TagID),
				slog.Any("err", err),
			)
		}

		set.put(rule)
	}

	if !seenRows {
		return nil, &MalformedInputError{Path: path, Reason: "file is empty"}
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyRuleSet)
	}

	return set, nil
}

// DetectDelimiter returns a tab if the first line contains one, else a comma.
func DetectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.IndexByte(first, '\t') >= 0 {
		return '\t'
	}
	return ','
}

// NormalizeTag turns a raw tag label into the canonical tag identifier.
// description must already be normalized by [NormalizeDescription].
func NormalizeTag(label, description string) string {
	label = strings.TrimSpace(label)
	if label == Sentinel {
		return Sentinel + ":" + strings.TrimRight(description, ")*")
	}
	return strings.Trim(label, "*")
}

// NormalizeDescription trims parentheses, asterisks and spaces from both ends.
func NormalizeDescription(raw string) string {
	return strings.Trim(raw, "() *")
}

// NormalizePattern trims whitespace and, for patterns, turns every
// bullet character into a literal comma.
func NormalizePattern(raw string) string {
	p := strings.TrimSpace(raw)
	if match.IsPattern(p) {
		p = strings.ReplaceAll(p, bullet, ",")
	}
	return p
}

func parseRow(row []string) (*Rule, bool) {
	description := NormalizeDescription(row[1])
	tagID := NormalizeTag(row[0], description)
	pattern := NormalizePattern(row[2])

	if tagID == "" || tagID == Sentinel+":" || pattern == "" {
		return nil, false
	}

	return NewRule(tagID, description, pattern), true
}

// skipRow reports blank rows and comment rows.
func skipRow(row []string) bool {
	if len(row) == 0 || strings.HasPrefix(row[0], commentMarker) {
		return true
	}
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
