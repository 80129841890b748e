package rules

import (
	"iter"

	"github.com/simonhull/tagverify/internal/match"
)

// Rule is the expectation for one canonical tag.
type Rule struct {
	matcher *match.Matcher

	// TagID is the canonical tag identifier, e.g. "TALB" or "TXXX:SERIES".
	TagID string
	// Description is the free-text label from the rule file.
	Description string
	// Pattern is the expected value or regular expression.
	Pattern string
	// IsPattern is true when Pattern is a regular expression.
	IsPattern bool
}

// NewRule creates a rule and compiles its expectation.
func NewRule(tagID, description, pattern string) *Rule {
	m := match.New(tagID, pattern)
	return &Rule{
		matcher:     m,
		TagID:       tagID,
		Description: description,
		Pattern:     pattern,
		IsPattern:   m.IsPattern(),
	}
}

// Match evaluates a resolved value against the rule.
func (r *Rule) Match(value string) match.Result {
	return r.matcher.Match(value)
}

// Err returns the pattern compile error, if any.
func (r *Rule) Err() error {
	return r.matcher.Err()
}

// RuleSet is the ordered, immutable table of expected tags.
type RuleSet struct {
	rules map[string]*Rule
	Path  string
	order []string
}

func newRuleSet(path string) *RuleSet {
	return &RuleSet{
		Path:  path,
		rules: make(map[string]*Rule),
	}
}

// put stores r. A later rule for the same TagID replaces the earlier one
// in its original position.
func (s *RuleSet) put(r *Rule) {
	if _, ok := s.rules[r.TagID]; !ok {
		s.order = append(s.order, r.TagID)
	}
	s.rules[r.TagID] = r
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.order)
}

// Get returns the rule for tagID.
func (s *RuleSet) Get(tagID string) (*Rule, bool) {
	r, ok := s.rules[tagID]
	return r, ok
}

// TagIDs returns the tag identifiers in rule file order.
func (s *RuleSet) TagIDs() []string {
	return append([]string(nil), s.order...)
}

// All iterates over the rules in rule file order.
func (s *RuleSet) All() iter.Seq2[string, *Rule] {
	return func(yield func(string, *Rule) bool) {
		for _, id := range s.order {
			if !yield(id, s.rules[id]) {
				return
			}
		}
	}
}
