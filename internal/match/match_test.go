package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagverify/internal/match"
)

func TestIsPattern(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"[", "]", "*", "?", "+"} {
		assert.True(t, match.IsPattern("abc"+c), c)
	}
	for _, s := range []string{"My Album Title", "a.b", "(x)|y", "^$", `\d{4}`, ""} {
		assert.False(t, match.IsPattern(s), s)
	}
}

func TestMatcher_Literal(t *testing.T) {
	t.Parallel()

	m := match.New("TALB", "My Album Title")
	require.False(t, m.IsPattern())

	tests := []struct {
		value   string
		matched bool
		status  match.Status
	}{
		{value: "My Album Title", matched: true, status: match.StatusMatched},
		{value: "my album title", matched: false, status: match.StatusMismatched},
		{value: "My Album Title ", matched: false, status: match.StatusMismatched},
		{value: "", matched: false, status: match.StatusMissing},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			res := m.Match(tt.value)
			assert.Equal(t, tt.matched, res.Matched)
			assert.Equal(t, tt.status, res.Status())
			assert.Equal(t, "TALB", res.TagID)
			assert.Equal(t, "My Album Title", res.Expected)
			assert.Equal(t, tt.value, res.Actual)
			assert.False(t, res.IsPattern)
		})
	}
}

func TestMatcher_PatternIsAnchored(t *testing.T) {
	t.Parallel()

	m := match.New("TPE1", `[A-Z][a-z]+\s[A-Z][a-z]+`)
	require.True(t, m.IsPattern())
	require.NoError(t, m.Err())

	assert.True(t, m.Match("John Smith").Matched)
	assert.False(t, m.Match("john smith").Matched)
	assert.False(t, m.Match("John Smith Jr").Matched, "trailing text must not match")
	assert.False(t, m.Match("Dr John Smith").Matched, "leading text must not match")
	assert.False(t, m.Match("John Smith\n").Matched, "a trailing newline is not the end of the value")
}

func TestMatcher_AlternationStaysAnchored(t *testing.T) {
	t.Parallel()

	m := match.New("TCON", "Rock|Pop+")
	assert.True(t, m.Match("Rock").Matched)
	assert.True(t, m.Match("Popp").Matched)
	assert.False(t, m.Match("Rockabilly").Matched)
	assert.False(t, m.Match("K-Pop").Matched)
}

func TestMatcher_InvalidPattern(t *testing.T) {
	t.Parallel()

	m := match.New("TPE1", `[A-Z][a-z]+\s[A-Z][a-z]+*`)
	require.True(t, m.IsPattern())
	require.Error(t, m.Err())

	res := m.Match("John Smith")
	assert.False(t, res.Matched)
	assert.Equal(t, match.StatusMismatched, res.Status())

	res = m.Match("john smith")
	assert.False(t, res.Matched)
}

func TestMatcher_EmptyValueIsMissingForPatterns(t *testing.T) {
	t.Parallel()

	m := match.New("TXXX:SERIES", ".*")
	res := m.Match("")
	assert.False(t, res.Matched)
	assert.Equal(t, match.StatusMissing, res.Status())
	assert.True(t, res.IsPattern)

	assert.True(t, m.Match("anything").Matched)
}

func TestMatcher_Idempotent(t *testing.T) {
	t.Parallel()

	for _, m := range []*match.Matcher{
		match.New("TALB", "Album"),
		match.New("TYER", "20[0-9][0-9]"),
	} {
		for _, v := range []string{"", "Album", "2024", "x"} {
			assert.Equal(t, m.Match(v), m.Match(v))
		}
	}
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "matched", match.StatusMatched.String())
	assert.Equal(t, "mismatched", match.StatusMismatched.String())
	assert.Equal(t, "missing", match.StatusMissing.String())

	text, err := match.StatusMissing.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "missing", string(text))
}
