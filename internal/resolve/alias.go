package resolve

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed aliases.yaml
var builtinAliases []byte

// ExtensionPrefix starts every user-defined text frame key.
const ExtensionPrefix = "TXXX:"

// Case is a transform applied to a legacy key placeholder.
type Case string

const (
	// CaseAsIs keeps the name unchanged.
	CaseAsIs Case = ""
	// CaseLower lowercases the name.
	CaseLower Case = "lower"
	// CaseTitle capitalizes every run of letters, so "TMP_GENRE1"
	// becomes "Tmp_Genre1" and "disc2of3" becomes "Disc2Of3".
	CaseTitle Case = "title"
	// CaseUpper uppercases the name.
	CaseUpper Case = "upper"
)

// Apply transforms s.
func (c Case) Apply(s string) (string, error) {
	switch c {
	case CaseAsIs:
		return s, nil
	case CaseLower:
		return strings.ToLower(s), nil
	case CaseUpper:
		return strings.ToUpper(s), nil
	case CaseTitle:
		return titleWords(s), nil
	default:
		return "", fmt.Errorf("unknown case %q", string(c))
	}
}

// titleWords title-cases each run of cased letters on its own. Any
// other rune, digits included, starts a new word.
func titleWords(s string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	start := -1
	for i, r := range s {
		if unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

// FriendlyAlias maps a reader-level friendly name to a tag.
type FriendlyAlias struct {
	Name string `yaml:"name"`
	Tag  string `yaml:"tag"`
}

// InfoAlias maps a RIFF INFO identifier to a tag.
type InfoAlias struct {
	Key string `yaml:"key"`
	Tag string `yaml:"tag"`
}

// LegacyKey is a template for a user-defined text frame key spelling.
type LegacyKey struct {
	Template string `yaml:"template"`
	Case     Case   `yaml:"case"`
}

// Expand fills the template with name.
func (l LegacyKey) Expand(name string) (string, error) {
	v, err := l.Case.Apply(name)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(l.Template, "{}", v), nil
}

// Description configures the free-text description lookup.
type Description struct {
	// Tag is the rule tag that triggers the lookup.
	Tag string `yaml:"tag"`
	// Key is the preferred frame key.
	Key string `yaml:"key"`
	// Marker is searched in other user-defined text frame keys.
	Marker string `yaml:"marker"`
}

// AliasTable is the data that drives tag resolution.
type AliasTable struct {
	Description   Description     `yaml:"description"`
	CommentPrefix string          `yaml:"comment_prefix"`
	Friendly      []FriendlyAlias `yaml:"friendly"`
	Info          []InfoAlias     `yaml:"info"`
	ExtensionOnly []string        `yaml:"extension_only"`
	Legacy        []LegacyKey     `yaml:"legacy"`
}

// DefaultAliases returns a fresh copy of the built-in alias table.
func DefaultAliases() *AliasTable {
	t, err := ParseAliases(builtinAliases)
	if err != nil {
		panic(fmt.Sprintf("built-in alias table: %v", err))
	}
	return t
}

// ParseAliases decodes and validates an alias table.
func ParseAliases(data []byte) (*AliasTable, error) {
	t := &AliasTable{}
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("decode alias table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadAliases reads a user alias file and merges it over the built-in table.
func LoadAliases(path string) (*AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	user, err := ParseAliases(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return DefaultAliases().Merge(user), nil
}

// Validate checks that every entry is usable.
func (t *AliasTable) Validate() error {
	for i, f := range t.Friendly {
		if f.Name == "" || f.Tag == "" {
			return fmt.Errorf("friendly alias %d: name and tag are required", i)
		}
	}
	for i, a := range t.Info {
		if a.Key == "" || a.Tag == "" {
			return fmt.Errorf("info alias %d: key and tag are required", i)
		}
	}
	for i, l := range t.Legacy {
		if !strings.Contains(l.Template, "{}") {
			return fmt.Errorf("legacy key %d: template %q has no {} placeholder", i, l.Template)
		}
		if _, err := l.Case.Apply(""); err != nil {
			return fmt.Errorf("legacy key %d: %w", i, err)
		}
	}
	return nil
}

// Merge returns a table with other's entries after t's. Non-empty scalar
// settings of other replace those of t.
func (t *AliasTable) Merge(other *AliasTable) *AliasTable {
	m := &AliasTable{
		Description:   t.Description,
		CommentPrefix: t.CommentPrefix,
		Friendly:      slices.Concat(t.Friendly, other.Friendly),
		Info:          slices.Concat(t.Info, other.Info),
		ExtensionOnly: slices.Concat(t.ExtensionOnly, other.ExtensionOnly),
		Legacy:        slices.Concat(t.Legacy, other.Legacy),
	}
	if other.CommentPrefix != "" {
		m.CommentPrefix = other.CommentPrefix
	}
	if other.Description.Tag != "" {
		m.Description.Tag = other.Description.Tag
	}
	if other.Description.Key != "" {
		m.Description.Key = other.Description.Key
	}
	if other.Description.Marker != "" {
		m.Description.Marker = other.Description.Marker
	}
	return m
}

// FriendlyName returns the first friendly name mapped to tag.
func (t *AliasTable) FriendlyName(tag string) (string, bool) {
	for _, f := range t.Friendly {
		if f.Tag == tag {
			return f.Name, true
		}
	}
	return "", false
}

// InfoKey returns the first INFO identifier mapped to tag.
func (t *AliasTable) InfoKey(tag string) (string, bool) {
	for _, a := range t.Info {
		if a.Tag == tag {
			return a.Key, true
		}
	}
	return "", false
}

// IsExtensionOnly reports whether tag is stored as "TXXX:<tag>".
func (t *AliasTable) IsExtensionOnly(tag string) bool {
	return slices.Contains(t.ExtensionOnly, tag)
}

// LegacyCandidates returns the frame keys to try for the user-defined
// text frame named name, in order and without duplicates.
func (t *AliasTable) LegacyCandidates(name string) []string {
	var keys []string
	for _, l := range t.Legacy {
		k, err := l.Expand(name)
		if err != nil || slices.Contains(keys, k) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
