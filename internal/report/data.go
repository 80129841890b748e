package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/simonhull/tagverify/internal/match"
	"github.com/simonhull/tagverify/internal/types"
	"github.com/simonhull/tagverify/internal/verify"
)

// Format selects an output encoding.
type Format string

const (
	// FormatText is the human readable report, optionally colorized.
	FormatText Format = "text"
	// FormatJSON is a single JSON document.
	FormatJSON Format = "json"
	// FormatYAML is a single YAML document.
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q, expected one of %v", s, Formats)
}

// Write renders rep to w in format. colorize only affects text output.
func Write(w io.Writer, rep *verify.Report, format Format, colorize bool) error {
	switch format {
	case FormatJSON:
		return JSON(w, rep)
	case FormatYAML:
		return YAML(w, rep)
	case FormatText, "":
		return Text(w, rep, colorize)
	default:
		return fmt.Errorf("unknown output format %q", string(format))
	}
}

type resultDoc struct {
	Tag      string       `yaml:"tag"`
	Status   match.Status `yaml:"status"`
	Expected string       `yaml:"expected"`
	Actual   string       `yaml:"actual,omitempty"`
	Pattern  bool         `yaml:"pattern"`
}

type fileDoc struct {
	Path    string       `yaml:"path"`
	Format  types.Format `yaml:"format"`
	Passed  bool         `yaml:"passed"`
	Error   string       `yaml:"error,omitempty"`
	Results []resultDoc  `yaml:"results,omitempty"`
}

type statsDoc struct {
	verify.Stats `yaml:",inline"`

	Skipped map[string]int `yaml:"skipped,omitempty"`
}

type document struct {
	Dir     string    `yaml:"dir"`
	Elapsed string    `yaml:"elapsed"`
	Stats   statsDoc  `yaml:"stats"`
	Files   []fileDoc `yaml:"files"`
}

func newDocument(rep *verify.Report) document {
	doc := document{
		Dir:     rep.Dir,
		Elapsed: rep.Elapsed.String(),
		Stats:   statsDoc{Stats: rep.Stats},
		Files:   make([]fileDoc, 0, len(rep.Files)),
	}
	for format, n := range rep.Stats.Skipped {
		if doc.Stats.Skipped == nil {
			doc.Stats.Skipped = make(map[string]int)
		}
		doc.Stats.Skipped[format.String()] = n
	}
	for _, fr := range rep.Files {
		fd := fileDoc{
			Path:   fr.Path,
			Format: fr.Format,
			Passed: fr.Passed(),
			Error:  fr.Error,
		}
		for _, res := range fr.Results {
			fd.Results = append(fd.Results, resultDoc{
				Tag:      res.TagID,
				Status:   res.Status(),
				Expected: res.Expected,
				Actual:   res.Actual,
				Pattern:  res.IsPattern,
			})
		}
		doc.Files = append(doc.Files, fd)
	}
	return doc
}

// JSON writes the report as a JSON document.
func JSON(w io.Writer, rep *verify.Report) error {
	out, err := yaml.MarshalWithOptions(newDocument(rep), yaml.JSON())
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err //nolint:wrapcheck // Return the original error.
}

// YAML writes the report as a YAML document.
func YAML(w io.Writer, rep *verify.Report) error {
	enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true))
	if err := enc.Encode(newDocument(rep)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close() //nolint:wrapcheck // Return the original error.
}
