// Package report renders verification results.
//
// Rendering is a pure function of a [verify.Report] and a colorize flag:
// nothing here inspects the terminal.
package report

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/simonhull/tagverify/internal/match"
	"github.com/simonhull/tagverify/internal/verify"
)

type styles struct {
	file, fail, name, want, got, missing, pattern, title, count, pass, warn lipgloss.Style
}

func newStyles(colorize bool) styles {
	r := lipgloss.NewRenderer(io.Discard)
	if colorize {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	var (
		red    = lipgloss.Color("1")
		green  = lipgloss.Color("2")
		yellow = lipgloss.Color("3")
		blue   = lipgloss.Color("4")
		cyan   = lipgloss.Color("6")
	)

	return styles{
		file:    r.NewStyle().Foreground(cyan),
		fail:    r.NewStyle().Foreground(red),
		name:    r.NewStyle().Bold(true),
		want:    r.NewStyle().Foreground(green),
		got:     r.NewStyle().Foreground(red),
		missing: r.NewStyle().Foreground(yellow),
		pattern: r.NewStyle().Foreground(blue),
		title:   r.NewStyle().Bold(true),
		count:   r.NewStyle().Foreground(cyan),
		pass:    r.NewStyle().Foreground(green),
		warn:    r.NewStyle().Foreground(yellow),
	}
}

// RenderText renders the human readable report. Only files with
// problems are listed; the summary covers every file.
func RenderText(rep *verify.Report, colorize bool) string {
	s := newStyles(colorize)
	var b strings.Builder

	for _, format := range slices.Sorted(maps.Keys(rep.Stats.Skipped)) {
		fmt.Fprintf(&b, "\n%d %s files skipped (disabled)\n", rep.Stats.Skipped[format], format)
	}

	b.WriteString("\nVerification Results:\n")

	for _, fr := range rep.Files {
		if fr.Failed() {
			fmt.Fprintf(&b, "\nFile: %s\n", s.file.Render(displayName(rep.Dir, fr.Path)))
			fmt.Fprintf(&b, "%s Error: %s\n", s.fail.Render("[-]"), fr.Err)
			continue
		}

		issues := fr.Issues()
		if len(issues) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\nFile: %s\n", s.file.Render(displayName(rep.Dir, fr.Path)))
		for _, res := range issues {
			b.WriteString(issueLine(s, res))
			b.WriteByte('\n')
		}
	}

	st := rep.Stats
	line := func(label string, n int, style lipgloss.Style) {
		fmt.Fprintf(&b, "%s: %s\n", label, style.Render(humanize.Comma(int64(n))))
	}

	fmt.Fprintf(&b, "\n%s\n", s.title.Render("========== Summary =========="))
	line("Files Processed", st.TotalFiles, s.count)
	line("Files Passed", st.FilesPassed, s.pass)
	line("Files with Errors", st.FilesWithErrors, s.fail)
	line("Files with Missing Tags", st.FilesWithMissingTags, s.warn)
	line("Files with Incorrect Tags", st.FilesWithIncorrectTags, s.fail)
	fmt.Fprintf(&b, "\n%s\n", s.title.Render("Tag Statistics:"))
	line("Total Tags Checked", st.TotalTagsChecked, s.count)
	line("Tags Matched", st.TagsMatched, s.pass)
	line("Tags Mismatched", st.TagsMismatched, s.fail)
	line("Tags Missing", st.TagsMissing, s.warn)
	fmt.Fprintf(&b, "%s\n", s.title.Render("============================="))

	return b.String()
}

// Text writes [RenderText] to w.
func Text(w io.Writer, rep *verify.Report, colorize bool) error {
	_, err := io.WriteString(w, RenderText(rep, colorize))
	return err //nolint:wrapcheck // Return the original error.
}

func issueLine(s styles, res match.Result) string {
	prefix := s.fail.Render("[-]") + " " + s.name.Render(res.TagID) + ": "

	if res.Status() == match.StatusMissing {
		return prefix + s.missing.Render("<not found>")
	}

	kind := ""
	if res.IsPattern {
		kind = "(" + s.pattern.Render("pattern") + ") "
	}
	return fmt.Sprintf("%sExpected %s'%s', Found '%s'",
		prefix, kind, s.want.Render(res.Expected), s.got.Render(res.Actual))
}

// displayName shows path relative to the verified directory.
func displayName(dir, path string) string {
	if dir != "" {
		if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return filepath.Base(path)
}
