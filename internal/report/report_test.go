package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagverify/internal/match"
	"github.com/simonhull/tagverify/internal/report"
	"github.com/simonhull/tagverify/internal/types"
	"github.com/simonhull/tagverify/internal/verify"
)

func sampleReport() *verify.Report {
	dir := filepath.Join("music", "album")
	return &verify.Report{
		Dir: dir,
		Files: []verify.FileResult{
			{
				Path:   filepath.Join(dir, "01.mp3"),
				Format: types.FormatMP3,
				Results: []match.Result{
					{TagID: "TALB", Expected: "My Album Title", Actual: "My Album Title", Matched: true},
				},
			},
			{
				Path:   filepath.Join(dir, "cd2", "02.mp3"),
				Format: types.FormatMP3,
				Results: []match.Result{
					{TagID: "TALB", Expected: "My Album Title", Actual: "Other"},
					{TagID: "TPE1", Expected: `[A-Z][a-z]+`, Actual: "john", IsPattern: true},
					{TagID: "TXXX:SERIES", Expected: ".*", IsPattern: true},
				},
			},
			{
				Path:   filepath.Join(dir, "03.mp3"),
				Format: types.FormatMP3,
				Err:    errors.New("unsupported format"),
				Error:  "unsupported format",
			},
		},
		Stats: verify.Stats{
			Skipped:                map[types.Format]int{types.FormatWAV: 2},
			TotalFiles:             3,
			FilesPassed:            1,
			FilesWithErrors:        1,
			FilesWithMissingTags:   1,
			FilesWithIncorrectTags: 1,
			TotalTagsChecked:       4,
			TagsMatched:            1,
			TagsMismatched:         2,
			TagsMissing:            1,
		},
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestRenderText_Plain(t *testing.T) {
	t.Parallel()

	want := `
2 WAV files skipped (disabled)

Verification Results:

File: ` + filepath.Join("cd2", "02.mp3") + `
[-] TALB: Expected 'My Album Title', Found 'Other'
[-] TPE1: Expected (pattern) '[A-Z][a-z]+', Found 'john'
[-] TXXX:SERIES: <not found>

File: 03.mp3
[-] Error: unsupported format

========== Summary ==========
Files Processed: 3
Files Passed: 1
Files with Errors: 1
Files with Missing Tags: 1
Files with Incorrect Tags: 1

Tag Statistics:
Total Tags Checked: 4
Tags Matched: 1
Tags Mismatched: 2
Tags Missing: 1
=============================
`

	assert.Equal(t, want, report.RenderText(sampleReport(), false))
}

func TestRenderText_Color(t *testing.T) {
	t.Parallel()

	out := report.RenderText(sampleReport(), true)
	assert.Contains(t, out, "\x1b[")

	plain := report.RenderText(sampleReport(), false)
	assert.NotContains(t, plain, "\x1b[")
}

func TestRenderText_LargeCounts(t *testing.T) {
	t.Parallel()

	rep := &verify.Report{Stats: verify.Stats{TotalTagsChecked: 12345}}
	assert.Contains(t, report.RenderText(rep, false), "Total Tags Checked: 12,345\n")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatJSON, true))

	var doc struct {
		Dir   string         `json:"dir"`
		Stats map[string]any `json:"stats"`
		Files []struct {
			Path    string `json:"path"`
			Format  string `json:"format"`
			Passed  bool   `json:"passed"`
			Error   string `json:"error"`
			Results []struct {
				Tag    string `json:"tag"`
				Status string `json:"status"`
			} `json:"results"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.NotContains(t, buf.String(), "\x1b[")
	require.Len(t, doc.Files, 3)
	assert.True(t, doc.Files[0].Passed)
	assert.Equal(t, "MP3", doc.Files[0].Format)
	assert.Equal(t, "mismatched", doc.Files[1].Results[0].Status)
	assert.Equal(t, "missing", doc.Files[1].Results[2].Status)
	assert.Equal(t, "unsupported format", doc.Files[2].Error)
	assert.EqualValues(t, 3, doc.Stats["total_files"])
	assert.Equal(t, map[string]any{"WAV": float64(2)}, doc.Stats["skipped"])
}

func TestYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatYAML, false))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "1.5s", doc["elapsed"])
	assert.True(t, strings.HasPrefix(buf.String(), "dir: "))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, f := range report.Formats {
		got, err := report.ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := report.ParseFormat("xml")
	assert.Error(t, err)

	assert.Error(t, report.Write(&bytes.Buffer{}, sampleReport(), report.Format("xml"), false))
}
