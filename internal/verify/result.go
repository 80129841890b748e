package verify

import (
	"time"

	"github.com/simonhull/tagverify/internal/match"
	"github.com/simonhull/tagverify/internal/types"
)

// FileResult is the outcome for one file. A non-nil Err marks a file the
// reader could not handle; Results is empty in that case.
type FileResult struct {
	Err     error          `yaml:"-"`
	Path    string         `yaml:"path"`
	Error   string         `yaml:"error,omitempty"`
	Results []match.Result `yaml:"results,omitempty"`
	Format  types.Format   `yaml:"format"`
}

func errorResult(path string, format types.Format, err error) FileResult {
	return FileResult{Path: path, Format: format, Err: err, Error: err.Error()}
}

// Failed reports whether the file could not be read.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// HasMissing reports whether at least one tag was not found.
func (r FileResult) HasMissing() bool {
	return r.count(match.StatusMissing) > 0
}

// HasMismatched reports whether at least one present tag did not match.
func (r FileResult) HasMismatched() bool {
	return r.count(match.StatusMismatched) > 0
}

// Passed reports whether every tag was found and matched.
func (r FileResult) Passed() bool {
	return !r.Failed() && !r.HasMissing() && !r.HasMismatched()
}

// Issues returns the results that are missing or mismatched, in rule order.
func (r FileResult) Issues() []match.Result {
	var out []match.Result
	for _, res := range r.Results {
		if res.Status() != match.StatusMatched {
			out = append(out, res)
		}
	}
	return out
}

func (r FileResult) count(s match.Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status() == s {
			n++
		}
	}
	return n
}

// Stats are the corpus-wide counters of a run.
type Stats struct {
	// Skipped counts files of disabled formats. They are not processed
	// and take no part in any other counter.
	Skipped                map[types.Format]int `yaml:"-"`
	TotalFiles             int                  `yaml:"total_files"`
	FilesPassed            int                  `yaml:"files_passed"`
	FilesWithErrors        int                  `yaml:"files_with_errors"`
	FilesWithMissingTags   int                  `yaml:"files_with_missing_tags"`
	FilesWithIncorrectTags int                  `yaml:"files_with_incorrect_tags"`
	TotalTagsChecked       int                  `yaml:"total_tags_checked"`
	TagsMatched            int                  `yaml:"tags_matched"`
	TagsMismatched         int                  `yaml:"tags_mismatched"`
	TagsMissing            int                  `yaml:"tags_missing"`
}

// Add folds one processed file into the counters. Failed files only
// count as processed and errored.
func (s *Stats) Add(r FileResult) {
	s.TotalFiles++
	if r.Failed() {
		s.FilesWithErrors++
		return
	}

	for _, res := range r.Results {
		s.TotalTagsChecked++
		switch res.Status() {
		case match.StatusMatched:
			s.TagsMatched++
		case match.StatusMismatched:
			s.TagsMismatched++
		case match.StatusMissing:
			s.TagsMissing++
		}
	}

	if r.HasMissing() {
		s.FilesWithMissingTags++
	}
	if r.HasMismatched() {
		s.FilesWithIncorrectTags++
	}
	if r.Passed() {
		s.FilesPassed++
	}
}

// Skip counts a file of a disabled format.
func (s *Stats) Skip(format types.Format) {
	if s.Skipped == nil {
		s.Skipped = make(map[types.Format]int)
	}
	s.Skipped[format]++
}

// Report is the complete result of a run.
type Report struct {
	index   map[string]int
	Dir     string        `yaml:"dir"`
	Files   []FileResult  `yaml:"files"`
	Stats   Stats         `yaml:"stats"`
	Elapsed time.Duration `yaml:"-"`
}

func newReport(dir string) *Report {
	return &Report{Dir: dir, index: make(map[string]int)}
}

func (r *Report) add(fr FileResult) {
	r.index[fr.Path] = len(r.Files)
	r.Files = append(r.Files, fr)
	r.Stats.Add(fr)
}

// Lookup returns the result for path.
func (r *Report) Lookup(path string) (FileResult, bool) {
	i, ok := r.index[path]
	if !ok {
		return FileResult{}, false
	}
	return r.Files[i], true
}
