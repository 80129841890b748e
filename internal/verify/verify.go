// Package verify checks every audio file below a directory against a
// rule set and aggregates the results.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagverify/internal/log"
	"github.com/simonhull/tagverify/internal/match"
	"github.com/simonhull/tagverify/internal/resolve"
	"github.com/simonhull/tagverify/internal/rules"
	"github.com/simonhull/tagverify/internal/types"
)

// ErrDirectoryNotFound is returned when the target directory does not exist.
var ErrDirectoryNotFound = fmt.Errorf("%w: directory not found", types.ErrSetup)

// Reader extracts the raw tags of one file.
type Reader interface {
	ReadTags(path string) (*types.TagSet, error)
}

// ReaderFunc adapts a function to [Reader].
type ReaderFunc func(path string) (*types.TagSet, error)

// ReadTags calls f(path).
func (f ReaderFunc) ReadTags(path string) (*types.TagSet, error) {
	return f(path)
}

// Verifier evaluates a rule set against files.
type Verifier struct {
	rules    *rules.RuleSet
	reader   Reader
	resolver *resolve.Resolver
	enabled  []types.Format
	jobs     int
}

// New creates a verifier.
func New(set *rules.RuleSet, reader Reader, opts ...Option) *Verifier {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.resolver == nil {
		o.resolver = resolve.New(nil)
	}

	return &Verifier{
		rules:    set,
		reader:   reader,
		resolver: o.resolver,
		enabled:  o.formats,
		jobs:     o.jobs,
	}
}

// File is a discovered file and its container format.
type File struct {
	Path   string
	Format types.Format
}

// Discover lists the files below dir in lexical order. Files of enabled
// formats are returned; files of known but disabled formats are counted
// in skipped; everything else is ignored.
func (v *Verifier) Discover(ctx context.Context, dir string) ([]File, map[types.Format]int, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	var (
		files   []File
		skipped map[types.Format]int
	)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithContext(ctx).Warn("skip unreadable path", slog.String("path", path), slog.Any("err", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		format := types.FormatFromPath(path)
		switch {
		case format == types.FormatUnknown:
		case slices.Contains(v.enabled, format):
			files = append(files, File{Path: path, Format: format})
		default:
			if skipped == nil {
				skipped = make(map[types.Format]int)
			}
			skipped[format]++
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return files, skipped, nil
}

// VerifyDir checks every file below dir.
//
// A missing directory fails before any file is read. Files that cannot
// be read are recorded as errored results and never stop the run. When
// ctx is cancelled the run stops between files and the partial report is
// returned with the context error. Progress is logged through the
// logger carried by ctx.
func (v *Verifier) VerifyDir(ctx context.Context, dir string) (*Report, error) {
	start := time.Now()
	logger := log.WithContext(ctx)

	files, skipped, err := v.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	rep := newReport(dir)
	for format, n := range skipped {
		for range n {
			rep.Stats.Skip(format)
		}
	}

	logger.Debug("discovered files",
		slog.String("dir", dir),
		slog.Int("files", len(files)),
		slog.Int("jobs", v.jobs),
	)

	err = v.each(ctx, files, func(f File, ts *types.TagSet, err error) {
		rep.add(v.evaluate(logger, f, ts, err))
	})
	rep.Elapsed = time.Since(start)

	logger.Info("verification finished",
		slog.String("dir", dir),
		slog.Int("files", rep.Stats.TotalFiles),
		slog.Duration("elapsed", rep.Elapsed),
	)

	return rep, err
}

// VerifyFile reads and checks a single file.
func (v *Verifier) VerifyFile(path string) FileResult {
	f := File{Path: path, Format: types.FormatFromPath(path)}
	ts, err := v.read(f)
	return v.evaluate(slog.Default(), f, ts, err)
}

type readResult struct {
	ts  *types.TagSet
	err error
}

// each reads files and hands them to fn in order. With more than one job
// reads run ahead on an errgroup; fn always runs on the calling goroutine.
func (v *Verifier) each(ctx context.Context, files []File, fn func(File, *types.TagSet, error)) error {
	if v.jobs <= 1 {
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			ts, err := v.read(f)
			fn(f, ts, err)
		}
		return nil
	}

	slots := make([]chan readResult, len(files))
	for i := range slots {
		slots[i] = make(chan readResult, 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.jobs)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, f := range files {
			if gctx.Err() != nil {
				slots[i] <- readResult{err: gctx.Err()}
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					slots[i] <- readResult{err: err}
					return nil
				}
				ts, err := v.read(f)
				slots[i] <- readResult{ts: ts, err: err}
				return nil
			})
		}
		_ = g.Wait() //nolint:errcheck // Workers never fail; read errors travel through the slots.
	}()
	defer func() { <-done }()

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		var res readResult
		select {
		case res = <-slots[i]:
		case <-ctx.Done():
			return ctx.Err()
		}
		fn(f, res.ts, res.err)
	}
	return nil
}

// read calls the reader and turns a panic into an error.
func (v *Verifier) read(f File) (ts *types.TagSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			ts, err = nil, fmt.Errorf("read tags: panic: %v", r)
		}
	}()
	return v.reader.ReadTags(f.Path)
}

// evaluate checks every rule against ts. A read error or a panic while
// evaluating yields an errored result.
func (v *Verifier) evaluate(logger *slog.Logger, f File, ts *types.TagSet, readErr error) (fr FileResult) {
	if readErr != nil {
		logger.Debug("read failed", slog.String("file", f.Path), slog.Any("err", readErr))
		return errorResult(f.Path, f.Format, readErr)
	}
	if ts == nil {
		return errorResult(f.Path, f.Format, errors.New("reader returned no tags"))
	}

	defer func() {
		if r := recover(); r != nil {
			fr = errorResult(f.Path, f.Format, fmt.Errorf("evaluate tags: panic: %v", r))
		}
	}()

	dumpTags(logger, ts)

	results := make([]match.Result, 0, v.rules.Len())
	for id, rule := range v.rules.All() {
		value := v.resolver.Resolve(id, ts)
		res := rule.Match(value)
		if res.Status() == match.StatusMissing {
			logger.Debug("tag not found", slog.String("file", f.Path), slog.String("tag", id), slog.String("description", rule.Description))
		}
		results = append(results, res)
	}

	return FileResult{Path: f.Path, Format: ts.Format, Results: results}
}

// dumpTags logs every tag of a file at debug level.
func dumpTags(logger *slog.Logger, ts *types.TagSet) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := make([]any, 0, len(ts.Fields))
	for k, val := range ts.All() {
		attrs = append(attrs, slog.String(k, val))
	}
	logger.Debug("available tags", slog.String("file", filepath.Base(ts.Path)), slog.Group("tags", attrs...))
	for _, w := range ts.Warnings {
		logger.Debug("reader warning", slog.String("file", ts.Path), slog.String("warning", w.String()))
	}
}
