package verify

import (
	"github.com/simonhull/tagverify/internal/resolve"
	"github.com/simonhull/tagverify/internal/types"
)

// Option configures a [Verifier].
//
// Example:
//
//	v := verify.New(set, reader,
//	    verify.WithFormats(types.FormatMP3, types.FormatWAV),
//	    verify.WithJobs(4),
//	)
type Option func(*options)

type options struct {
	resolver *resolve.Resolver
	formats  []types.Format
	jobs     int
}

// defaultOptions processes MP3 only, one file at a time.
func defaultOptions() *options {
	return &options{
		formats: []types.Format{types.FormatMP3},
		jobs:    1,
	}
}

// WithFormats selects the containers to process. Files of other known
// containers are counted as skipped.
//
// WAV processing is off by default:
//
//	v := verify.New(set, reader, verify.WithFormats(types.FormatMP3, types.FormatWAV))
func WithFormats(formats ...types.Format) Option {
	return func(o *options) {
		o.formats = formats
	}
}

// WithJobs reads up to n files ahead of evaluation.
//
// Evaluation and the counters stay on a single goroutine in discovery
// order, so results are identical for every n. Values below 1 mean 1.
func WithJobs(n int) Option {
	return func(o *options) {
		o.jobs = max(n, 1)
	}
}

// WithResolver replaces the default resolver, e.g. to use a custom alias table.
func WithResolver(r *resolve.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}
