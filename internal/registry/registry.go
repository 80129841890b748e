// Package registry maps container formats to the readers that extract their tags.
package registry

import (
	"io"
	"maps"
	"slices"

	"github.com/simonhull/tagverify/internal/types"
)

// TagReader is the interface all container readers implement.
type TagReader interface {
	// ReadTags extracts the raw tags of a file.
	// It either returns a complete TagSet or an error, never both.
	ReadTags(r io.ReaderAt, size int64, path string) (*types.TagSet, error)
}

// readers maps formats to their readers.
var readers = make(map[types.Format]TagReader)

// Register registers a reader for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, reader TagReader) {
	readers[format] = reader
}

// Get returns the reader for a given format.
// Returns nil if no reader is registered for the format.
func Get(format types.Format) TagReader {
	return readers[format]
}

// Formats returns the registered formats in ascending order.
func Formats() []types.Format {
	return slices.Sorted(maps.Keys(readers))
}
