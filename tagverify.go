package tagverify

import (
	"fmt"
	"io"
	"os"

	"github.com/simonhull/tagverify/internal/registry"

	// Container readers register themselves.
	_ "github.com/simonhull/tagverify/internal/mp3"
	_ "github.com/simonhull/tagverify/internal/wav"
)

// ReadTags opens a file and reads its raw tags.
//
// The file is closed before ReadTags returns. On failure no TagSet is
// returned; the error is a [DecodeError], an [UnsupportedFormatError] or
// an I/O error.
//
// Example:
//
//	ts, err := tagverify.ReadTags("song.mp3")
//	if err != nil {
//		return err
//	}
//	album, _ := ts.Lookup("TALB")
func ReadTags(path string) (*TagSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return ReadTagsFrom(f, stat.Size(), path)
}

// ReadTagsFrom reads raw tags from r. path is used for format detection
// by extension and in errors.
func ReadTagsFrom(r io.ReaderAt, size int64, path string) (*TagSet, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	reader := registry.Get(format)
	if reader == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no reader available for format %s", format),
		}
	}

	ts, err := reader.ReadTags(r, size, path)
	if err != nil {
		return nil, fmt.Errorf("read %s tags: %w", format, err)
	}

	return ts, nil
}

// Reader reads tags from the file system. Its zero value is ready to use.
type Reader struct{}

// ReadTags calls the package level [ReadTags].
func (Reader) ReadTags(path string) (*TagSet, error) {
	return ReadTags(path)
}

// SupportedFormats returns the formats a reader is registered for.
func SupportedFormats() []Format {
	return registry.Formats()
}
