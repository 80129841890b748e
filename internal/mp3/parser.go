// Package mp3 reads ID3v2 tags from MP3 files.
package mp3

import (
	"io"

	binutil "github.com/simonhull/tagverify/internal/binary"
	"github.com/simonhull/tagverify/internal/registry"
	"github.com/simonhull/tagverify/internal/types"
)

// reader implements the registry.TagReader interface
type reader struct{}

// ReadTags reads the ID3v2 tag at the start of an MP3 file.
// Files without an ID3v2 tag fail with a DecodeError.
func (reader) ReadTags(r io.ReaderAt, size int64, path string) (*types.TagSet, error) {
	sr := binutil.NewSafeReader(r, size, path)
	ts := types.NewTagSet(path, types.FormatMP3)

	if _, err := ReadTag(sr, 0, ts); err != nil {
		return nil, err
	}

	return ts, nil
}

// init registers the MP3 reader
func init() {
	registry.Register(types.FormatMP3, reader{})
}
