package tagverify

import (
	"io"

	"github.com/simonhull/tagverify/internal/types"
)

// Format is a container format.
type Format = types.Format

const (
	FormatUnknown = types.FormatUnknown
	FormatMP3     = types.FormatMP3
	FormatWAV     = types.FormatWAV
)

// DetectFormat determines the container format from its magic bytes.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

// ParseFormat parses a format name such as "mp3" or "wav".
func ParseFormat(name string) Format {
	return types.ParseFormat(name)
}
