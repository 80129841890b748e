package types

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/simonhull/tagverify/internal/binary"
)

// Format represents a container format the verifier knows about.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMP3 represents MP3 files carrying ID3v2 frames.
	FormatMP3
	// FormatWAV represents RIFF/WAVE files carrying LIST/INFO chunks.
	FormatWAV
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatWAV:
		return "WAV"
	default:
		return "Unknown"
	}
}

// MarshalText renders the format by name in JSON and YAML reports.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMP3:
		return []string{".mp3"}
	case FormatWAV:
		return []string{".wav"}
	default:
		return nil
	}
}

// FormatFromPath maps a file name to a format by extension alone.
// Matching is case-insensitive; unknown extensions yield FormatUnknown.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range []Format{FormatMP3, FormatWAV} {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return FormatUnknown
}

// ParseFormat parses a format name such as "mp3" or "WAV".
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "mp3":
		return FormatMP3
	case "wav", "wave":
		return FormatWAV
	default:
		return FormatUnknown
	}
}

// DetectFormat determines the container format by examining magic bytes.
//
// MP3 is recognized by a leading ID3v2 header or an MPEG frame sync,
// WAV by a RIFF header with the WAVE form type.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic, err := sr.Bytes(0, 4, "file magic bytes")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if string(magic[:3]) == "ID3" {
		return FormatMP3, nil
	}

	// MPEG frame sync (11 set bits) catches MP3 files without an ID3v2 tag.
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}

	if string(magic) == "RIFF" && size >= 12 {
		form, err := sr.FourCC(8, "RIFF form type")
		if err == nil && form == "WAVE" {
			return FormatWAV, nil
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognized file signature",
	}
}
