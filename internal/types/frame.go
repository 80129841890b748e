package types

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// TextEncoding is the ID3v2 text encoding byte.
type TextEncoding byte

const (
	// EncodingLatin1 is ISO-8859-1.
	EncodingLatin1 TextEncoding = 0
	// EncodingUTF16 is UTF-16 with a byte order mark.
	EncodingUTF16 TextEncoding = 1
	// EncodingUTF16BE is UTF-16 big-endian without BOM (ID3v2.4).
	EncodingUTF16BE TextEncoding = 2
	// EncodingUTF8 is UTF-8 (ID3v2.4).
	EncodingUTF8 TextEncoding = 3
)

// TerminatorSize returns the width of a string terminator in this encoding.
func (e TextEncoding) TerminatorSize() int {
	if e == EncodingUTF16 || e == EncodingUTF16BE {
		return 2
	}
	return 1
}

// Frame is one structured ID3v2 frame.
//
// Key follows the usual hash-key convention: the frame ID for plain text
// frames, "TXXX:<description>" for user-defined text frames and
// "COMM:<description>:<language>" for comments.
type Frame struct {
	ID          string
	Key         string
	Description string
	Language    string
	Payload     []byte
	Encoding    TextEncoding
}

// Text decodes the payload strictly and splits it into its
// NUL-separated values.
//
// Undecodable payloads (unknown encoding, missing UTF-16 byte order
// mark, odd-length UTF-16, invalid UTF-8) fail with a [DecodeError].
func (f *Frame) Text() ([]string, error) {
	var values []string
	for _, seg := range SplitTerminated(f.Payload, f.Encoding) {
		s, err := decode(seg, f.Encoding, true)
		if err != nil {
			return nil, &DecodeError{What: "frame " + f.Key, Reason: "text", Err: err}
		}
		values = append(values, s)
	}
	if len(values) == 0 {
		return []string{""}, nil
	}
	return values, nil
}

// RawText decodes the first value of the payload leniently: a missing
// byte order mark falls back to big-endian and invalid sequences become
// U+FFFD. Only an unknown encoding byte fails.
func (f *Frame) RawText() (string, error) {
	segs := SplitTerminated(f.Payload, f.Encoding)
	if len(segs) == 0 {
		return "", nil
	}
	s, err := decode(segs[0], f.Encoding, false)
	if err != nil {
		return "", &DecodeError{What: "frame " + f.Key, Reason: "raw text", Err: err}
	}
	return s, nil
}

// Value renders the payload byte for byte as ISO-8859-1 with trailing
// NULs removed. A leading UTF-16 byte order mark is dropped. It never fails.
func (f *Frame) Value() string {
	data := f.Payload
	if f.Encoding == EncodingUTF16 || f.Encoding == EncodingUTF16BE {
		if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
			data = data[2:]
		}
	}
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(bytes.TrimRight(data, "\x00")) //nolint:errcheck // Latin-1 decoding cannot fail
	return string(s)
}

// DecodeString decodes one terminated string leniently. Readers use it
// for frame descriptions.
func DecodeString(data []byte, enc TextEncoding) string {
	if s, err := decode(data, enc, false); err == nil {
		return s
	}
	latin, _ := charmap.ISO8859_1.NewDecoder().Bytes(data) //nolint:errcheck // Latin-1 decoding cannot fail
	return string(latin)
}

// SplitTerminated splits data on encoding-aligned NUL terminators.
// A trailing terminator does not produce an empty final value.
func SplitTerminated(data []byte, enc TextEncoding) [][]byte {
	var out [][]byte
	width := enc.TerminatorSize()
	start := 0
	for i := 0; i+width <= len(data); i += width {
		if data[i] != 0 || (width == 2 && data[i+1] != 0) {
			continue
		}
		out = append(out, data[start:i])
		start = i + width
	}
	if start < len(data) {
		out = append(out, data[start:])
	}
	return out
}

// FindTerminator returns the offset of the first terminator in data, or -1.
func FindTerminator(data []byte, enc TextEncoding) int {
	if enc.TerminatorSize() == 1 {
		return bytes.IndexByte(data, 0)
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}

func decode(data []byte, enc TextEncoding, strict bool) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	var dec *encoding.Decoder
	switch enc {
	case EncodingLatin1:
		dec = charmap.ISO8859_1.NewDecoder()
	case EncodingUTF16:
		if strict && len(data)%2 != 0 {
			return "", fmt.Errorf("odd UTF-16 length %d", len(data))
		}
		policy := unicode.UseBOM
		if strict {
			policy = unicode.ExpectBOM
		}
		dec = unicode.UTF16(unicode.BigEndian, policy).NewDecoder()
	case EncodingUTF16BE:
		if strict && len(data)%2 != 0 {
			return "", fmt.Errorf("odd UTF-16 length %d", len(data))
		}
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingUTF8:
		if !utf8.Valid(data) {
			if strict {
				return "", fmt.Errorf("invalid UTF-8")
			}
			return strings.ToValidUTF8(string(data), "\uFFFD"), nil
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown text encoding %d", enc)
	}

	out, err := dec.Bytes(data)
	if err != nil {
		return "", err //nolint:wrapcheck // Wrapped by the caller.
	}
	return string(out), nil
}
