// Package wav reads tags from RIFF/WAVE files.
//
// Two tag stores are recognized: the LIST/INFO chunk, whose four-character
// sub-chunk ids ("INAM", "IART", ...) become field keys verbatim, and an
// embedded ID3v2 tag in an "id3 " chunk. INFO values win when both carry
// the same key.
package wav

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	binutil "github.com/simonhull/tagverify/internal/binary"
	"github.com/simonhull/tagverify/internal/mp3"
	"github.com/simonhull/tagverify/internal/registry"
	"github.com/simonhull/tagverify/internal/types"
)

const chunkHeaderSize = 8

// reader implements the registry.TagReader interface
type reader struct{}

// ReadTags walks the top-level RIFF chunks and collects INFO and ID3 tags.
func (reader) ReadTags(r io.ReaderAt, size int64, path string) (*types.TagSet, error) {
	sr := binutil.NewSafeReader(r, size, path)

	magic, err := sr.FourCC(0, "RIFF header")
	if err != nil || magic != "RIFF" {
		return nil, &types.DecodeError{Path: path, What: "RIFF header", Reason: "file does not start with RIFF id", Err: err}
	}
	form, err := sr.FourCC(8, "RIFF form type")
	if err != nil || form != "WAVE" {
		return nil, &types.DecodeError{Path: path, What: "RIFF header", Reason: "expected WAVE form type", Err: err}
	}

	riffSize, err := binutil.ReadLE[uint32](sr, 4, "RIFF size")
	if err != nil {
		return nil, &types.DecodeError{Path: path, What: "RIFF header", Reason: "truncated", Err: err}
	}

	ts := types.NewTagSet(path, types.FormatWAV)

	end := min(int64(riffSize)+chunkHeaderSize, size)
	if int64(riffSize)+chunkHeaderSize > size {
		ts.Warn("riff", fmt.Sprintf("RIFF size %d exceeds file size", riffSize), 4)
	}

	var embedded *types.TagSet
	offset := int64(12)
	for offset+chunkHeaderSize <= end {
		id, _ := sr.FourCC(offset, "chunk id") //nolint:errcheck // Bounds checked by the loop condition
		chunkSize, err := binutil.ReadLE[uint32](sr, offset+4, "chunk size")
		if err != nil {
			break
		}

		dataStart := offset + chunkHeaderSize
		dataEnd := dataStart + int64(chunkSize)
		if dataEnd > end {
			ts.Warn("riff", fmt.Sprintf("chunk %q overruns file", id), offset)
			break
		}

		switch id {
		case "LIST":
			readList(sr, dataStart, dataEnd, ts)
		case "id3 ", "ID3 ":
			embedded = types.NewTagSet(path, types.FormatWAV)
			if _, err := mp3.ReadTag(sr, dataStart, embedded); err != nil {
				ts.Warn("id3", err.Error(), dataStart)
				embedded = nil
			}
		}

		// Chunks are word aligned
		offset = dataEnd + int64(chunkSize%2)
	}

	if embedded != nil {
		for _, f := range embedded.RawFrames() {
			ts.AddFrame(f)
		}
		for _, k := range slices.Sorted(maps.Keys(embedded.Fields)) {
			ts.Set(k, embedded.Fields[k])
		}
		ts.Warnings = append(ts.Warnings, embedded.Warnings...)
	}

	return ts, nil
}

// readList records the sub-chunks of a LIST/INFO chunk.
// Other list types (adtl, ...) are ignored.
func readList(sr *binutil.SafeReader, start, end int64, ts *types.TagSet) {
	listType, err := sr.FourCC(start, "LIST type")
	if err != nil || listType != "INFO" {
		return
	}

	offset := start + 4
	for offset+chunkHeaderSize <= end {
		id, _ := sr.FourCC(offset, "INFO id") //nolint:errcheck // Bounds checked by the loop condition
		size, err := binutil.ReadLE[uint32](sr, offset+4, "INFO size")
		if err != nil {
			return
		}

		dataStart := offset + chunkHeaderSize
		if dataStart+int64(size) > end {
			ts.Warn("info", fmt.Sprintf("INFO entry %q overruns LIST chunk", id), offset)
			return
		}

		data, err := sr.Bytes(dataStart, int(size), "INFO "+id)
		if err != nil {
			ts.Warn("info", err.Error(), offset)
			return
		}
		ts.Set(id, decodeInfo(data))

		offset = dataStart + int64(size) + int64(size%2)
	}
}

// decodeInfo decodes an INFO value: UTF-8 when valid, ISO-8859-1 otherwise.
// The value ends at the first NUL.
func decodeInfo(data []byte) string {
	if idx := types.FindTerminator(data, types.EncodingLatin1); idx >= 0 {
		data = data[:idx]
	}
	if utf8.Valid(data) {
		return string(data)
	}
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(data) //nolint:errcheck // Latin-1 decoding cannot fail
	return string(s)
}

// init registers the WAV reader
func init() {
	registry.Register(types.FormatWAV, reader{})
}
