package mp3

import (
	"encoding/binary"
	"fmt"
	"strings"

	binutil "github.com/simonhull/tagverify/internal/binary"
	"github.com/simonhull/tagverify/internal/types"
)

// ID3v2Header represents an ID3v2 tag header
type ID3v2Header struct {
	Version  byte // Major version (2, 3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size (excluding header), synchsafe
}

const (
	headerSize = 10

	// ID3v2.2 frames have a three character id, a 24-bit size and no flags.
	frameHeaderSize22 = 6

	flagUnsynchronisation = 0x80
	flagExtendedHeader    = 0x40
)

// ReadTag parses the ID3v2 tag starting at base and records its frames
// and flat fields in ts. It returns the total tag size including the header.
//
// A missing or unsupported header is a [types.DecodeError]; problems with
// individual frames only add warnings.
func ReadTag(sr *binutil.SafeReader, base int64, ts *types.TagSet) (int64, error) {
	buf, err := sr.Bytes(base, headerSize, "ID3v2 header")
	if err != nil {
		return 0, &types.DecodeError{
			Path:   sr.Path(),
			What:   "ID3v2 header",
			Reason: "file doesn't start with an ID3 tag",
			Err:    err,
		}
	}

	if string(buf[0:3]) != "ID3" {
		return 0, &types.DecodeError{
			Path:   sr.Path(),
			What:   "ID3v2 header",
			Reason: "file doesn't start with an ID3 tag",
			Offset: base,
		}
	}

	header := ID3v2Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     binutil.Synchsafe(buf[6:10]),
	}

	if header.Version < 2 || header.Version > 4 {
		return 0, &types.DecodeError{
			Path:   sr.Path(),
			What:   "ID3v2 header",
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", header.Version),
			Offset: base,
		}
	}

	if header.Flags&flagUnsynchronisation != 0 {
		ts.Warn("id3", "tag-level unsynchronisation is not reversed", base)
	}

	// In ID3v2.2 the extended header bit marks a compressed tag instead.
	if header.Version == 2 && header.Flags&flagExtendedHeader != 0 {
		return 0, &types.DecodeError{
			Path:   sr.Path(),
			What:   "ID3v2 header",
			Reason: "compressed ID3v2.2 tags are not supported",
			Offset: base,
		}
	}

	offset := base + headerSize
	if header.Version > 2 && header.Flags&flagExtendedHeader != 0 {
		if header.Version == 4 {
			// ID3v2.4: synchsafe size including the size field itself
			ext, err := sr.Bytes(offset, 4, "extended header size")
			if err != nil {
				return 0, &types.DecodeError{Path: sr.Path(), What: "extended header", Reason: "truncated", Err: err}
			}
			offset += int64(binutil.Synchsafe(ext))
		} else {
			// ID3v2.3: plain size excluding the size field
			size, err := binutil.ReadBE[uint32](sr, offset, "extended header size")
			if err != nil {
				return 0, &types.DecodeError{Path: sr.Path(), What: "extended header", Reason: "truncated", Err: err}
			}
			offset += int64(size) + 4
		}
	}

	tagEnd := base + headerSize + int64(header.Size)
	if tagEnd > sr.Size() {
		ts.Warn("id3", fmt.Sprintf("tag size %d exceeds file size", header.Size), base)
		tagEnd = sr.Size()
	}

	frameHeaderSize, idLen := int64(headerSize), 4
	if header.Version == 2 {
		frameHeaderSize, idLen = frameHeaderSize22, 3
	}

	for offset+frameHeaderSize <= tagEnd {
		frameHeader, err := sr.Bytes(offset, int(frameHeaderSize), "frame header")
		if err != nil {
			break
		}

		// Padding (null bytes) marks the end of the frames
		if frameHeader[0] == 0 {
			break
		}

		frameID := string(frameHeader[:idLen])
		if !validFrameID(frameID) {
			ts.Warn("id3", fmt.Sprintf("invalid frame id %q, stopping", frameID), offset)
			break
		}

		var frameSize uint32
		var flags uint16
		switch header.Version {
		case 2:
			frameSize = uint32(frameHeader[3])<<16 | uint32(frameHeader[4])<<8 | uint32(frameHeader[5])
		case 3:
			frameSize = binary.BigEndian.Uint32(frameHeader[4:8])
			flags = binary.BigEndian.Uint16(frameHeader[8:10])
		default:
			frameSize = binutil.Synchsafe(frameHeader[4:8])
			flags = binary.BigEndian.Uint16(frameHeader[8:10])
		}

		dataStart := offset + frameHeaderSize
		next := dataStart + int64(frameSize)
		if next > tagEnd {
			ts.Warn("frame", fmt.Sprintf("frame %s overruns tag", frameID), offset)
			break
		}

		data, err := sr.Bytes(dataStart, int(frameSize), "frame "+frameID+" data")
		if err != nil {
			ts.Warn("frame", fmt.Sprintf("failed to read frame %s: %v", frameID, err), offset)
			offset = next
			continue
		}

		if header.Version == 2 {
			id, known := frameIDs22[frameID]
			if !known {
				offset = next
				continue
			}
			frameID = id
		}

		data, ok := unwrapFrameData(frameID, data, flags, header.Version, ts, offset)
		if ok {
			if f := buildFrame(frameID, data); f != nil {
				ts.AddFrame(f)
			}
		}

		offset = next
	}

	recordFields(ts)

	return headerSize + int64(header.Size), nil
}

// unwrapFrameData strips per-frame prefixes and rejects frames whose
// payload cannot be read without decompression or decryption.
func unwrapFrameData(id string, data []byte, flags uint16, version byte, ts *types.TagSet, offset int64) ([]byte, bool) {
	var compressed, encrypted, lengthIndicator bool
	if version == 4 {
		compressed = flags&0x0008 != 0
		encrypted = flags&0x0004 != 0
		lengthIndicator = flags&0x0001 != 0
	} else {
		compressed = flags&0x0080 != 0
		encrypted = flags&0x0040 != 0
	}

	if compressed || encrypted {
		ts.Warn("frame", fmt.Sprintf("frame %s is compressed or encrypted, skipped", id), offset)
		return nil, false
	}

	if lengthIndicator {
		if len(data) < 4 {
			ts.Warn("frame", fmt.Sprintf("frame %s data length indicator truncated", id), offset)
			return nil, false
		}
		data = data[4:]
	}

	return data, true
}

// buildFrame turns raw frame data into a keyed [types.Frame].
// Frames that carry no text (pictures, chapters, private data) yield nil.
func buildFrame(id string, data []byte) *types.Frame {
	switch {
	case id == "TXXX":
		// [encoding][description\0][value]
		if len(data) < 1 {
			return nil
		}
		enc := types.TextEncoding(data[0])
		desc, value := splitDescription(data[1:], enc)
		return &types.Frame{
			ID:          id,
			Key:         "TXXX:" + desc,
			Description: desc,
			Encoding:    enc,
			Payload:     value,
		}

	case id == "COMM" || id == "USLT":
		// [encoding][language(3)][short description\0][text]
		if len(data) < 4 {
			return nil
		}
		enc := types.TextEncoding(data[0])
		lang := strings.TrimRight(string(data[1:4]), "\x00")
		desc, value := splitDescription(data[4:], enc)
		return &types.Frame{
			ID:          id,
			Key:         id + ":" + desc + ":" + lang,
			Description: desc,
			Language:    lang,
			Encoding:    enc,
			Payload:     value,
		}

	case strings.HasPrefix(id, "T"):
		if len(data) < 1 {
			return nil
		}
		return &types.Frame{
			ID:       id,
			Key:      id,
			Encoding: types.TextEncoding(data[0]),
			Payload:  data[1:],
		}

	case strings.HasPrefix(id, "W") && id != "WXXX":
		// URL frames are always ISO-8859-1 without an encoding byte
		return &types.Frame{
			ID:       id,
			Key:      id,
			Encoding: types.EncodingLatin1,
			Payload:  data,
		}
	}

	return nil
}

// splitDescription separates a terminated description from the value that follows.
// Without a terminator the whole input is the value.
func splitDescription(data []byte, enc types.TextEncoding) (string, []byte) {
	idx := types.FindTerminator(data, enc)
	if idx < 0 {
		return "", data
	}
	return types.DecodeString(data[:idx], enc), data[idx+enc.TerminatorSize():]
}

// recordFields fills the flat field map from the parsed frames.
// Undecodable frames are left out of the map and noted as warnings.
func recordFields(ts *types.TagSet) {
	for key, f := range ts.RawFrames() {
		values, err := f.Text()
		if err != nil {
			ts.Warn("frame", err.Error(), 0)
			continue
		}
		ts.Set(key, values[0])
	}

	for _, e := range easyNames {
		for _, id := range e.frames {
			if v, ok := ts.Lookup(id); ok {
				ts.Set(e.name, v)
				break
			}
		}
	}
}

// validFrameID accepts three (ID3v2.2) and four character frame ids.
func validFrameID(id string) bool {
	if len(id) != 3 && len(id) != 4 {
		return false
	}
	for _, c := range id {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
