// Package fixture builds synthetic MP3 and WAV files for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// ID3 builds an ID3v2.2, ID3v2.3 or ID3v2.4 tag frame by frame.
type ID3 struct {
	frames  [][]byte
	version byte
}

// NewID3 starts a tag of the given major version (2, 3 or 4).
func NewID3(version byte) *ID3 {
	return &ID3{version: version}
}

// textEncoding is UTF-8 for ID3v2.4 and ISO-8859-1 before.
func (b *ID3) textEncoding() byte {
	if b.version == 4 {
		return 3
	}
	return 0
}

// Text adds a plain text frame.
func (b *ID3) Text(id, text string) *ID3 {
	return b.Raw(id, append([]byte{b.textEncoding()}, text...))
}

// TXXX adds a user-defined text frame.
func (b *ID3) TXXX(desc, value string) *ID3 {
	data := []byte{b.textEncoding()}
	data = append(data, desc...)
	data = append(data, 0)
	data = append(data, value...)
	if b.version == 2 {
		return b.Raw("TXX", data)
	}
	return b.Raw("TXXX", data)
}

// COMM adds a comment frame.
func (b *ID3) COMM(lang, desc, text string) *ID3 {
	data := []byte{b.textEncoding()}
	data = append(data, lang...)
	data = append(data, desc...)
	data = append(data, 0)
	data = append(data, text...)
	if b.version == 2 {
		return b.Raw("COM", data)
	}
	return b.Raw("COMM", data)
}

// Raw adds a frame with verbatim data.
func (b *ID3) Raw(id string, data []byte) *ID3 {
	frame := make([]byte, 0, 10+len(data))
	frame = append(frame, id...)
	switch b.version {
	case 2:
		n := len(data)
		frame = append(frame, byte(n>>16), byte(n>>8), byte(n))
	case 4:
		frame = append(frame, synchsafe(uint32(len(data)))...)
		frame = append(frame, 0, 0)
	default:
		frame = binary.BigEndian.AppendUint32(frame, uint32(len(data)))
		frame = append(frame, 0, 0)
	}
	frame = append(frame, data...)
	b.frames = append(b.frames, frame)
	return b
}

// Bytes renders the tag with a little trailing padding.
func (b *ID3) Bytes() []byte {
	body := bytes.Join(b.frames, nil)
	body = append(body, make([]byte, 16)...)

	tag := []byte{'I', 'D', '3', b.version, 0, 0}
	tag = append(tag, synchsafe(uint32(len(body)))...)
	return append(tag, body...)
}

// MP3 appends a few MPEG frame headers after tag so the result looks like
// an MP3 file.
func MP3(tag []byte) []byte {
	out := append([]byte(nil), tag...)
	for range 4 {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		out = append(out, frame...)
	}
	return out
}

// WAV builds a RIFF/WAVE file with an optional LIST/INFO chunk and an
// optional embedded ID3 chunk.
type WAV struct {
	id3  []byte
	info [][2]string
}

// NewWAV starts an empty WAVE file.
func NewWAV() *WAV {
	return &WAV{}
}

// Info adds a LIST/INFO sub-chunk.
func (w *WAV) Info(id, value string) *WAV {
	w.info = append(w.info, [2]string{id, value})
	return w
}

// ID3 embeds tag as an "id3 " chunk.
func (w *WAV) ID3(tag []byte) *WAV {
	w.id3 = tag
	return w
}

// Bytes renders the file.
func (w *WAV) Bytes() []byte {
	body := []byte("WAVE")

	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:], 1)      // PCM
	binary.LittleEndian.PutUint16(fmtChunk[2:], 2)      // channels
	binary.LittleEndian.PutUint32(fmtChunk[4:], 44100)  // sample rate
	binary.LittleEndian.PutUint32(fmtChunk[8:], 176400) // byte rate
	binary.LittleEndian.PutUint16(fmtChunk[12:], 4)     // block align
	binary.LittleEndian.PutUint16(fmtChunk[14:], 16)    // bits per sample
	body = appendChunk(body, "fmt ", fmtChunk)
	body = appendChunk(body, "data", make([]byte, 8))

	if len(w.info) > 0 {
		list := []byte("INFO")
		for _, kv := range w.info {
			list = appendChunk(list, kv[0], append([]byte(kv[1]), 0))
		}
		body = appendChunk(body, "LIST", list)
	}

	if w.id3 != nil {
		body = appendChunk(body, "id3 ", w.id3)
	}

	return appendChunk(nil, "RIFF", body)
}

// WriteFile writes data under dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func appendChunk(dst []byte, id string, data []byte) []byte {
	dst = append(dst, id...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(data)))
	dst = append(dst, data...)
	if len(data)%2 == 1 {
		dst = append(dst, 0)
	}
	return dst
}

func synchsafe(n uint32) []byte {
	return []byte{
		byte(n>>21) & 0x7F,
		byte(n>>14) & 0x7F,
		byte(n>>7) & 0x7F,
		byte(n) & 0x7F,
	}
}
