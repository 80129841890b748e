package binary

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeReader_ReadAt(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "song.wav")

	buf := make([]byte, 2)
	require.NoError(t, sr.ReadAt(buf, 1, "middle"))
	assert.Equal(t, []byte{0x02, 0x03}, buf)

	err := sr.ReadAt(buf, 10, "chunk header")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "song.wav")
	assert.Contains(t, err.Error(), "chunk header")

	err = sr.ReadAt(make([]byte, 4), 2, "chunk body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would exceed file size 4")
}

func TestSafeReader_Bytes(t *testing.T) {
	t.Parallel()

	data := []byte("RIFFxxxxWAVE")
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "song.wav")

	got, err := sr.Bytes(8, 4, "form type")
	require.NoError(t, err)
	assert.Equal(t, "WAVE", string(got))

	empty, err := sr.Bytes(100, 0, "nothing")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = sr.Bytes(0, -1, "negative")
	require.Error(t, err)

	id, err := sr.FourCC(0, "chunk id")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", id)
}

func TestReadOrder(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(0x04030201))
	binary.Write(buf, binary.BigEndian, uint16(0x1234))
	binary.Write(buf, binary.BigEndian, uint64(0x0102030405060708))
	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test")

	le, err := ReadLE[uint32](sr, 0, "le32")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), le)

	be, err := ReadBE[uint16](sr, 4, "be16")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), be)

	b64, err := ReadBE[uint64](sr, 6, "be64")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), b64)

	b8, err := ReadLE[uint8](sr, 0, "byte")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), b8)

	_, err = ReadLE[uint32](sr, 12, "past end")
	require.Error(t, err)
}

func TestSynchsafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{name: "zero", in: []byte{0, 0, 0, 0}, want: 0},
		{name: "127", in: []byte{0, 0, 0, 0x7F}, want: 127},
		{name: "128", in: []byte{0, 0, 1, 0}, want: 128},
		{name: "max", in: []byte{0x7F, 0x7F, 0x7F, 0x7F}, want: 0x0FFFFFFF},
		{name: "high bits ignored", in: []byte{0x80, 0x80, 0x81, 0x80}, want: 128},
		{name: "short input", in: []byte{1, 2}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Synchsafe(tt.in))
		})
	}
}
