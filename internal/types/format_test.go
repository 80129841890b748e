package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    Format
		wantErr bool
	}{
		{name: "id3v2.4 header", data: []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), want: FormatMP3},
		{name: "mpeg frame sync", data: []byte{0xFF, 0xFB, 0x90, 0x00}, want: FormatMP3},
		{name: "riff wave", data: []byte("RIFF\x04\x00\x00\x00WAVE"), want: FormatWAV},
		{name: "riff avi", data: []byte("RIFF\x04\x00\x00\x00AVI "), wantErr: true},
		{name: "flac", data: []byte("fLaC\x00\x00\x00\x00"), wantErr: true},
		{name: "too small", data: []byte{0x00, 0x01}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "test.bin")
			if tt.wantErr {
				require.Error(t, err)
				var ufe *UnsupportedFormatError
				require.ErrorAs(t, err, &ufe)
				assert.Equal(t, "test.bin", ufe.Path)
				assert.Equal(t, FormatUnknown, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatMP3, FormatFromPath("/music/a.mp3"))
	assert.Equal(t, FormatMP3, FormatFromPath("/music/A.MP3"))
	assert.Equal(t, FormatWAV, FormatFromPath("take1.wav"))
	assert.Equal(t, FormatUnknown, FormatFromPath("cover.jpg"))
	assert.Equal(t, FormatUnknown, FormatFromPath("noext"))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatMP3, ParseFormat("MP3"))
	assert.Equal(t, FormatWAV, ParseFormat(".wav"))
	assert.Equal(t, FormatWAV, ParseFormat("wave"))
	assert.Equal(t, FormatUnknown, ParseFormat("flac"))
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MP3", FormatMP3.String())
	assert.Equal(t, "WAV", FormatWAV.String())
	assert.Equal(t, "Unknown", Format(42).String())

	text, err := FormatWAV.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "WAV", string(text))
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	err := &DecodeError{Path: "a.mp3", What: "ID3v2 header", Reason: "bad magic", Offset: 12}
	assert.Contains(t, err.Error(), "a.mp3")
	assert.Contains(t, err.Error(), "offset 12")
	assert.ErrorIs(t, err, ErrDecode)

	bare := &DecodeError{What: "frame TXXX:SERIES", Reason: "text", Err: assert.AnError}
	assert.Equal(t, "decode frame TXXX:SERIES: text: "+assert.AnError.Error(), bare.Error())
	assert.ErrorIs(t, bare, assert.AnError)
}

func TestWarning_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id3: truncated", Warning{Stage: "id3", Message: "truncated"}.String())
	assert.Equal(t, "info (at offset 40): odd size", Warning{Stage: "info", Message: "odd size", Offset: 40}.String())
}
