package wav

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagverify/internal/fixture"
	"github.com/simonhull/tagverify/internal/types"
)

func readBytes(t *testing.T, data []byte) (*types.TagSet, error) {
	t.Helper()
	return reader{}.ReadTags(bytes.NewReader(data), int64(len(data)), "take.wav")
}

func TestReadTags_Info(t *testing.T) {
	t.Parallel()

	data := fixture.NewWAV().
		Info("INAM", "Take One").
		Info("IART", "Quartet").
		Info("ICMT", "odd").
		Bytes()

	ts, err := readBytes(t, data)
	require.NoError(t, err)

	assert.Equal(t, types.FormatWAV, ts.Format)
	assert.Equal(t, "Take One", ts.Fields["INAM"])
	assert.Equal(t, "Quartet", ts.Fields["IART"])
	assert.Equal(t, "odd", ts.Fields["ICMT"])
	assert.Empty(t, ts.Warnings)
}

func TestReadTags_EmbeddedID3(t *testing.T) {
	t.Parallel()

	tag := fixture.NewID3(4).
		Text("TIT2", "From ID3").
		Text("TALB", "Album").
		Bytes()
	data := fixture.NewWAV().
		Info("TIT2", "From INFO").
		ID3(tag).
		Bytes()

	ts, err := readBytes(t, data)
	require.NoError(t, err)

	assert.Equal(t, "From INFO", ts.Fields["TIT2"], "INFO wins over embedded ID3")
	assert.Equal(t, "Album", ts.Fields["TALB"])
	assert.Equal(t, "Album", ts.Fields["album"])

	_, ok := ts.Frame("TALB")
	assert.True(t, ok)
}

func TestReadTags_Latin1Info(t *testing.T) {
	t.Parallel()

	data := fixture.NewWAV().Info("IART", "Bj\xf6rk").Bytes()

	ts, err := readBytes(t, data)
	require.NoError(t, err)
	assert.Equal(t, "Björk", ts.Fields["IART"])
}

func TestReadTags_NotRIFF(t *testing.T) {
	t.Parallel()

	_, err := readBytes(t, []byte("ID3\x04\x00\x00\x00\x00\x00\x00\x00\x00"))
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrDecode)
}

func TestReadTags_Truncated(t *testing.T) {
	t.Parallel()

	data := fixture.NewWAV().Info("INAM", "Take One").Bytes()
	data = data[:len(data)-6]

	ts, err := readBytes(t, data)
	require.NoError(t, err)
	assert.NotEmpty(t, ts.Warnings)
}

func TestDecodeInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", decodeInfo([]byte("abc\x00\x00")))
	assert.Equal(t, "Café", decodeInfo([]byte("Caf\xc3\xa9")))
	assert.Equal(t, "Café", decodeInfo([]byte("Caf\xe9")))
}
