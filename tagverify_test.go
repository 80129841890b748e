package tagverify_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagverify"
	"github.com/simonhull/tagverify/internal/fixture"
)

func TestReadTags_MP3(t *testing.T) {
	t.Parallel()

	tag := fixture.NewID3(4).
		Text("TALB", "My Album Title").
		TXXX("SERIES", "Book One").
		Bytes()
	path := fixture.WriteFile(t, t.TempDir(), "song.mp3", fixture.MP3(tag))

	ts, err := tagverify.ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, tagverify.FormatMP3, ts.Format)
	assert.Equal(t, path, ts.Path)

	v, ok := ts.Lookup("TALB")
	require.True(t, ok)
	assert.Equal(t, "My Album Title", v)

	_, ok = ts.Frame("TXXX:SERIES")
	assert.True(t, ok)
}

func TestReadTags_WAV(t *testing.T) {
	t.Parallel()

	data := fixture.NewWAV().Info("INAM", "Take One").Bytes()
	path := fixture.WriteFile(t, t.TempDir(), "take.wav", data)

	ts, err := tagverify.Reader{}.ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, tagverify.FormatWAV, ts.Format)

	v, _ := ts.Lookup("INAM")
	assert.Equal(t, "Take One", v)
}

func TestReadTags_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := tagverify.ReadTags(dir + "/missing.mp3")
	require.Error(t, err)

	path := fixture.WriteFile(t, dir, "noise.mp3", []byte("this is not audio at all"))
	_, err = tagverify.ReadTags(path)
	var uerr *tagverify.UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, path, uerr.Path)

	// MPEG audio without an ID3v2 tag.
	path = fixture.WriteFile(t, dir, "bare.mp3", fixture.MP3(nil))
	_, err = tagverify.ReadTags(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tagverify.ErrDecode))
}

func TestReadTagsFrom(t *testing.T) {
	t.Parallel()

	data := fixture.MP3(fixture.NewID3(3).Text("TIT2", "Title").Bytes())
	ts, err := tagverify.ReadTagsFrom(bytes.NewReader(data), int64(len(data)), "memory.mp3")
	require.NoError(t, err)

	v, _ := ts.Lookup("title")
	assert.Equal(t, "Title", v)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	wav := fixture.NewWAV().Bytes()
	f, err := tagverify.DetectFormat(bytes.NewReader(wav), int64(len(wav)), "x.bin")
	require.NoError(t, err)
	assert.Equal(t, tagverify.FormatWAV, f)

	assert.Equal(t, tagverify.FormatMP3, tagverify.ParseFormat("MP3"))
	assert.Equal(t, tagverify.FormatUnknown, tagverify.ParseFormat("flac"))
}

func TestVersionInfo(t *testing.T) {
	t.Parallel()

	info := tagverify.GetVersionInfo()
	assert.Equal(t, tagverify.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, tagverify.Version, info.String())
}
