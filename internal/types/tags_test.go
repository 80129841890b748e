package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSet_Fields(t *testing.T) {
	t.Parallel()

	ts := NewTagSet("a.mp3", FormatMP3)
	ts.Set("TALB", "First")
	ts.Set("TALB", "Second")
	ts.Set("TIT2", "")

	v, ok := ts.Lookup("TALB")
	require.True(t, ok)
	assert.Equal(t, "First", v)

	_, ok = ts.Lookup("TIT2")
	assert.False(t, ok, "empty values count as absent")

	_, ok = ts.Lookup("TPE1")
	assert.False(t, ok)

	var keys []string
	for k := range ts.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"TALB", "TIT2"}, keys)
}

func TestTagSet_Frames(t *testing.T) {
	t.Parallel()

	ts := NewTagSet("a.mp3", FormatMP3)
	ts.AddFrame(&Frame{Key: "COMM::eng", Payload: []byte("one")})
	ts.AddFrame(&Frame{Key: "TXXX:SERIES", Payload: []byte("s")})
	ts.AddFrame(&Frame{Key: "COMM::eng", Payload: []byte("two")})

	assert.Equal(t, 2, ts.FrameCount())

	f, ok := ts.Frame("COMM::eng")
	require.True(t, ok)
	assert.Equal(t, "two", f.Value())

	var order []string
	for k := range ts.RawFrames() {
		order = append(order, k)
	}
	assert.Equal(t, []string{"COMM::eng", "TXXX:SERIES"}, order)

	_, ok = ts.Frame("TXXX:MISSING")
	assert.False(t, ok)
}

func TestTagSet_Warn(t *testing.T) {
	t.Parallel()

	ts := NewTagSet("a.wav", FormatWAV)
	ts.Warn("info", "odd chunk", 36)
	require.Len(t, ts.Warnings, 1)
	assert.Equal(t, int64(36), ts.Warnings[0].Offset)
}
