package registry

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagverify/internal/types"
)

// mockReader implements TagReader for testing.
type mockReader struct {
	name string
}

func (m *mockReader) ReadTags(_ io.ReaderAt, _ int64, path string) (*types.TagSet, error) {
	ts := types.NewTagSet(path, types.FormatUnknown)
	ts.Set("NAME", m.name)
	return ts, nil
}

func TestRegisterAndGet(t *testing.T) {
	// Use a format that's unlikely to conflict with real registrations
	format := types.Format(999)
	Register(format, &mockReader{name: "test"})

	got := Get(format)
	require.NotNil(t, got)

	ts, err := got.ReadTags(nil, 0, "x")
	require.NoError(t, err)
	assert.Equal(t, "test", ts.Fields["NAME"])
	assert.Contains(t, Formats(), format)
}

func TestGet_Unregistered(t *testing.T) {
	assert.Nil(t, Get(types.Format(998)))
}

func TestRegister_Overwrites(t *testing.T) {
	format := types.Format(997)
	Register(format, &mockReader{name: "first"})
	Register(format, &mockReader{name: "second"})

	mr, ok := Get(format).(*mockReader)
	require.True(t, ok)
	assert.Equal(t, "second", mr.name)
}
