package tagverify

import (
	"github.com/simonhull/tagverify/internal/types"
)

// TagSet holds the raw tags and frames read from one file.
type TagSet = types.TagSet

// RawTagMap maps a physical tag key to its first value.
type RawTagMap = types.RawTagMap

// Frame is one structured ID3v2 frame.
type Frame = types.Frame
