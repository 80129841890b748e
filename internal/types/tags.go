// Package types holds the tag model shared by the container readers and the verifier.
package types

import (
	"iter"
	"maps"
	"slices"
)

// RawTagMap maps a physical tag key to its first decoded value.
//
// Keys are container specific: ID3 frame keys ("TALB", "TXXX:SERIES",
// "COMM::eng"), friendly names added by the ID3 reader ("album", "date")
// or RIFF INFO identifiers ("INAM", "IART").
type RawTagMap map[string]string

// Get returns the value stored under key. Empty values count as absent.
func (m RawTagMap) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// TagSet is everything a reader extracted from one file: the flat
// [RawTagMap] plus, for ID3-bearing files, the structured frames in the
// order they appear on disk.
//
// A TagSet is built once by a reader and only read afterwards.
type TagSet struct {
	index    map[string]int
	Fields   RawTagMap
	Path     string
	frames   []*Frame
	Warnings []Warning
	Format   Format
}

// NewTagSet creates an empty TagSet for path.
func NewTagSet(path string, format Format) *TagSet {
	return &TagSet{
		Path:   path,
		Format: format,
		Fields: make(RawTagMap),
		index:  make(map[string]int),
	}
}

// Set stores value under key unless the key already holds a value.
// Containers may repeat a key; the first occurrence wins.
func (t *TagSet) Set(key, value string) {
	if _, ok := t.Fields[key]; ok {
		return
	}
	t.Fields[key] = value
}

// Lookup returns the non-empty value stored under key.
func (t *TagSet) Lookup(key string) (string, bool) {
	return t.Fields.Get(key)
}

// AddFrame records a structured frame. A frame whose key was already seen
// replaces the earlier one but keeps its position.
func (t *TagSet) AddFrame(f *Frame) {
	if i, ok := t.index[f.Key]; ok {
		t.frames[i] = f
		return
	}
	t.index[f.Key] = len(t.frames)
	t.frames = append(t.frames, f)
}

// Frame returns the frame stored under key.
func (t *TagSet) Frame(key string) (*Frame, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.frames[i], true
}

// RawFrames iterates over the structured frames in file order.
//
// This is the raw-frame capability the resolver relies on for comment
// and user-defined text frames, whose keys carry descriptions and
// language codes that vary between writers.
func (t *TagSet) RawFrames() iter.Seq2[string, *Frame] {
	return func(yield func(string, *Frame) bool) {
		for _, f := range t.frames {
			if !yield(f.Key, f) {
				return
			}
		}
	}
}

// FrameCount returns the number of distinct frames.
func (t *TagSet) FrameCount() int {
	return len(t.frames)
}

// All iterates over the flat fields in key order.
func (t *TagSet) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range slices.Sorted(maps.Keys(t.Fields)) {
			if !yield(k, t.Fields[k]) {
				return
			}
		}
	}
}

// Warn appends a non-fatal warning.
func (t *TagSet) Warn(stage, message string, offset int64) {
	t.Warnings = append(t.Warnings, Warning{Stage: stage, Message: message, Offset: offset})
}
