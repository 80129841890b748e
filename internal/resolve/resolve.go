// Package resolve finds the value of a canonical tag in a file's tags.
//
// A canonical tag can live under several physical keys depending on the
// container and on the tool that wrote it. The [AliasTable] lists those
// spellings as data; the [Resolver] walks them in a fixed order and
// returns the first value found.
package resolve

import (
	"log/slog"
	"strings"

	"github.com/simonhull/tagverify/internal/types"
)

// Resolver looks up canonical tags. It is safe for concurrent use.
type Resolver struct {
	aliases *AliasTable
}

// New creates a resolver. A nil table selects [DefaultAliases].
func New(aliases *AliasTable) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Resolver{aliases: aliases}
}

// Aliases returns the table the resolver uses.
func (r *Resolver) Aliases() *AliasTable {
	return r.aliases
}

// Resolve returns the value of tagID in ts, or "" if it is absent.
// Values that fail to decode count as absent.
func (r *Resolver) Resolve(tagID string, ts *types.TagSet) string {
	if ts == nil {
		return ""
	}
	if ts.Format == types.FormatWAV {
		return r.resolveInfo(tagID, ts)
	}
	return r.resolveID3(tagID, ts)
}

func (r *Resolver) resolveID3(tagID string, ts *types.TagSet) string {
	a := r.aliases

	switch {
	case a.IsExtensionOnly(tagID):
		return frameText(ts, ExtensionPrefix+tagID)

	case tagID == a.CommentPrefix:
		return r.comment(ts)

	case tagID == a.Description.Tag:
		return r.description(ts)

	case strings.HasPrefix(tagID, ExtensionPrefix):
		return r.extension(ts, strings.TrimPrefix(tagID, ExtensionPrefix))
	}

	if v, ok := ts.Lookup(tagID); ok {
		return v
	}
	if name, ok := a.FriendlyName(tagID); ok {
		if v, ok := ts.Lookup(name); ok {
			slog.Debug("resolved through friendly name",
				slog.String("tag", tagID),
				slog.String("name", name),
			)
			return v
		}
	}
	return ""
}

// comment returns the first comment frame with an extractable value.
func (r *Resolver) comment(ts *types.TagSet) string {
	var keys []string
	for key, f := range ts.RawFrames() {
		if !strings.HasPrefix(key, r.aliases.CommentPrefix) {
			continue
		}
		keys = append(keys, key)
		if v := commentValue(f); v != "" {
			slog.Debug("resolved comment", slog.String("key", key))
			return v
		}
	}
	if len(keys) == 0 {
		slog.Debug("no comment frames", slog.String("file", ts.Path), slog.Int("frames", ts.FrameCount()))
	}
	return ""
}

// commentValue tries the strict text accessor, then the lenient one,
// then the generic value. The generic value is only used when neither
// accessor can decode the frame; a frame that decodes to "" is empty.
func commentValue(f *types.Frame) string {
	values, err := f.Text()
	if err == nil {
		return values[0]
	}
	slog.Debug("comment text", slog.String("key", f.Key), slog.Any("err", err))

	v, err := f.RawText()
	if err == nil {
		return v
	}
	slog.Debug("comment raw text", slog.String("key", f.Key), slog.Any("err", err))

	return f.Value()
}

func (r *Resolver) description(ts *types.TagSet) string {
	d := r.aliases.Description
	if _, ok := ts.Frame(d.Key); ok {
		return frameText(ts, d.Key)
	}
	for key := range ts.RawFrames() {
		if strings.HasPrefix(key, ExtensionPrefix) && strings.Contains(key, d.Marker) {
			slog.Debug("resolved description", slog.String("key", key))
			return frameText(ts, key)
		}
	}
	return ""
}

func (r *Resolver) extension(ts *types.TagSet, name string) string {
	candidates := r.aliases.LegacyCandidates(name)
	slog.Debug("check user-defined text keys", slog.String("name", name), slog.Any("keys", candidates))

	for _, key := range candidates {
		if _, ok := ts.Frame(key); ok {
			return frameText(ts, key)
		}
		stripped := strings.ReplaceAll(key, ExtensionPrefix, "")
		if _, ok := ts.Frame(stripped); ok {
			return frameText(ts, stripped)
		}
	}
	return ""
}

func (r *Resolver) resolveInfo(tagID string, ts *types.TagSet) string {
	if v, ok := ts.Lookup(tagID); ok {
		return v
	}
	if key, ok := r.aliases.InfoKey(tagID); ok {
		if v, ok := ts.Lookup(key); ok {
			return v
		}
	}
	return ""
}

// frameText returns the first text value of the frame under key.
func frameText(ts *types.TagSet, key string) string {
	f, ok := ts.Frame(key)
	if !ok {
		return ""
	}
	values, err := f.Text()
	if err != nil {
		slog.Debug("frame value is absent",
			slog.String("file", ts.Path),
			slog.String("key", key),
			slog.Any("err", err),
		)
		return ""
	}
	return values[0]
}
