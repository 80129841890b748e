package mp3

// easyNames are the friendly field names the reader adds next to the
// frame keys. Each name takes the first present frame of its list, so
// "date" reads TDRC on ID3v2.4 tags and TYER on ID3v2.3 tags.
var easyNames = []struct {
	name   string
	frames []string
}{
	{name: "album", frames: []string{"TALB"}},
	{name: "albumartist", frames: []string{"TPE2"}},
	{name: "arranger", frames: []string{"TPE4"}},
	{name: "artist", frames: []string{"TPE1"}},
	{name: "bpm", frames: []string{"TBPM"}},
	{name: "composer", frames: []string{"TCOM"}},
	{name: "conductor", frames: []string{"TPE3"}},
	{name: "copyright", frames: []string{"TCOP"}},
	{name: "date", frames: []string{"TDRC", "TYER"}},
	{name: "discnumber", frames: []string{"TPOS"}},
	{name: "encodedby", frames: []string{"TENC"}},
	{name: "genre", frames: []string{"TCON"}},
	{name: "grouping", frames: []string{"TIT1"}},
	{name: "isrc", frames: []string{"TSRC"}},
	{name: "language", frames: []string{"TLAN"}},
	{name: "length", frames: []string{"TLEN"}},
	{name: "lyricist", frames: []string{"TEXT"}},
	{name: "media", frames: []string{"TMED"}},
	{name: "mood", frames: []string{"TMOO"}},
	{name: "organization", frames: []string{"TPUB"}},
	{name: "originaldate", frames: []string{"TDOR", "TORY"}},
	{name: "title", frames: []string{"TIT2"}},
	{name: "tracknumber", frames: []string{"TRCK"}},
	{name: "version", frames: []string{"TIT3"}},
	{name: "website", frames: []string{"WOAR"}},
}
