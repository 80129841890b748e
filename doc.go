// Package tagverify checks the metadata embedded in audio files against
// a table of expected values.
//
// # Quick Start
//
// Reading the raw tags of a file:
//
//	ts, err := tagverify.ReadTags("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for key, value := range ts.All() {
//		fmt.Printf("%s: %s\n", key, value)
//	}
//
// The tagverify command walks a directory and reports every file whose
// tags do not match a rule file:
//
//	tagverify -t rules.csv -f ./album
//
// # Supported Formats
//
//   - MP3: ID3v2.2, ID3v2.3 and ID3v2.4 frames, including user-defined text
//     frames and comments
//   - WAV: RIFF LIST/INFO chunks and embedded ID3v2 chunks
//
// # Rule Files
//
// A rule file is a CSV or TSV table of tag, description and expected
// value. Expected values containing any of "[]*?+" are regular
// expressions that must match the whole tag value; all others must be
// equal byte for byte:
//
//	TALB,(Album),My Album Title
//	TPE1,(Artist),[A-Z][a-z]+\s[A-Z][a-z]+
//	TXXX,(SERIES)**,.*
//
// # Error Handling
//
// Errors that prevent a run from starting (an unusable rule file, a
// missing directory) match [ErrSetup]. Files that cannot be read fail
// with a [DecodeError] or [UnsupportedFormatError] and are reported
// alongside the other results. Non-fatal issues found while reading are
// collected in TagSet.Warnings.
package tagverify
