package tagverify_test

import (
	"bytes"
	"fmt"

	"github.com/simonhull/tagverify"
	"github.com/simonhull/tagverify/internal/fixture"
)

func ExampleReadTagsFrom() {
	data := fixture.MP3(fixture.NewID3(4).
		Text("TALB", "My Album Title").
		TXXX("SERIES", "Book One").
		Bytes())

	ts, err := tagverify.ReadTagsFrom(bytes.NewReader(data), int64(len(data)), "song.mp3")
	if err != nil {
		fmt.Println(err)
		return
	}

	for key, value := range ts.All() {
		fmt.Printf("%s: %s\n", key, value)
	}
	// Output:
	// TALB: My Album Title
	// TXXX:SERIES: Book One
	// album: My Album Title
}
