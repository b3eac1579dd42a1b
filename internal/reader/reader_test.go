package reader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities(t *testing.T) {
	var b strings.Builder
	comic := NewComicBookReader(&b, Display{Size: 6.8, PPI: 300}, 8)
	kindle := NewKindleReader(&b, Display{Size: 6, PPI: 167}, 4)

	assert.Equal(t, []string{"print"}, Capabilities(comic))
	assert.Equal(t, []string{"print", "sound", "video"}, Capabilities(kindle))
	assert.Empty(t, Capabilities(&EBookReader{}))

	_, ok := any(comic).(SoundPlayer)
	assert.False(t, ok, "comic reader must not be forced to play sound")
}

func TestPrint(t *testing.T) {
	var b strings.Builder
	comic := NewComicBookReader(&b, Display{}, 8)

	require.NoError(t, comic.Print(25, 30))
	assert.Equal(t, "Printing 25 to 30\n", b.String())

	assert.ErrorIs(t, comic.Print(30, 25), ErrPageRange)
	assert.ErrorIs(t, comic.Print(0, 5), ErrPageRange)
}

func TestNavigationAndBookmarks(t *testing.T) {
	var b strings.Builder
	k := NewKindleReader(&b, Display{Size: 6, PPI: 167}, 4)

	k.NextPage()
	k.NextPage()
	k.AddBookmark()
	k.PreviousPage()
	k.AddBookmark()
	k.AddBookmark()

	assert.Equal(t, 1, k.CurrentPage())
	assert.Equal(t, []int{1, 2}, k.Bookmarks())
	assert.Equal(t, 100, k.Zoom())
	assert.Equal(t, 4, k.StorageGB())
	assert.Equal(t, 167, k.Screen().PPI)
}

func TestDemo(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Demo(&b))

	want := "Opening e-book from /storage/old_man_logan.cbt\n" +
		"Printing 25 to 30\n" +
		"Opening e-book from /storage/a_philosophy_of_software_design.azw3\n" +
		"Printing 1 to 50\n" +
		"Playing video\n" +
		"comic book reader supports: [print]\n" +
		"kindle reader supports: [print sound video]\n"
	assert.Equal(t, want, b.String())
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteErrors(t *testing.T) {
	k := NewKindleReader(failingWriter{}, Display{}, 4)

	assert.ErrorIs(t, k.Open("/storage/book.azw3"), errWrite)
	assert.ErrorIs(t, k.Print(1, 2), errWrite)
	assert.ErrorIs(t, k.PlaySound(), errWrite)
	assert.ErrorIs(t, k.PlayVideo(), errWrite)
	assert.ErrorIs(t, Demo(failingWriter{}), errWrite)
}
