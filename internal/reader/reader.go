// Package reader models e-book readers that opt into only the features
// they support: printing, sound and video are separate interfaces.
package reader

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

var ErrPageRange = errors.New("invalid page range")

var (
	_ Printer     = (*ComicBookReader)(nil)
	_ Printer     = (*KindleReader)(nil)
	_ SoundPlayer = (*KindleReader)(nil)
	_ VideoPlayer = (*KindleReader)(nil)
)

type Printer interface {
	Print(from, to int) error
}

type SoundPlayer interface {
	PlaySound() error
}

type VideoPlayer interface {
	PlayVideo() error
}

type Display struct {
	Size float64
	PPI  int
}

// EBookReader carries what every device has in common.
type EBookReader struct {
	out       io.Writer
	display   Display
	storageGB int
	zoom      int
	current   int
	bookmarks map[int]struct{}
}

func newEBookReader(out io.Writer, d Display, storageGB int) EBookReader {
	return EBookReader{
		out:       out,
		display:   d,
		storageGB: storageGB,
		zoom:      100,
		bookmarks: make(map[int]struct{}),
	}
}

func (r *EBookReader) Open(path string) error {
	_, err := fmt.Fprintf(r.out, "Opening e-book from %s\n", path)
	return err
}

func (r *EBookReader) Screen() Display { return r.display }
func (r *EBookReader) StorageGB() int  { return r.storageGB }
func (r *EBookReader) Zoom() int       { return r.zoom }

func (r *EBookReader) NextPage()     { r.current++ }
func (r *EBookReader) PreviousPage() { r.current-- }

func (r *EBookReader) CurrentPage() int {
	return r.current
}

func (r *EBookReader) AddBookmark() {
	r.bookmarks[r.current] = struct{}{}
}

func (r *EBookReader) Bookmarks() []int {
	pages := make([]int, 0, len(r.bookmarks))
	for p := range r.bookmarks {
		pages = append(pages, p)
	}
	slices.Sort(pages)
	return pages
}

func (r *EBookReader) print(from, to int) error {
	if from < 1 || to < from {
		return fmt.Errorf("%w: %d to %d", ErrPageRange, from, to)
	}
	_, err := fmt.Fprintf(r.out, "Printing %d to %d\n", from, to)
	return err
}

// ComicBookReader prints but has no sound or video.
type ComicBookReader struct {
	EBookReader
}

func NewComicBookReader(out io.Writer, d Display, storageGB int) *ComicBookReader {
	return &ComicBookReader{EBookReader: newEBookReader(out, d, storageGB)}
}

func (c *ComicBookReader) Print(from, to int) error {
	return c.print(from, to)
}

type KindleReader struct {
	EBookReader
}

func NewKindleReader(out io.Writer, d Display, storageGB int) *KindleReader {
	return &KindleReader{EBookReader: newEBookReader(out, d, storageGB)}
}

func (k *KindleReader) Print(from, to int) error {
	return k.print(from, to)
}

func (k *KindleReader) PlaySound() error {
	_, err := fmt.Fprintln(k.out, "Playing sound")
	return err
}

func (k *KindleReader) PlayVideo() error {
	_, err := fmt.Fprintln(k.out, "Playing video")
	return err
}

// Capabilities lists the optional features v supports.
func Capabilities(v any) []string {
	var caps []string
	if _, ok := v.(Printer); ok {
		caps = append(caps, "print")
	}
	if _, ok := v.(SoundPlayer); ok {
		caps = append(caps, "sound")
	}
	if _, ok := v.(VideoPlayer); ok {
		caps = append(caps, "video")
	}
	return caps
}

// Demo opens a comic book and a kindle book and uses what each supports.
func Demo(out io.Writer) error {
	comic := NewComicBookReader(out, Display{Size: 6.8, PPI: 300}, 8)
	if err := comic.Open("/storage/old_man_logan.cbt"); err != nil {
		return err
	}
	if err := comic.Print(25, 30); err != nil {
		return err
	}

	kindle := NewKindleReader(out, Display{Size: 6, PPI: 167}, 4)
	if err := kindle.Open("/storage/a_philosophy_of_software_design.azw3"); err != nil {
		return err
	}
	if err := kindle.Print(1, 50); err != nil {
		return err
	}
	if err := kindle.PlayVideo(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(out, "comic book reader supports: %v\n", Capabilities(comic)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "kindle reader supports: %v\n", Capabilities(kindle))
	return err
}
