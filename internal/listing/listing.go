// Package listing lists a directory in columns. Listing, sorting, layout
// and printing are separate functions so each has one reason to change.
package listing

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	MaxCols      = 3
	defaultWidth = 80
)

// List returns the entry names of path. An empty path means the working
// directory.
func List(path string) ([]string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		path = wd
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Sort returns a sorted copy of entries.
func Sort(entries []string) []string {
	sorted := slices.Clone(entries)
	slices.Sort(sorted)
	return sorted
}

// Columns lays entries out cols per line, each cell padded to width/cols
// display cells. It has no side effects.
func Columns(entries []string, width, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	cell := width / cols

	var lines []string
	for row := range slices.Chunk(entries, cols) {
		var b strings.Builder
		for _, e := range row {
			b.WriteString(runewidth.FillRight(e, cell))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// TerminalWidth reports the width of the terminal on fd, or 80 columns
// when fd is not a terminal.
func TerminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Print is the only function here that does I/O.
func Print(w io.Writer, lines []string) error {
	for _, ln := range lines {
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return err
		}
	}
	return nil
}
