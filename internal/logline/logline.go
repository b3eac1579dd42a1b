// Package logline prints log events with a caller-chosen date parser.
// Print depends on the ParserFactory abstraction, never on a concrete
// date format.
package logline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	ErrEmptyLayout = errors.New("layout should contain a valid reference time")
	ErrEmptyDate   = errors.New("date string should contain a date")
)

type LogEvent struct {
	Level  string
	Detail string
	Date   string
}

// DateTimeParser parses dates in one layout and renders them in another.
type DateTimeParser struct {
	layout    string
	outLayout string
}

func NewDateTimeParser(layout, outLayout string) (*DateTimeParser, error) {
	if strings.TrimSpace(layout) == "" {
		return nil, fmt.Errorf("layout: %w", ErrEmptyLayout)
	}
	if strings.TrimSpace(outLayout) == "" {
		return nil, fmt.Errorf("out layout: %w", ErrEmptyLayout)
	}
	return &DateTimeParser{layout: layout, outLayout: outLayout}, nil
}

func (p *DateTimeParser) ToTime(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return time.Time{}, ErrEmptyDate
	}
	return time.Parse(p.layout, date)
}

func (p *DateTimeParser) ToString(date string) (string, error) {
	t, err := p.ToTime(date)
	if err != nil {
		return "", err
	}
	return t.Format(p.outLayout), nil
}

// ParserFactory builds the parser used for each event.
type ParserFactory func() (*DateTimeParser, error)

// LongDateParser renders dates like "Sun Jun 26 00:00:00 2022".
func LongDateParser() (*DateTimeParser, error) {
	return NewDateTimeParser(isoDate, time.ANSIC)
}

// ShortDateParser renders dates like "06/26/22".
func ShortDateParser() (*DateTimeParser, error) {
	return NewDateTimeParser(isoDate, "01/02/06")
}

// Print writes one line per event. A nil factory means long dates.
func Print(w io.Writer, ev LogEvent, newParser ParserFactory) error {
	if newParser == nil {
		newParser = LongDateParser
	}

	p, err := newParser()
	if err != nil {
		return err
	}
	date, err := p.ToString(ev.Date)
	if err != nil {
		return fmt.Errorf("event %q: %w", ev.Detail, err)
	}

	_, err = fmt.Fprintf(w, "%s: [%s] %s\n", date, ev.Level, ev.Detail)
	return err
}

// DemoEvents are the events printed by the logs command.
func DemoEvents() []LogEvent {
	return []LogEvent{
		{Level: "INFO", Detail: "Loading module spam.", Date: "2022-06-26"},
		{Level: "INFO", Detail: "Loading module more_spam.", Date: "2022-06-26"},
		{Level: "WARNING", Detail: "Not enough spam.", Date: "2022-06-26"},
		{Level: "ERROR", Detail: "TypeError in module spam.", Date: "2022-06-26"},
	}
}
