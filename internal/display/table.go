package display

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

const (
	keyHeader     = "KEY"
	valueHeader   = "VALUE"
	keyPadding    = 3
	titleLine     = "Stored Secrets:"
	titleRule     = "-------------------------------------"
	emptyMessage  = "No secrets stored yet."
	revealHint    = "Hint: Run with the '--show-values' or '-s' flag to display full secret values."
	valueRuleSize = len(valueHeader) + 20
)

// Entries is the read-only view a Report renders
type Entries interface {
	Len() int
	Keys() []string
	All() iter.Seq2[string, any]
}

// Report renders the list table one line at a time. It can be consumed
// once; later calls to Lines yield nothing.
type Report struct {
	entries    Entries
	showValues bool
	keyWidth   int
	consumed   bool
}

// NewReport prepares a report over entries. Values are masked unless
// showValues is set.
func NewReport(entries Entries, showValues bool) *Report {
	width := utf8.RuneCountInString(keyHeader)
	for _, key := range entries.Keys() {
		if n := utf8.RuneCountInString(key); n > width {
			width = n
		}
	}
	return &Report{
		entries:    entries,
		showValues: showValues,
		keyWidth:   width + keyPadding,
	}
}

// KeyWidth returns the width of the KEY column including padding
func (r *Report) KeyWidth() int {
	return r.keyWidth
}

// Lines yields the report without trailing newlines
func (r *Report) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.consumed {
			return
		}
		r.consumed = true

		if r.entries.Len() == 0 {
			yield(emptyMessage)
			return
		}

		rule := strings.Repeat("-", r.keyWidth) + "-|-" + strings.Repeat("-", valueRuleSize)
		header := []string{
			titleLine,
			titleRule,
			padRight(keyHeader, r.keyWidth) + " | " + valueHeader,
			rule,
		}
		for _, line := range header {
			if !yield(line) {
				return
			}
		}

		for key, value := range r.entries.All() {
			if !yield(padRight(key, r.keyWidth) + " | " + r.render(value)) {
				return
			}
		}

		footer := []string{rule, fmt.Sprintf("Total secrets: %d", r.entries.Len())}
		if !r.showValues {
			footer = append(footer, revealHint)
		}
		for _, line := range footer {
			if !yield(line) {
				return
			}
		}
	}
}

// WriteTo writes every line of the report to w
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for line := range r.Lines() {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Report) render(value any) string {
	if r.showValues {
		return Reveal(value)
	}
	return Mask(value)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
