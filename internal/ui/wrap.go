package ui

import (
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Row is one wrapped display row mapped back to its source line, so cue
// highlighting survives wrapping.
type Row struct {
	Text string
	Line int
}

// Wrap word-wraps lines to the given display width. Lines that already fit
// pass through unchanged, so wrapping already-wrapped rows is a no-op.
func Wrap(lines []string, width int) []Row {
	if width < 1 {
		width = 1
	}

	var rows []Row
	for i, line := range lines {
		if line == "" {
			rows = append(rows, Row{Line: i})
			continue
		}
		for _, chunk := range wrapLine(line, width) {
			rows = append(rows, Row{Text: chunk, Line: i})
		}
	}

	return rows
}

// wrapLine greedily fills rows with whole words, hard-splitting words wider
// than the row.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
	}

	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)

		if w > width {
			flush()
			for _, piece := range splitWord(word, width) {
				out = append(out, piece)
			}
			// last piece may still take company
			if len(out) > 0 {
				last := out[len(out)-1]
				out = out[:len(out)-1]
				cur.WriteString(last)
				curWidth = runewidth.StringWidth(last)
			}
			continue
		}

		sep := 0
		if curWidth > 0 {
			sep = 1
		}
		if curWidth+sep+w > width {
			flush()
			sep = 0
		}
		if sep == 1 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}

	flush()
	return out
}

// splitWord hard-splits a single overlong word at display-width boundaries.
func splitWord(word string, width int) []string {
	var out []string
	var cur strings.Builder
	curWidth := 0

	for _, r := range word {
		w := runewidth.RuneWidth(r)
		if curWidth+w > width && cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += w
	}

	if cur.Len() > 0 {
		out = append(out, cur.String())
	}

	return out
}

// utf8Locale reports whether the environment advertises a UTF-8 capable
// terminal.
func utf8Locale() bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(key); v != "" {
			v = strings.ToUpper(v)
			return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
		}
	}
	return false
}

// ASCIISafe lossily reduces a string to printable ASCII for terminals that
// cannot render the original text.
func ASCIISafe(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			b.WriteByte('?')
		case !unicode.IsPrint(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
