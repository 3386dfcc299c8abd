package csvparser

import (
	"strings"
)

// quote is the only quoting character recognised.
const quote = '"'

// Tokenize converts text into a grid of cells using delim as the separator.
//
// The scan is a single left-to-right pass with one character of lookahead:
//   - Inside quotes, "" emits one literal quote; everything else (including
//     the delimiter and line breaks) is literal content.
//   - A lone quote toggles the quoted state, wherever it appears.
//   - Outside quotes, delim ends the field; "\n", "\r" or "\r\n" ends the row.
//   - A row is kept only if at least one of its cells is non-blank.
//
// An unterminated quote simply swallows the remainder of the input into the
// current cell. Tokenize never fails; empty input yields an empty grid.
func Tokenize(text string, delim Delimiter) Grid {
	grid := Grid{}
	if text == "" {
		return grid
	}

	var (
		field    strings.Builder
		row      Row
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if !IsRowBlank(row) {
			grid = append(grid, row)
		}
		row = nil
	}

	// Every structural character is ASCII, so the scan works on bytes and
	// copies everything else through unchanged, invalid UTF-8 included.
	sep := byte(delim)
	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == quote {
			if inQuotes && i+1 < len(text) && text[i+1] == quote {
				field.WriteByte(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
			continue
		}

		if inQuotes {
			field.WriteByte(c)
			continue
		}

		switch {
		case c == sep:
			endField()
		case c == '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		case c == '\n':
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	// Flush whatever is left when the input does not end with a line break.
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return grid
}
