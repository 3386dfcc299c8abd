package csvparser

import (
	"strings"
)

// Delimiter is the single character separating cells within a row.
type Delimiter rune

const (
	// Comma is the default separator.
	Comma Delimiter = ','

	// Semicolon is what spreadsheet tools emit in locales that use a decimal comma.
	Semicolon Delimiter = ';'
)

// String returns the delimiter as a one-character string.
func (d Delimiter) String() string {
	return string(rune(d))
}

// Name returns a human-readable name, used in logs.
func (d Delimiter) Name() string {
	switch d {
	case Semicolon:
		return "semicolon"
	default:
		return "comma"
	}
}

// Detect chooses the delimiter by looking at the first line that has any
// non-whitespace content. Semicolon wins only on a strict majority over
// commas; everything else, including a text with no content, yields Comma.
//
// Only the first line is inspected. A document whose first line disagrees
// with the rest of the file will be mis-tokenized.
func Detect(text string) Delimiter {
	line := firstContentLine(text)

	commas := strings.Count(line, ",")
	semicolons := strings.Count(line, ";")

	if semicolons > commas {
		return Semicolon
	}
	return Comma
}

// firstContentLine returns the first line of text containing non-whitespace,
// or "" when there is none. Both "\n" and "\r\n" line endings are accepted.
func firstContentLine(text string) string {
	for text != "" {
		line, rest, _ := strings.Cut(text, "\n")
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
		text = rest
	}
	return ""
}
