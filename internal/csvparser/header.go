package csvparser

import (
	"strings"
	"unicode"
)

// byteOrderMark is what spreadsheet tools prepend to UTF-8 exports.
const byteOrderMark = '\uFEFF'

// fancyQuotes maps typographic quote glyphs to the straight double quote so
// that headers copied through word processors still resolve.
var fancyQuotes = strings.NewReplacer(
	"\u201C", `"`, // left double quotation mark
	"\u201D", `"`, // right double quotation mark
	"\u201E", `"`, // double low-9 quotation mark
	"\u201F", `"`, // double high-reversed-9 quotation mark
	"\u2033", `"`, // double prime
	"\u00AB", `"`,
	"\u00BB", `"`,
)

// NormalizeHeader maps a header cell to its canonical lookup key.
//
// NORMALIZATION STEPS:
//  1. Strip a leading byte-order mark
//  2. Map curly/typographic quotes to straight quotes
//  3. Strip leading and trailing double quotes
//  4. Collapse whitespace runs to a single space
//  5. Trim
//  6. Lowercase
//
// The byte-order mark counts as whitespace in steps 3-5, so a stray BOM at
// the end of a cell disappears as well.
func NormalizeHeader(cell string) string {
	s := strings.TrimPrefix(cell, string(byteOrderMark))
	s = fancyQuotes.Replace(s)
	s = strings.TrimFunc(s, isHeaderSpace)
	s = strings.Trim(s, `"`)
	s = strings.Join(strings.FieldsFunc(s, isHeaderSpace), " ")
	return strings.ToLower(s)
}

// NormalizeHeaders applies NormalizeHeader to every cell, preserving position.
func NormalizeHeaders(row []string) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = NormalizeHeader(cell)
	}
	return normalized
}

func isHeaderSpace(r rune) bool {
	return unicode.IsSpace(r) || r == byteOrderMark
}
