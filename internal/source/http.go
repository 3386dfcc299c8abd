package source

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/xlsxparser"
)

// Getter downloads a URL. *fetch.Client implements it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPSource downloads an export. A URL whose path ends in .xlsx is read as a
// workbook, anything else as CSV text.
type HTTPSource struct {
	getter   Getter
	url      string
	sheet    string
	encoding string
}

// NewHTTPSource returns a source reading rawURL through getter. sheet is only
// used for workbooks; encoding names the CSV charset ("" is UTF-8).
func NewHTTPSource(getter Getter, rawURL, sheet, encoding string) *HTTPSource {
	return &HTTPSource{getter: getter, url: rawURL, sheet: sheet, encoding: encoding}
}

// Grid downloads the export and turns it into a grid.
func (s *HTTPSource) Grid(ctx context.Context) (csvparser.Grid, error) {
	body, err := s.getter.Get(ctx, s.url)
	if err != nil {
		return nil, pricelist.FetchError(err)
	}

	if s.isWorkbook() {
		grid, err := xlsxparser.ReadGridFrom(bytes.NewReader(body), s.sheet)
		if err != nil {
			return nil, pricelist.FetchError(err)
		}
		return grid, nil
	}

	text, err := csvparser.Decode(body, s.encoding)
	if err != nil {
		return nil, pricelist.FetchError(err)
	}

	grid, _ := csvparser.Parse(text)
	return grid, nil
}

// Describe returns the URL.
func (s *HTTPSource) Describe() string { return s.url }

func (s *HTTPSource) isWorkbook() bool {
	u, err := url.Parse(s.url)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".xlsx")
}
