package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ginjaninja78/price-board/internal/board"
)

// Coin is appended to every price.
const Coin = "🪙"

// minItemWidth is the narrowest the item column shrinks to when fitting a
// terminal.
const minItemWidth = 8

// Styles used by the terminal table.
type Styles struct {
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Price     lipgloss.Style
	Separator lipgloss.Style
	Notice    lipgloss.Style
}

// DefaultStyles returns the standard table styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:      lipgloss.NewStyle().Padding(0, 1),
		Price:     lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// FormatPrice renders a price cell value.
func FormatPrice(preis string) string {
	if preis == "" {
		return ""
	}
	return preis + " " + Coin
}

// Table renders rows as a terminal table no wider than width. width <= 0
// disables fitting. An empty row set renders the no-results line.
func Table(rows []board.Row, width int) string {
	return TableWithStyles(rows, width, DefaultStyles())
}

// TableWithStyles is Table with explicit styles.
func TableWithStyles(rows []board.Row, width int, styles Styles) string {
	if len(rows) == 0 {
		return styles.Notice.Render(NoResults) + "\n"
	}

	headers := []string{"Item", "Kategorie", "Preis"}
	withUpdated := false
	for _, r := range rows {
		if r.HasLastUpdated() {
			withUpdated = true
			break
		}
	}
	if withUpdated {
		headers = append(headers, "Aktualisiert")
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{r.Item, r.Kategorie, FormatPrice(r.Preis)}
		if withUpdated {
			row = append(row, r.LastUpdated)
		}
		cells = append(cells, row)
	}

	// Calculate column widths, padding included.
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	totalWidth := len(headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	if width > 0 && totalWidth > width {
		shrink := totalWidth - width
		colWidths[0] = max(colWidths[0]-shrink, minItemWidth+2)
		totalWidth = len(headers) - 1
		for _, w := range colWidths {
			totalWidth += w
		}
	}

	var sb strings.Builder
	sep := styles.Separator.Render("|")

	writeRow := func(row []string, header bool) {
		for i, cell := range row {
			style := styles.Cell
			switch {
			case header:
				style = styles.Header
			case i == 2:
				style = styles.Price
			}
			cell = truncate(cell, colWidths[i]-2)
			sb.WriteString(style.Width(colWidths[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers, true)
	sb.WriteString(styles.Separator.Render(strings.Repeat("-", totalWidth)) + "\n")
	for _, row := range cells {
		writeRow(row, false)
	}

	return sb.String()
}

// Diagnostic renders the message shown instead of the table.
func Diagnostic(message string) string {
	return DefaultStyles().Notice.Render(message) + "\n"
}

// truncate shortens s to at most width display cells, marking the cut.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
