// Package tui is the interactive terminal price browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ginjaninja78/price-board/internal/board"
	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/render"
)

// Board is what the browser reads. *board.Board implements it.
type Board interface {
	Load(ctx context.Context) error
	View(search, category string) board.View
}

// reloadedMsg reports the outcome of a ctrl+r reload.
type reloadedMsg struct {
	err error
}

// Model is the bubbletea model of the browser.
type Model struct {
	board Board

	search   textinput.Model
	table    table.Model
	category int

	view     board.View
	detail   string
	status   string
	width    int
	quitting bool

	titleStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
	noticeStyle lipgloss.Style
}

// New creates a browser over b. The board should already be loaded.
func New(b Board) Model {
	si := textinput.New()
	si.Placeholder = "Item suchen …"
	si.CharLimit = 64
	si.Width = 40
	si.Focus()

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := Model{
		board:       b,
		search:      si,
		table:       t,
		titleStyle:  lipgloss.NewStyle().Bold(true),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		noticeStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
	m.refresh()
	return m
}

func columns(width int) []table.Column {
	item := max(width-20-12-8, 16)
	return []table.Column{
		{Title: "Item", Width: item},
		{Title: "Kategorie", Width: 20},
		{Title: "Preis", Width: 12},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(msg.Height-8, 3))
		m.refresh()
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.status = "Neu laden fehlgeschlagen"
		} else {
			m.status = "Neu geladen"
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.cycleCategory(1)
			return m, nil
		case "shift+tab":
			m.cycleCategory(-1)
			return m, nil
		case "enter":
			m.toggleDetail()
			return m, nil
		case "ctrl+r":
			m.status = "Lädt …"
			return m, m.reload()
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			m.detail = ""
			return m, cmd
		}
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	if m.search.Value() != before {
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

func (m Model) reload() tea.Cmd {
	b := m.board
	return func() tea.Msg {
		return reloadedMsg{err: b.Load(context.Background())}
	}
}

// cycleCategory moves the category filter by delta, wrapping around. Index 0
// is the "all categories" option.
func (m *Model) cycleCategory(delta int) {
	n := len(m.view.Categories)
	if n == 0 {
		return
	}
	m.category = ((m.category+delta)%n + n) % n
	m.refresh()
}

func (m *Model) currentCategory() string {
	if m.category < 0 || m.category >= len(m.view.Categories) {
		return ""
	}
	return m.view.Categories[m.category].Value
}

// categoryIndex returns the position of value in options, or 0 (all
// categories) when it is gone.
func categoryIndex(options []pricelist.CategoryOption, value string) int {
	for i, o := range options {
		if o.Value == value {
			return i
		}
	}
	return 0
}

// refresh re-runs the query for the current inputs and rebuilds the rows.
func (m *Model) refresh() {
	category := m.currentCategory()
	m.view = m.board.View(m.search.Value(), category)

	// A reload may have moved or removed the selected category.
	m.category = categoryIndex(m.view.Categories, category)
	if m.category == 0 && category != "" {
		m.view = m.board.View(m.search.Value(), "")
	}

	rows := make([]table.Row, 0, len(m.view.Rows))
	for _, r := range m.view.Rows {
		rows = append(rows, table.Row{r.Item, r.Kategorie, render.FormatPrice(r.Preis)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.detail = ""
}

// toggleDetail shows or hides the last update of the selected row.
func (m *Model) toggleDetail() {
	if m.detail != "" {
		m.detail = ""
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Rows) {
		return
	}
	r := m.view.Rows[i]
	if r.HasLastUpdated() {
		m.detail = fmt.Sprintf("%s: zuletzt aktualisiert %s", r.Item, r.LastUpdated)
	} else {
		m.detail = fmt.Sprintf("%s: kein Aktualisierungsdatum", r.Item)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.titleStyle.Render(render.DefaultTitle))
	sb.WriteString("\n\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n")

	label := ""
	if m.category < len(m.view.Categories) {
		label = m.view.Categories[m.category].Label
	}
	sb.WriteString(m.mutedStyle.Render("Kategorie: ") + label + "\n\n")

	switch {
	case m.view.HasDiagnostic():
		sb.WriteString(m.noticeStyle.Render(m.view.Diagnostic) + "\n")
	case len(m.view.Rows) == 0:
		sb.WriteString(m.noticeStyle.Render(render.NoResults) + "\n")
	default:
		sb.WriteString(m.table.View() + "\n")
	}

	if m.view.Warning != "" {
		sb.WriteString(m.noticeStyle.Render(m.view.Warning) + "\n")
	}
	if m.detail != "" {
		sb.WriteString(m.detail + "\n")
	}

	footer := fmt.Sprintf("%d von %d · tab Kategorie · enter Details · ctrl+r neu laden · esc beenden",
		len(m.view.Rows), m.view.Total)
	if m.status != "" {
		footer = m.status + " · " + footer
	}
	sb.WriteString(m.mutedStyle.Render(footer))
	return sb.String()
}

// Run starts the browser on the terminal and blocks until it exits.
func Run(b Board) error {
	p := tea.NewProgram(New(b), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
