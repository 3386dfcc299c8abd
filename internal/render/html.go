// Package render draws the board for browsers and terminals.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/ginjaninja78/price-board/internal/board"
)

// NoResults is shown when a query matches nothing.
const NoResults = "Keine Einträge gefunden."

// DefaultTitle is the page heading.
const DefaultTitle = "Preisliste"

// Page is the data of one HTML board page.
type Page struct {
	Title string
	View  board.View

	// ReloadPath, when set, adds a reload button posting to it.
	ReloadPath string
}

// HTML writes the board page to w.
func HTML(w io.Writer, page Page) error {
	if page.Title == "" {
		page.Title = DefaultTitle
	}
	if err := boardPageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render board page: %w", err)
	}
	return nil
}

// JSONScript marshals v for inline use in a script element. A value that
// cannot be marshaled becomes null.
func JSONScript(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

var pageFuncs = template.FuncMap{
	"price": FormatPrice,
	"json":  JSONScript,
	"noResults": func() string {
		return NoResults
	},
}

var boardPageTemplate = template.Must(template.New("board").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="de">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    :root { --bg: #f6f4ef; --card: #fff; --ink: #1f2328; --muted: #6b7280; --line: #e5e1d8; --accent: #b45309; }
    * { box-sizing: border-box; }
    body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; background: var(--bg); color: var(--ink); }
    main { max-width: 920px; margin: 32px auto; padding: 0 16px; }
    h1 { font-size: 26px; margin: 0 0 16px; }
    form.filters { display: flex; gap: 10px; flex-wrap: wrap; margin-bottom: 14px; }
    form.filters input, form.filters select, form.filters button { font: inherit; padding: 8px 10px; border: 1px solid var(--line); border-radius: 8px; background: var(--card); }
    form.filters input { flex: 1 1 240px; }
    table { width: 100%; border-collapse: collapse; background: var(--card); border: 1px solid var(--line); border-radius: 10px; overflow: hidden; }
    th, td { padding: 10px 12px; border-bottom: 1px solid var(--line); text-align: left; }
    th { font-size: 13px; text-transform: uppercase; letter-spacing: .04em; color: var(--muted); }
    td.right, th.right { text-align: right; white-space: nowrap; }
    td.diagnostic { text-align: center; color: var(--accent); padding: 28px 12px; }
    .item { display: inline-flex; align-items: center; gap: 8px; }
    .item img { width: 24px; height: 24px; image-rendering: pixelated; }
    button.updated { font: inherit; border: 0; background: none; padding: 0; cursor: pointer; text-decoration: underline dotted; }
    [popover] { border: 1px solid var(--line); border-radius: 8px; padding: 10px 14px; box-shadow: 0 8px 24px rgba(0,0,0,.12); }
    .meta { margin-top: 10px; font-size: 13px; color: var(--muted); }
    .warning { margin-bottom: 12px; color: var(--accent); }
  </style>
</head>
<body>
<main>
  <h1>{{.Title}}</h1>
  {{with .View.Warning}}<p class="warning">{{.}}</p>{{end}}
  <form class="filters" method="get" action="/" id="filters">
    <input type="search" name="q" id="search" value="{{.View.Search}}" placeholder="Item suchen …" autocomplete="off">
    <select name="kategorie" id="category">
      {{- range .View.Categories}}
      <option value="{{.Value}}"{{if eq .Value $.View.Category}} selected{{end}}>{{.Label}}</option>
      {{- end}}
    </select>
    <noscript><button type="submit">Filtern</button></noscript>
  </form>
  <table>
    <thead>
      <tr><th>Item</th><th>Kategorie</th><th class="right">Preis</th></tr>
    </thead>
    <tbody id="rows">
    {{- if .View.HasDiagnostic}}
      <tr><td colspan="3" class="diagnostic">{{.View.Diagnostic}}</td></tr>
    {{- else if not .View.Rows}}
      <tr><td colspan="3" class="diagnostic">{{noResults}}</td></tr>
    {{- else}}
    {{- range $i, $r := .View.Rows}}
      <tr>
        <td>
          <span class="item">
            {{- if $r.Icon}}<img src="{{$r.Icon}}" alt="" loading="lazy">{{end}}
            {{- if $r.LastUpdated}}
            <button type="button" class="updated" popovertarget="updated-{{$i}}">{{$r.Item}}</button>
            <div popover id="updated-{{$i}}">Zuletzt aktualisiert: {{$r.LastUpdated}}</div>
            {{- else}}
            {{$r.Item}}
            {{- end}}
          </span>
        </td>
        <td>{{$r.Kategorie}}</td>
        <td class="right">{{price $r.Preis}}</td>
      </tr>
    {{- end}}
    {{- end}}
    </tbody>
  </table>
  <p class="meta">
    {{- if not .View.HasDiagnostic}}{{len .View.Rows}} von {{.View.Total}} Einträgen{{end}}
    {{- if .ReloadPath}}
    <button type="button" id="reload">Neu laden</button>
    {{- end}}
  </p>
</main>
<script>
  const state = {{json .View}};
  const form = document.getElementById("filters");
  let timer = null;
  document.getElementById("search").addEventListener("input", () => {
    clearTimeout(timer);
    timer = setTimeout(() => form.submit(), 250);
  });
  document.getElementById("category").addEventListener("change", () => form.submit());
  {{- if .ReloadPath}}
  document.getElementById("reload").addEventListener("click", () => {
    fetch({{.ReloadPath}}, { method: "POST" }).then(() => location.reload());
  });
  {{- end}}
  if (state && state.search) {
    const input = document.getElementById("search");
    input.focus();
    input.setSelectionRange(input.value.length, input.value.length);
  }
</script>
</body>
</html>
`))
