package menu

import (
	"html/template"
	"io"
)

var sidebarTmpl = template.Must(template.New("sidebar").Parse(`
{{- define "items" -}}
<ul>
{{- range . }}
<li{{ if .Active }} class="active" aria-current="page"{{ end }}><a href="{{ .Path }}">{{ if .Icon }}<i class="{{ .Icon }}"></i> {{ end }}{{ .Label }}</a>
{{- if .Items }}{{ template "items" .Items }}{{ end -}}
</li>
{{- end }}
</ul>
{{- end -}}
<nav class="sidebar">
<h2>{{ .Title }}</h2>
{{ template "items" .Items }}
</nav>
`))

type sidebarView struct {
	Title string
	Items []sidebarItem
}

type sidebarItem struct {
	Label  string
	Path   string
	Icon   string
	Active bool
	Items  []sidebarItem
}

// renderSidebar writes the sidebar with the item at flat index active
// marked. A negative index marks nothing.
func renderSidebar(w io.Writer, m *Menu, active int) error {
	next := 0
	view := sidebarView{
		Title: m.Title,
		Items: buildItems(m.Items, active, &next),
	}
	return sidebarTmpl.Execute(w, view)
}

// buildItems numbers items in the same depth-first order as Menu.Entries.
func buildItems(items []Item, active int, next *int) []sidebarItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]sidebarItem, 0, len(items))
	for i := range items {
		it := sidebarItem{
			Label:  items[i].Label,
			Path:   items[i].Path,
			Icon:   items[i].Icon,
			Active: *next == active,
		}
		*next++
		it.Items = buildItems(items[i].Items, active, next)
		out = append(out, it)
	}
	return out
}
