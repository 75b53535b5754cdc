package menu

import (
	"log/slog"
	"net/http"

	"github.com/mchmarny/navd/pkg/metric"
	"github.com/mchmarny/navd/pkg/nav"
)

const (
	// MenuPath serves the menu structure as JSON.
	MenuPath = "/api/menu"

	// ActivePath serves the active entry for ?path= as JSON.
	ActivePath = "/api/menu/active"

	// SidebarPath serves the sidebar HTML fragment for ?path=.
	SidebarPath = "/sidebar"
)

// Handlers serves a menu and its active-entry resolution over HTTP.
type Handlers struct {
	menu     *Menu
	resolver *nav.Resolver
	counter  metric.ResolutionCounter
}

// NewHandlers builds the handlers for m. A nil counter records nothing.
func NewHandlers(m *Menu, unmatched nav.Unmatched, counter metric.ResolutionCounter) *Handlers {
	if counter == nil {
		counter = metric.Discard{}
	}
	return &Handlers{
		menu:     m,
		resolver: m.Resolver(unmatched),
		counter:  counter,
	}
}

// Register calls register for every route the handlers serve.
func (h *Handlers) Register(register func(pattern string, handler http.Handler)) {
	register("GET "+MenuPath, h.Menu())
	register("GET "+ActivePath, h.Active())
	register("GET "+SidebarPath, h.Sidebar())
}

// ActiveResponse is the JSON body of the active-entry endpoint.
type ActiveResponse struct {
	Path         string     `json:"path"`
	ResolvedPath string     `json:"resolved_path"`
	Alias        *nav.Alias `json:"alias,omitempty"`
	Matched      bool       `json:"matched"`
	Index        int        `json:"index"`
	Label        string     `json:"label,omitempty"`
	Policy       string     `json:"unmatched_policy"`
}

// Menu returns an HTTP handler that responds with the menu structure as JSON.
func (h *Handlers) Menu() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.menu)
	})
}

// Active returns an HTTP handler that reports the active entry for ?path=.
// Index follows the unmatched policy; Matched is false whenever no entry matched.
func (h *Handlers) Active() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := pathParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		m := h.resolve(p)
		resp := ActiveResponse{
			Path:         p,
			ResolvedPath: m.Path,
			Alias:        m.Alias,
			Matched:      m.Matched(),
			Index:        h.resolver.Index(m),
			Policy:       h.resolver.Policy().String(),
		}
		switch {
		case m.Matched():
			resp.Label = m.Entry.Label
		case resp.Index != nav.None:
			resp.Label = h.resolver.Entries()[resp.Index].Label
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// Sidebar returns an HTTP handler that renders the sidebar fragment for ?path=.
// An unmatched path renders with no active item regardless of policy.
func (h *Handlers) Sidebar() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := pathParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		m := h.resolve(p)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderSidebar(w, h.menu, m.Index); err != nil {
			slog.Error("failed to render sidebar", "path", p, "error", err)
		}
	})
}

func (h *Handlers) resolve(p string) nav.Match {
	m := h.resolver.Match(p)
	h.counter.Observe(m.Entry.Label, m.Alias != nil)

	slog.Debug("resolved active entry",
		"path", p,
		"resolved", m.Path,
		"index", m.Index,
		"label", m.Entry.Label,
	)
	return m
}
