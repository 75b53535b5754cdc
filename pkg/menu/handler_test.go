package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/navd/pkg/nav"
)

type recordingCounter struct {
	entries []string
	aliased []bool
}

func (c *recordingCounter) Observe(entry string, aliased bool) {
	c.entries = append(c.entries, entry)
	c.aliased = append(c.aliased, aliased)
}

func testMenu() *Menu {
	return &Menu{
		Title: "Provider Admin",
		Items: []Item{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Clients", Path: "/dashboard/clients"},
			{Label: "Payment", Path: "/dashboard/payment"},
			{
				Label: "Providers",
				Path:  "/dashboard/providers",
				Items: []Item{{Label: "Add Provider", Path: "/dashboard/providers/new"}},
			},
		},
		Aliases: []nav.Alias{{From: "/dashboard/withdrawal", To: "/dashboard/payment"}},
	}
}

func serve(t *testing.T, h *Handlers, target string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	h.Register(mux.Handle)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func active(t *testing.T, h *Handlers, path string) ActiveResponse {
	t.Helper()

	rec := serve(t, h, ActivePath+"?path="+url.QueryEscape(path))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ActiveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestEntriesFlattenDepthFirst(t *testing.T) {
	entries := testMenu().Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, "Add Provider", entries[4].Label)
	require.NoError(t, testMenu().Validate())
}

func TestValidateNamesMenu(t *testing.T) {
	m := &Menu{Title: "Broken", Items: []Item{{Label: "A", Path: "a"}}}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `menu "Broken"`)
	assert.ErrorIs(t, err, nav.ErrInvalidConfig)
}

func TestMenuHandler(t *testing.T) {
	rec := serve(t, NewHandlers(testMenu(), nav.UnmatchedFirst, nil), MenuPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var m Menu
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, testMenu().Title, m.Title)
	assert.Len(t, m.Items, 4)
	assert.Len(t, m.Aliases, 1)
}

func TestActiveHandler(t *testing.T) {
	counter := &recordingCounter{}
	h := NewHandlers(testMenu(), nav.UnmatchedFirst, counter)

	resp := active(t, h, "/dashboard/withdrawal/history")
	assert.True(t, resp.Matched)
	assert.Equal(t, 2, resp.Index)
	assert.Equal(t, "Payment", resp.Label)
	assert.Equal(t, "/dashboard/payment", resp.ResolvedPath)
	require.NotNil(t, resp.Alias)
	assert.Equal(t, "/dashboard/withdrawal", resp.Alias.From)

	resp = active(t, h, "/dashboard/providers/new/")
	assert.Equal(t, 4, resp.Index)
	assert.Equal(t, "Add Provider", resp.Label)

	resp = active(t, h, "/contact")
	assert.False(t, resp.Matched)
	assert.Equal(t, 0, resp.Index)
	assert.Equal(t, "Dashboard", resp.Label)
	assert.Equal(t, "first", resp.Policy)

	assert.Equal(t, []string{"Payment", "Add Provider", ""}, counter.entries)
	assert.Equal(t, []bool{true, false, false}, counter.aliased)
}

func TestActiveHandlerNonePolicy(t *testing.T) {
	h := NewHandlers(testMenu(), nav.UnmatchedNone, nil)

	resp := active(t, h, "")
	assert.False(t, resp.Matched)
	assert.Equal(t, nav.None, resp.Index)
	assert.Empty(t, resp.Label)
	assert.Equal(t, "none", resp.Policy)
}

func TestHandlersRequirePath(t *testing.T) {
	h := NewHandlers(testMenu(), nav.UnmatchedFirst, nil)

	for _, p := range []string{ActivePath, SidebarPath} {
		rec := serve(t, h, p)
		assert.Equal(t, http.StatusBadRequest, rec.Code, p)
		assert.Contains(t, rec.Body.String(), "missing required query parameter", p)
	}
}

func TestSidebarHandler(t *testing.T) {
	h := NewHandlers(testMenu(), nav.UnmatchedFirst, nil)

	rec := serve(t, h, SidebarPath+"?path=/dashboard/withdrawal/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `class="active"`))
	assert.Contains(t, body, `<li class="active" aria-current="page"><a href="/dashboard/payment">Payment</a>`)
	assert.Contains(t, body, `<h2>Provider Admin</h2>`)
}

func TestSidebarHandlerNested(t *testing.T) {
	h := NewHandlers(testMenu(), nav.UnmatchedFirst, nil)

	body := serve(t, h, SidebarPath+"?path=/dashboard/providers/new").Body.String()
	assert.Equal(t, 1, strings.Count(body, `class="active"`))
	assert.Contains(t, body, `<li class="active" aria-current="page"><a href="/dashboard/providers/new">Add Provider</a>`)
}

func TestSidebarHandlerUnmatched(t *testing.T) {
	// the sidebar never highlights on an unmatched path, even with the first-entry policy
	h := NewHandlers(testMenu(), nav.UnmatchedFirst, nil)

	body := serve(t, h, SidebarPath+"?path=/contact").Body.String()
	assert.NotContains(t, body, `class="active"`)
	assert.Contains(t, body, "Dashboard")
}

func TestSidebarEscapesLabels(t *testing.T) {
	m := &Menu{Title: "T", Items: []Item{{Label: "<b>x</b>", Path: "/x"}}}
	body := serve(t, NewHandlers(m, nav.UnmatchedNone, nil), SidebarPath+"?path=/x").Body.String()
	assert.Contains(t, body, "&lt;b&gt;x&lt;/b&gt;")
}
