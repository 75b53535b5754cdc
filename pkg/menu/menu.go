package menu

import (
	"fmt"

	"github.com/mchmarny/navd/pkg/nav"
)

// Menu represents the sidebar configuration.
type Menu struct {
	// Title is the menu heading.
	Title string `json:"title" yaml:"title"`

	// Description of the menu
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Version of the menu
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Items is the ordered list of top level items.
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`

	// Aliases rewrite non-canonical routes before matching. First match wins.
	Aliases []nav.Alias `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Entries flattens the item tree depth-first into resolver entries.
// The position of an item in this slice is its menu index.
func (m *Menu) Entries() []nav.Entry {
	var out []nav.Entry
	for i := range m.Items {
		out = appendItem(out, &m.Items[i])
	}
	return out
}

func appendItem(out []nav.Entry, item *Item) []nav.Entry {
	out = append(out, item.entry())
	for i := range item.Items {
		out = appendItem(out, &item.Items[i])
	}
	return out
}

// Validate checks the flattened entries and aliases.
func (m *Menu) Validate() error {
	if err := nav.Validate(m.Entries(), m.Aliases); err != nil {
		return fmt.Errorf("menu %q: %w", m.Title, err)
	}
	return nil
}

// Resolver builds an immutable resolver over the menu.
func (m *Menu) Resolver(unmatched nav.Unmatched) *nav.Resolver {
	return nav.NewResolver(m.Entries(), m.Aliases, unmatched)
}
