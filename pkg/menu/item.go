package menu

import "github.com/mchmarny/navd/pkg/nav"

// Item represents an individual entry in the sidebar, which may contain sub-items.
type Item struct {
	// Label is the display name of the item.
	Label string `json:"label" yaml:"label"`

	// Path is the canonical route the item highlights for.
	Path string `json:"path" yaml:"path"`

	// Icon is an optional icon class name.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Description is an optional description of the item.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Items are the sub-items of this item.
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

func (i *Item) entry() nav.Entry {
	return nav.Entry{Label: i.Label, Path: i.Path}
}
