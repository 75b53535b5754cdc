// Package config loads service settings from the environment and the sidebar
// menu from YAML.
//
// The menu is read once at startup. When no menu file is configured the
// embedded provider-admin sidebar is used.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/navd/pkg/menu"
	"github.com/mchmarny/navd/pkg/nav"
)

//go:embed default_menu.yaml
var defaultMenu []byte

// Settings are the process settings read from the environment.
type Settings struct {
	Port      int    `env:"NAVD_PORT" envDefault:"9876"`
	MenuFile  string `env:"NAVD_MENU_FILE"`
	Unmatched string `env:"NAVD_UNMATCHED" envDefault:"first"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &s, nil
}

// UnmatchedPolicy parses the configured unmatched policy.
func (s *Settings) UnmatchedPolicy() (nav.Unmatched, error) {
	return ParseUnmatched(s.Unmatched)
}

// ParseUnmatched converts "first" or "none" to a policy. Empty means first.
func ParseUnmatched(v string) (nav.Unmatched, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "first":
		return nav.UnmatchedFirst, nil
	case "none":
		return nav.UnmatchedNone, nil
	default:
		return nav.UnmatchedFirst, fmt.Errorf("unknown unmatched policy %q (want first or none)", v)
	}
}

// LoadMenu reads and validates the menu at path, or the embedded default when
// path is empty.
func LoadMenu(path string) (*menu.Menu, error) {
	data := defaultMenu
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read menu: %w", err)
		}
		data = b
	}
	return ParseMenu(data)
}

// ParseMenu decodes a YAML menu. Unknown fields are rejected.
func ParseMenu(data []byte) (*menu.Menu, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m menu.Menu
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}
