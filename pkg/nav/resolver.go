// Package nav resolves which sidebar entry is active for a navigation path.
//
// Resolution strips trailing slashes, applies at most one alias rewrite and then
// picks the entry with the longest path that equals the current path or is one of
// its ancestors. Paths only match on segment boundaries, so "/ab" never matches "/a".
package nav

import (
	"strings"
)

// None is returned by Active when no entry matches and the policy is UnmatchedNone.
const None = -1

// Unmatched selects what Active returns for a path no entry matches.
type Unmatched int

const (
	// UnmatchedFirst reports the first declared entry as active.
	UnmatchedFirst Unmatched = iota

	// UnmatchedNone reports None.
	UnmatchedNone
)

// String returns the config name of the policy.
func (u Unmatched) String() string {
	if u == UnmatchedNone {
		return "none"
	}
	return "first"
}

// Entry is a single sidebar item.
type Entry struct {
	// Label is the display name of the entry.
	Label string `json:"label" yaml:"label"`

	// Path is the canonical route the entry represents.
	Path string `json:"path" yaml:"path"`
}

// Alias rewrites paths starting with From to To for highlighting purposes.
type Alias struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Match describes the outcome of a single resolution.
type Match struct {
	// Index of the active entry, None when nothing matched.
	Index int

	// Entry is the active entry, zero value when nothing matched.
	Entry Entry

	// Path is the normalized path after alias rewriting.
	Path string

	// Alias is the rule that was applied, nil when no rule matched.
	Alias *Alias
}

// Matched reports whether an entry was found.
func (m Match) Matched() bool {
	return m.Index != None
}

// Normalize trims surrounding whitespace and all trailing slashes.
func Normalize(path string) string {
	return strings.TrimRight(strings.TrimSpace(path), "/")
}

// Resolve returns the index of the active entry for path, and false when no
// entry matches.
func Resolve(path string, entries []Entry, aliases []Alias) (int, bool) {
	m := match(path, entries, aliases)
	return m.Index, m.Matched()
}

func match(path string, entries []Entry, aliases []Alias) Match {
	p, alias := rewrite(Normalize(path), aliases)

	best, bestLen := None, -1
	for i, e := range entries {
		base := Normalize(e.Path)
		if !within(p, base) {
			continue
		}
		if len(base) > bestLen {
			best, bestLen = i, len(base)
		}
	}

	m := Match{Index: best, Path: p, Alias: alias}
	if best != None {
		m.Entry = entries[best]
	}
	return m
}

// rewrite applies the first alias whose normalized From prefixes p.
func rewrite(p string, aliases []Alias) (string, *Alias) {
	for i := range aliases {
		if strings.HasPrefix(p, Normalize(aliases[i].From)) {
			a := aliases[i]
			return Normalize(a.To), &a
		}
	}
	return p, nil
}

// within reports whether p equals base or lies below it.
func within(p, base string) bool {
	if p == base {
		return true
	}
	return strings.HasPrefix(p, base+"/")
}

// Resolver holds an immutable copy of a sidebar configuration.
// It is safe for concurrent use.
type Resolver struct {
	entries   []Entry
	aliases   []Alias
	unmatched Unmatched
}

// NewResolver copies entries and aliases so later changes by the caller are not observed.
func NewResolver(entries []Entry, aliases []Alias, unmatched Unmatched) *Resolver {
	return &Resolver{
		entries:   append([]Entry(nil), entries...),
		aliases:   append([]Alias(nil), aliases...),
		unmatched: unmatched,
	}
}

// Entries returns a copy of the configured entries.
func (r *Resolver) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Policy returns the unmatched policy.
func (r *Resolver) Policy() Unmatched {
	return r.unmatched
}

// Resolve is the two-valued form: false means no entry is active.
func (r *Resolver) Resolve(path string) (int, bool) {
	return Resolve(path, r.entries, r.aliases)
}

// Match returns the full resolution details for path.
func (r *Resolver) Match(path string) Match {
	return match(path, r.entries, r.aliases)
}

// Active returns the active index, applying the unmatched policy.
// With UnmatchedFirst an unmatched path is indistinguishable from the first
// entry being active; use Resolve when that difference matters.
func (r *Resolver) Active(path string) int {
	return r.Index(r.Match(path))
}

// Index applies the unmatched policy to a Match obtained from this resolver.
func (r *Resolver) Index(m Match) int {
	if m.Matched() {
		return m.Index
	}
	if r.unmatched == UnmatchedFirst && len(r.entries) > 0 {
		return 0
	}
	return None
}
