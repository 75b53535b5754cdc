package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid navigation config")

// Validate checks a sidebar configuration before it is handed to NewResolver.
// Resolution itself accepts anything; this only catches mistakes that would make
// an entry unreachable or an alias swallow every path.
func Validate(entries []Entry, aliases []Alias) error {
	var errs []error

	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Label) == "" {
			errs = append(errs, fmt.Errorf("%w: entry %d has no label", ErrInvalidConfig, i))
		}
		if !strings.HasPrefix(e.Path, "/") {
			errs = append(errs, fmt.Errorf("%w: entry %q path %q must start with /", ErrInvalidConfig, e.Label, e.Path))
			continue
		}
		p := Normalize(e.Path)
		if j, ok := seen[p]; ok {
			errs = append(errs, fmt.Errorf("%w: entry %q duplicates path of entry %d", ErrInvalidConfig, e.Label, j))
			continue
		}
		seen[p] = i
	}

	for i, a := range aliases {
		if Normalize(a.From) == "" || strings.TrimSpace(a.To) == "" {
			errs = append(errs, fmt.Errorf("%w: alias %d needs both from and to", ErrInvalidConfig, i))
		}
	}

	return errors.Join(errs...)
}
