package filters

import (
	"fmt"
	"sort"
	"strings"

	apperrors "burnoutlens/internal/errors"
)

// All is the "no constraint" pseudo-label shown first in every single-choice control.
const All = "All"

// IsNoConstraint reports values that never act as a real filter: the empty string,
// "All" and the legacy "Todos".
func IsNoConstraint(v string) bool {
	switch strings.TrimSpace(v) {
	case "", All, "Todos", "Todas":
		return true
	}
	return false
}

// Selection maps a dimension key to the chosen values. Single-choice dimensions hold
// at most one value; the education dimension may hold several.
type Selection map[string][]string

// NewSelection returns an empty selection (no constraint anywhere).
func NewSelection() Selection {
	return Selection{}
}

// Set replaces the values of key, dropping no-constraint entries. Returns s for chaining.
func (s Selection) Set(key string, values ...string) Selection {
	var kept []string
	for _, v := range values {
		if !IsNoConstraint(v) {
			kept = append(kept, strings.TrimSpace(v))
		}
	}
	if len(kept) == 0 {
		delete(s, key)
		return s
	}
	s[key] = kept
	return s
}

// Values returns the active values for key.
func (s Selection) Values(key string) []string {
	var out []string
	for _, v := range s[key] {
		if !IsNoConstraint(v) {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ActiveFilter is one constrained dimension.
type ActiveFilter struct {
	Dimension Dimension `json:"dimension"`
	Values    []string  `json:"values"`
}

// Description renders "<display>: <value(s)>".
func (a ActiveFilter) Description() string {
	return fmt.Sprintf("%s: %s", a.Dimension.Display, strings.Join(a.Values, ", "))
}

// Active returns the constrained dimensions in catalog order.
func (s Selection) Active(catalog Catalog) []ActiveFilter {
	var out []ActiveFilter
	for _, dim := range catalog {
		if vals := s.Values(dim.Key); len(vals) > 0 {
			out = append(out, ActiveFilter{Dimension: dim, Values: vals})
		}
	}
	return out
}

// IsEmpty reports a selection without any active filter.
func (s Selection) IsEmpty() bool {
	for k := range s {
		if len(s.Values(k)) > 0 {
			return false
		}
	}
	return true
}

// Sanitize checks a user-supplied selection against the presented options. Unknown
// keys, values that are not offered, or several values for a single-choice
// dimension yield a FILTER_CONSTRUCTION_ERROR together with the empty selection, so
// the caller can keep serving the unfiltered dashboard.
func Sanitize(sel Selection, opts Options) (Selection, error) {
	clean := NewSelection()
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := sel.Values(key)
		if len(vals) == 0 {
			continue
		}
		opt, ok := opts.Lookup(key)
		if !ok {
			return NewSelection(), apperrors.FilterConstruction(fmt.Sprintf("unknown filter %q", key))
		}
		if !opt.Multi && len(vals) > 1 {
			return NewSelection(), apperrors.FilterConstruction(fmt.Sprintf("filter %q accepts a single value, got %d", key, len(vals)))
		}
		for _, v := range vals {
			if !opt.offers(v) {
				return NewSelection(), apperrors.FilterConstruction(fmt.Sprintf("value %q is not available for filter %q", v, key))
			}
		}
		clean.Set(key, vals...)
	}
	return clean, nil
}
