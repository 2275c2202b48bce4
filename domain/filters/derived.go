package filters

import (
	"fmt"
	"strings"

	"burnoutlens/domain/survey"
	apperrors "burnoutlens/internal/errors"
)

// Derived is the memoized side table of derived labels, keyed by dimension and row
// index. It is computed once per loaded dataset and never modified afterwards.
type Derived struct {
	rows   int
	labels map[string][]string
	// folded holds lower-cased text for MatchContains dimensions
	folded map[string][]string
}

// Derive labels every row of ds for every dimension of the catalog.
func Derive(ds *survey.Dataset, catalog Catalog) (*Derived, error) {
	if ds == nil {
		return nil, apperrors.FilterConstruction("no dataset to derive filters from")
	}
	d := &Derived{
		rows:   ds.Len(),
		labels: make(map[string][]string, len(catalog)),
		folded: make(map[string][]string),
	}
	for _, dim := range catalog {
		if dim.Rule == nil {
			if _, ok := (survey.Record{}).Textual(dim.Column); !ok {
				return nil, apperrors.FilterConstruction(fmt.Sprintf("dimension %q reads non-text column %q without a rule", dim.Key, dim.Column))
			}
		} else if _, ok := (survey.Record{}).Numeric(dim.Column); !ok {
			return nil, apperrors.FilterConstruction(fmt.Sprintf("dimension %q reads non-numeric column %q", dim.Key, dim.Column))
		}

		col := make([]string, ds.Len())
		for i := 0; i < ds.Len(); i++ {
			col[i] = dim.label(ds.Record(i))
		}
		d.labels[dim.Key] = col

		if dim.Match == MatchContains {
			folded := make([]string, len(col))
			for i, s := range col {
				folded[i] = strings.ToLower(s)
			}
			d.folded[dim.Key] = folded
		}
	}
	return d, nil
}

// Rows returns the number of labelled rows.
func (d *Derived) Rows() int {
	return d.rows
}

// Label returns the derived label of row for the dimension key.
func (d *Derived) Label(key string, row int) string {
	return d.labels[key][row]
}

// Column returns the full derived column for key, or nil.
func (d *Derived) Column(key string) []string {
	return d.labels[key]
}

// Matches reports whether row satisfies the given active values of dim.
// Values of a MatchContains dimension are OR-combined.
func (d *Derived) Matches(dim Dimension, values []string, row int) bool {
	switch dim.Match {
	case MatchContains:
		field := d.folded[dim.Key][row]
		if field == "" {
			return false
		}
		for _, v := range values {
			if strings.Contains(field, strings.ToLower(v)) {
				return true
			}
		}
		return false
	default:
		label := d.labels[dim.Key][row]
		for _, v := range values {
			if label == v {
				return true
			}
		}
		return false
	}
}
