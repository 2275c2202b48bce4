package ui

import (
	"net/url"

	"burnoutlens/domain/filters"
)

// resetParam clears the stored selection when present in a query string.
const resetParam = "reset"

// selectionFromQuery reads one parameter per dimension key; education may repeat.
// The boolean reports whether the query carried any selection at all, in which case
// it replaces the session's selection.
func selectionFromQuery(values url.Values, opts filters.Options) (filters.Selection, bool) {
	sel := filters.NewSelection()
	present := values.Has(resetParam)
	for _, opt := range opts {
		vals, ok := values[opt.Key]
		if !ok {
			continue
		}
		present = true
		sel.Set(opt.Key, vals...)
	}
	return sel, present
}

// selectionQuery encodes a selection back into query parameters.
func selectionQuery(sel filters.Selection, opts filters.Options) url.Values {
	values := url.Values{}
	for _, opt := range opts {
		for _, v := range sel.Values(opt.Key) {
			values.Add(opt.Key, v)
		}
	}
	return values
}

// selectionRequest is the body of PUT /api/session/selection
type selectionRequest struct {
	Selection map[string]string `json:"selection"`
	Education []string          `json:"education"`
}

func (r selectionRequest) toSelection() filters.Selection {
	sel := filters.NewSelection()
	for key, v := range r.Selection {
		sel.Set(key, v)
	}
	if len(r.Education) > 0 {
		sel.Set(filters.KeyEducation, r.Education...)
	}
	return sel
}
