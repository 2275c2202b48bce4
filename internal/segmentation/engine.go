package segmentation

import (
	"burnoutlens/domain/filters"
	"burnoutlens/domain/survey"
)

// View is a subset of dataset rows identified by index. It never copies records.
type View struct {
	Rows []int `json:"rows"`
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	return len(v.Rows)
}

// Result is the outcome of one segmentation pass.
type Result struct {
	Filtered   View                   `json:"filtered"`
	Complement View                   `json:"complement"`
	Active     []filters.ActiveFilter `json:"-"`
	// Applied holds "<display>: <value(s)>" for every active filter, in catalog order.
	Applied []string `json:"applied"`
}

// Engine narrows a dataset by a filter selection.
type Engine struct {
	catalog filters.Catalog
}

// NewEngine creates an engine over the given catalog.
func NewEngine(catalog filters.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the catalog the engine applies.
func (e *Engine) Catalog() filters.Catalog {
	return e.catalog
}

// Segment applies every active filter in catalog order (AND across dimensions, OR
// across the values of one dimension) and returns the filtered rows, their complement
// and the applied-filter descriptions. The dataset is not modified.
func (e *Engine) Segment(ds *survey.Dataset, derived *filters.Derived, sel filters.Selection) Result {
	n := ds.Len()
	working := make([]int, n)
	for i := range working {
		working[i] = i
	}

	active := sel.Active(e.catalog)
	applied := make([]string, 0, len(active))
	for _, af := range active {
		working = narrow(working, derived, af)
		applied = append(applied, af.Description())
	}

	return Result{
		Filtered:   View{Rows: working},
		Complement: View{Rows: complementOf(working, n)},
		Active:     active,
		Applied:    applied,
	}
}

func narrow(rows []int, derived *filters.Derived, af filters.ActiveFilter) []int {
	kept := make([]int, 0, len(rows))
	for _, row := range rows {
		if derived.Matches(af.Dimension, af.Values, row) {
			kept = append(kept, row)
		}
	}
	return kept
}

// complementOf returns every index in [0, n) absent from the ascending list rows.
func complementOf(rows []int, n int) []int {
	in := make([]bool, n)
	for _, r := range rows {
		in[r] = true
	}
	out := make([]int, 0, n-len(rows))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}
