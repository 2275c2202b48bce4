package report

import (
	"fmt"
	"strings"

	"burnoutlens/domain/filters"
	"burnoutlens/domain/survey"
	"burnoutlens/internal/comparison"
	apperrors "burnoutlens/internal/errors"
	"burnoutlens/internal/segmentation"

	"github.com/rs/zerolog"
)

const (
	noFiltersNotice  = "Showing results for all participants (no filters applied)."
	noMatchNotice    = "No teacher matches the selected filters."
	noValidLevels    = "No valid burnout levels in the filtered group."
	noFiltersApplied = "no filters applied"
)

// Dashboard is everything shown for one filter selection.
type Dashboard struct {
	Source       string                 `json:"source"`
	Total        int                    `json:"total"`
	N            int                    `json:"n"`
	Header       string                 `json:"header"`
	Selection    filters.Selection      `json:"selection"`
	Applied      []string               `json:"applied"`
	AppliedText  string                 `json:"applied_text"`
	Distribution Distribution           `json:"distribution"`
	Filtered     Summary                `json:"filtered_summary"`
	Complement   Summary                `json:"complement_summary"`
	Comparison   *comparison.Comparison `json:"comparison,omitempty"`
	// Undefined carries the reason when no comparison could be made.
	Undefined string   `json:"comparison_undefined,omitempty"`
	PText     string   `json:"p_text,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Notices   []string `json:"notices"`
	Warnings  []string `json:"warnings"`
}

// Builder assembles dashboards over one loaded dataset. It is safe for concurrent
// use because the dataset and derived table are never modified.
type Builder struct {
	dataset    *survey.Dataset
	derived    *filters.Derived
	engine     *segmentation.Engine
	comparator *comparison.Comparator
	options    filters.Options
	// filterErr is set when the catalog could not be derived; the builder then
	// offers no filters and serves the unfiltered dashboard only.
	filterErr error
	logger    zerolog.Logger
}

// NewBuilder derives the filter labels of ds and prepares the presented options.
// A catalog that cannot be derived leaves a builder without filters; see FilterError.
func NewBuilder(ds *survey.Dataset, catalog filters.Catalog, comparator *comparison.Comparator, logger zerolog.Logger) (*Builder, error) {
	if ds == nil {
		return nil, apperrors.InvalidInput("no dataset to report on")
	}
	logger = logger.With().Str("component", "report").Logger()

	derived, filterErr := filters.Derive(ds, catalog)
	if filterErr != nil {
		logger.Error().Err(filterErr).Msg("filter labels could not be derived, filters disabled")
		catalog = filters.Catalog{}
		var err error
		if derived, err = filters.Derive(ds, catalog); err != nil {
			return nil, err
		}
	}
	return &Builder{
		dataset:    ds,
		derived:    derived,
		engine:     segmentation.NewEngine(catalog),
		comparator: comparator,
		options:    filters.BuildOptions(catalog, derived),
		filterErr:  filterErr,
		logger:     logger,
	}, nil
}

// FilterError reports why filters are unavailable, or nil when they are.
func (b *Builder) FilterError() error {
	return b.filterErr
}

// Dataset returns the dataset the builder reports on.
func (b *Builder) Dataset() *survey.Dataset {
	return b.dataset
}

// Options returns the presented choices per dimension.
func (b *Builder) Options() filters.Options {
	return b.options
}

// Sanitize validates a selection against the presented options. On failure the
// empty selection is returned together with the error.
func (b *Builder) Sanitize(sel filters.Selection) (filters.Selection, error) {
	return filters.Sanitize(sel, b.options)
}

// Segment applies sel without validating it.
func (b *Builder) Segment(sel filters.Selection) segmentation.Result {
	return b.engine.Segment(b.dataset, b.derived, sel)
}

// Build validates sel, segments the dataset and computes every dashboard section.
// An invalid selection degrades to the unfiltered dashboard with a warning.
func (b *Builder) Build(sel filters.Selection) Dashboard {
	var warnings []string
	if b.filterErr != nil {
		warnings = append(warnings, "Filters are unavailable: "+b.filterErr.Error())
	}
	clean, err := b.Sanitize(sel)
	if err != nil {
		b.logger.Warn().Err(err).Msg("invalid filter selection, showing unfiltered results")
		warnings = append(warnings, "Filters could not be applied: "+err.Error())
	}

	res := b.Segment(clean)
	d := Dashboard{
		Source:       b.dataset.Source,
		Total:        b.dataset.Len(),
		N:            res.Filtered.Len(),
		Header:       fmt.Sprintf("Results (N = %d)", res.Filtered.Len()),
		Selection:    clean,
		Applied:      res.Applied,
		Distribution: Distribute(b.dataset, res.Filtered.Rows),
		Filtered:     Describe(b.dataset.ExhaustionScores(res.Filtered.Rows)),
		Complement:   Describe(b.dataset.ExhaustionScores(res.Complement.Rows)),
		Notices:      []string{},
		Warnings:     warnings,
	}
	if d.Warnings == nil {
		d.Warnings = []string{}
	}

	if len(res.Applied) > 0 {
		d.AppliedText = "Applied filters: " + strings.Join(res.Applied, "; ")
	} else {
		d.AppliedText = noFiltersNotice
	}

	switch {
	case d.N == 0:
		d.Notices = append(d.Notices, noMatchNotice)
	case d.Distribution.Empty():
		d.Warnings = append(d.Warnings, noValidLevels)
	}

	b.compare(&d, res)

	b.logger.Debug().
		Int("n", d.N).
		Int("complement", res.Complement.Len()).
		Strs("applied", d.Applied).
		Bool("compared", d.Comparison != nil).
		Msg("dashboard built")
	return d
}

func (b *Builder) compare(d *Dashboard, res segmentation.Result) {
	if len(res.Applied) == 0 {
		d.Undefined = noFiltersApplied
		return
	}

	cmp, err := b.comparator.Compare(
		b.dataset.ExhaustionScores(res.Filtered.Rows),
		b.dataset.ExhaustionScores(res.Complement.Rows),
	)
	if err != nil {
		if !apperrors.IsComparisonUndefined(err) {
			b.logger.Error().Err(err).Msg("comparison failed")
		}
		d.Undefined = err.Error()
		return
	}

	d.Comparison = &cmp
	d.PText = cmp.PText()
	d.Narrative = Narrative(cmp)
}

// Narrative renders the markdown finding sentence for a comparison.
func Narrative(c comparison.Comparison) string {
	p := comparison.PClause(c.PValue)
	if c.Significant {
		return fmt.Sprintf("**Significant finding (%s).** The filtered group (median = %.2f) and the rest of the sample "+
			"(median = %.2f) **differ significantly** under the Mann-Whitney U test.", p, c.MedianA, c.MedianB)
	}
	return fmt.Sprintf("**Non-significant finding (%s).** The filtered group (median = %.2f) and the rest of the sample "+
		"(median = %.2f) **do not differ significantly** under the Mann-Whitney U test.", p, c.MedianA, c.MedianB)
}
