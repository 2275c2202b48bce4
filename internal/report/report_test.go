package report

import (
	"testing"

	"burnoutlens/domain/filters"
	"burnoutlens/domain/survey"
	"burnoutlens/internal/comparison"
	apperrors "burnoutlens/internal/errors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondents(n int, fill func(i int, r *survey.Record)) *survey.Dataset {
	records := make([]survey.Record, n)
	for i := range records {
		records[i] = survey.Record{
			Age:             survey.Some(float64(25 + i%30)),
			Gender:          survey.ParseText("Masculino"),
			Education:       survey.ParseText("Ensino Médio"),
			Burnout:         survey.BurnoutLevel(1 + i%5),
			ExhaustionScore: survey.Some(float64(i % 13)),
		}
		if fill != nil {
			fill(i, &records[i])
		}
	}
	return survey.NewDataset("test", survey.RequiredColumns, records)
}

func newBuilder(t *testing.T, ds *survey.Dataset) *Builder {
	t.Helper()
	b, err := NewBuilder(ds, filters.DefaultCatalog(), comparison.NewComparator(comparison.DefaultAlpha, comparison.MethodAuto), zerolog.Nop())
	require.NoError(t, err)
	return b
}

// TestBuild_EmptySelection verifies the unfiltered dashboard over 200 respondents
func TestBuild_EmptySelection(t *testing.T) {
	b := newBuilder(t, respondents(200, nil))

	d := b.Build(filters.NewSelection())

	assert.Equal(t, 200, d.N)
	assert.Equal(t, 200, d.Total)
	assert.Equal(t, "Results (N = 200)", d.Header)
	assert.Equal(t, noFiltersNotice, d.AppliedText)
	assert.Nil(t, d.Comparison)
	assert.Equal(t, noFiltersApplied, d.Undefined)
	assert.Equal(t, 0, d.Complement.N)
	assert.Equal(t, 200, d.Distribution.Valid)
	assert.Equal(t, 80, d.Distribution.HighRisk)
	assert.InDelta(t, 40.0, d.Distribution.HighRiskPercent, 1e-9)
}

// TestBuild_SeparatedGroups verifies the comparison of a filter selecting the low scorers
func TestBuild_SeparatedGroups(t *testing.T) {
	scores := []float64{1, 2, 3, 4, 5, 10, 11, 12, 13, 14}
	ds := respondents(len(scores), func(i int, r *survey.Record) {
		r.ExhaustionScore = survey.Some(scores[i])
		if i < 5 {
			r.Gender = survey.ParseText("Feminino")
		}
	})
	b := newBuilder(t, ds)

	d := b.Build(filters.NewSelection().Set(filters.KeyGender, "Feminino"))

	require.NotNil(t, d.Comparison)
	assert.Equal(t, 5, d.N)
	assert.Equal(t, "Applied filters: Gender: Feminino", d.AppliedText)
	assert.Equal(t, 3.0, d.Comparison.MedianA)
	assert.Equal(t, 12.0, d.Comparison.MedianB)
	assert.True(t, d.Comparison.Significant)
	assert.Empty(t, d.Undefined)
	assert.Contains(t, d.Narrative, "**Significant finding (p = ")
	assert.Contains(t, d.Narrative, "median = 3.00")
	assert.Contains(t, d.Narrative, "median = 12.00")
	assert.Equal(t, 3.0, d.Filtered.Median)
	assert.Equal(t, 1.0, d.Filtered.Min)
	assert.Equal(t, 14.0, d.Complement.Max)
}

// TestBuild_NoMatches verifies a zero-match selection reports zero counts without failing
func TestBuild_NoMatches(t *testing.T) {
	ds := respondents(30, func(i int, r *survey.Record) {
		r.Age = survey.Some(35)
	})
	b := newBuilder(t, ds)

	sel := filters.NewSelection().Set(filters.KeyAge, "31-40 years").Set(filters.KeyGender, "Masculino")
	d := b.Build(sel)
	require.Equal(t, 30, d.N)

	ds2 := respondents(30, func(i int, r *survey.Record) {
		if i == 0 {
			r.Gender = survey.ParseText("Feminino")
			r.Age = survey.Some(55)
		}
	})
	b2 := newBuilder(t, ds2)
	d2 := b2.Build(filters.NewSelection().Set(filters.KeyGender, "Feminino").Set(filters.KeyAge, "21-30 years"))

	assert.Equal(t, 0, d2.N)
	assert.True(t, d2.Distribution.Empty())
	assert.Equal(t, 0, d2.Distribution.HighRisk)
	assert.Equal(t, 0.0, d2.Distribution.HighRiskPercent)
	require.Len(t, d2.Distribution.Levels, 5)
	for _, lc := range d2.Distribution.Levels {
		assert.Equal(t, 0, lc.Count)
		assert.Equal(t, 0.0, lc.Percent)
	}
	assert.Contains(t, d2.Notices, noMatchNotice)
	assert.Nil(t, d2.Comparison)
	assert.NotEmpty(t, d2.Undefined)
}

// TestBuild_InvalidSelectionFallsBack verifies a bad selection shows every respondent with a warning
func TestBuild_InvalidSelectionFallsBack(t *testing.T) {
	b := newBuilder(t, respondents(20, nil))

	d := b.Build(filters.NewSelection().Set(filters.KeyGender, "Feminino", "Masculino"))

	assert.Equal(t, 20, d.N)
	assert.Empty(t, d.Applied)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "Filters could not be applied")
}

// TestBuild_NoValidLevels verifies the warning for a group whose levels are all invalid
func TestBuild_NoValidLevels(t *testing.T) {
	ds := respondents(10, func(i int, r *survey.Record) {
		if i%2 == 0 {
			r.Gender = survey.ParseText("Feminino")
			r.Burnout = survey.LevelInvalid
		}
	})
	b := newBuilder(t, ds)

	d := b.Build(filters.NewSelection().Set(filters.KeyGender, "Feminino"))

	assert.Equal(t, 5, d.N)
	assert.True(t, d.Distribution.Empty())
	assert.Contains(t, d.Warnings, noValidLevels)
}

// TestNewBuilder_MisconfiguredCatalogServesUnfiltered verifies an underivable catalog
// disables filters but keeps the dashboard available
func TestNewBuilder_MisconfiguredCatalogServesUnfiltered(t *testing.T) {
	catalog := append(filters.DefaultCatalog(), filters.Dimension{
		Key: "bogus", Display: "Bogus", Column: "not_a_column", Match: filters.MatchExact,
	})
	b, err := NewBuilder(respondents(200, nil), catalog, comparison.NewComparator(comparison.DefaultAlpha, comparison.MethodAuto), zerolog.Nop())
	require.NoError(t, err)
	require.Error(t, b.FilterError())
	assert.True(t, apperrors.IsFilterConstruction(b.FilterError()))
	assert.Empty(t, b.Options())

	d := b.Build(filters.NewSelection())
	assert.Equal(t, 200, d.N)
	assert.Equal(t, 5, len(d.Distribution.Levels))
	require.NotEmpty(t, d.Warnings)
	assert.Contains(t, d.Warnings[0], "Filters are unavailable")

	filtered := b.Build(filters.NewSelection().Set(filters.KeyGender, "Masculino"))
	assert.Equal(t, 200, filtered.N)
	assert.True(t, filtered.Selection.IsEmpty())
}

func TestNewBuilder_RequiresDataset(t *testing.T) {
	_, err := NewBuilder(nil, filters.DefaultCatalog(), comparison.NewComparator(comparison.DefaultAlpha, comparison.MethodAuto), zerolog.Nop())
	assert.Error(t, err)
}

func TestDistribute(t *testing.T) {
	ds := survey.NewDataset("t", survey.RequiredColumns, []survey.Record{
		{Burnout: 1}, {Burnout: 4}, {Burnout: 5}, {Burnout: 5}, {Burnout: survey.LevelInvalid},
	})

	d := Distribute(ds, []int{0, 1, 2, 3, 4})

	assert.Equal(t, 4, d.Valid)
	assert.Equal(t, 3, d.HighRisk)
	assert.InDelta(t, 75.0, d.HighRiskPercent, 1e-9)
	assert.Equal(t, "2 (50.0%)", d.Levels[4].BarLabel())
	assert.Equal(t, "0 (0.0%)", d.Levels[1].BarLabel())
	assert.Equal(t, "Distribution (N=4)", d.Title())
}

func TestDescribe(t *testing.T) {
	s := Describe([]survey.Value{survey.Some(2), survey.Null(), survey.Some(4), survey.Some(9)})
	assert.Equal(t, 3, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-9)
	assert.Equal(t, 4.0, s.Median)
	assert.InDelta(t, 3.6056, s.SD, 1e-4)

	single := Describe([]survey.Value{survey.Some(7)})
	assert.Equal(t, 0.0, single.SD)
	assert.Equal(t, Summary{}, Describe(nil))
}
