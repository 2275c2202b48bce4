package filters

import (
	"testing"

	"burnoutlens/domain/binning"
	"burnoutlens/domain/survey"
	apperrors "burnoutlens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) survey.Text { return survey.ParseText(s) }

func sampleDataset() *survey.Dataset {
	return survey.NewDataset("test", survey.RequiredColumns, []survey.Record{
		{Age: survey.Some(25), Gender: text("Feminino"), Education: text("Ensino Médio; Ensino Superior"), Workload: survey.Some(40), SelfCare: survey.Some(2), Violence: survey.Some(1)},
		{Age: survey.Some(45), Gender: text("Masculino"), Education: text("Ensino Fundamental"), Workload: survey.Some(20), SelfCare: survey.Some(5), Violence: survey.Some(0)},
		{Age: survey.Some(61), Gender: text(""), Education: text("Aposentada"), Workload: survey.Null(), SelfCare: survey.Some(7)},
		{Age: survey.Null(), Gender: text("Feminino"), Education: text("ensino superior (c++)"), Workload: survey.Some(55), SelfCare: survey.Some(2)},
	})
}

func TestDerive_TotalLabels(t *testing.T) {
	ds := sampleDataset()
	derived, err := Derive(ds, DefaultCatalog())
	require.NoError(t, err)
	require.Equal(t, ds.Len(), derived.Rows())

	assert.Equal(t, []string{"21-30 years", "41-50 years", "61+ years", binning.NotInformed}, derived.Column(KeyAge))
	assert.Equal(t, []string{"Feminino", "Masculino", binning.NotInformed, "Feminino"}, derived.Column(KeyGender))
	assert.Equal(t, []string{"Rarely", "Always", binning.NotInformed, "Rarely"}, derived.Column(KeySelfCare))

	for _, dim := range DefaultCatalog() {
		if dim.Multi() {
			continue
		}
		for row := 0; row < ds.Len(); row++ {
			assert.NotEmpty(t, derived.Label(dim.Key, row), "dimension %s row %d", dim.Key, row)
		}
	}
}

func TestDerive_RejectsMisconfiguredDimension(t *testing.T) {
	catalog := Catalog{{Key: "bogus", Display: "Bogus", Column: "not_a_column", Match: MatchExact}}
	_, err := Derive(sampleDataset(), catalog)
	require.Error(t, err)
	assert.True(t, apperrors.IsFilterConstruction(err))
}

func TestMatches_ContainsIsCaseInsensitiveLiteralAndOr(t *testing.T) {
	catalog := DefaultCatalog()
	derived, err := Derive(sampleDataset(), catalog)
	require.NoError(t, err)
	edu := catalog[1]
	require.Equal(t, KeyEducation, edu.Key)

	assert.True(t, derived.Matches(edu, []string{"ENSINO SUPERIOR"}, 0))
	assert.True(t, derived.Matches(edu, []string{"Ensino Superior (C++)"}, 3), "special characters match literally")
	assert.False(t, derived.Matches(edu, []string{"Ensino Médio"}, 1))
	assert.True(t, derived.Matches(edu, []string{"Ensino Médio", "Ensino Fundamental"}, 1), "tokens are OR-combined")
	assert.False(t, derived.Matches(edu, []string{".*"}, 0), "regex metacharacters are not interpreted")
}

func TestBuildOptions_DomainOrderAndPresence(t *testing.T) {
	catalog := DefaultCatalog()
	derived, err := Derive(sampleDataset(), catalog)
	require.NoError(t, err)
	opts := BuildOptions(catalog, derived)
	require.Len(t, opts, len(catalog))

	age, ok := opts.Lookup(KeyAge)
	require.True(t, ok)
	assert.Equal(t, []string{All, "21-30 years", "41-50 years", "61+ years", binning.NotInformed}, age.Choices)

	workload, _ := opts.Lookup(KeyWorkload)
	assert.Equal(t, []string{All, "Up to 20h", "31-40h", "51+h", binning.NotInformed}, workload.Choices)

	gender, _ := opts.Lookup(KeyGender)
	assert.Equal(t, []string{All, "Feminino", "Masculino", binning.NotInformed}, gender.Choices)

	edu, _ := opts.Lookup(KeyEducation)
	assert.True(t, edu.Multi)
	assert.Equal(t, []string{"Ensino Fundamental", "Ensino Médio", "Ensino Superior", "ensino superior (c++)"}, edu.Choices)
	assert.NotContains(t, edu.Choices, "Aposentada")
}

func TestSelection_NoConstraintValues(t *testing.T) {
	sel := NewSelection().Set(KeyAge, All).Set(KeyGender, "Todos").Set(KeyFeedback, "")
	assert.True(t, sel.IsEmpty())
	assert.Empty(t, sel.Active(DefaultCatalog()))

	sel.Set(KeyEducation, "A", "B").Set(KeyAge, "21-30 years")
	active := sel.Active(DefaultCatalog())
	require.Len(t, active, 2)
	assert.Equal(t, "Level(s): A, B", active[0].Description())
	assert.Equal(t, "Age: 21-30 years", active[1].Description())
}

func TestSanitize(t *testing.T) {
	catalog := DefaultCatalog()
	derived, err := Derive(sampleDataset(), catalog)
	require.NoError(t, err)
	opts := BuildOptions(catalog, derived)

	clean, err := Sanitize(NewSelection().Set(KeyAge, "41-50 years").Set(KeyEducation, "Ensino Médio", "Ensino Superior"), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"41-50 years"}, clean.Values(KeyAge))

	cases := []Selection{
		NewSelection().Set("shoe_size", "42"),
		NewSelection().Set(KeyAge, "70-80 years"),
		NewSelection().Set(KeyGender, "Feminino", "Masculino"),
	}
	for _, sel := range cases {
		clean, err := Sanitize(sel, opts)
		require.Error(t, err)
		assert.True(t, apperrors.IsFilterConstruction(err))
		assert.True(t, clean.IsEmpty(), "falls back to no constraint")
	}
}
