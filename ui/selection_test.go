package ui

import (
	"net/url"
	"testing"

	"burnoutlens/domain/filters"

	"github.com/stretchr/testify/assert"
)

func testOptions() filters.Options {
	return filters.Options{
		{Key: filters.KeyGender, Display: "Gender", Choices: []string{filters.All, "Feminino", "Masculino"}},
		{Key: filters.KeyEducation, Display: "Level(s)", Multi: true, Choices: []string{"Ensino Médio", "Ensino Superior"}},
	}
}

func TestSelectionFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set(filters.KeyGender, "Feminino")
	values.Add(filters.KeyEducation, "Ensino Médio")
	values.Add(filters.KeyEducation, "Ensino Superior")
	values.Set("unrelated", "x")

	sel, present := selectionFromQuery(values, testOptions())
	assert.True(t, present)
	assert.Equal(t, []string{"Feminino"}, sel.Values(filters.KeyGender))
	assert.Equal(t, []string{"Ensino Médio", "Ensino Superior"}, sel.Values(filters.KeyEducation))
	assert.Empty(t, sel.Values("unrelated"))
}

func TestSelectionFromQuery_AbsentAndReset(t *testing.T) {
	_, present := selectionFromQuery(url.Values{"page": {"2"}}, testOptions())
	assert.False(t, present)

	sel, present := selectionFromQuery(url.Values{resetParam: {""}}, testOptions())
	assert.True(t, present)
	assert.True(t, sel.IsEmpty())

	sel, present = selectionFromQuery(url.Values{filters.KeyGender: {filters.All}}, testOptions())
	assert.True(t, present, "choosing All still replaces the stored selection")
	assert.True(t, sel.IsEmpty())
}

func TestSelectionQuery_RoundTrip(t *testing.T) {
	opts := testOptions()
	sel := filters.NewSelection().
		Set(filters.KeyEducation, "Ensino Superior").
		Set(filters.KeyGender, "Masculino")

	values := selectionQuery(sel, opts)
	assert.Equal(t, "education=Ensino+Superior&gender=Masculino", values.Encode())

	back, present := selectionFromQuery(values, opts)
	assert.True(t, present)
	assert.Equal(t, sel, back)
}

func TestSelectionRequest_ToSelection(t *testing.T) {
	req := selectionRequest{
		Selection: map[string]string{filters.KeyGender: "Feminino", filters.KeyAge: filters.All},
		Education: []string{"Ensino Médio"},
	}
	sel := req.toSelection()
	assert.Equal(t, []string{"Feminino"}, sel.Values(filters.KeyGender))
	assert.Equal(t, []string{"Ensino Médio"}, sel.Values(filters.KeyEducation))
	assert.Empty(t, sel.Values(filters.KeyAge))
}
