package container

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"burnoutlens/domain/survey"
	"burnoutlens/internal/config"
	apperrors "burnoutlens/internal/errors"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// surveyFile writes a header plus one respondent joined by sep.
func surveyFile(t *testing.T, name, sep string) string {
	t.Helper()
	values := map[string]string{
		survey.ColAge: "34", survey.ColGender: "Feminino", survey.ColEducation: "Ensino Médio",
		survey.ColTenure: "8", survey.ColWorkload: "40", survey.ColInstitution: "2", survey.ColViolence: "1",
		survey.ColCounseling: "0", survey.ColFeedback: "1", survey.ColSelfCare: "4", survey.ColLeisure: "3",
		survey.ColManagement: "2", survey.ColBurnoutLevel: "Nível 4", survey.ColExhaustionScore: "27",
	}
	cells := make([]string, len(survey.RequiredColumns))
	for i, col := range survey.RequiredColumns {
		cells[i] = values[col]
	}
	content := strings.Join(survey.RequiredColumns, sep) + "\n" + strings.Join(cells, sep) + "\n"

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_LoadsDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Data.File = surveyFile(t, "cleaned_data.csv", ";")

	c, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, c.Ready())
	assert.NoError(t, c.LoadErr)
	assert.Equal(t, 1, c.Builder.Dataset().Len())
	assert.NotNil(t, c.Sessions)
	assert.Equal(t, cfg.Chart.Width, c.Charts.Width)
	assert.NoError(t, c.Builder.FilterError())

	rec := c.Builder.Dataset().Record(0)
	assert.Equal(t, survey.Some(34), rec.Age)
	assert.Equal(t, survey.BurnoutLevel(4), rec.Burnout)
}

// TestNew_UsesConfiguredDelimiter verifies data.delimiter reaches the loader
func TestNew_UsesConfiguredDelimiter(t *testing.T) {
	cfg := config.Default()
	cfg.Data.File = surveyFile(t, "survey.txt", "|")
	cfg.Data.Delimiter = "|"

	c, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, c.Ready())
	assert.Equal(t, survey.Some(27), c.Builder.Dataset().Record(0).ExhaustionScore)

	cfg.Data.Delimiter = ";"
	c, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, c.Ready())
	assert.True(t, apperrors.IsSchema(c.LoadErr))
}

// TestNew_HoldsLoadError verifies a missing file is recorded rather than returned
func TestNew_HoldsLoadError(t *testing.T) {
	cfg := config.Default()
	cfg.Data.File = filepath.Join(t.TempDir(), "missing.csv")

	c, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, c.Ready())
	assert.True(t, apperrors.IsDataLoad(c.LoadErr))
}

// TestNew_HoldsSchemaError verifies missing columns are recorded rather than returned
func TestNew_HoldsSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.csv")
	require.NoError(t, os.WriteFile(path, []byte("b1_1_idade;ET\n30;4\n"), 0o644))
	cfg := config.Default()
	cfg.Data.File = path

	c, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, c.Ready())
	assert.True(t, apperrors.IsSchema(c.LoadErr))
	assert.Contains(t, apperrors.GetDetails(c.LoadErr), survey.ColBurnoutLevel)
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, zerolog.Nop())
	assert.Error(t, err)
}
