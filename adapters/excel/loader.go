package excel

import (
	"burnoutlens/domain/survey"
	apperrors "burnoutlens/internal/errors"

	"github.com/rs/zerolog"
)

// LoadDataset reads path and types every row into a survey dataset. delimiter applies
// to text files only. An unreadable file yields a DATA_LOAD_ERROR; missing required
// columns yield a SCHEMA_ERROR listing them.
func LoadDataset(path string, delimiter rune, logger zerolog.Logger) (*survey.Dataset, error) {
	table, err := NewDataReader(path, logger).WithDelimiter(delimiter).ReadData()
	if err != nil {
		return nil, apperrors.DataLoad(path, err)
	}
	return BuildDataset(path, table)
}

// BuildDataset checks the schema of table and parses its rows.
func BuildDataset(source string, table *RawTable) (*survey.Dataset, error) {
	if missing := table.MissingColumns(survey.RequiredColumns); len(missing) > 0 {
		return nil, apperrors.Schema(missing)
	}

	records := make([]survey.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, toRecord(row))
	}
	return survey.NewDataset(source, table.Headers, records), nil
}

func toRecord(row RawRowData) survey.Record {
	num := func(col string) survey.Value { return survey.ParseValue(row[col]) }
	return survey.Record{
		Age:             num(survey.ColAge),
		Gender:          survey.ParseText(row[survey.ColGender]),
		Education:       survey.ParseText(row[survey.ColEducation]),
		Tenure:          num(survey.ColTenure),
		Workload:        num(survey.ColWorkload),
		Institution:     num(survey.ColInstitution),
		Violence:        num(survey.ColViolence),
		Counseling:      num(survey.ColCounseling),
		Feedback:        num(survey.ColFeedback),
		SelfCare:        num(survey.ColSelfCare),
		Leisure:         num(survey.ColLeisure),
		Management:      num(survey.ColManagement),
		Burnout:         survey.ParseBurnoutLevel(row[survey.ColBurnoutLevel]),
		ExhaustionScore: num(survey.ColExhaustionScore),
	}
}
