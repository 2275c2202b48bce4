package survey

import (
	"math"
	"strconv"
	"strings"
)

// Raw column names as they appear in the cleaned survey export
const (
	ColAge             = "b1_1_idade"
	ColGender          = "b1_2_genero"
	ColEducation       = "b3_3_nivel_ensino"
	ColTenure          = "b3_2_tempo_profissao"
	ColWorkload        = "b3_5_carga_horaria"
	ColInstitution     = "b3_7_grupo_instituicao"
	ColViolence        = "b4_4_violencia_trabalho"
	ColCounseling      = "b2_1_acompanhamento_agrupado"
	ColFeedback        = "b4_3_cultura_feedback"
	ColSelfCare        = "b2_2_frequencia_autocuidado"
	ColLeisure         = "b2_3_tempo_energia_lazer"
	ColManagement      = "b4_7_apoio_gestao_escolar"
	ColBurnoutLevel    = "Nivel_Burnout"
	ColExhaustionScore = "ET"
)

// RequiredColumns lists every column the filters and the comparison need.
var RequiredColumns = []string{
	ColGender, ColEducation, ColBurnoutLevel, ColExhaustionScore,
	ColAge, ColTenure, ColWorkload,
	ColViolence, ColCounseling, ColFeedback, ColInstitution,
	ColSelfCare, ColLeisure, ColManagement,
}

// Value is a nullable numeric cell.
type Value struct {
	V     float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Some returns a present value.
func Some(v float64) Value { return Value{V: v, Valid: true} }

// Null returns a missing value.
func Null() Value { return Value{} }

// ParseValue turns a raw cell into a Value. Empty cells, NaN and anything that is
// not a number are null. A decimal comma is accepted.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	switch strings.ToLower(s) {
	case "nan", "na", "n/a", "null", "none":
		return Null()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return Null()
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Some(f)
}

// Text is a nullable string cell.
type Text struct {
	S     string `json:"text"`
	Valid bool   `json:"valid"`
}

// ParseText trims a raw cell; empty and "nan" cells are null.
func ParseText(raw string) Text {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return Text{}
	}
	return Text{S: s, Valid: true}
}

// Record is one survey respondent.
type Record struct {
	Age             Value        `json:"age"`
	Gender          Text         `json:"gender"`
	Education       Text         `json:"education"`
	Tenure          Value        `json:"tenure"`
	Workload        Value        `json:"workload"`
	Institution     Value        `json:"institution"`
	Violence        Value        `json:"violence"`
	Counseling      Value        `json:"counseling"`
	Feedback        Value        `json:"feedback"`
	SelfCare        Value        `json:"self_care"`
	Leisure         Value        `json:"leisure"`
	Management      Value        `json:"management_support"`
	Burnout         BurnoutLevel `json:"burnout_level"`
	ExhaustionScore Value        `json:"et"`
}

// Numeric returns the numeric cell for a raw column name.
func (r Record) Numeric(column string) (Value, bool) {
	switch column {
	case ColAge:
		return r.Age, true
	case ColTenure:
		return r.Tenure, true
	case ColWorkload:
		return r.Workload, true
	case ColInstitution:
		return r.Institution, true
	case ColViolence:
		return r.Violence, true
	case ColCounseling:
		return r.Counseling, true
	case ColFeedback:
		return r.Feedback, true
	case ColSelfCare:
		return r.SelfCare, true
	case ColLeisure:
		return r.Leisure, true
	case ColManagement:
		return r.Management, true
	case ColExhaustionScore:
		return r.ExhaustionScore, true
	}
	return Value{}, false
}

// Textual returns the string cell for a raw column name.
func (r Record) Textual(column string) (Text, bool) {
	switch column {
	case ColGender:
		return r.Gender, true
	case ColEducation:
		return r.Education, true
	}
	return Text{}, false
}

// Dataset is the immutable, ordered collection of respondents loaded for a session.
// Row identity is the index into Records.
type Dataset struct {
	Source  string
	Columns []string
	records []Record
}

// NewDataset takes ownership of records; callers must not modify the slice afterwards.
func NewDataset(source string, columns []string, records []Record) *Dataset {
	if records == nil {
		records = []Record{}
	}
	return &Dataset{Source: source, Columns: columns, records: records}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Record returns row i by value so callers cannot mutate the dataset.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// ExhaustionScores returns the ET cell of every listed row.
func (d *Dataset) ExhaustionScores(rows []int) []Value {
	out := make([]Value, len(rows))
	for i, row := range rows {
		out[i] = d.records[row].ExhaustionScore
	}
	return out
}
