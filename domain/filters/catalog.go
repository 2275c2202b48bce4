// Package filters describes the segmentation dimensions offered to the analyst:
// which column each reads, how its values are labelled and ordered, and how a
// chosen value is matched against a respondent.
package filters

import (
	"burnoutlens/domain/binning"
	"burnoutlens/domain/survey"
)

// MatchMode is how a selected value is compared with a record's label.
type MatchMode string

const (
	// MatchExact requires the record's label to equal the selected label.
	MatchExact MatchMode = "exact"
	// MatchContains treats the field as a delimited token list; a record matches when
	// any selected token occurs in it (case-insensitive, literal).
	MatchContains MatchMode = "multi_contains"
)

// Dimension keys, in application order.
const (
	KeyGender            = "gender"
	KeyEducation         = "education"
	KeyAge               = "age"
	KeyTenure            = "tenure"
	KeyWorkload          = "workload"
	KeyViolence          = "violence"
	KeyCounseling        = "counseling"
	KeyInstitution       = "institution"
	KeySelfCare          = "self_care"
	KeyLeisure           = "leisure"
	KeyManagementSupport = "management_support"
	KeyFeedback          = "feedback"
)

// Dimension is one entry of the filter catalog.
type Dimension struct {
	Key     string    `json:"key"`
	Display string    `json:"display"`
	Column  string    `json:"column"`
	Match   MatchMode `json:"match"`
	// Rule derives the label from a numeric column. Nil for text columns, whose
	// trimmed value is the label.
	Rule binning.Rule `json:"-"`
}

// Multi reports whether several values may be chosen at once.
func (d Dimension) Multi() bool {
	return d.Match == MatchContains
}

// label computes the derived label of one record. Total: never returns "".
func (d Dimension) label(r survey.Record) string {
	if d.Rule != nil {
		v, _ := r.Numeric(d.Column)
		return d.Rule.Label(v)
	}
	t, _ := r.Textual(d.Column)
	if !t.Valid {
		if d.Match == MatchContains {
			return ""
		}
		return binning.NotInformed
	}
	return t.S
}

// Catalog is the ordered set of dimensions. Order is both presentation and application order.
type Catalog []Dimension

// DefaultCatalog returns the dashboard's twelve dimensions.
func DefaultCatalog() Catalog {
	return Catalog{
		{Key: KeyGender, Display: "Gender", Column: survey.ColGender, Match: MatchExact},
		{Key: KeyEducation, Display: "Level(s)", Column: survey.ColEducation, Match: MatchContains},
		{Key: KeyAge, Display: "Age", Column: survey.ColAge, Match: MatchExact, Rule: binning.AgeRule},
		{Key: KeyTenure, Display: "Tenure", Column: survey.ColTenure, Match: MatchExact, Rule: binning.TenureRule},
		{Key: KeyWorkload, Display: "Workload", Column: survey.ColWorkload, Match: MatchExact, Rule: binning.WorkloadRule},
		{Key: KeyViolence, Display: "Violence", Column: survey.ColViolence, Match: MatchExact, Rule: binning.BinaryRule},
		{Key: KeyCounseling, Display: "Counseling", Column: survey.ColCounseling, Match: MatchExact, Rule: binning.BinaryRule},
		{Key: KeyInstitution, Display: "Institution", Column: survey.ColInstitution, Match: MatchExact, Rule: binning.InstitutionRule},
		{Key: KeySelfCare, Display: "Self-care", Column: survey.ColSelfCare, Match: MatchExact, Rule: binning.LikertRule},
		{Key: KeyLeisure, Display: "Leisure", Column: survey.ColLeisure, Match: MatchExact, Rule: binning.LikertRule},
		{Key: KeyManagementSupport, Display: "Management support", Column: survey.ColManagement, Match: MatchExact, Rule: binning.LikertRule},
		{Key: KeyFeedback, Display: "Feedback", Column: survey.ColFeedback, Match: MatchExact, Rule: binning.BinaryRule},
	}
}
