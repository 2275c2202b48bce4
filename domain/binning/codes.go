package binning

import (
	"math"

	"burnoutlens/domain/survey"
)

// CodeRule maps small integer codes to a fixed vocabulary.
type CodeRule struct {
	Codes []int
	Names []string
}

func newCodeRule(first int, names ...string) CodeRule {
	codes := make([]int, len(names))
	for i := range names {
		codes[i] = first + i
	}
	return CodeRule{Codes: codes, Names: names}
}

// Label returns the name of an integral in-domain code, NotInformed otherwise.
func (r CodeRule) Label(v survey.Value) string {
	if !v.Valid || math.IsNaN(v.V) || v.V != math.Trunc(v.V) {
		return NotInformed
	}
	for i, code := range r.Codes {
		if float64(code) == v.V {
			return r.Names[i]
		}
	}
	return NotInformed
}

func (r CodeRule) Labels() []string {
	out := make([]string, 0, len(r.Names)+1)
	out = append(out, r.Names...)
	return append(out, NotInformed)
}

var (
	// BinaryRule decodes 0/1 yes-no flags.
	BinaryRule = newCodeRule(0, "No", "Yes")
	// InstitutionRule decodes where the respondent teaches.
	InstitutionRule = newCodeRule(0, "Public only", "Private only", "Both")
	// LikertRule decodes the five-point frequency scale.
	LikertRule = newCodeRule(1, "Never", "Rarely", "Sometimes", "Often", "Always")
)
