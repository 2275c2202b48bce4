// Package binning maps raw survey cells to categorical filter labels.
//
// Every rule is total: any input, including a null cell, yields exactly one label,
// and inputs outside the rule's domain yield NotInformed.
package binning

import (
	"math"

	"burnoutlens/domain/survey"
)

// NotInformed is the sentinel label for missing or out-of-domain values.
const NotInformed = "Not Informed"

// Rule labels a numeric cell.
type Rule interface {
	Label(v survey.Value) string
	// Labels returns the vocabulary in presentation order, NotInformed last.
	Labels() []string
}

// Interval is the half-open range (Lower, Upper]. Use math.Inf for open ends.
// A singleton bucket is expressed with Lower == Upper and Closed set.
type Interval struct {
	Lower  float64
	Upper  float64
	Closed bool // include Lower as well (only used for singletons)
	Label  string
}

func (iv Interval) contains(x float64) bool {
	if iv.Closed && x == iv.Lower {
		return true
	}
	return x > iv.Lower && x <= iv.Upper
}

// IntervalRule bins a continuous value with upper-bound-inclusive intervals.
type IntervalRule struct {
	Intervals []Interval
}

// Label returns the label of the first interval containing v.
func (r IntervalRule) Label(v survey.Value) string {
	if !v.Valid || math.IsNaN(v.V) {
		return NotInformed
	}
	for _, iv := range r.Intervals {
		if iv.contains(v.V) {
			return iv.Label
		}
	}
	return NotInformed
}

func (r IntervalRule) Labels() []string {
	out := make([]string, 0, len(r.Intervals)+1)
	for _, iv := range r.Intervals {
		out = append(out, iv.Label)
	}
	return append(out, NotInformed)
}

// Index returns the position of v's interval, or -1 for NotInformed.
func (r IntervalRule) Index(v survey.Value) int {
	if !v.Valid || math.IsNaN(v.V) {
		return -1
	}
	for i, iv := range r.Intervals {
		if iv.contains(v.V) {
			return i
		}
	}
	return -1
}

var inf = math.Inf(1)

// AgeRule bins respondent age; open below 20 and above 60.
var AgeRule = IntervalRule{Intervals: []Interval{
	{Lower: -inf, Upper: 20, Label: "Up to 20 years"},
	{Lower: 20, Upper: 30, Label: "21-30 years"},
	{Lower: 30, Upper: 40, Label: "31-40 years"},
	{Lower: 40, Upper: 50, Label: "41-50 years"},
	{Lower: 50, Upper: 60, Label: "51-60 years"},
	{Lower: 60, Upper: inf, Label: "61+ years"},
}}

// TenureRule bins years in the profession. Zero has its own bucket; negatives are not informed.
var TenureRule = IntervalRule{Intervals: []Interval{
	{Lower: 0, Upper: 0, Closed: true, Label: "0 years"},
	{Lower: 0, Upper: 5, Label: "1-5 years"},
	{Lower: 5, Upper: 10, Label: "6-10 years"},
	{Lower: 10, Upper: 20, Label: "11-20 years"},
	{Lower: 20, Upper: inf, Label: "21+ years"},
}}

// WorkloadRule bins weekly teaching hours; zero or negative loads are not informed.
var WorkloadRule = IntervalRule{Intervals: []Interval{
	{Lower: 0, Upper: 20, Label: "Up to 20h"},
	{Lower: 20, Upper: 30, Label: "21-30h"},
	{Lower: 30, Upper: 40, Label: "31-40h"},
	{Lower: 40, Upper: 50, Label: "41-50h"},
	{Lower: 50, Upper: inf, Label: "51+h"},
}}
