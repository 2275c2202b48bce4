package report

import (
	"burnoutlens/domain/survey"

	"github.com/montanaflynn/stats"
)

// Summary describes the exhaustion scores (ET) of one group.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	SD     float64 `json:"sd"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe summarizes the non-null values. SD is the sample standard deviation and
// stays 0 below two observations.
func Describe(vals []survey.Value) Summary {
	data := make(stats.Float64Data, 0, len(vals))
	for _, v := range vals {
		if v.Valid {
			data = append(data, v.V)
		}
	}

	s := Summary{N: len(data)}
	if s.N == 0 {
		return s
	}
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	if s.N > 1 {
		s.SD, _ = stats.StandardDeviationSample(data)
	}
	return s
}
