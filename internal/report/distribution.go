package report

import (
	"fmt"

	"burnoutlens/domain/survey"
)

// LevelCount is the frequency of one burnout level within a group.
type LevelCount struct {
	Level       survey.BurnoutLevel `json:"level"`
	Description string              `json:"description"`
	Count       int                 `json:"count"`
	Percent     float64             `json:"percent"`
	HighRisk    bool                `json:"high_risk"`
}

// BarLabel renders "count (pct%)".
func (lc LevelCount) BarLabel() string {
	return fmt.Sprintf("%d (%.1f%%)", lc.Count, lc.Percent)
}

// Distribution counts burnout levels 1-5 over the rows with a valid level.
type Distribution struct {
	Levels          []LevelCount `json:"levels"`
	Valid           int          `json:"valid"`
	HighRisk        int          `json:"high_risk"`
	HighRiskPercent float64      `json:"high_risk_percent"`
}

// Empty reports a group without any valid burnout level.
func (d Distribution) Empty() bool {
	return d.Valid == 0
}

// Title is the chart title, e.g. "Distribution (N=42)".
func (d Distribution) Title() string {
	return fmt.Sprintf("Distribution (N=%d)", d.Valid)
}

// Distribute counts the burnout levels of rows. Invalid levels are excluded from
// every count and percentage; an empty group yields all-zero counts.
func Distribute(ds *survey.Dataset, rows []int) Distribution {
	counts := make(map[survey.BurnoutLevel]int, len(survey.Levels()))
	var d Distribution
	for _, row := range rows {
		lvl := ds.Record(row).Burnout
		if !lvl.Valid() {
			continue
		}
		counts[lvl]++
		d.Valid++
		if lvl.HighRisk() {
			d.HighRisk++
		}
	}

	d.Levels = make([]LevelCount, 0, len(survey.Levels()))
	for _, lvl := range survey.Levels() {
		d.Levels = append(d.Levels, LevelCount{
			Level:       lvl,
			Description: lvl.Description(),
			Count:       counts[lvl],
			Percent:     percent(counts[lvl], d.Valid),
			HighRisk:    lvl.HighRisk(),
		})
	}
	d.HighRiskPercent = percent(d.HighRisk, d.Valid)
	return d
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
