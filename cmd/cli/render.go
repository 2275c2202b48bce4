package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"burnoutlens/domain/filters"
	"burnoutlens/internal/report"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9B9B9B"})
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9800"))
	sigStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	levelColors = []lipgloss.Color{"#4CAF50", "#FFEB3B", "#FF9800", "#F44336", "#B71C1C"}
)

const barWidth = 30

// renderDashboard renders a dashboard as styled terminal text
func renderDashboard(d report.Dashboard) string {
	sections := []string{
		titleStyle.Render("Teacher Burnout Dashboard"),
		dimStyle.Render(d.Header),
		labelStyle.Render("Filters: ") + d.AppliedText,
	}
	for _, n := range d.Notices {
		sections = append(sections, dimStyle.Render(n))
	}
	for _, w := range d.Warnings {
		sections = append(sections, warnStyle.Render("! "+w))
	}

	sections = append(sections, boxStyle.Render(renderDistribution(d.Distribution)))
	sections = append(sections, boxStyle.Render(renderComparison(d)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderDistribution(dist report.Distribution) string {
	lines := []string{labelStyle.Render(dist.Title())}
	if dist.Empty() {
		lines = append(lines, dimStyle.Render("no valid burnout levels"))
		return strings.Join(lines, "\n")
	}

	maxCount := 0
	for _, lc := range dist.Levels {
		if lc.Count > maxCount {
			maxCount = lc.Count
		}
	}
	for i, lc := range dist.Levels {
		width := 0
		if maxCount > 0 {
			width = lc.Count * barWidth / maxCount
		}
		bar := lipgloss.NewStyle().Foreground(levelColors[i%len(levelColors)]).Render(strings.Repeat("█", width))
		lines = append(lines, fmt.Sprintf("Level %d %s%s %s", lc.Level, bar, strings.Repeat(" ", barWidth-width), lc.BarLabel()))
	}

	risk := fmt.Sprintf("High risk (levels 4-5): %d of %d (%.1f%%)", dist.HighRisk, dist.Valid, dist.HighRiskPercent)
	if dist.HighRisk > 0 {
		risk = sigStyle.Render(risk)
	}
	lines = append(lines, "", risk)
	return strings.Join(lines, "\n")
}

func renderComparison(d report.Dashboard) string {
	lines := []string{labelStyle.Render("Emotional exhaustion (ET): filtered vs rest of sample")}
	lines = append(lines,
		fmt.Sprintf("%-10s %6s %8s %8s %8s", "", "n", "mean", "median", "sd"),
		summaryLine("filtered", d.Filtered),
		summaryLine("rest", d.Complement),
		"",
	)

	if d.Comparison == nil {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("Cannot compare: %s.", d.Undefined)))
		return strings.Join(lines, "\n")
	}

	c := d.Comparison
	verdict := okStyle.Render("not significant")
	if c.Significant {
		verdict = sigStyle.Render("significant")
	}
	lines = append(lines,
		fmt.Sprintf("Mann-Whitney U = %.1f, p %s (%s, %s)", c.U, pDisplay(d.PText), verdict, c.Method),
		fmt.Sprintf("median filtered = %.2f, median rest = %.2f", c.MedianA, c.MedianB),
		stripEmphasis(d.Narrative),
	)
	return strings.Join(lines, "\n")
}

func summaryLine(name string, s report.Summary) string {
	if s.N == 0 {
		return fmt.Sprintf("%-10s %6d %8s %8s %8s", name, 0, "-", "-", "-")
	}
	return fmt.Sprintf("%-10s %6d %8.2f %8.2f %8.2f", name, s.N, s.Mean, s.Median, s.SD)
}

// pDisplay turns "< 0.001" or "0.0123" into the text following "p".
func pDisplay(text string) string {
	if strings.HasPrefix(text, "<") {
		return text
	}
	return "= " + text
}

// stripEmphasis drops the markdown bold markers used by the web narrative.
func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

func renderOptions(opts filters.Options) string {
	var b strings.Builder
	for _, opt := range opts {
		head := fmt.Sprintf("%s (%s)", opt.Display, opt.Key)
		if opt.Multi {
			head += dimStyle.Render(" several allowed")
		}
		b.WriteString(labelStyle.Render(head))
		b.WriteString("\n")
		for _, choice := range opt.Choices {
			b.WriteString("  " + choice + "\n")
		}
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
