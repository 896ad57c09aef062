package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jamesainslie/go-flamingo/internal/eval"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(17)
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderSummary formats the human-readable evaluation summary printed to the
// diagnostic stream. The JSON report on stdout stays machine-readable.
func renderSummary(report *eval.Report) string {
	s := report.Summary

	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("Evaluation Summary"))
	b.WriteByte('\n')

	row := func(label, value string) {
		b.WriteString(summaryLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	row("Total files", fmt.Sprintf("%d", s.Count))
	row("True positives", fmt.Sprintf("%d", s.TruePositives))
	row("False positives", fmt.Sprintf("%d", s.FalsePositives))
	row("False negatives", fmt.Sprintf("%d", s.FalseNegatives))
	row("Precision", fmt.Sprintf("%.4f", s.Precision))
	row("Recall", fmt.Sprintf("%.4f", s.Recall))
	row("F1 score", fmt.Sprintf("%.4f", s.F1))

	if n := len(report.Skipped); n > 0 {
		b.WriteString(summaryWarnStyle.Render(fmt.Sprintf("%d input(s) skipped without a reference", n)))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}
