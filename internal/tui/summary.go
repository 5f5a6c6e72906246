package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/AnyUserName/squeeze/internal/pipeline"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// SummaryRows lays out the end-of-run counters. The aggregate change row is
// omitted when nothing was written.
func SummaryRows(s *pipeline.Summary) []SummaryRow {
	st := s.Stats
	rows := []SummaryRow{
		{Label: "Processed", Value: fmt.Sprintf("%d", st.Processed)},
		{Label: "Below threshold (report only)", Value: fmt.Sprintf("%d", st.BelowThreshold)},
		{Label: "Above threshold (report only)", Value: fmt.Sprintf("%d", st.AboveThreshold)},
		{Label: "Errors", Value: fmt.Sprintf("%d", st.Errors)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", st.Skipped)},
	}
	if pct, ok := st.Change(); ok {
		rows = append(rows,
			SummaryRow{Label: "Original size", Value: humanize.IBytes(uint64(st.TotalOriginalBytes))},
			SummaryRow{Label: "Final size", Value: humanize.IBytes(uint64(st.TotalFinalBytes))},
			SummaryRow{Label: "Batch compression", Value: ChangeText(pct)},
		)
	}
	return rows
}

// ChangeText phrases a percentage from pipeline.Change.
func ChangeText(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("reduced %.1f%%", pct)
	}
	return fmt.Sprintf("increased %.1f%%", -pct)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(ColorDim)
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
