package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/envelopekit/envelope/pkg/model"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorGray)
)

// renderReport formats validation results for the terminal.
func renderReport(m *model.Model, errors []model.ValidationError) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("Model %s", m.Identifier())))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  %d rooms, tolerance %g, angle tolerance %g",
		len(m.Rooms()), m.Tolerance(), m.AngleTolerance())))
	b.WriteString("\n\n")
	if len(errors) == 0 {
		b.WriteString(styleSuccess.Render("✓ all checks passed"))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range errors {
		b.WriteString(styleError.Render("✗ " + e.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleError.Render(fmt.Sprintf("%d validation errors", len(errors))))
	b.WriteString("\n")
	return b.String()
}
