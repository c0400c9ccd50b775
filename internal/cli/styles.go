// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7FB069")
	// WarningColor indicates warnings or low-confidence results.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// CategoryStyle highlights the chosen category.
	CategoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// WarningStyle formats warnings and low-confidence output.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// ConfidenceStyle picks a style for a confidence value.
func ConfidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= 80:
		return CategoryStyle
	case confidence >= 60:
		return WarningStyle
	default:
		return SubtleStyle
	}
}
