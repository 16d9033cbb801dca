package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Style definitions.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)

	HelpStyle = lipgloss.NewStyle().Faint(true)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	BuyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	SellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	HoldStyle = lipgloss.NewStyle().Faint(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// SignalStyle picks the style of a signal grade.
func SignalStyle(signal types.SignalGrade) lipgloss.Style {
	switch {
	case signal.IsBuy():
		return BuyStyle
	case signal.IsSell():
		return SellStyle
	default:
		return HoldStyle
	}
}
