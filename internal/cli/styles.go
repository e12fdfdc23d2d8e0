package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Styles degrade to plain text when output is not a terminal.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	plainStyle   = lipgloss.NewStyle()
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// stateStyle returns the style for rows of a board lane.
func stateStyle(s domain.BoardState) lipgloss.Style {
	switch s {
	case domain.BoardArchived:
		return mutedStyle
	case domain.BoardDeleted:
		return warnStyle
	default:
		return plainStyle
	}
}
