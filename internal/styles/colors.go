package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	Foreground = "#FCFCFA"

	Red     = "#FF6188" // Errors
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Magenta = "#FF6188" // Titles

	Comment = "#727072" // Dim text, help
)

// Common styles
var (
	SuccessStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	NormalTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))
)
