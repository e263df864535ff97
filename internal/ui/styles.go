package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red
	Warning = lipgloss.Color("#F59E0B") // Amber
	Muted   = lipgloss.Color("#6B7280") // Gray
	Info    = lipgloss.Color("#3B82F6") // Blue
)

// Text styles
var (
	Bold   = lipgloss.NewStyle().Bold(true)
	Italic = lipgloss.NewStyle().Italic(true)
	Subtle = lipgloss.NewStyle().Foreground(Muted)
)

// Stage status styles
var (
	StageActive = lipgloss.NewStyle().Foreground(Info)
	StageDone   = lipgloss.NewStyle().Foreground(Success)
	StageFailed = lipgloss.NewStyle().Foreground(Error)
)

// UI element styles
var (
	PromptStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// Title style for the welcome banner and report headings
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// LabelStyle pads report labels into a column
	LabelStyle = lipgloss.NewStyle().Foreground(Muted).Width(14)
)

// Icon constants
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconArrow   = "→"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconRepo    = "📦"
	IconTip     = "💡"
	IconStar    = "🌟"
	IconHistory = "📝"
)
