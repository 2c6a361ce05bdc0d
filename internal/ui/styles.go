package ui

import "github.com/charmbracelet/lipgloss"

// Colors for the UI theme.
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan
	ColorWarning   = lipgloss.Color("#D97706") // Muted Amber
	ColorError     = lipgloss.Color("#DC2626") // Muted Red
	ColorMuted     = lipgloss.Color("#9CA3AF") // Neutral Gray
	ColorText      = lipgloss.Color("#F1F5F9") // Soft White
	ColorBorder    = lipgloss.Color("#1E293B") // Subtle Slate
	ColorHighlight = lipgloss.Color("#E9D5FF") // Soft Purple, lighter
	ColorDim       = lipgloss.Color("#6B7280") // Gray
)

// Styles holds the styling for the picker.
type Styles struct {
	Title        lipgloss.Style
	Banner       lipgloss.Style
	BannerLabel  lipgloss.Style
	RowName      lipgloss.Style
	RowDesc      lipgloss.Style
	RowCwd       lipgloss.Style
	SelectedRow  lipgloss.Style
	Cursor       lipgloss.Style
	EmptyList    lipgloss.Style
	PreviewPane  lipgloss.Style
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles creates the default styles.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		BannerLabel: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true),
		RowName: lipgloss.NewStyle().
			Foreground(ColorText),
		RowDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),
		RowCwd: lipgloss.NewStyle().
			Foreground(ColorDim),
		SelectedRow: lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		EmptyList: lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true).
			Padding(1, 2),
		PreviewPane: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorBorder).
			PaddingLeft(2),
		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		DialogPrompt: lipgloss.NewStyle().
			Foreground(ColorSecondary),
		Help: lipgloss.NewStyle().
			Foreground(ColorDim),
	}
}
