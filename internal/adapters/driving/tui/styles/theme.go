// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Info, Success, Warning and Error colour notifications and panels.
	Info    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Mark is the background of highlighted search matches.
	Mark lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0D6EFD"), // Blue
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Info:       lipgloss.Color("#89B4FA"), // Light blue
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Mark:       lipgloss.Color("#F9E2AF"), // Yellow
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Tab and ActiveTab render the tab bar.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	// Mark renders a highlighted search match.
	Mark lipgloss.Style

	// Card frames one search hit or document.
	Card lipgloss.Style

	// SuccessPanel and ErrorPanel frame an operation result.
	SuccessPanel lipgloss.Style
	ErrorPanel   lipgloss.Style

	// Dialog frames a confirmation prompt.
	Dialog lipgloss.Style

	// UserMessage, BotMessage and PendingMessage render chat entries.
	UserMessage    lipgloss.Style
	BotMessage     lipgloss.Style
	PendingMessage lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 2),

		Mark: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(theme.Mark),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(theme.Primary).
			PaddingLeft(1),

		SuccessPanel: panel.BorderForeground(theme.Success),
		ErrorPanel:   panel.BorderForeground(theme.Error),

		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Warning).
			Padding(0, 2),

		UserMessage: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		BotMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		PendingMessage: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Notification returns the banner style for a notification level.
func (s *Styles) Notification(level domain.Level) lipgloss.Style {
	var c lipgloss.Color
	switch level {
	case domain.LevelSuccess:
		c = s.theme.Success
	case domain.LevelWarning:
		c = s.theme.Warning
	case domain.LevelDanger:
		c = s.theme.Error
	default:
		c = s.theme.Info
	}
	return lipgloss.NewStyle().
		Foreground(c).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)
}

// Highlight renders text with every case-insensitive occurrence of term
// styled as a match.
func (s *Styles) Highlight(text, term string) string {
	segments := domain.HighlightSegments(text, term)
	if len(segments) == 1 && !segments[0].Match {
		return s.Normal.Render(text)
	}

	var b strings.Builder
	for _, seg := range segments {
		if seg.Match {
			b.WriteString(s.Mark.Render(seg.Text))
			continue
		}
		b.WriteString(s.Normal.Render(seg.Text))
	}
	return b.String()
}
