// Package status provides the loading tracker and status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
)

// Bar displays the loading indicator, the server address and key hints.
type Bar struct {
	styles   *styles.Styles
	activity *Activity
	spinner  spinner.Model
	server   string
	hints    []key.Binding
	width    int
}

// NewBar creates a status bar reporting activity.
func NewBar(s *styles.Styles, activity *Activity, server string) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if activity == nil {
		activity = &Activity{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &Bar{
		styles:   s,
		activity: activity,
		spinner:  sp,
		server:   server,
		width:    80,
	}
}

// Init starts the spinner.
func (b *Bar) Init() tea.Cmd {
	return b.spinner.Tick
}

// Update advances the spinner.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(tick)
		return b, cmd
	}
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	if b.activity.State() == StateLoading {
		label := "Loading..."
		if n := b.activity.InFlight(); n > 1 {
			label = fmt.Sprintf("Loading (%d)...", n)
		}
		return b.spinner.View() + " " + b.styles.Normal.Render(label)
	}
	if b.server != "" {
		return b.styles.Muted.Render(b.server)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, binding := range b.hints {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetHints replaces the key hints.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Activity returns the tracker the bar reports.
func (b *Bar) Activity() *Activity {
	return b.activity
}
