// Package confirm provides a yes/no confirmation dialog.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
)

// Answer is the outcome of a key press in an open dialog.
type Answer int

const (
	// Undecided means the key was not an answer.
	Undecided Answer = iota
	// Confirmed means the user accepted.
	Confirmed
	// Cancelled means the user declined.
	Cancelled
)

// Dialog asks the user to confirm an action. It carries an opaque payload
// identifying what is being confirmed.
type Dialog struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	prompt  string
	payload any
	open    bool
}

// New creates a closed dialog.
func New(s *styles.Styles, keys *keymap.KeyMap) *Dialog {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	return &Dialog{styles: s, keys: keys}
}

// Open shows the dialog with prompt.
func (d *Dialog) Open(prompt string, payload any) {
	d.prompt = prompt
	d.payload = payload
	d.open = true
}

// IsOpen reports whether the dialog is showing.
func (d *Dialog) IsOpen() bool {
	return d.open
}

// Payload returns the value passed to Open.
func (d *Dialog) Payload() any {
	return d.payload
}

// HandleKey answers the dialog. Confirm and Cancel close it; other keys
// are swallowed while it is open.
func (d *Dialog) HandleKey(msg tea.KeyMsg) Answer {
	if !d.open {
		return Undecided
	}
	switch {
	case keymap.Matches(msg, d.keys.Confirm):
		d.open = false
		return Confirmed
	case keymap.Matches(msg, d.keys.Cancel):
		d.open = false
		return Cancelled
	default:
		return Undecided
	}
}

// View renders the dialog, or nothing when closed.
func (d *Dialog) View() string {
	if !d.open {
		return ""
	}
	return d.styles.Dialog.Render(
		d.styles.Warning.Render(d.prompt) + "\n\n" +
			d.styles.Help.Render("y: confirm  n/esc: cancel"),
	)
}
