// Package settings provides the settings view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// secretKey is the setting whose value is masked and typed without echo.
const secretKey = "server.token"

// View lists the client settings and edits one at a time.
// Saved values take effect the next time the client starts.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	entries []domain.SettingEntry
	path    string
	err     error

	selected int
	editing  bool
	editor   textinput.Model

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	editor := textinput.New()
	editor.CharLimit = 512
	editor.Width = 50

	return &View{
		styles:          s,
		keymap:          km,
		settingsService: settingsService,
		editor:          editor,
		width:           80,
		height:          24,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that reads the current settings.
func (v *View) Load() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		entries, err := svc.Entries()
		return messages.SettingsLoaded{Entries: entries, Path: svc.Path(), Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.entries = msg.Entries
		v.path = msg.Path
		if v.selected >= len(v.entries) {
			v.selected = max(len(v.entries)-1, 0)
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			return v, messages.NotifyCmd(domain.LevelDanger,
				fmt.Sprintf("Could not save %s: %s", msg.Key, domain.ErrorDetail(msg.Err)))
		}
		return v, tea.Batch(
			messages.NotifyCmd(domain.LevelSuccess, fmt.Sprintf("Saved %s. Restart docdesk to apply it.", msg.Key)),
			v.Load(),
		)

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v, v.handleKey(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keymap.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(msg, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case keymap.Matches(msg, v.keymap.Submit):
		return v.startEdit()
	}
	return nil
}

func (v *View) startEdit() tea.Cmd {
	entry := v.SelectedEntry()
	if entry == nil {
		return nil
	}

	v.editing = true
	v.editor.Reset()
	v.editor.EchoMode = textinput.EchoNormal
	v.editor.Placeholder = entry.Key
	if entry.Key == secretKey {
		v.editor.EchoMode = textinput.EchoPassword
	} else {
		v.editor.SetValue(entry.Value)
	}
	return v.editor.Focus()
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only editor control keys
	switch msg.Type {
	case tea.KeyEsc:
		v.stopEdit()
		return v, nil
	case tea.KeyEnter:
		entry := v.SelectedEntry()
		value := strings.TrimSpace(v.editor.Value())
		v.stopEdit()
		if entry == nil {
			return v, nil
		}
		return v, v.save(entry.Key, value)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) stopEdit() {
	v.editing = false
	v.editor.Blur()
	v.editor.Reset()
}

func (v *View) save(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + domain.ErrorDetail(v.err)))
		return b.String()
	}
	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	keyWidth := 0
	for _, e := range v.entries {
		keyWidth = max(keyWidth, len(e.Key))
	}

	for i, e := range v.entries {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		value := e.Value
		if value == "" {
			value = "(not set)"
		}
		line := fmt.Sprintf("%s%-*s  %s", indicator, keyWidth, e.Key, value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Subtitle.Render("New value for " + v.editor.Placeholder))
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.editor.View()))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] edit"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if width > 20 {
		v.editor.Width = width - 12
	}
}

// Entries returns the displayed settings.
func (v *View) Entries() []domain.SettingEntry {
	return v.entries
}

// SelectedEntry returns the highlighted setting, or nil when none are loaded.
func (v *View) SelectedEntry() *domain.SettingEntry {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return nil
	}
	return &v.entries[v.selected]
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
