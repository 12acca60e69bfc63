// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// NextTab and PrevTab cycle through tabs.
	NextTab key.Binding
	PrevTab key.Binding

	// UploadTab, DocumentsTab, SearchTab, ChatTab and SettingsTab jump to a tab.
	UploadTab    key.Binding
	DocumentsTab key.Binding
	SearchTab    key.Binding
	ChatTab      key.Binding
	SettingsTab  key.Binding

	// Submit sends the focused input.
	Submit key.Binding

	// Up and Down move through lists.
	Up   key.Binding
	Down key.Binding

	// Refresh reloads the document list.
	Refresh key.Binding

	// Delete asks to delete the selected document.
	Delete key.Binding

	// Confirm and Cancel answer a confirmation dialog.
	Confirm key.Binding
	Cancel  key.Binding

	// ClearChat empties the chat transcript.
	ClearChat key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		UploadTab: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "upload"),
		),
		DocumentsTab: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "documents"),
		),
		SearchTab: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "search"),
		),
		ChatTab: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("f4", "chat"),
		),
		SettingsTab: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "settings"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "no"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
	}
}

// GlobalHelp returns the bindings available on every tab.
func (k *KeyMap) GlobalHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.UploadTab, k.DocumentsTab, k.SearchTab, k.ChatTab, k.SettingsTab, k.Quit}
}

// DocumentsHelp returns the bindings of the documents tab.
func (k *KeyMap) DocumentsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Refresh}
}

// ChatHelp returns the bindings of the chat tab.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ClearChat}
}

// SettingsHelp returns the bindings of the settings tab.
func (k *KeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Submit, k.Cancel}
}

// ConfirmHelp returns the bindings of a confirmation dialog.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// Matches reports whether msg triggers binding.
func Matches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
