package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_TabBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyTab}, km.NextTab))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, km.PrevTab))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyF1}, km.UploadTab))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyF4}, km.ChatTab))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyF5}, km.SettingsTab))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
}

func TestDefaultKeyMap_Confirmation(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, km.Confirm))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, km.Cancel))
	assert.True(t, Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Cancel))
	assert.False(t, Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Confirm))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.GlobalHelp(), 7)
	assert.Contains(t, km.DocumentsHelp(), km.Delete)
	assert.Contains(t, km.ChatHelp(), km.ClearChat)
	assert.Equal(t, "y", km.ConfirmHelp()[0].Help().Key)
}
