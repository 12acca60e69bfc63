package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk/internal/adapters/driven/backend/memory"
	configmem "github.com/custodia-labs/docdesk/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/services"
)

type fixture struct {
	app      *App
	backend  *memory.Backend
	settings *services.SettingsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := memory.New()
	settings := services.NewSettingsService(configmem.NewConfigStore())
	return newFixtureWith(t, backend, settings)
}

func newFixtureWith(t *testing.T, backend *memory.Backend, settings *services.SettingsService) *fixture {
	t.Helper()
	ports := NewPorts(
		services.NewDocumentService(backend),
		services.NewSearchService(backend),
		services.NewChatService(backend),
		settings,
	)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return &fixture{app: app, backend: backend, settings: settings}
}

// send feeds msg to the app and keeps running the resulting commands until
// they settle. Timers and animation ticks are not followed.
func (f *fixture) send(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := f.app.Update(next)
		queue = append(queue, run(cmd)...)
	}
}

// run executes cmd and returns the application messages it produces.
// Commands still blocked after a short wait are timers or cursor blinks
// and are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, run(c)...)
		}
		return out
	case messages.UploadCompleted, messages.DocumentsLoaded, messages.DocumentsChanged,
		messages.DocumentDeleted, messages.SearchCompleted, messages.ChatReplied,
		messages.Notify, messages.TabChanged, messages.SettingsLoaded, messages.SettingSaved:
		return []tea.Msg{m}
	}
	return nil
}

func typeText(f *fixture, text string) {
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func enter(f *fixture) {
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingDocumentService)
	assert.Nil(t, app)
}

func TestNewApp_StartsOnUploadTab(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, messages.TabUpload, f.app.ActiveTab())
	assert.Equal(t, status.StateIdle, f.app.Activity().State())
}

func TestApp_InitLoadsDocuments(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("notes.txt", "hello world")

	cmd := f.app.Init()

	assert.NotNil(t, cmd)
	assert.Equal(t, status.StateLoading, f.app.Activity().State())
	for _, msg := range run(cmd) {
		f.send(msg)
	}
	assert.Equal(t, status.StateIdle, f.app.Activity().State())
	require.Len(t, f.app.Documents(), 1)
	assert.Equal(t, "notes.txt", f.app.Documents()[0].Filename)
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(NewPorts(
		services.NewDocumentService(memory.New()),
		services.NewSearchService(memory.New()),
		services.NewChatService(memory.New()),
		nil,
	))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_TabNavigation(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, messages.TabDocuments, f.app.ActiveTab())

	f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, messages.TabUpload, f.app.ActiveTab())

	// Shift+Tab from the first tab wraps to the last.
	f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, messages.TabSettings, f.app.ActiveTab())

	// Tab from the last tab wraps to the first.
	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, messages.TabUpload, f.app.ActiveTab())

	f.send(tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, messages.TabSearch, f.app.ActiveTab())

	f.send(messages.TabChanged{Tab: messages.TabUpload})
	assert.Equal(t, messages.TabUpload, f.app.ActiveTab())
}

func TestApp_ShowDocumentsTabReloads(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("a.txt", "alpha")

	f.send(tea.KeyMsg{Type: tea.KeyF2})
	f.backend.Add("b.txt", "beta")
	f.send(tea.KeyMsg{Type: tea.KeyF1})
	f.send(tea.KeyMsg{Type: tea.KeyF2})

	assert.Equal(t, 2, f.backend.Calls().List)
	assert.Len(t, f.app.Documents(), 2)
	assert.Contains(t, f.app.View(), "b.txt")
}

func TestApp_UploadThenList(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", 2048)), 0o600))

	typeText(f, path)
	enter(f)

	view := f.app.View()
	assert.Contains(t, view, "Upload successful")
	assert.Contains(t, view, "2 KB")
	assert.Equal(t, 1, f.backend.Calls().Upload)
	assert.Equal(t, 1, f.backend.Calls().List, "upload triggers a reload")

	docs := f.app.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "report.txt", docs[0].Filename)
	assert.Equal(t, status.StateIdle, f.app.Activity().State())

	notes := f.app.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.LevelSuccess, notes[0].Level)
}

func TestApp_DeclinedDeleteSendsNoRequest(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("keep.txt", "keep me")

	f.send(tea.KeyMsg{Type: tea.KeyF2})
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Contains(t, f.app.View(), "keep.txt")
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	assert.Equal(t, 0, f.backend.Calls().Delete)
	assert.Len(t, f.app.Documents(), 1)
}

func TestApp_ConfirmedDelete(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("gone.txt", "bye")

	f.send(tea.KeyMsg{Type: tea.KeyF2})
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	assert.Equal(t, 1, f.backend.Calls().Delete)
	assert.Empty(t, f.app.Documents())
	assert.Contains(t, f.app.View(), "No documents uploaded yet.")
	assert.Equal(t, status.StateIdle, f.app.Activity().State())
}

func TestApp_SearchZeroResultsShowsEmptyState(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("a.txt", "alpha beta")

	f.send(tea.KeyMsg{Type: tea.KeyF3})
	typeText(f, "gamma")
	enter(f)

	view := f.app.View()
	assert.Contains(t, view, "No results found")
	assert.NotContains(t, view, "a.txt")
	assert.Equal(t, 1, f.backend.Calls().Search)
}

func TestApp_SearchHighlightsHits(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("fox.txt", "the Quick brown fox")

	f.send(tea.KeyMsg{Type: tea.KeyF3})
	typeText(f, "quick")
	enter(f)

	view := f.app.View()
	assert.Contains(t, view, "fox.txt")
	assert.Contains(t, view, "Quick")
}

func TestApp_EmptySearchWarns(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyF3})
	typeText(f, "   ")
	enter(f)

	assert.Equal(t, 0, f.backend.Calls().Search)
	notes := f.app.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.LevelWarning, notes[0].Level)
}

func TestApp_EmptySearchIgnoredByPolicy(t *testing.T) {
	settings := services.NewSettingsService(configmem.NewConfigStore())
	require.NoError(t, settings.Set(services.KeySearchEmptyInput, "ignore"))
	f := newFixtureWith(t, memory.New(), settings)

	f.send(tea.KeyMsg{Type: tea.KeyF3})
	typeText(f, "   ")
	enter(f)

	assert.Empty(t, f.app.Notifications())
}

func TestApp_WhitespaceChatAddsNothing(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyF4})
	typeText(f, "   ")
	enter(f)

	assert.Equal(t, 0, f.backend.Calls().Chat)
	assert.NotContains(t, f.app.View(), "You:")
	assert.Empty(t, f.app.Notifications())
}

func TestApp_ChatRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.backend.Add("budget.txt", "the budget for 2024")

	f.send(tea.KeyMsg{Type: tea.KeyF4})
	typeText(f, "what is the budget?")
	enter(f)

	view := f.app.View()
	assert.Contains(t, view, "You: what is the budget?")
	assert.Contains(t, view, "budget.txt")
	assert.NotContains(t, view, "Thinking...")
	assert.Equal(t, 1, f.backend.Calls().Chat)
}

func TestApp_CompletionRoutedOffTab(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "late.txt")
	require.NoError(t, os.WriteFile(path, []byte("late"), 0o600))

	typeText(f, path)
	_, cmd := f.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f.send(tea.KeyMsg{Type: tea.KeyF3})

	for _, msg := range run(cmd) {
		f.send(msg)
	}

	assert.Equal(t, messages.TabSearch, f.app.ActiveTab())
	assert.Equal(t, status.StateIdle, f.app.Activity().State())
	assert.Len(t, f.app.Documents(), 1)
}

func TestApp_NotificationsExpireIndependently(t *testing.T) {
	f := newFixture(t)

	f.send(messages.Notify{Level: domain.LevelInfo, Text: "first"})
	f.send(messages.Notify{Level: domain.LevelDanger, Text: "second"})
	notes := f.app.Notifications()
	require.Len(t, notes, 2)

	f.send(messages.NotificationExpired{ID: notes[0].ID})

	remaining := f.app.Notifications()
	require.Len(t, remaining, 1)
	assert.Equal(t, "second", remaining[0].Text)
	assert.Contains(t, f.app.View(), "second")
}

func TestApp_ServerErrorBecomesNotification(t *testing.T) {
	f := newFixture(t)
	f.backend.FailWith(&domain.APIError{StatusCode: 500, Detail: "database offline"})

	f.send(tea.KeyMsg{Type: tea.KeyF2})

	notes := f.app.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.LevelDanger, notes[0].Level)
	assert.Contains(t, notes[0].Text, "database offline")
	assert.Equal(t, status.StateIdle, f.app.Activity().State())
}

func TestApp_NotificationTimeoutFromSettings(t *testing.T) {
	settings := services.NewSettingsService(configmem.NewConfigStore())
	require.NoError(t, settings.Set(services.KeyNotificationTimeout, "2s"))
	f := newFixtureWith(t, memory.New(), settings)

	assert.Equal(t, 2*time.Second, f.app.notes.Timeout())
}

func TestApp_Quit(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_WithContext(t *testing.T) {
	f := newFixture(t)
	type ctxKey string
	ctx := context.WithValue(context.Background(), ctxKey("k"), "v")

	assert.Same(t, f.app, f.app.WithContext(ctx))
}

func TestApp_StatusBarShowsLoading(t *testing.T) {
	f := newFixture(t)

	f.app.Activity().Begin()
	assert.Contains(t, f.app.View(), "Loading...")

	f.app.Activity().End()
	assert.NotContains(t, f.app.View(), "Loading...")
}

func TestApp_SettingsTab(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyF5})

	assert.Equal(t, messages.TabSettings, f.app.ActiveTab())
	view := f.app.View()
	assert.Contains(t, view, services.KeyServerURL)
	assert.Contains(t, view, domain.DefaultServerURL)
	assert.Contains(t, view, ":memory:")
}

func TestApp_SettingsEditPersists(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyF5})
	for range 5 {
		f.send(tea.KeyMsg{Type: tea.KeyDown})
	}
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	for range len("warn") {
		f.send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	typeText(f, "ignore")
	enter(f)

	got, err := f.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyInputIgnore, got.Search.EmptyInput)
}

func TestApp_StatusBarShowsServerOverride(t *testing.T) {
	backend := memory.New()
	ports := NewPorts(
		services.NewDocumentService(backend),
		services.NewSearchService(backend),
		services.NewChatService(backend),
		services.NewSettingsService(configmem.NewConfigStore()),
	)
	ports.ServerURL = "http://docs.internal:9000"

	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)

	view := app.View()
	assert.Contains(t, view, "http://docs.internal:9000")
	assert.NotContains(t, view, domain.DefaultServerURL)
}

func TestApp_StatusBarShowsStoredServer(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.app.View(), domain.DefaultServerURL)
}

func TestApp_StartOnSearchFocusesInput(t *testing.T) {
	f := newFixture(t)

	f.app.StartOn(messages.TabSearch)
	for _, msg := range run(f.app.Init()) {
		f.send(msg)
	}
	typeText(f, "budget")

	assert.Equal(t, messages.TabSearch, f.app.ActiveTab())
	assert.Equal(t, "budget", f.app.searchView.Value())
	assert.Empty(t, f.app.uploadView.Value())
}

func TestApp_StartOnSettingsLoadsEntries(t *testing.T) {
	f := newFixture(t)

	f.app.StartOn(messages.TabSettings)
	for _, msg := range run(f.app.Init()) {
		f.send(msg)
	}

	assert.Equal(t, messages.TabSettings, f.app.ActiveTab())
	assert.Contains(t, f.app.View(), services.KeyServerURL)
}
