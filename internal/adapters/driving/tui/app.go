package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/notify"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It owns page state: the active tab, the loading tracker and the
// notifications. Each view owns its own data and request sequence; request
// outcomes are routed to the view that issued them whichever tab is showing.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for requests.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// activity counts in-flight requests for the loading indicator.
	activity  *status.Activity
	statusbar *status.Bar
	notes     *notify.Stack

	uploadView    *upload.View
	documentsView *documents.View
	searchView    *search.View
	chatView      *chat.View
	settingsView  *settings.View

	// active is the tab on screen.
	active messages.Tab

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates the terminal size is known.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	cfg := domain.DefaultSettings()
	if ports.Settings != nil {
		loaded, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("using default settings: %v", err)
		} else {
			cfg = *loaded
		}
	}

	serverURL := cfg.Server.URL
	if ports.ServerURL != "" {
		serverURL = ports.ServerURL
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	activity := &status.Activity{}

	app := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		activity:      activity,
		statusbar:     status.NewBar(s, activity, serverURL),
		notes:         notify.NewStack(s, cfg.Notifications.Timeout),
		uploadView:    upload.NewView(s, km, ports.Documents, activity),
		documentsView: documents.NewView(s, km, ports.Documents, activity),
		searchView: search.NewView(s, km, ports.Search, activity).
			WithEmptyInputPolicy(cfg.Search.EmptyInput),
		chatView: chat.NewView(s, km, ports.Chat, activity).
			WithEmptyInputPolicy(cfg.Chat.EmptyInput),
		settingsView: settings.NewView(s, km, ports.Settings),
		active:       messages.TabUpload,
	}
	app.searchView.Blur()
	app.chatView.Blur()
	return app, nil
}

// WithContext sets the context for all requests.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model. It starts the status spinner and loads the
// document list.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("docdesk"),
		a.statusbar.Init(),
		a.uploadView.Init(),
		a.documentsView.Load(),
	}
	switch a.active {
	case messages.TabSearch:
		cmds = append(cmds, a.searchView.Focus())
	case messages.TabChat:
		cmds = append(cmds, a.chatView.Focus())
	case messages.TabSettings:
		cmds = append(cmds, a.settingsView.Load())
	}
	return tea.Batch(cmds...)
}

// StartOn makes tab the first tab shown. Init focuses or loads it, so
// call StartOn before Run.
func (a *App) StartOn(tab messages.Tab) *App {
	if tab != messages.TabUpload {
		a.uploadView.Blur()
	}
	a.active = tab
	return a
}

// ShowTab activates tab and focuses its input. Showing the documents tab
// reloads the list.
func (a *App) ShowTab(tab messages.Tab) tea.Cmd {
	a.uploadView.Blur()
	a.searchView.Blur()
	a.chatView.Blur()
	a.active = tab

	switch tab {
	case messages.TabUpload:
		return a.uploadView.Focus()
	case messages.TabDocuments:
		return a.documentsView.Load()
	case messages.TabSearch:
		return a.searchView.Focus()
	case messages.TabChat:
		return a.chatView.Focus()
	case messages.TabSettings:
		return a.settingsView.Load()
	}
	return nil
}

func (a *App) cycleTab(step int) tea.Cmd {
	n := len(messages.Tabs)
	next := (int(a.active) + step + n) % n
	return a.ShowTab(messages.Tabs[next])
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.TabChanged:
		return a, a.ShowTab(msg.Tab)

	case messages.UploadCompleted:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentsChanged, messages.DocumentDeleted:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ChatReplied:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var barCmd, chatCmd tea.Cmd
		a.statusbar, barCmd = a.statusbar.Update(msg)
		a.chatView, chatCmd = a.chatView.Update(msg)
		return a, tea.Batch(barCmd, chatCmd)

	case messages.Notify:
		logger.Debug("notify %s: %s", msg.Level, msg.Text)
		_, cmd = a.notes.Push(msg.Level, msg.Text)
		return a, cmd

	case messages.NotificationExpired:
		a.notes.Expire(msg.ID)
		return a, nil
	}

	return a, a.forward(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keymap.Matches(msg, a.keymap.Quit):
		return tea.Quit
	case keymap.Matches(msg, a.keymap.NextTab):
		return a.cycleTab(1)
	case keymap.Matches(msg, a.keymap.PrevTab):
		return a.cycleTab(-1)
	case keymap.Matches(msg, a.keymap.UploadTab):
		return a.ShowTab(messages.TabUpload)
	case keymap.Matches(msg, a.keymap.DocumentsTab):
		return a.ShowTab(messages.TabDocuments)
	case keymap.Matches(msg, a.keymap.SearchTab):
		return a.ShowTab(messages.TabSearch)
	case keymap.Matches(msg, a.keymap.ChatTab):
		return a.ShowTab(messages.TabChat)
	case keymap.Matches(msg, a.keymap.SettingsTab):
		return a.ShowTab(messages.TabSettings)
	}
	return a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.active {
	case messages.TabUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.TabDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.TabSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.TabChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.TabSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	a.statusbar.SetHints(a.hints())

	sections := []string{a.renderTabs(), "", a.activeView()}
	if notes := a.notes.View(); notes != "" {
		sections = append(sections, "", notes)
	}

	body := strings.Join(sections, "\n")
	gap := a.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + a.statusbar.View()
}

func (a *App) activeView() string {
	switch a.active {
	case messages.TabDocuments:
		return a.documentsView.View()
	case messages.TabSearch:
		return a.searchView.View()
	case messages.TabChat:
		return a.chatView.View()
	case messages.TabSettings:
		return a.settingsView.View()
	default:
		return a.uploadView.View()
	}
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, len(messages.Tabs)+1)
	tabs = append(tabs, a.styles.Title.Render("docdesk")+"  ")
	for i, t := range messages.Tabs {
		label := fmt.Sprintf("F%d %s", i+1, t.Title())
		if t == a.active {
			tabs = append(tabs, a.styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, a.styles.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) hints() []key.Binding {
	switch {
	case a.active == messages.TabDocuments && a.documentsView.Confirming():
		return a.keymap.ConfirmHelp()
	case a.active == messages.TabDocuments:
		return append(a.keymap.DocumentsHelp(), a.keymap.NextTab, a.keymap.Quit)
	case a.active == messages.TabChat:
		return append(a.keymap.ChatHelp(), a.keymap.NextTab, a.keymap.Quit)
	case a.active == messages.TabSettings:
		return append(a.keymap.SettingsHelp(), a.keymap.NextTab, a.keymap.Quit)
	default:
		return []key.Binding{a.keymap.Submit, a.keymap.NextTab, a.keymap.Quit}
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	content := height - 4
	a.uploadView.SetDimensions(width, content)
	a.documentsView.SetDimensions(width, content)
	a.searchView.SetDimensions(width, content)
	a.chatView.SetDimensions(width, content)
	a.settingsView.SetDimensions(width, content)
	a.statusbar.SetWidth(width)
	a.notes.SetWidth(width)
}

// ActiveTab returns the tab on screen.
func (a *App) ActiveTab() messages.Tab {
	return a.active
}

// Activity returns the loading tracker.
func (a *App) Activity() *status.Activity {
	return a.activity
}

// Notifications returns the visible notifications, oldest first.
func (a *App) Notifications() []domain.Notification {
	return a.notes.Items()
}

// Documents returns the cached document list.
func (a *App) Documents() []domain.Document {
	return a.documentsView.Documents()
}

// Ready returns whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}
