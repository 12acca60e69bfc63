// Package messages defines Bubbletea message types for the TUI.
// Messages carry request outcomes and navigation events through the
// Elm architecture. Completion messages are always routed to the view that
// issued the request, whichever tab is showing.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// Tab identifies one of the top-level panes.
type Tab int

const (
	// TabUpload is the file upload pane.
	TabUpload Tab = iota
	// TabDocuments lists and deletes documents.
	TabDocuments
	// TabSearch is the keyword search pane.
	TabSearch
	// TabChat is the chat transcript.
	TabChat
	// TabSettings shows and edits client settings.
	TabSettings
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabUpload, TabDocuments, TabSearch, TabChat, TabSettings}

// String returns the tab's name.
func (t Tab) String() string {
	switch t {
	case TabUpload:
		return "upload"
	case TabDocuments:
		return "documents"
	case TabSearch:
		return "search"
	case TabChat:
		return "chat"
	case TabSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabUpload:
		return "Upload"
	case TabDocuments:
		return "Documents"
	case TabSearch:
		return "Search"
	case TabChat:
		return "Chat"
	case TabSettings:
		return "Settings"
	default:
		return "?"
	}
}

// ParseTab resolves a tab by name.
func ParseTab(name string) (Tab, bool) {
	for _, t := range Tabs {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// Sequence numbers requests of one kind so that only the latest
// response is applied.
type Sequence struct {
	last uint64
}

// Next issues a new request number.
func (s *Sequence) Next() uint64 {
	s.last++
	return s.last
}

// Current returns the latest issued number.
func (s *Sequence) Current() uint64 {
	return s.last
}

// IsCurrent reports whether n is the latest issued number.
func (s *Sequence) IsCurrent(n uint64) bool {
	return n == s.last
}

// TabChanged asks the app to show a tab.
type TabChanged struct {
	Tab Tab
}

// DocumentsLoaded carries the document list.
type DocumentsLoaded struct {
	Seq       uint64
	Documents []domain.Document
	Err       error
}

// DocumentsChanged signals that the server's document set changed and the
// list should be reloaded.
type DocumentsChanged struct{}

// UploadCompleted carries the outcome of one upload.
type UploadCompleted struct {
	Filename string
	Document *domain.Document
	Err      error
}

// DocumentDeleted carries the outcome of one deletion.
type DocumentDeleted struct {
	ID       string
	Filename string
	Err      error
}

// SearchCompleted carries search results.
type SearchCompleted struct {
	Seq     uint64
	Query   string
	Results *domain.SearchResults
	Err     error
}

// ChatReplied carries the answer for the placeholder PendingID.
type ChatReplied struct {
	PendingID string
	Reply     *domain.ChatReply
	Err       error
}

// SettingsLoaded carries the settings for display.
type SettingsLoaded struct {
	Entries []domain.SettingEntry
	Path    string
	Err     error
}

// SettingSaved carries the outcome of saving one setting.
type SettingSaved struct {
	Key string
	Err error
}

// Notify asks the app to show a notification.
type Notify struct {
	Level domain.Level
	Text  string
}

// NotifyCmd returns a command raising a notification.
func NotifyCmd(level domain.Level, text string) tea.Cmd {
	return func() tea.Msg {
		return Notify{Level: level, Text: text}
	}
}

// NotificationExpired removes the notification with ID.
type NotificationExpired struct {
	ID string
}
