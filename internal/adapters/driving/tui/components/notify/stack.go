// Package notify renders transient notification banners.
package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// Stack holds the visible notifications, oldest first. Each notification
// owns a timer that removes only that notification.
type Stack struct {
	styles  *styles.Styles
	timeout time.Duration
	items   []domain.Notification
	now     func() time.Time
	newID   func() string
	width   int
}

// NewStack creates a stack whose banners expire after timeout.
func NewStack(s *styles.Styles, timeout time.Duration) *Stack {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if timeout <= 0 {
		timeout = domain.DefaultNotificationTimeout
	}
	return &Stack{
		styles:  s,
		timeout: timeout,
		now:     time.Now,
		newID:   uuid.NewString,
		width:   80,
	}
}

// Push adds a notification and returns the command that expires it.
func (s *Stack) Push(level domain.Level, text string) (domain.Notification, tea.Cmd) {
	n := domain.Notification{
		ID:        s.newID(),
		Level:     level,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.items = append(s.items, n)

	id := n.ID
	return n, tea.Tick(s.timeout, func(time.Time) tea.Msg {
		return messages.NotificationExpired{ID: id}
	})
}

// Expire removes the notification with id. Unknown ids are ignored.
func (s *Stack) Expire(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the visible notifications.
func (s *Stack) Items() []domain.Notification {
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of visible notifications.
func (s *Stack) Len() int {
	return len(s.items)
}

// Timeout returns how long a notification stays visible.
func (s *Stack) Timeout() time.Duration {
	return s.timeout
}

// SetWidth sets the banner width.
func (s *Stack) SetWidth(width int) {
	s.width = width
}

// View renders the banners, newest last.
func (s *Stack) View() string {
	if len(s.items) == 0 {
		return ""
	}
	banners := make([]string, 0, len(s.items))
	for _, n := range s.items {
		style := s.styles.Notification(n.Level)
		if s.width > 4 {
			style = style.Width(s.width - 2)
		}
		banners = append(banners, style.Render(n.Text))
	}
	return strings.Join(banners, "\n")
}
