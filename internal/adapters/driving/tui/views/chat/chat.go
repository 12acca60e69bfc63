// Package chat provides the chat transcript view for the TUI.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// PendingText is shown in a bot placeholder while an answer is generated.
const PendingText = "Thinking..."

// View is the chat view: a scrolling transcript above a message input.
// Each sent message gets a pending bot placeholder that the reply replaces.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.Field
	viewport   viewport.Model
	spinner    spinner.Model
	transcript *domain.Transcript
	activity   *status.Activity
	chat       driving.ChatService
	policy     domain.EmptyInputPolicy
	ctx        context.Context

	width  int
	height int
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chat driving.ChatService,
	activity *status.Activity,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if activity == nil {
		activity = &status.Activity{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Ellipsis
	sp.Style = s.PendingMessage

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewField(s, "Message", "ask a question about your documents"),
		viewport:   viewport.New(80, 16),
		spinner:    sp,
		transcript: domain.NewTranscript(uuid.NewString),
		activity:   activity,
		chat:       chat,
		policy:     domain.EmptyInputIgnore,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
	v.refresh()
	return v
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithEmptyInputPolicy sets what a blank message does.
func (v *View) WithEmptyInputPolicy(p domain.EmptyInputPolicy) *View {
	if p.IsValid() {
		v.policy = p
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Focus focuses the message input.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes focus from the message input.
func (v *View) Blur() {
	v.input.Blur()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg, v.keymap.Submit):
			return v, v.send()
		case keymap.Matches(msg, v.keymap.ClearChat):
			v.transcript.Clear()
			v.refresh()
			return v, nil
		}
		//nolint:exhaustive // scrolling keys only
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case spinner.TickMsg:
		// The animation stops once nothing is pending.
		if v.transcript.PendingCount() == 0 {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd

	case messages.ChatReplied:
		return v, v.handleReply(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) send() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		if v.policy == domain.EmptyInputWarn {
			return messages.NotifyCmd(domain.LevelWarning, "Please enter a message")
		}
		return nil
	}

	animating := v.transcript.PendingCount() > 0
	v.transcript.AddUser(text)
	pendingID := v.transcript.AddPending(PendingText)
	v.input.Reset()
	v.refresh()
	v.activity.Begin()

	ctx := v.ctx
	chat := v.chat
	request := func() tea.Msg {
		reply, err := chat.Send(ctx, text)
		return messages.ChatReplied{PendingID: pendingID, Reply: reply, Err: err}
	}
	if animating {
		return request
	}
	return tea.Batch(request, v.spinner.Tick)
}

func (v *View) handleReply(msg messages.ChatReplied) tea.Cmd {
	v.activity.End()

	// A cleared transcript no longer holds the placeholder.
	if !v.transcript.Remove(msg.PendingID) {
		return nil
	}
	defer v.refresh()

	if msg.Err != nil {
		detail := domain.ErrorDetail(msg.Err)
		v.transcript.AddBot("Error: "+detail, nil)
		return messages.NotifyCmd(domain.LevelDanger, "Chat failed: "+detail)
	}

	var sources []string
	content := ""
	if msg.Reply != nil {
		content = msg.Reply.Response
		sources = msg.Reply.Sources
	}
	v.transcript.AddBot(content, sources)
	return nil
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	msgs := v.transcript.Messages()
	if len(msgs) == 0 {
		return v.styles.Muted.Render("Ask a question about your uploaded documents.")
	}

	wrap := v.width - 4
	if wrap < 20 {
		wrap = 20
	}

	blocks := make([]string, 0, len(msgs))
	for i := range msgs {
		blocks = append(blocks, v.renderMessage(&msgs[i], wrap))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderMessage(m *domain.ChatMessage, wrap int) string {
	switch {
	case m.Sender == domain.SenderUser:
		return v.styles.UserMessage.Width(wrap).Render("You: " + m.Content)
	case m.Pending:
		return v.styles.PendingMessage.Render("Bot: " + v.spinner.View() + " " + m.Content)
	}

	out := v.styles.BotMessage.Width(wrap).Render("Bot: " + m.Content)
	if len(m.Sources) > 0 {
		out += "\n" + v.styles.Muted.Width(wrap).Render("Sources: "+strings.Join(m.Sources, ", "))
	}
	return out
}

// View renders the chat view.
func (v *View) View() string {
	return v.viewport.View() + "\n\n" + v.input.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	// Input, spacing, tab bar, notifications and status bar.
	vh := height - 10
	if vh < 3 {
		vh = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vh
	v.refresh()
}

// Messages returns the transcript in display order.
func (v *View) Messages() []domain.ChatMessage {
	return v.transcript.Messages()
}

// Value returns the message input value.
func (v *View) Value() string {
	return v.input.Value()
}
