// Package upload provides the file upload view for the TUI.
package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// View uploads a file given by path. A path pasted into the terminal, which
// is what most terminals produce when a file is dropped on them, is uploaded
// immediately.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	field     *input.Field
	activity  *status.Activity
	documents driving.DocumentService
	ctx       context.Context

	pending []string
	result  *domain.Document
	failure string
	failed  string

	width  int
	height int
}

// NewView creates the upload view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	documents driving.DocumentService,
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

	return &View{
		styles:    s,
		keymap:    km,
		field:     input.NewField(s, "File", "path to a file, or drop one here"),
		activity:  activity,
		documents: documents,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.field.Init()
}

// Focus focuses the path input.
func (v *View) Focus() tea.Cmd {
	return v.field.Focus()
}

// Blur removes focus from the path input.
func (v *View) Blur() {
	v.field.Blur()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Paste {
			path := CleanPath(string(msg.Runes))
			v.field.SetValue(path)
			return v, v.submit(path)
		}
		if keymap.Matches(msg, v.keymap.Submit) {
			return v, v.submit(CleanPath(v.field.Value()))
		}

	case messages.UploadCompleted:
		return v, v.handleCompleted(msg)
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) submit(path string) tea.Cmd {
	if path == "" {
		return messages.NotifyCmd(domain.LevelWarning, "Please select a file to upload")
	}

	name := filepath.Base(path)
	v.pending = append(v.pending, name)
	v.activity.Begin()

	ctx := v.ctx
	documents := v.documents
	return func() tea.Msg {
		doc, err := documents.UploadFile(ctx, path)
		return messages.UploadCompleted{Filename: name, Document: doc, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.UploadCompleted) tea.Cmd {
	v.activity.End()
	v.removePending(msg.Filename)
	v.field.Reset()

	if msg.Err != nil {
		v.result = nil
		v.failed = msg.Filename
		v.failure = domain.ErrorDetail(msg.Err)
		return messages.NotifyCmd(domain.LevelDanger,
			fmt.Sprintf("Upload failed: %s", v.failure))
	}

	v.result = msg.Document
	v.failed = ""
	v.failure = ""
	return tea.Batch(
		messages.NotifyCmd(domain.LevelSuccess, "File uploaded successfully!"),
		func() tea.Msg { return messages.DocumentsChanged{} },
	)
}

func (v *View) removePending(name string) {
	for i, p := range v.pending {
		if p == name {
			v.pending = append(v.pending[:i], v.pending[i+1:]...)
			return
		}
	}
}

// View renders the upload view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upload a document"))
	b.WriteString("\n\n")
	b.WriteString(v.field.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter: upload  ·  paste or drop a file path to upload at once"))
	b.WriteString("\n\n")

	for _, name := range v.pending {
		b.WriteString(v.styles.Muted.Render("Uploading " + name + "..."))
		b.WriteString("\n")
	}

	switch {
	case v.result != nil:
		b.WriteString(v.renderResult(v.result))
	case v.failure != "":
		b.WriteString(v.styles.ErrorPanel.Render(
			v.styles.Error.Render("Upload failed: "+v.failed) + "\n" + v.failure,
		))
	}

	return b.String()
}

func (v *View) renderResult(doc *domain.Document) string {
	lines := []string{
		v.styles.Success.Render("Upload successful"),
		"File:     " + doc.Filename,
		"Size:     " + domain.FormatFileSize(doc.Size),
		"Words:    " + doc.WordCountLabel(),
		"Uploaded: " + domain.FormatTimestamp(doc.UploadTime),
	}
	return v.styles.SuccessPanel.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}

// Result returns the last uploaded document, if the last upload succeeded.
func (v *View) Result() *domain.Document {
	return v.result
}

// Failure returns the detail of the last failed upload.
func (v *View) Failure() string {
	return v.failure
}

// Pending returns the names of uploads in flight.
func (v *View) Pending() []string {
	out := make([]string, len(v.pending))
	copy(out, v.pending)
	return out
}

// Value returns the path input value.
func (v *View) Value() string {
	return v.field.Value()
}

// CleanPath normalises a path typed or dropped into the terminal: it trims
// whitespace, strips a file:// prefix and surrounding quotes, and unescapes
// shell-escaped spaces.
func CleanPath(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.TrimPrefix(p, "file://")
	if len(p) >= 2 {
		if (p[0] == '\'' && p[len(p)-1] == '\'') || (p[0] == '"' && p[len(p)-1] == '"') {
			p = p[1 : len(p)-1]
		}
	}
	p = strings.ReplaceAll(p, `\ `, " ")
	return strings.TrimSpace(p)
}
