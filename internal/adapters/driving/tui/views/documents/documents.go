// Package documents provides the documents list view component for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/confirm"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// View lists the server's documents and deletes them after confirmation.
// It owns the document cache, which is replaced on every successful load
// and left untouched when a load fails.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	documents driving.DocumentService
	activity  *status.Activity
	dialog    *confirm.Dialog
	ctx       context.Context

	seq    messages.Sequence
	cache  []domain.Document
	loaded bool
	err    string

	selected     int
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new documents view.
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
		documents: documents,
		activity:  activity,
		dialog:    confirm.New(s, km),
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
	return nil
}

// Load returns a command that fetches the document list. Only the response
// to the most recent Load is applied.
func (v *View) Load() tea.Cmd {
	seq := v.seq.Next()
	v.activity.Begin()

	ctx := v.ctx
	documents := v.documents
	return func() tea.Msg {
		docs, err := documents.List(ctx)
		return messages.DocumentsLoaded{Seq: seq, Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.dialog.IsOpen() {
			return v, v.handleDialogKey(msg)
		}
		return v, v.handleKey(msg)

	case messages.DocumentsLoaded:
		return v, v.handleLoaded(msg)

	case messages.DocumentsChanged:
		return v, v.Load()

	case messages.DocumentDeleted:
		v.activity.End()
		if msg.Err != nil {
			return v, messages.NotifyCmd(domain.LevelDanger,
				fmt.Sprintf("Failed to delete %s: %s", msg.Filename, domain.ErrorDetail(msg.Err)))
		}
		return v, tea.Batch(
			messages.NotifyCmd(domain.LevelSuccess, "Document deleted successfully"),
			v.Load(),
		)
	}

	return v, nil
}

func (v *View) handleLoaded(msg messages.DocumentsLoaded) tea.Cmd {
	v.activity.End()
	if !v.seq.IsCurrent(msg.Seq) {
		return nil
	}

	if msg.Err != nil {
		v.err = domain.ErrorDetail(msg.Err)
		return messages.NotifyCmd(domain.LevelDanger, "Failed to load documents: "+v.err)
	}

	v.err = ""
	v.loaded = true
	v.cache = msg.Documents
	if v.selected >= len(v.cache) {
		v.selected = max(len(v.cache)-1, 0)
	}
	v.adjustScroll()
	return nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keymap.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(msg, v.keymap.Down):
		if v.selected < len(v.cache)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(msg, v.keymap.Refresh):
		return v.Load()
	case keymap.Matches(msg, v.keymap.Delete):
		if doc := v.SelectedDocument(); doc != nil {
			v.dialog.Open(fmt.Sprintf("Are you sure you want to delete %q?", doc.Filename), *doc)
		}
	}
	return nil
}

func (v *View) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	if v.dialog.HandleKey(msg) != confirm.Confirmed {
		return nil
	}
	doc, ok := v.dialog.Payload().(domain.Document)
	if !ok {
		return nil
	}
	return v.delete(doc)
}

func (v *View) delete(doc domain.Document) tea.Cmd {
	v.activity.Begin()

	ctx := v.ctx
	documents := v.documents
	return func() tea.Msg {
		err := documents.Delete(ctx, doc.ID)
		return messages.DocumentDeleted{ID: doc.ID, Filename: doc.Filename, Err: err}
	}
}

// adjustScroll keeps the selected row visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	// Title, header, help and the notification area.
	available := v.height - 10
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.cache))))
	b.WriteString("\n\n")

	if v.dialog.IsOpen() {
		b.WriteString(v.dialog.View())
		return b.String()
	}

	switch {
	case !v.loaded && v.err != "":
		b.WriteString(v.styles.Error.Render("Could not load documents: " + v.err))
	case !v.loaded:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case len(v.cache) == 0:
		b.WriteString(v.styles.Muted.Render("No documents uploaded yet."))
	default:
		b.WriteString(v.renderTable())
	}

	return b.String()
}

func (v *View) renderTable() string {
	nameWidth := v.width - 52
	if nameWidth < 16 {
		nameWidth = 16
	}

	lines := make([]string, 0, len(v.cache)+2)
	header := fmt.Sprintf("  %-*s %10s %8s  %-19s %s", nameWidth, "Filename", "Size", "Words", "Uploaded", "Type")
	lines = append(lines, v.styles.Muted.Render(header))

	visible := v.visibleItemCount()
	end := min(v.scrollOffset+visible, len(v.cache))
	for i := v.scrollOffset; i < end; i++ {
		lines = append(lines, v.renderRow(i, &v.cache[i], nameWidth))
	}

	if len(v.cache) > visible {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1, end, len(v.cache))))
	}

	return strings.Join(lines, "\n")
}

func (v *View) renderRow(index int, doc *domain.Document, nameWidth int) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.Filename
	if r := []rune(name); len(r) > nameWidth {
		name = string(r[:nameWidth-3]) + "..."
	}

	fileType := doc.FileType
	if fileType == "" {
		fileType = "-"
	}

	line := fmt.Sprintf("%s%-*s %10s %8s  %-19s %s",
		indicator, nameWidth, name,
		domain.FormatFileSize(doc.Size),
		doc.WordCountLabel(),
		domain.FormatTimestamp(doc.UploadTime),
		fileType,
	)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Documents returns a copy of the cached documents.
func (v *View) Documents() []domain.Document {
	out := make([]domain.Document, len(v.cache))
	copy(out, v.cache)
	return out
}

// Loaded reports whether a load has ever succeeded.
func (v *View) Loaded() bool {
	return v.loaded
}

// SelectedDocument returns the highlighted document, or nil when empty.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < 0 || v.selected >= len(v.cache) {
		return nil
	}
	return &v.cache[v.selected]
}

// Selected returns the highlighted row index.
func (v *View) Selected() int {
	return v.selected
}

// Confirming reports whether the delete confirmation is open.
func (v *View) Confirming() bool {
	return v.dialog.IsOpen()
}
