// Package search provides the keyword search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// View is the search view: a query input above the ranked hits.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	input    *input.Field
	list     *list.HitList
	activity *status.Activity
	search   driving.SearchService
	policy   domain.EmptyInputPolicy
	ctx      context.Context

	seq     messages.Sequence
	results *domain.SearchResults
	query   string

	width  int
	height int
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	search driving.SearchService,
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
		styles:   s,
		keymap:   km,
		input:    input.NewField(s, "Search", "keywords to find in your documents"),
		list:     list.NewHitList(s),
		activity: activity,
		search:   search,
		policy:   domain.EmptyInputWarn,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithEmptyInputPolicy sets what a blank query does.
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

// Focus focuses the query input.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes focus from the query input.
func (v *View) Blur() {
	v.input.Blur()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		//nolint:exhaustive // handling only navigation keys
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.submit()
		case tea.KeyUp, tea.KeyDown:
			v.list, _ = v.list.Update(msg)
			return v, nil
		}

	case messages.SearchCompleted:
		return v, v.handleCompleted(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	query := strings.TrimSpace(v.input.Value())
	if query == "" {
		if v.policy == domain.EmptyInputWarn {
			return messages.NotifyCmd(domain.LevelWarning, "Please enter a search query")
		}
		return nil
	}

	seq := v.seq.Next()
	v.activity.Begin()

	ctx := v.ctx
	search := v.search
	return func() tea.Msg {
		results, err := search.Search(ctx, query)
		return messages.SearchCompleted{Seq: seq, Query: query, Results: results, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.SearchCompleted) tea.Cmd {
	v.activity.End()
	if !v.seq.IsCurrent(msg.Seq) {
		return nil
	}

	if msg.Err != nil {
		return messages.NotifyCmd(domain.LevelDanger, "Search failed: "+domain.ErrorDetail(msg.Err))
	}

	v.query = msg.Query
	v.results = msg.Results
	v.list.SetResults(msg.Results, msg.Query)
	return nil
}

// View renders the search view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.results == nil:
		b.WriteString(v.styles.Muted.Render("Type a query and press enter to search."))
	case v.results.Empty():
		b.WriteString(v.renderEmpty())
	default:
		b.WriteString(v.list.View())
	}

	return b.String()
}

func (v *View) renderEmpty() string {
	return v.styles.Card.Render(
		v.styles.Subtitle.Render("No results found") + "\n" +
			v.styles.Muted.Render(fmt.Sprintf("Nothing matched %q. Try different keywords.", v.query)),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	// Input, spacing, tab bar and status bar.
	v.list.SetDimensions(width, height-8)
}

// Results returns the results on screen, or nil before the first search.
func (v *View) Results() *domain.SearchResults {
	return v.results
}

// Query returns the query the results on screen answer.
func (v *View) Query() string {
	return v.query
}

// Value returns the query input value.
func (v *View) Value() string {
	return v.input.Value()
}

// ShowingEmptyState reports whether the empty-state panel is on screen.
func (v *View) ShowingEmptyState() bool {
	return v.results != nil && v.results.Empty()
}

// Hits returns the hit cards on screen.
func (v *View) Hits() []domain.SearchHit {
	if v.ShowingEmptyState() {
		return nil
	}
	return v.list.Hits()
}
