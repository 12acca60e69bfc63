// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// HitList displays search hits as cards with the query term highlighted.
type HitList struct {
	hits     []domain.SearchHit
	term     string
	total    int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates an empty hit list.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the hit list.
func (h *HitList) Init() tea.Cmd {
	return nil
}

// Update handles arrow key navigation. Letter keys are left to the
// search input.
func (h *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only navigation keys
		switch msg.Type {
		case tea.KeyUp:
			h.MoveUp()
		case tea.KeyDown:
			h.MoveDown()
		}
	}
	return h, nil
}

// View renders the header and the visible hit cards.
func (h *HitList) View() string {
	if len(h.hits) == 0 {
		return h.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(h.hits)+2)
	header := fmt.Sprintf("Found %d result(s) for %q", h.total, h.term)
	lines = append(lines, h.styles.Subtitle.Render(header), "")

	// Each card takes three lines plus a blank separator.
	visible := (h.height - 2) / 4
	if visible < 1 {
		visible = 1
	}

	start := 0
	if h.selected >= visible {
		start = h.selected - visible + 1
	}
	end := start + visible
	if end > len(h.hits) {
		end = len(h.hits)
	}

	for i := start; i < end; i++ {
		lines = append(lines, h.renderHit(i, &h.hits[i]))
	}

	if end < len(h.hits) {
		lines = append(lines, h.styles.Muted.Render(fmt.Sprintf("  … %d more", len(h.hits)-end)))
	}

	return strings.Join(lines, "\n")
}

func (h *HitList) renderHit(index int, hit *domain.SearchHit) string {
	title := hit.Filename
	if title == "" {
		title = "(unnamed)"
	}
	if index == h.selected {
		title = h.styles.Selected.Render(title)
	} else {
		title = h.styles.Subtitle.Render(title)
	}

	snippet := truncate(hit.ContentSnippet, h.width*2)
	body := h.styles.Highlight(snippet, h.term)

	card := h.styles.Card.Width(h.width - 2)
	return card.Render(title+"\n"+body) + "\n"
}

func truncate(s string, limit int) string {
	if limit < 20 {
		limit = 20
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// SetResults replaces the hits with results and remembers the term to highlight.
func (h *HitList) SetResults(results *domain.SearchResults, term string) {
	h.selected = 0
	h.term = term
	if results == nil {
		h.hits = nil
		h.total = 0
		return
	}
	h.hits = results.Hits
	h.total = results.TotalResults
}

// Clear removes all hits.
func (h *HitList) Clear() {
	h.SetResults(nil, "")
}

// Hits returns the displayed hits.
func (h *HitList) Hits() []domain.SearchHit {
	return h.hits
}

// Term returns the highlighted term.
func (h *HitList) Term() string {
	return h.term
}

// Selected returns the index of the selected hit.
func (h *HitList) Selected() int {
	return h.selected
}

// SelectedHit returns the selected hit, or nil when the list is empty.
func (h *HitList) SelectedHit() *domain.SearchHit {
	if h.selected < 0 || h.selected >= len(h.hits) {
		return nil
	}
	return &h.hits[h.selected]
}

// MoveUp moves selection up.
func (h *HitList) MoveUp() {
	if h.selected > 0 {
		h.selected--
	}
}

// MoveDown moves selection down.
func (h *HitList) MoveDown() {
	if h.selected < len(h.hits)-1 {
		h.selected++
	}
}

// SetDimensions sets the component dimensions.
func (h *HitList) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Count returns the number of hits.
func (h *HitList) Count() int {
	return len(h.hits)
}

// IsEmpty returns whether the list is empty.
func (h *HitList) IsEmpty() bool {
	return len(h.hits) == 0
}
