package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

func TestTab_String(t *testing.T) {
	tests := []struct {
		tab   Tab
		name  string
		title string
	}{
		{TabUpload, "upload", "Upload"},
		{TabDocuments, "documents", "Documents"},
		{TabSearch, "search", "Search"},
		{TabChat, "chat", "Chat"},
		{TabSettings, "settings", "Settings"},
		{Tab(99), "unknown", "?"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.tab.String())
		assert.Equal(t, tt.title, tt.tab.Title())
	}
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs {
		got, ok := ParseTab(tab.String())
		assert.True(t, ok)
		assert.Equal(t, tab, got)
	}

	_, ok := ParseTab("history")
	assert.False(t, ok)
}

func TestSequence(t *testing.T) {
	var seq Sequence
	assert.Equal(t, uint64(0), seq.Current())

	first := seq.Next()
	second := seq.Next()

	assert.False(t, seq.IsCurrent(first))
	assert.True(t, seq.IsCurrent(second))
	assert.Equal(t, second, seq.Current())
}

func TestNotifyCmd(t *testing.T) {
	msg := NotifyCmd(domain.LevelWarning, "Please enter a search query")()

	assert.Equal(t, Notify{Level: domain.LevelWarning, Text: "Please enter a search query"}, msg)
}
