package mcp

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk/internal/adapters/driven/backend/memory"
	"github.com/custodia-labs/docdesk/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingPorts)
	})

	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("search only is valid", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Search:    &mockSearchService{},
			Chat:      &mockChatService{},
			Documents: &mockDocumentService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

// connect starts the server over streamable HTTP and returns a client session.
func connect(t *testing.T, ports *Ports) *mcp.ClientSession {
	t.Helper()

	server, err := NewServer(ports)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &mcp.StreamableClientTransport{Endpoint: ts.URL}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestServer_OverHTTP(t *testing.T) {
	backend := memory.New()
	backend.Add("invoices.txt", "the March invoice is overdue")
	backend.Add("notes.md", "meeting notes about hiring")

	session := connect(t, &Ports{
		Search:    services.NewSearchService(backend),
		Chat:      services.NewChatService(backend),
		Documents: services.NewDocumentService(backend),
	})
	ctx := context.Background()

	t.Run("lists all tools", func(t *testing.T) {
		res, err := session.ListTools(ctx, nil)
		require.NoError(t, err)

		names := make([]string, 0, len(res.Tools))
		for _, tool := range res.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{"search_documents", "ask_documents", "list_documents"}, names)
	})

	t.Run("search tool returns hits", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "search_documents",
			Arguments: map[string]any{"query": "invoice"},
		})
		require.NoError(t, err)
		assert.False(t, res.IsError)

		out, ok := res.StructuredContent.(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 1, out["total_results"])
	})

	t.Run("empty query is a tool error", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "search_documents",
			Arguments: map[string]any{"query": "   "},
		})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Equal(t, 1, backend.Calls().Search)
	})

	t.Run("documents resource lists documents", func(t *testing.T) {
		res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "docdesk://documents"})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Contains(t, res.Contents[0].Text, "invoices.txt")
		assert.Contains(t, res.Contents[0].Text, "notes.md")
	})
}

func TestServer_OptionalPortsHideTools(t *testing.T) {
	session := connect(t, &Ports{Search: &mockSearchService{}})

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, "search_documents", res.Tools[0].Name)
}
