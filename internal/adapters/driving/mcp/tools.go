package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// SearchInput is the input schema for search_documents.
type SearchInput struct {
	Query string `json:"query" jsonschema:"keywords to look for in the uploaded documents"`
}

// SearchOutput is the output schema for search_documents.
type SearchOutput struct {
	Query   string             `json:"query"`
	Total   int                `json:"total_results"`
	Results []SearchResultItem `json:"results"`
}

// SearchResultItem is one matching document.
type SearchResultItem struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Snippet    string `json:"snippet"`
}

// AskInput is the input schema for ask_documents.
type AskInput struct {
	Message string `json:"message" jsonschema:"the question to answer from the uploaded documents"`
}

// AskOutput is the output schema for ask_documents.
type AskOutput struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// ListInput is the (empty) input schema for list_documents.
type ListInput struct{}

// ListOutput is the output schema for list_documents.
type ListOutput struct {
	Documents []domain.Document `json:"documents"`
	Count     int               `json:"count"`
}

// registerTools registers the tools whose ports are available.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Keyword search across documents uploaded to the document server",
	}, s.handleSearch)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_documents",
			Description: "Ask a question answered from the uploaded documents, with the files used as sources",
		}, s.handleAsk)
	}

	if s.ports.Documents != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List the documents stored on the document server",
		}, s.handleList)
	}
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, toolError(err)
	}

	output := SearchOutput{
		Query:   results.Query,
		Total:   results.TotalResults,
		Results: make([]SearchResultItem, len(results.Hits)),
	}
	for i, hit := range results.Hits {
		output.Results[i] = SearchResultItem{
			DocumentID: hit.DocumentID,
			Filename:   hit.Filename,
			Snippet:    hit.ContentSnippet,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Chat.Send(ctx, input.Message)
	if err != nil {
		return nil, AskOutput{}, toolError(err)
	}

	sources := reply.Sources
	if sources == nil {
		sources = []string{}
	}
	return nil, AskOutput{Response: reply.Response, Sources: sources}, nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, ListOutput{}, toolError(err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return nil, ListOutput{Documents: docs, Count: len(docs)}, nil
}

// toolError reduces err to the text the assistant should see. Server
// errors carry their detail verbatim.
func toolError(err error) error {
	return errors.New(domain.ErrorDetail(err))
}
