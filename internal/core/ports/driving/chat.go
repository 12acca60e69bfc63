package driving

import (
	"context"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// ChatService answers questions about stored documents.
type ChatService interface {
	// Send trims message and asks the server.
	// A blank message fails with domain.ErrEmptyMessage before any request.
	Send(ctx context.Context, message string) (*domain.ChatReply, error)
}
