package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService sends questions to the server's chat endpoint.
type ChatService struct {
	backend driven.Backend
}

// NewChatService creates a new chat service.
func NewChatService(backend driven.Backend) *ChatService {
	return &ChatService{backend: backend}
}

// Send trims message and asks the server.
func (s *ChatService) Send(ctx context.Context, message string) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	logger.Debug("Chat message: %d chars", len(message))
	reply, err := s.backend.Chat(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	logger.Debug("Chat reply: %d chars, %d sources", len(reply.Response), len(reply.Sources))
	return reply, nil
}
