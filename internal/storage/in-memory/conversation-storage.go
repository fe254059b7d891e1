package in_memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
)

type ConversationStorage struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]*model.Conversation
}

func NewConversationStorage() *ConversationStorage {
	return &ConversationStorage{
		conversations: make(map[uuid.UUID]*model.Conversation),
	}
}

func (c *ConversationStorage) GetConversation(_ context.Context, sessionID uuid.UUID) (model.Conversation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	conversation, ok := c.conversations[sessionID]
	if !ok {
		return model.Conversation{}, model.ErrConversationDoesNotExist
	}
	return *conversation, nil
}

func (c *ConversationStorage) SaveConversation(_ context.Context, conversation model.Conversation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	saved := conversation
	c.conversations[conversation.SessionID] = &saved
	return nil
}
