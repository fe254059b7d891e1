package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/redis/go-redis/v9"
)

type messageInternal struct {
	Source model.MessageSource `json:"source"`
	Body   string              `json:"body"`
}

type conversationInternal struct {
	SessionID    string            `json:"session_id"`
	Messages     []messageInternal `json:"messages"`
	LastProducts []model.Product   `json:"last_products"`
	LastQuery    string            `json:"last_query"`
}

type ConversationStorage struct {
	rdb *redis.Client
}

func NewConversationStorage(rdb *redis.Client) *ConversationStorage {
	return &ConversationStorage{
		rdb: rdb,
	}
}

func (c *ConversationStorage) GetConversation(ctx context.Context, sessionID uuid.UUID) (model.Conversation, error) {
	conversationKey := getConversationKey(sessionID)
	conversationRaw, err := c.rdb.Get(ctx, conversationKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Conversation{}, model.ErrConversationDoesNotExist
		}
		return model.Conversation{}, fmt.Errorf("failed to get conversation %s: %w", sessionID, err)
	}
	var conversationInt conversationInternal
	if err = json.Unmarshal([]byte(conversationRaw), &conversationInt); err != nil {
		return model.Conversation{}, fmt.Errorf("failed to unmarshal conversation %s: %w", sessionID, err)
	}

	messages := make([]model.Message, 0, len(conversationInt.Messages))
	for _, msg := range conversationInt.Messages {
		messages = append(
			messages, model.Message{
				Source: msg.Source,
				Body:   msg.Body,
			},
		)
	}

	conversation := model.Conversation{
		SessionID:    sessionID,
		Messages:     messages,
		LastProducts: conversationInt.LastProducts,
		LastQuery:    conversationInt.LastQuery,
	}
	return conversation, nil
}

func (c *ConversationStorage) SaveConversation(ctx context.Context, conversation model.Conversation) error {
	messages := make([]messageInternal, 0, len(conversation.Messages))
	for _, msg := range conversation.Messages {
		messages = append(
			messages, messageInternal{
				Source: msg.Source,
				Body:   msg.Body,
			},
		)
	}
	conversationInt := conversationInternal{
		SessionID:    conversation.SessionID.String(),
		Messages:     messages,
		LastProducts: conversation.LastProducts,
		LastQuery:    conversation.LastQuery,
	}
	conversationJSON, err := json.Marshal(conversationInt)
	if err != nil {
		return fmt.Errorf("failed to marshal internal conversation: %w", err)
	}
	conversationKey := getConversationKey(conversation.SessionID)
	if err = c.rdb.Set(ctx, conversationKey, conversationJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conversationKey, err)
	}
	return nil
}

func getConversationKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("conversation_%v", sessionID.String())
}
