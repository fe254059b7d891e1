package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
)

type ConversationStorage interface {
	GetConversation(ctx context.Context, sessionID uuid.UUID) (model.Conversation, error)
	SaveConversation(ctx context.Context, conversation model.Conversation) error
}

type ConversationUsecaseDeps struct {
	ConversationStorage ConversationStorage
}

// ConversationUsecase owns the per-session state: a sliding message window
// plus the products surfaced by the most recent search turn.
type ConversationUsecase struct {
	ConversationUsecaseDeps
	historyWindow int
}

func NewConversationUsecase(deps ConversationUsecaseDeps, historyWindow int) *ConversationUsecase {
	return &ConversationUsecase{
		ConversationUsecaseDeps: deps,
		historyWindow:           historyWindow,
	}
}

// GetOrCreate returns the stored conversation for the session, or an empty
// one when the session is new.
func (c *ConversationUsecase) GetOrCreate(ctx context.Context, sessionID uuid.UUID) (model.Conversation, error) {
	conversation, err := c.ConversationStorage.GetConversation(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrConversationDoesNotExist) {
			return model.Conversation{SessionID: sessionID}, nil
		}
		return model.Conversation{}, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conversation, nil
}

// AppendTurn pushes the user message then the assistant message and truncates
// the history to the configured window, dropping oldest first.
func (c *ConversationUsecase) AppendTurn(ctx context.Context, sessionID uuid.UUID, userMsg, assistantMsg string) error {
	conversation, err := c.GetOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}
	conversation.Messages = append(
		conversation.Messages,
		model.Message{Source: model.MessageSourceUser, Body: userMsg},
		model.Message{Source: model.MessageSourceAssistant, Body: assistantMsg},
	)
	if len(conversation.Messages) > c.historyWindow {
		conversation.Messages = conversation.Messages[len(conversation.Messages)-c.historyWindow:]
	}
	if err = c.ConversationStorage.SaveConversation(ctx, conversation); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// ReplaceLastProducts overwrites the surfaced product set and the query that
// produced it. Only the search pipeline calls this, and only on a successful
// new-search turn.
func (c *ConversationUsecase) ReplaceLastProducts(
	ctx context.Context, sessionID uuid.UUID, products []model.Product, query string,
) error {
	conversation, err := c.GetOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}
	conversation.LastProducts = products
	conversation.LastQuery = query
	if err = c.ConversationStorage.SaveConversation(ctx, conversation); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// Reset empties messages, last products and last query in one save.
func (c *ConversationUsecase) Reset(ctx context.Context, sessionID uuid.UUID) error {
	if err := c.ConversationStorage.SaveConversation(ctx, model.Conversation{SessionID: sessionID}); err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}
	return nil
}
