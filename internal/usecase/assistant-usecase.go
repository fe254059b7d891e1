package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/marketplace-hub/shopping-assistant/pkg/local"
	"github.com/sirupsen/logrus"
)

type CandidateFetcher interface {
	FetchCandidates(ctx context.Context, searchQuery string, source model.SourcePreference) ([]model.Product, error)
}

type AssistantUsecaseDeps struct {
	Conversation *ConversationUsecase
	Catalog      CandidateFetcher
	Strategy     AssistantStrategy
}

// AssistantUsecase orchestrates one chat turn: classify the utterance, route
// it to general chat, follow-up analysis or the search pipeline, then record
// the turn in the conversation store.
type AssistantUsecase struct {
	AssistantUsecaseDeps
	candidateLimit int
	language       local.Language
	log            *logrus.Logger
}

func NewAssistantUsecase(deps AssistantUsecaseDeps, cfg config.Assistant, log *logrus.Logger) *AssistantUsecase {
	return &AssistantUsecase{
		AssistantUsecaseDeps: deps,
		candidateLimit:       cfg.CandidateLimit,
		language:             local.ParseLanguage(cfg.Language),
		log:                  log,
	}
}

// Chat handles one user turn and returns the structured reply the storefront
// renders. Degraded dependencies resolve to natural-language messages, never
// to an error; only conversation storage failures propagate.
func (a *AssistantUsecase) Chat(ctx context.Context, sessionID uuid.UUID, utterance string) (model.ChatReply, error) {
	conversation, err := a.Conversation.GetOrCreate(ctx, sessionID)
	if err != nil {
		return model.ChatReply{}, err
	}

	intent := a.Strategy.Classify(ctx, utterance, conversation)
	a.log.WithFields(
		logrus.Fields{
			"session":    sessionID,
			"follow_up":  intent.IsFollowUp,
			"general":    intent.IsGeneralChat,
			"new_search": intent.WantsNewSearch,
			"source":     intent.NormalizedSource(),
		},
	).Debug("classified utterance")

	var reply model.ChatReply
	var effectiveQuery string
	newSearch := false

	switch {
	case intent.IsGeneralChat && !intent.WantsNewSearch:
		reply = model.ChatReply{
			Message:  a.Strategy.RespondGeneral(ctx, utterance, conversation),
			Products: []model.Product{},
		}
	case intent.IsFollowUp && !intent.WantsNewSearch && len(conversation.LastProducts) > 0:
		reply = a.analyzeFollowUp(ctx, utterance, conversation)
	default:
		reply, effectiveQuery = a.searchProducts(ctx, utterance, intent, conversation)
		newSearch = true
	}

	if err = a.Conversation.AppendTurn(ctx, sessionID, utterance, reply.Message); err != nil {
		return model.ChatReply{}, err
	}
	if newSearch && len(reply.Products) > 0 {
		if err = a.Conversation.ReplaceLastProducts(ctx, sessionID, reply.Products, effectiveQuery); err != nil {
			return model.ChatReply{}, err
		}
	}
	return reply, nil
}

// Reset clears the session's conversation state.
func (a *AssistantUsecase) Reset(ctx context.Context, sessionID uuid.UUID) error {
	return a.Conversation.Reset(ctx, sessionID)
}

// analyzeFollowUp answers over the stored product set without retrieval. The
// cheapest pick is always computed from prices, never taken from the model.
func (a *AssistantUsecase) analyzeFollowUp(
	ctx context.Context, utterance string, conversation model.Conversation,
) model.ChatReply {
	result := a.Strategy.AnalyzeFollowUp(ctx, utterance, conversation)
	products := sortedByPrice(conversation.LastProducts)
	return model.ChatReply{
		Message:  result.Message,
		Products: products,
		Analysis: a.buildAnalysis(products, conversation.LastProducts, result.BestValue, result.Premium),
	}
}
