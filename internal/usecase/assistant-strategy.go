package usecase

import (
	"context"
	"fmt"

	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/marketplace-hub/shopping-assistant/pkg/local"
	"github.com/sirupsen/logrus"
)

const (
	ProviderOpenAI    = "openai"
	ProviderRuleBased = "rule-based"
)

// IndexPick references a product by its position in the list that was shown
// to the strategy, together with the reason it was picked.
type IndexPick struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type FollowUpResult struct {
	Message   string
	BestValue *IndexPick
	Premium   *IndexPick
}

type SearchSelection struct {
	Message         string
	RelevantIndexes []int
	BestValue       *IndexPick
	Premium         *IndexPick
}

// AssistantStrategy is the reasoning backend behind the assistant. Every
// method fails soft: an unreachable model or an unparseable answer resolves
// to a usable default, never to an error for the orchestrator.
type AssistantStrategy interface {
	Classify(ctx context.Context, utterance string, conversation model.Conversation) model.Intent
	RespondGeneral(ctx context.Context, utterance string, conversation model.Conversation) string
	AnalyzeFollowUp(ctx context.Context, utterance string, conversation model.Conversation) FollowUpResult
	SelectRelevant(ctx context.Context, utterance string, intent model.Intent, candidates []model.Product) SearchSelection
}

// NewAssistantStrategy picks the reasoning backend from config. Selecting the
// openai provider without an API key is a configuration error: there is no
// silent fallback to the rule-based strategy.
func NewAssistantStrategy(cfg *config.Config, log *logrus.Logger) (AssistantStrategy, error) {
	language := local.ParseLanguage(cfg.Assistant.Language)
	switch cfg.Assistant.Provider {
	case ProviderOpenAI:
		openAIUsecase, err := NewOpenAIUsecase(cfg.OpenAI, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai usecase: %w", err)
		}
		return NewLLMStrategy(openAIUsecase, language, log), nil
	case ProviderRuleBased:
		return NewRuleBasedStrategy(language), nil
	default:
		return nil, fmt.Errorf("unsupported assistant provider: %s", cfg.Assistant.Provider)
	}
}
