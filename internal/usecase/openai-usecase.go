package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/marketplace-hub/shopping-assistant/config"
	openai_tools "github.com/marketplace-hub/shopping-assistant/pkg/openai-tools"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const promptTokenBudget = 3500

var (
	ErrOpenAINotConfigured = errors.New("openai api key is not configured")
	ErrEmptyCompletion     = errors.New("model returned no choices")
	ErrPromptTooLarge      = errors.New("prompt exceeds token budget")
)

type OpenAIUsecase struct {
	cfg         config.OpenAI
	client      *openai.Client
	countTokens func(messages []openai.ChatCompletionMessage, model string) (int, error)
	log         *logrus.Logger
}

func NewOpenAIUsecase(cfg config.OpenAI, log *logrus.Logger) (*OpenAIUsecase, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, ErrOpenAINotConfigured
	}
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIUsecase{
		cfg:         cfg,
		client:      openai.NewClientWithConfig(clientConfig),
		countTokens: openai_tools.CountToken,
		log:         log,
	}, nil
}

// Complete sends one chat-completion request and returns the assistant
// message. When jsonOnly is set the model is constrained to answer with a
// single JSON object. The oldest non-system messages are trimmed until the
// prompt fits the token budget; the system prompt and the newest message are
// never trimmed, and a prompt that still exceeds the budget with only those
// two left is rejected with ErrPromptTooLarge.
func (o *OpenAIUsecase) Complete(
	ctx context.Context, messages []openai.ChatCompletionMessage, jsonOnly bool,
) (string, error) {
	trimHistory := func() bool {
		for i, msg := range messages[:len(messages)-1] {
			if msg.Role != openai.ChatMessageRoleSystem {
				messages = append(messages[:i], messages[i+1:]...)
				return true
			}
		}
		return false
	}
	for len(messages) > 2 {
		tokenCount, err := o.countTokens(messages, o.cfg.OpenAIModel)
		if err != nil {
			o.log.WithError(err).Warn("failed to count tokens, trimming history")
			if !trimHistory() {
				break
			}
			continue
		}
		if tokenCount < promptTokenBudget {
			break
		}
		if !trimHistory() {
			break
		}
	}
	if tokenCount, err := o.countTokens(messages, o.cfg.OpenAIModel); err == nil && tokenCount >= promptTokenBudget {
		return "", fmt.Errorf("%w: %d tokens", ErrPromptTooLarge, tokenCount)
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       o.cfg.OpenAIModel,
		Temperature: o.cfg.ModelTemperature,
		TopP:        1,
		N:           1,
		MaxTokens:   o.cfg.MaxTokens,
		Messages:    messages,
	}
	if jsonOnly {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
