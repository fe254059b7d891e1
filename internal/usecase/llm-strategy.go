package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/marketplace-hub/shopping-assistant/pkg/local"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const generalSystemPrompt = `You are a friendly AI shopping assistant for a marketplace that sells products from an internal catalog and eBay.
You help users find products, compare prices between the internal store and eBay, and discover budget-friendly or premium options.
Be helpful, concise and friendly. Answer in the language the user writes in.`

const classifierSystemPrompt = `You are the intent classifier of a shopping assistant. Given the conversation so far, the products already shown to the user and the new user message, decide what the user wants.

Answer with a single JSON object and nothing else:
{"isFollowUp": bool, "isGeneralChat": bool, "wantsNewSearch": bool, "productType": string, "searchTerms": string, "maxPrice": number, "minPrice": number, "exclude": [string], "sourcePreference": "internal"|"external"|"all", "followUpIntent": string}

Rules:
- isGeneralChat: greetings, thanks, small talk, questions not about products.
- isFollowUp: the message refers to the products already shown (comparisons, "which is cheapest", "tell me more about the second one"). Requires that products were shown.
- wantsNewSearch: the message asks for products that require a fresh search.
- IMPORTANT: if the user asks to check a DIFFERENT source (eBay, "your store") for the SAME product type already discussed (e.g. "now check eBay"), that is a NEW SEARCH with sourcePreference overridden and searchTerms carried over from the previous query. It is NOT a follow-up.
- searchTerms: the specific product type wanted ("laptop", "face cream"). maxPrice/minPrice only when a budget is stated. exclude: things the user does not want.`

const followUpSystemPrompt = `You are a shopping assistant answering a follow-up question about products already shown to the user. Do not invent products; reason only over the numbered list you are given.

Answer with a single JSON object and nothing else:
{"message": string, "bestValue": {"index": number, "reason": string}, "premium": {"index": number, "reason": string}}

message is your conversational answer. bestValue and premium reference list positions (0-based) and may be omitted if nothing qualifies. Do not pick a "cheapest" product; that is computed separately.`

const searchSystemPrompt = `You are a shopping assistant filtering search candidates. From the numbered candidate list, select the products genuinely relevant to what the user asked for. Exclude accessories, spare parts and unrelated items unless the user explicitly asked for them.

Answer with a single JSON object and nothing else:
{"message": string, "relevantIndexes": [number], "bestValue": {"index": number, "reason": string}, "premium": {"index": number, "reason": string}}

relevantIndexes are 0-based positions in the candidate list. If none are relevant, return an empty array and explain in message.`

// ChatCompleter is the single model call the LLM strategy depends on.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, jsonOnly bool) (string, error)
}

type LLMStrategy struct {
	completer ChatCompleter
	language  local.Language
	log       *logrus.Logger
}

func NewLLMStrategy(completer ChatCompleter, language local.Language, log *logrus.Logger) *LLMStrategy {
	return &LLMStrategy{
		completer: completer,
		language:  language,
		log:       log,
	}
}

// Classify asks the model for an Intent. Any failure degrades to a default
// new-search intent carrying the raw utterance as search terms.
func (s *LLMStrategy) Classify(ctx context.Context, utterance string, conversation model.Conversation) model.Intent {
	var prompt strings.Builder
	writeShownProducts(&prompt, conversation)
	writeRecentHistory(&prompt, conversation)
	prompt.WriteString("New user message: ")
	prompt.WriteString(utterance)

	raw, err := s.completer.Complete(
		ctx, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		}, true,
	)
	if err != nil {
		s.log.WithError(err).Warn("intent classification failed, using default intent")
		return defaultIntent(utterance)
	}
	var intent model.Intent
	if err = unmarshalModelJSON(raw, &intent); err != nil {
		s.log.WithError(err).Warn("failed to parse intent, using default intent")
		return defaultIntent(utterance)
	}
	return intent
}

func (s *LLMStrategy) RespondGeneral(ctx context.Context, utterance string, conversation model.Conversation) string {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: generalSystemPrompt},
	}
	for _, msg := range conversation.Messages {
		messages = append(
			messages, openai.ChatCompletionMessage{
				Role:    parseMessageSourceToRole(msg.Source),
				Content: msg.Body,
			},
		)
	}
	messages = append(
		messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: utterance,
		},
	)

	answer, err := s.completer.Complete(ctx, messages, false)
	if err != nil {
		s.log.WithError(err).Warn("general chat completion failed")
		return msgGeneralFallback.Text(s.language)
	}
	return answer
}

// AnalyzeFollowUp reasons over the already-shown product list without any new
// retrieval. A parse failure resolves to a clarification message.
func (s *LLMStrategy) AnalyzeFollowUp(ctx context.Context, utterance string, conversation model.Conversation) FollowUpResult {
	var prompt strings.Builder
	writeShownProducts(&prompt, conversation)
	if conversation.LastQuery != "" {
		fmt.Fprintf(&prompt, "These were found for the query %q.\n", conversation.LastQuery)
	}
	prompt.WriteString("Follow-up question: ")
	prompt.WriteString(utterance)

	clarify := FollowUpResult{Message: msgClarifyFollowUp.Text(s.language)}

	raw, err := s.completer.Complete(
		ctx, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: followUpSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		}, true,
	)
	if err != nil {
		s.log.WithError(err).Warn("follow-up analysis failed")
		return clarify
	}
	var payload struct {
		Message   string     `json:"message"`
		BestValue *IndexPick `json:"bestValue"`
		Premium   *IndexPick `json:"premium"`
	}
	if err = unmarshalModelJSON(raw, &payload); err != nil || payload.Message == "" {
		s.log.WithError(err).Warn("failed to parse follow-up analysis")
		return clarify
	}
	return FollowUpResult{
		Message:   payload.Message,
		BestValue: payload.BestValue,
		Premium:   payload.Premium,
	}
}

// SelectRelevant asks the model which candidates actually match the request.
// A parse failure keeps every candidate and flags the trouble in the message.
func (s *LLMStrategy) SelectRelevant(
	ctx context.Context, utterance string, intent model.Intent, candidates []model.Product,
) SearchSelection {
	var prompt strings.Builder
	prompt.WriteString("Candidates:\n")
	for i, product := range candidates {
		fmt.Fprintf(
			&prompt, "%d) %s — %.2f %s (%s) %s\n",
			i, product.Name, product.Price, product.Currency, product.Source, truncate(product.Description, 80),
		)
	}
	if intent.ProductType != "" {
		fmt.Fprintf(&prompt, "The user wants: %s\n", intent.ProductType)
	}
	if len(intent.Exclude) > 0 {
		fmt.Fprintf(&prompt, "The user does NOT want: %s\n", strings.Join(intent.Exclude, ", "))
	}
	prompt.WriteString("User message: ")
	prompt.WriteString(utterance)

	fallback := SearchSelection{
		Message:         msgTroubleAnalyzing.Text(s.language),
		RelevantIndexes: allIndexes(len(candidates)),
	}

	raw, err := s.completer.Complete(
		ctx, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: searchSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		}, true,
	)
	if err != nil {
		s.log.WithError(err).Warn("relevance selection failed, keeping all candidates")
		return fallback
	}
	var payload struct {
		Message         string     `json:"message"`
		RelevantIndexes []int      `json:"relevantIndexes"`
		BestValue       *IndexPick `json:"bestValue"`
		Premium         *IndexPick `json:"premium"`
	}
	if err = unmarshalModelJSON(raw, &payload); err != nil {
		s.log.WithError(err).Warn("failed to parse relevance selection, keeping all candidates")
		return fallback
	}
	return SearchSelection{
		Message:         payload.Message,
		RelevantIndexes: payload.RelevantIndexes,
		BestValue:       payload.BestValue,
		Premium:         payload.Premium,
	}
}

func defaultIntent(utterance string) model.Intent {
	return model.Intent{SearchTerms: utterance}
}

func writeShownProducts(prompt *strings.Builder, conversation model.Conversation) {
	if len(conversation.LastProducts) == 0 {
		prompt.WriteString("No products have been shown to the user yet.\n")
		return
	}
	prompt.WriteString("Products currently shown to the user:\n")
	for i, product := range conversation.LastProducts {
		fmt.Fprintf(prompt, "%d) %s — %.2f %s (%s)\n", i, product.Name, product.Price, product.Currency, product.Source)
	}
	if conversation.LastQuery != "" {
		fmt.Fprintf(prompt, "They were found for the query %q.\n", conversation.LastQuery)
	}
}

func writeRecentHistory(prompt *strings.Builder, conversation model.Conversation) {
	const recentTurns = 6
	messages := conversation.Messages
	if len(messages) > recentTurns {
		messages = messages[len(messages)-recentTurns:]
	}
	if len(messages) == 0 {
		return
	}
	prompt.WriteString("Recent conversation:\n")
	for _, msg := range messages {
		fmt.Fprintf(prompt, "%s: %s\n", msg.Source, msg.Body)
	}
}

func parseMessageSourceToRole(source model.MessageSource) string {
	switch source {
	case model.MessageSourceAssistant:
		return openai.ChatMessageRoleAssistant
	case model.MessageSourceSystem:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleUser
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}

func allIndexes(n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}

var errNoJSONObject = errors.New("no json object in model response")

// unmarshalModelJSON is the single parsing boundary for model output. It
// accepts a bare JSON object, a fenced ```json block inside free text, or a
// first-{ to last-} slice of the response.
func unmarshalModelJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if fenceStart := strings.Index(raw, "```"); fenceStart != -1 {
		inner := raw[fenceStart+3:]
		inner = strings.TrimPrefix(inner, "json")
		if fenceEnd := strings.Index(inner, "```"); fenceEnd != -1 {
			raw = strings.TrimSpace(inner[:fenceEnd])
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return errNoJSONObject
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to unmarshal model response: %w", err)
	}
	return nil
}
