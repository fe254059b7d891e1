package usecase

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/marketplace-hub/shopping-assistant/pkg/local"
)

// categoryOrder keeps detection deterministic when a message mentions more
// than one category.
var categoryOrder = []string{"beauty", "electronics", "clothing", "sports", "home"}

var categoryKeywords = map[string][]string{
	"beauty":      {"beauty", "cosmetics", "skincare", "makeup", "cream", "serum", "lotion"},
	"electronics": {"electronics", "phone", "laptop", "computer", "tablet", "gadget", "tech", "headphones"},
	"clothing":    {"clothing", "clothes", "fashion", "shirt", "pants", "dress", "shoes", "outfit"},
	"sports":      {"sports", "fitness", "gym", "workout", "exercise", "running", "training"},
	"home":        {"home", "furniture", "decor", "kitchen", "living", "bedroom", "garden"},
}

var (
	greetingPattern = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|bonjour|salut)\b`)
	maxPricePattern = regexp.MustCompile(`(?i)(?:under|below|less than|max(?:imum)?|moins de)\s*\$?\s*(\d+(?:\.\d+)?)`)

	helpWords     = []string{"help", "what can you do", "aide"}
	thanksWords   = []string{"thank", "merci"}
	byeWords      = []string{"bye", "goodbye", "au revoir"}
	followUpWords = []string{"cheapest", "which", "these", "those", "them", "difference", "more about", "moins cher"}

	externalWords = []string{"ebay"}
	internalWords = []string{"our store", "our products", "your store", "internal", "notre boutique"}
)

// RuleBasedStrategy is a deterministic keyword-table stand-in for the model,
// usable when no AI backend is configured. It implements the same contract as
// the LLM strategy, including the source-override disambiguation rule.
type RuleBasedStrategy struct {
	language local.Language
}

func NewRuleBasedStrategy(language local.Language) *RuleBasedStrategy {
	return &RuleBasedStrategy{language: language}
}

func (s *RuleBasedStrategy) Classify(_ context.Context, utterance string, conversation model.Conversation) model.Intent {
	lower := strings.ToLower(utterance)
	category := detectCategory(lower)
	source := detectSource(lower)

	if category == "" && source == "" && isSmallTalk(lower) {
		return model.Intent{IsGeneralChat: true}
	}

	// Same product type, different source: a new search with the previous
	// query carried over, never a follow-up.
	if source != "" && category == "" && conversation.LastQuery != "" {
		return model.Intent{
			WantsNewSearch:   true,
			SearchTerms:      conversation.LastQuery,
			SourcePreference: source,
		}
	}

	if category == "" && source == "" && len(conversation.LastProducts) > 0 && containsAny(lower, followUpWords) {
		return model.Intent{
			IsFollowUp:     true,
			FollowUpIntent: utterance,
		}
	}

	intent := model.Intent{
		WantsNewSearch:   true,
		ProductType:      category,
		SearchTerms:      utterance,
		SourcePreference: source,
	}
	if category != "" {
		intent.SearchTerms = category
	}
	if match := maxPricePattern.FindStringSubmatch(utterance); match != nil {
		if maxPrice, err := strconv.ParseFloat(match[1], 64); err == nil {
			intent.MaxPrice = maxPrice
		}
	}
	return intent
}

func (s *RuleBasedStrategy) RespondGeneral(_ context.Context, utterance string, _ model.Conversation) string {
	lower := strings.ToLower(utterance)
	switch {
	case greetingPattern.MatchString(utterance):
		return msgRuleGreeting.Text(s.language)
	case containsAny(lower, helpWords):
		return msgRuleHelp.Text(s.language)
	case containsAny(lower, thanksWords):
		return msgRuleThanks.Text(s.language)
	case containsAny(lower, byeWords):
		return msgRuleBye.Text(s.language)
	default:
		return msgGeneralFallback.Text(s.language)
	}
}

func (s *RuleBasedStrategy) AnalyzeFollowUp(_ context.Context, _ string, conversation model.Conversation) FollowUpResult {
	products := conversation.LastProducts
	if len(products) == 0 {
		return FollowUpResult{Message: msgClarifyFollowUp.Text(s.language)}
	}
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	return FollowUpResult{
		Message: msgFollowUpCheapest.Format(s.language, len(products), sorted[0].Name, sorted[0].Price),
	}
}

func (s *RuleBasedStrategy) SelectRelevant(
	_ context.Context, _ string, intent model.Intent, candidates []model.Product,
) SearchSelection {
	terms := strings.Fields(strings.ToLower(intent.SearchTerms))
	if len(terms) == 0 && intent.ProductType != "" {
		terms = strings.Fields(strings.ToLower(intent.ProductType))
	}

	relevant := make([]int, 0, len(candidates))
	for i, product := range candidates {
		text := strings.ToLower(product.Name + " " + product.Description + " " + product.CategoryName)
		if len(terms) > 0 && !containsAny(text, terms) {
			continue
		}
		if containsAny(text, lowerAll(intent.Exclude)) {
			continue
		}
		relevant = append(relevant, i)
	}
	return SearchSelection{
		Message:         msgFoundProducts.Format(s.language, len(relevant)),
		RelevantIndexes: relevant,
	}
}

func detectCategory(lower string) string {
	for _, category := range categoryOrder {
		if containsAny(lower, categoryKeywords[category]) {
			return category
		}
	}
	return ""
}

func detectSource(lower string) model.SourcePreference {
	if containsAny(lower, externalWords) {
		return model.PreferExternal
	}
	if containsAny(lower, internalWords) {
		return model.PreferInternal
	}
	return ""
}

func isSmallTalk(lower string) bool {
	return greetingPattern.MatchString(lower) ||
		containsAny(lower, helpWords) ||
		containsAny(lower, thanksWords) ||
		containsAny(lower, byeWords)
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if word != "" && strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func lowerAll(words []string) []string {
	lowered := make([]string, 0, len(words))
	for _, word := range words {
		lowered = append(lowered, strings.ToLower(word))
	}
	return lowered
}
