package usecase

import (
	"context"

	"github.com/marketplace-hub/shopping-assistant/internal/model"
)

// searchProducts runs a new-search turn: resolve the effective query, fetch
// candidates, apply numeric and source filters, cap the candidate list, ask
// the strategy for the relevant subset and assemble the reply. The second
// return value is the effective query, recorded alongside the surfaced
// products when the turn succeeds.
func (a *AssistantUsecase) searchProducts(
	ctx context.Context, utterance string, intent model.Intent, conversation model.Conversation,
) (model.ChatReply, string) {
	query := firstNonEmpty(intent.SearchTerms, intent.ProductType, conversation.LastQuery, utterance)
	source := intent.NormalizedSource()

	candidates, err := a.Catalog.FetchCandidates(ctx, query, source)
	if err != nil {
		// Total source failure degrades to an empty candidate set.
		a.log.WithError(err).Warn("catalog fetch failed, continuing with empty candidate set")
		candidates = nil
	}
	candidates = filterByPrice(candidates, intent.MinPrice, intent.MaxPrice)
	// The gateway's own source filtering is approximate for the external
	// branch, so the preference is re-asserted here.
	candidates = filterBySource(candidates, source)
	if len(candidates) > a.candidateLimit {
		candidates = candidates[:a.candidateLimit]
	}
	if len(candidates) == 0 {
		return model.ChatReply{
			Message:  msgNoCandidates.Format(a.language, query),
			Products: []model.Product{},
		}, query
	}

	selection := a.Strategy.SelectRelevant(ctx, utterance, intent, candidates)
	relevant := resolveIndexes(candidates, selection.RelevantIndexes)
	if len(relevant) == 0 {
		message := selection.Message
		if message == "" {
			message = msgNoRelevant.Format(a.language, query)
		}
		return model.ChatReply{Message: message, Products: []model.Product{}}, query
	}

	relevant = sortedByPrice(relevant)
	message := selection.Message
	if message == "" {
		message = msgFoundProducts.Format(a.language, len(relevant))
	}
	return model.ChatReply{
		Message:  message,
		Products: relevant,
		Analysis: a.buildAnalysis(relevant, candidates, selection.BestValue, selection.Premium),
	}, query
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func filterByPrice(products []model.Product, minPrice, maxPrice float64) []model.Product {
	if minPrice <= 0 && maxPrice <= 0 {
		return products
	}
	filtered := make([]model.Product, 0, len(products))
	for _, product := range products {
		if maxPrice > 0 && product.Price > maxPrice {
			continue
		}
		if minPrice > 0 && product.Price < minPrice {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

func filterBySource(products []model.Product, source model.SourcePreference) []model.Product {
	if source == model.PreferAll {
		return products
	}
	filtered := make([]model.Product, 0, len(products))
	for _, product := range products {
		isInternal := product.Source == model.SourceInternal
		if source == model.PreferInternal && !isInternal {
			continue
		}
		if source == model.PreferExternal && isInternal {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

// resolveIndexes maps selected indices back to products, silently dropping
// out-of-range or duplicate entries.
func resolveIndexes(candidates []model.Product, indexes []int) []model.Product {
	seen := make(map[int]struct{}, len(indexes))
	resolved := make([]model.Product, 0, len(indexes))
	for _, index := range indexes {
		if index < 0 || index >= len(candidates) {
			continue
		}
		if _, ok := seen[index]; ok {
			continue
		}
		seen[index] = struct{}{}
		resolved = append(resolved, candidates[index])
	}
	return resolved
}
