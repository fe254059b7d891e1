package usecase

import (
	"math"
	"sort"

	"github.com/marketplace-hub/shopping-assistant/internal/model"
)

// buildAnalysis derives the price statistics for a turn. sortedRelevant must
// be sorted ascending by price; shown is the exact list the strategy picked
// indices against (candidates for a search turn, the stored products for a
// follow-up turn).
func (a *AssistantUsecase) buildAnalysis(
	sortedRelevant, shown []model.Product, bestValue, premium *IndexPick,
) *model.ProductAnalysis {
	analysis := &model.ProductAnalysis{
		PriceRange: priceRangeOf(sortedRelevant),
	}
	if len(sortedRelevant) > 0 {
		analysis.Cheapest = &model.ProductPick{
			Product: sortedRelevant[0],
			Reason:  msgCheapestReason.Text(a.language),
		}
	}
	analysis.BestValue = resolvePick(shown, bestValue)
	analysis.Premium = resolvePick(shown, premium)
	analysis.Comparison = a.compareSources(sortedRelevant)
	return analysis
}

func priceRangeOf(products []model.Product) model.PriceRange {
	var priceRange model.PriceRange
	count := 0
	for _, product := range products {
		if product.Price <= 0 {
			continue
		}
		if count == 0 || product.Price < priceRange.Min {
			priceRange.Min = product.Price
		}
		if product.Price > priceRange.Max {
			priceRange.Max = product.Price
		}
		priceRange.Avg += product.Price
		count++
	}
	if count > 0 {
		priceRange.Avg /= float64(count)
	}
	return priceRange
}

// resolvePick maps a strategy-provided index back to the full product record.
// Invalid indices yield no pick, never an error.
func resolvePick(shown []model.Product, pick *IndexPick) *model.ProductPick {
	if pick == nil || pick.Index < 0 || pick.Index >= len(shown) {
		return nil
	}
	return &model.ProductPick{
		Product: shown[pick.Index],
		Reason:  pick.Reason,
	}
}

// compareSources partitions by source and templates a verdict. The comparison
// exists only when both partitions are non-empty, and the verdict only when
// both averages are positive.
func (a *AssistantUsecase) compareSources(products []model.Product) *model.SourceComparison {
	var internalSum, externalSum float64
	var internalCount, externalCount int
	for _, product := range products {
		if product.Source == model.SourceInternal {
			internalSum += product.Price
			internalCount++
		} else {
			externalSum += product.Price
			externalCount++
		}
	}
	if internalCount == 0 || externalCount == 0 {
		return nil
	}

	comparison := &model.SourceComparison{
		InternalAvg: internalSum / float64(internalCount),
		ExternalAvg: externalSum / float64(externalCount),
	}
	if comparison.InternalAvg <= 0 || comparison.ExternalAvg <= 0 {
		return comparison
	}

	diffPercent := int(math.Round(math.Abs(comparison.InternalAvg-comparison.ExternalAvg) / comparison.ExternalAvg * 100))
	switch {
	case diffPercent == 0:
		comparison.Verdict = msgSimilarPrices.Text(a.language)
	case comparison.InternalAvg < comparison.ExternalAvg:
		comparison.Verdict = msgInternalCheaper.Format(a.language, diffPercent)
	default:
		comparison.Verdict = msgEbayCheaper.Format(a.language, diffPercent)
	}
	return comparison
}

func sortedByPrice(products []model.Product) []model.Product {
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	return sorted
}
