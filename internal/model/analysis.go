package model

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// ProductPick is a product singled out by the analysis together with the
// reason it was picked.
type ProductPick struct {
	Product Product `json:"product"`
	Reason  string  `json:"reason"`
}

// SourceComparison holds the internal-vs-external price averages. Verdict is
// populated only when both averages are positive.
type SourceComparison struct {
	InternalAvg float64 `json:"internalAvg"`
	ExternalAvg float64 `json:"externalAvg"`
	Verdict     string  `json:"verdict,omitempty"`
}

// ProductAnalysis is derived entirely from the current turn's relevant product
// set and is never cached across turns.
type ProductAnalysis struct {
	PriceRange PriceRange        `json:"priceRange"`
	Cheapest   *ProductPick      `json:"cheapest,omitempty"`
	BestValue  *ProductPick      `json:"bestValue,omitempty"`
	Premium    *ProductPick      `json:"premium,omitempty"`
	Comparison *SourceComparison `json:"comparison,omitempty"`
}

// ChatReply is the sole contract the storefront UI depends on.
type ChatReply struct {
	Message  string           `json:"message"`
	Products []Product        `json:"products"`
	Analysis *ProductAnalysis `json:"analysis,omitempty"`
}
