package model

type SourcePreference string

const (
	PreferInternal = SourcePreference("internal")
	PreferExternal = SourcePreference("external")
	PreferAll      = SourcePreference("all")
)

// Intent is the classifier's per-turn verdict. It is never persisted.
type Intent struct {
	IsFollowUp       bool             `json:"isFollowUp"`
	IsGeneralChat    bool             `json:"isGeneralChat"`
	WantsNewSearch   bool             `json:"wantsNewSearch"`
	ProductType      string           `json:"productType,omitempty"`
	SearchTerms      string           `json:"searchTerms,omitempty"`
	MaxPrice         float64          `json:"maxPrice,omitempty"`
	MinPrice         float64          `json:"minPrice,omitempty"`
	Exclude          []string         `json:"exclude,omitempty"`
	SourcePreference SourcePreference `json:"sourcePreference,omitempty"`
	FollowUpIntent   string           `json:"followUpIntent,omitempty"`
}

// NormalizedSource defaults an absent or unknown preference to all sources.
func (i Intent) NormalizedSource() SourcePreference {
	switch i.SourcePreference {
	case PreferInternal, PreferExternal:
		return i.SourcePreference
	default:
		return PreferAll
	}
}
