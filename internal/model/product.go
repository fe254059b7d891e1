package model

type ProductSource string

const (
	SourceInternal = ProductSource("INTERNAL")
	SourceEbay     = ProductSource("EBAY")
)

// EbayStockSentinel marks external items as always purchasable; eBay does not
// expose stock counts through the search endpoint.
const EbayStockSentinel = 999

// Product mirrors the storefront backend contract, which keeps the original
// French field names (nom, prix) on the wire.
type Product struct {
	ID               string        `json:"id"`
	Name             string        `json:"nom"`
	Description      string        `json:"description"`
	Price            float64       `json:"prix"`
	Currency         string        `json:"currency,omitempty"`
	ImageURL         string        `json:"imageUrl,omitempty"`
	AdditionalImages []string      `json:"additionalImages,omitempty"`
	CategoryName     string        `json:"categoryName,omitempty"`
	StockQuantity    int           `json:"stockQuantity"`
	Source           ProductSource `json:"source"`
	EbayItemID       string        `json:"ebayItemId,omitempty"`
	ItemWebURL       string        `json:"itemWebUrl,omitempty"`
	Condition        string        `json:"condition,omitempty"`
	Location         string        `json:"location,omitempty"`
}

// EbayItem is the raw shape returned by the marketplace search endpoint.
type EbayItem struct {
	ItemID           string `json:"itemId"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Price            *struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"price,omitempty"`
	Image *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image,omitempty"`
	AdditionalImages []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"additionalImages,omitempty"`
	Categories []struct {
		CategoryName string `json:"categoryName"`
	} `json:"categories,omitempty"`
	ItemWebURL   string `json:"itemWebUrl"`
	Condition    string `json:"condition,omitempty"`
	ItemLocation *struct {
		City    string `json:"city,omitempty"`
		Country string `json:"country,omitempty"`
	} `json:"itemLocation,omitempty"`
}
