package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

var ErrNoCatalogSource = errors.New("all catalog sources failed")

// CatalogUsecase is the gateway to the product service: the internal catalog
// endpoint and the eBay marketplace search it proxies.
type CatalogUsecase struct {
	cfg    config.Catalog
	client *http.Client
	log    *logrus.Logger
}

func NewCatalogUsecase(cfg config.Catalog, log *logrus.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		log:    log,
	}
}

// FetchCandidates returns the concatenation of whatever source branches
// succeeded. A failing branch contributes nothing; an error is returned only
// when every requested branch failed, and callers treat that as an empty
// candidate set rather than a hard failure.
func (c *CatalogUsecase) FetchCandidates(
	ctx context.Context, searchQuery string, source model.SourcePreference,
) ([]model.Product, error) {
	var (
		internalProducts []model.Product
		internalErr      error
		ebayProducts     []model.Product
		ebayErr          error
	)

	wantInternal := source == model.PreferInternal || source == model.PreferAll
	wantEbay := source == model.PreferExternal || source == model.PreferAll

	wg := conc.NewWaitGroup()
	if wantInternal {
		wg.Go(
			func() {
				internalProducts, internalErr = c.fetchInternal(ctx)
			},
		)
	}
	if wantEbay {
		wg.Go(
			func() {
				ebayProducts, ebayErr = c.searchEbay(ctx, searchQuery)
			},
		)
	}
	wg.Wait()

	if internalErr != nil {
		c.log.WithError(internalErr).Warn("internal catalog fetch failed")
	}
	if ebayErr != nil {
		c.log.WithError(ebayErr).Warn("ebay search failed")
	}

	failed := 0
	requested := 0
	if wantInternal {
		requested++
		if internalErr != nil {
			failed++
		}
	}
	if wantEbay {
		requested++
		if ebayErr != nil {
			failed++
		}
	}
	if requested > 0 && failed == requested {
		return nil, fmt.Errorf("%w: %v, %v", ErrNoCatalogSource, internalErr, ebayErr)
	}

	candidates := make([]model.Product, 0, len(internalProducts)+len(ebayProducts))
	candidates = append(candidates, internalProducts...)
	candidates = append(candidates, ebayProducts...)
	return candidates, nil
}

func (c *CatalogUsecase) fetchInternal(ctx context.Context) ([]model.Product, error) {
	body, err := c.getJSON(ctx, c.cfg.ProductServiceURL+"/products")
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err = json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal internal products: %w", err)
	}
	for i := range products {
		if products[i].Source == "" {
			products[i].Source = model.SourceInternal
		}
	}
	return products, nil
}

func (c *CatalogUsecase) searchEbay(ctx context.Context, searchQuery string) ([]model.Product, error) {
	searchURL := fmt.Sprintf(
		"%s/products/ebay/search?q=%s&limit=%d",
		c.cfg.ProductServiceURL, url.QueryEscape(searchQuery), c.cfg.EbaySearchLimit,
	)
	body, err := c.getJSON(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	// The search endpoint answers with either a raw item array or an object
	// wrapping an itemSummaries array.
	var items []model.EbayItem
	if err = json.Unmarshal(body, &items); err != nil {
		var wrapped struct {
			ItemSummaries []model.EbayItem `json:"itemSummaries"`
		}
		if err = json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ebay search response: %w", err)
		}
		items = wrapped.ItemSummaries
	}

	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		products = append(products, mapEbayItem(item))
	}
	return products, nil
}

func (c *CatalogUsecase) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func mapEbayItem(item model.EbayItem) model.Product {
	product := model.Product{
		ID:            "ebay-" + item.ItemID,
		EbayItemID:    item.ItemID,
		Name:          item.Title,
		Description:   item.ShortDescription,
		Currency:      "USD",
		CategoryName:  "eBay",
		StockQuantity: model.EbayStockSentinel,
		Source:        model.SourceEbay,
		ItemWebURL:    item.ItemWebURL,
		Condition:     item.Condition,
		Location:      "Unknown",
	}
	if product.Description == "" {
		product.Description = "No description available"
	}
	if item.Price != nil {
		if price, err := strconv.ParseFloat(item.Price.Value, 64); err == nil {
			product.Price = price
		}
		if item.Price.Currency != "" {
			product.Currency = item.Price.Currency
		}
	}
	if item.Image != nil {
		product.ImageURL = item.Image.ImageURL
	}
	for _, img := range item.AdditionalImages {
		product.AdditionalImages = append(product.AdditionalImages, img.ImageURL)
	}
	if len(item.Categories) > 0 && item.Categories[0].CategoryName != "" {
		product.CategoryName = item.Categories[0].CategoryName
	}
	if item.ItemLocation != nil {
		switch {
		case item.ItemLocation.City != "":
			product.Location = item.ItemLocation.City
		case item.ItemLocation.Country != "":
			product.Location = item.ItemLocation.Country
		}
	}
	return product
}
