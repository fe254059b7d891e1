package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/sirupsen/logrus"
)

func newTestCatalog(serverURL string) *CatalogUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCatalogUsecase(
		config.Catalog{
			ProductServiceURL: serverURL,
			EbaySearchLimit:   50,
			RequestTimeout:    2 * time.Second,
		}, log,
	)
}

func newProductService(t *testing.T, internal http.HandlerFunc, ebay http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", internal)
	mux.HandleFunc("/products/ebay/search", ebay)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func serveJSON(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}
}

func serveStatus(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

const internalPayload = `[
	{"id": "p1", "nom": "Casque audio", "prix": 59.99, "currency": "EUR", "categoryName": "electronics", "stockQuantity": 12},
	{"id": "p2", "nom": "Enceinte portable", "prix": 89.5, "currency": "EUR", "categoryName": "electronics", "stockQuantity": 3}
]`

const ebayWrappedPayload = `{
	"itemSummaries": [
		{
			"itemId": "v1|123|0",
			"title": "Wireless Headphones",
			"price": {"value": "45.00", "currency": "USD"},
			"condition": "NEW",
			"itemWebUrl": "https://ebay.example/item/123",
			"image": {"imageUrl": "https://ebay.example/img/123.jpg"},
			"categories": [{"categoryName": "Consumer Electronics"}],
			"itemLocation": {"city": "Berlin", "country": "DE"}
		}
	]
}`

const ebayRawPayload = `[
	{"itemId": "v1|456|0", "title": "Studio Monitors", "price": {"value": "150.50", "currency": "USD"}}
]`

func TestFetchCandidatesMergesBothSources(t *testing.T) {
	server := newProductService(t, serveJSON(internalPayload), serveJSON(ebayWrappedPayload))
	catalog := newTestCatalog(server.URL)

	candidates, err := catalog.FetchCandidates(context.Background(), "headphones", model.PreferAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.Name != "Casque audio" || first.Price != 59.99 {
		t.Errorf("internal wire names not decoded: %+v", first)
	}
	if first.Source != model.SourceInternal {
		t.Errorf("expected internal source default, got %q", first.Source)
	}

	ebayProduct := candidates[2]
	if ebayProduct.ID != "ebay-v1|123|0" || ebayProduct.EbayItemID != "v1|123|0" {
		t.Errorf("unexpected ebay identity: %+v", ebayProduct)
	}
	if ebayProduct.Price != 45 || ebayProduct.Currency != "USD" {
		t.Errorf("unexpected ebay price mapping: %+v", ebayProduct)
	}
	if ebayProduct.StockQuantity != model.EbayStockSentinel {
		t.Errorf("expected stock sentinel %d, got %d", model.EbayStockSentinel, ebayProduct.StockQuantity)
	}
	if ebayProduct.CategoryName != "Consumer Electronics" || ebayProduct.Location != "Berlin" {
		t.Errorf("unexpected category/location mapping: %+v", ebayProduct)
	}
	if ebayProduct.Source != model.SourceEbay {
		t.Errorf("expected ebay source, got %q", ebayProduct.Source)
	}
}

func TestSearchEbayAcceptsRawArrayShape(t *testing.T) {
	server := newProductService(t, serveStatus(http.StatusInternalServerError), serveJSON(ebayRawPayload))
	catalog := newTestCatalog(server.URL)

	candidates, err := catalog.FetchCandidates(context.Background(), "monitors", model.PreferExternal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Name != "Studio Monitors" || candidates[0].Price != 150.50 {
		t.Errorf("unexpected candidate: %+v", candidates[0])
	}
	if candidates[0].Description != "No description available" {
		t.Errorf("expected description default, got %q", candidates[0].Description)
	}
	if candidates[0].Location != "Unknown" {
		t.Errorf("expected location default, got %q", candidates[0].Location)
	}
}

func TestFetchCandidatesSurvivesOneFailedBranch(t *testing.T) {
	server := newProductService(t, serveJSON(internalPayload), serveStatus(http.StatusBadGateway))
	catalog := newTestCatalog(server.URL)

	candidates, err := catalog.FetchCandidates(context.Background(), "headphones", model.PreferAll)
	if err != nil {
		t.Fatalf("expected partial result, got error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected internal products only, got %d", len(candidates))
	}
	for _, candidate := range candidates {
		if candidate.Source != model.SourceInternal {
			t.Errorf("expected internal-only candidates, got %+v", candidate)
		}
	}
}

func TestFetchCandidatesErrorsWhenAllBranchesFail(t *testing.T) {
	server := newProductService(t, serveStatus(http.StatusInternalServerError), serveStatus(http.StatusInternalServerError))
	catalog := newTestCatalog(server.URL)

	_, err := catalog.FetchCandidates(context.Background(), "headphones", model.PreferAll)
	if !errors.Is(err, ErrNoCatalogSource) {
		t.Fatalf("expected ErrNoCatalogSource, got %v", err)
	}
}

func TestFetchCandidatesHonorsSourcePreference(t *testing.T) {
	var ebayCalled bool
	ebay := func(w http.ResponseWriter, r *http.Request) {
		ebayCalled = true
		serveJSON(ebayWrappedPayload)(w, r)
	}
	server := newProductService(t, serveJSON(internalPayload), ebay)
	catalog := newTestCatalog(server.URL)

	candidates, err := catalog.FetchCandidates(context.Background(), "headphones", model.PreferInternal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ebayCalled {
		t.Error("internal-only preference must not hit the ebay endpoint")
	}
	if len(candidates) != 2 {
		t.Errorf("expected 2 internal candidates, got %d", len(candidates))
	}
}

func TestSearchEbayPassesQueryAndLimit(t *testing.T) {
	var gotQuery, gotLimit string
	ebay := func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		serveJSON(ebayRawPayload)(w, r)
	}
	server := newProductService(t, serveJSON(internalPayload), ebay)
	catalog := newTestCatalog(server.URL)

	if _, err := catalog.FetchCandidates(context.Background(), "gaming laptop", model.PreferExternal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "gaming laptop" {
		t.Errorf("expected query 'gaming laptop', got %q", gotQuery)
	}
	if gotLimit != "50" {
		t.Errorf("expected limit '50', got %q", gotLimit)
	}
}
