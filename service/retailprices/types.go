package retailprices

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"go.uber.org/zap"
)

type service struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	maxPages   int
}

type retryingService struct {
	next   CatalogService
	policy retry.Policy
	logger *zap.Logger
}

type cachingService struct {
	next  CatalogService
	cache *PriceCache
}

// CatalogService queries the retail prices catalog. An empty result is a
// valid answer; errors wrapping model.ErrMalformedCatalog mean the payload
// could not be interpreted at all.
type CatalogService interface {
	Query(ctx context.Context, filter model.PriceFilter) ([]model.PriceRecord, error)
}

// PriceCache keeps catalog answers for a bounded time
type PriceCache struct {
	data  map[string]*cacheEntry
	ttl   time.Duration
	mutex sync.RWMutex
	now   func() time.Time
}

type cacheEntry struct {
	records   []model.PriceRecord
	expiresAt time.Time
}

// pricePage is one page of https://prices.azure.com/api/retail/prices.
// Items is a pointer so that a payload without it can be told apart from
// an empty page.
type pricePage struct {
	BillingCurrency string       `json:"BillingCurrency"`
	Items           *[]priceItem `json:"Items"`
	NextPageLink    string       `json:"NextPageLink"`
	Count           int          `json:"Count"`
}

type priceItem struct {
	CurrencyCode     string  `json:"currencyCode"`
	TierMinimumUnits float64 `json:"tierMinimumUnits"`
	RetailPrice      float64 `json:"retailPrice"`
	UnitPrice        float64 `json:"unitPrice"`
	ArmRegionName    string  `json:"armRegionName"`
	MeterName        string  `json:"meterName"`
	ProductName      string  `json:"productName"`
	SkuName          string  `json:"skuName"`
	ServiceName      string  `json:"serviceName"`
	UnitOfMeasure    string  `json:"unitOfMeasure"`
	Type             string  `json:"type"`
}
