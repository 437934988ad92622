package retailprices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultMaxPages = 20

// NewService returns a catalog client for baseURL, usually
// https://prices.azure.com/api/retail/prices
func NewService(baseURL string, timeout time.Duration, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		maxPages: defaultMaxPages,
	}
}

// NewFromConfig builds the cached, retried catalog client used by the
// comparison workflows
func NewFromConfig(cfg config.Config, logger *zap.Logger) CatalogService {
	client := NewService(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)
	retrying := NewRetryingService(client, retry.Policy{
		Attempts: cfg.Retry.Attempts,
		Delay:    cfg.Retry.Delay,
	}, logger)
	return NewCachingService(retrying, NewPriceCache(cfg.Catalog.CacheTTL))
}

// Query fetches every page matching filter
func (s *service) Query(ctx context.Context, filter model.PriceFilter) ([]model.PriceRecord, error) {
	params := url.Values{}
	params.Set("$filter", filter.OData())
	next := s.baseURL + "?" + params.Encode()

	var records []model.PriceRecord
	for page := 0; next != "" && page < s.maxPages; page++ {
		result, err := s.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}

		for _, item := range *result.Items {
			records = append(records, item.toRecord())
		}
		next = result.NextPageLink
	}

	s.logger.Debug("catalog query",
		zap.String("filter", filter.OData()),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func (s *service) fetchPage(ctx context.Context, pageURL string) (*pricePage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query retail prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("retail prices API returned status %d: %s", resp.StatusCode, body)
	}

	var page pricePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
			errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedCatalog, err)
		}
		return nil, fmt.Errorf("failed to read retail prices response: %w", err)
	}
	if page.Items == nil {
		return nil, fmt.Errorf("%w: response has no Items", model.ErrMalformedCatalog)
	}

	return &page, nil
}

func (i priceItem) toRecord() model.PriceRecord {
	return model.PriceRecord{
		MeterName:        i.MeterName,
		ProductName:      i.ProductName,
		SKUName:          i.SkuName,
		Region:           i.ArmRegionName,
		BillingType:      i.Type,
		UnitPrice:        decimal.NewFromFloat(i.RetailPrice),
		Currency:         i.CurrencyCode,
		UnitOfMeasure:    i.UnitOfMeasure,
		TierMinimumUnits: decimal.NewFromFloat(i.TierMinimumUnits),
	}
}
