package azuremonitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/azure/resourceid"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var bytesPerGB = decimal.NewFromInt(1024 * 1024 * 1024)

var errNoSample = errors.New("no usage sample")

func NewService(credential azcore.TokenCredential, cfg config.Config, logger *zap.Logger) *service {
	return newService(func(subscriptionID string) (metricsAPI, error) {
		client, err := armmonitor.NewMetricsClient(subscriptionID, credential, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics client: %w", err)
		}
		return client, nil
	}, cfg, logger)
}

func newService(newClient func(string) (metricsAPI, error), cfg config.Config, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		newClient:    newClient,
		clients:      make(map[string]metricsAPI),
		subscription: cfg.Subscription,
		usage:        cfg.Usage,
		policy: retry.Policy{
			Attempts: cfg.Retry.Attempts,
			Delay:    cfg.Retry.Delay,
		},
		logger: logger,
	}
}

// GetUsedCapacityGB returns the latest average of the capacity metric in GB
func (s *service) GetUsedCapacityGB(ctx context.Context, ref model.ResourceRef) decimal.Decimal {
	usage, err := s.usedCapacity(ctx, ref)
	if err != nil {
		s.logger.Warn("using fallback capacity",
			zap.String("account", ref.Name),
			zap.String("fallback_gb", s.usage.FallbackGB.String()),
			zap.Error(err),
		)
		return s.usage.FallbackGB
	}
	return usage
}

func (s *service) usedCapacity(ctx context.Context, ref model.ResourceRef) (decimal.Decimal, error) {
	subscriptionID := ref.Subscription
	if subscriptionID == "" {
		subscriptionID = s.subscription
	}

	client, err := s.client(subscriptionID)
	if err != nil {
		return decimal.Zero, err
	}

	resourceURI := resourceid.StorageAccount(subscriptionID, ref.ResourceGroup, ref.Name)
	options := &armmonitor.MetricsClientListOptions{
		Metricnames: to.Ptr(s.usage.Metric),
		Interval:    to.Ptr(s.usage.Interval),
		Aggregation: to.Ptr(string(armmonitor.AggregationTypeAverage)),
	}

	outcome := retry.Do(ctx, s.policy, s.logger, "metrics "+ref.Name, func(ctx context.Context) (float64, error) {
		resp, err := client.List(ctx, resourceURI, options)
		if err != nil {
			return 0, resourceid.Classify(err)
		}

		average, ok := latestAverage(resp.Response)
		if !ok {
			return 0, retry.ErrEmpty
		}
		return average, nil
	})
	if !outcome.Ok() {
		if outcome.Empty() {
			return decimal.Zero, errNoSample
		}
		return decimal.Zero, outcome.Err
	}

	return decimal.NewFromFloat(outcome.Value).Div(bytesPerGB), nil
}

// latestAverage picks the newest non-null average of the first series.
// Samples are returned in chronological order.
func latestAverage(resp armmonitor.Response) (float64, bool) {
	if len(resp.Value) == 0 || resp.Value[0] == nil || len(resp.Value[0].Timeseries) == 0 {
		return 0, false
	}
	series := resp.Value[0].Timeseries[0]
	if series == nil {
		return 0, false
	}

	for i := len(series.Data) - 1; i >= 0; i-- {
		if point := series.Data[i]; point != nil && point.Average != nil {
			return *point.Average, true
		}
	}
	return 0, false
}

func (s *service) client(subscriptionID string) (metricsAPI, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("%w: no subscription given", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[subscriptionID]; ok {
		return client, nil
	}

	client, err := s.newClient(subscriptionID)
	if err != nil {
		return nil, err
	}
	s.clients[subscriptionID] = client
	return client, nil
}
