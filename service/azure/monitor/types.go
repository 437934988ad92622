package azuremonitor

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	newClient    func(subscriptionID string) (metricsAPI, error)
	clients      map[string]metricsAPI
	mu           sync.Mutex
	subscription string
	usage        config.UsageConfig
	policy       retry.Policy
	logger       *zap.Logger
}

// metricsAPI is the part of armmonitor.MetricsClient the gateway uses
type metricsAPI interface {
	List(ctx context.Context, resourceURI string, options *armmonitor.MetricsClientListOptions) (armmonitor.MetricsClientListResponse, error)
}

// UsageService reports how much data a storage account holds
type UsageService interface {
	// GetUsedCapacityGB never fails; it returns the configured fallback
	// when no sample is available
	GetUsedCapacityGB(ctx context.Context, ref model.ResourceRef) decimal.Decimal
}
