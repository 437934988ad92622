package pricing

import (
	"context"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retailprices"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	catalog retailprices.CatalogService
	pricing config.PricingConfig
	logger  *zap.Logger
}

// PricingService turns catalog prices into monthly costs. The single
// scenario methods only return errors for malformed catalog payloads;
// the Compare methods never fail and report such scenarios as unpriced.
type PricingService interface {
	BlobPrice(ctx context.Context, kind model.AccountKind, region, redundancy string, usageGB decimal.Decimal) (model.ScenarioCost, error)
	DiskPrice(ctx context.Context, region, product, sku string) (model.ScenarioCost, error)
	PremiumV2Price(ctx context.Context, region string, sizeGB, iops, throughputMBps int64) (model.ScenarioCost, error)

	CompareBlob(ctx context.Context, account model.ResourceDescriptor, usageGB decimal.Decimal) []model.ScenarioCost
	CompareDisk(ctx context.Context, disk model.ResourceDescriptor) []model.ScenarioCost
}
