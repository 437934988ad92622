package service

import (
	"context"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/shopspring/decimal"
)

// IdentityService provides subscription identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context, subscriptionID string) (*model.AccountInfo, error)
}

// AccountInventory resolves storage accounts. Lookup failures wrap
// model.ErrResourceUnavailable.
type AccountInventory interface {
	GetStorageAccount(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error)
}

// DiskInventory resolves managed disks. Lookup failures wrap
// model.ErrResourceUnavailable.
type DiskInventory interface {
	GetDisk(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error)
}

// UsageService reports stored data of a storage account
type UsageService interface {
	GetUsedCapacityGB(ctx context.Context, ref model.ResourceRef) decimal.Decimal
}

// ScenarioPricer prices a resource under every scenario of its report
type ScenarioPricer interface {
	CompareBlob(ctx context.Context, account model.ResourceDescriptor, usageGB decimal.Decimal) []model.ScenarioCost
	CompareDisk(ctx context.Context, disk model.ResourceDescriptor) []model.ScenarioCost
}

// PriceCatalog answers retail price queries
type PriceCatalog interface {
	Query(ctx context.Context, filter model.PriceFilter) ([]model.PriceRecord, error)
}
