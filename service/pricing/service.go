package pricing

import (
	"context"
	"errors"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retailprices"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Meter name fragments of the priced components
const (
	meterDataStored            = "Data Stored"
	meterProvisionedCapacity   = "Provisioned Capacity"
	meterProvisionedIOPS       = "Provisioned IOPS"
	meterProvisionedThroughput = "Provisioned Throughput"
)

func NewService(catalog retailprices.CatalogService, pricing config.PricingConfig, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		catalog: catalog,
		pricing: pricing,
		logger:  logger,
	}
}

// BlobPrice prices usageGB of blob data for an account kind at the given
// redundancy suffix (LRS, ZRS, ...)
func (s *service) BlobPrice(ctx context.Context, kind model.AccountKind, region, redundancy string, usageGB decimal.Decimal) (model.ScenarioCost, error) {
	filter := kind.Filter(region, redundancy)
	cost := newScenarioCost(kind.Scenario(), filter.SKUName)

	records, err := s.query(ctx, filter)
	if err != nil {
		return cost, err
	}

	if record, ok := SelectRecord(records, MeterRule{Contains: meterDataStored}); ok {
		cost.Breakdown.Add(model.ComponentStorage, s.perUnit(record, usageGB))
	}
	return cost, nil
}

// DiskPrice prices one month of a fixed size managed disk SKU such as "P10 LRS"
func (s *service) DiskPrice(ctx context.Context, region, product, sku string) (model.ScenarioCost, error) {
	cost := newScenarioCost("", sku)
	filter := model.PriceFilter{
		Region:      region,
		ProductName: product,
		SKUName:     sku,
	}

	records, err := s.query(ctx, filter)
	if err != nil {
		return cost, err
	}

	if record, ok := SelectRecord(records, MeterRule{Exact: sku + " Disk"}); ok {
		cost.Breakdown.Add(model.ComponentDisk, s.perUnit(record, decimal.NewFromInt(1)))
	}
	return cost, nil
}

// PremiumV2Price prices a Premium SSD v2 disk from its provisioned
// capacity, IOPS and throughput. IOPS and throughput up to the free tier
// are included with the capacity and cost nothing.
func (s *service) PremiumV2Price(ctx context.Context, region string, sizeGB, iops, throughputMBps int64) (model.ScenarioCost, error) {
	cost := newScenarioCost(model.ScenarioPremiumV2, premiumV2SKU)
	filter := model.PriceFilter{
		Region:      region,
		ProductName: ProductPremiumSSDv2,
		SKUName:     premiumV2SKU,
	}

	records, err := s.query(ctx, filter)
	if err != nil {
		return newScenarioCost(model.ScenarioPremiumV2, premiumV2SKU), err
	}

	if record, ok := SelectRecord(records, MeterRule{Contains: meterProvisionedCapacity, ConsumptionOnly: true}); ok {
		cost.Breakdown.Add(model.ComponentCapacity, s.provisioned(record, decimal.NewFromInt(sizeGB)))
	}

	records, err = s.query(ctx, filter)
	if err != nil {
		return newScenarioCost(model.ScenarioPremiumV2, premiumV2SKU), err
	}

	if record, ok := SelectRecord(records, MeterRule{Contains: meterProvisionedIOPS, ConsumptionOnly: true}); ok {
		billable := decimal.NewFromInt(iops).Sub(s.pricing.IOPSFreeTier)
		cost.Breakdown.Add(model.ComponentIOPS, s.provisioned(record, billable))
	}

	minimum := s.pricing.ThroughputFreeTier.InexactFloat64()
	filter.MinimumUnits = &minimum
	records, err = s.query(ctx, filter)
	if err != nil {
		return newScenarioCost(model.ScenarioPremiumV2, premiumV2SKU), err
	}

	if record, ok := SelectRecord(records, MeterRule{Contains: meterProvisionedThroughput, ConsumptionOnly: true}); ok {
		billable := decimal.NewFromInt(throughputMBps).Sub(s.pricing.ThroughputFreeTier)
		cost.Breakdown.Add(model.ComponentThroughput, s.provisioned(record, billable))
	}

	return cost, nil
}

// CompareBlob prices the account under every account kind, always on the
// zone-redundant variant of its SKU
func (s *service) CompareBlob(ctx context.Context, account model.ResourceDescriptor, usageGB decimal.Decimal) []model.ScenarioCost {
	pricingSKU := model.ResourceDescriptor{SKU: account.ZoneRedundantSKU()}
	redundancy := pricingSKU.RedundancySuffix()

	kinds := model.AccountKinds()
	costs := make([]model.ScenarioCost, 0, len(kinds))
	for _, kind := range kinds {
		cost, err := s.BlobPrice(ctx, kind, account.Region, redundancy, usageGB)
		s.logScenario(account.Name, cost, err)
		costs = append(costs, cost)
	}
	return costs
}

// CompareDisk prices the disk as configured, as the Standard SSD of the
// same size, and as a Premium SSD v2 with the same provisioned performance
func (s *service) CompareDisk(ctx context.Context, disk model.ResourceDescriptor) []model.ScenarioCost {
	skus := DiskScenarioSKUs(disk)

	var existing model.ScenarioCost
	var err error
	if skus.ExistingIsPremiumV2 {
		existing, err = s.PremiumV2Price(ctx, disk.Region, disk.CapacityGB, disk.IOPS, disk.ThroughputMBps)
	} else {
		existing, err = s.DiskPrice(ctx, disk.Region, skus.ExistingProduct, skus.Existing)
	}
	existing.Scenario = model.ScenarioExisting
	s.logScenario(disk.Name, existing, err)

	standard, err := s.DiskPrice(ctx, disk.Region, ProductStandardSSD, skus.Standard)
	standard.Scenario = model.ScenarioStandard
	s.logScenario(disk.Name, standard, err)

	premiumV2, err := s.PremiumV2Price(ctx, disk.Region, disk.CapacityGB, disk.IOPS, disk.ThroughputMBps)
	s.logScenario(disk.Name, premiumV2, err)

	return []model.ScenarioCost{existing, standard, premiumV2}
}

// query hides transient failures: once retries are exhausted the
// component is simply unpriced. Malformed payloads are returned.
func (s *service) query(ctx context.Context, filter model.PriceFilter) ([]model.PriceRecord, error) {
	records, err := s.catalog.Query(ctx, filter)
	if errors.Is(err, model.ErrMalformedCatalog) {
		return nil, err
	}
	if err != nil {
		s.logger.Warn("catalog query failed, component unpriced",
			zap.String("filter", filter.String()),
			zap.Error(err),
		)
		return nil, nil
	}
	return records, nil
}

// perUnit converts a catalog price for quantity units into the target
// currency, scaling hourly meters to a month
func (s *service) perUnit(record model.PriceRecord, quantity decimal.Decimal) decimal.Decimal {
	amount := record.UnitPrice.Mul(s.pricing.FXRate).Mul(quantity)
	if record.IsHourly() {
		amount = amount.Mul(s.pricing.HoursPerMonth)
	}
	return amount
}

// provisioned prices an hourly provisioned quantity for a month. Non
// positive quantities are within the free tier.
func (s *service) provisioned(record model.PriceRecord, quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return record.UnitPrice.Mul(s.pricing.FXRate).Mul(quantity).Mul(s.pricing.HoursPerMonth)
}

func (s *service) logScenario(resource string, cost model.ScenarioCost, err error) {
	if err != nil {
		s.logger.Error("scenario unavailable",
			zap.String("resource", resource),
			zap.String("scenario", cost.Scenario),
			zap.String("sku", cost.SKU),
			zap.Error(err),
		)
		return
	}

	if _, ok := cost.Total(); !ok {
		s.logger.Warn("no price found",
			zap.String("resource", resource),
			zap.String("scenario", cost.Scenario),
			zap.String("sku", cost.SKU),
		)
		return
	}

	for _, component := range cost.Breakdown.Components() {
		s.logger.Debug("priced component",
			zap.String("resource", resource),
			zap.String("scenario", cost.Scenario),
			zap.String("component", component.Name),
			zap.String("amount", component.Amount.String()),
		)
	}
}

func newScenarioCost(scenario, sku string) model.ScenarioCost {
	return model.ScenarioCost{
		Scenario:  scenario,
		SKU:       sku,
		Breakdown: model.CostBreakdown{},
	}
}
