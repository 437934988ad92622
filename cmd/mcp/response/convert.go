package response

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/azure/resourceid"
	"github.com/shopspring/decimal"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertScenarioCosts renders the scenario costs with precision decimals
// and names the cheapest priced scenario
func ConvertScenarioCosts(costs []model.ScenarioCost, precision int32) ([]ScenarioPrice, string) {
	result := make([]ScenarioPrice, 0, len(costs))
	cheapest := ""
	var lowest decimal.Decimal

	for _, cost := range costs {
		price := ScenarioPrice{
			Scenario: cost.Scenario,
			SKU:      cost.SKU,
		}

		if total, ok := cost.Total(); ok {
			price.Available = true
			price.Total = total.StringFixed(precision)
			price.Components = make(map[string]string, len(cost.Breakdown))
			for _, component := range cost.Breakdown.Components() {
				price.Components[component.Name] = component.Amount.StringFixed(precision)
			}

			if cheapest == "" || total.LessThan(lowest) {
				cheapest = cost.Scenario
				lowest = total
			}
		}

		result = append(result, price)
	}

	return result, cheapest
}

// ConvertPriceRecords converts catalog records to response format
func ConvertPriceRecords(records []model.PriceRecord) []CatalogPrice {
	result := make([]CatalogPrice, 0, len(records))
	for _, r := range records {
		result = append(result, CatalogPrice{
			MeterName:        r.MeterName,
			ProductName:      r.ProductName,
			SKUName:          r.SKUName,
			Region:           r.Region,
			BillingType:      r.BillingType,
			UnitOfMeasure:    r.UnitOfMeasure,
			UnitPrice:        r.UnitPrice.String(),
			Currency:         r.Currency,
			TierMinimumUnits: r.TierMinimumUnits.String(),
		})
	}
	return result
}

// ConvertUnattachedDisks converts ARM disks to response format
func ConvertUnattachedDisks(disks []*armcompute.Disk) []UnattachedDisk {
	result := make([]UnattachedDisk, 0, len(disks))
	for _, d := range disks {
		if d == nil || d.ID == nil {
			continue
		}

		disk := UnattachedDisk{
			ID:            *d.ID,
			Name:          resourceid.Name(*d.ID),
			ResourceGroup: resourceid.ResourceGroup(*d.ID),
		}
		if d.Location != nil {
			disk.Region = *d.Location
		}
		if d.SKU != nil && d.SKU.Name != nil {
			disk.SKU = string(*d.SKU.Name)
		}
		if d.Properties != nil && d.Properties.DiskSizeGB != nil {
			disk.SizeGB = *d.Properties.DiskSizeGB
		}

		result = append(result, disk)
	}
	return result
}
