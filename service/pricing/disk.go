package pricing

import (
	"fmt"

	"github.com/elC0mpa/azure-storage-doctor/model"
)

// Managed disk SKU prefixes
const (
	DiskPremium     = "Premium"
	DiskPremiumV2   = "PremiumV2"
	DiskStandardSSD = "StandardSSD"
	DiskStandardHDD = "Standard"
)

// Managed disk catalog product names
const (
	ProductPremiumSSD   = "Premium SSD Managed Disks"
	ProductStandardSSD  = "Standard SSD Managed Disks"
	ProductStandardHDD  = "Standard HDD Managed Disks"
	ProductPremiumSSDv2 = "Azure Premium SSD v2"

	premiumV2SKU = "Premium LRS"
)

// DiskSKUs names the catalog entries compared for one disk
type DiskSKUs struct {
	// ExistingProduct and Existing price the disk as it is configured
	ExistingProduct string
	Existing        string
	// Standard prices the same size as a Standard SSD
	Standard string
	// ExistingIsPremiumV2 is set for disks that are already Premium SSD v2
	ExistingIsPremiumV2 bool
}

// DiskScenarioSKUs derives the catalog SKU names for a disk, e.g.
// Premium_LRS at 128 GB becomes "P10 LRS" and "E10 LRS"
func DiskScenarioSKUs(d model.ResourceDescriptor) DiskSKUs {
	prefix, redundancy := d.SKUParts()

	tier := d.Tier
	if tier == "" || tier == "?" {
		tier = classifyFamily(prefix, d.CapacityGB)
	}

	skus := DiskSKUs{
		ExistingProduct: ProductStandardSSD,
		Existing:        fmt.Sprintf("%s %s", prefix, redundancy),
		Standard:        fmt.Sprintf("%s %s", StandardSSDTiers.Classify(d.CapacityGB), redundancy),
	}

	switch prefix {
	case DiskPremium:
		skus.ExistingProduct = ProductPremiumSSD
		skus.Existing = fmt.Sprintf("%s %s", tier, redundancy)
	case DiskStandardSSD:
		skus.Existing = fmt.Sprintf("%s %s", tier, redundancy)
	case DiskStandardHDD:
		skus.ExistingProduct = ProductStandardHDD
		skus.Existing = fmt.Sprintf("%s %s", tier, redundancy)
	case DiskPremiumV2:
		skus.ExistingProduct = ProductPremiumSSDv2
		skus.Existing = premiumV2SKU
		skus.ExistingIsPremiumV2 = true
	}

	return skus
}

func classifyFamily(prefix string, sizeGB int64) string {
	switch prefix {
	case DiskPremium:
		return PremiumSSDTiers.Classify(sizeGB)
	case DiskStandardSSD:
		return StandardSSDTiers.Classify(sizeGB)
	case DiskStandardHDD:
		return StandardHDDTiers.Classify(sizeGB)
	}
	return prefix
}
