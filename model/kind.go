package model

import "fmt"

// AccountKind is the storage account kind reported by the inventory
type AccountKind string

const (
	KindStorage          AccountKind = "Storage"
	KindStorageV2        AccountKind = "StorageV2"
	KindBlockBlobStorage AccountKind = "BlockBlobStorage"
)

// BlobProduct names the catalog entries that price blob data for a kind.
// SKU and meter templates take the redundancy suffix.
type BlobProduct struct {
	ProductName string
	SKUFormat   string
	MeterFormat string
}

var blobProducts = map[AccountKind]BlobProduct{
	KindStorage: {
		ProductName: "General Block Blob",
		SKUFormat:   "Standard %s",
		MeterFormat: "%s Data Stored",
	},
	KindStorageV2: {
		ProductName: "General Block Blob v2",
		SKUFormat:   "Hot %s",
		MeterFormat: "Hot %s Data Stored",
	},
	KindBlockBlobStorage: {
		ProductName: "Premium Block Blob",
		SKUFormat:   "Premium %s",
		MeterFormat: "Premium %s Data Stored",
	},
}

// AccountKinds lists the kinds in report column order
func AccountKinds() []AccountKind {
	return []AccountKind{KindStorage, KindBlockBlobStorage, KindStorageV2}
}

// ParseAccountKind maps an inventory string onto a known kind
func ParseAccountKind(value string) (AccountKind, error) {
	kind := AccountKind(value)
	if _, ok := blobProducts[kind]; !ok {
		return "", fmt.Errorf("%w: unknown storage account kind %q", ErrInvalidInput, value)
	}
	return kind, nil
}

// BlobProduct returns the catalog naming for the kind
func (k AccountKind) BlobProduct() BlobProduct {
	return blobProducts[k]
}

// Filter builds the catalog filter for the kind at the given redundancy
func (k AccountKind) Filter(region, redundancy string) PriceFilter {
	product := k.BlobProduct()
	return PriceFilter{
		Region:      region,
		ProductName: product.ProductName,
		SKUName:     fmt.Sprintf(product.SKUFormat, redundancy),
		MeterName:   fmt.Sprintf(product.MeterFormat, redundancy),
	}
}

// Scenario is the report column priced with this kind's product
func (k AccountKind) Scenario() string {
	switch k {
	case KindStorage:
		return ScenarioStorageV1
	case KindBlockBlobStorage:
		return ScenarioBlockBlob
	case KindStorageV2:
		return ScenarioStorageV2
	}
	return string(k)
}
