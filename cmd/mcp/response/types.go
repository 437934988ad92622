package response

// AccountInfo represents the subscription identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// AzureSubscription represents Azure subscription details
type AzureSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// UnattachedDisk represents a managed disk that no VM uses
type UnattachedDisk struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	SizeGB        int32  `json:"size_gb"`
	SKU           string `json:"sku"`
	Region        string `json:"region"`
}

// ScenarioPrice is the monthly cost of one pricing scenario. Amounts are
// decimal strings; Total is empty when the scenario could not be priced.
type ScenarioPrice struct {
	Scenario   string            `json:"scenario"`
	SKU        string            `json:"sku,omitempty"`
	Available  bool              `json:"available"`
	Total      string            `json:"total,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

// PriceComparison is the result of pricing one resource under every scenario
type PriceComparison struct {
	Resource      string          `json:"resource"`
	ResourceGroup string          `json:"resource_group,omitempty"`
	Region        string          `json:"region"`
	Kind          string          `json:"kind,omitempty"`
	SKU           string          `json:"sku"`
	UsageGB       string          `json:"usage_gb,omitempty"`
	Currency      string          `json:"currency"`
	Scenarios     []ScenarioPrice `json:"scenarios"`
	Cheapest      string          `json:"cheapest,omitempty"`
}

// CatalogPrice is a single retail catalog entry
type CatalogPrice struct {
	MeterName        string `json:"meter_name"`
	ProductName      string `json:"product_name"`
	SKUName          string `json:"sku_name"`
	Region           string `json:"region"`
	BillingType      string `json:"billing_type"`
	UnitOfMeasure    string `json:"unit_of_measure"`
	UnitPrice        string `json:"unit_price"`
	Currency         string `json:"currency"`
	TierMinimumUnits string `json:"tier_minimum_units"`
}
