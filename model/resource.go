package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AccountInfo represents the subscription a report was produced for
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}

// ResourceRef identifies one entry of the input resource list
type ResourceRef struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resourceGroup"`
	Subscription  string `json:"subscription"`
}

var (
	nameAliases          = []string{"name", "storageAccountName", "diskname", "diskName"}
	resourceGroupAliases = []string{"resourceGroup", "resourcegroup", "resource_group"}
	subscriptionAliases  = []string{"subscription", "subscriptionId", "subscription_id"}
)

// UnmarshalJSON accepts the field spellings produced by the various
// inventory exports (az cli, portal CSV conversions, hand-written lists).
func (r *ResourceRef) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	r.Name = firstString(raw, nameAliases)
	r.ResourceGroup = firstString(raw, resourceGroupAliases)
	r.Subscription = firstString(raw, subscriptionAliases)
	return nil
}

// Key is the progress store identity of the resource
func (r ResourceRef) Key() string {
	return RowKey(r.Name, r.ResourceGroup)
}

// Validate reports entries that cannot be looked up at all
func (r ResourceRef) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: resource name is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(r.ResourceGroup) == "" {
		return fmt.Errorf("%w: resource group is empty for %q", ErrInvalidInput, r.Name)
	}
	return nil
}

func firstString(raw map[string]any, keys []string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// ResourceDescriptor is the inventory view of a priced resource.
// Disk-only fields are zero for storage accounts.
type ResourceDescriptor struct {
	Name          string
	ResourceGroup string
	Subscription  string
	Region        string
	SKU           string // e.g. "Standard_ZRS", "Premium_LRS"
	Kind          string // account kind or disk SKU tier

	CapacityGB     int64
	Tier           string // explicit disk performance tier, e.g. "P30"
	IOPS           int64
	ThroughputMBps int64
}

// SKUParts splits the SKU at the first underscore into its tier prefix and
// redundancy. A SKU without an underscore is treated as locally redundant.
func (d ResourceDescriptor) SKUParts() (prefix, redundancy string) {
	prefix, redundancy, found := strings.Cut(d.SKU, "_")
	if !found || redundancy == "" {
		return prefix, DefaultRedundancy
	}
	return prefix, redundancy
}

// RedundancySuffix is the trailing redundancy token, "ZRS" for "Standard_ZRS"
func (d ResourceDescriptor) RedundancySuffix() string {
	if idx := strings.LastIndex(d.SKU, "_"); idx >= 0 && idx < len(d.SKU)-1 {
		return d.SKU[idx+1:]
	}
	return DefaultRedundancy
}

// ZoneRedundantSKU returns the SKU used for blob price comparison. Accounts
// are always compared on their zone-redundant variant; the reported
// redundancy column keeps the actual value.
func (d ResourceDescriptor) ZoneRedundantSKU() string {
	if strings.HasSuffix(d.SKU, "ZRS") {
		return d.SKU
	}
	prefix, _, _ := strings.Cut(d.SKU, "_")
	return prefix + "_ZRS"
}

// DefaultRedundancy applies to SKUs that carry no redundancy suffix
const DefaultRedundancy = "LRS"
