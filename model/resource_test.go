package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRefUnmarshalAliases(t *testing.T) {
	input := `[
		{"storageAccountName": "acct1", "resourcegroup": "rg1", "subscription": "sub1"},
		{"diskname": "disk1", "resourceGroup": "rg2", "subscriptionId": "sub2"},
		{"name": "disk2", "resource_group": "rg3"}
	]`

	var refs []ResourceRef
	require.NoError(t, json.Unmarshal([]byte(input), &refs))
	require.Len(t, refs, 3)

	assert.Equal(t, ResourceRef{Name: "acct1", ResourceGroup: "rg1", Subscription: "sub1"}, refs[0])
	assert.Equal(t, ResourceRef{Name: "disk1", ResourceGroup: "rg2", Subscription: "sub2"}, refs[1])
	assert.Equal(t, ResourceRef{Name: "disk2", ResourceGroup: "rg3"}, refs[2])
	assert.Equal(t, "acct1|rg1", refs[0].Key())
}

func TestResourceRefValidate(t *testing.T) {
	assert.NoError(t, ResourceRef{Name: "a", ResourceGroup: "rg"}.Validate())

	err := ResourceRef{ResourceGroup: "rg"}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = ResourceRef{Name: "a"}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDescriptorSKUParts(t *testing.T) {
	tests := []struct {
		sku        string
		prefix     string
		redundancy string
		suffix     string
	}{
		{"Premium_LRS", "Premium", "LRS", "LRS"},
		{"StandardSSD_ZRS", "StandardSSD", "ZRS", "ZRS"},
		{"PremiumV2_LRS", "PremiumV2", "LRS", "LRS"},
		{"Standard_RAGZRS", "Standard", "RAGZRS", "RAGZRS"},
		{"UltraSSD", "UltraSSD", "LRS", "LRS"},
	}

	for _, tt := range tests {
		t.Run(tt.sku, func(t *testing.T) {
			d := ResourceDescriptor{SKU: tt.sku}
			prefix, redundancy := d.SKUParts()
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.redundancy, redundancy)
			assert.Equal(t, tt.suffix, d.RedundancySuffix())
		})
	}
}

func TestZoneRedundantSKU(t *testing.T) {
	assert.Equal(t, "Standard_ZRS", ResourceDescriptor{SKU: "Standard_LRS"}.ZoneRedundantSKU())
	assert.Equal(t, "Standard_ZRS", ResourceDescriptor{SKU: "Standard_ZRS"}.ZoneRedundantSKU())
	assert.Equal(t, "Standard_GZRS", ResourceDescriptor{SKU: "Standard_GZRS"}.ZoneRedundantSKU())
	assert.Equal(t, "Premium_ZRS", ResourceDescriptor{SKU: "Premium_LRS"}.ZoneRedundantSKU())
}
