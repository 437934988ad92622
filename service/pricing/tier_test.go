package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		table  TierTable
		sizeGB int64
		want   string
	}{
		{PremiumSSDTiers, 1, "P1"},
		{PremiumSSDTiers, 4, "P1"},
		{PremiumSSDTiers, 5, "P2"},
		{PremiumSSDTiers, 128, "P10"},
		{PremiumSSDTiers, 129, "P15"},
		{PremiumSSDTiers, 1024, "P30"},
		{PremiumSSDTiers, 32767, "P80"},
		{PremiumSSDTiers, 40000, "P40000"},
		{StandardSSDTiers, 64, "E6"},
		{StandardSSDTiers, 128, "E10"},
		{StandardSSDTiers, 32768, "E32768"},
		{StandardHDDTiers, 8, "S4"},
		{StandardHDDTiers, 128, "S10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.table.Classify(tt.sizeGB), "%s tier for %d GB", tt.table.Prefix, tt.sizeGB)
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	for _, table := range []TierTable{PremiumSSDTiers, StandardSSDTiers, StandardHDDTiers} {
		previous := table.Index(0)
		for size := int64(1); size <= 40000; size++ {
			idx := table.Index(size)
			if idx < previous {
				t.Fatalf("%s: tier index dropped from %d to %d at %d GB", table.Prefix, previous, idx, size)
			}
			previous = idx
		}
		assert.Equal(t, len(table.Entries), table.Index(40000))
	}
}

func TestTablesShareBreakpoints(t *testing.T) {
	assert.Len(t, PremiumSSDTiers.Entries, 14)
	assert.Len(t, StandardSSDTiers.Entries, 14)
	for i := range PremiumSSDTiers.Entries {
		assert.Equal(t, PremiumSSDTiers.Entries[i].MaxSizeGB, StandardSSDTiers.Entries[i].MaxSizeGB)
	}
	assert.Equal(t, "S4", StandardHDDTiers.Entries[0].Label)
}
