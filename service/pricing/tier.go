package pricing

import "fmt"

// TierEntry maps every size up to MaxSizeGB to Label
type TierEntry struct {
	MaxSizeGB int64
	Label     string
}

// TierTable classifies disk sizes into named performance tiers. Entries
// are ascending by MaxSizeGB.
type TierTable struct {
	Prefix  string
	Entries []TierEntry
}

// Managed disk size breakpoints shared by the Premium and Standard SSD
// families, paired with the numeric part of the tier label
var ssdBreakpoints = []struct {
	maxSizeGB int64
	number    int
}{
	{4, 1}, {8, 2}, {16, 3}, {32, 4}, {64, 6}, {128, 10}, {256, 15},
	{512, 20}, {1024, 30}, {2048, 40}, {4096, 50}, {8192, 60}, {16384, 70}, {32767, 80},
}

var (
	// PremiumSSDTiers classifies Premium SSD sizes (P1..P80)
	PremiumSSDTiers = newSSDTierTable("P")

	// StandardSSDTiers classifies Standard SSD sizes (E1..E80)
	StandardSSDTiers = newSSDTierTable("E")

	// StandardHDDTiers classifies Standard HDD sizes (S4..S80)
	StandardHDDTiers = newHDDTierTable()
)

func newSSDTierTable(prefix string) TierTable {
	entries := make([]TierEntry, 0, len(ssdBreakpoints))
	for _, bp := range ssdBreakpoints {
		entries = append(entries, TierEntry{
			MaxSizeGB: bp.maxSizeGB,
			Label:     fmt.Sprintf("%s%d", prefix, bp.number),
		})
	}
	return TierTable{Prefix: prefix, Entries: entries}
}

// Standard HDD has no tiers below 32 GB
func newHDDTierTable() TierTable {
	table := newSSDTierTable("S")
	for i, entry := range table.Entries {
		if entry.MaxSizeGB >= 32 {
			table.Entries = table.Entries[i:]
			break
		}
	}
	return table
}

// Classify returns the label of the smallest tier that holds sizeGB, or
// "{prefix}{sizeGB}" when the size exceeds every breakpoint
func (t TierTable) Classify(sizeGB int64) string {
	if idx := t.Index(sizeGB); idx < len(t.Entries) {
		return t.Entries[idx].Label
	}
	return fmt.Sprintf("%s%d", t.Prefix, sizeGB)
}

// Index is the ordinal of the tier holding sizeGB, len(Entries) on overflow
func (t TierTable) Index(sizeGB int64) int {
	for i, entry := range t.Entries {
		if entry.MaxSizeGB >= sizeGB {
			return i
		}
	}
	return len(t.Entries)
}
