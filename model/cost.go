package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Cost component names
const (
	ComponentStorage    = "storage"
	ComponentDisk       = "disk"
	ComponentCapacity   = "capacity"
	ComponentIOPS       = "iops"
	ComponentThroughput = "throughput"
)

// CostComponent is a single priced line item
type CostComponent struct {
	Name   string
	Amount decimal.Decimal
}

// CostBreakdown maps cost component names to their monthly amount in the
// target currency. Unpriced components are absent, never zero.
type CostBreakdown map[string]decimal.Decimal

// Add records a priced component
func (b CostBreakdown) Add(name string, amount decimal.Decimal) {
	b[name] = amount
}

// Total sums the priced components. The second return value is false when
// nothing was priced, which must be reported as unavailable rather than 0.
func (b CostBreakdown) Total() (decimal.Decimal, bool) {
	if len(b) == 0 {
		return decimal.Zero, false
	}

	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total, true
}

// Components returns the breakdown ordered by component name
func (b CostBreakdown) Components() []CostComponent {
	components := make([]CostComponent, 0, len(b))
	for name, amount := range b {
		components = append(components, CostComponent{Name: name, Amount: amount})
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].Name < components[j].Name
	})
	return components
}

// ScenarioCost is the outcome of pricing one resource under one scenario
type ScenarioCost struct {
	Scenario  string
	SKU       string
	Breakdown CostBreakdown
}

// Total is the scenario total, false when unavailable
func (s ScenarioCost) Total() (decimal.Decimal, bool) {
	return s.Breakdown.Total()
}

// Cell renders the total with precision decimals, or NotAvailable
func (s ScenarioCost) Cell(precision int32) string {
	total, ok := s.Total()
	if !ok {
		return NotAvailable
	}
	return total.StringFixed(precision)
}
