package pricing

import (
	"strings"

	"github.com/elC0mpa/azure-storage-doctor/model"
)

// MeterRule picks the record that prices one cost component
type MeterRule struct {
	// Contains is a required meter name substring
	Contains string
	// Exact, when set, must equal the meter name
	Exact string
	// ConsumptionOnly skips reservation and other billing models
	ConsumptionOnly bool
}

// Matches reports whether record satisfies the rule
func (r MeterRule) Matches(record model.PriceRecord) bool {
	if r.ConsumptionOnly && record.BillingType != model.BillingConsumption {
		return false
	}
	if r.Exact != "" && record.MeterName != r.Exact {
		return false
	}
	return strings.Contains(record.MeterName, r.Contains)
}

// SelectRecord returns the first record matching rule
func SelectRecord(records []model.PriceRecord, rule MeterRule) (model.PriceRecord, bool) {
	for _, record := range records {
		if rule.Matches(record) {
			return record, true
		}
	}
	return model.PriceRecord{}, false
}
