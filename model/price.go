package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Billing types reported by the retail catalog
const (
	BillingConsumption = "Consumption"
	BillingReservation = "Reservation"
)

// PriceFilter selects catalog records. MeterName and MinimumUnits are optional.
type PriceFilter struct {
	Region       string
	ProductName  string
	SKUName      string
	MeterName    string
	MinimumUnits *float64
}

// OData renders the filter as a retail prices $filter expression
func (f PriceFilter) OData() string {
	clauses := []string{
		fmt.Sprintf("armRegionName eq '%s'", escapeOData(f.Region)),
		fmt.Sprintf("productName eq '%s'", escapeOData(f.ProductName)),
		fmt.Sprintf("skuName eq '%s'", escapeOData(f.SKUName)),
	}
	if f.MeterName != "" {
		clauses = append(clauses, fmt.Sprintf("meterName eq '%s'", escapeOData(f.MeterName)))
	}
	if f.MinimumUnits != nil {
		clauses = append(clauses, fmt.Sprintf("tierMinimumUnits eq %s", decimal.NewFromFloat(*f.MinimumUnits).String()))
	}
	return strings.Join(clauses, " and ")
}

// String is used as the cache key and in log lines
func (f PriceFilter) String() string {
	return f.OData()
}

func escapeOData(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// PriceRecord is a single retail catalog entry
type PriceRecord struct {
	MeterName        string
	ProductName      string
	SKUName          string
	Region           string
	BillingType      string
	UnitPrice        decimal.Decimal
	Currency         string
	UnitOfMeasure    string
	TierMinimumUnits decimal.Decimal
}

// IsHourly reports whether the record is billed per hour
func (r PriceRecord) IsHourly() bool {
	return strings.Contains(strings.ToLower(r.UnitOfMeasure), "hour")
}
