package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBreakdownTotal(t *testing.T) {
	empty := CostBreakdown{}
	_, ok := empty.Total()
	assert.False(t, ok, "an empty breakdown is unavailable, not zero")

	b := CostBreakdown{}
	b.Add(ComponentCapacity, decimal.RequireFromString("10.5"))
	b.Add(ComponentIOPS, decimal.Zero)
	total, ok := b.Total()
	assert.True(t, ok)
	assert.True(t, total.Equal(decimal.RequireFromString("10.5")))

	components := b.Components()
	assert.Equal(t, ComponentCapacity, components[0].Name)
	assert.Equal(t, ComponentIOPS, components[1].Name)
}

func TestPriceFilterOData(t *testing.T) {
	minimum := 125.0
	f := PriceFilter{
		Region:       "uksouth",
		ProductName:  "Azure Premium SSD v2",
		SKUName:      "Premium LRS",
		MeterName:    "Provisioned Throughput",
		MinimumUnits: &minimum,
	}
	assert.Equal(t,
		"armRegionName eq 'uksouth' and productName eq 'Azure Premium SSD v2' and skuName eq 'Premium LRS' and meterName eq 'Provisioned Throughput' and tierMinimumUnits eq 125",
		f.OData())

	plain := PriceFilter{Region: "uksouth", ProductName: "O'Brien", SKUName: "P10 LRS"}
	assert.Equal(t, "armRegionName eq 'uksouth' and productName eq 'O''Brien' and skuName eq 'P10 LRS'", plain.OData())
}

func TestAccountKindFilter(t *testing.T) {
	f := KindStorageV2.Filter("uksouth", "ZRS")
	assert.Equal(t, "General Block Blob v2", f.ProductName)
	assert.Equal(t, "Hot ZRS", f.SKUName)
	assert.Equal(t, "Hot ZRS Data Stored", f.MeterName)

	f = KindStorage.Filter("uksouth", "LRS")
	assert.Equal(t, "Standard LRS", f.SKUName)
	assert.Equal(t, "LRS Data Stored", f.MeterName)

	_, err := ParseAccountKind("FileStorage")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportCells(t *testing.T) {
	row := ReportDisk.UnavailableRow("disk1", "rg1")
	assert.Equal(t, []string{"disk1", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A"}, ReportDisk.Cells(row))
	assert.Len(t, ReportDisk.Headers("GBP"), 8)

	blobRow := ReportBlob.UnavailableRow("acct", "rg")
	assert.Equal(t, []string{"acct", "rg", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A"}, ReportBlob.Cells(blobRow))
	assert.Equal(t, "Storage_V1_(GBP)", ReportBlob.Headers("GBP")[5])
}
