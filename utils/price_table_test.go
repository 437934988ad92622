package utils

import (
	"bytes"
	"testing"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDrawPriceRecords(t *testing.T) {
	filter := model.PriceFilter{Region: "uksouth", ProductName: "Premium SSD Managed Disks", SKUName: "P10 LRS"}
	records := []model.PriceRecord{{
		MeterName:     "P10 LRS Disk",
		SKUName:       "P10 LRS",
		BillingType:   model.BillingConsumption,
		UnitOfMeasure: "1/Month",
		UnitPrice:     decimal.RequireFromString("18.69"),
		Currency:      "USD",
	}}

	var out bytes.Buffer
	DrawPriceRecords(&out, filter, records)

	assert.Contains(t, out.String(), "skuName eq 'P10 LRS'")
	assert.Contains(t, out.String(), "P10 LRS Disk")
	assert.Contains(t, out.String(), "18.69 USD")
}

func TestDrawPriceRecordsEmpty(t *testing.T) {
	var out bytes.Buffer
	DrawPriceRecords(&out, model.PriceFilter{Region: "uksouth"}, nil)

	assert.Contains(t, out.String(), "no matching prices")
}
