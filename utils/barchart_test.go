package utils

import (
	"bytes"
	"testing"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioTotals(t *testing.T) {
	rows := []model.ResultRow{
		{Prices: []string{"1.50", "N/A", "2.00"}},
		{Prices: []string{"2.25", "N/A", "3.00"}},
		model.ReportBlob.UnavailableRow("x", "rg"),
	}

	totals := ScenarioTotals(model.ReportBlob, rows)
	require.Len(t, totals, 3)

	assert.Equal(t, model.ScenarioStorageV1, totals[0].Scenario)
	assert.True(t, totals[0].Amount.Equal(decimal.RequireFromString("3.75")))
	assert.Equal(t, 2, totals[0].Priced)

	assert.Equal(t, model.ScenarioBlockBlob, totals[1].Scenario)
	assert.Equal(t, 0, totals[1].Priced)
	assert.Equal(t, "BlockBlob: N/A", getBarLabel(totals[1], "GBP", 2))

	assert.Equal(t, "Storage_V2: 5.00 GBP", getBarLabel(totals[2], "GBP", 2))
}

func TestAssignRankedColors(t *testing.T) {
	totals := []ScenarioTotal{
		{Scenario: "a", Amount: decimal.NewFromInt(5)},
		{Scenario: "b", Amount: decimal.NewFromInt(50)},
		{Scenario: "c", Amount: decimal.NewFromInt(1)},
	}

	assert.Equal(t, []string{ColorRank2, ColorRank1, ColorRank3}, assignRankedColors(totals))
}

func TestDrawScenarioChart(t *testing.T) {
	rows := []model.ResultRow{{Prices: []string{"1.000000", "2.000000", "N/A"}}}

	var out bytes.Buffer
	DrawScenarioChart(&out, model.ReportDisk, "GBP", rows)

	assert.Contains(t, out.String(), "SCENARIO TOTALS")
}
