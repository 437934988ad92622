package model

import (
	"fmt"
	"strings"
)

// NotAvailable is the cell value of anything that could not be priced or fetched
const NotAvailable = "N/A"

// ReportKind selects the resource type being compared
type ReportKind string

const (
	ReportBlob ReportKind = "blob"
	ReportDisk ReportKind = "disk"
)

// Scenario names, in column order
const (
	ScenarioStorageV1 = "Storage_V1"
	ScenarioBlockBlob = "BlockBlob"
	ScenarioStorageV2 = "Storage_V2"

	ScenarioExisting  = "Existing"
	ScenarioStandard  = "Standard"
	ScenarioPremiumV2 = "PremiumV2"
)

// ParseReportKind validates a report name given on the command line
func ParseReportKind(value string) (ReportKind, error) {
	switch kind := ReportKind(strings.ToLower(value)); kind {
	case ReportBlob, ReportDisk:
		return kind, nil
	}
	return "", fmt.Errorf("%w: unknown report %q", ErrInvalidInput, value)
}

// Scenarios lists the priced scenarios of the report
func (k ReportKind) Scenarios() []string {
	if k == ReportDisk {
		return []string{ScenarioExisting, ScenarioStandard, ScenarioPremiumV2}
	}
	return []string{ScenarioStorageV1, ScenarioBlockBlob, ScenarioStorageV2}
}

// AttributeCount is the number of descriptive columns between identity and prices
func (k ReportKind) AttributeCount() int {
	if k == ReportDisk {
		return 4
	}
	return 3
}

// PricePrecision is the number of decimals rendered for price cells
func (k ReportKind) PricePrecision() int32 {
	if k == ReportDisk {
		return 6
	}
	return 2
}

// Headers returns the table header for the report
func (k ReportKind) Headers(currency string) []string {
	if k == ReportDisk {
		return []string{"Disk_Name", "Size_GB", "SKU", "IOPS", "Throughput_MBps", "Existing_Price", "Standard_Price", "PremiumV2_Price"}
	}
	return []string{
		"Account_Name", "Resource_Group", "Kind", "Redundancy", "Region",
		fmt.Sprintf("Storage_V1_(%s)", currency),
		fmt.Sprintf("BlockBlob_(%s)", currency),
		fmt.Sprintf("Storage_V2_(%s)", currency),
	}
}

// Cells lays out a row in header order. The disk report omits the
// resource group column.
func (k ReportKind) Cells(row ResultRow) []string {
	cells := []string{row.Name}
	if k != ReportDisk {
		cells = append(cells, row.ResourceGroup)
	}
	cells = append(cells, row.Attributes...)
	return append(cells, row.Prices...)
}

// ResultRow is one resource's entry in the comparison
type ResultRow struct {
	Name          string   `json:"name"`
	ResourceGroup string   `json:"resourceGroup"`
	Attributes    []string `json:"attributes"`
	Prices        []string `json:"prices"`
}

// Key is the progress store identity of the row
func (r ResultRow) Key() string {
	return RowKey(r.Name, r.ResourceGroup)
}

// UnavailableRow builds the all-"N/A" row recorded for resources whose
// inventory lookup failed
func (k ReportKind) UnavailableRow(name, resourceGroup string) ResultRow {
	return ResultRow{
		Name:          name,
		ResourceGroup: resourceGroup,
		Attributes:    repeat(NotAvailable, k.AttributeCount()),
		Prices:        repeat(NotAvailable, len(k.Scenarios())),
	}
}

// RowKey joins the identity fields of a resource
func RowKey(name, resourceGroup string) string {
	return name + "|" + resourceGroup
}

func repeat(value string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out
}
