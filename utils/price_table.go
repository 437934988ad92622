package utils

import (
	"fmt"
	"io"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawPriceRecords prints the catalog records matched by filter
func DrawPriceRecords(w io.Writer, filter model.PriceFilter, records []model.PriceRecord) {
	fmt.Fprintf(w, "\n %s\n", text.FgHiBlack.Sprint(filter.OData()))

	if len(records) == 0 {
		fmt.Fprintf(w, " %s\n", text.FgYellow.Sprint("no matching prices"))
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Meter", "SKU", "Billing", "Unit", "Tier Min", "Unit Price"})

	for _, record := range records {
		tw.AppendRow(table.Row{
			record.MeterName,
			record.SKUName,
			record.BillingType,
			record.UnitOfMeasure,
			record.TierMinimumUnits.String(),
			fmt.Sprintf("%s %s", record.UnitPrice.String(), record.Currency),
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.Render()
}
