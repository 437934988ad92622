package utils

import (
	"fmt"
	"io"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

// DrawComparisonTable renders the result rows of a report. The cheapest
// priced scenario of each row is highlighted.
func DrawComparisonTable(w io.Writer, account string, kind model.ReportKind, currency string, rows []model.ResultRow) {
	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprintf(" 🏥  AZURE STORAGE DOCTOR (%s)", kind))
	if account != "" {
		fmt.Fprintf(w, " Subscription: %s\n", text.FgBlue.Sprint(account))
	}
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	headers := kind.Headers(currency)
	headerRow := make(table.Row, len(headers))
	for i, header := range headers {
		headerRow[i] = header
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(headerRow)

	for _, row := range rows {
		tw.AppendRow(populateComparisonRow(kind, row))
	}

	firstPrice := len(headers) - len(kind.Scenarios()) + 1
	configs := make([]table.ColumnConfig, 0, len(kind.Scenarios()))
	for number := firstPrice; number <= len(headers); number++ {
		configs = append(configs, table.ColumnConfig{
			Number:       number,
			Align:        text.AlignRight,
			VAlignHeader: text.VAlignMiddle,
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs(configs)
	tw.Render()
}

func populateComparisonRow(kind model.ReportKind, row model.ResultRow) table.Row {
	cells := kind.Cells(row)
	firstPrice := len(cells) - len(row.Prices)
	cheapest := cheapestPrice(row.Prices)

	out := make(table.Row, len(cells))
	for i, cell := range cells {
		out[i] = cell
	}

	for i, price := range row.Prices {
		column := firstPrice + i
		switch {
		case price == model.NotAvailable:
			out[column] = text.FgRed.Sprint(price)
		case i == cheapest:
			out[column] = text.FgHiGreen.Sprint(price)
		default:
			out[column] = text.FgYellow.Sprint(price)
		}
	}

	return out
}

// cheapestPrice returns the index of the lowest priced cell, or -1 when
// nothing in the row is priced
func cheapestPrice(prices []string) int {
	cheapest := -1
	var lowest decimal.Decimal

	for i, price := range prices {
		amount, err := decimal.NewFromString(price)
		if err != nil {
			continue
		}
		if cheapest == -1 || amount.LessThan(lowest) {
			cheapest = i
			lowest = amount
		}
	}

	return cheapest
}
