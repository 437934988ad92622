package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#fee08b"
	ColorRank3 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// ScenarioTotal is the summed monthly cost of one scenario over every
// row where it was priced
type ScenarioTotal struct {
	Scenario string
	Amount   decimal.Decimal
	Priced   int
}

// ScenarioTotals sums the price columns of rows. Cells that do not hold
// a number (N/A) are left out of the sum.
func ScenarioTotals(kind model.ReportKind, rows []model.ResultRow) []ScenarioTotal {
	scenarios := kind.Scenarios()
	totals := make([]ScenarioTotal, len(scenarios))
	for i, scenario := range scenarios {
		totals[i] = ScenarioTotal{Scenario: scenario, Amount: decimal.Zero}
	}

	for _, row := range rows {
		for i, price := range row.Prices {
			if i >= len(totals) {
				break
			}
			amount, err := decimal.NewFromString(price)
			if err != nil {
				continue
			}
			totals[i].Amount = totals[i].Amount.Add(amount)
			totals[i].Priced++
		}
	}

	return totals
}

func DrawScenarioChart(w io.Writer, kind model.ReportKind, currency string, rows []model.ResultRow) {
	totals := ScenarioTotals(kind, rows)

	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprint(" 🏥  SCENARIO TOTALS"))
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(90, 20)
	colors := assignRankedColors(totals)

	for idx, total := range totals {
		bc.Push(barchart.BarData{
			Label: getBarLabel(total, currency, kind.PricePrecision()),
			Values: []barchart.BarValue{
				{
					Value: total.Amount.InexactFloat64(),
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(colors[idx])),
				},
			},
		})
	}

	bc.Draw()
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

func getBarLabel(total ScenarioTotal, currency string, precision int32) string {
	if total.Priced == 0 {
		return fmt.Sprintf("%s: %s", total.Scenario, model.NotAvailable)
	}
	return fmt.Sprintf("%s: %s %s", total.Scenario, total.Amount.StringFixed(precision), currency)
}

// assignRankedColors paints the most expensive scenario red and the
// cheapest green
func assignRankedColors(totals []ScenarioTotal) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3}

	order := make([]int, len(totals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].Amount.GreaterThan(totals[order[j]].Amount)
	})

	colors := make([]string, len(totals))
	for rank, index := range order {
		if rank < len(palette) {
			colors[index] = palette[rank]
		} else {
			colors[index] = palette[len(palette)-1]
		}
	}
	return colors
}
