package eventservices

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
	"github.com/jiaming2012/bsm-heatmap/src/utils"
)

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func RenderInputsTable(w io.Writer, in pricing.Inputs) {
	table := newTable(w)
	table.SetHeader([]string{"Current Asset Price", "Strike Price", "Time to Maturity (Years)", "Volatility (σ)", "Risk-Free Interest Rate"})
	table.Append([]string{
		utils.FormatNumber(in.Spot, 2),
		utils.FormatNumber(in.Strike, 2),
		utils.FormatNumber(in.Maturity, 4),
		utils.FormatNumber(in.Volatility, 4),
		utils.FormatNumber(in.Rate, 4),
	})
	table.Render()
}

func RenderResultTable(w io.Writer, res pricing.Result) {
	table := newTable(w)
	table.SetHeader([]string{"CALL Value", "PUT Value"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.Append([]string{utils.FormatDollars(res.CallPrice), utils.FormatDollars(res.PutPrice)})
	table.Render()
}

func RenderGreeksTable(w io.Writer, g pricing.Greeks) {
	table := newTable(w)
	table.SetHeader([]string{"Greek", "Call", "Put"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	row := func(name string, call, put float64) {
		table.Append([]string{name, utils.FormatNumber(call, 4), utils.FormatNumber(put, 4)})
	}

	row("Delta", g.CallDelta, g.PutDelta)
	row("Gamma", g.Gamma, g.Gamma)
	row("Vega", g.Vega, g.Vega)
	row("Theta", g.CallTheta, g.PutTheta)
	row("Rho", g.CallRho, g.PutRho)

	table.Render()
}

// RenderGridTable prints the grid as an annotated table: volatility rows, spot columns,
// each cell rounded to cents.
func RenderGridTable(w io.Writer, grid *eventmodels.SweepGrid) {
	fmt.Fprintf(w, "%s (strike %s)\n", grid.Title(), utils.FormatNumber(grid.Base.Strike, 2))

	header := []string{"Vol \\ Spot"}
	if grid.Type.IsPnL() {
		header = append(header, "Paid")
	}
	for _, spot := range grid.Spots {
		header = append(header, utils.FormatNumber(spot, 2))
	}

	table := newTable(w)
	table.SetHeader(header)

	for i, vol := range grid.Volatilities {
		row := []string{utils.FormatNumber(vol, 2)}
		if grid.Type.IsPnL() {
			row = append(row, utils.FormatNumber(grid.PurchasePrices[i], 2))
		}

		for _, v := range grid.Values[i] {
			row = append(row, utils.FormatNumber(RoundCents(v), 2))
		}

		table.Append(row)
	}

	table.SetCaption(true, fmt.Sprintf("min %s  max %s  mean %s  median %s",
		utils.FormatNumber(grid.Summary.Min, 2),
		utils.FormatNumber(grid.Summary.Max, 2),
		utils.FormatNumber(grid.Summary.Mean, 2),
		utils.FormatNumber(grid.Summary.Median, 2)))

	table.Render()
}
