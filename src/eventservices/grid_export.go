package eventservices

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
)

type GridCellCSV struct {
	Type          eventmodels.OptionType `csv:"type"`
	Volatility    float64                `csv:"volatility"`
	Spot          float64                `csv:"spot"`
	PurchasePrice float64                `csv:"purchase_price"`
	Value         float64                `csv:"value"`
}

// GridToCSVRows flattens grids into long format, one row per cell, volatility major.
// Purchase price is zero for plain price grids.
func GridToCSVRows(grids ...*eventmodels.SweepGrid) []*GridCellCSV {
	var rows []*GridCellCSV
	for _, grid := range grids {
		for i, vol := range grid.Volatilities {
			purchase := 0.0
			if grid.Type.IsPnL() {
				purchase = RoundCents(grid.PurchasePrices[i])
			}

			for j, spot := range grid.Spots {
				rows = append(rows, &GridCellCSV{
					Type:          grid.Type,
					Volatility:    vol,
					Spot:          spot,
					PurchasePrice: purchase,
					Value:         RoundCents(grid.Values[i][j]),
				})
			}
		}
	}

	return rows
}

func WriteGridCSV(w io.Writer, grids ...*eventmodels.SweepGrid) error {
	rows := GridToCSVRows(grids...)
	if len(rows) == 0 {
		return fmt.Errorf("WriteGridCSV: no grid cells to export")
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("WriteGridCSV: failed to marshal: %w", err)
	}

	return nil
}
