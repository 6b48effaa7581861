package eventmodels

import (
	"fmt"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

type GridSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SweepGrid holds Values[i][j] for Volatilities[i] and Spots[j]. Strike, maturity
// and rate stay fixed at Base.
type SweepGrid struct {
	Type           OptionType     `json:"type"`
	Base           pricing.Inputs `json:"base"`
	Spots          []float64      `json:"spots"`
	Volatilities   []float64      `json:"volatilities"`
	PurchasePrices []float64      `json:"purchase_prices,omitempty"`
	Values         [][]float64    `json:"values"`
	Summary        GridSummary    `json:"summary"`
}

func (g *SweepGrid) Title() string {
	if g.Type.IsPnL() {
		return fmt.Sprintf("%s Price Difference", g.Type.Leg().Label())
	}

	return fmt.Sprintf("%s Price Heatmap", g.Type.Label())
}

// Flatten returns the cells row by row.
func (g *SweepGrid) Flatten() []float64 {
	out := make([]float64, 0, len(g.Spots)*len(g.Volatilities))
	for _, row := range g.Values {
		out = append(out, row...)
	}

	return out
}

type HeatmapSet struct {
	Call    *SweepGrid `json:"call"`
	Put     *SweepGrid `json:"put"`
	CallPnL *SweepGrid `json:"call_pnl"`
	PutPnL  *SweepGrid `json:"put_pnl"`
}

func (s *HeatmapSet) Get(optionType OptionType) (*SweepGrid, error) {
	switch optionType {
	case Call:
		return s.Call, nil
	case Put:
		return s.Put, nil
	case CallPnL:
		return s.CallPnL, nil
	case PutPnL:
		return s.PutPnL, nil
	}

	return nil, fmt.Errorf("HeatmapSet.Get: %w", optionType.Validate())
}

func (s *HeatmapSet) Grids() []*SweepGrid {
	return []*SweepGrid{s.Call, s.Put, s.CallPnL, s.PutPnL}
}

func (s *HeatmapSet) Cells() int {
	total := 0
	for _, g := range s.Grids() {
		total += len(g.Spots) * len(g.Volatilities)
	}

	return total
}
