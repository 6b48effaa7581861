package eventservices

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

// Linspace returns n evenly spaced points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

type sweepAxes struct {
	spots        []float64
	volatilities []float64
}

func newSweepAxes(params eventmodels.HeatmapParameters) sweepAxes {
	return sweepAxes{
		spots:        Linspace(params.SpotMin, params.SpotMax, params.Resolution),
		volatilities: Linspace(params.VolMin, params.VolMax, params.Resolution),
	}
}

func newGrid(optionType eventmodels.OptionType, in pricing.Inputs, axes sweepAxes, params eventmodels.HeatmapParameters) *eventmodels.SweepGrid {
	grid := &eventmodels.SweepGrid{
		Type:         optionType,
		Base:         in,
		Spots:        axes.spots,
		Volatilities: axes.volatilities,
		Values:       make([][]float64, len(axes.volatilities)),
	}

	for i := range grid.Values {
		grid.Values[i] = make([]float64, len(axes.spots))
	}

	if optionType.IsPnL() {
		lo, hi := params.PurchaseRange(optionType)
		grid.PurchasePrices = Linspace(lo, hi, params.Resolution)
	}

	return grid
}

func validateSweep(in pricing.Inputs, params eventmodels.HeatmapParameters) error {
	if err := in.Validate(); err != nil {
		return err
	}

	return params.Validate()
}

// sweep prices every (volatility, spot) cell once and hands the result to fn.
func sweep(in pricing.Inputs, axes sweepAxes, fn func(i, j int, res pricing.Result)) error {
	for i, vol := range axes.volatilities {
		for j, spot := range axes.spots {
			res, err := pricing.Price(in.WithSpotAndVolatility(spot, vol))
			if err != nil {
				return fmt.Errorf("sweep: spot %v, volatility %v: %w", spot, vol, err)
			}

			fn(i, j, res)
		}
	}

	return nil
}

func setCell(grid *eventmodels.SweepGrid, i, j int, res pricing.Result) {
	value := grid.Type.PriceFrom(res)
	if grid.Type.IsPnL() {
		value -= grid.PurchasePrices[i]
	}

	grid.Values[i][j] = value
}

// BuildSweepGrid evaluates one option type over the (spot, volatility) grid described
// by params. Strike, maturity and rate are taken from in.
func BuildSweepGrid(in pricing.Inputs, params eventmodels.HeatmapParameters, optionType eventmodels.OptionType) (*eventmodels.SweepGrid, error) {
	if err := optionType.Validate(); err != nil {
		return nil, fmt.Errorf("BuildSweepGrid: %w", err)
	}

	if err := validateSweep(in, params); err != nil {
		return nil, fmt.Errorf("BuildSweepGrid: %w", err)
	}

	axes := newSweepAxes(params)
	grid := newGrid(optionType, in, axes, params)

	if err := sweep(in, axes, func(i, j int, res pricing.Result) { setCell(grid, i, j, res) }); err != nil {
		return nil, fmt.Errorf("BuildSweepGrid: %w", err)
	}

	summary, err := Summarize(grid)
	if err != nil {
		return nil, fmt.Errorf("BuildSweepGrid: %w", err)
	}
	grid.Summary = summary

	return grid, nil
}

// BuildPnLGrid is BuildSweepGrid for the price difference of a call or put.
func BuildPnLGrid(in pricing.Inputs, params eventmodels.HeatmapParameters, leg eventmodels.OptionType) (*eventmodels.SweepGrid, error) {
	switch leg.Leg() {
	case eventmodels.Call:
		return BuildSweepGrid(in, params, eventmodels.CallPnL)
	case eventmodels.Put:
		return BuildSweepGrid(in, params, eventmodels.PutPnL)
	}

	return nil, fmt.Errorf("BuildPnLGrid: %w", leg.Validate())
}

// BuildHeatmaps fills the call, put and both PnL grids from a single pass over the sweep.
func BuildHeatmaps(in pricing.Inputs, params eventmodels.HeatmapParameters) (*eventmodels.HeatmapSet, error) {
	if err := validateSweep(in, params); err != nil {
		return nil, fmt.Errorf("BuildHeatmaps: %w", err)
	}

	axes := newSweepAxes(params)
	set := &eventmodels.HeatmapSet{
		Call:    newGrid(eventmodels.Call, in, axes, params),
		Put:     newGrid(eventmodels.Put, in, axes, params),
		CallPnL: newGrid(eventmodels.CallPnL, in, axes, params),
		PutPnL:  newGrid(eventmodels.PutPnL, in, axes, params),
	}

	err := sweep(in, axes, func(i, j int, res pricing.Result) {
		for _, grid := range set.Grids() {
			setCell(grid, i, j, res)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("BuildHeatmaps: %w", err)
	}

	for _, grid := range set.Grids() {
		summary, err := Summarize(grid)
		if err != nil {
			return nil, fmt.Errorf("BuildHeatmaps: %s: %w", grid.Type, err)
		}
		grid.Summary = summary
	}

	return set, nil
}
