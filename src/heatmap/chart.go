package heatmap

import (
	"fmt"
	"io"
	"math"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/eventservices"
	"github.com/jiaming2012/bsm-heatmap/src/utils"
)

var EmptyChartErr = fmt.Errorf("chart has no cells")
var RaggedChartErr = fmt.Errorf("chart rows do not match the x axis")

type ColorScale string

const (
	// Sequential runs dark purple through green to yellow.
	Sequential ColorScale = "sequential"
	// Diverging runs red for losses through white to green for gains, centered on zero.
	Diverging ColorScale = "diverging"
)

var viridis = []string{"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

var redGreen = []string{"#d7301f", "#ef6548", "#fc9272", "#fdd0c2", "#f7f7f7", "#c7e9c0", "#74c476", "#31a354", "#006d2c"}

func (s ColorScale) Colors() []string {
	if s == Diverging {
		return redGreen
	}

	return viridis
}

// Chart is a titled matrix ready for drawing. Values[i][j] sits at YTicks[i], XTicks[j].
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	XTicks []string
	YTicks []string
	Values [][]float64
	Scale  ColorScale
}

func (c Chart) Validate() error {
	if len(c.Values) == 0 || len(c.XTicks) == 0 {
		return fmt.Errorf("Chart.Validate: %s: %w", c.Title, EmptyChartErr)
	}

	if len(c.Values) != len(c.YTicks) {
		return fmt.Errorf("Chart.Validate: %s: %d rows for %d y ticks: %w", c.Title, len(c.Values), len(c.YTicks), RaggedChartErr)
	}

	for i, row := range c.Values {
		if len(row) != len(c.XTicks) {
			return fmt.Errorf("Chart.Validate: %s: row %d has %d cells for %d x ticks: %w", c.Title, i, len(row), len(c.XTicks), RaggedChartErr)
		}
	}

	return nil
}

// Bounds returns the color scale limits. Diverging charts are symmetric around zero so
// that break-even always maps to the middle color.
func (c Chart) Bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range c.Values {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	if c.Scale == Diverging {
		edge := math.Max(math.Abs(lo), math.Abs(hi))
		return -edge, edge
	}

	return lo, hi
}

// Renderer draws one or more charts to w.
type Renderer interface {
	Render(w io.Writer, charts ...Chart) error
}

func ticks(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = utils.FormatNumber(v, 2)
	}

	return out
}

func fromGrid(grid *eventmodels.SweepGrid, scale ColorScale) Chart {
	values := make([][]float64, len(grid.Values))
	for i, row := range grid.Values {
		values[i] = make([]float64, len(row))
		for j, v := range row {
			values[i][j] = eventservices.RoundCents(v)
		}
	}

	return Chart{
		Title:  grid.Title(),
		XLabel: "Spot Price",
		YLabel: "Volatility",
		XTicks: ticks(grid.Spots),
		YTicks: ticks(grid.Volatilities),
		Values: values,
		Scale:  scale,
	}
}

func NewPriceChart(grid *eventmodels.SweepGrid) (Chart, error) {
	if grid.Type.IsPnL() {
		return Chart{}, fmt.Errorf("NewPriceChart: %s is a price difference grid", grid.Type)
	}

	return fromGrid(grid, Sequential), nil
}

func NewPnLChart(grid *eventmodels.SweepGrid) (Chart, error) {
	if !grid.Type.IsPnL() {
		return Chart{}, fmt.Errorf("NewPnLChart: %s is not a price difference grid", grid.Type)
	}

	return fromGrid(grid, Diverging), nil
}

// NewChart picks the price or PnL adaptation from the grid type.
func NewChart(grid *eventmodels.SweepGrid) (Chart, error) {
	if grid.Type.IsPnL() {
		return NewPnLChart(grid)
	}

	return NewPriceChart(grid)
}

// NewCharts adapts grids in order.
func NewCharts(grids ...*eventmodels.SweepGrid) ([]Chart, error) {
	charts := make([]Chart, 0, len(grids))
	for _, grid := range grids {
		chart, err := NewChart(grid)
		if err != nil {
			return nil, err
		}

		charts = append(charts, chart)
	}

	return charts, nil
}
