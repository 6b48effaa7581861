package heatmap

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EChartsRenderer writes a self-contained HTML page with one interactive heatmap per chart.
type EChartsRenderer struct {
	PageTitle string
	Width     string
	Height    string
}

func NewEChartsRenderer(pageTitle string) *EChartsRenderer {
	return &EChartsRenderer{
		PageTitle: pageTitle,
		Width:     "900px",
		Height:    "600px",
	}
}

func (r *EChartsRenderer) heatMap(c Chart) *charts.HeatMap {
	lo, hi := c.Bounds()

	data := make([]opts.HeatMapData, 0, len(c.XTicks)*len(c.YTicks))
	for i, row := range c.Values {
		for j, v := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: r.PageTitle,
			Width:     r.Width,
			Height:    r.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      c.XLabel,
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      c.YLabel,
			Type:      "category",
			Data:      c.YTicks,
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: c.Scale.Colors()},
		}),
	)

	hm.SetXAxis(c.XTicks).AddSeries(c.Title, data, charts.WithLabelOpts(opts.Label{Show: true}))

	return hm
}

func (r *EChartsRenderer) Render(w io.Writer, cs ...Chart) error {
	if len(cs) == 0 {
		return fmt.Errorf("EChartsRenderer.Render: %w", EmptyChartErr)
	}

	page := components.NewPage()
	page.PageTitle = r.PageTitle

	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("EChartsRenderer.Render: %w", err)
		}

		page.AddCharts(r.heatMap(c))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("EChartsRenderer.Render: %w", err)
	}

	return nil
}
