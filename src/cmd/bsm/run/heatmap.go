package run

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	pubsub "github.com/jiaming2012/bsm-heatmap/src/eventpubsub"
	"github.com/jiaming2012/bsm-heatmap/src/eventservices"
	"github.com/jiaming2012/bsm-heatmap/src/heatmap"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
	"github.com/jiaming2012/bsm-heatmap/src/utils"
)

const AllGridTypes = "all"

// HeatmapArgs configure one CLI sweep. A nil Params derives every bound from the
// inputs at the given resolution.
type HeatmapArgs struct {
	Inputs     pricing.Inputs
	Params     *eventmodels.HeatmapParameters
	Resolution int
	GridType   string
	CSVPath    string
	HTMLPath   string
}

type HeatmapResult struct {
	Result   pricing.Result
	Heatmaps *eventmodels.HeatmapSet
	Grids    []*eventmodels.SweepGrid
}

func ParseGridTypes(s string) ([]eventmodels.OptionType, error) {
	if s == AllGridTypes || s == "" {
		return eventmodels.AllOptionTypes, nil
	}

	optionType := eventmodels.OptionType(s)
	if err := optionType.Validate(); err != nil {
		return nil, err
	}

	return []eventmodels.OptionType{optionType}, nil
}

// Heatmap sweeps the inputs, prints the selected grids as annotated tables and
// optionally writes them to a CSV file and an HTML page.
func Heatmap(w io.Writer, args HeatmapArgs) (*HeatmapResult, error) {
	types, err := ParseGridTypes(args.GridType)
	if err != nil {
		return nil, fmt.Errorf("run.Heatmap: %w", err)
	}

	params := eventmodels.NewHeatmapParameters(args.Inputs, args.Resolution)
	if args.Params != nil {
		params = *args.Params
	}

	res, err := pricing.Price(args.Inputs)
	if err != nil {
		return nil, fmt.Errorf("run.Heatmap: %w", err)
	}

	set, err := eventservices.BuildHeatmaps(args.Inputs, params)
	if err != nil {
		return nil, fmt.Errorf("run.Heatmap: %w", err)
	}

	grids := make([]*eventmodels.SweepGrid, 0, len(types))
	for _, optionType := range types {
		grid, err := set.Get(optionType)
		if err != nil {
			return nil, fmt.Errorf("run.Heatmap: %w", err)
		}
		grids = append(grids, grid)
	}

	eventservices.RenderResultTable(w, res)
	for _, grid := range grids {
		fmt.Fprintln(w)
		eventservices.RenderGridTable(w, grid)
	}

	if args.CSVPath != "" {
		if err := utils.ExportToFile(args.CSVPath, func(f io.Writer) error { return eventservices.WriteGridCSV(f, grids...) }); err != nil {
			return nil, fmt.Errorf("run.Heatmap: %w", err)
		}
		log.Infof("CSV file written to: %s", args.CSVPath)
	}

	if args.HTMLPath != "" {
		charts, err := heatmap.NewCharts(grids...)
		if err != nil {
			return nil, fmt.Errorf("run.Heatmap: %w", err)
		}

		renderer := heatmap.NewEChartsRenderer("Black-Scholes Heatmaps")
		if err := utils.ExportToFile(args.HTMLPath, func(f io.Writer) error { return renderer.Render(f, charts...) }); err != nil {
			return nil, fmt.Errorf("run.Heatmap: %w", err)
		}
		log.Infof("HTML file written to: %s", args.HTMLPath)
	}

	cells := 0
	for _, grid := range grids {
		cells += len(grid.Spots) * len(grid.Volatilities)
	}

	pubsub.Publish("run.Heatmap", eventmodels.HeatmapRenderedEventName, eventmodels.HeatmapRenderedEvent{
		RequestID: uuid.New(),
		Source:    eventmodels.RequestSourceCLI,
		Format:    "table",
		Cells:     cells,
	})

	return &HeatmapResult{
		Result:   res,
		Heatmaps: set,
		Grids:    grids,
	}, nil
}
