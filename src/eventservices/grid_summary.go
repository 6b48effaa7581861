package eventservices

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
)

func Summarize(grid *eventmodels.SweepGrid) (eventmodels.GridSummary, error) {
	data := stats.Float64Data(grid.Flatten())

	minimum, err := data.Min()
	if err != nil {
		return eventmodels.GridSummary{}, fmt.Errorf("Summarize: failed to calculate min: %w", err)
	}

	maximum, err := data.Max()
	if err != nil {
		return eventmodels.GridSummary{}, fmt.Errorf("Summarize: failed to calculate max: %w", err)
	}

	mean, err := data.Mean()
	if err != nil {
		return eventmodels.GridSummary{}, fmt.Errorf("Summarize: failed to calculate mean: %w", err)
	}

	median, err := data.Median()
	if err != nil {
		return eventmodels.GridSummary{}, fmt.Errorf("Summarize: failed to calculate median: %w", err)
	}

	return eventmodels.GridSummary{
		Min:    minimum,
		Max:    maximum,
		Mean:   mean,
		Median: median,
	}, nil
}
