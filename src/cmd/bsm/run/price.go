package run

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	pubsub "github.com/jiaming2012/bsm-heatmap/src/eventpubsub"
	"github.com/jiaming2012/bsm-heatmap/src/eventservices"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

// Price prints the inputs, both option values and the Greeks as tables.
func Price(w io.Writer, in pricing.Inputs) (pricing.Result, error) {
	res, err := pricing.Price(in)
	if err != nil {
		return pricing.Result{}, fmt.Errorf("run.Price: %w", err)
	}

	pubsub.Publish("run.Price", eventmodels.PricingCompletedEventName, eventmodels.PricingCompletedEvent{
		RequestID: uuid.New(),
		Source:    eventmodels.RequestSourceCLI,
		Result:    res,
	})

	eventservices.RenderInputsTable(w, in)
	eventservices.RenderResultTable(w, res)
	eventservices.RenderGreeksTable(w, res.Greeks)

	return res, nil
}
