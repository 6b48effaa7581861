package pricerapi

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	pubsub "github.com/jiaming2012/bsm-heatmap/src/eventpubsub"
	"github.com/jiaming2012/bsm-heatmap/src/eventproducers"
	"github.com/jiaming2012/bsm-heatmap/src/eventservices"
	"github.com/jiaming2012/bsm-heatmap/src/heatmap"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

// Service answers pricing requests. It holds no mutable state, so one instance is
// shared by every handler.
type Service struct {
	Defaults   pricing.Inputs
	Resolution int
	Renderer   heatmap.Renderer
}

func NewService(defaults pricing.Inputs, resolution int, renderer heatmap.Renderer) *Service {
	return &Service{
		Defaults:   defaults,
		Resolution: resolution,
		Renderer:   renderer,
	}
}

func (s *Service) price(ctx context.Context, source eventmodels.RequestSource, in pricing.Inputs) (pricing.Result, error) {
	res, err := pricing.Price(in)
	if err != nil {
		return pricing.Result{}, err
	}

	pubsub.Publish("pricerapi.Service", eventmodels.PricingCompletedEventName, eventmodels.PricingCompletedEvent{
		RequestID: eventproducers.RequestID(ctx),
		Source:    source,
		Result:    res,
	})

	return res, nil
}

// evaluate prices the inputs and builds the four heatmaps around them.
func (s *Service) evaluate(ctx context.Context, source eventmodels.RequestSource, format string, in pricing.Inputs, params eventmodels.HeatmapParameters) (*eventmodels.HeatmapResponse, error) {
	ctx, span := otel.Tracer("pricerapi").Start(ctx, "evaluate")
	defer span.End()

	span.SetAttributes(
		attribute.String("source", string(source)),
		attribute.Int("resolution", params.Resolution),
	)

	res, err := s.price(ctx, source, in)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	set, err := eventservices.BuildHeatmaps(in, params)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	span.AddEvent("heatmaps built", trace.WithAttributes(
		attribute.Int("cells", set.Cells()),
	))

	pubsub.Publish("pricerapi.Service", eventmodels.HeatmapRenderedEventName, eventmodels.HeatmapRenderedEvent{
		RequestID: eventproducers.RequestID(ctx),
		Source:    source,
		Format:    format,
		Cells:     set.Cells(),
	})

	return &eventmodels.HeatmapResponse{
		Result:   res,
		Heatmaps: set,
	}, nil
}

func (s *Service) servePrice(ctx context.Context, req *eventmodels.PriceRequest) (*pricing.Result, error) {
	res, err := s.price(ctx, eventmodels.RequestSourceHTTP, req.Inputs)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (s *Service) serveHeatmap(ctx context.Context, req *eventmodels.HeatmapRequest) (*eventmodels.HeatmapResponse, error) {
	return s.evaluate(ctx, eventmodels.RequestSourceHTTP, "json", req.Inputs, *req.Heatmap)
}

func (s *Service) newForm() *eventmodels.PricingForm {
	return eventmodels.NewPricingForm(s.Defaults, s.Resolution)
}
