package eventconsumers

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	pubsub "github.com/jiaming2012/bsm-heatmap/src/eventpubsub"
)

// PricingMetrics turns pricing events into OpenTelemetry counters.
type PricingMetrics struct {
	prices     metric.Int64Counter
	cells      metric.Int64Counter
	validation metric.Int64Counter
}

func NewPricingMetrics(meter metric.Meter) (*PricingMetrics, error) {
	prices, err := meter.Int64Counter("bsm.prices.computed",
		metric.WithDescription("Call and put pairs priced at the requested inputs"))
	if err != nil {
		return nil, fmt.Errorf("NewPricingMetrics: %w", err)
	}

	cells, err := meter.Int64Counter("bsm.grid.cells",
		metric.WithDescription("Heatmap cells evaluated"))
	if err != nil {
		return nil, fmt.Errorf("NewPricingMetrics: %w", err)
	}

	validation, err := meter.Int64Counter("bsm.validation.failures",
		metric.WithDescription("Requests rejected for invalid inputs"))
	if err != nil {
		return nil, fmt.Errorf("NewPricingMetrics: %w", err)
	}

	return &PricingMetrics{
		prices:     prices,
		cells:      cells,
		validation: validation,
	}, nil
}

func sourceAttr(source eventmodels.RequestSource) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("source", string(source)))
}

func (m *PricingMetrics) onPricingCompleted(ev eventmodels.PricingCompletedEvent) {
	log.WithFields(log.Fields{
		"request_id": ev.RequestID,
		"source":     ev.Source,
		"call":       ev.Result.CallPrice,
		"put":        ev.Result.PutPrice,
	}).Debug("PricingMetrics: priced")

	m.prices.Add(context.Background(), 1, sourceAttr(ev.Source))
}

func (m *PricingMetrics) onHeatmapRendered(ev eventmodels.HeatmapRenderedEvent) {
	log.WithFields(log.Fields{
		"request_id": ev.RequestID,
		"source":     ev.Source,
		"format":     ev.Format,
		"cells":      ev.Cells,
	}).Debug("PricingMetrics: heatmap rendered")

	m.cells.Add(context.Background(), int64(ev.Cells), metric.WithAttributes(
		attribute.String("source", string(ev.Source)),
		attribute.String("format", ev.Format),
	))
}

func (m *PricingMetrics) onValidationFailed(ev eventmodels.ValidationFailedEvent) {
	log.WithFields(log.Fields{
		"request_id": ev.RequestID,
		"source":     ev.Source,
	}).Infof("PricingMetrics: rejected: %v", ev.Err)

	m.validation.Add(context.Background(), 1, sourceAttr(ev.Source))
}

func (m *PricingMetrics) Start() error {
	if err := pubsub.Subscribe("PricingMetrics", eventmodels.PricingCompletedEventName, m.onPricingCompleted); err != nil {
		return err
	}

	if err := pubsub.Subscribe("PricingMetrics", eventmodels.HeatmapRenderedEventName, m.onHeatmapRendered); err != nil {
		return err
	}

	if err := pubsub.Subscribe("PricingMetrics", eventmodels.ValidationFailedEventName, m.onValidationFailed); err != nil {
		return err
	}

	return nil
}
