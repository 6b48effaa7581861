package eventmodels

import (
	"github.com/google/uuid"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

type EventName string

const (
	PricingCompletedEventName EventName = "PricingCompletedEvent"
	HeatmapRenderedEventName  EventName = "HeatmapRenderedEvent"
	ValidationFailedEventName EventName = "ValidationFailedEvent"
)

type RequestSource string

const (
	RequestSourceHTTP      RequestSource = "http"
	RequestSourceWebsocket RequestSource = "websocket"
	RequestSourceCLI       RequestSource = "cli"
)

type PricingCompletedEvent struct {
	RequestID uuid.UUID
	Source    RequestSource
	Result    pricing.Result
}

type HeatmapRenderedEvent struct {
	RequestID uuid.UUID
	Source    RequestSource
	Format    string
	Cells     int
}

type ValidationFailedEvent struct {
	RequestID uuid.UUID
	Source    RequestSource
	Err       error
}
