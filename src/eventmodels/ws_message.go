package eventmodels

import (
	"encoding/json"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

type WsMessageType string

const (
	WsMessageTypeResult WsMessageType = "result"
	WsMessageTypeError  WsMessageType = "validation"
)

// WsUpdate is sent by the browser whenever a form field changes. Heatmap holds only
// the sweep bounds the user filled in.
type WsUpdate struct {
	Inputs  pricing.Inputs  `json:"inputs"`
	Heatmap json.RawMessage `json:"heatmap,omitempty"`
}

func (u WsUpdate) Parameters(resolution int) (HeatmapParameters, error) {
	return DecodeHeatmapParameters(u.Inputs, resolution, u.Heatmap)
}

type WsReply struct {
	Type     WsMessageType   `json:"type"`
	Message  string          `json:"message,omitempty"`
	Result   *pricing.Result `json:"result,omitempty"`
	Heatmaps *HeatmapSet     `json:"heatmaps,omitempty"`
}
