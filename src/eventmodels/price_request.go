package eventmodels

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

type PriceRequest struct {
	pricing.Inputs
}

func (req *PriceRequest) ParseHTTPRequest(r *http.Request) error {
	if err := json.NewDecoder(r.Body).Decode(&req.Inputs); err != nil {
		return fmt.Errorf("PriceRequest: ParseHTTPRequest: decode: %w", err)
	}

	return nil
}

func (req *PriceRequest) Validate(r *http.Request) error {
	if err := req.Inputs.Validate(); err != nil {
		return fmt.Errorf("PriceRequest: Validate: %w", err)
	}

	return nil
}

// HeatmapRequest carries the pricing inputs plus optional sweep bounds. Missing
// bounds are derived from the inputs.
type HeatmapRequest struct {
	Inputs  pricing.Inputs     `json:"inputs"`
	Heatmap *HeatmapParameters `json:"heatmap,omitempty"`

	defaultResolution int
}

type heatmapRequestBody struct {
	Inputs  pricing.Inputs  `json:"inputs"`
	Heatmap json.RawMessage `json:"heatmap"`
}

func NewHeatmapRequest(defaultResolution int) *HeatmapRequest {
	return &HeatmapRequest{defaultResolution: defaultResolution}
}

func (req *HeatmapRequest) ParseHTTPRequest(r *http.Request) error {
	var body heatmapRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return fmt.Errorf("HeatmapRequest: ParseHTTPRequest: decode: %w", err)
	}

	params, err := DecodeHeatmapParameters(body.Inputs, req.defaultResolution, body.Heatmap)
	if err != nil {
		return fmt.Errorf("HeatmapRequest: ParseHTTPRequest: %w", err)
	}

	req.Inputs = body.Inputs
	req.Heatmap = &params

	return nil
}

func (req *HeatmapRequest) Validate(r *http.Request) error {
	if err := req.Inputs.Validate(); err != nil {
		return fmt.Errorf("HeatmapRequest: Validate: %w", err)
	}

	if req.Heatmap == nil {
		params := NewHeatmapParameters(req.Inputs, req.defaultResolution)
		req.Heatmap = &params
	}

	if err := req.Heatmap.Validate(); err != nil {
		return fmt.Errorf("HeatmapRequest: Validate: %w", err)
	}

	return nil
}

type HeatmapResponse struct {
	Result   pricing.Result `json:"result"`
	Heatmaps *HeatmapSet    `json:"heatmaps"`
}
