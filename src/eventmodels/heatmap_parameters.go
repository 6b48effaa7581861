package eventmodels

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

const (
	MinSpotPrice      = 0.01
	MinVolatility     = 0.01
	MaxVolatility     = 1.0
	MinPurchasePrice  = 0.01
	MinResolution     = 2
	MaxResolution     = 50
	DefaultResolution = 10

	defaultPurchasePrice = 10.0
)

var InvalidRangeErr = fmt.Errorf("range minimum must not exceed its maximum")
var OutOfBoundsErr = fmt.Errorf("value is outside of the allowed bounds")
var InvalidResolutionErr = fmt.Errorf("resolution is outside of the allowed bounds")

// HeatmapParameters bound the (spot, volatility) sweep. The purchase price ranges
// are spread over the volatility rows of the PnL grids.
type HeatmapParameters struct {
	SpotMin         float64 `json:"spot_min" schema:"spot_min"`
	SpotMax         float64 `json:"spot_max" schema:"spot_max"`
	VolMin          float64 `json:"vol_min" schema:"vol_min"`
	VolMax          float64 `json:"vol_max" schema:"vol_max"`
	CallPurchaseMin float64 `json:"call_purchase_min" schema:"call_purchase_min"`
	CallPurchaseMax float64 `json:"call_purchase_max" schema:"call_purchase_max"`
	PutPurchaseMin  float64 `json:"put_purchase_min" schema:"put_purchase_min"`
	PutPurchaseMax  float64 `json:"put_purchase_max" schema:"put_purchase_max"`
	Resolution      int     `json:"resolution" schema:"resolution"`
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// NewHeatmapParameters centers the sweep on the pricing inputs: spot +/-20%,
// volatility from half to one and a half times the input.
func NewHeatmapParameters(in pricing.Inputs, resolution int) HeatmapParameters {
	if resolution == 0 {
		resolution = DefaultResolution
	}

	return HeatmapParameters{
		SpotMin:         math.Max(in.Spot*0.8, MinSpotPrice),
		SpotMax:         math.Max(in.Spot*1.2, MinSpotPrice),
		VolMin:          clamp(in.Volatility*0.5, MinVolatility, MaxVolatility),
		VolMax:          clamp(in.Volatility*1.5, MinVolatility, MaxVolatility),
		CallPurchaseMin: defaultPurchasePrice * 0.8,
		CallPurchaseMax: defaultPurchasePrice * 1.2,
		PutPurchaseMin:  defaultPurchasePrice * 0.8,
		PutPurchaseMax:  defaultPurchasePrice * 1.2,
		Resolution:      resolution,
	}
}

// DecodeHeatmapParameters lays the JSON object raw over the defaults derived from
// the inputs. Fields present in raw keep their value, zero included, and are left
// for Validate to judge.
func DecodeHeatmapParameters(in pricing.Inputs, resolution int, raw json.RawMessage) (HeatmapParameters, error) {
	p := NewHeatmapParameters(in, resolution)
	if len(raw) == 0 || string(raw) == "null" {
		return p, nil
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		return HeatmapParameters{}, fmt.Errorf("DecodeHeatmapParameters: %w", err)
	}

	return p, nil
}

func validateRange(name string, lo, hi, min, max float64) error {
	for _, v := range []float64{lo, hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max {
			return fmt.Errorf("%s: found %v, allowed [%v, %v]: %w", name, v, min, max, OutOfBoundsErr)
		}
	}

	if lo > hi {
		return fmt.Errorf("%s: %v > %v: %w", name, lo, hi, InvalidRangeErr)
	}

	return nil
}

func (p HeatmapParameters) Validate() error {
	if p.Resolution < MinResolution || p.Resolution > MaxResolution {
		return fmt.Errorf("HeatmapParameters.Validate: found %d, allowed [%d, %d]: %w", p.Resolution, MinResolution, MaxResolution, InvalidResolutionErr)
	}

	if err := validateRange("spot", p.SpotMin, p.SpotMax, MinSpotPrice, math.MaxFloat64); err != nil {
		return fmt.Errorf("HeatmapParameters.Validate: %w", err)
	}

	if err := validateRange("volatility", p.VolMin, p.VolMax, MinVolatility, MaxVolatility); err != nil {
		return fmt.Errorf("HeatmapParameters.Validate: %w", err)
	}

	if err := validateRange("call purchase price", p.CallPurchaseMin, p.CallPurchaseMax, MinPurchasePrice, math.MaxFloat64); err != nil {
		return fmt.Errorf("HeatmapParameters.Validate: %w", err)
	}

	if err := validateRange("put purchase price", p.PutPurchaseMin, p.PutPurchaseMax, MinPurchasePrice, math.MaxFloat64); err != nil {
		return fmt.Errorf("HeatmapParameters.Validate: %w", err)
	}

	return nil
}

// PurchaseRange returns the purchase price bounds used by a PnL grid.
func (p HeatmapParameters) PurchaseRange(optionType OptionType) (float64, float64) {
	if optionType.Leg() == Put {
		return p.PutPurchaseMin, p.PutPurchaseMax
	}

	return p.CallPurchaseMin, p.CallPurchaseMax
}
