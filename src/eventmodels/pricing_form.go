package eventmodels

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

var formDecoder = newFormDecoder()

var formEncoder = schema.NewEncoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// PricingForm is the query string of the web form. Fields left out keep the
// values the form was created with.
type PricingForm struct {
	Spot       float64    `schema:"spot"`
	Strike     float64    `schema:"strike"`
	Maturity   float64    `schema:"maturity"`
	Volatility float64    `schema:"volatility"`
	Rate       float64    `schema:"rate"`
	Type       OptionType `schema:"type"`

	SpotMin         float64 `schema:"spot_min"`
	SpotMax         float64 `schema:"spot_max"`
	VolMin          float64 `schema:"vol_min"`
	VolMax          float64 `schema:"vol_max"`
	CallPurchaseMin float64 `schema:"call_purchase_min"`
	CallPurchaseMax float64 `schema:"call_purchase_max"`
	PutPurchaseMin  float64 `schema:"put_purchase_min"`
	PutPurchaseMax  float64 `schema:"put_purchase_max"`
	Resolution      int     `schema:"resolution"`

	defaultResolution int `schema:"-"`
}

func NewPricingForm(defaults pricing.Inputs, resolution int) *PricingForm {
	return &PricingForm{
		Spot:              defaults.Spot,
		Strike:            defaults.Strike,
		Maturity:          defaults.Maturity,
		Volatility:        defaults.Volatility,
		Rate:              defaults.Rate,
		Type:              Call,
		defaultResolution: resolution,
	}
}

func (f *PricingForm) ParseHTTPRequest(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("PricingForm: ParseHTTPRequest: parse: %w", err)
	}

	if err := formDecoder.Decode(f, r.Form); err != nil {
		return fmt.Errorf("PricingForm: ParseHTTPRequest: decode: %w", err)
	}

	// the sweep defaults depend on the inputs, so the query is decoded a second time
	// over them and only the keys it carries replace a default
	f.setHeatmap(NewHeatmapParameters(f.Inputs(), f.defaultResolution))
	if err := formDecoder.Decode(f, r.Form); err != nil {
		return fmt.Errorf("PricingForm: ParseHTTPRequest: decode: %w", err)
	}

	return nil
}

func (f *PricingForm) Validate(r *http.Request) error {
	if err := f.Inputs().Validate(); err != nil {
		return fmt.Errorf("PricingForm: Validate: %w", err)
	}

	if err := f.Heatmap().Validate(); err != nil {
		return fmt.Errorf("PricingForm: Validate: %w", err)
	}

	if err := f.Type.Validate(); err != nil {
		return fmt.Errorf("PricingForm: Validate: %w", err)
	}

	return nil
}

func (f *PricingForm) Inputs() pricing.Inputs {
	return pricing.Inputs{
		Spot:       f.Spot,
		Strike:     f.Strike,
		Maturity:   f.Maturity,
		Volatility: f.Volatility,
		Rate:       f.Rate,
	}
}

func (f *PricingForm) Heatmap() HeatmapParameters {
	return HeatmapParameters{
		SpotMin:         f.SpotMin,
		SpotMax:         f.SpotMax,
		VolMin:          f.VolMin,
		VolMax:          f.VolMax,
		CallPurchaseMin: f.CallPurchaseMin,
		CallPurchaseMax: f.CallPurchaseMax,
		PutPurchaseMin:  f.PutPurchaseMin,
		PutPurchaseMax:  f.PutPurchaseMax,
		Resolution:      f.Resolution,
	}
}

func (f *PricingForm) setHeatmap(p HeatmapParameters) {
	f.SpotMin, f.SpotMax = p.SpotMin, p.SpotMax
	f.VolMin, f.VolMax = p.VolMin, p.VolMax
	f.CallPurchaseMin, f.CallPurchaseMax = p.CallPurchaseMin, p.CallPurchaseMax
	f.PutPurchaseMin, f.PutPurchaseMax = p.PutPurchaseMin, p.PutPurchaseMax
	f.Resolution = p.Resolution
}

// Query encodes the form back into a query string, heatmap defaults included.
func (f *PricingForm) Query() (url.Values, error) {
	values := url.Values{}
	if err := formEncoder.Encode(f, values); err != nil {
		return nil, fmt.Errorf("PricingForm: Query: %w", err)
	}

	return values, nil
}
