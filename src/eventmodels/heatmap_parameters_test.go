package eventmodels

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

func TestHeatmapParameters(t *testing.T) {
	in := pricing.DefaultInputs()

	t.Run("defaults are centered on the inputs", func(t *testing.T) {
		p := NewHeatmapParameters(in, 0)

		assert.InDelta(t, 80.0, p.SpotMin, 1e-9)
		assert.InDelta(t, 120.0, p.SpotMax, 1e-9)
		assert.InDelta(t, 0.1, p.VolMin, 1e-9)
		assert.InDelta(t, 0.3, p.VolMax, 1e-9)
		assert.InDelta(t, 8.0, p.CallPurchaseMin, 1e-9)
		assert.InDelta(t, 12.0, p.CallPurchaseMax, 1e-9)
		assert.InDelta(t, 8.0, p.PutPurchaseMin, 1e-9)
		assert.InDelta(t, 12.0, p.PutPurchaseMax, 1e-9)
		assert.Equal(t, DefaultResolution, p.Resolution)
		assert.NoError(t, p.Validate())
	})

	t.Run("volatility defaults are clamped", func(t *testing.T) {
		high := in
		high.Volatility = 0.9
		p := NewHeatmapParameters(high, 10)
		assert.InDelta(t, 0.45, p.VolMin, 1e-9)
		assert.Equal(t, MaxVolatility, p.VolMax)

		low := in
		low.Volatility = 0.01
		p = NewHeatmapParameters(low, 10)
		assert.Equal(t, MinVolatility, p.VolMin)
		assert.NoError(t, p.Validate())
	})

	t.Run("decode keeps provided values", func(t *testing.T) {
		p, err := DecodeHeatmapParameters(in, 10, []byte(`{"spot_min": 50, "vol_max": 0.8, "resolution": 4}`))
		require.NoError(t, err)

		assert.Equal(t, 50.0, p.SpotMin)
		assert.InDelta(t, 120.0, p.SpotMax, 1e-9)
		assert.InDelta(t, 0.1, p.VolMin, 1e-9)
		assert.Equal(t, 0.8, p.VolMax)
		assert.Equal(t, 4, p.Resolution)
	})

	t.Run("decode without a body returns the defaults", func(t *testing.T) {
		for _, raw := range []string{"", "null", "{}"} {
			p, err := DecodeHeatmapParameters(in, 7, []byte(raw))
			require.NoError(t, err)
			assert.Equal(t, NewHeatmapParameters(in, 7), p)
		}
	})

	t.Run("decode keeps an explicit zero for validation", func(t *testing.T) {
		p, err := DecodeHeatmapParameters(in, 10, []byte(`{"spot_min": 0}`))
		require.NoError(t, err)
		assert.Equal(t, 0.0, p.SpotMin)
		assert.ErrorIs(t, p.Validate(), OutOfBoundsErr)

		p, err = DecodeHeatmapParameters(in, 10, []byte(`{"resolution": 0}`))
		require.NoError(t, err)
		assert.ErrorIs(t, p.Validate(), InvalidResolutionErr)
	})

	t.Run("decode rejects malformed values", func(t *testing.T) {
		_, err := DecodeHeatmapParameters(in, 10, []byte(`{"spot_min": "low"}`))
		assert.Error(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(p *HeatmapParameters)
			err    error
		}{
			{"inverted spot range", func(p *HeatmapParameters) { p.SpotMin, p.SpotMax = 120, 80 }, InvalidRangeErr},
			{"spot below minimum", func(p *HeatmapParameters) { p.SpotMin = 0.001 }, OutOfBoundsErr},
			{"volatility above maximum", func(p *HeatmapParameters) { p.VolMax = 1.5 }, OutOfBoundsErr},
			{"inverted put purchase range", func(p *HeatmapParameters) { p.PutPurchaseMin = 20 }, InvalidRangeErr},
			{"call purchase below minimum", func(p *HeatmapParameters) { p.CallPurchaseMin = -1 }, OutOfBoundsErr},
			{"resolution too small", func(p *HeatmapParameters) { p.Resolution = 1 }, InvalidResolutionErr},
			{"resolution too large", func(p *HeatmapParameters) { p.Resolution = MaxResolution + 1 }, InvalidResolutionErr},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				p := NewHeatmapParameters(in, 10)
				tc.mutate(&p)

				err := p.Validate()
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.err), "got %v", err)
			})
		}
	})

	t.Run("purchase range follows the option leg", func(t *testing.T) {
		p := HeatmapParameters{CallPurchaseMin: 1, CallPurchaseMax: 2, PutPurchaseMin: 3, PutPurchaseMax: 4}

		lo, hi := p.PurchaseRange(CallPnL)
		assert.Equal(t, []float64{1, 2}, []float64{lo, hi})

		lo, hi = p.PurchaseRange(PutPnL)
		assert.Equal(t, []float64{3, 4}, []float64{lo, hi})
	})
}

func TestPricingForm(t *testing.T) {
	defaults := pricing.DefaultInputs()

	t.Run("decodes the query string and derives sweep bounds", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?spot=120&volatility=0.3&resolution=5&type=put_pnl&unknown=1", nil)

		form := NewPricingForm(defaults, 10)
		require.NoError(t, form.ParseHTTPRequest(r))
		require.NoError(t, form.Validate(r))

		in := form.Inputs()
		assert.Equal(t, 120.0, in.Spot)
		assert.Equal(t, 100.0, in.Strike)
		assert.Equal(t, 0.3, in.Volatility)
		assert.Equal(t, PutPnL, form.Type)

		p := form.Heatmap()
		assert.InDelta(t, 96.0, p.SpotMin, 1e-9)
		assert.InDelta(t, 144.0, p.SpotMax, 1e-9)
		assert.InDelta(t, 0.15, p.VolMin, 1e-9)
		assert.InDelta(t, 0.45, p.VolMax, 1e-9)
		assert.Equal(t, 5, p.Resolution)
	})

	t.Run("falls back to the configured resolution", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)

		form := NewPricingForm(defaults, 12)
		require.NoError(t, form.ParseHTTPRequest(r))
		assert.Equal(t, 12, form.Heatmap().Resolution)
	})

	t.Run("rejects non-positive volatility", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?volatility=-0.2", nil)

		form := NewPricingForm(defaults, 10)
		require.NoError(t, form.ParseHTTPRequest(r))

		err := form.Validate(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pricing.NonPositiveVolatilityErr))
	})

	t.Run("explicit zero bound is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?spot_min=0", nil)

		form := NewPricingForm(defaults, 10)
		require.NoError(t, form.ParseHTTPRequest(r))
		assert.Equal(t, 0.0, form.Heatmap().SpotMin)

		err := form.Validate(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, OutOfBoundsErr))
	})

	t.Run("blank bound keeps its default", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?spot_min=&spot_max=130", nil)

		form := NewPricingForm(defaults, 10)
		require.NoError(t, form.ParseHTTPRequest(r))
		require.NoError(t, form.Validate(r))
		assert.InDelta(t, 80.0, form.Heatmap().SpotMin, 1e-9)
		assert.Equal(t, 130.0, form.Heatmap().SpotMax)
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?spot=abc", nil)

		form := NewPricingForm(defaults, 10)
		assert.Error(t, form.ParseHTTPRequest(r))
	})

	t.Run("query round trip", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?spot=90&rate=0.01&type=put&resolution=6", nil)

		form := NewPricingForm(defaults, 10)
		require.NoError(t, form.ParseHTTPRequest(r))

		values, err := form.Query()
		require.NoError(t, err)
		assert.NotContains(t, values, "defaultResolution")
		assert.Equal(t, "put", values.Get("type"))

		again := NewPricingForm(defaults, 10)
		require.NoError(t, again.ParseHTTPRequest(httptest.NewRequest("GET", "/?"+values.Encode(), nil)))

		assert.Equal(t, form.Inputs(), again.Inputs())
		assert.Equal(t, form.Type, again.Type)
		assert.Equal(t, form.Heatmap().Resolution, again.Heatmap().Resolution)
		assert.InDelta(t, form.Heatmap().SpotMax, again.Heatmap().SpotMax, 1e-6)
	})
}

func TestHeatmapRequest(t *testing.T) {
	t.Run("missing heatmap section uses defaults", func(t *testing.T) {
		body := `{"inputs": {"spot": 50, "strike": 55, "maturity": 0.5, "volatility": 0.4, "rate": 0.02}}`
		r := httptest.NewRequest("POST", "/api/v1/heatmap", strings.NewReader(body))

		req := NewHeatmapRequest(6)
		require.NoError(t, req.ParseHTTPRequest(r))
		require.NoError(t, req.Validate(r))

		require.NotNil(t, req.Heatmap)
		assert.InDelta(t, 40.0, req.Heatmap.SpotMin, 1e-9)
		assert.InDelta(t, 60.0, req.Heatmap.SpotMax, 1e-9)
		assert.Equal(t, 6, req.Heatmap.Resolution)
	})

	t.Run("explicit zero bound is rejected", func(t *testing.T) {
		body := `{"inputs": {"spot": 50, "strike": 55, "maturity": 0.5, "volatility": 0.4, "rate": 0.02}, "heatmap": {"vol_min": 0}}`
		r := httptest.NewRequest("POST", "/api/v1/heatmap", strings.NewReader(body))

		req := NewHeatmapRequest(6)
		require.NoError(t, req.ParseHTTPRequest(r))
		assert.InDelta(t, 40.0, req.Heatmap.SpotMin, 1e-9)

		err := req.Validate(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, OutOfBoundsErr))
	})

	t.Run("invalid maturity", func(t *testing.T) {
		body := `{"inputs": {"spot": 50, "strike": 55, "maturity": 0, "volatility": 0.4, "rate": 0.02}}`
		r := httptest.NewRequest("POST", "/api/v1/heatmap", strings.NewReader(body))

		req := NewHeatmapRequest(6)
		require.NoError(t, req.ParseHTTPRequest(r))

		err := req.Validate(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pricing.NonPositiveMaturityErr))
	})
}

func TestLoadPricerConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		config, err := LoadPricerConfig("")
		require.NoError(t, err)
		assert.Equal(t, pricing.DefaultInputs(), config.Defaults)
		assert.Equal(t, DefaultResolution, config.Resolution)
		assert.Equal(t, ":8080", config.Server.Addr)
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pricer.yaml")
		contents := `
defaults:
  spot: 42
  strike: 40
  maturity: 0.5
  volatility: 0.25
  rate: 0.03
resolution: 12
server:
  addr: ":9090"
log:
  format: json
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

		config, err := LoadPricerConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 42.0, config.Defaults.Spot)
		assert.Equal(t, 12, config.Resolution)
		assert.Equal(t, ":9090", config.Server.Addr)
		assert.Equal(t, 10, config.Server.WriteTimeoutSec)
		assert.Equal(t, "json", config.Log.Format)
		assert.Equal(t, "info", config.Log.Level)
	})

	t.Run("invalid defaults are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pricer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("defaults:\n  volatility: 0\n"), 0644))

		_, err := LoadPricerConfig(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pricing.NonPositiveVolatilityErr))
	})
}
