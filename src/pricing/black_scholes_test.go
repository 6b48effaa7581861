package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	atm := Inputs{Spot: 100, Strike: 100, Maturity: 1, Volatility: 0.2, Rate: 0.05}

	t.Run("reference values", func(t *testing.T) {
		res, err := Price(atm)
		require.NoError(t, err)

		assert.InDelta(t, 10.4506, res.CallPrice, 1e-4)
		assert.InDelta(t, 5.5735, res.PutPrice, 1e-4)
		assert.Equal(t, atm, res.Inputs)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := Price(atm)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			again, err := Price(atm)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("put call parity", func(t *testing.T) {
		cases := []Inputs{
			atm,
			{Spot: 80, Strike: 120, Maturity: 0.25, Volatility: 0.35, Rate: 0.01},
			{Spot: 150, Strike: 90, Maturity: 3, Volatility: 0.6, Rate: 0.08},
			{Spot: 42, Strike: 40, Maturity: 0.5, Volatility: 0.2, Rate: -0.01},
		}

		for _, in := range cases {
			res, err := Price(in)
			require.NoError(t, err)

			lhs := res.CallPrice - res.PutPrice
			rhs := in.Spot - in.Strike*math.Exp(-in.Rate*in.Maturity)
			assert.InDelta(t, rhs, lhs, 1e-9)
			assert.InDelta(t, 0, res.ParityGap(), 1e-9)
		}
	})

	t.Run("volatility goes to zero", func(t *testing.T) {
		for _, spot := range []float64{80, 95.12, 100, 120} {
			in := Inputs{Spot: spot, Strike: 100, Maturity: 1, Volatility: 1e-9, Rate: 0.05}
			res, err := Price(in)
			require.NoError(t, err)

			expected := math.Max(spot-100*math.Exp(-0.05), 0)
			assert.InDelta(t, expected, res.CallPrice, 1e-6)
		}
	})

	t.Run("maturity goes to zero", func(t *testing.T) {
		for _, spot := range []float64{80, 99.5, 100, 100.5, 120} {
			in := Inputs{Spot: spot, Strike: 100, Maturity: 1e-10, Volatility: 0.2, Rate: 0.05}
			res, err := Price(in)
			require.NoError(t, err)

			assert.InDelta(t, math.Max(spot-100, 0), res.CallPrice, 1e-3)
			assert.InDelta(t, math.Max(100-spot, 0), res.PutPrice, 1e-3)
		}
	})

	t.Run("underflowing volatility uses the deterministic limit", func(t *testing.T) {
		// sigma*sqrt(T) = 1e-350 is below the smallest subnormal float64
		in := Inputs{Spot: 120, Strike: 100, Maturity: 1e-100, Volatility: 1e-300, Rate: 0.05}
		res, err := Price(in)
		require.NoError(t, err)

		assert.InDelta(t, 20, res.CallPrice, 1e-9)
		assert.Equal(t, 0.0, res.PutPrice)
		assert.Equal(t, 1.0, res.Greeks.CallDelta)
		assert.Equal(t, 0.0, res.Greeks.PutDelta)
	})

	t.Run("prices are never negative", func(t *testing.T) {
		for _, spot := range []float64{0.01, 1, 50, 100, 1e4} {
			for _, vol := range []float64{0.01, 0.2, 1, 3} {
				for _, maturity := range []float64{1e-6, 0.1, 1, 30} {
					in := Inputs{Spot: spot, Strike: 100, Maturity: maturity, Volatility: vol, Rate: 0.05}
					res, err := Price(in)
					require.NoError(t, err)

					assert.GreaterOrEqual(t, res.CallPrice, 0.0)
					assert.GreaterOrEqual(t, res.PutPrice, 0.0)
				}
			}
		}
	})

	t.Run("huge volatility converges to the spot", func(t *testing.T) {
		in := Inputs{Spot: 100, Strike: 100, Maturity: 1, Volatility: 1e160, Rate: 0.05}
		res, err := Price(in)
		require.NoError(t, err)

		assert.InDelta(t, 100, res.CallPrice, 1e-9)
		assert.InDelta(t, 100*math.Exp(-0.05), res.PutPrice, 1e-9)
		assert.Equal(t, 0.0, res.Greeks.Gamma)
	})

	t.Run("call and put helpers", func(t *testing.T) {
		call, err := Call(atm)
		require.NoError(t, err)
		put, err := Put(atm)
		require.NoError(t, err)

		assert.InDelta(t, 10.4506, call, 1e-4)
		assert.InDelta(t, 5.5735, put, 1e-4)
	})
}

func TestPriceValidation(t *testing.T) {
	valid := DefaultInputs()

	cases := []struct {
		name   string
		mutate func(in *Inputs)
		err    error
	}{
		{"zero spot", func(in *Inputs) { in.Spot = 0 }, NonPositiveSpotErr},
		{"negative strike", func(in *Inputs) { in.Strike = -1 }, NonPositiveStrikeErr},
		{"zero maturity", func(in *Inputs) { in.Maturity = 0 }, NonPositiveMaturityErr},
		{"negative maturity", func(in *Inputs) { in.Maturity = -0.5 }, NonPositiveMaturityErr},
		{"zero volatility", func(in *Inputs) { in.Volatility = 0 }, NonPositiveVolatilityErr},
		{"nan rate", func(in *Inputs) { in.Rate = math.NaN() }, NonFiniteInputErr},
		{"infinite spot", func(in *Inputs) { in.Spot = math.Inf(1) }, NonFiniteInputErr},
		{"discount factor overflows", func(in *Inputs) { in.Rate = -800 }, NonFiniteResultErr},
		{"volatility overflows", func(in *Inputs) { in.Volatility, in.Maturity = math.MaxFloat64, 4 }, NonFiniteResultErr},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)

			_, err := Price(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}

	t.Run("negative rate is accepted", func(t *testing.T) {
		in := valid
		in.Rate = -0.02

		_, err := Price(in)
		assert.NoError(t, err)
	})
}

func TestGreeks(t *testing.T) {
	in := Inputs{Spot: 100, Strike: 100, Maturity: 1, Volatility: 0.2, Rate: 0.05}
	res, err := Price(in)
	require.NoError(t, err)
	g := res.Greeks

	t.Run("reference values", func(t *testing.T) {
		assert.InDelta(t, 0.6368, g.CallDelta, 1e-4)
		assert.InDelta(t, -0.3632, g.PutDelta, 1e-4)
		assert.InDelta(t, 0.018762, g.Gamma, 1e-5)
		assert.InDelta(t, 37.524, g.Vega, 1e-3)
	})

	bump := func(t *testing.T, mutate func(in *Inputs, h float64), h float64) (Result, Result) {
		up, down := in, in
		mutate(&up, h)
		mutate(&down, -h)

		resUp, err := Price(up)
		require.NoError(t, err)
		resDown, err := Price(down)
		require.NoError(t, err)

		return resUp, resDown
	}

	t.Run("delta and gamma match finite differences", func(t *testing.T) {
		h := 1e-3
		up, down := bump(t, func(in *Inputs, h float64) { in.Spot += h }, h)

		assert.InDelta(t, (up.CallPrice-down.CallPrice)/(2*h), g.CallDelta, 1e-6)
		assert.InDelta(t, (up.PutPrice-down.PutPrice)/(2*h), g.PutDelta, 1e-6)
		assert.InDelta(t, (up.CallPrice-2*res.CallPrice+down.CallPrice)/(h*h), g.Gamma, 1e-4)
	})

	t.Run("vega matches finite differences", func(t *testing.T) {
		h := 1e-5
		up, down := bump(t, func(in *Inputs, h float64) { in.Volatility += h }, h)

		assert.InDelta(t, (up.CallPrice-down.CallPrice)/(2*h), g.Vega, 1e-4)
		assert.InDelta(t, (up.PutPrice-down.PutPrice)/(2*h), g.Vega, 1e-4)
	})

	t.Run("theta matches finite differences", func(t *testing.T) {
		h := 1e-5
		up, down := bump(t, func(in *Inputs, h float64) { in.Maturity += h }, h)

		// theta is the derivative with respect to calendar time, i.e. -dV/dT
		assert.InDelta(t, -(up.CallPrice-down.CallPrice)/(2*h), g.CallTheta, 1e-4)
		assert.InDelta(t, -(up.PutPrice-down.PutPrice)/(2*h), g.PutTheta, 1e-4)
	})

	t.Run("rho matches finite differences", func(t *testing.T) {
		h := 1e-5
		up, down := bump(t, func(in *Inputs, h float64) { in.Rate += h }, h)

		assert.InDelta(t, (up.CallPrice-down.CallPrice)/(2*h), g.CallRho, 1e-4)
		assert.InDelta(t, (up.PutPrice-down.PutPrice)/(2*h), g.PutRho, 1e-4)
	})
}
