package pricing

import (
	"fmt"
	"math"
)

var NonPositiveSpotErr = fmt.Errorf("spot price must be greater than zero")
var NonPositiveStrikeErr = fmt.Errorf("strike price must be greater than zero")
var NonPositiveMaturityErr = fmt.Errorf("time to maturity must be greater than zero")
var NonPositiveVolatilityErr = fmt.Errorf("volatility must be greater than zero")
var NonFiniteInputErr = fmt.Errorf("inputs must be finite numbers")
var NonFiniteResultErr = fmt.Errorf("inputs are too extreme to produce a finite price")

// Inputs are the five scalars of the Black-Scholes model. Maturity is in years,
// volatility and rate are annualized decimals (0.2 == 20%).
type Inputs struct {
	Spot       float64 `json:"spot" yaml:"spot"`
	Strike     float64 `json:"strike" yaml:"strike"`
	Maturity   float64 `json:"maturity" yaml:"maturity"`
	Volatility float64 `json:"volatility" yaml:"volatility"`
	Rate       float64 `json:"rate" yaml:"rate"`
}

func DefaultInputs() Inputs {
	return Inputs{
		Spot:       100,
		Strike:     100,
		Maturity:   1,
		Volatility: 0.2,
		Rate:       0.05,
	}
}

func (in Inputs) Validate() error {
	for _, v := range []float64{in.Spot, in.Strike, in.Maturity, in.Volatility, in.Rate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NonFiniteInputErr
		}
	}

	if in.Spot <= 0 {
		return fmt.Errorf("Inputs.Validate: found %v: %w", in.Spot, NonPositiveSpotErr)
	}

	if in.Strike <= 0 {
		return fmt.Errorf("Inputs.Validate: found %v: %w", in.Strike, NonPositiveStrikeErr)
	}

	if in.Maturity <= 0 {
		return fmt.Errorf("Inputs.Validate: found %v: %w", in.Maturity, NonPositiveMaturityErr)
	}

	if in.Volatility <= 0 {
		return fmt.Errorf("Inputs.Validate: found %v: %w", in.Volatility, NonPositiveVolatilityErr)
	}

	return nil
}

// WithSpotAndVolatility returns a copy of the inputs moved to another point of a sweep.
func (in Inputs) WithSpotAndVolatility(spot, volatility float64) Inputs {
	in.Spot = spot
	in.Volatility = volatility
	return in
}
