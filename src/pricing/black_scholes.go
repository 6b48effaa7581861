package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Greeks are per unit of the underlying. Theta is per year; vega and rho are per
// 1.00 change in volatility and rate respectively.
type Greeks struct {
	CallDelta float64 `json:"call_delta"`
	PutDelta  float64 `json:"put_delta"`
	Gamma     float64 `json:"gamma"`
	Vega      float64 `json:"vega"`
	CallTheta float64 `json:"call_theta"`
	PutTheta  float64 `json:"put_theta"`
	CallRho   float64 `json:"call_rho"`
	PutRho    float64 `json:"put_rho"`
}

type Result struct {
	Inputs    Inputs  `json:"inputs"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
	Greeks    Greeks  `json:"greeks"`
}

type terms struct {
	d1, d2   float64
	sqrtT    float64
	discount float64
}

func newTerms(in Inputs) (terms, bool) {
	sqrtT := math.Sqrt(in.Maturity)
	volSqrtT := in.Volatility * sqrtT
	discount := math.Exp(-in.Rate * in.Maturity)

	if volSqrtT == 0 {
		return terms{sqrtT: sqrtT, discount: discount}, false
	}

	// expanded so that sigma^2 is never formed and cannot overflow
	d1 := math.Log(in.Spot/in.Strike)/volSqrtT + in.Rate/in.Volatility*sqrtT + 0.5*volSqrtT

	return terms{
		d1:       d1,
		d2:       d1 - volSqrtT,
		sqrtT:    sqrtT,
		discount: discount,
	}, true
}

// Price evaluates the closed-form Black-Scholes formula for a European call and put
// on a non-dividend paying underlying.
func Price(in Inputs) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("pricing.Price: %w", err)
	}

	var res Result
	if t, ok := newTerms(in); ok {
		res = closedForm(in, t)
	} else {
		res = degenerate(in, t)
	}

	if !res.finite() {
		return Result{}, fmt.Errorf("pricing.Price: %+v: %w", in, NonFiniteResultErr)
	}

	return res, nil
}

func closedForm(in Inputs, t terms) Result {
	n := distuv.UnitNormal
	strikePV := in.Strike * t.discount

	call := in.Spot*n.CDF(t.d1) - strikePV*n.CDF(t.d2)
	put := strikePV*n.CDF(-t.d2) - in.Spot*n.CDF(-t.d1)

	pdf := n.Prob(t.d1)
	decay := -in.Spot * pdf * in.Volatility / (2 * t.sqrtT)

	return Result{
		Inputs: in,
		// rounding can leave a deep out-of-the-money leg a few ulps below zero
		CallPrice: math.Max(call, 0),
		PutPrice:  math.Max(put, 0),
		Greeks: Greeks{
			CallDelta: n.CDF(t.d1),
			PutDelta:  n.CDF(t.d1) - 1,
			Gamma:     pdf / (in.Spot * in.Volatility * t.sqrtT),
			Vega:      in.Spot * pdf * t.sqrtT,
			CallTheta: decay - in.Rate*strikePV*n.CDF(t.d2),
			PutTheta:  decay + in.Rate*strikePV*n.CDF(-t.d2),
			CallRho:   in.Maturity * strikePV * n.CDF(t.d2),
			PutRho:    -in.Maturity * strikePV * n.CDF(-t.d2),
		},
	}
}

func (r Result) finite() bool {
	g := r.Greeks
	for _, v := range []float64{r.CallPrice, r.PutPrice, g.CallDelta, g.PutDelta, g.Gamma, g.Vega, g.CallTheta, g.PutTheta, g.CallRho, g.PutRho} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// degenerate is the sigma*sqrt(T) -> 0 limit, where the forward payoff is certain.
func degenerate(in Inputs, t terms) Result {
	strikePV := in.Strike * t.discount
	res := Result{
		Inputs:    in,
		CallPrice: math.Max(in.Spot-strikePV, 0),
		PutPrice:  math.Max(strikePV-in.Spot, 0),
	}

	if in.Spot > strikePV {
		res.Greeks.CallDelta = 1
		res.Greeks.CallTheta = -in.Rate * strikePV
		res.Greeks.CallRho = in.Maturity * strikePV
	} else {
		res.Greeks.PutTheta = in.Rate * strikePV
		res.Greeks.PutRho = -in.Maturity * strikePV
	}
	res.Greeks.PutDelta = res.Greeks.CallDelta - 1

	return res
}

func Call(in Inputs) (float64, error) {
	res, err := Price(in)
	if err != nil {
		return 0, err
	}

	return res.CallPrice, nil
}

func Put(in Inputs) (float64, error) {
	res, err := Price(in)
	if err != nil {
		return 0, err
	}

	return res.PutPrice, nil
}

// ParityGap returns C - P - (S - K*exp(-rT)), which is zero up to rounding.
func (r Result) ParityGap() float64 {
	forward := r.Inputs.Spot - r.Inputs.Strike*math.Exp(-r.Inputs.Rate*r.Inputs.Maturity)
	return r.CallPrice - r.PutPrice - forward
}
