package eventmodels

import (
	"fmt"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

type OptionType string

func (o OptionType) Validate() error {
	if o != Call && o != Put && o != CallPnL && o != PutPnL {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

// IsPnL reports whether the grid holds model price minus purchase price.
func (o OptionType) IsPnL() bool {
	return o == CallPnL || o == PutPnL
}

// Leg returns the priced option behind a PnL type.
func (o OptionType) Leg() OptionType {
	switch o {
	case CallPnL:
		return Call
	case PutPnL:
		return Put
	default:
		return o
	}
}

func (o OptionType) PriceFrom(res pricing.Result) float64 {
	if o.Leg() == Put {
		return res.PutPrice
	}

	return res.CallPrice
}

func (o OptionType) Label() string {
	switch o {
	case Call:
		return "CALL"
	case Put:
		return "PUT"
	case CallPnL:
		return "CALL PnL"
	case PutPnL:
		return "PUT PnL"
	default:
		return string(o)
	}
}

const (
	Call    OptionType = "call"
	Put     OptionType = "put"
	CallPnL OptionType = "call_pnl"
	PutPnL  OptionType = "put_pnl"
)

var AllOptionTypes = []OptionType{Call, Put, CallPnL, PutPnL}
