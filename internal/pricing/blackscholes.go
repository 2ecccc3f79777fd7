package pricing

import "math"

// OptionKind selects the side of the Black-Scholes closed form.
type OptionKind string

const (
	Call OptionKind = "call"
	Put  OptionKind = "put"
)

const (
	// DefaultRiskFreeRate is used when no external rate source is wired in.
	DefaultRiskFreeRate = 0.04

	// MinAPY is the guaranteed minimum annualized yield of the structured
	// product. PriceToAPY never returns less than this for a live term.
	MinAPY = 0.05
)

// PriceToAPY converts a European option premium into the annualized yield of
// a fixed-term structured product.
//
// The premium follows the standard Black-Scholes closed form. Principal is
// the spot for a call (asset-denominated product) and the strike for a put
// (cash-denominated product); apy = premium/principal x 365/days.
//
// days <= 0 returns 0.0 so an expired or degenerate contract prices to
// nothing instead of erroring inside a rolling simulation. The function is
// pure and never fails for finite positive inputs.
func PriceToAPY(spot, strike, days, sigmaAnnual, riskFree float64, kind OptionKind) float64 {
	if days <= 0 {
		return 0.0
	}
	t := days / 365.0

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (riskFree+0.5*sigmaAnnual*sigmaAnnual)*t) / (sigmaAnnual * sqrtT)
	d2 := d1 - sigmaAnnual*sqrtT

	var price, principal float64
	if kind == Call {
		price = spot*normCDF(d1) - strike*math.Exp(-riskFree*t)*normCDF(d2)
		principal = spot
	} else {
		price = strike*math.Exp(-riskFree*t)*normCDF(-d2) - spot*normCDF(-d1)
		principal = strike
	}

	apy := (price / principal) * (365.0 / days)
	return math.Max(apy, MinAPY)
}

// normCDF is the standard normal CDF via the error function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
