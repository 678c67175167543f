// README: Fare estimate produced for a pickup/drop label pair.
package pricing

import "taxi/internal/types"

const (
	baseFare   = 50.0
	perKm      = 10.0
	kmPerChar  = 2.0
	minDistKm  = 5.0
	currencyID = types.CurrencyINR
)

type Estimate struct {
	DistanceKm float64
	Fare       types.Money
}
