// README: Pricing service computes the placeholder distance and fare for two location labels.
package pricing

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"taxi/internal/types"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Estimate is total and deterministic. The distance is a stand-in derived from the
// label lengths, not from geography.
func (s *Service) Estimate(pickup, drop string) Estimate {
	d := DistanceKm(pickup, drop)
	return Estimate{
		DistanceKm: d,
		Fare:       types.MoneyFromFloat(FareFor(d), currencyID),
	}
}

// DistanceKm returns 0 for labels that match after trimming and lower-casing,
// otherwise |len(pickup)-len(drop)|*2+5 rounded to two decimals.
func DistanceKm(pickup, drop string) float64 {
	if normalize(pickup) == normalize(drop) {
		return 0
	}
	diff := utf8.RuneCountInString(pickup) - utf8.RuneCountInString(drop)
	if diff < 0 {
		diff = -diff
	}
	return round2(float64(diff)*kmPerChar + minDistKm)
}

func FareFor(distanceKm float64) float64 {
	return round2(baseFare + distanceKm*perKm)
}

// Display renders an estimate the way the booking form shows it.
func (e Estimate) Display() string {
	return fmt.Sprintf("Distance: %.2f km | Fare: %s", e.DistanceKm, e.Fare)
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
