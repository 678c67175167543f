// README: Common money value object used across modules.
package types

import (
	"fmt"
	"math"
)

const CurrencyINR = "INR"

// Money holds an amount in minor units (paise for INR).
type Money struct {
	Amount   int64
	Currency string
}

// MoneyFromFloat converts a two-decimal major-unit amount into Money.
func MoneyFromFloat(v float64, currency string) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

// Float returns the amount in major units.
func (m Money) Float() float64 {
	return float64(m.Amount) / 100
}

func (m Money) Symbol() string {
	switch m.Currency {
	case CurrencyINR, "":
		return "₹"
	default:
		return m.Currency + " "
	}
}

// String renders the amount with its currency symbol and two decimals, e.g. "₹140.00".
func (m Money) String() string {
	return fmt.Sprintf("%s%.2f", m.Symbol(), m.Float())
}
