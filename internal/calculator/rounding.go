package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// RoundForDisplay rounds an exact amount to the nearest whole currency unit,
// halves away from zero. The result is for presentation only.
//
// Rounding lines and totals independently can disagree by up to half a unit
// per line; that difference is expected and is not redistributed.
func RoundForDisplay(amount *big.Rat) decimal.Decimal {
	return Approximate(amount, 0)
}

// Approximate renders an exact amount as a decimal with the given number of places.
func Approximate(amount *big.Rat, places int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	num := decimal.NewFromBigInt(amount.Num(), 0)
	den := decimal.NewFromBigInt(amount.Denom(), 0)
	return num.DivRound(den, places)
}

// SumRounded adds amounts after rounding each one for display.
// This is what a reader adding up printed receipts would see.
func SumRounded(amounts []*big.Rat) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(RoundForDisplay(a))
	}
	return sum
}
