package calculator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundForDisplay(t *testing.T) {
	tests := []struct {
		name   string
		amount *big.Rat
		want   int64
	}{
		{name: "exact", amount: big.NewRat(5000, 1), want: 5000},
		{name: "third rounds down", amount: big.NewRat(10000, 3), want: 3333},
		{name: "two thirds rounds up", amount: big.NewRat(20000, 3), want: 6667},
		{name: "half rounds up", amount: big.NewRat(5001, 2), want: 2501},
		{name: "zero", amount: new(big.Rat), want: 0},
		{name: "nil", amount: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundForDisplay(tt.amount).IntPart())
		})
	}
}

func TestApproximate(t *testing.T) {
	assert.Equal(t, "3333.33", Approximate(big.NewRat(10000, 3), 2).StringFixed(2))
	assert.Equal(t, "2500.5", Approximate(big.NewRat(5001, 2), 4).String())
}

func TestSumRounded_DisagreesWithExactSum(t *testing.T) {
	// Three lines of 1/2 each: exact sum is 1.5, rounded per line is 3.
	halves := []*big.Rat{big.NewRat(1, 2), big.NewRat(1, 2), big.NewRat(1, 2)}
	assert.Equal(t, int64(3), SumRounded(halves).IntPart())

	exact := new(big.Rat)
	for _, h := range halves {
		exact.Add(exact, h)
	}
	assert.Equal(t, int64(2), RoundForDisplay(exact).IntPart())
}
