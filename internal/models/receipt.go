package models

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ReceiptLine is one item's share for one participant.
// It is computed on demand and never stored.
type ReceiptLine struct {
	ItemID string

	// Name is the item's label.
	Name string

	// OriginalPrice is the item's full price before splitting.
	OriginalPrice decimal.Decimal

	// SharerCount is the number of participants splitting the item.
	SharerCount int

	// Amount is OriginalPrice / SharerCount, exact.
	Amount *big.Rat
}

// Receipt is the itemized view for one participant.
type Receipt struct {
	Participant Participant

	// Lines are in the ledger's item order.
	Lines []ReceiptLine

	// Total is the exact sum of the line amounts.
	Total *big.Rat
}
