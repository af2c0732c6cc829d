package models

import "github.com/shopspring/decimal"

// ExpenseItem is a single priced line on the bill.
// The price is split equally among everyone in SharedBy.
type ExpenseItem struct {
	// ID is the unique identifier for the item (UUIDv7, time ordered).
	ID string

	// Name is the free-text label (e.g., "Pizza", "Beer").
	Name string

	// Price is the full price of the item in whole currency units.
	Price decimal.Decimal

	// SharedBy lists the participant IDs splitting this item, in insertion order.
	// It is never empty for an item that is part of a ledger.
	SharedBy []string

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64
}

// IsSharedBy reports whether the participant is one of the item's sharers.
func (i ExpenseItem) IsSharedBy(participantID string) bool {
	for _, id := range i.SharedBy {
		if id == participantID {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not alias the receiver's SharedBy slice.
func (i ExpenseItem) Clone() ExpenseItem {
	c := i
	c.SharedBy = append([]string(nil), i.SharedBy...)
	return c
}
