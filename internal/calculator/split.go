// Package calculator derives per-participant receipts from a set of shared expense items.
// Every function here is pure: inputs are never mutated and no state is kept between calls.
package calculator

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/mmynk/dutchpay/internal/models"
)

// ErrParticipantNotFound is returned when a receipt is requested for an unknown participant.
var ErrParticipantNotFound = errors.New("participant not found")

// ComputeReceipt builds the itemized receipt for one participant.
//
// Items are filtered to those shared by the participant, keeping their order.
// Each line amount is price / sharerCount and the total is the sum of the
// line amounts; both are exact rationals, rounding is left to presentation.
func ComputeReceipt(participantID string, participants []models.Participant, items []models.ExpenseItem) (models.Receipt, error) {
	var person *models.Participant
	for i := range participants {
		if participants[i].ID == participantID {
			person = &participants[i]
			break
		}
	}
	if person == nil {
		return models.Receipt{}, fmt.Errorf("%w: %q", ErrParticipantNotFound, participantID)
	}
	return receiptFor(*person, items), nil
}

// ComputeAllReceipts returns one receipt per participant, in roster order.
func ComputeAllReceipts(participants []models.Participant, items []models.ExpenseItem) []models.Receipt {
	receipts := make([]models.Receipt, 0, len(participants))
	for _, p := range participants {
		receipts = append(receipts, receiptFor(p, items))
	}
	return receipts
}

// ComputeGrandTotal sums the full price of every item, independent of how
// each item is divided among its sharers.
func ComputeGrandTotal(items []models.ExpenseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

func receiptFor(person models.Participant, items []models.ExpenseItem) models.Receipt {
	receipt := models.Receipt{
		Participant: person,
		Lines:       []models.ReceiptLine{},
		Total:       new(big.Rat),
	}
	for _, item := range items {
		if len(item.SharedBy) == 0 || !item.IsSharedBy(person.ID) {
			continue
		}
		amount := ShareOf(item.Price, len(item.SharedBy))
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			ItemID:        item.ID,
			Name:          item.Name,
			OriginalPrice: item.Price,
			SharerCount:   len(item.SharedBy),
			Amount:        amount,
		})
		receipt.Total.Add(receipt.Total, amount)
	}
	return receipt
}

// ShareOf returns price / sharers as an exact rational.
// sharers must be positive.
func ShareOf(price decimal.Decimal, sharers int) *big.Rat {
	share := price.Rat()
	return share.Quo(share, big.NewRat(int64(sharers), 1))
}
