package service

import (
	"github.com/mmynk/dutchpay/internal/calculator"
	"github.com/mmynk/dutchpay/internal/models"
	"github.com/mmynk/dutchpay/pkg/api"
)

// approxPlaces is the precision of the approximate amounts in responses.
const approxPlaces = 2

func toAPIParticipant(p models.Participant) api.Participant {
	return api.Participant{ID: p.ID, Name: p.Name}
}

func toAPIParticipants(ps []models.Participant) []api.Participant {
	out := make([]api.Participant, len(ps))
	for i, p := range ps {
		out[i] = toAPIParticipant(p)
	}
	return out
}

func toAPIItems(items []models.ExpenseItem) []api.Item {
	out := make([]api.Item, len(items))
	for i, item := range items {
		out[i] = api.Item{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			SharedBy:  item.SharedBy,
			CreatedAt: item.CreatedAt,
		}
	}
	return out
}

func toAPIAccount(a models.SettlementAccount) *api.SettlementAccount {
	if a.IsEmpty() {
		return nil
	}
	return &api.SettlementAccount{BankName: a.BankName, AccountNumber: a.AccountNumber}
}

func toAPIReceipt(r models.Receipt, account models.SettlementAccount) api.Receipt {
	lines := make([]api.ReceiptLine, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = api.ReceiptLine{
			ItemID:        line.ItemID,
			Name:          line.Name,
			OriginalPrice: line.OriginalPrice,
			SharerCount:   line.SharerCount,
			Amount:        line.Amount.RatString(),
			AmountApprox:  calculator.Approximate(line.Amount, approxPlaces),
			AmountDisplay: calculator.RoundForDisplay(line.Amount),
		}
	}
	return api.Receipt{
		Participant:  toAPIParticipant(r.Participant),
		Lines:        lines,
		Total:        r.Total.RatString(),
		TotalApprox:  calculator.Approximate(r.Total, approxPlaces),
		TotalDisplay: calculator.RoundForDisplay(r.Total),
		Account:      toAPIAccount(account),
	}
}
