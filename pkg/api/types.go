package api

import "github.com/shopspring/decimal"

// Participant is a member of the group.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is an expense item on the ledger.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	SharedBy  []string        `json:"sharedBy"`
	CreatedAt int64           `json:"createdAt"`
}

// SettlementAccount is where participants transfer their share.
type SettlementAccount struct {
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

// ReceiptLine is one participant's share of one item.
type ReceiptLine struct {
	ItemID        string          `json:"itemId"`
	Name          string          `json:"name"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	SharerCount   int             `json:"sharerCount"`
	// Amount is the exact share as a reduced fraction, e.g. "10000/3".
	Amount        string          `json:"amount"`
	AmountApprox  decimal.Decimal `json:"amountApprox"`
	AmountDisplay decimal.Decimal `json:"amountDisplay"`
}

// Receipt is the itemized view for one participant.
type Receipt struct {
	Participant  Participant        `json:"participant"`
	Lines        []ReceiptLine      `json:"lines"`
	Total        string             `json:"total"`
	TotalApprox  decimal.Decimal    `json:"totalApprox"`
	TotalDisplay decimal.Decimal    `json:"totalDisplay"`
	Account      *SettlementAccount `json:"account,omitempty"`
}
