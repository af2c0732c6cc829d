package api

import "github.com/shopspring/decimal"

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	State     string `json:"state"`
}

type InitParticipantsRequest struct {
	Count int `json:"count"`
}

type InitParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

type RenameParticipantRequest struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
}

type RenameParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type SetSettlementAccountRequest struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

type SetSettlementAccountResponse struct{}

type AddItemRequest struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	SharerIDs []string        `json:"sharerIds"`
}

type AddItemResponse struct {
	ItemID string `json:"itemId"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItemResponse struct{}

type ResetAllRequest struct{}

type ResetAllResponse struct {
	State string `json:"state"`
}

type GetLedgerRequest struct{}

type GetLedgerResponse struct {
	State        string             `json:"state"`
	Participants []Participant      `json:"participants"`
	Items        []Item             `json:"items"`
	Account      *SettlementAccount `json:"account,omitempty"`
}

type GetReceiptRequest struct {
	ParticipantID string `json:"participantId"`
}

type GetReceiptResponse struct {
	Receipt Receipt `json:"receipt"`
}

type ListReceiptsRequest struct{}

type ListReceiptsResponse struct {
	Receipts   []Receipt       `json:"receipts"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	// RoundedSum adds up the displayed (rounded) totals; it may differ from
	// GrandTotal by a few units.
	RoundedSum decimal.Decimal `json:"roundedSum"`
}

type GetGrandTotalRequest struct{}

type GetGrandTotalResponse struct {
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

type SummarizeRequest struct{}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}
