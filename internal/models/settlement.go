package models

// SettlementAccount is the bank account participants should transfer their share to.
// Both fields are optional; an empty account is not printed.
type SettlementAccount struct {
	BankName      string
	AccountNumber string
}

// IsEmpty reports whether neither field is set.
func (a SettlementAccount) IsEmpty() bool {
	return a.BankName == "" && a.AccountNumber == ""
}
