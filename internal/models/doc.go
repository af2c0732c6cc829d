// Package models defines the core domain models for dutchpay.
//
// # Models
//
//   - Participant: a person in the group, identified by a short id ("1".."n")
//   - ExpenseItem: a priced line shared equally by a subset of participants
//   - ReceiptLine / Receipt: derived, per-participant view of the items they share
//   - SettlementAccount: optional bank details printed on every receipt
//
// # Design Principles
//
// 1. **Derived values are never stored**: receipts are recomputed from items on every query
// 2. **Exact shares**: per-person amounts are rationals; rounding happens only for display
// 3. **Avoid circular references**: items reference participants by ID strings, not pointers
package models
