// Package api declares the request and response messages of the dutchpay.v1
// LedgerService. Messages travel as JSON over the Connect protocol; see
// package apiconnect for the handler and client.
//
// Money fields are decimals encoded as JSON strings. Exact per-person shares
// are rationals ("10000/3") alongside a 2-place approximation and the value
// rounded to whole currency units for display.
package api
