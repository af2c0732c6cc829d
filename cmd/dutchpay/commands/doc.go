// Package commands defines the dutchpay CLI.
//
// Commands
//
//   - split    Print each participant's receipt for a bill file
//
// The split command loads the bill into a ledger and prints amounts rounded
// to whole currency units. With --summary it also asks the summary
// collaborator for commentary, configured from the same environment as the
// server (GEMINI_API_KEY, GEMINI_MODEL, SUMMARY_TIMEOUT).
package commands
