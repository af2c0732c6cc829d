package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/dutchpay/internal/billfile"
	"github.com/mmynk/dutchpay/internal/calculator"
	"github.com/mmynk/dutchpay/internal/config"
	"github.com/mmynk/dutchpay/internal/ledger"
	"github.com/mmynk/dutchpay/internal/models"
	"github.com/mmynk/dutchpay/internal/summary"
)

// newSummarizer is replaced in tests.
var newSummarizer = func(ctx context.Context) (summary.Summarizer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	var gen summary.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := summary.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		gen = gemini
	}
	return summary.New(gen, summary.WithTimeout(cfg.SummaryTimeout)), nil
}

// split --file <bill>: print every receipt and the grand total.
func splitCmd() *cobra.Command {
	var (
		billPath    string
		withSummary bool
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Print each participant's receipt for a bill file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := billfile.Load(billPath)
			if err != nil {
				return err
			}
			l, err := bill.Ledger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printReceipts(out, l); err != nil {
				return err
			}

			if withSummary {
				summarizer, err := newSummarizer(cmd.Context())
				if err != nil {
					return err
				}
				text := summarizer.Summarize(cmd.Context(), l.Items(), l.Participants())
				fmt.Fprintf(out, "\n%s\n", text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&billPath, "file", "f", "", "bill file (yaml, json or toml)")
	cmd.Flags().BoolVar(&withSummary, "summary", false, "also print a generated summary of the bill")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printReceipts(w io.Writer, l *ledger.Ledger) error {
	receipts, err := l.Receipts()
	if err != nil {
		return err
	}
	grandTotal, err := l.GrandTotal()
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	account := l.SettlementAccount()

	for _, r := range receipts {
		p.Fprintf(w, "== %s ==\n", r.Participant.Name)
		for _, line := range r.Lines {
			p.Fprintf(w, "  %-20s %d / %d = %d\n",
				line.Name,
				line.OriginalPrice.IntPart(),
				line.SharerCount,
				calculator.RoundForDisplay(line.Amount).IntPart(),
			)
		}
		p.Fprintf(w, "  %-20s %d\n", "Total", calculator.RoundForDisplay(r.Total).IntPart())
		if !account.IsEmpty() {
			fmt.Fprintf(w, "  Transfer to %s\n", formatAccount(account))
		}
		fmt.Fprintln(w)
	}
	p.Fprintf(w, "Grand total: %d\n", grandTotal.IntPart())
	return nil
}

func formatAccount(a models.SettlementAccount) string {
	return strings.TrimSpace(a.BankName + " " + a.AccountNumber)
}
