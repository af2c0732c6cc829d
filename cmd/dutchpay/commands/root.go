package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/dutchpay/pkg/logging"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dutchpay",
		Short:         "Split a group bill item by item",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWithLevel(logging.ParseLevel(logLevel))
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(splitCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
