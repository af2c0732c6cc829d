package main

import (
	"os"

	"github.com/mmynk/dutchpay/cmd/dutchpay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
