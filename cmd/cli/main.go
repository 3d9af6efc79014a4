package main

import (
	"os"

	"github.com/crucial707/travel-tracker/cmd/cli/destinations"
	"github.com/crucial707/travel-tracker/cmd/cli/root"
	"github.com/crucial707/travel-tracker/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	destinations.InitDestinations(rootCmd)
	destinations.InitAudit(rootCmd)

	// cobra already printed the error
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
