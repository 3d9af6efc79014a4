package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "travel",
	Short: "Travel tracker CLI",
	Long: `Command line interface for the travel tracker API.
Set TRAVEL_API_URL to point at a server other than http://localhost:8080.`,
	SilenceUsage: true,
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
