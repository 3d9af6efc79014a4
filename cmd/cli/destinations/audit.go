package destinations

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/crucial707/travel-tracker/cmd/cli/client"
	"github.com/crucial707/travel-tracker/cmd/cli/output"
	"github.com/crucial707/travel-tracker/internal/models"
	"github.com/spf13/cobra"
)

// InitAudit adds `travel audit`, the caller's change history.
func InitAudit(rootCmd *cobra.Command) {
	var limit, offset int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show your recent destination changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			var entries []models.AuditEntry
			if err := c.Do(cmd.Context(), "GET", "/audit?"+q.Encode(), nil, &entries); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audit entries.")
				return nil
			}
			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{e.CreatedAt.Format(time.DateTime), e.Action, e.ResourceID, e.Details})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"When", "Action", "Destination", "Details"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "entries to show (max 200)")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(cmd)
}
