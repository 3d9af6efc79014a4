package destinations

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/crucial707/travel-tracker/cmd/cli/client"
	"github.com/crucial707/travel-tracker/cmd/cli/output"
	"github.com/crucial707/travel-tracker/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Destinations
// ==========================
func InitDestinations(rootCmd *cobra.Command) {
	destinationsCmd := &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"dest"},
		Short:   "Manage your destinations",
	}

	destinationsCmd.AddCommand(
		listCmd(),
		getCmd(),
		createCmd(),
		updateCmd(),
		deleteCmd(),
	)

	rootCmd.AddCommand(destinationsCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid destination id %q", arg)
	}
	return id, nil
}

func renderDestinations(w io.Writer, list []models.Destination) {
	rows := make([][]interface{}, 0, len(list))
	for _, d := range list {
		date := ""
		if d.TravelDate != nil {
			date = d.TravelDate.String()
		}
		notes := ""
		if d.Notes != nil {
			notes = *d.Notes
		}
		rows = append(rows, []interface{}{d.ID, d.Name, date, notes, d.UpdatedAt.Format(time.DateTime)})
	}
	output.RenderTable(w, []string{"ID", "Name", "Travel date", "Notes", "Updated"}, rows)
}

// ==========================
// LIST
// ==========================
func listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var list []models.Destination
			if err := c.Do(cmd.Context(), "GET", "/destinations", nil, &list); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No destinations yet.")
				return nil
			}
			renderDestinations(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// GET
// ==========================
func getCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var d models.Destination
			if err := c.Do(cmd.Context(), "GET", "/destinations/"+strconv.Itoa(id), nil, &d); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), d)
			}
			renderDestinations(cmd.OutOrStdout(), []models.Destination{d})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createCmd() *cobra.Command {
	var name, date, notes string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			payload := map[string]string{"name": name}
			if cmd.Flags().Changed("date") {
				payload["travelDate"] = date
			}
			if cmd.Flags().Changed("notes") {
				payload["notes"] = notes
			}
			var d models.Destination
			if err := c.Do(cmd.Context(), "POST", "/destinations", payload, &d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created destination %d (%s).\n", d.ID, d.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "destination name")
	cmd.Flags().StringVar(&date, "date", "", "travel date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateCmd() *cobra.Command {
	var name, date, notes string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a destination",
		Long:  "Only the flags given are sent; other fields keep their values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload := map[string]string{}
			if cmd.Flags().Changed("name") {
				payload["name"] = name
			}
			if cmd.Flags().Changed("date") {
				payload["travelDate"] = date
			}
			if cmd.Flags().Changed("notes") {
				payload["notes"] = notes
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass --name, --date or --notes")
			}

			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var out struct {
				Message string `json:"message"`
			}
			if err := c.Do(cmd.Context(), "PATCH", "/destinations/"+strconv.Itoa(id), payload, &out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&date, "date", "", "new travel date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var out struct {
				Message string `json:"message"`
			}
			if err := c.Do(cmd.Context(), "DELETE", "/destinations/"+strconv.Itoa(id), nil, &out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
}
