package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/repository"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newAlertsCmd(cfgPath func() string) *cobra.Command {
	var (
		aquariumID int64
		typ        string
		open       bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Print the alerts of an aquarium as a table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if aquariumID <= 0 {
				return errors.New("--aquarium-id is required")
			}
			a, err := openApp(cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			f := repository.AlertFilter{AquariumID: aquariumID, Type: typ, Limit: limit}
			if open {
				f.Resolved = new(bool)
			}
			list, err := a.repos.Alerts.List(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("list alerts: %w", err)
			}
			renderAlerts(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().Int64Var(&aquariumID, "aquarium-id", 0, "aquarium to inspect")
	cmd.Flags().StringVar(&typ, "type", "", "only alerts of this type, e.g. CMD_FEED")
	cmd.Flags().BoolVar(&open, "open", false, "only unresolved alerts")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows")
	return cmd
}

// renderAlerts prints alerts oldest first as a pretty table.
func renderAlerts(w io.Writer, list []models.Alert) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "TS", "Type", "Message", "Resolved"})
	for _, a := range list {
		resolved := "-"
		if a.Resolved && a.ResolvedAt != nil {
			resolved = a.ResolvedAt.UTC().Format(time.RFC3339)
		} else if a.Resolved {
			resolved = "yes"
		}
		t.AppendRow(table.Row{a.ID, a.TS.UTC().Format(time.RFC3339), a.Type, a.Message, resolved})
	}
	t.AppendFooter(table.Row{"", "", "", "total", len(list)})
	t.Render()
}
