package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlport/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered dialects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Null ordering", "Default time format"})

			for _, name := range dialect.List() {
				d, ok := dialect.Get(name)
				if !ok {
					continue
				}
				ordering := "nulls are small"
				if d.NullOrdering() == dialect.NullsAreLarge {
					ordering = "nulls are large"
				}
				format := d.TimeFormat()
				if format == "" {
					format = "-"
				}
				t.AppendRow(table.Row{d.GetName(), ordering, format})
			}
			t.Render()
			return nil
		},
	}
}
