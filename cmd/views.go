package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cube2222/octotable/views"
)

func newViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views [name]",
		Args:  cobra.MaximumNArgs(1),
		Short: "List the available views, or the columns of a single view.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := tablewriter.NewWriter(cmd.OutOrStdout())
			out.SetAutoFormatHeaders(false)
			out.SetAutoWrapText(false)

			if len(args) == 0 {
				out.SetHeader([]string{"View", "Description"})
				for _, name := range views.Names() {
					descriptor, err := views.Get(name)
					if err != nil {
						return err
					}
					out.Append([]string{descriptor.Name(), descriptor.Description()})
				}
				out.Render()
				return nil
			}

			descriptor, err := views.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), descriptor.Description())
			out.SetHeader([]string{"Column", "Header", "Sortable", "Hideable", "Filter"})
			for _, column := range descriptor.Columns() {
				filter := "substring"
				if column.CustomFilter {
					filter = "custom"
				}
				out.Append([]string{column.ID, column.Header, yesNo(column.Sortable), yesNo(column.Hideable), filter})
			}
			out.Render()
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
