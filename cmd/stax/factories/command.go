package factories

import (
	"github.com/brimdata/stax/factory"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "factories",
		Short: "list writer factory aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Alias", "Description"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetColumnSeparator("")
			table.SetRowSeparator("")
			table.SetHeaderLine(false)
			table.SetTablePadding("\t")
			for _, alias := range factory.Aliases() {
				table.Append([]string{alias, factory.Short(alias)})
			}
			table.Render()
			return nil
		},
	}
}
