package commands

import (
	"github.com/spf13/cobra"

	"github.com/dylangamachefl/grocery-deal-finder/cmd/dealfinder/ui"
	"github.com/dylangamachefl/grocery-deal-finder/internal/taxonomy"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category taxonomy used for classification",
	Run: func(cmd *cobra.Command, args []string) {
		tax := taxonomy.Default()

		rows := make([][]string, 0, len(tax.Flatten()))
		for _, sub := range tax.Flatten() {
			rows = append(rows, []string{sub.Parent, sub.Name})
		}

		ui.Section("Category Taxonomy")
		ui.Table([]string{"Parent", "Subcategory"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
