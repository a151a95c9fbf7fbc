package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/castdeck/castdeck/color"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/media"
	"github.com/castdeck/castdeck/style"
	"github.com/castdeck/castdeck/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect catalogs",
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().StringP("query", "q", "", "Only show items whose title fuzzily matches the query")
	catalogListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// matchTitles keeps the items whose title fuzzily contains query.
func matchTitles(items []media.Item, query string) []media.Item {
	if query == "" {
		return items
	}

	return lo.Filter(items, func(item media.Item, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, item.Title)
	})
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items of the configured catalog",
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := media.Open(cmd.Context(), viper.GetString(key.CatalogPath))
		handleErr(err)

		items := matchTitles(catalog.Items(), lo.Must(cmd.Flags().GetString("query")))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(items))
			return
		}

		for i, item := range items {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(fmt.Sprintf("%2d.", i+1)), style.Bold(item.Title))
			if item.Subtitle != "" {
				cmd.Println("    " + style.Faint(item.Subtitle))
			}
		}
		cmd.Println(style.Faint(util.Quantify(len(items), "item", "items")))
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
}

var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of catalog files",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(media.Schema()))
	},
}
