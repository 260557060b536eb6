package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and import the item catalog",
		Long: `Inspect the items and recipes of the active catalog, or import a dataset
file into the database.

Examples:
  craftchain catalog list --category parts
  craftchain catalog show iron_gear
  craftchain catalog import data/recipes.json`,
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogImportCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var req api.ItemListRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := jsonOutput()
			if err != nil {
				return err
			}

			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			view, err := s.service.ListItems(context.Background(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, view)
			}

			if len(view.Items) == 0 {
				fmt.Fprintln(out, "No items found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRAW")
			fmt.Fprintln(w, "--\t----\t--------\t---")
			for _, item := range view.Items {
				raw := ""
				if item.IsRawMaterial {
					raw = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, raw)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d items\n", len(view.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Category, "category", "", "Only items of this category")
	cmd.Flags().BoolVar(&req.RawOnly, "raw", false, "Only raw materials")
	cmd.Flags().StringVar(&req.Search, "search", "", "Case-insensitive name or id substring")

	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show an item with the recipes producing and consuming it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := jsonOutput()
			if err != nil {
				return err
			}

			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			view, err := s.service.GetItem(context.Background(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, view)
			}

			item := view.Item
			fmt.Fprintf(out, "%s (%s)\n", item.Name, item.ID)
			if item.Category != "" {
				fmt.Fprintf(out, "  Category:  %s\n", item.Category)
			}
			fmt.Fprintf(out, "  Raw:       %t\n", item.IsRawMaterial)
			if item.Slug != "" {
				fmt.Fprintf(out, "  Slug:      %s\n", item.Slug)
			}

			printRecipes(out, "Produced by", view.ProducedBy)
			printRecipes(out, "Used in", view.UsedIn)
			return nil
		},
	}
}

func printRecipes(out io.Writer, title string, recipes []api.RecipeView) {
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(recipes))
	for _, r := range recipes {
		facility := r.FacilityName
		if facility == "" {
			facility = r.Type
		}
		fmt.Fprintf(out, "  %s [%s] %s -> %s\n", r.ID, facility, formatLines(r.Ingredients), formatLines(r.Outputs))
	}
}

func formatLines(lines []api.ComponentView) string {
	if len(lines) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		name := l.ItemName
		if name == "" {
			name = l.ItemID
		}
		parts = append(parts, fmt.Sprintf("%dx %s", l.Count, name))
	}
	return strings.Join(parts, " + ")
}

func newCatalogImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dataset-file>",
		Short: "Replace the database catalog with a dataset file",
		Long: `Parse a dataset file (enriched {items, recipes} document or a bare recipe
array) and replace the stored catalog with it in one transaction. Requires
a configured database; always runs locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := jsonOutput()
			if err != nil {
				return err
			}

			s, err := openSession(true)
			if err != nil {
				return err
			}
			defer s.Close()

			view, err := s.local.Service.ImportCatalog(context.Background(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, view)
			}
			fmt.Fprintf(out, "Imported catalog %s: %d items, %d recipes\n", view.Version, view.ItemCount, view.RecipeCount)
			fmt.Fprintf(out, "Fingerprint: %s\n", view.Fingerprint)
			return nil
		},
	}
}
