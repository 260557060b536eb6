package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
)

// NewChainCommand creates the chain command
func NewChainCommand() *cobra.Command {
	var (
		depth    string
		selects  string
		collapse string
		showIDs  bool
	)

	cmd := &cobra.Command{
		Use:   "chain <item-id>",
		Short: "Show the production chain of an item",
		Long: `Expand an item into the tree of facilities and ingredients producing it.

Alternative recipes are chosen with --select item:index (index into the
ranked producing recipes). Subtrees under the listed node ids are hidden
with --collapse.

Examples:
  craftchain chain iron_gear
  craftchain chain iron_gear --depth 2 --select iron_plate:1
  craftchain chain iron_gear --collapse n3,n7 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDepth, err := api.ParseDepth(depth)
			if err != nil {
				return err
			}
			selections, err := api.ParseSelections(selects)
			if err != nil {
				return err
			}

			asJSON, err := jsonOutput()
			if err != nil {
				return err
			}

			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			view, err := s.service.BuildChain(context.Background(), api.ChainRequest{
				ItemID:     args[0],
				MaxDepth:   maxDepth,
				Selections: selections,
				Collapsed:  api.ParseCollapse(collapse),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, view)
			}

			fmt.Fprint(out, NewTreeFormatter(showIDs).FormatChain(view))
			if alts := formatAlternatives(view.Alternatives); alts != "" {
				fmt.Fprintf(out, "Alternatives: %s\n", alts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&depth, "depth", "", "Maximum expansion depth (default: unlimited)")
	cmd.Flags().StringVar(&selects, "select", "", "Recipe selections as item:index,...")
	cmd.Flags().StringVar(&collapse, "collapse", "", "Node ids whose subtrees are hidden, comma separated")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show item and recipe ids")

	return cmd
}

// formatAlternatives lists items with more than one producing recipe
func formatAlternatives(alternatives map[string]int) string {
	ids := sortedKeys(alternatives)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if alternatives[id] > 1 {
			parts = append(parts, fmt.Sprintf("%s(%d)", id, alternatives[id]))
		}
	}
	return strings.Join(parts, " ")
}
