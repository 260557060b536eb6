package chain

import (
	"sort"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// RecipeRanker orders the candidate recipes for an item. The first recipe after
// ranking is the default choice; selection overrides index into the ranked list.
type RecipeRanker func(c *catalog.Catalog, candidates []*catalog.Recipe) []*catalog.Recipe

// DatasetOrder keeps candidates in catalog order
func DatasetOrder(_ *catalog.Catalog, candidates []*catalog.Recipe) []*catalog.Recipe {
	return candidates
}

// PreferRawMaterials ranks recipes needing fewer intermediate (non-terminal)
// ingredients first. Ties keep catalog order.
func PreferRawMaterials(c *catalog.Catalog, candidates []*catalog.Recipe) []*catalog.Recipe {
	ranked := append([]*catalog.Recipe(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return intermediateCount(c, ranked[i]) < intermediateCount(c, ranked[j])
	})
	return ranked
}

func intermediateCount(c *catalog.Catalog, recipe *catalog.Recipe) int {
	count := 0
	for _, ing := range recipe.Ingredients {
		if !c.IsTerminal(ing.ItemID) {
			count++
		}
	}
	return count
}

// RecipeAlternatives counts, for every item node in the chain, the recipes a
// selection index can address and keeps items with more than one. Manual
// recipes are never buildable, so they are not counted.
func (b *Builder) RecipeAlternatives(ch *Chain) map[string]int {
	result := make(map[string]int)
	for _, n := range ch.Nodes {
		if !n.IsItem() {
			continue
		}
		if count := len(b.CandidateRecipes(n.ItemID)); count > 1 {
			result[n.ItemID] = count
		}
	}
	return result
}
