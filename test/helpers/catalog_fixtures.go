package helpers

import (
	"context"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// CreateTestRecipe builds a machine recipe with a single output line
func CreateTestRecipe(id, sortID string, craftTimeMs int64, outputItemID string, outputCount int, ingredients ...catalog.Ingredient) catalog.Recipe {
	return catalog.Recipe{
		ID:          id,
		Name:        id,
		Type:        catalog.RecipeTypeMachine,
		SortID:      sortID,
		Facility:    catalog.Facility{ID: "assembler", Name: "Assembler", CraftTimeMs: craftTimeMs},
		Ingredients: ingredients,
		Outputs:     []catalog.Output{{ItemID: outputItemID, Count: outputCount}},
	}
}

// Needs builds an ingredient line
func Needs(itemID string, count int) catalog.Ingredient {
	return catalog.Ingredient{ItemID: itemID, Count: count}
}

// WorkedExampleItems returns C (raw), B and A
func WorkedExampleItems() []catalog.Item {
	return []catalog.Item{
		{ID: "a", Name: "Alpha Gear", Slug: "Alpha_Gear", Category: "parts", SortID: 3},
		{ID: "b", Name: "Beta Plate", Slug: "Beta_Plate", Category: "parts", SortID: 2},
		{ID: "c", Name: "Copper Ore", Slug: "Copper_Ore", Category: "ores", SortID: 1, IsRawMaterial: true},
	}
}

// WorkedExampleRecipes returns B (2 C, 60s) and A (3 B, 30s)
func WorkedExampleRecipes() []catalog.Recipe {
	return []catalog.Recipe{
		CreateTestRecipe("r_b", "1", 60000, "b", 1, Needs("c", 2)),
		CreateTestRecipe("r_a", "2", 30000, "a", 1, Needs("b", 3)),
	}
}

// WorkedExampleCatalog indexes the worked example: C (raw) -> B -> A
func WorkedExampleCatalog() *catalog.Catalog {
	return catalog.NewCatalog(WorkedExampleItems(), WorkedExampleRecipes())
}

// StaticSource returns a catalog source that always loads c
func StaticSource(c *catalog.Catalog) *FixedCatalogSource {
	return &FixedCatalogSource{Catalog: c}
}

// FixedCatalogSource is a catalog source test double
type FixedCatalogSource struct {
	Catalog *catalog.Catalog
	Err     error
	Loads   int
}

// Load returns the configured catalog or error
func (s *FixedCatalogSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	s.Loads++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Catalog, nil
}
