package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

func sampleCatalog() *catalog.Catalog {
	items := []catalog.Item{
		{ID: "ore", Name: "Ore", IsRawMaterial: true, Category: "raw"},
		{ID: "plate", Name: "Plate", Category: "parts"},
		{ID: "gear", Name: "Gear", Category: "parts"},
		{ID: "flagged", Name: "Flagged", IsRawMaterial: true},
	}
	recipes := []catalog.Recipe{
		{
			ID:          "r_plate",
			Type:        catalog.RecipeTypeMachine,
			Facility:    catalog.Facility{Name: "Smelter", CraftTimeMs: 2000},
			Ingredients: []catalog.Ingredient{{ItemID: "ore", Count: 2}},
			Outputs:     []catalog.Output{{ItemID: "plate", Count: 1}},
			SortID:      "5",
		},
		{
			ID:          "r_gear",
			Type:        catalog.RecipeTypeMachine,
			Ingredients: []catalog.Ingredient{{ItemID: "plate", Count: 1}, {ItemID: "plate", Count: 1}},
			Outputs:     []catalog.Output{{ItemID: "gear", Count: 2}},
		},
		{
			ID:          "r_gear_hand",
			Type:        catalog.RecipeTypeManual,
			Ingredients: []catalog.Ingredient{{ItemID: "ore", Count: 5}},
			Outputs:     []catalog.Output{{ItemID: "gear", Count: 1}},
		},
		{
			ID:      "r_flagged",
			Type:    catalog.RecipeTypeMachine,
			Outputs: []catalog.Output{{ItemID: "flagged", Count: 1}},
		},
	}
	return catalog.NewCatalog(items, recipes)
}

func TestCatalog_Lookups(t *testing.T) {
	c := sampleCatalog()

	item, ok := c.Item("plate")
	require.True(t, ok)
	assert.Equal(t, "Plate", item.Name)

	_, ok = c.Item("missing")
	assert.False(t, ok)

	recipe, ok := c.Recipe("r_gear")
	require.True(t, ok)
	assert.Equal(t, 2, recipe.OutputCount("gear"))
	assert.Equal(t, 0, recipe.OutputCount("plate"))

	items, recipes := c.Size()
	assert.Equal(t, 4, items)
	assert.Equal(t, 4, recipes)
}

func TestCatalog_ProducingAndUsingIndices(t *testing.T) {
	c := sampleCatalog()

	producing := c.RecipesProducing("gear")
	require.Len(t, producing, 2)
	assert.Equal(t, "r_gear", producing[0].ID)
	assert.Equal(t, "r_gear_hand", producing[1].ID)

	// plate appears twice in r_gear but the recipe is indexed once
	using := c.RecipesUsing("plate")
	require.Len(t, using, 1)
	assert.Equal(t, "r_gear", using[0].ID)

	assert.Empty(t, c.RecipesProducing("missing"))
	assert.Empty(t, c.RecipesUsing("missing"))
}

func TestCatalog_IsTerminal(t *testing.T) {
	c := sampleCatalog()

	assert.True(t, c.IsTerminal("ore"), "flagged raw and never produced")
	assert.True(t, c.IsTerminal("flagged"), "raw flag wins over an existing recipe")
	assert.True(t, c.IsTerminal("unknown"), "unknown items behave as raw")
	assert.False(t, c.IsTerminal("plate"))
}

func TestCatalog_UnflaggedItemWithoutRecipeIsTerminal(t *testing.T) {
	c := catalog.NewCatalog([]catalog.Item{{ID: "dust"}}, nil)
	assert.True(t, c.IsTerminal("dust"))
}

func TestCatalog_UsesRawMaterial(t *testing.T) {
	c := sampleCatalog()

	plate, _ := c.Recipe("r_plate")
	gear, _ := c.Recipe("r_gear")
	assert.True(t, c.UsesRawMaterial(plate))
	assert.False(t, c.UsesRawMaterial(gear))
}

func TestCatalog_DuplicateIDsKeepFirst(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a", Name: "First"}, {ID: "a", Name: "Second"}},
		[]catalog.Recipe{{ID: "r", Name: "First"}, {ID: "r", Name: "Second"}},
	)

	item, _ := c.Item("a")
	recipe, _ := c.Recipe("r")
	assert.Equal(t, "First", item.Name)
	assert.Equal(t, "First", recipe.Name)
}

func TestCatalog_Fingerprint(t *testing.T) {
	assert.Equal(t, sampleCatalog().Fingerprint(), sampleCatalog().Fingerprint())

	other := catalog.NewCatalog([]catalog.Item{{ID: "ore", IsRawMaterial: true}}, nil)
	assert.NotEqual(t, sampleCatalog().Fingerprint(), other.Fingerprint())
}

func TestCatalog_Categories(t *testing.T) {
	assert.Equal(t, []string{"parts", "raw"}, sampleCatalog().Categories())
}

func TestRecipe_SortKey(t *testing.T) {
	key, ok := (&catalog.Recipe{SortID: " 12 "}).SortKey()
	assert.True(t, ok)
	assert.Equal(t, 12.0, key)

	_, ok = (&catalog.Recipe{SortID: "abc"}).SortKey()
	assert.False(t, ok)

	_, ok = (&catalog.Recipe{}).SortKey()
	assert.False(t, ok)
}

func TestParseRecipeType(t *testing.T) {
	assert.Equal(t, catalog.RecipeTypeManual, catalog.ParseRecipeType("Manual"))
	assert.Equal(t, catalog.RecipeTypeHub, catalog.ParseRecipeType("hub"))
	assert.Equal(t, catalog.RecipeTypeMachine, catalog.ParseRecipeType(""))
	assert.Equal(t, catalog.RecipeTypeMachine, catalog.ParseRecipeType("furnace"))
}
