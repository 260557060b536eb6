package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

// CatalogWorld holds the catalog under test and the depth limit shared by
// chain and planning scenarios
type CatalogWorld struct {
	items    []catalog.Item
	recipes  []catalog.Recipe
	fixed    *catalog.Catalog
	maxDepth *int
}

func (w *CatalogWorld) reset() {
	w.items = nil
	w.recipes = nil
	w.fixed = nil
	w.maxDepth = nil
}

// Catalog returns the catalog assembled by the Given steps
func (w *CatalogWorld) Catalog() *catalog.Catalog {
	if w.fixed != nil {
		return w.fixed
	}
	return catalog.NewCatalog(w.items, w.recipes)
}

// MaxDepth returns the configured depth limit, nil when unlimited
func (w *CatalogWorld) MaxDepth() *int {
	return w.maxDepth
}

// ============================================================================
// Setup Steps
// ============================================================================

func (w *CatalogWorld) theWorkedExampleCatalog() error {
	w.fixed = helpers.WorkedExampleCatalog()
	return nil
}

func (w *CatalogWorld) theItems(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		id := cellValue(table, row, "id", "")
		raw, err := strconv.ParseBool(cellValue(table, row, "raw", "false"))
		if err != nil {
			return fmt.Errorf("bad raw flag for %s: %w", id, err)
		}
		w.items = append(w.items, catalog.Item{
			ID:            id,
			Name:          cellValue(table, row, "name", id),
			IsRawMaterial: raw,
		})
	}
	return nil
}

func (w *CatalogWorld) theRecipes(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		craftMs, err := strconv.ParseInt(cellValue(table, row, "craft ms", "0"), 10, 64)
		if err != nil {
			return fmt.Errorf("bad craft time: %w", err)
		}
		ingredients, err := parseLines(cellValue(table, row, "ingredients", ""))
		if err != nil {
			return err
		}
		outputs, err := parseLines(cellValue(table, row, "outputs", ""))
		if err != nil {
			return err
		}

		recipe := catalog.Recipe{
			ID:       cellValue(table, row, "id", ""),
			Type:     catalog.RecipeType(cellValue(table, row, "type", string(catalog.RecipeTypeMachine))),
			SortID:   cellValue(table, row, "sort", ""),
			Facility: catalog.Facility{Name: cellValue(table, row, "facility", "Assembler"), CraftTimeMs: craftMs},
		}
		for _, l := range ingredients {
			recipe.Ingredients = append(recipe.Ingredients, catalog.Ingredient{ItemID: l.itemID, Count: l.count})
		}
		for _, l := range outputs {
			recipe.Outputs = append(recipe.Outputs, catalog.Output{ItemID: l.itemID, Count: l.count})
		}
		w.recipes = append(w.recipes, recipe)
	}
	return nil
}

// theCatalogIsStoredInTheDatabase round-trips the current catalog through the
// shared test database; later steps see what was loaded back
func (w *CatalogWorld) theCatalogIsStoredInTheDatabase() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	items, recipes := w.items, w.recipes
	if w.fixed != nil {
		items, recipes = helpers.WorkedExampleItems(), helpers.WorkedExampleRecipes()
	}

	ctx := context.Background()
	repos := helpers.NewTestRepositories(nil)
	if err := repos.Seed(ctx, items, recipes); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	loaded, err := repos.Provider.Catalog(ctx)
	if err != nil {
		return err
	}
	w.fixed = loaded
	return nil
}

func (w *CatalogWorld) theCatalogHasItemsAndRecipes(items, recipes int) error {
	gotItems, gotRecipes := w.Catalog().Size()
	if gotItems != items || gotRecipes != recipes {
		return fmt.Errorf("expected %d items and %d recipes, got %d and %d", items, recipes, gotItems, gotRecipes)
	}
	return nil
}

func (w *CatalogWorld) theMaxDepthIs(depth int) error {
	w.maxDepth = &depth
	return nil
}

// ============================================================================
// Table helpers
// ============================================================================

type line struct {
	itemID string
	count  int
}

// parseLines reads "3 b, 1 c" into count/item pairs
func parseLines(raw string) ([]line, error) {
	var result []line
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, fmt.Errorf("bad recipe line %q: want \"<count> <item>\"", part)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("bad count in %q: %w", part, err)
		}
		result = append(result, line{itemID: fields[1], count: count})
	}
	return result, nil
}

// cellValue returns the cell under columnName, or fallback when the column is
// missing or the cell is blank
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName, fallback string) string {
	for i, header := range table.Rows[0].Cells {
		if header.Value != columnName || i >= len(row.Cells) {
			continue
		}
		if v := strings.TrimSpace(row.Cells[i].Value); v != "" {
			return v
		}
	}
	return fallback
}

func splitIDs(raw string) []string {
	result := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// ============================================================================
// Registration
// ============================================================================

// InitializeCatalogScenario registers catalog setup steps and returns the
// world shared with the planning and chain steps
func InitializeCatalogScenario(sc *godog.ScenarioContext) *CatalogWorld {
	w := &CatalogWorld{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	sc.Step(`^the worked example catalog$`, w.theWorkedExampleCatalog)
	sc.Step(`^the items:$`, w.theItems)
	sc.Step(`^the recipes:$`, w.theRecipes)
	sc.Step(`^the catalog is stored in the database$`, w.theCatalogIsStoredInTheDatabase)
	sc.Step(`^the catalog has (\d+) items and (\d+) recipes$`, w.theCatalogHasItemsAndRecipes)
	sc.Step(`^the max depth is (\d+)$`, w.theMaxDepthIs)

	return w
}
