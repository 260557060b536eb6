package catalog

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
)

// Catalog is a read-only indexed view over items and recipes.
//
// Lookups of unknown ids return empty results rather than errors: absence is a
// normal outcome. A Catalog is never mutated after construction, so it is safe
// to share between concurrent builds and plans.
type Catalog struct {
	items       map[string]*Item
	itemOrder   []string
	recipes     map[string]*Recipe
	recipeOrder []string

	producing map[string][]*Recipe
	using     map[string][]*Recipe

	fingerprint string
}

// NewCatalog indexes the given items and recipes. Duplicate ids keep the first entry.
func NewCatalog(items []Item, recipes []Recipe) *Catalog {
	c := &Catalog{
		items:     make(map[string]*Item, len(items)),
		itemOrder: make([]string, 0, len(items)),
		recipes:   make(map[string]*Recipe, len(recipes)),
		producing: make(map[string][]*Recipe),
		using:     make(map[string][]*Recipe),
	}

	for i := range items {
		item := items[i]
		if item.ID == "" {
			continue
		}
		if _, exists := c.items[item.ID]; exists {
			continue
		}
		c.items[item.ID] = &item
		c.itemOrder = append(c.itemOrder, item.ID)
	}

	for i := range recipes {
		recipe := recipes[i]
		if recipe.ID == "" {
			continue
		}
		if _, exists := c.recipes[recipe.ID]; exists {
			continue
		}
		r := &recipe
		c.recipes[r.ID] = r
		c.recipeOrder = append(c.recipeOrder, r.ID)

		seenOut := make(map[string]bool)
		for _, out := range r.Outputs {
			if seenOut[out.ItemID] {
				continue
			}
			seenOut[out.ItemID] = true
			c.producing[out.ItemID] = append(c.producing[out.ItemID], r)
		}

		seenIn := make(map[string]bool)
		for _, ing := range r.Ingredients {
			if seenIn[ing.ItemID] {
				continue
			}
			seenIn[ing.ItemID] = true
			c.using[ing.ItemID] = append(c.using[ing.ItemID], r)
		}
	}

	c.fingerprint = c.computeFingerprint()
	return c
}

// Item returns the item with the given id
func (c *Catalog) Item(id string) (*Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Recipe returns the recipe with the given id
func (c *Catalog) Recipe(id string) (*Recipe, bool) {
	recipe, ok := c.recipes[id]
	return recipe, ok
}

// Items returns all items in dataset order
func (c *Catalog) Items() []*Item {
	result := make([]*Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		result = append(result, c.items[id])
	}
	return result
}

// Recipes returns all recipes in dataset order
func (c *Catalog) Recipes() []*Recipe {
	result := make([]*Recipe, 0, len(c.recipeOrder))
	for _, id := range c.recipeOrder {
		result = append(result, c.recipes[id])
	}
	return result
}

// RecipesProducing returns every recipe (any type) that outputs itemID, in dataset order
func (c *Catalog) RecipesProducing(itemID string) []*Recipe {
	return append([]*Recipe(nil), c.producing[itemID]...)
}

// RecipesUsing returns every recipe that consumes itemID, in dataset order
func (c *Catalog) RecipesUsing(itemID string) []*Recipe {
	return append([]*Recipe(nil), c.using[itemID]...)
}

// IsTerminal reports whether itemID must be treated as a raw supply boundary:
// either flagged raw, or produced by no recipe at all.
func (c *Catalog) IsTerminal(itemID string) bool {
	if item, ok := c.items[itemID]; ok && item.IsRawMaterial {
		return true
	}
	return len(c.producing[itemID]) == 0
}

// UsesRawMaterial reports whether any ingredient of the recipe is terminal
func (c *Catalog) UsesRawMaterial(recipe *Recipe) bool {
	for _, ing := range recipe.Ingredients {
		if c.IsTerminal(ing.ItemID) {
			return true
		}
	}
	return false
}

// ItemName returns the display name for itemID, or the id itself when unknown
func (c *Catalog) ItemName(itemID string) string {
	if item, ok := c.items[itemID]; ok {
		return item.DisplayName()
	}
	return itemID
}

// Size returns the number of items and recipes
func (c *Catalog) Size() (items, recipes int) {
	return len(c.itemOrder), len(c.recipeOrder)
}

// Categories returns the distinct item categories, sorted
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, id := range c.itemOrder {
		category := c.items[id].Category
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		result = append(result, category)
	}
	sort.Strings(result)
	return result
}

// Fingerprint identifies the catalog content; equal catalogs share a fingerprint
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

func (c *Catalog) computeFingerprint() string {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
	}

	for _, id := range c.itemOrder {
		item := c.items[id]
		write("i", item.ID, strconv.FormatBool(item.IsRawMaterial))
	}
	for _, id := range c.recipeOrder {
		r := c.recipes[id]
		write("r", r.ID, string(r.Type), r.SortID, strconv.FormatInt(r.Facility.CraftTimeMs, 10))
		for _, ing := range r.Ingredients {
			write("in", ing.ItemID, strconv.Itoa(ing.Count))
		}
		for _, out := range r.Outputs {
			write("out", out.ItemID, strconv.Itoa(out.Count))
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
