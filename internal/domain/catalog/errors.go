package catalog

import "fmt"

// ItemNotFoundError indicates an item id is not present in the catalog
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ItemID)
}

// RecipeNotFoundError indicates a recipe id is not present in the catalog
type RecipeNotFoundError struct {
	RecipeID string
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("recipe not found: %s", e.RecipeID)
}
