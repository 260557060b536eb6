package queries

import "github.com/andrescamacho/craftchain-go/internal/domain/catalog"

// ItemDTO is the transport view of a catalog item
type ItemDTO struct {
	ID            string
	Name          string
	Slug          string
	ImageURL      string
	IsRawMaterial bool
	Category      string
	Rarity        int
}

// ComponentDTO is one ingredient or output line of a recipe
type ComponentDTO struct {
	ItemID   string
	ItemName string
	Count    int
}

// RecipeDTO is the transport view of a recipe
type RecipeDTO struct {
	ID              string
	Name            string
	Type            string
	SortID          string
	FacilityName    string
	CraftTimeMs     int64
	Ingredients     []ComponentDTO
	Outputs         []ComponentDTO
	UsesRawMaterial bool
}

// ToItemDTO converts a domain item
func ToItemDTO(item *catalog.Item) ItemDTO {
	return ItemDTO{
		ID:            item.ID,
		Name:          item.DisplayName(),
		Slug:          item.Slug,
		ImageURL:      item.ImageURL,
		IsRawMaterial: item.IsRawMaterial,
		Category:      item.Category,
		Rarity:        item.Rarity,
	}
}

// ToRecipeDTO converts a domain recipe, resolving item names through c
func ToRecipeDTO(c *catalog.Catalog, recipe *catalog.Recipe) RecipeDTO {
	dto := RecipeDTO{
		ID:              recipe.ID,
		Name:            recipe.Name,
		Type:            string(recipe.Type),
		SortID:          recipe.SortID,
		FacilityName:    recipe.Facility.Name,
		CraftTimeMs:     recipe.ProcessingTimeMs(),
		Ingredients:     make([]ComponentDTO, 0, len(recipe.Ingredients)),
		Outputs:         make([]ComponentDTO, 0, len(recipe.Outputs)),
		UsesRawMaterial: c.UsesRawMaterial(recipe),
	}
	for _, ing := range recipe.Ingredients {
		dto.Ingredients = append(dto.Ingredients, ComponentDTO{ItemID: ing.ItemID, ItemName: c.ItemName(ing.ItemID), Count: ing.Count})
	}
	for _, o := range recipe.Outputs {
		dto.Outputs = append(dto.Outputs, ComponentDTO{ItemID: o.ItemID, ItemName: c.ItemName(o.ItemID), Count: o.Count})
	}
	return dto
}

func toRecipeDTOs(c *catalog.Catalog, recipes []*catalog.Recipe) []RecipeDTO {
	result := make([]RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, ToRecipeDTO(c, r))
	}
	return result
}
