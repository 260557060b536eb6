package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

const insertBatchSize = 200

// GormCatalogRepository implements catalog.Repository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Load reads every stored item and recipe, preserving dataset order
func (r *GormCatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	var itemModels []ItemModel
	if err := r.db.WithContext(ctx).Order("position").Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	var recipeModels []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Outputs", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("position").
		Find(&recipeModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	items := make([]catalog.Item, 0, len(itemModels))
	for i := range itemModels {
		items = append(items, modelToItem(&itemModels[i]))
	}

	recipes := make([]catalog.Recipe, 0, len(recipeModels))
	for i := range recipeModels {
		recipes = append(recipes, modelToRecipe(&recipeModels[i]))
	}

	return catalog.NewCatalog(items, recipes), nil
}

// Save replaces all stored items, facilities and recipes in one transaction
func (r *GormCatalogRepository) Save(ctx context.Context, items []catalog.Item, recipes []catalog.Recipe) error {
	itemModels := make([]ItemModel, 0, len(items))
	for i := range items {
		itemModels = append(itemModels, itemToModel(&items[i], i))
	}

	facilities := make(map[string]*FacilityModel)
	facilityOrder := make([]string, 0)
	recipeModels := make([]RecipeModel, 0, len(recipes))
	var ingredients []RecipeIngredientModel
	var outputs []RecipeOutputModel

	for i := range recipes {
		model, facility := recipeToModel(&recipes[i], i)
		if facility != nil {
			if _, seen := facilities[facility.ID]; !seen {
				facilities[facility.ID] = facility
				facilityOrder = append(facilityOrder, facility.ID)
			}
		}
		ingredients = append(ingredients, model.Ingredients...)
		outputs = append(outputs, model.Outputs...)
		model.Ingredients = nil
		model.Outputs = nil
		recipeModels = append(recipeModels, model)
	}

	facilityModels := make([]FacilityModel, 0, len(facilityOrder))
	for _, id := range facilityOrder {
		facilityModels = append(facilityModels, *facilities[id])
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first so foreign keys never dangle
		for _, model := range []interface{}{
			&RecipeIngredientModel{},
			&RecipeOutputModel{},
			&RecipeModel{},
			&FacilityModel{},
			&ItemModel{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear catalog tables: %w", err)
			}
		}

		if len(itemModels) > 0 {
			if err := tx.CreateInBatches(itemModels, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}
		}
		if len(facilityModels) > 0 {
			if err := tx.CreateInBatches(facilityModels, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save facilities: %w", err)
			}
		}
		if len(recipeModels) > 0 {
			if err := tx.Omit("Facility", "Ingredients", "Outputs").CreateInBatches(recipeModels, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save recipes: %w", err)
			}
		}
		if len(ingredients) > 0 {
			if err := tx.CreateInBatches(ingredients, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save recipe ingredients: %w", err)
			}
		}
		if len(outputs) > 0 {
			if err := tx.CreateInBatches(outputs, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save recipe outputs: %w", err)
			}
		}
		return nil
	})
}

func itemToModel(item *catalog.Item, position int) ItemModel {
	return ItemModel{
		ID:            item.ID,
		Name:          item.Name,
		Slug:          item.Slug,
		ImageURL:      item.ImageURL,
		IsRawMaterial: item.IsRawMaterial,
		Category:      item.Category,
		Rarity:        item.Rarity,
		SortID:        item.SortID,
		Position:      position,
	}
}

func modelToItem(model *ItemModel) catalog.Item {
	return catalog.Item{
		ID:            model.ID,
		Name:          model.Name,
		Slug:          model.Slug,
		ImageURL:      model.ImageURL,
		IsRawMaterial: model.IsRawMaterial,
		Category:      model.Category,
		Rarity:        model.Rarity,
		SortID:        model.SortID,
	}
}

// recipeToModel converts a recipe and returns its facility row, if the recipe
// names one. A facility without an id is keyed by its name.
func recipeToModel(recipe *catalog.Recipe, position int) (RecipeModel, *FacilityModel) {
	model := RecipeModel{
		ID:            recipe.ID,
		Name:          recipe.Name,
		Description:   recipe.Description,
		Type:          string(recipe.Type),
		CraftTimeMs:   recipe.Facility.CraftTimeMs,
		SortID:        recipe.SortID,
		Rarity:        recipe.Rarity,
		DefaultUnlock: recipe.DefaultUnlock,
		Position:      position,
	}

	for i, ing := range recipe.Ingredients {
		model.Ingredients = append(model.Ingredients, RecipeIngredientModel{
			RecipeID: recipe.ID,
			Position: i,
			ItemID:   ing.ItemID,
			Count:    ing.Count,
		})
	}
	for i, out := range recipe.Outputs {
		model.Outputs = append(model.Outputs, RecipeOutputModel{
			RecipeID: recipe.ID,
			Position: i,
			ItemID:   out.ItemID,
			Count:    out.Count,
		})
	}

	facilityID := recipe.Facility.ID
	if facilityID == "" {
		facilityID = recipe.Facility.Name
	}
	if facilityID == "" {
		return model, nil
	}

	model.FacilityID = &facilityID
	return model, &FacilityModel{
		ID:       facilityID,
		Name:     recipe.Facility.Name,
		ImageURL: recipe.Facility.ImageURL,
	}
}

func modelToRecipe(model *RecipeModel) catalog.Recipe {
	recipe := catalog.Recipe{
		ID:            model.ID,
		Name:          model.Name,
		Description:   model.Description,
		Type:          catalog.ParseRecipeType(model.Type),
		SortID:        model.SortID,
		Rarity:        model.Rarity,
		DefaultUnlock: model.DefaultUnlock,
		Facility:      catalog.Facility{CraftTimeMs: model.CraftTimeMs},
	}

	if model.Facility != nil {
		recipe.Facility.ID = model.Facility.ID
		recipe.Facility.Name = model.Facility.Name
		recipe.Facility.ImageURL = model.Facility.ImageURL
	}

	for _, ing := range model.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, catalog.Ingredient{ItemID: ing.ItemID, Count: ing.Count})
	}
	for _, out := range model.Outputs {
		recipe.Outputs = append(recipe.Outputs, catalog.Output{ItemID: out.ItemID, Count: out.Count})
	}
	return recipe
}
