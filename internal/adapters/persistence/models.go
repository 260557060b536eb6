package persistence

// ItemModel represents the items table
type ItemModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	Name          string `gorm:"column:name;not null"`
	Slug          string `gorm:"column:slug;index"`
	ImageURL      string `gorm:"column:image_url"`
	IsRawMaterial bool   `gorm:"column:is_raw_material;not null;default:false"`
	Category      string `gorm:"column:category;index"`
	Rarity        int    `gorm:"column:rarity;not null;default:0"`
	SortID        int    `gorm:"column:sort_id;not null;default:0"`
	Position      int    `gorm:"column:position;not null"` // dataset order
}

func (ItemModel) TableName() string {
	return "items"
}

// FacilityModel represents the facilities table
type FacilityModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name;not null"`
	ImageURL string `gorm:"column:image_url"`
}

func (FacilityModel) TableName() string {
	return "facilities"
}

// RecipeModel represents the recipes table. Craft time lives on the recipe
// because the same facility runs different recipes at different speeds.
type RecipeModel struct {
	ID            string                  `gorm:"column:id;primaryKey"`
	Name          string                  `gorm:"column:name"`
	Description   string                  `gorm:"column:description;type:text"`
	Type          string                  `gorm:"column:type;not null;default:'machine'"`
	FacilityID    *string                 `gorm:"column:facility_id;index"`
	Facility      *FacilityModel          `gorm:"foreignKey:FacilityID;references:ID"`
	CraftTimeMs   int64                   `gorm:"column:craft_time_ms;not null;default:0"`
	SortID        string                  `gorm:"column:sort_id"`
	Rarity        string                  `gorm:"column:rarity"`
	DefaultUnlock string                  `gorm:"column:default_unlock"`
	Position      int                     `gorm:"column:position;not null"`
	Ingredients   []RecipeIngredientModel `gorm:"foreignKey:RecipeID;references:ID"`
	Outputs       []RecipeOutputModel     `gorm:"foreignKey:RecipeID;references:ID"`
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeIngredientModel represents the recipe_ingredients table
type RecipeIngredientModel struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement"`
	RecipeID string `gorm:"column:recipe_id;not null;index"`
	Position int    `gorm:"column:position;not null"`
	ItemID   string `gorm:"column:item_id;not null;index"`
	Count    int    `gorm:"column:count;not null"`
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

// RecipeOutputModel represents the recipe_outputs table
type RecipeOutputModel struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement"`
	RecipeID string `gorm:"column:recipe_id;not null;index"`
	Position int    `gorm:"column:position;not null"`
	ItemID   string `gorm:"column:item_id;not null;index"`
	Count    int    `gorm:"column:count;not null"`
}

func (RecipeOutputModel) TableName() string {
	return "recipe_outputs"
}

// AllModels lists every catalog model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&ItemModel{},
		&FacilityModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&RecipeOutputModel{},
	}
}
