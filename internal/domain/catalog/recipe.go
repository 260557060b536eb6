package catalog

import (
	"math"
	"strconv"
	"strings"
)

// RecipeType distinguishes how a recipe is crafted
type RecipeType string

const (
	// RecipeTypeMachine is crafted by a facility
	RecipeTypeMachine RecipeType = "machine"

	// RecipeTypeManual is hand-crafted and never used for automated chains
	RecipeTypeManual RecipeType = "manual"

	// RecipeTypeHub is crafted at a hub facility; treated like a machine recipe
	RecipeTypeHub RecipeType = "hub"
)

// ParseRecipeType normalizes a raw type tag. Unknown tags are treated as machine recipes.
func ParseRecipeType(raw string) RecipeType {
	switch RecipeType(strings.ToLower(strings.TrimSpace(raw))) {
	case RecipeTypeManual:
		return RecipeTypeManual
	case RecipeTypeHub:
		return RecipeTypeHub
	default:
		return RecipeTypeMachine
	}
}

// Ingredient is an item consumed by one craft
type Ingredient struct {
	ItemID string
	Count  int
}

// Output is an item produced by one craft
type Output struct {
	ItemID string
	Count  int
}

// Facility is the machine a recipe runs on
type Facility struct {
	ID       string
	Name     string
	ImageURL string

	// CraftTimeMs is the processing time of one craft. 0 means instantaneous or unknown.
	CraftTimeMs int64
}

// Recipe transforms ingredients into outputs at a facility
type Recipe struct {
	ID            string
	Name          string
	Description   string
	Type          RecipeType
	Facility      Facility
	Ingredients   []Ingredient
	Outputs       []Output
	SortID        string
	Rarity        string
	DefaultUnlock string
}

// IsManual returns true for hand-crafted recipes
func (r *Recipe) IsManual() bool {
	return r.Type == RecipeTypeManual
}

// Produces returns true if the recipe lists itemID among its outputs
func (r *Recipe) Produces(itemID string) bool {
	return r.OutputCount(itemID) > 0
}

// OutputCount returns how many units of itemID one craft yields (0 if none)
func (r *Recipe) OutputCount(itemID string) int {
	for _, out := range r.Outputs {
		if out.ItemID == itemID {
			return out.Count
		}
	}
	return 0
}

// ProcessingTimeMs returns the facility craft time, or 0 when unknown
func (r *Recipe) ProcessingTimeMs() int64 {
	if r.Facility.CraftTimeMs > 0 {
		return r.Facility.CraftTimeMs
	}
	return 0
}

// SortKey returns the numeric sort id. ok is false when the sort id is not a finite number.
func (r *Recipe) SortKey() (key float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.SortID), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
