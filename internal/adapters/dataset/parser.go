package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// ErrInvalidFormat is returned for JSON that is neither a recipe array nor
// an object with a recipes array
var ErrInvalidFormat = errors.New("invalid dataset format: expected a recipe array or an object with a recipes array")

// Parse decodes a dataset document. Two shapes are accepted:
//
//	[{recipe}, ...]                          raw recipe export
//	{"version": "1.2.0", "items": [...], "recipes": [...]}   enriched dataset
//
// Items referenced by recipes but not listed are derived from the recipe
// lines; such an item is raw when it is consumed but never produced.
func Parse(data []byte) (*common.Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("dataset is not valid JSON")
	}

	root := gjson.ParseBytes(data)

	var recipesJSON, itemsJSON gjson.Result
	var rawVersion string
	switch {
	case root.IsArray():
		recipesJSON = root
	case root.IsObject() && root.Get("recipes").IsArray():
		recipesJSON = root.Get("recipes")
		itemsJSON = root.Get("items")
		rawVersion = root.Get("version").String()
	default:
		return nil, ErrInvalidFormat
	}

	version, err := checkVersion(rawVersion)
	if err != nil {
		return nil, err
	}

	recipes, err := parseRecipes(recipesJSON)
	if err != nil {
		return nil, err
	}

	items, err := parseItems(itemsJSON)
	if err != nil {
		return nil, err
	}

	return &common.Dataset{
		Version: version,
		Items:   mergeDerivedItems(items, recipes),
		Recipes: toRecipes(recipes),
	}, nil
}

func parseRecipes(list gjson.Result) ([]recipeDTO, error) {
	var (
		recipes  []recipeDTO
		firstErr error
		seen     = make(map[string]bool)
	)

	index := 0
	list.ForEach(func(_, v gjson.Result) bool {
		r, err := readRecipe(v)
		if err == nil {
			err = validateRecipe(index, &r)
		}
		if err == nil && seen[r.ID] {
			err = fmt.Errorf("recipe %d: duplicate recipe id %s", index, r.ID)
		}
		if err != nil {
			firstErr = err
			return false
		}
		seen[r.ID] = true
		recipes = append(recipes, r)
		index++
		return true
	})

	return recipes, firstErr
}

func readRecipe(v gjson.Result) (recipeDTO, error) {
	craftTime, err := readCraftTime(v)
	if err != nil {
		return recipeDTO{}, fmt.Errorf("recipe %s: %w", v.Get("id").String(), err)
	}

	return recipeDTO{
		ID:               strings.TrimSpace(v.Get("id").String()),
		Name:             v.Get("name").String(),
		Description:      v.Get("description").String(),
		Type:             v.Get("type").String(),
		MachineID:        v.Get("machineId").String(),
		MachineName:      v.Get("machineName").String(),
		MachineImagePath: v.Get("machineImagePath").String(),
		CraftTimeMs:      craftTime,
		Ingredients:      readLines(v.Get("ingredients")),
		Outputs:          readLines(v.Get("outputs")),
		SortID:           v.Get("sortId").String(),
		Rarity:           v.Get("rarity").String(),
		DefaultUnlock:    v.Get("defaultUnlock").String(),
	}, nil
}

// readCraftTime accepts craftTime or machineCraftTime, as a number or a
// numeric string, in milliseconds. Missing or blank means 0.
func readCraftTime(v gjson.Result) (int64, error) {
	field := v.Get("craftTime")
	if !field.Exists() {
		field = v.Get("machineCraftTime")
	}

	switch field.Type {
	case gjson.Number:
		return int64(math.Round(field.Float())), nil
	case gjson.String:
		raw := strings.TrimSpace(field.String())
		if raw == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid craft time %q", raw)
		}
		return int64(math.Round(f)), nil
	case gjson.Null:
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid craft time %s", field.Raw)
	}
}

func readLines(list gjson.Result) []lineDTO {
	var lines []lineDTO
	list.ForEach(func(_, l gjson.Result) bool {
		lines = append(lines, lineDTO{
			ItemID: strings.TrimSpace(l.Get("itemId").String()),
			Name:   l.Get("itemName").String(),
			Count:  int(l.Get("count").Int()),
		})
		return true
	})
	return lines
}

func parseItems(list gjson.Result) ([]itemDTO, error) {
	var (
		items    []itemDTO
		firstErr error
		seen     = make(map[string]bool)
	)

	index := 0
	list.ForEach(func(_, v gjson.Result) bool {
		item := itemDTO{
			ID:            strings.TrimSpace(firstOf(v, "itemId", "id").String()),
			Name:          firstOf(v, "itemName", "name").String(),
			Slug:          v.Get("slug").String(),
			ImagePath:     firstOf(v, "localImagePath", "imageUrl").String(),
			IsRawMaterial: v.Get("isRawMaterial").Bool(),
			Category:      v.Get("category").String(),
			Rarity:        int(v.Get("rarity").Int()),
			SortID:        int(v.Get("sortId").Int()),
		}

		err := validateItem(index, &item)
		if err == nil && seen[item.ID] {
			err = fmt.Errorf("item %d: duplicate item id %s", index, item.ID)
		}
		if err != nil {
			firstErr = err
			return false
		}
		seen[item.ID] = true
		items = append(items, item)
		index++
		return true
	})

	return items, firstErr
}

func firstOf(v gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if field := v.Get(key); field.Exists() {
			return field
		}
	}
	return gjson.Result{}
}

// mergeDerivedItems keeps listed items in order and appends, sorted by id,
// every item that only appears in recipe lines
func mergeDerivedItems(listed []itemDTO, recipes []recipeDTO) []catalog.Item {
	items := make([]catalog.Item, 0, len(listed))
	known := make(map[string]bool, len(listed))
	for _, dto := range listed {
		items = append(items, catalog.Item{
			ID:            dto.ID,
			Name:          dto.Name,
			Slug:          dto.Slug,
			ImageURL:      dto.ImagePath,
			IsRawMaterial: dto.IsRawMaterial,
			Category:      dto.Category,
			Rarity:        dto.Rarity,
			SortID:        dto.SortID,
		})
		known[dto.ID] = true
	}

	names := make(map[string]string)
	consumed := make(map[string]bool)
	produced := make(map[string]bool)
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			consumed[ing.ItemID] = true
			rememberName(names, ing)
		}
		for _, out := range r.Outputs {
			produced[out.ItemID] = true
			rememberName(names, out)
		}
	}

	derived := make([]string, 0)
	for id := range names {
		if !known[id] {
			derived = append(derived, id)
		}
	}
	sort.Strings(derived)

	for _, id := range derived {
		items = append(items, catalog.Item{
			ID:            id,
			Name:          names[id],
			IsRawMaterial: consumed[id] && !produced[id],
		})
	}
	return items
}

// rememberName records the item id, keeping the first non-empty display name
func rememberName(names map[string]string, line lineDTO) {
	if current, ok := names[line.ItemID]; ok && (current != "" || line.Name == "") {
		return
	}
	names[line.ItemID] = line.Name
}

func toRecipes(dtos []recipeDTO) []catalog.Recipe {
	recipes := make([]catalog.Recipe, 0, len(dtos))
	for _, dto := range dtos {
		recipe := catalog.Recipe{
			ID:          dto.ID,
			Name:        dto.Name,
			Description: dto.Description,
			Type:        catalog.ParseRecipeType(dto.Type),
			Facility: catalog.Facility{
				ID:          dto.MachineID,
				Name:        dto.MachineName,
				ImageURL:    dto.MachineImagePath,
				CraftTimeMs: dto.CraftTimeMs,
			},
			SortID:        dto.SortID,
			Rarity:        dto.Rarity,
			DefaultUnlock: dto.DefaultUnlock,
		}
		for _, ing := range dto.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, catalog.Ingredient{ItemID: ing.ItemID, Count: ing.Count})
		}
		for _, out := range dto.Outputs {
			recipe.Outputs = append(recipe.Outputs, catalog.Output{ItemID: out.ItemID, Count: out.Count})
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}
