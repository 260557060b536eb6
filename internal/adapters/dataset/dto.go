package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type itemDTO struct {
	ID            string `validate:"required"`
	Name          string
	Slug          string
	ImagePath     string
	IsRawMaterial bool
	Category      string
	Rarity        int `validate:"min=0"`
	SortID        int
}

type lineDTO struct {
	ItemID string `validate:"required"`
	Name   string
	Count  int `validate:"min=1"`
}

type recipeDTO struct {
	ID               string `validate:"required"`
	Name             string
	Description      string
	Type             string
	MachineID        string
	MachineName      string
	MachineImagePath string
	CraftTimeMs      int64     `validate:"min=0"`
	Ingredients      []lineDTO `validate:"dive"`
	Outputs          []lineDTO `validate:"dive"`
	SortID           string
	Rarity           string
	DefaultUnlock    string
}

var validate = validator.New()

// validateRecipe checks one recipe and names it in any error
func validateRecipe(index int, r *recipeDTO) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("recipe %d (%s): %w", index, r.ID, describe(err))
	}
	return nil
}

func validateItem(index int, i *itemDTO) error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("item %d (%s): %w", index, i.ID, describe(err))
	}
	return nil
}

func describe(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s failed %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return errors.New(strings.Join(messages, "; "))
}
