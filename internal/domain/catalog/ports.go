package catalog

import "context"

// Repository defines the persistence interface for catalog data
type Repository interface {
	// Load reads every item and recipe and returns an indexed catalog
	Load(ctx context.Context) (*Catalog, error)

	// Save replaces all stored items and recipes
	Save(ctx context.Context, items []Item, recipes []Recipe) error
}
