package common

import (
	"context"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// CatalogSource loads a full catalog snapshot from a backing store
// (dataset file or database)
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogProvider hands out the current catalog snapshot
type CatalogProvider interface {
	// Catalog returns the current snapshot, loading it on first use
	Catalog(ctx context.Context) (*catalog.Catalog, error)

	// Reload replaces the snapshot with a fresh load from the source
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// DatasetReader parses a dataset file into catalog entities
type DatasetReader interface {
	Read(ctx context.Context, path string) (*Dataset, error)
}

// Dataset is the parsed content of a dataset file
type Dataset struct {
	Version string
	Items   []catalog.Item
	Recipes []catalog.Recipe
}
