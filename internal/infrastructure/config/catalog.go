package config

// Catalog sources
const (
	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where the item/recipe catalog is loaded from
type CatalogConfig struct {
	// Source: "file" reads a dataset JSON file, "database" reads the imported tables
	Source string `mapstructure:"source" validate:"required,oneof=file database"`

	// Path of the dataset file (required when source is "file")
	Path string `mapstructure:"path" validate:"required_if=Source file"`
}
