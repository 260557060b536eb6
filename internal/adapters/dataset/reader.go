package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// FileReader reads dataset files from the local filesystem
type FileReader struct{}

// NewFileReader creates a new FileReader
func NewFileReader() *FileReader {
	return &FileReader{}
}

// Read implements common.DatasetReader
func (r *FileReader) Read(ctx context.Context, path string) (*common.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	return Parse(data)
}

// FileCatalogSource loads the catalog straight from a dataset file,
// assigning slugs to items that carry none
type FileCatalogSource struct {
	path   string
	reader common.DatasetReader
}

// NewFileCatalogSource creates a catalog source backed by the file at path
func NewFileCatalogSource(path string, reader common.DatasetReader) *FileCatalogSource {
	if reader == nil {
		reader = NewFileReader()
	}
	return &FileCatalogSource{path: path, reader: reader}
}

// Load implements common.CatalogSource
func (s *FileCatalogSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	ds, err := s.reader.Read(ctx, s.path)
	if err != nil {
		return nil, err
	}

	catalog.AssignSlugs(ds.Items)
	return catalog.NewCatalog(ds.Items, ds.Recipes), nil
}
