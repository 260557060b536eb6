package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// MockCatalogRepository is an in-memory test double for catalog.Repository
type MockCatalogRepository struct {
	mu      sync.RWMutex
	items   []catalog.Item
	recipes []catalog.Recipe
	saves   int

	// Error injection
	shouldError bool
	errorMsg    string
}

// NewMockCatalogRepository creates a new mock catalog repository
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{}
}

// Load returns a catalog built from the last saved content
func (r *MockCatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.shouldError {
		return nil, fmt.Errorf("%s", r.errorMsg)
	}
	return catalog.NewCatalog(r.items, r.recipes), nil
}

// Save replaces the stored content
func (r *MockCatalogRepository) Save(ctx context.Context, items []catalog.Item, recipes []catalog.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shouldError {
		return fmt.Errorf("%s", r.errorMsg)
	}
	r.items = append([]catalog.Item(nil), items...)
	r.recipes = append([]catalog.Recipe(nil), recipes...)
	r.saves++
	return nil
}

// SetError configures the repository to fail every call
func (r *MockCatalogRepository) SetError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shouldError = true
	r.errorMsg = msg
}

// SaveCount returns how many times Save succeeded
func (r *MockCatalogRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

// StoredItems returns a copy of the saved items
func (r *MockCatalogRepository) StoredItems() []catalog.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Item(nil), r.items...)
}

// MockDatasetReader is a test double for common.DatasetReader
type MockDatasetReader struct {
	Datasets map[string]*common.Dataset
}

// NewMockDatasetReader creates a reader serving datasets by path
func NewMockDatasetReader() *MockDatasetReader {
	return &MockDatasetReader{
		Datasets: make(map[string]*common.Dataset),
	}
}

// Read returns the dataset registered for path
func (r *MockDatasetReader) Read(ctx context.Context, path string) (*common.Dataset, error) {
	dataset, ok := r.Datasets[path]
	if !ok {
		return nil, fmt.Errorf("dataset not found: %s", path)
	}
	return dataset, nil
}

var (
	_ catalog.Repository   = (*MockCatalogRepository)(nil)
	_ common.DatasetReader = (*MockDatasetReader)(nil)
)
