package helpers

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftchain-go/internal/adapters/persistence"
	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// TestRepositories holds real repository instances for integration tests
type TestRepositories struct {
	DB          *gorm.DB
	CatalogRepo *persistence.GormCatalogRepository
	Provider    *services.CachedCatalogProvider
}

// NewTestRepositories wires a GORM catalog repository and a provider reading from it.
// A nil db selects the shared test database.
func NewTestRepositories(db *gorm.DB) *TestRepositories {
	if db == nil {
		db = SharedTestDB
	}

	repo := persistence.NewGormCatalogRepository(db)
	return &TestRepositories{
		DB:          db,
		CatalogRepo: repo,
		Provider:    services.NewCachedCatalogProvider(repo),
	}
}

// Seed stores the items and recipes and refreshes the provider snapshot
func (r *TestRepositories) Seed(ctx context.Context, items []catalog.Item, recipes []catalog.Recipe) error {
	if err := r.CatalogRepo.Save(ctx, items, recipes); err != nil {
		return err
	}
	_, err := r.Provider.Reload(ctx)
	return err
}
