package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// CachedCatalogProvider loads the catalog once from its source and serves the
// same immutable snapshot to every caller until Reload swaps it.
type CachedCatalogProvider struct {
	source common.CatalogSource

	mu       sync.RWMutex
	snapshot *catalog.Catalog
}

// NewCachedCatalogProvider creates a provider over source
func NewCachedCatalogProvider(source common.CatalogSource) *CachedCatalogProvider {
	return &CachedCatalogProvider{
		source: source,
	}
}

// NewStaticCatalogProvider creates a provider that always serves c
func NewStaticCatalogProvider(c *catalog.Catalog) *CachedCatalogProvider {
	return &CachedCatalogProvider{
		source:   staticSource{catalog: c},
		snapshot: c,
	}
}

// Catalog returns the current snapshot, loading it on first use
func (p *CachedCatalogProvider) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	p.mu.RLock()
	snapshot := p.snapshot
	p.mu.RUnlock()

	if snapshot != nil {
		return snapshot, nil
	}
	return p.Reload(ctx)
}

// Reload loads a fresh snapshot and replaces the current one. On failure the
// previous snapshot stays in place.
func (p *CachedCatalogProvider) Reload(ctx context.Context) (*catalog.Catalog, error) {
	logger := common.LoggerFromContext(ctx)

	loaded, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	p.mu.Lock()
	p.snapshot = loaded
	p.mu.Unlock()

	items, recipes := loaded.Size()
	logger.Log(common.LevelInfo, "Catalog loaded", map[string]interface{}{
		"action":      "catalog_loaded",
		"items":       items,
		"recipes":     recipes,
		"fingerprint": loaded.Fingerprint(),
	})
	return loaded, nil
}

type staticSource struct {
	catalog *catalog.Catalog
}

func (s staticSource) Load(context.Context) (*catalog.Catalog, error) {
	return s.catalog, nil
}

var _ common.CatalogProvider = (*CachedCatalogProvider)(nil)
