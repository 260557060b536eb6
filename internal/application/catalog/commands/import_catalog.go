package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// ImportCatalogCommand loads a dataset file into the catalog repository,
// replacing its content
type ImportCatalogCommand struct {
	Path string
}

// ImportCatalogResponse reports what was imported
type ImportCatalogResponse struct {
	Version     string
	ItemCount   int
	RecipeCount int
	Fingerprint string
}

// ImportCatalogHandler handles the ImportCatalog command
type ImportCatalogHandler struct {
	reader   common.DatasetReader
	repo     catalog.Repository
	provider common.CatalogProvider
}

// NewImportCatalogHandler creates a new ImportCatalogHandler. provider may be nil;
// when set it is reloaded after a successful import.
func NewImportCatalogHandler(
	reader common.DatasetReader,
	repo catalog.Repository,
	provider common.CatalogProvider,
) *ImportCatalogHandler {
	return &ImportCatalogHandler{
		reader:   reader,
		repo:     repo,
		provider: provider,
	}
}

// Handle executes the ImportCatalog command
func (h *ImportCatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportCatalogCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportCatalogCommand")
	}
	if cmd.Path == "" {
		return nil, fmt.Errorf("dataset path is required")
	}

	logger := common.LoggerFromContext(ctx)

	dataset, err := h.reader.Read(ctx, cmd.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", cmd.Path, err)
	}

	catalog.AssignSlugs(dataset.Items)

	if err := h.repo.Save(ctx, dataset.Items, dataset.Recipes); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	imported := catalog.NewCatalog(dataset.Items, dataset.Recipes)
	items, recipes := imported.Size()

	logger.Log(common.LevelInfo, "Catalog imported", map[string]interface{}{
		"action":  "catalog_imported",
		"path":    cmd.Path,
		"version": dataset.Version,
		"items":   items,
		"recipes": recipes,
	})

	if h.provider != nil {
		if _, err := h.provider.Reload(ctx); err != nil {
			logger.Log(common.LevelWarn, "Catalog reload after import failed", map[string]interface{}{
				"action": "catalog_reload_failed",
				"error":  err.Error(),
			})
		}
	}

	return &ImportCatalogResponse{
		Version:     dataset.Version,
		ItemCount:   items,
		RecipeCount: recipes,
		Fingerprint: imported.Fingerprint(),
	}, nil
}
