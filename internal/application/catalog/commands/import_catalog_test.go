package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/application/catalog/commands"
	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

func newReader() *helpers.MockDatasetReader {
	reader := helpers.NewMockDatasetReader()
	items := helpers.WorkedExampleItems()
	items[0].Slug = ""
	reader.Datasets["data.json"] = &common.Dataset{
		Version: "1.2.0",
		Items:   items,
		Recipes: helpers.WorkedExampleRecipes(),
	}
	return reader
}

func TestImportCatalogHandler_SavesAndReloads(t *testing.T) {
	repo := helpers.NewMockCatalogRepository()
	provider := services.NewCachedCatalogProvider(repo)
	handler := commands.NewImportCatalogHandler(newReader(), repo, provider)

	resp, err := handler.Handle(context.Background(), &commands.ImportCatalogCommand{Path: "data.json"})
	require.NoError(t, err)

	result := resp.(*commands.ImportCatalogResponse)
	assert.Equal(t, "1.2.0", result.Version)
	assert.Equal(t, 3, result.ItemCount)
	assert.Equal(t, 2, result.RecipeCount)
	assert.NotEmpty(t, result.Fingerprint)
	assert.Equal(t, 1, repo.SaveCount())

	stored := repo.StoredItems()
	assert.Equal(t, "Alpha_Gear", stored[0].Slug)

	current, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Fingerprint, current.Fingerprint())
}

func TestImportCatalogHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		repoErr string
		wantErr string
	}{
		{name: "missing path", path: "", wantErr: "dataset path is required"},
		{name: "unreadable dataset", path: "missing.json", wantErr: "failed to read dataset"},
		{name: "repository failure", path: "data.json", repoErr: "disk full", wantErr: "failed to save catalog: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := helpers.NewMockCatalogRepository()
			if tt.repoErr != "" {
				repo.SetError(tt.repoErr)
			}
			handler := commands.NewImportCatalogHandler(newReader(), repo, nil)

			_, err := handler.Handle(context.Background(), &commands.ImportCatalogCommand{Path: tt.path})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
