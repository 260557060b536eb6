package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

type countingSource struct {
	loads int
	err   error
}

func (s *countingSource) Load(context.Context) (*catalog.Catalog, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return catalog.NewCatalog([]catalog.Item{{ID: "a"}}, nil), nil
}

func TestCachedCatalogProvider_LoadsOnce(t *testing.T) {
	source := &countingSource{}
	provider := services.NewCachedCatalogProvider(source)

	first, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	second, err := provider.Catalog(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.loads)
}

func TestCachedCatalogProvider_ReloadSwapsSnapshot(t *testing.T) {
	source := &countingSource{}
	provider := services.NewCachedCatalogProvider(source)

	first, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	reloaded, err := provider.Reload(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, reloaded)
	current, _ := provider.Catalog(context.Background())
	assert.Same(t, reloaded, current)
}

func TestCachedCatalogProvider_FailedReloadKeepsSnapshot(t *testing.T) {
	source := &countingSource{}
	provider := services.NewCachedCatalogProvider(source)
	first, err := provider.Catalog(context.Background())
	require.NoError(t, err)

	source.err = errors.New("disk gone")
	_, err = provider.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, source.err)

	current, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, current)
}

func TestStaticCatalogProvider(t *testing.T) {
	c := catalog.NewCatalog(nil, nil)
	provider := services.NewStaticCatalogProvider(c)

	got, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	assert.Same(t, c, got)
}
