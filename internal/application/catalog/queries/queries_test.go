package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/application/catalog/queries"
	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

func newProvider() *services.CachedCatalogProvider {
	return services.NewCachedCatalogProvider(helpers.StaticSource(helpers.WorkedExampleCatalog()))
}

func TestGetItemHandler(t *testing.T) {
	handler := queries.NewGetItemHandler(newProvider())

	resp, err := handler.Handle(context.Background(), &queries.GetItemQuery{ItemID: "b"})
	require.NoError(t, err)

	result := resp.(*queries.GetItemResponse)
	assert.False(t, result.NotFound)
	assert.Equal(t, "Beta Plate", result.Item.Name)
	require.Len(t, result.ProducedBy, 1)
	assert.Equal(t, "r_b", result.ProducedBy[0].ID)
	assert.True(t, result.ProducedBy[0].UsesRawMaterial)
	assert.Equal(t, []queries.ComponentDTO{{ItemID: "c", ItemName: "Copper Ore", Count: 2}}, result.ProducedBy[0].Ingredients)
	require.Len(t, result.UsedIn, 1)
	assert.Equal(t, "r_a", result.UsedIn[0].ID)
}

func TestGetItemHandler_UnknownItem(t *testing.T) {
	handler := queries.NewGetItemHandler(newProvider())

	resp, err := handler.Handle(context.Background(), &queries.GetItemQuery{ItemID: "ghost"})
	require.NoError(t, err)

	result := resp.(*queries.GetItemResponse)
	assert.True(t, result.NotFound)
	assert.Equal(t, "ghost", result.Item.Name)
}

func TestGetItemHandler_WrongRequestType(t *testing.T) {
	handler := queries.NewGetItemHandler(newProvider())

	_, err := handler.Handle(context.Background(), &queries.ListItemsQuery{})
	assert.ErrorContains(t, err, "invalid request type")
}

func TestListItemsHandler(t *testing.T) {
	handler := queries.NewListItemsHandler(newProvider())

	tests := []struct {
		name  string
		query *queries.ListItemsQuery
		want  []string
	}{
		{name: "all sorted by sort id", query: &queries.ListItemsQuery{}, want: []string{"c", "b", "a"}},
		{name: "category filter", query: &queries.ListItemsQuery{Category: "PARTS"}, want: []string{"b", "a"}},
		{name: "raw only", query: &queries.ListItemsQuery{RawOnly: true}, want: []string{"c"}},
		{name: "search by name", query: &queries.ListItemsQuery{Search: "plate"}, want: []string{"b"}},
		{name: "no match", query: &queries.ListItemsQuery{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler.Handle(context.Background(), tt.query)
			require.NoError(t, err)

			result := resp.(*queries.ListItemsResponse)
			ids := make([]string, 0, len(result.Items))
			for _, item := range result.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, []string{"ores", "parts"}, result.Categories)
		})
	}
}
