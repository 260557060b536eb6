package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/application/chain/queries"
	"github.com/andrescamacho/craftchain-go/internal/domain/chain"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

func newHandler() *queries.BuildChainHandler {
	provider := services.NewStaticCatalogProvider(helpers.WorkedExampleCatalog())
	return queries.NewBuildChainHandler(provider, nil)
}

func TestBuildChainHandler_FullChain(t *testing.T) {
	resp, err := newHandler().Handle(context.Background(), &queries.BuildChainQuery{ItemID: "a"})
	require.NoError(t, err)

	result := resp.(*queries.BuildChainResponse)
	assert.False(t, result.NotFound)
	assert.Equal(t, "Alpha Gear", result.ItemName)
	assert.Len(t, result.Nodes, 5)
	assert.Len(t, result.Edges, 4)
	assert.Equal(t, 5, result.TotalNodes)
	assert.Equal(t, "node-0", result.RootNodeID)
	assert.Equal(t, []string{"c"}, result.RawMaterials)
	assert.Equal(t, 2, result.Depth)
	assert.Empty(t, result.Alternatives)
}

func TestBuildChainHandler_CollapseAndDepth(t *testing.T) {
	depth := 1
	resp, err := newHandler().Handle(context.Background(), &queries.BuildChainQuery{
		ItemID:           "a",
		MaxDepth:         &depth,
		CollapsedNodeIDs: map[string]bool{"node-0": true},
	})
	require.NoError(t, err)

	result := resp.(*queries.BuildChainResponse)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, 2, result.Nodes[0].HiddenDescendants)
	assert.Equal(t, 3, result.TotalNodes)
	assert.Empty(t, result.Edges)
}

func TestBuildChainHandler_UnknownItem(t *testing.T) {
	resp, err := newHandler().Handle(context.Background(), &queries.BuildChainQuery{ItemID: "ghost"})
	require.NoError(t, err)

	result := resp.(*queries.BuildChainResponse)
	assert.True(t, result.NotFound)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, chain.NodeTypeItem, result.Nodes[0].Type)
}

func TestBuildChainHandler_RejectsNegativeDepth(t *testing.T) {
	depth := -1
	_, err := newHandler().Handle(context.Background(), &queries.BuildChainQuery{ItemID: "a", MaxDepth: &depth})
	assert.ErrorContains(t, err, "maxDepth: must be non-negative")
}
