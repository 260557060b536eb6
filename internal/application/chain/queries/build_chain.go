package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	"github.com/andrescamacho/craftchain-go/internal/domain/chain"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

// BuildChainQuery expands an item into its production chain
type BuildChainQuery struct {
	ItemID string

	// RecipeSelections maps item id to the index of the ranked recipe to use
	RecipeSelections map[string]int

	// MaxDepth limits expansion; nil means unlimited
	MaxDepth *int

	// CollapsedNodeIDs hides the upstream subtree of each listed node
	CollapsedNodeIDs map[string]bool
}

// BuildChainResponse carries the (filtered) chain and its metadata
type BuildChainResponse struct {
	ItemID   string
	ItemName string
	NotFound bool

	Nodes      []chain.Node
	Edges      []chain.Edge
	RootNodeID string

	// TotalNodes counts nodes before collapse filtering
	TotalNodes int

	// Alternatives maps item id to the number of recipes producing it, for
	// items with a choice
	Alternatives map[string]int

	RawMaterials []string
	Depth        int
}

// BuildChainHandler handles the BuildChain query
type BuildChainHandler struct {
	provider common.CatalogProvider
	ranker   chain.RecipeRanker
}

// NewBuildChainHandler creates a new BuildChainHandler. A nil ranker uses the
// builder's default ranking.
func NewBuildChainHandler(provider common.CatalogProvider, ranker chain.RecipeRanker) *BuildChainHandler {
	return &BuildChainHandler{
		provider: provider,
		ranker:   ranker,
	}
}

// Handle executes the BuildChain query
func (h *BuildChainHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*BuildChainQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildChainQuery")
	}
	if query.MaxDepth != nil && *query.MaxDepth < 0 {
		return nil, shared.NewValidationError("maxDepth", fmt.Sprintf("must be non-negative, got %d", *query.MaxDepth))
	}

	c, err := h.provider.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	builder := chain.NewBuilder(c)
	if h.ranker != nil {
		builder = chain.NewBuilderWithRanker(c, h.ranker)
	}

	built := builder.Build(query.ItemID, chain.BuildOptions{
		RecipeSelections: query.RecipeSelections,
		MaxDepth:         query.MaxDepth,
	})
	nodes, edges := chain.FilterCollapsed(built.Nodes, built.Edges, query.CollapsedNodeIDs)

	_, found := c.Item(query.ItemID)
	metrics.RecordChainBuild(found, len(built.Nodes), time.Since(start).Seconds())

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "Chain built", map[string]interface{}{
		"action":        "chain_built",
		"item_id":       query.ItemID,
		"nodes":         len(built.Nodes),
		"visible_nodes": len(nodes),
		"found":         found,
	})

	return &BuildChainResponse{
		ItemID:       query.ItemID,
		ItemName:     c.ItemName(query.ItemID),
		NotFound:     !found,
		Nodes:        nodes,
		Edges:        edges,
		RootNodeID:   built.RootNodeID,
		TotalNodes:   len(built.Nodes),
		Alternatives: builder.RecipeAlternatives(built),
		RawMaterials: built.RawMaterials(),
		Depth:        built.Depth(),
	}, nil
}
