package steps

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/craftchain-go/internal/domain/chain"
)

type chainContext struct {
	world      *CatalogWorld
	selections map[string]int
	built      *chain.Chain
	nodes      []chain.Node
	edges      []chain.Edge
	collapsed  map[string]bool
}

func (ctx *chainContext) reset() {
	ctx.selections = make(map[string]int)
	ctx.built = nil
	ctx.nodes = nil
	ctx.edges = nil
	ctx.collapsed = make(map[string]bool)
}

func (ctx *chainContext) itemNodes(itemID string) []chain.Node {
	result := make([]chain.Node, 0)
	for _, n := range ctx.nodes {
		if n.IsItem() && n.ItemID == itemID {
			result = append(result, n)
		}
	}
	return result
}

func (ctx *chainContext) firstItemNode(itemID string) (chain.Node, error) {
	found := ctx.itemNodes(itemID)
	if len(found) == 0 {
		return chain.Node{}, fmt.Errorf("item %s is not in the chain", itemID)
	}
	return found[0], nil
}

// ============================================================================
// Action Steps
// ============================================================================

func (ctx *chainContext) recipeIsSelectedFor(index int, itemID string) error {
	ctx.selections[itemID] = index
	return nil
}

func (ctx *chainContext) iBuildTheChainFor(itemID string) error {
	ctx.built = chain.NewBuilder(ctx.world.Catalog()).Build(itemID, chain.BuildOptions{
		MaxDepth:         ctx.world.MaxDepth(),
		RecipeSelections: ctx.selections,
	})
	ctx.nodes = ctx.built.Nodes
	ctx.edges = ctx.built.Edges
	return nil
}

func (ctx *chainContext) iCollapseTheNodeForItem(itemID string) error {
	node, err := ctx.firstItemNode(itemID)
	if err != nil {
		return err
	}
	ctx.collapsed[node.ID] = true
	ctx.nodes, ctx.edges = chain.FilterCollapsed(ctx.nodes, ctx.edges, ctx.collapsed)
	return nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (ctx *chainContext) theChainHasNodesAndEdges(nodes, edges int) error {
	if len(ctx.nodes) != nodes || len(ctx.edges) != edges {
		return fmt.Errorf("expected %d nodes and %d edges, got %d and %d", nodes, edges, len(ctx.nodes), len(ctx.edges))
	}
	return nil
}

func (ctx *chainContext) itemAppearsTimesInTheChain(itemID string, times int) error {
	if found := len(ctx.itemNodes(itemID)); found != times {
		return fmt.Errorf("expected %s %d times, found %d", itemID, times, found)
	}
	return nil
}

func (ctx *chainContext) itemIsTruncated(itemID string) error {
	node, err := ctx.firstItemNode(itemID)
	if err != nil {
		return err
	}
	if !node.Truncated {
		return fmt.Errorf("expected %s to be truncated", itemID)
	}
	return nil
}

func (ctx *chainContext) itemHasQuantity(itemID string, quantity int) error {
	node, err := ctx.firstItemNode(itemID)
	if err != nil {
		return err
	}
	if node.Quantity != quantity {
		return fmt.Errorf("expected %s quantity %d, got %d", itemID, quantity, node.Quantity)
	}
	return nil
}

func (ctx *chainContext) theRootUsesRecipe(recipeID string) error {
	root, ok := ctx.built.Root()
	if !ok {
		return fmt.Errorf("chain has no root")
	}
	if root.RecipeID != recipeID {
		return fmt.Errorf("expected root recipe %s, got %q", recipeID, root.RecipeID)
	}
	return nil
}

func (ctx *chainContext) theChainRawMaterialsAre(raw string) error {
	return equalIDs("raw materials", splitIDs(raw), ctx.built.RawMaterials())
}

func (ctx *chainContext) itemHidesDescendants(itemID string, hidden int) error {
	node, err := ctx.firstItemNode(itemID)
	if err != nil {
		return err
	}
	if node.HiddenDescendants != hidden {
		return fmt.Errorf("expected %s to hide %d nodes, got %d", itemID, hidden, node.HiddenDescendants)
	}
	return nil
}

func (ctx *chainContext) collapsingAgainChangesNothing() error {
	nodes, edges := chain.FilterCollapsed(ctx.nodes, ctx.edges, ctx.collapsed)
	if !reflect.DeepEqual(nodes, ctx.nodes) || !reflect.DeepEqual(edges, ctx.edges) {
		return fmt.Errorf("collapsing again changed the chain")
	}
	return nil
}

// ============================================================================
// Registration
// ============================================================================

// InitializeChainScenario registers chain build and collapse steps
func InitializeChainScenario(sc *godog.ScenarioContext, world *CatalogWorld) {
	ctx := &chainContext{world: world}
	sc.Before(func(bddCtx context.Context, _ *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return bddCtx, nil
	})

	sc.Step(`^recipe (\d+) is selected for "([^"]*)"$`, ctx.recipeIsSelectedFor)
	sc.Step(`^I build the chain for "([^"]*)"$`, ctx.iBuildTheChainFor)
	sc.Step(`^I collapse the node for item "([^"]*)"$`, ctx.iCollapseTheNodeForItem)

	sc.Step(`^the chain has (\d+) nodes and (\d+) edges$`, ctx.theChainHasNodesAndEdges)
	sc.Step(`^item "([^"]*)" appears (\d+) times? in the chain$`, ctx.itemAppearsTimesInTheChain)
	sc.Step(`^item "([^"]*)" is truncated$`, ctx.itemIsTruncated)
	sc.Step(`^item "([^"]*)" has quantity (\d+)$`, ctx.itemHasQuantity)
	sc.Step(`^the root uses recipe "([^"]*)"$`, ctx.theRootUsesRecipe)
	sc.Step(`^the chain raw materials are "([^"]*)"$`, ctx.theChainRawMaterialsAre)
	sc.Step(`^item "([^"]*)" hides (\d+) nodes$`, ctx.itemHidesDescendants)
	sc.Step(`^collapsing again changes nothing$`, ctx.collapsingAgainChangesNothing)
}
