package planning

import (
	"fmt"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// GraphNodeType distinguishes item nodes from recipe nodes in a plan graph
type GraphNodeType string

const (
	GraphNodeItem   GraphNodeType = "item"
	GraphNodeRecipe GraphNodeType = "recipe"
)

// GraphNode is a vertex of the plan graph. Ids are stable across computations:
// "item:<itemID>" and "recipe:<recipeID>".
type GraphNode struct {
	ID   string
	Type GraphNodeType

	ItemID        string
	ItemName      string
	IsRawMaterial bool
	NeededPerMin  float64
	YieldPerMin   *float64
	IsBottleneck  bool

	RecipeID         string
	FacilityName     string
	ProcessingTimeMs int64
	CraftsPerMin     float64
	Machines         *float64
}

// GraphEdge connects an ingredient item to a recipe, or a recipe to an output
// the plan relies on. Highlight is set when the item end is a bottleneck.
type GraphEdge struct {
	ID        string
	Source    string
	Target    string
	Highlight bool
}

// Graph is the plan in node/edge form for downstream rendering. Layout is left
// to the consumer.
type Graph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Nodes: make([]GraphNode, len(g.Nodes)),
		Edges: append([]GraphEdge(nil), g.Edges...),
	}
	for i, n := range g.Nodes {
		n.YieldPerMin = cloneFloat(n.YieldPerMin)
		n.Machines = cloneFloat(n.Machines)
		out.Nodes[i] = n
	}
	return out
}

// ItemNodeID returns the plan graph id of an item
func ItemNodeID(itemID string) string {
	return "item:" + itemID
}

// RecipeNodeID returns the plan graph id of a recipe
func RecipeNodeID(recipeID string) string {
	return "recipe:" + recipeID
}

// BuildGraph renders a plan as a graph. Nodes come out items first then recipes,
// each sorted by id.
func BuildGraph(plan *Plan, c *catalog.Catalog) *Graph {
	g := &Graph{
		Nodes: make([]GraphNode, 0, len(plan.Items)+len(plan.Steps)),
		Edges: make([]GraphEdge, 0),
	}

	for _, itemID := range plan.ItemIDs() {
		throughput := plan.Items[itemID]
		node := GraphNode{
			ID:           ItemNodeID(itemID),
			Type:         GraphNodeItem,
			ItemID:       itemID,
			ItemName:     c.ItemName(itemID),
			NeededPerMin: throughput.NeededPerMin,
			YieldPerMin:  throughput.YieldPerMin,
			IsBottleneck: throughput.IsBottleneck,
		}
		if item, ok := c.Item(itemID); ok {
			node.IsRawMaterial = item.IsRawMaterial
		}
		g.Nodes = append(g.Nodes, node)
	}

	for _, recipeID := range plan.RecipeIDs() {
		recipe, ok := c.Recipe(recipeID)
		if !ok {
			continue
		}
		step := plan.Steps[recipeID]
		recipeNodeID := RecipeNodeID(recipeID)

		g.Nodes = append(g.Nodes, GraphNode{
			ID:               recipeNodeID,
			Type:             GraphNodeRecipe,
			RecipeID:         recipeID,
			FacilityName:     recipe.Facility.Name,
			ProcessingTimeMs: recipe.ProcessingTimeMs(),
			CraftsPerMin:     step.CraftsPerMin,
			Machines:         step.Machines,
		})

		for _, ing := range recipe.Ingredients {
			if _, planned := plan.Items[ing.ItemID]; !planned {
				continue
			}
			g.addEdge(ItemNodeID(ing.ItemID), recipeNodeID, plan.Items[ing.ItemID].IsBottleneck)
		}
		for _, itemID := range plan.RecipeOutputs[recipeID] {
			g.addEdge(recipeNodeID, ItemNodeID(itemID), plan.Items[itemID].IsBottleneck)
		}
	}

	return g
}

func (g *Graph) addEdge(source, target string, highlight bool) {
	g.Edges = append(g.Edges, GraphEdge{
		ID:        fmt.Sprintf("edge:%s->%s", source, target),
		Source:    source,
		Target:    target,
		Highlight: highlight,
	})
}

// Node returns the graph node with the given id
func (g *Graph) Node(id string) (*GraphNode, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}
