package chain

// NodeType distinguishes item nodes from facility nodes
type NodeType string

const (
	// NodeTypeItem represents an item required by its consumer
	NodeTypeItem NodeType = "item"

	// NodeTypeFacility represents the recipe producing its item
	NodeTypeFacility NodeType = "facility"
)

// Node is one vertex of a production chain.
//
// Node ids are sequence ids generated fresh on every build. They are not stable
// across builds: callers needing a stable key must use ItemID (or RecipeID).
type Node struct {
	ID   string
	Type NodeType

	// Item node fields
	ItemID        string
	ItemName      string
	IsRawMaterial bool
	Quantity      int // units requested by the single consumer edge; 1 at the root

	// Truncated marks a producible item left unexpanded by the depth limit
	Truncated bool

	// RecipeID is the selected producing recipe (empty for terminal items)
	RecipeID string

	// Facility node fields
	FacilityName     string
	FacilityImageURL string
	ProcessingTimeMs int64 // 0 when unknown

	Depth int

	// Descendants is the size of the subtree below this node at build time
	Descendants int

	// HiddenDescendants is set on collapse roots by FilterCollapsed
	HiddenDescendants int
}

// IsItem returns true for item nodes
func (n *Node) IsItem() bool {
	return n.Type == NodeTypeItem
}

// IsFacility returns true for facility nodes
func (n *Node) IsFacility() bool {
	return n.Type == NodeTypeFacility
}

// Edge points from the producer to the consumer: facility -> item for
// production, ingredient item -> facility for consumption.
type Edge struct {
	ID     string
	Source string
	Target string
}

// Chain is the tree of nodes built by expanding one root item
type Chain struct {
	Nodes      []Node
	Edges      []Edge
	RootNodeID string
}

// Node returns the node with the given id
func (c *Chain) Node(id string) (*Node, bool) {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i], true
		}
	}
	return nil, false
}

// Root returns the root item node
func (c *Chain) Root() (*Node, bool) {
	if c.RootNodeID == "" {
		return nil, false
	}
	return c.Node(c.RootNodeID)
}

// ItemNodes returns the item nodes in build order
func (c *Chain) ItemNodes() []Node {
	result := make([]Node, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.IsItem() {
			result = append(result, n)
		}
	}
	return result
}

// FacilityCount returns the number of facility nodes
func (c *Chain) FacilityCount() int {
	count := 0
	for _, n := range c.Nodes {
		if n.IsFacility() {
			count++
		}
	}
	return count
}

// RawMaterials returns the distinct terminal item ids, in first-seen order
func (c *Chain) RawMaterials() []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, n := range c.Nodes {
		if !n.IsItem() || !n.IsRawMaterial || seen[n.ItemID] {
			continue
		}
		seen[n.ItemID] = true
		result = append(result, n.ItemID)
	}
	return result
}

// Depth returns the deepest item level in the chain (0 for a lone root)
func (c *Chain) Depth() int {
	maxDepth := 0
	for _, n := range c.Nodes {
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}
	return maxDepth
}
