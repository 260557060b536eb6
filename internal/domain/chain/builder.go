package chain

import (
	"fmt"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// BuildOptions are the per-call inputs of a chain build. The maps are read as a
// snapshot and never modified.
type BuildOptions struct {
	// RecipeSelections maps item id to an index into the ranked candidate recipes.
	// Missing or out-of-range indices select the first candidate.
	RecipeSelections map[string]int

	// MaxDepth limits expansion. Items at MaxDepth are emitted but not expanded and
	// items deeper than MaxDepth are omitted. nil means unlimited.
	MaxDepth *int
}

// Builder expands a root item into a production chain.
//
// The result is a tree, not a minimal DAG: an item reached through two branches
// gets two independent subtrees so per-branch quantities stay attributable.
type Builder struct {
	catalog *catalog.Catalog
	ranker  RecipeRanker
}

// NewBuilder creates a chain builder with the default ranking (prefer raw materials)
func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{
		catalog: c,
		ranker:  PreferRawMaterials,
	}
}

// NewBuilderWithRanker creates a chain builder with a specific recipe ranking
func NewBuilderWithRanker(c *catalog.Catalog, ranker RecipeRanker) *Builder {
	if ranker == nil {
		ranker = DatasetOrder
	}
	return &Builder{
		catalog: c,
		ranker:  ranker,
	}
}

// CandidateRecipes returns the ranked non-manual recipes producing itemID.
// Raw-flagged items have no candidates regardless of the catalog.
func (b *Builder) CandidateRecipes(itemID string) []*catalog.Recipe {
	if item, ok := b.catalog.Item(itemID); ok && item.IsRawMaterial {
		return nil
	}

	candidates := make([]*catalog.Recipe, 0)
	for _, recipe := range b.catalog.RecipesProducing(itemID) {
		if recipe.IsManual() {
			continue
		}
		candidates = append(candidates, recipe)
	}
	if len(candidates) == 0 {
		return nil
	}
	return b.ranker(b.catalog, candidates)
}

// CanExpand reports whether the item has at least one usable producing recipe
func (b *Builder) CanExpand(itemID string) bool {
	return len(b.CandidateRecipes(itemID)) > 0
}

// SelectRecipe returns the recipe a build would use for itemID
func (b *Builder) SelectRecipe(itemID string, selections map[string]int) (*catalog.Recipe, bool) {
	candidates := b.CandidateRecipes(itemID)
	if len(candidates) == 0 {
		return nil, false
	}

	index := selections[itemID]
	if index < 0 || index >= len(candidates) {
		index = 0
	}
	return candidates[index], true
}

// Build expands rootItemID depth-first. An unknown root yields a single terminal node.
func (b *Builder) Build(rootItemID string, opts BuildOptions) *Chain {
	state := &buildState{
		builder: b,
		opts:    opts,
		chain: &Chain{
			Nodes: make([]Node, 0),
			Edges: make([]Edge, 0),
		},
	}

	if rootID, _, ok := state.expand(rootItemID, 0, 1, nil); ok {
		state.chain.RootNodeID = rootID
	}
	return state.chain
}

// buildState holds the working set of a single build
type buildState struct {
	builder *Builder
	opts    BuildOptions
	chain   *Chain
	nextID  int
}

func (s *buildState) newNodeID() string {
	id := fmt.Sprintf("node-%d", s.nextID)
	s.nextID++
	return id
}

func (s *buildState) addEdge(source, target string) {
	s.chain.Edges = append(s.chain.Edges, Edge{
		ID:     fmt.Sprintf("edge-%s-%s", source, target),
		Source: source,
		Target: target,
	})
}

// expand emits the item node for itemID and, unless terminal, its facility node and
// ingredient subtrees. It returns the item node id and the number of nodes below it.
func (s *buildState) expand(itemID string, depth, quantity int, path *activePath) (string, int, bool) {
	if path.contains(itemID) {
		return "", 0, false
	}
	if s.opts.MaxDepth != nil && depth > *s.opts.MaxDepth {
		return "", 0, false
	}

	recipe, hasRecipe := s.builder.SelectRecipe(itemID, s.opts.RecipeSelections)
	truncated := hasRecipe && s.opts.MaxDepth != nil && depth >= *s.opts.MaxDepth

	itemNodeID := s.newNodeID()
	itemIndex := len(s.chain.Nodes)
	itemNode := Node{
		ID:            itemNodeID,
		Type:          NodeTypeItem,
		ItemID:        itemID,
		ItemName:      s.builder.catalog.ItemName(itemID),
		IsRawMaterial: !hasRecipe,
		Quantity:      quantity,
		Truncated:     truncated,
		Depth:         depth,
	}
	if hasRecipe && !truncated {
		itemNode.RecipeID = recipe.ID
	}
	s.chain.Nodes = append(s.chain.Nodes, itemNode)

	if !hasRecipe || truncated {
		return itemNodeID, 0, true
	}

	facilityNodeID := s.newNodeID()
	facilityIndex := len(s.chain.Nodes)
	s.chain.Nodes = append(s.chain.Nodes, Node{
		ID:               facilityNodeID,
		Type:             NodeTypeFacility,
		RecipeID:         recipe.ID,
		FacilityName:     recipe.Facility.Name,
		FacilityImageURL: recipe.Facility.ImageURL,
		ProcessingTimeMs: recipe.ProcessingTimeMs(),
		Depth:            depth,
	})
	s.addEdge(facilityNodeID, itemNodeID)

	descendants := 1 // the facility node
	childPath := path.push(itemID)
	for _, ing := range recipe.Ingredients {
		childID, childDescendants, ok := s.expand(ing.ItemID, depth+1, ing.Count, childPath)
		if !ok {
			continue
		}
		s.addEdge(childID, facilityNodeID)
		descendants += 1 + childDescendants
	}

	s.chain.Nodes[facilityIndex].Descendants = descendants - 1
	s.chain.Nodes[itemIndex].Descendants = descendants
	return itemNodeID, descendants, true
}

// activePath is the immutable list of item ids on the current root-to-node path.
// push returns a new path; siblings never observe each other's entries.
type activePath struct {
	itemID string
	parent *activePath
}

func (p *activePath) push(itemID string) *activePath {
	return &activePath{itemID: itemID, parent: p}
}

func (p *activePath) contains(itemID string) bool {
	for cur := p; cur != nil; cur = cur.parent {
		if cur.itemID == itemID {
			return true
		}
	}
	return false
}
