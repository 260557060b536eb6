package planning

import (
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/pkg/utils"
)

// craftsEpsilon is the tolerance below which an increase in crafts/min is noise
const craftsEpsilon = 1e-12

// RecipeSelector picks the default producing recipe for an item when no target
// forces one. candidates is never empty. Returning nil leaves the item terminal.
type RecipeSelector func(itemID string, candidates []*catalog.Recipe) *catalog.Recipe

// LowestSortID picks the candidate with the lowest numeric sort id. Candidates
// without a numeric sort id lose to any that have one; ties keep dataset order.
func LowestSortID(_ string, candidates []*catalog.Recipe) *catalog.Recipe {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	bestKey, bestOK := best.SortKey()
	for _, r := range candidates[1:] {
		key, ok := r.SortKey()
		if ok && (!bestOK || key < bestKey) {
			best, bestKey, bestOK = r, key, true
		}
	}
	return best
}

// Demand is the accumulated, unscaled requirement of a set of targets
type Demand struct {
	// NeededPerMin is the total draw on each reached item
	NeededPerMin map[string]float64

	// CraftsPerMin is the charged craft rate of each used recipe
	CraftsPerMin map[string]float64

	// ItemToRecipe records the recipe decision for each item ("" when terminal)
	ItemToRecipe map[string]string
}

// Propagator walks the recipe graph from a set of targets and accumulates
// per-item and per-recipe rates.
type Propagator struct {
	catalog  *catalog.Catalog
	selector RecipeSelector
}

// NewPropagator creates a propagator using the lowest-sort-id default
func NewPropagator(c *catalog.Catalog) *Propagator {
	return NewPropagatorWithSelector(c, LowestSortID)
}

// NewPropagatorWithSelector creates a propagator with a specific default recipe policy
func NewPropagatorWithSelector(c *catalog.Catalog, selector RecipeSelector) *Propagator {
	if selector == nil {
		selector = LowestSortID
	}
	return &Propagator{
		catalog:  c,
		selector: selector,
	}
}

// Propagate accumulates demand for targets. Every call works on fresh state.
func (p *Propagator) Propagate(targets []Target, maxDepth *int) *Demand {
	run := &propagation{
		propagator: p,
		maxDepth:   maxDepth,
		overrides:  targetOverrides(targets),
		demand: &Demand{
			NeededPerMin: make(map[string]float64),
			CraftsPerMin: make(map[string]float64),
			ItemToRecipe: make(map[string]string),
		},
	}

	for _, t := range targets {
		if t.ItemID == "" {
			continue
		}
		run.addNeeded(t.ItemID, t.RatePerMin, 0, nil)
	}
	return run.demand
}

// SelectRecipe returns the recipe a plan would use to produce itemID, honoring
// forced recipe ids in overrides.
func (p *Propagator) SelectRecipe(itemID string, overrides map[string]string) (*catalog.Recipe, bool) {
	if item, ok := p.catalog.Item(itemID); ok && item.IsRawMaterial {
		return nil, false
	}

	if forced := overrides[itemID]; forced != "" {
		recipe, ok := p.catalog.Recipe(forced)
		if !ok || !recipe.Produces(itemID) {
			return nil, false
		}
		return recipe, true
	}

	candidates := make([]*catalog.Recipe, 0)
	for _, r := range p.catalog.RecipesProducing(itemID) {
		if !r.IsManual() {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	recipe := p.selector(itemID, candidates)
	if recipe == nil || !recipe.Produces(itemID) {
		return nil, false
	}
	return recipe, true
}

func targetOverrides(targets []Target) map[string]string {
	overrides := make(map[string]string)
	for _, t := range targets {
		if t.ItemID != "" && t.RecipeID != "" {
			overrides[t.ItemID] = t.RecipeID
		}
	}
	return overrides
}

// propagation is the working state of a single Propagate call
type propagation struct {
	propagator *Propagator
	maxDepth   *int
	overrides  map[string]string
	demand     *Demand
}

func (r *propagation) addNeeded(itemID string, delta float64, depth int, path *itemPath) {
	if !utils.IsFinitePositive(delta) {
		return
	}

	r.demand.NeededPerMin[itemID] += delta
	total := r.demand.NeededPerMin[itemID]

	if path.contains(itemID) {
		return
	}
	if r.maxDepth != nil && depth > *r.maxDepth {
		return
	}

	recipe, ok := r.propagator.SelectRecipe(itemID, r.overrides)
	if !ok {
		r.demand.ItemToRecipe[itemID] = ""
		return
	}
	r.demand.ItemToRecipe[itemID] = recipe.ID

	outputCount := recipe.OutputCount(itemID)
	if outputCount <= 0 {
		return
	}

	crafts := total / float64(outputCount)
	charged := r.demand.CraftsPerMin[recipe.ID]
	if crafts <= charged+craftsEpsilon {
		return
	}

	deltaCrafts := crafts - charged
	r.demand.CraftsPerMin[recipe.ID] = crafts

	next := path.push(itemID)
	for _, ing := range recipe.Ingredients {
		r.addNeeded(ing.ItemID, deltaCrafts*float64(ing.Count), depth+1, next)
	}
}

// itemPath is the immutable set of items on the current target-to-item path
type itemPath struct {
	itemID string
	parent *itemPath
}

func (p *itemPath) push(itemID string) *itemPath {
	return &itemPath{itemID: itemID, parent: p}
}

func (p *itemPath) contains(itemID string) bool {
	for cur := p; cur != nil; cur = cur.parent {
		if cur.itemID == itemID {
			return true
		}
	}
	return false
}
