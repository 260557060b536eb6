package planning

import (
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/pkg/utils"
)

// PlannerOptions configures a Planner
type PlannerOptions struct {
	// Selector overrides the default recipe policy (lowest sort id)
	Selector RecipeSelector

	// MaxScaleFactor bounds the whole-number scale search (default 20)
	MaxScaleFactor int
}

// Planner turns targets into a sized production plan
type Planner struct {
	propagator *Propagator
	scaler     *Scaler
}

// NewPlanner creates a planner over a catalog
func NewPlanner(c *catalog.Catalog, opts PlannerOptions) *Planner {
	return &Planner{
		propagator: NewPropagatorWithSelector(c, opts.Selector),
		scaler:     NewScaler(c, opts.MaxScaleFactor),
	}
}

// Plan computes the plan for targets. Invalid targets and overrides degrade
// silently; an empty target list yields an empty plan.
func (p *Planner) Plan(targets []Target, settings Settings) *Plan {
	if settings.RatioMode != RatioModeWhole {
		settings.RatioMode = RatioModeFractional
	}

	demand := p.propagator.Propagate(targets, settings.MaxDepth)
	scaled := p.scaler.Scale(demand, settings.RatioMode)

	return &Plan{
		Targets:  append([]Target(nil), targets...),
		Settings: settings,
		Stats: Stats{
			TotalTargetOutputPerMin: totalTargetRate(targets),
			ScaleFactor:             scaled.ScaleFactor,
		},
		ItemToRecipe:  demand.ItemToRecipe,
		RecipeOutputs: recipeOutputs(demand.ItemToRecipe),
		Items:         scaled.Items,
		Steps:         scaled.Steps,
	}
}

func totalTargetRate(targets []Target) float64 {
	total := 0.0
	for _, t := range targets {
		if utils.IsFinitePositive(t.RatePerMin) {
			total += t.RatePerMin
		}
	}
	return total
}

// recipeOutputs reverses ItemToRecipe; item ids are sorted per recipe
func recipeOutputs(itemToRecipe map[string]string) map[string][]string {
	result := make(map[string][]string)
	for _, itemID := range sortedKeys(itemToRecipe) {
		recipeID := itemToRecipe[itemID]
		if recipeID == "" {
			continue
		}
		result[recipeID] = append(result[recipeID], itemID)
	}
	return result
}
