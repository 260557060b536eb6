package planning

import (
	"fmt"
	"sort"
	"strings"
)

// RatioMode selects how machine counts are rounded
type RatioMode string

const (
	// RatioModeFractional keeps exact fractional machine counts
	RatioModeFractional RatioMode = "fractional"

	// RatioModeWhole scales the plan so every step runs whole machines
	RatioModeWhole RatioMode = "whole"
)

// ParseRatioMode parses a ratio mode name. Empty input defaults to fractional.
func ParseRatioMode(raw string) (RatioMode, error) {
	switch RatioMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RatioModeFractional:
		return RatioModeFractional, nil
	case RatioModeWhole:
		return RatioModeWhole, nil
	default:
		return "", fmt.Errorf("invalid ratio mode %q: must be %q or %q", raw, RatioModeFractional, RatioModeWhole)
	}
}

// Target is one requested output of a plan.
//
// RecipeID forces the producing recipe for ItemID; it is discarded when the
// recipe does not actually output the item. Rates that are not finite and
// positive contribute no demand.
type Target struct {
	ItemID     string
	RecipeID   string
	RatePerMin float64
}

// Settings are the plan-wide inputs
type Settings struct {
	RatioMode RatioMode

	// MaxDepth stops charging ingredients below this depth. nil means unlimited.
	MaxDepth *int
}

// ItemThroughput is the derived per-item rate summary
type ItemThroughput struct {
	ItemID       string
	NeededPerMin float64

	// YieldPerMin is nil when the item has no selected recipe or no craft time
	YieldPerMin  *float64
	IsBottleneck bool
}

// RecipeStep is the derived per-recipe sizing
type RecipeStep struct {
	RecipeID     string
	CraftsPerMin float64
	CraftTimeMs  int64 // 0 when unknown

	// MachinesExact and Machines are nil when the craft time is unknown
	MachinesExact *float64
	Machines      *float64
}

// Stats summarizes a plan
type Stats struct {
	TotalTargetOutputPerMin float64
	ScaleFactor             int
}

// Plan is the result of planning a set of targets. Items and Steps are keyed by
// item id and recipe id respectively.
type Plan struct {
	Targets  []Target
	Settings Settings
	Stats    Stats

	// ItemToRecipe maps every decided item to its recipe id ("" for terminal items)
	ItemToRecipe map[string]string

	// RecipeOutputs maps a recipe id to the item ids the plan relies on it for
	RecipeOutputs map[string][]string

	Items map[string]ItemThroughput
	Steps map[string]RecipeStep
}

// ItemIDs returns the planned item ids, sorted
func (p *Plan) ItemIDs() []string {
	return sortedKeys(p.Items)
}

// RecipeIDs returns the planned recipe ids, sorted
func (p *Plan) RecipeIDs() []string {
	return sortedKeys(p.Steps)
}

// Bottlenecks returns the ids of items whose yield falls short, sorted
func (p *Plan) Bottlenecks() []string {
	result := make([]string, 0)
	for _, id := range p.ItemIDs() {
		if p.Items[id].IsBottleneck {
			result = append(result, id)
		}
	}
	return result
}

// RawInputs returns the ids of decided items that have no producing recipe, sorted
func (p *Plan) RawInputs() []string {
	result := make([]string, 0)
	for id, recipeID := range p.ItemToRecipe {
		if recipeID == "" {
			result = append(result, id)
		}
	}
	sort.Strings(result)
	return result
}

// TotalMachines sums the final machine counts over steps with a known craft time
func (p *Plan) TotalMachines() float64 {
	total := 0.0
	for _, step := range p.Steps {
		if step.Machines != nil {
			total += *step.Machines
		}
	}
	return total
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy; the result shares no maps, slices or pointers with p.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}

	out := &Plan{
		Targets:  append([]Target(nil), p.Targets...),
		Settings: Settings{RatioMode: p.Settings.RatioMode, MaxDepth: cloneInt(p.Settings.MaxDepth)},
		Stats:    p.Stats,

		ItemToRecipe:  make(map[string]string, len(p.ItemToRecipe)),
		RecipeOutputs: make(map[string][]string, len(p.RecipeOutputs)),
		Items:         make(map[string]ItemThroughput, len(p.Items)),
		Steps:         make(map[string]RecipeStep, len(p.Steps)),
	}
	for id, recipeID := range p.ItemToRecipe {
		out.ItemToRecipe[id] = recipeID
	}
	for id, outputs := range p.RecipeOutputs {
		out.RecipeOutputs[id] = append([]string(nil), outputs...)
	}
	for id, item := range p.Items {
		item.YieldPerMin = cloneFloat(item.YieldPerMin)
		out.Items[id] = item
	}
	for id, step := range p.Steps {
		step.MachinesExact = cloneFloat(step.MachinesExact)
		step.Machines = cloneFloat(step.Machines)
		out.Steps[id] = step
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
