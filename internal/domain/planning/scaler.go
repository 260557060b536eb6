package planning

import (
	"math"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/pkg/utils"
)

const (
	msPerMinute = 60000

	// nearIntegerEpsilon decides when a scaled machine count counts as whole
	nearIntegerEpsilon = 1e-6

	// bottleneckTolerance is the shortfall ignored when comparing yield to need
	bottleneckTolerance = 1e-9

	// DefaultMaxScaleFactor bounds the whole-number scale search
	DefaultMaxScaleFactor = 20
)

// ScaleResult is the sized form of a Demand
type ScaleResult struct {
	Steps       map[string]RecipeStep
	Items       map[string]ItemThroughput
	ScaleFactor int
}

// Scaler converts crafts/min into machine counts and derives yields.
//
// In whole mode it searches factors 1..MaxScaleFactor for one that makes every
// exact machine count an integer. When one is found all rates are multiplied by
// it and machine counts are rounded to nearest; otherwise rates stay unscaled and
// each machine count is rounded up on its own so no step is under-provisioned.
type Scaler struct {
	catalog        *catalog.Catalog
	maxScaleFactor int
}

// NewScaler creates a scaler. A non-positive maxScaleFactor uses DefaultMaxScaleFactor.
func NewScaler(c *catalog.Catalog, maxScaleFactor int) *Scaler {
	if maxScaleFactor <= 0 {
		maxScaleFactor = DefaultMaxScaleFactor
	}
	return &Scaler{
		catalog:        c,
		maxScaleFactor: maxScaleFactor,
	}
}

// MaxScaleFactor returns the upper bound of the whole-number search
func (s *Scaler) MaxScaleFactor() int {
	return s.maxScaleFactor
}

// Scale sizes every recipe in demand for the given ratio mode
func (s *Scaler) Scale(demand *Demand, mode RatioMode) *ScaleResult {
	craftTimes := make(map[string]int64, len(demand.CraftsPerMin))
	for recipeID := range demand.CraftsPerMin {
		if recipe, ok := s.catalog.Recipe(recipeID); ok {
			craftTimes[recipeID] = recipe.ProcessingTimeMs()
		}
	}

	factor, found := 1, false
	if mode == RatioModeWhole {
		factor, found = s.searchFactor(demand.CraftsPerMin, craftTimes)
	}
	scaled := mode == RatioModeWhole && found

	steps := make(map[string]RecipeStep, len(demand.CraftsPerMin))
	for recipeID, baseCrafts := range demand.CraftsPerMin {
		crafts := baseCrafts * float64(factor)
		step := RecipeStep{
			RecipeID:     recipeID,
			CraftsPerMin: crafts,
			CraftTimeMs:  craftTimes[recipeID],
		}

		if step.CraftTimeMs > 0 {
			exact := machinesFor(crafts, step.CraftTimeMs)
			var machines float64
			switch {
			case mode != RatioModeWhole:
				machines = exact
			case scaled:
				machines = math.Max(0, math.Round(exact))
			default:
				machines = math.Max(0, math.Ceil(exact))
			}
			step.MachinesExact = &exact
			step.Machines = &machines
		}

		steps[recipeID] = step
	}

	items := make(map[string]ItemThroughput, len(demand.NeededPerMin))
	for itemID, baseNeeded := range demand.NeededPerMin {
		needed := baseNeeded * float64(factor)
		throughput := ItemThroughput{
			ItemID:       itemID,
			NeededPerMin: needed,
		}

		if yield, ok := s.yieldFor(itemID, demand.ItemToRecipe[itemID], steps); ok {
			throughput.YieldPerMin = &yield
			throughput.IsBottleneck = yield+bottleneckTolerance < needed
		}

		items[itemID] = throughput
	}

	return &ScaleResult{
		Steps:       steps,
		Items:       items,
		ScaleFactor: factor,
	}
}

// searchFactor returns the smallest factor that makes every known machine count
// whole, or (1, false) when the bound is exhausted.
func (s *Scaler) searchFactor(crafts map[string]float64, craftTimes map[string]int64) (int, bool) {
	exactCounts := make([]float64, 0, len(crafts))
	for recipeID, rate := range crafts {
		if ms := craftTimes[recipeID]; ms > 0 {
			exactCounts = append(exactCounts, machinesFor(rate, ms))
		}
	}

	for candidate := 1; candidate <= s.maxScaleFactor; candidate++ {
		if allWhole(exactCounts, float64(candidate)) {
			return candidate, true
		}
	}
	return 1, false
}

func (s *Scaler) yieldFor(itemID, recipeID string, steps map[string]RecipeStep) (float64, bool) {
	if recipeID == "" {
		return 0, false
	}
	recipe, ok := s.catalog.Recipe(recipeID)
	if !ok {
		return 0, false
	}
	step, ok := steps[recipeID]
	if !ok || step.Machines == nil || step.CraftTimeMs <= 0 {
		return 0, false
	}
	outputCount := recipe.OutputCount(itemID)
	if outputCount <= 0 {
		return 0, false
	}

	craftsProduced := *step.Machines * msPerMinute / float64(step.CraftTimeMs)
	return craftsProduced * float64(outputCount), true
}

func machinesFor(craftsPerMin float64, craftTimeMs int64) float64 {
	return craftsPerMin * float64(craftTimeMs) / msPerMinute
}

func allWhole(counts []float64, factor float64) bool {
	for _, m := range counts {
		if !utils.IsNearInteger(m*factor, nearIntegerEpsilon) {
			return false
		}
	}
	return true
}
