package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/craftchain-go/internal/domain/planning"
)

const rateTolerance = 1e-6

type planningContext struct {
	world          *CatalogWorld
	maxScaleFactor int
	plan           *planning.Plan
}

func (ctx *planningContext) reset() {
	ctx.maxScaleFactor = 0
	ctx.plan = nil
}

func (ctx *planningContext) compute(targets []planning.Target, mode string) error {
	ratioMode, err := planning.ParseRatioMode(mode)
	if err != nil {
		return err
	}
	planner := planning.NewPlanner(ctx.world.Catalog(), planning.PlannerOptions{MaxScaleFactor: ctx.maxScaleFactor})
	ctx.plan = planner.Plan(targets, planning.Settings{RatioMode: ratioMode, MaxDepth: ctx.world.MaxDepth()})
	return nil
}

// ============================================================================
// Setup Steps
// ============================================================================

func (ctx *planningContext) theMaxScaleFactorIs(factor int) error {
	ctx.maxScaleFactor = factor
	return nil
}

// ============================================================================
// Action Steps
// ============================================================================

func (ctx *planningContext) iPlanPerMinuteOf(rate float64, itemID, mode string) error {
	return ctx.compute([]planning.Target{{ItemID: itemID, RatePerMin: rate}}, mode)
}

func (ctx *planningContext) iPlanTheTargetsIn(mode string, table *godog.Table) error {
	targets := make([]planning.Target, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		rate, err := strconv.ParseFloat(cellValue(table, row, "rate", ""), 64)
		if err != nil {
			return fmt.Errorf("bad rate: %w", err)
		}
		targets = append(targets, planning.Target{
			ItemID:     cellValue(table, row, "item", ""),
			RecipeID:   cellValue(table, row, "recipe", ""),
			RatePerMin: rate,
		})
	}
	return ctx.compute(targets, mode)
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (ctx *planningContext) itemIsNeededAt(itemID string, expected float64) error {
	item, ok := ctx.plan.Items[itemID]
	if !ok {
		return fmt.Errorf("item %s is not in the plan", itemID)
	}
	if math.Abs(item.NeededPerMin-expected) > rateTolerance {
		return fmt.Errorf("expected %s needed at %g/min, got %g", itemID, expected, item.NeededPerMin)
	}
	return nil
}

func (ctx *planningContext) itemIsNotInThePlan(itemID string) error {
	if _, ok := ctx.plan.Items[itemID]; ok {
		return fmt.Errorf("expected %s to be absent from the plan", itemID)
	}
	return nil
}

func (ctx *planningContext) recipeRunsMachines(recipeID string, expected float64) error {
	step, ok := ctx.plan.Steps[recipeID]
	if !ok {
		return fmt.Errorf("recipe %s is not charged", recipeID)
	}
	if step.Machines == nil {
		return fmt.Errorf("recipe %s has no machine count", recipeID)
	}
	if math.Abs(*step.Machines-expected) > rateTolerance {
		return fmt.Errorf("expected %s to run %g machines, got %g", recipeID, expected, *step.Machines)
	}
	return nil
}

func (ctx *planningContext) recipeIsNotCharged(recipeID string) error {
	if _, ok := ctx.plan.Steps[recipeID]; ok {
		return fmt.Errorf("expected recipe %s not to be charged", recipeID)
	}
	return nil
}

func (ctx *planningContext) thePlanUsesMachinesInTotal(expected float64) error {
	if total := ctx.plan.TotalMachines(); math.Abs(total-expected) > rateTolerance {
		return fmt.Errorf("expected %g machines in total, got %g", expected, total)
	}
	return nil
}

func (ctx *planningContext) theScaleFactorIs(expected int) error {
	if ctx.plan.Stats.ScaleFactor != expected {
		return fmt.Errorf("expected scale factor %d, got %d", expected, ctx.plan.Stats.ScaleFactor)
	}
	return nil
}

func (ctx *planningContext) theRawInputsAre(raw string) error {
	return equalIDs("raw inputs", splitIDs(raw), ctx.plan.RawInputs())
}

func (ctx *planningContext) theBottlenecksAre(raw string) error {
	return equalIDs("bottlenecks", splitIDs(raw), ctx.plan.Bottlenecks())
}

func (ctx *planningContext) thereAreNoBottlenecks() error {
	return equalIDs("bottlenecks", nil, ctx.plan.Bottlenecks())
}

func equalIDs(what string, expected, actual []string) error {
	if strings.Join(expected, ",") != strings.Join(actual, ",") {
		return fmt.Errorf("expected %s [%s], got [%s]", what, strings.Join(expected, ","), strings.Join(actual, ","))
	}
	return nil
}

// ============================================================================
// Registration
// ============================================================================

// InitializePlanningScenario registers plan computation steps
func InitializePlanningScenario(sc *godog.ScenarioContext, world *CatalogWorld) {
	ctx := &planningContext{world: world}
	sc.Before(func(bddCtx context.Context, _ *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return bddCtx, nil
	})

	sc.Step(`^the max scale factor is (\d+)$`, ctx.theMaxScaleFactorIs)

	sc.Step(`^I plan (\d+(?:\.\d+)?) per minute of "([^"]*)" in (fractional|whole) mode$`, ctx.iPlanPerMinuteOf)
	sc.Step(`^I plan the targets in (fractional|whole) mode:$`, ctx.iPlanTheTargetsIn)

	sc.Step(`^item "([^"]*)" is needed at (\d+(?:\.\d+)?) per minute$`, ctx.itemIsNeededAt)
	sc.Step(`^item "([^"]*)" is not in the plan$`, ctx.itemIsNotInThePlan)
	sc.Step(`^recipe "([^"]*)" runs (\d+(?:\.\d+)?) machines?$`, ctx.recipeRunsMachines)
	sc.Step(`^recipe "([^"]*)" is not charged$`, ctx.recipeIsNotCharged)
	sc.Step(`^the plan uses (\d+(?:\.\d+)?) machines in total$`, ctx.thePlanUsesMachinesInTotal)
	sc.Step(`^the scale factor is (\d+)$`, ctx.theScaleFactorIs)
	sc.Step(`^the raw inputs are "([^"]*)"$`, ctx.theRawInputsAre)
	sc.Step(`^the bottlenecks are "([^"]*)"$`, ctx.theBottlenecksAre)
	sc.Step(`^there are no bottlenecks$`, ctx.thereAreNoBottlenecks)
}
