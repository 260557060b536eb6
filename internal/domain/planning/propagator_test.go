package planning_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/planning"
)

func TestPropagate_AccumulatesIndependentTargets(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "p"}, {ID: "q"}, {ID: "x", IsRawMaterial: true}},
		[]catalog.Recipe{
			recipe("r_p", "1", 1000, out("p", 1), in("x", 1)),
			recipe("r_q", "2", 1000, out("q", 1), in("x", 1)),
		},
	)

	demand := planning.NewPropagator(c).Propagate([]planning.Target{
		{ItemID: "p", RatePerMin: 1.25},
		{ItemID: "q", RatePerMin: 2.5},
	}, nil)

	assert.InDelta(t, 3.75, demand.NeededPerMin["x"], tolerance)
}

func TestPropagate_SameItemTwiceChargesOnlyTheIncrease(t *testing.T) {
	demand := planning.NewPropagator(workedExample()).Propagate([]planning.Target{
		{ItemID: "a", RatePerMin: 1},
		{ItemID: "a", RatePerMin: 1},
	}, nil)

	assert.InDelta(t, 2, demand.NeededPerMin["a"], tolerance)
	assert.InDelta(t, 6, demand.NeededPerMin["b"], tolerance)
	assert.InDelta(t, 12, demand.NeededPerMin["c"], tolerance)
	assert.InDelta(t, 6, demand.CraftsPerMin["r_b"], tolerance)
}

func TestPropagate_MultiOutputRecipeIsNotDoubleCharged(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}, {ID: "b"}, {ID: "ore", IsRawMaterial: true}},
		[]catalog.Recipe{{
			ID:          "r_ab",
			SortID:      "1",
			Facility:    catalog.Facility{CraftTimeMs: 60000},
			Ingredients: []catalog.Ingredient{in("ore", 1)},
			Outputs:     []catalog.Output{out("a", 1), out("b", 2)},
		}},
	)

	demand := planning.NewPropagator(c).Propagate([]planning.Target{
		{ItemID: "a", RatePerMin: 1},
		{ItemID: "b", RatePerMin: 4},
	}, nil)

	assert.InDelta(t, 2, demand.CraftsPerMin["r_ab"], tolerance)
	assert.InDelta(t, 2, demand.NeededPerMin["ore"], tolerance)
}

func TestPropagate_IgnoresInvalidRates(t *testing.T) {
	demand := planning.NewPropagator(workedExample()).Propagate([]planning.Target{
		{ItemID: "a", RatePerMin: 0},
		{ItemID: "a", RatePerMin: -3},
		{ItemID: "a", RatePerMin: math.NaN()},
		{ItemID: "a", RatePerMin: math.Inf(1)},
		{ItemID: "", RatePerMin: 5},
	}, nil)

	assert.Empty(t, demand.NeededPerMin)
	assert.Empty(t, demand.CraftsPerMin)
}

func TestPropagate_DepthLimitRecordsNeedWithoutCharging(t *testing.T) {
	demand := planning.NewPropagator(workedExample()).Propagate(
		[]planning.Target{{ItemID: "a", RatePerMin: 2}}, intPtr(0))

	assert.InDelta(t, 6, demand.NeededPerMin["b"], tolerance)
	_, charged := demand.CraftsPerMin["r_b"]
	assert.False(t, charged)
	_, decided := demand.ItemToRecipe["b"]
	assert.False(t, decided)
	assert.NotContains(t, demand.NeededPerMin, "c")
}

func TestPropagate_CycleTerminates(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "x"}, {ID: "y"}},
		[]catalog.Recipe{
			recipe("r_x", "1", 1000, out("x", 1), in("y", 1)),
			recipe("r_y", "2", 1000, out("y", 1), in("x", 1)),
		},
	)

	demand := planning.NewPropagator(c).Propagate([]planning.Target{{ItemID: "x", RatePerMin: 1}}, nil)

	assert.InDelta(t, 2, demand.NeededPerMin["x"], tolerance)
	assert.InDelta(t, 1, demand.NeededPerMin["y"], tolerance)
	assert.InDelta(t, 1, demand.CraftsPerMin["r_x"], tolerance)
}

func TestPropagate_InvalidOverrideLeavesItemTerminal(t *testing.T) {
	demand := planning.NewPropagator(workedExample()).Propagate(
		[]planning.Target{{ItemID: "a", RecipeID: "r_b", RatePerMin: 1}}, nil)

	assert.Equal(t, map[string]string{"a": ""}, demand.ItemToRecipe)
	assert.Empty(t, demand.CraftsPerMin)
}

func TestPropagate_UnknownTargetIsTerminal(t *testing.T) {
	demand := planning.NewPropagator(workedExample()).Propagate(
		[]planning.Target{{ItemID: "ghost", RatePerMin: 1}}, nil)

	assert.Equal(t, map[string]string{"ghost": ""}, demand.ItemToRecipe)
	assert.InDelta(t, 1, demand.NeededPerMin["ghost"], tolerance)
}

func TestPropagate_ItemsWithoutProducersAreTerminal(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}, {ID: "dust"}},
		[]catalog.Recipe{recipe("r_a", "1", 1000, out("a", 1), in("dust", 4))},
	)

	demand := planning.NewPropagator(c).Propagate([]planning.Target{{ItemID: "a", RatePerMin: 1}}, nil)

	assert.Equal(t, "", demand.ItemToRecipe["dust"])
	assert.InDelta(t, 4, demand.NeededPerMin["dust"], tolerance)
}

func TestSelectRecipe(t *testing.T) {
	manual := recipe("r_hand", "0", 0, out("a", 1))
	manual.Type = catalog.RecipeTypeManual
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}},
		[]catalog.Recipe{
			recipe("r_unsorted", "", 1000, out("a", 1)),
			recipe("r_late", "20", 1000, out("a", 1)),
			recipe("r_early", "3", 1000, out("a", 1)),
			manual,
		},
	)
	p := planning.NewPropagator(c)

	chosen, ok := p.SelectRecipe("a", nil)
	require.True(t, ok)
	assert.Equal(t, "r_early", chosen.ID)

	forced, ok := p.SelectRecipe("a", map[string]string{"a": "r_hand"})
	require.True(t, ok)
	assert.Equal(t, "r_hand", forced.ID)

	_, ok = p.SelectRecipe("a", map[string]string{"a": "missing"})
	assert.False(t, ok)

	custom := planning.NewPropagatorWithSelector(c, func(_ string, candidates []*catalog.Recipe) *catalog.Recipe {
		return candidates[len(candidates)-1]
	})
	chosen, ok = custom.SelectRecipe("a", nil)
	require.True(t, ok)
	assert.Equal(t, "r_early", chosen.ID)
}

func TestLowestSortID(t *testing.T) {
	first := recipe("first", "abc", 0, out("a", 1))
	second := recipe("second", "7", 0, out("a", 1))
	third := recipe("third", "7", 0, out("a", 1))

	assert.Equal(t, "second", planning.LowestSortID("a", []*catalog.Recipe{&first, &second, &third}).ID)
	assert.Equal(t, "first", planning.LowestSortID("a", []*catalog.Recipe{&first}).ID)
	assert.Nil(t, planning.LowestSortID("a", nil))
}
