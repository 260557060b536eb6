package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/planning"
)

const tolerance = 1e-6

func intPtr(v int) *int {
	return &v
}

func recipe(id, sortID string, craftMs int64, output catalog.Output, ingredients ...catalog.Ingredient) catalog.Recipe {
	return catalog.Recipe{
		ID:          id,
		Type:        catalog.RecipeTypeMachine,
		SortID:      sortID,
		Facility:    catalog.Facility{Name: "Assembler", CraftTimeMs: craftMs},
		Ingredients: ingredients,
		Outputs:     []catalog.Output{output},
	}
}

func out(itemID string, count int) catalog.Output {
	return catalog.Output{ItemID: itemID, Count: count}
}

func in(itemID string, count int) catalog.Ingredient {
	return catalog.Ingredient{ItemID: itemID, Count: count}
}

// workedExample: C (raw) -> B (2 C, 60s) -> A (3 B, 30s)
func workedExample() *catalog.Catalog {
	return catalog.NewCatalog(
		[]catalog.Item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C", IsRawMaterial: true}},
		[]catalog.Recipe{
			recipe("r_b", "1", 60000, out("b", 1), in("c", 2)),
			recipe("r_a", "2", 30000, out("a", 1), in("b", 3)),
		},
	)
}

func TestPlanner_WorkedExample(t *testing.T) {
	plan := planning.NewPlanner(workedExample(), planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "a", RecipeID: "r_a", RatePerMin: 2}},
		planning.Settings{RatioMode: planning.RatioModeFractional},
	)

	assert.InDelta(t, 2, plan.Items["a"].NeededPerMin, tolerance)
	assert.InDelta(t, 6, plan.Items["b"].NeededPerMin, tolerance)
	assert.InDelta(t, 12, plan.Items["c"].NeededPerMin, tolerance)

	require.NotNil(t, plan.Steps["r_a"].MachinesExact)
	require.NotNil(t, plan.Steps["r_b"].MachinesExact)
	assert.InDelta(t, 1, *plan.Steps["r_a"].MachinesExact, tolerance)
	assert.InDelta(t, 6, *plan.Steps["r_b"].MachinesExact, tolerance)

	require.NotNil(t, plan.Items["a"].YieldPerMin)
	assert.InDelta(t, 2, *plan.Items["a"].YieldPerMin, tolerance)
	assert.False(t, plan.Items["a"].IsBottleneck)
	assert.False(t, plan.Items["b"].IsBottleneck)
	assert.Nil(t, plan.Items["c"].YieldPerMin)

	assert.Equal(t, map[string]string{"a": "r_a", "b": "r_b", "c": ""}, plan.ItemToRecipe)
	assert.Equal(t, map[string][]string{"r_a": {"a"}, "r_b": {"b"}}, plan.RecipeOutputs)
	assert.Equal(t, planning.Stats{TotalTargetOutputPerMin: 2, ScaleFactor: 1}, plan.Stats)
	assert.Equal(t, []string{"c"}, plan.RawInputs())
	assert.Empty(t, plan.Bottlenecks())
	assert.InDelta(t, 7, plan.TotalMachines(), tolerance)
}

func TestPlanner_WholeModeScalesToIntegerMachines(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}, {ID: "ore", IsRawMaterial: true}},
		[]catalog.Recipe{recipe("r_a", "1", 45000, out("a", 1), in("ore", 1))},
	)

	plan := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "a", RatePerMin: 2}},
		planning.Settings{RatioMode: planning.RatioModeWhole},
	)

	assert.Equal(t, 2, plan.Stats.ScaleFactor)
	require.NotNil(t, plan.Steps["r_a"].Machines)
	assert.Equal(t, 3.0, *plan.Steps["r_a"].Machines)
	assert.InDelta(t, 4, plan.Items["a"].NeededPerMin, tolerance)
	assert.InDelta(t, 4, plan.Items["ore"].NeededPerMin, tolerance)
	assert.False(t, plan.Items["a"].IsBottleneck)
}

func TestPlanner_WholeModeFallsBackToCeiling(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}},
		[]catalog.Recipe{recipe("r_a", "1", 60000, out("a", 1))},
	)

	plan := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "a", RatePerMin: 0.07}},
		planning.Settings{RatioMode: planning.RatioModeWhole},
	)

	assert.Equal(t, 1, plan.Stats.ScaleFactor)
	require.NotNil(t, plan.Steps["r_a"].Machines)
	assert.Equal(t, 1.0, *plan.Steps["r_a"].Machines)
	assert.InDelta(t, 0.07, plan.Items["a"].NeededPerMin, tolerance)
	assert.False(t, plan.Items["a"].IsBottleneck)
}

func TestPlanner_FractionalModeFlagsNothingForExactMachines(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}},
		[]catalog.Recipe{recipe("r_a", "1", 45000, out("a", 1))},
	)

	plan := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "a", RatePerMin: 2}},
		planning.Settings{},
	)

	assert.Equal(t, planning.RatioModeFractional, plan.Settings.RatioMode)
	assert.InDelta(t, 1.5, *plan.Steps["r_a"].Machines, tolerance)
	assert.False(t, plan.Items["a"].IsBottleneck)
}

func TestPlanner_CustomScaleBound(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "a"}},
		[]catalog.Recipe{recipe("r_a", "1", 60000, out("a", 1))},
	)
	targets := []planning.Target{{ItemID: "a", RatePerMin: 0.04}}
	settings := planning.Settings{RatioMode: planning.RatioModeWhole}

	narrow := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(targets, settings)
	assert.Equal(t, 1, narrow.Stats.ScaleFactor)

	wide := planning.NewPlanner(c, planning.PlannerOptions{MaxScaleFactor: 25}).Plan(targets, settings)
	assert.Equal(t, 25, wide.Stats.ScaleFactor)
	assert.Equal(t, 1.0, *wide.Steps["r_a"].Machines)
}

func TestPlanner_EmptyTargets(t *testing.T) {
	plan := planning.NewPlanner(workedExample(), planning.PlannerOptions{}).Plan(nil, planning.Settings{})

	assert.Empty(t, plan.Items)
	assert.Empty(t, plan.Steps)
	assert.Equal(t, 1, plan.Stats.ScaleFactor)
	assert.Zero(t, plan.Stats.TotalTargetOutputPerMin)
}

func TestBuildGraph(t *testing.T) {
	c := workedExample()
	plan := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "a", RatePerMin: 2}},
		planning.Settings{},
	)

	g := planning.BuildGraph(plan, c)

	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"item:a", "item:b", "item:c", "recipe:r_a", "recipe:r_b"}, ids)

	edgeIDs := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		edgeIDs = append(edgeIDs, e.ID)
		assert.False(t, e.Highlight)
	}
	assert.Equal(t, []string{
		"edge:item:b->recipe:r_a",
		"edge:recipe:r_a->item:a",
		"edge:item:c->recipe:r_b",
		"edge:recipe:r_b->item:b",
	}, edgeIDs)

	node, ok := g.Node("item:c")
	require.True(t, ok)
	assert.True(t, node.IsRawMaterial)
	assert.Equal(t, "C", node.ItemName)
}

func TestBuildGraph_HighlightsBottleneckEdges(t *testing.T) {
	// x and y feed each other; the re-entry demand on x cannot be met
	c := catalog.NewCatalog(
		[]catalog.Item{{ID: "x"}, {ID: "y"}},
		[]catalog.Recipe{
			recipe("r_x", "1", 60000, out("x", 1), in("y", 1)),
			recipe("r_y", "2", 60000, out("y", 1), in("x", 1)),
		},
	)
	plan := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "x", RatePerMin: 1}},
		planning.Settings{},
	)

	require.Equal(t, []string{"x"}, plan.Bottlenecks())

	g := planning.BuildGraph(plan, c)
	highlighted := make([]string, 0)
	for _, e := range g.Edges {
		if e.Highlight {
			highlighted = append(highlighted, e.ID)
		}
	}
	assert.ElementsMatch(t, []string{"edge:recipe:r_x->item:x", "edge:item:x->recipe:r_y"}, highlighted)
}

func TestParseRatioMode(t *testing.T) {
	mode, err := planning.ParseRatioMode("WHOLE")
	require.NoError(t, err)
	assert.Equal(t, planning.RatioModeWhole, mode)

	mode, err = planning.ParseRatioMode("")
	require.NoError(t, err)
	assert.Equal(t, planning.RatioModeFractional, mode)

	_, err = planning.ParseRatioMode("integer")
	assert.Error(t, err)
}

func TestPlan_CloneSharesNothing(t *testing.T) {
	c := workedExample()
	plan := planning.NewPlanner(c, planning.PlannerOptions{}).Plan(
		[]planning.Target{{ItemID: "a", RatePerMin: 2}},
		planning.Settings{MaxDepth: intPtr(5)},
	)
	graph := planning.BuildGraph(plan, c)

	planCopy := plan.Clone()
	graphCopy := graph.Clone()
	require.Equal(t, plan, planCopy)
	require.Equal(t, graph, graphCopy)

	*planCopy.Steps["r_b"].Machines = 99
	*planCopy.Settings.MaxDepth = 0
	planCopy.Items["a"] = planning.ItemThroughput{}
	planCopy.RecipeOutputs["r_a"][0] = "x"
	graphCopy.Nodes[0].ItemID = "x"

	assert.InDelta(t, 6, *plan.Steps["r_b"].Machines, tolerance)
	assert.Equal(t, 5, *plan.Settings.MaxDepth)
	assert.InDelta(t, 2, plan.Items["a"].NeededPerMin, tolerance)
	assert.Equal(t, []string{"a"}, plan.RecipeOutputs["r_a"])
	assert.Equal(t, "a", graph.Nodes[0].ItemID)

	assert.Nil(t, (*planning.Plan)(nil).Clone())
	assert.Nil(t, (*planning.Graph)(nil).Clone())
}
