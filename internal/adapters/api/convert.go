package api

import (
	catalogqueries "github.com/andrescamacho/craftchain-go/internal/application/catalog/queries"
	chainqueries "github.com/andrescamacho/craftchain-go/internal/application/chain/queries"
	planqueries "github.com/andrescamacho/craftchain-go/internal/application/planning/queries"
	"github.com/andrescamacho/craftchain-go/internal/domain/chain"
	"github.com/andrescamacho/craftchain-go/internal/domain/planning"
)

func toItemView(dto catalogqueries.ItemDTO) ItemView {
	return ItemView{
		ID:            dto.ID,
		Name:          dto.Name,
		Slug:          dto.Slug,
		ImageURL:      dto.ImageURL,
		IsRawMaterial: dto.IsRawMaterial,
		Category:      dto.Category,
		Rarity:        dto.Rarity,
	}
}

func toComponentViews(lines []catalogqueries.ComponentDTO) []ComponentView {
	views := make([]ComponentView, 0, len(lines))
	for _, l := range lines {
		views = append(views, ComponentView{ItemID: l.ItemID, ItemName: l.ItemName, Count: l.Count})
	}
	return views
}

func toRecipeViews(dtos []catalogqueries.RecipeDTO) []RecipeView {
	views := make([]RecipeView, 0, len(dtos))
	for _, dto := range dtos {
		views = append(views, RecipeView{
			ID:              dto.ID,
			Name:            dto.Name,
			Type:            dto.Type,
			SortID:          dto.SortID,
			FacilityName:    dto.FacilityName,
			CraftTimeMs:     dto.CraftTimeMs,
			Ingredients:     toComponentViews(dto.Ingredients),
			Outputs:         toComponentViews(dto.Outputs),
			UsesRawMaterial: dto.UsesRawMaterial,
		})
	}
	return views
}

// FromGetItem converts a found item lookup
func FromGetItem(resp *catalogqueries.GetItemResponse) *ItemDetailView {
	return &ItemDetailView{
		Item:       toItemView(resp.Item),
		ProducedBy: toRecipeViews(resp.ProducedBy),
		UsedIn:     toRecipeViews(resp.UsedIn),
	}
}

// FromListItems converts an item listing
func FromListItems(resp *catalogqueries.ListItemsResponse) *ItemListView {
	view := &ItemListView{
		Items:      make([]ItemView, 0, len(resp.Items)),
		Categories: append([]string{}, resp.Categories...),
	}
	for _, dto := range resp.Items {
		view.Items = append(view.Items, toItemView(dto))
	}
	return view
}

// FromChain converts a found chain
func FromChain(resp *chainqueries.BuildChainResponse) *ChainView {
	view := &ChainView{
		ItemID:       resp.ItemID,
		ItemName:     resp.ItemName,
		RootNodeID:   resp.RootNodeID,
		Nodes:        make([]ChainNodeView, 0, len(resp.Nodes)),
		Edges:        make([]EdgeView, 0, len(resp.Edges)),
		TotalNodes:   resp.TotalNodes,
		Alternatives: resp.Alternatives,
		RawMaterials: append([]string{}, resp.RawMaterials...),
		Depth:        resp.Depth,
	}
	if view.Alternatives == nil {
		view.Alternatives = map[string]int{}
	}
	for _, n := range resp.Nodes {
		view.Nodes = append(view.Nodes, toChainNodeView(n))
	}
	for _, e := range resp.Edges {
		view.Edges = append(view.Edges, EdgeView{ID: e.ID, Source: e.Source, Target: e.Target})
	}
	return view
}

func toChainNodeView(n chain.Node) ChainNodeView {
	return ChainNodeView{
		ID:                n.ID,
		Type:              string(n.Type),
		ItemID:            n.ItemID,
		ItemName:          n.ItemName,
		IsRawMaterial:     n.IsRawMaterial,
		Quantity:          n.Quantity,
		Truncated:         n.Truncated,
		RecipeID:          n.RecipeID,
		FacilityName:      n.FacilityName,
		FacilityImageURL:  n.FacilityImageURL,
		ProcessingTimeMs:  n.ProcessingTimeMs,
		Depth:             n.Depth,
		Descendants:       n.Descendants,
		HiddenDescendants: n.HiddenDescendants,
	}
}

// ToPlanQuery converts a plan request body
func ToPlanQuery(req PlanRequest) *planqueries.ComputePlanQuery {
	targets := make([]planning.Target, 0, len(req.Targets))
	for _, t := range req.Targets {
		targets = append(targets, planning.Target{ItemID: t.ItemID, RecipeID: t.RecipeID, RatePerMin: t.RatePerMin})
	}
	return &planqueries.ComputePlanQuery{
		Targets:   targets,
		RatioMode: req.RatioMode,
		MaxDepth:  req.MaxDepth,
	}
}

// FromPlan converts a computed plan. Items and steps are listed in id order.
func FromPlan(resp *planqueries.ComputePlanResponse) *PlanView {
	plan := resp.Plan
	view := &PlanView{
		PlanID:                  resp.PlanID,
		CatalogFingerprint:      resp.CatalogFingerprint,
		Cached:                  resp.Cached,
		RatioMode:               string(plan.Settings.RatioMode),
		MaxDepth:                plan.Settings.MaxDepth,
		Targets:                 make([]TargetView, 0, len(plan.Targets)),
		ScaleFactor:             plan.Stats.ScaleFactor,
		TotalTargetOutputPerMin: plan.Stats.TotalTargetOutputPerMin,
		TotalMachines:           plan.TotalMachines(),
		Items:                   make([]ThroughputView, 0, len(plan.Items)),
		Steps:                   make([]StepView, 0, len(plan.Steps)),
		Bottlenecks:             plan.Bottlenecks(),
		RawInputs:               plan.RawInputs(),
		Graph:                   toGraphView(resp.Graph),
	}

	for _, t := range plan.Targets {
		view.Targets = append(view.Targets, TargetView{ItemID: t.ItemID, RecipeID: t.RecipeID, RatePerMin: t.RatePerMin})
	}

	names := itemNames(resp.Graph)
	for _, id := range plan.ItemIDs() {
		item := plan.Items[id]
		name := names[id]
		if name == "" {
			name = id
		}
		view.Items = append(view.Items, ThroughputView{
			ItemID:       id,
			ItemName:     name,
			RecipeID:     plan.ItemToRecipe[id],
			NeededPerMin: item.NeededPerMin,
			YieldPerMin:  item.YieldPerMin,
			IsBottleneck: item.IsBottleneck,
		})
	}

	facilities := facilityNames(resp.Graph)
	for _, id := range plan.RecipeIDs() {
		step := plan.Steps[id]
		view.Steps = append(view.Steps, StepView{
			RecipeID:      id,
			FacilityName:  facilities[id],
			CraftsPerMin:  step.CraftsPerMin,
			CraftTimeMs:   step.CraftTimeMs,
			MachinesExact: step.MachinesExact,
			Machines:      step.Machines,
			Outputs:       append([]string{}, plan.RecipeOutputs[id]...),
		})
	}

	return view
}

func toGraphView(g *planning.Graph) GraphView {
	view := GraphView{Nodes: []GraphNodeView{}, Edges: []EdgeView{}}
	if g == nil {
		return view
	}
	for _, n := range g.Nodes {
		view.Nodes = append(view.Nodes, GraphNodeView{
			ID:               n.ID,
			Type:             string(n.Type),
			ItemID:           n.ItemID,
			ItemName:         n.ItemName,
			IsRawMaterial:    n.IsRawMaterial,
			NeededPerMin:     n.NeededPerMin,
			YieldPerMin:      n.YieldPerMin,
			IsBottleneck:     n.IsBottleneck,
			RecipeID:         n.RecipeID,
			FacilityName:     n.FacilityName,
			ProcessingTimeMs: n.ProcessingTimeMs,
			CraftsPerMin:     n.CraftsPerMin,
			Machines:         n.Machines,
		})
	}
	for _, e := range g.Edges {
		view.Edges = append(view.Edges, EdgeView{ID: e.ID, Source: e.Source, Target: e.Target, Highlight: e.Highlight})
	}
	return view
}

func itemNames(g *planning.Graph) map[string]string {
	names := make(map[string]string)
	if g == nil {
		return names
	}
	for _, n := range g.Nodes {
		if n.Type == planning.GraphNodeItem {
			names[n.ItemID] = n.ItemName
		}
	}
	return names
}

func facilityNames(g *planning.Graph) map[string]string {
	names := make(map[string]string)
	if g == nil {
		return names
	}
	for _, n := range g.Nodes {
		if n.Type == planning.GraphNodeRecipe {
			names[n.RecipeID] = n.FacilityName
		}
	}
	return names
}
