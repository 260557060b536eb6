package api

// Wire views shared by the REST server, the REST client and the gRPC
// service. Field names are the JSON contract of /api/v1.

// ItemView is a catalog item
type ItemView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	IsRawMaterial bool   `json:"isRawMaterial"`
	Category      string `json:"category,omitempty"`
	Rarity        int    `json:"rarity,omitempty"`
}

// ComponentView is one ingredient or output line
type ComponentView struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Count    int    `json:"count"`
}

// RecipeView is a recipe with its resolved lines
type RecipeView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name,omitempty"`
	Type            string          `json:"type"`
	SortID          string          `json:"sortId,omitempty"`
	FacilityName    string          `json:"facilityName,omitempty"`
	CraftTimeMs     int64           `json:"craftTimeMs"`
	Ingredients     []ComponentView `json:"ingredients"`
	Outputs         []ComponentView `json:"outputs"`
	UsesRawMaterial bool            `json:"usesRawMaterial"`
}

// ItemDetailView is an item with the recipes producing and consuming it
type ItemDetailView struct {
	Item       ItemView     `json:"item"`
	ProducedBy []RecipeView `json:"producedBy"`
	UsedIn     []RecipeView `json:"usedIn"`
}

// ItemListRequest filters the item list
type ItemListRequest struct {
	Category string `json:"category,omitempty"`
	RawOnly  bool   `json:"rawOnly,omitempty"`
	Search   string `json:"search,omitempty"`
}

// ItemListView is a filtered item list
type ItemListView struct {
	Items      []ItemView `json:"items"`
	Categories []string   `json:"categories"`
}

// ChainRequest asks for the production chain of one item
type ChainRequest struct {
	ItemID     string         `json:"itemId"`
	MaxDepth   *int           `json:"maxDepth,omitempty"`
	Selections map[string]int `json:"selections,omitempty"`
	Collapsed  []string       `json:"collapsed,omitempty"`
}

// ChainNodeView is an item or facility node of a chain
type ChainNodeView struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	ItemID            string `json:"itemId,omitempty"`
	ItemName          string `json:"itemName,omitempty"`
	IsRawMaterial     bool   `json:"isRawMaterial,omitempty"`
	Quantity          int    `json:"quantity,omitempty"`
	Truncated         bool   `json:"truncated,omitempty"`
	RecipeID          string `json:"recipeId,omitempty"`
	FacilityName      string `json:"facilityName,omitempty"`
	FacilityImageURL  string `json:"facilityImageUrl,omitempty"`
	ProcessingTimeMs  int64  `json:"processingTimeMs,omitempty"`
	Depth             int    `json:"depth"`
	Descendants       int    `json:"descendants"`
	HiddenDescendants int    `json:"hiddenDescendants,omitempty"`
}

// EdgeView is a directed edge between two node ids
type EdgeView struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Highlight bool   `json:"highlight,omitempty"`
}

// ChainView is a built (and possibly collapsed) chain
type ChainView struct {
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	RootNodeID   string          `json:"rootNodeId"`
	Nodes        []ChainNodeView `json:"nodes"`
	Edges        []EdgeView      `json:"edges"`
	TotalNodes   int             `json:"totalNodes"`
	Alternatives map[string]int  `json:"alternatives"`
	RawMaterials []string        `json:"rawMaterials"`
	Depth        int             `json:"depth"`
}

// TargetView is one plan target
type TargetView struct {
	ItemID     string  `json:"itemId"`
	RecipeID   string  `json:"recipeId,omitempty"`
	RatePerMin float64 `json:"ratePerMin"`
}

// PlanRequest is the body of POST /api/v1/plans
type PlanRequest struct {
	Targets   []TargetView `json:"targets"`
	RatioMode string       `json:"ratioMode,omitempty"`
	MaxDepth  *int         `json:"maxDepth,omitempty"`
}

// ThroughputView is the per-item rate summary of a plan
type ThroughputView struct {
	ItemID       string   `json:"itemId"`
	ItemName     string   `json:"itemName"`
	RecipeID     string   `json:"recipeId,omitempty"`
	NeededPerMin float64  `json:"neededPerMin"`
	YieldPerMin  *float64 `json:"yieldPerMin,omitempty"`
	IsBottleneck bool     `json:"isBottleneck"`
}

// StepView is the per-recipe sizing of a plan
type StepView struct {
	RecipeID      string   `json:"recipeId"`
	FacilityName  string   `json:"facilityName,omitempty"`
	CraftsPerMin  float64  `json:"craftsPerMin"`
	CraftTimeMs   int64    `json:"craftTimeMs"`
	MachinesExact *float64 `json:"machinesExact,omitempty"`
	Machines      *float64 `json:"machines,omitempty"`
	Outputs       []string `json:"outputs"`
}

// GraphNodeView is a node of the plan graph
type GraphNodeView struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	ItemID           string   `json:"itemId,omitempty"`
	ItemName         string   `json:"itemName,omitempty"`
	IsRawMaterial    bool     `json:"isRawMaterial,omitempty"`
	NeededPerMin     float64  `json:"neededPerMin,omitempty"`
	YieldPerMin      *float64 `json:"yieldPerMin,omitempty"`
	IsBottleneck     bool     `json:"isBottleneck,omitempty"`
	RecipeID         string   `json:"recipeId,omitempty"`
	FacilityName     string   `json:"facilityName,omitempty"`
	ProcessingTimeMs int64    `json:"processingTimeMs,omitempty"`
	CraftsPerMin     float64  `json:"craftsPerMin,omitempty"`
	Machines         *float64 `json:"machines,omitempty"`
}

// GraphView is the node/edge form of a plan
type GraphView struct {
	Nodes []GraphNodeView `json:"nodes"`
	Edges []EdgeView      `json:"edges"`
}

// PlanView is a computed plan
type PlanView struct {
	PlanID                  string           `json:"planId"`
	CatalogFingerprint      string           `json:"catalogFingerprint"`
	Cached                  bool             `json:"cached"`
	RatioMode               string           `json:"ratioMode"`
	MaxDepth                *int             `json:"maxDepth,omitempty"`
	Targets                 []TargetView     `json:"targets"`
	ScaleFactor             int              `json:"scaleFactor"`
	TotalTargetOutputPerMin float64          `json:"totalTargetOutputPerMin"`
	TotalMachines           float64          `json:"totalMachines"`
	Items                   []ThroughputView `json:"items"`
	Steps                   []StepView       `json:"steps"`
	Bottlenecks             []string         `json:"bottlenecks"`
	RawInputs               []string         `json:"rawInputs"`
	Graph                   GraphView        `json:"graph"`
}

// ImportView reports a catalog import
type ImportView struct {
	Version     string `json:"version"`
	ItemCount   int    `json:"itemCount"`
	RecipeCount int    `json:"recipeCount"`
	Fingerprint string `json:"fingerprint"`
}

// ErrorView is the body of every non-2xx response
type ErrorView struct {
	Error      string `json:"error"`
	Kind       string `json:"kind"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message,omitempty"`
	ItemID     string `json:"itemId,omitempty"`
	RetryAfter string `json:"retryAfter,omitempty"`
}
