package api

import (
	"context"

	catalogcmd "github.com/andrescamacho/craftchain-go/internal/application/catalog/commands"
	catalogqueries "github.com/andrescamacho/craftchain-go/internal/application/catalog/queries"
	chainqueries "github.com/andrescamacho/craftchain-go/internal/application/chain/queries"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	planqueries "github.com/andrescamacho/craftchain-go/internal/application/planning/queries"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
)

// Service is the planner as seen by transports and the CLI. Unknown items are
// reported as *catalog.ItemNotFoundError and rejected input as
// *shared.ValidationError.
type Service interface {
	ListItems(ctx context.Context, req ItemListRequest) (*ItemListView, error)
	GetItem(ctx context.Context, itemID string) (*ItemDetailView, error)
	BuildChain(ctx context.Context, req ChainRequest) (*ChainView, error)
	ComputePlan(ctx context.Context, req PlanRequest) (*PlanView, error)
}

// LocalService answers requests in-process through the mediator
type LocalService struct {
	mediator mediator.Mediator
}

// NewLocalService creates a LocalService
func NewLocalService(m mediator.Mediator) *LocalService {
	return &LocalService{mediator: m}
}

// ListItems returns the catalog items that pass the request filters.
func (s *LocalService) ListItems(ctx context.Context, req ItemListRequest) (*ItemListView, error) {
	list, err := mediator.SendTyped[*catalogqueries.ListItemsResponse](ctx, s.mediator, &catalogqueries.ListItemsQuery{
		Category: req.Category,
		RawOnly:  req.RawOnly,
		Search:   req.Search,
	})
	if err != nil {
		return nil, err
	}
	return FromListItems(list), nil
}

// GetItem returns an item with the recipes producing and consuming it.
func (s *LocalService) GetItem(ctx context.Context, itemID string) (*ItemDetailView, error) {
	item, err := mediator.SendTyped[*catalogqueries.GetItemResponse](ctx, s.mediator, &catalogqueries.GetItemQuery{ItemID: itemID})
	if err != nil {
		return nil, err
	}
	if item.NotFound {
		return nil, &catalog.ItemNotFoundError{ItemID: itemID}
	}
	return FromGetItem(item), nil
}

// BuildChain expands the production chain of req.ItemID and hides collapsed subtrees.
func (s *LocalService) BuildChain(ctx context.Context, req ChainRequest) (*ChainView, error) {
	collapsed := make(map[string]bool, len(req.Collapsed))
	for _, id := range req.Collapsed {
		collapsed[id] = true
	}

	result, err := mediator.SendTyped[*chainqueries.BuildChainResponse](ctx, s.mediator, &chainqueries.BuildChainQuery{
		ItemID:           req.ItemID,
		RecipeSelections: req.Selections,
		MaxDepth:         req.MaxDepth,
		CollapsedNodeIDs: collapsed,
	})
	if err != nil {
		return nil, err
	}
	if result.NotFound {
		return nil, &catalog.ItemNotFoundError{ItemID: req.ItemID}
	}
	return FromChain(result), nil
}

// ComputePlan sizes the recipes and machines needed for the requested targets.
func (s *LocalService) ComputePlan(ctx context.Context, req PlanRequest) (*PlanView, error) {
	result, err := mediator.SendTyped[*planqueries.ComputePlanResponse](ctx, s.mediator, ToPlanQuery(req))
	if err != nil {
		return nil, err
	}
	return FromPlan(result), nil
}

// ImportCatalog replaces the stored catalog with a dataset file. It is only
// offered in-process.
func (s *LocalService) ImportCatalog(ctx context.Context, path string) (*ImportView, error) {
	result, err := mediator.SendTyped[*catalogcmd.ImportCatalogResponse](ctx, s.mediator, &catalogcmd.ImportCatalogCommand{Path: path})
	if err != nil {
		return nil, err
	}
	return &ImportView{
		Version:     result.Version,
		ItemCount:   result.ItemCount,
		RecipeCount: result.RecipeCount,
		Fingerprint: result.Fingerprint,
	}, nil
}
