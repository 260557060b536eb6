package setup

import (
	catalogCommands "github.com/andrescamacho/craftchain-go/internal/application/catalog/commands"
	catalogQueries "github.com/andrescamacho/craftchain-go/internal/application/catalog/queries"
	chainQueries "github.com/andrescamacho/craftchain-go/internal/application/chain/queries"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	planningQueries "github.com/andrescamacho/craftchain-go/internal/application/planning/queries"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/chain"
)

// HandlerRegistry holds the dependencies needed to build every handler
type HandlerRegistry struct {
	provider common.CatalogProvider
	ranker   chain.RecipeRanker
	planOpts planningQueries.ComputePlanOptions

	// Import dependencies; import is not registered unless both are set
	reader common.DatasetReader
	repo   catalog.Repository
}

// NewHandlerRegistry creates a registry over a catalog provider
func NewHandlerRegistry(provider common.CatalogProvider, planOpts planningQueries.ComputePlanOptions) *HandlerRegistry {
	return &HandlerRegistry{
		provider: provider,
		planOpts: planOpts,
	}
}

// WithRanker sets the recipe ranking used for chain expansion
func (r *HandlerRegistry) WithRanker(ranker chain.RecipeRanker) *HandlerRegistry {
	r.ranker = ranker
	return r
}

// WithImport enables the ImportCatalog command
func (r *HandlerRegistry) WithImport(reader common.DatasetReader, repo catalog.Repository) *HandlerRegistry {
	r.reader = reader
	r.repo = repo
	return r
}

// RegisterCatalogHandlers registers:
//   - GetItemQuery → GetItemHandler
//   - ListItemsQuery → ListItemsHandler
//   - ImportCatalogCommand → ImportCatalogHandler (when import is enabled)
func (r *HandlerRegistry) RegisterCatalogHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*catalogQueries.GetItemQuery](m, catalogQueries.NewGetItemHandler(r.provider)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*catalogQueries.ListItemsQuery](m, catalogQueries.NewListItemsHandler(r.provider)); err != nil {
		return err
	}

	if r.reader == nil || r.repo == nil {
		return nil
	}
	importHandler := catalogCommands.NewImportCatalogHandler(r.reader, r.repo, r.provider)
	return mediator.RegisterHandler[*catalogCommands.ImportCatalogCommand](m, importHandler)
}

// RegisterChainHandlers registers BuildChainQuery → BuildChainHandler
func (r *HandlerRegistry) RegisterChainHandlers(m mediator.Mediator) error {
	return mediator.RegisterHandler[*chainQueries.BuildChainQuery](m, chainQueries.NewBuildChainHandler(r.provider, r.ranker))
}

// RegisterPlanningHandlers registers ComputePlanQuery → ComputePlanHandler
func (r *HandlerRegistry) RegisterPlanningHandlers(m mediator.Mediator) error {
	return mediator.RegisterHandler[*planningQueries.ComputePlanQuery](m, planningQueries.NewComputePlanHandler(r.provider, r.planOpts))
}

// CreateConfiguredMediator creates a mediator with the given middleware (outermost
// first) and every handler registered.
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterCatalogHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterChainHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterPlanningHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
