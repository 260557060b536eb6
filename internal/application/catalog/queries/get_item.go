package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
)

// GetItemQuery looks up one item with the recipes around it
type GetItemQuery struct {
	ItemID string
}

// GetItemResponse carries the item detail. NotFound is set instead of an error
// when the item id is unknown.
type GetItemResponse struct {
	Item       ItemDTO
	ProducedBy []RecipeDTO
	UsedIn     []RecipeDTO
	NotFound   bool
}

// GetItemHandler handles the GetItem query
type GetItemHandler struct {
	provider common.CatalogProvider
}

// NewGetItemHandler creates a new GetItemHandler
func NewGetItemHandler(provider common.CatalogProvider) *GetItemHandler {
	return &GetItemHandler{
		provider: provider,
	}
}

// Handle executes the GetItem query
func (h *GetItemHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetItemQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetItemQuery")
	}

	c, err := h.provider.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	item, found := c.Item(query.ItemID)
	if !found {
		return &GetItemResponse{
			Item:     ItemDTO{ID: query.ItemID, Name: query.ItemID},
			NotFound: true,
		}, nil
	}

	return &GetItemResponse{
		Item:       ToItemDTO(item),
		ProducedBy: toRecipeDTOs(c, c.RecipesProducing(item.ID)),
		UsedIn:     toRecipeDTOs(c, c.RecipesUsing(item.ID)),
	}, nil
}
