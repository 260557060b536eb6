package queries

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
)

// ListItemsQuery lists catalog items, optionally filtered
type ListItemsQuery struct {
	Category string
	RawOnly  bool
	Search   string // case-insensitive match on name, id or slug
}

// ListItemsResponse carries the matching items sorted by sort id then name
type ListItemsResponse struct {
	Items      []ItemDTO
	Categories []string
}

// ListItemsHandler handles the ListItems query
type ListItemsHandler struct {
	provider common.CatalogProvider
}

// NewListItemsHandler creates a new ListItemsHandler
func NewListItemsHandler(provider common.CatalogProvider) *ListItemsHandler {
	return &ListItemsHandler{
		provider: provider,
	}
}

// Handle executes the ListItems query
func (h *ListItemsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListItemsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListItemsQuery")
	}

	c, err := h.provider.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	items := c.Items()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortID != items[j].SortID {
			return items[i].SortID < items[j].SortID
		}
		return items[i].DisplayName() < items[j].DisplayName()
	})

	result := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		if query.Category != "" && !strings.EqualFold(item.Category, query.Category) {
			continue
		}
		if query.RawOnly && !c.IsTerminal(item.ID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.DisplayName()), search) &&
			!strings.Contains(strings.ToLower(item.ID), search) &&
			!strings.Contains(strings.ToLower(item.Slug), search) {
			continue
		}
		result = append(result, ToItemDTO(item))
	}

	return &ListItemsResponse{
		Items:      result,
		Categories: c.Categories(),
	}, nil
}
