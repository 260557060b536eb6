package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

const maxPlanBodyBytes = 1 << 20

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := api.ItemListRequest{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	if raw := query.Get("raw"); raw != "" {
		rawOnly, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, shared.NewValidationError("raw", fmt.Sprintf("not a boolean: %q", raw)))
			return
		}
		req.RawOnly = rawOnly
	}

	view, err := s.service.ListItems(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetItem(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleBuildChain(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	depth, err := api.ParseDepth(query.Get("depth"))
	if err != nil {
		respondError(w, err)
		return
	}
	selections, err := api.ParseSelections(query.Get("select"))
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.service.BuildChain(r.Context(), api.ChainRequest{
		ItemID:     chi.URLParam(r, "itemID"),
		MaxDepth:   depth,
		Selections: selections,
		Collapsed:  api.ParseCollapse(query.Get("collapse")),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleComputePlan(w http.ResponseWriter, r *http.Request) {
	var req api.PlanRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondError(w, shared.NewValidationError("body", err.Error()))
		return
	}

	view, err := s.service.ComputePlan(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
