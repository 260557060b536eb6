package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	"github.com/andrescamacho/craftchain-go/internal/domain/planning"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
	"github.com/andrescamacho/craftchain-go/pkg/utils"
)

// ComputePlanQuery computes a production plan for a set of targets
type ComputePlanQuery struct {
	Targets   []planning.Target
	RatioMode string // "fractional" (default) or "whole"

	// MaxDepth limits propagation; nil falls back to the handler default
	MaxDepth *int
}

// ComputePlanResponse carries the plan and its graph form
type ComputePlanResponse struct {
	PlanID             string
	Plan               *planning.Plan
	Graph              *planning.Graph
	CatalogFingerprint string
	Cached             bool
}

// clone copies the response so callers never share the cached plan
func (r *ComputePlanResponse) clone() *ComputePlanResponse {
	out := *r
	out.Plan = r.Plan.Clone()
	out.Graph = r.Graph.Clone()
	return &out
}

// ComputePlanOptions configures the ComputePlan handler
type ComputePlanOptions struct {
	MaxScaleFactor   int
	DefaultRatioMode string
	DefaultMaxDepth  *int
	CacheSize        int
	CacheTTL         time.Duration
}

// ComputePlanHandler handles the ComputePlan query
type ComputePlanHandler struct {
	provider common.CatalogProvider
	opts     ComputePlanOptions
	cache    *planCache
}

// NewComputePlanHandler creates a new ComputePlanHandler
func NewComputePlanHandler(provider common.CatalogProvider, opts ComputePlanOptions) *ComputePlanHandler {
	return &ComputePlanHandler{
		provider: provider,
		opts:     opts,
		cache:    newPlanCache(opts.CacheSize, opts.CacheTTL),
	}
}

// Handle executes the ComputePlan query
func (h *ComputePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ComputePlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ComputePlanQuery")
	}

	ratioMode := query.RatioMode
	if ratioMode == "" {
		ratioMode = h.opts.DefaultRatioMode
	}
	mode, err := planning.ParseRatioMode(ratioMode)
	if err != nil {
		return nil, shared.NewValidationError("ratioMode", err.Error())
	}

	maxDepth := query.MaxDepth
	if maxDepth == nil {
		maxDepth = h.opts.DefaultMaxDepth
	}
	if maxDepth != nil && *maxDepth < 0 {
		return nil, shared.NewValidationError("maxDepth", fmt.Sprintf("must be non-negative, got %d", *maxDepth))
	}

	c, err := h.provider.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	settings := planning.Settings{RatioMode: mode, MaxDepth: maxDepth}
	key := planCacheKey(c.Fingerprint(), query.Targets, settings)

	if cached, hit := h.cache.Get(key); hit {
		metrics.RecordPlanCacheLookup(true)
		logger.Log(common.LevelDebug, "Plan served from cache", map[string]interface{}{
			"action":  "plan_cache_hit",
			"plan_id": cached.PlanID,
		})
		result := cached.clone()
		result.Cached = true
		return result, nil
	}
	if h.cache != nil {
		metrics.RecordPlanCacheLookup(false)
	}

	start := time.Now()
	planner := planning.NewPlanner(c, planning.PlannerOptions{MaxScaleFactor: h.opts.MaxScaleFactor})
	plan := planner.Plan(query.Targets, settings)
	graph := planning.BuildGraph(plan, c)
	duration := time.Since(start).Seconds()

	firstTarget := ""
	if len(query.Targets) > 0 {
		firstTarget = query.Targets[0].ItemID
	}

	result := &ComputePlanResponse{
		PlanID:             utils.GeneratePlanID(firstTarget),
		Plan:               plan,
		Graph:              graph,
		CatalogFingerprint: c.Fingerprint(),
	}
	h.cache.Set(key, result.clone())

	bottlenecks := plan.Bottlenecks()
	metrics.RecordPlanComputation(string(mode), len(query.Targets), len(bottlenecks), plan.Stats.ScaleFactor, duration)
	logger.Log(common.LevelInfo, "Plan computed", map[string]interface{}{
		"action":       "plan_computed",
		"plan_id":      result.PlanID,
		"targets":      len(query.Targets),
		"ratio_mode":   string(mode),
		"scale_factor": plan.Stats.ScaleFactor,
		"bottlenecks":  len(bottlenecks),
	})

	return result, nil
}
