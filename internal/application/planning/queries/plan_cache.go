package queries

import (
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/andrescamacho/craftchain-go/internal/domain/planning"
)

// planCacheSchemaVersion is bumped when the cached result shape changes so
// stale entries are dropped on read
const planCacheSchemaVersion = "1"

// cachedPlanEntry wraps a computed plan with version metadata
type cachedPlanEntry struct {
	Version  string
	Result   *ComputePlanResponse
	CachedAt time.Time
}

// planCache memoizes plan computations. Keys are pure functions of the request
// and the catalog fingerprint, so a catalog reload naturally misses.
type planCache struct {
	lru *expirable.LRU[string, *cachedPlanEntry]
}

// newPlanCache creates a plan cache. A non-positive size disables caching.
func newPlanCache(size int, ttl time.Duration) *planCache {
	if size <= 0 {
		return nil
	}
	return &planCache{
		lru: expirable.NewLRU[string, *cachedPlanEntry](size, nil, ttl),
	}
}

// Get returns the cached result for key, if present and current
func (c *planCache) Get(key string) (*ComputePlanResponse, bool) {
	if c == nil {
		return nil, false
	}
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != planCacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.Result, true
}

// Set stores a result under key
func (c *planCache) Set(key string, result *ComputePlanResponse) {
	if c == nil {
		return
	}
	c.lru.Add(key, &cachedPlanEntry{
		Version:  planCacheSchemaVersion,
		Result:   result,
		CachedAt: time.Now(),
	})
}

// Len returns the number of cached plans
func (c *planCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// planCacheKey canonicalizes a plan request. Target order is kept because a
// later forced recipe for the same item overrides an earlier one.
func planCacheKey(fingerprint string, targets []planning.Target, settings planning.Settings) string {
	var b strings.Builder
	b.WriteString(fingerprint)
	b.WriteString("|")
	b.WriteString(string(settings.RatioMode))
	b.WriteString("|")
	if settings.MaxDepth == nil {
		b.WriteString("*")
	} else {
		b.WriteString(strconv.Itoa(*settings.MaxDepth))
	}
	for _, t := range targets {
		b.WriteString("|")
		b.WriteString(t.ItemID)
		b.WriteString(":")
		b.WriteString(t.RecipeID)
		b.WriteString("=")
		b.WriteString(strconv.FormatFloat(t.RatePerMin, 'g', -1, 64))
	}
	return b.String()
}
