package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
)

// CatalogMetricsCollector polls the catalog provider and exposes catalog shape gauges
type CatalogMetricsCollector struct {
	// Dependencies
	provider common.CatalogProvider

	// Catalog shape metrics
	itemsTotal        prometheus.Gauge
	recipesTotal      *prometheus.GaugeVec
	rawMaterialsTotal prometheus.Gauge
	multiRecipeItems  prometheus.Gauge
	lastLoadTimestamp prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	// Configuration
	pollInterval time.Duration
}

// NewCatalogMetricsCollector creates a new catalog metrics collector
func NewCatalogMetricsCollector(provider common.CatalogProvider, pollInterval time.Duration) *CatalogMetricsCollector {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	return &CatalogMetricsCollector{
		provider: provider,

		itemsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "items_total",
				Help:      "Number of items in the loaded catalog",
			},
		),

		recipesTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "recipes_total",
				Help:      "Number of recipes in the loaded catalog by recipe type",
			},
			[]string{"type"},
		),

		rawMaterialsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "raw_materials_total",
				Help:      "Number of terminal (raw) items in the loaded catalog",
			},
		),

		multiRecipeItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "multi_recipe_items_total",
				Help:      "Number of items produced by more than one recipe",
			},
		),

		lastLoadTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "last_poll_timestamp_seconds",
				Help:      "Unix time of the last successful catalog poll",
			},
		),

		pollInterval: pollInterval,
	}
}

// Register registers all catalog metrics with the Prometheus registry
func (c *CatalogMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.itemsTotal,
		c.recipesTotal,
		c.rawMaterialsTotal,
		c.multiRecipeItems,
		c.lastLoadTimestamp,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins polling the catalog in the background
func (c *CatalogMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollMetrics(c.pollInterval)
}

// Stop stops polling and waits for the poller to exit
func (c *CatalogMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *CatalogMetricsCollector) pollMetrics(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do initial poll immediately
	c.updateAllMetrics()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateAllMetrics()
		}
	}
}

// updateAllMetrics refreshes every gauge from the current catalog snapshot
func (c *CatalogMetricsCollector) updateAllMetrics() {
	snapshot, err := c.provider.Catalog(c.ctx)
	if err != nil {
		log.Printf("catalog metrics: failed to read catalog: %v", err)
		return
	}

	items, _ := snapshot.Size()
	c.itemsTotal.Set(float64(items))

	byType := make(map[string]int)
	for _, recipe := range snapshot.Recipes() {
		byType[string(recipe.Type)]++
	}
	c.recipesTotal.Reset()
	for recipeType, count := range byType {
		c.recipesTotal.WithLabelValues(recipeType).Set(float64(count))
	}

	raw, multi := 0, 0
	for _, item := range snapshot.Items() {
		if snapshot.IsTerminal(item.ID) {
			raw++
		}
		if len(snapshot.RecipesProducing(item.ID)) > 1 {
			multi++
		}
	}
	c.rawMaterialsTotal.Set(float64(raw))
	c.multiRecipeItems.Set(float64(multi))
	c.lastLoadTimestamp.Set(float64(time.Now().Unix()))
}
