package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetricsCollector handles chain build and plan computation metrics
type PlannerMetricsCollector struct {
	// Chain metrics
	chainBuildsTotal   *prometheus.CounterVec
	chainNodes         prometheus.Histogram
	chainBuildDuration prometheus.Histogram

	// Plan metrics
	plansTotal       *prometheus.CounterVec
	planDuration     *prometheus.HistogramVec
	planTargets      prometheus.Histogram
	planBottlenecks  prometheus.Gauge
	planScaleFactor  prometheus.Gauge
	planCacheLookups *prometheus.CounterVec
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		chainBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chain_builds_total",
				Help:      "Total number of production chains built by root lookup status",
			},
			[]string{"status"},
		),

		chainNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chain_nodes",
				Help:      "Number of nodes in built production chains",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),

		chainBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chain_build_duration_seconds",
				Help:      "Production chain build duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),

		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plans_total",
				Help:      "Total number of plans computed by ratio mode and scaling outcome",
			},
			[]string{"ratio_mode", "scaled"},
		),

		planDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_duration_seconds",
				Help:      "Plan computation duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"ratio_mode"},
		),

		planTargets: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_targets",
				Help:      "Number of targets per computed plan",
				Buckets:   []float64{1, 2, 3, 5, 10, 20},
			},
		),

		planBottlenecks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_bottleneck_items",
				Help:      "Bottleneck items in the most recently computed plan",
			},
		),

		planScaleFactor: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_scale_factor",
				Help:      "Scale factor of the most recently computed plan",
			},
		),

		planCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_cache_lookups_total",
				Help:      "Plan cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.chainBuildsTotal,
		c.chainNodes,
		c.chainBuildDuration,
		c.plansTotal,
		c.planDuration,
		c.planTargets,
		c.planBottlenecks,
		c.planScaleFactor,
		c.planCacheLookups,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordChainBuild records one chain build
func (c *PlannerMetricsCollector) RecordChainBuild(found bool, nodes int, duration float64) {
	status := "found"
	if !found {
		status = "not_found"
	}

	c.chainBuildsTotal.WithLabelValues(status).Inc()
	c.chainNodes.Observe(float64(nodes))
	c.chainBuildDuration.Observe(duration)
}

// RecordPlanComputation records one plan computation
func (c *PlannerMetricsCollector) RecordPlanComputation(ratioMode string, targets int, bottlenecks int, scaleFactor int, duration float64) {
	c.plansTotal.WithLabelValues(ratioMode, strconv.FormatBool(scaleFactor > 1)).Inc()
	c.planDuration.WithLabelValues(ratioMode).Observe(duration)
	c.planTargets.Observe(float64(targets))
	c.planBottlenecks.Set(float64(bottlenecks))
	c.planScaleFactor.Set(float64(scaleFactor))
}

// RecordPlanCacheLookup records a plan cache hit or miss
func (c *PlannerMetricsCollector) RecordPlanCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.planCacheLookups.WithLabelValues(result).Inc()
}
