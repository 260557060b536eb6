package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "craftchain"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording chain and plan metrics
// This interface is used by application code to record metrics
type PlannerMetricsRecorder interface {
	RecordChainBuild(found bool, nodes int, duration float64)
	RecordPlanComputation(ratioMode string, targets int, bottlenecks int, scaleFactor int, duration float64)
	RecordPlanCacheLookup(hit bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordChainBuild records a chain build globally
func RecordChainBuild(found bool, nodes int, duration float64) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordChainBuild(found, nodes, duration)
	}
}

// RecordPlanComputation records a plan computation globally
func RecordPlanComputation(ratioMode string, targets int, bottlenecks int, scaleFactor int, duration float64) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordPlanComputation(ratioMode, targets, bottlenecks, scaleFactor, duration)
	}
}

// RecordPlanCacheLookup records a plan cache hit or miss globally
func RecordPlanCacheLookup(hit bool) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordPlanCacheLookup(hit)
	}
}
