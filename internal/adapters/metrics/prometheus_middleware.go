package metrics

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
)

// PrometheusMiddleware creates a middleware that records request handling metrics
//
// Requests are labelled by their type name with the package prefix removed, e.g.
// "*queries.ComputePlanQuery" becomes "ComputePlanQuery". Status is one of
// "success", "error" or "rate_limited".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		requestName := extractRequestName(request)

		collector.RecordCommandStart()
		start := time.Now()

		response, err := next(ctx, request)

		duration := time.Since(start).Seconds()
		collector.RecordCommandExecution(requestName, duration, statusOf(err))

		return response, err
	}
}

func statusOf(err error) string {
	var limited *middleware.RateLimitedError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &limited):
		return "rate_limited"
	default:
		return "error"
	}
}

// extractRequestName extracts a clean request name using reflection
// Examples:
//   - "*queries.BuildChainQuery" → "BuildChainQuery"
//   - "*commands.ImportCatalogCommand" → "ImportCatalogCommand"
func extractRequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
