package middleware

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
)

// LoggingMiddleware injects logger into the request context (unless one is
// already present) and logs the outcome of every request.
func LoggingMiddleware(logger common.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if !common.HasLogger(ctx) && logger != nil {
			ctx = common.WithLogger(ctx, logger)
		}
		log := common.LoggerFromContext(ctx)

		name := requestName(request)
		start := time.Now()
		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"action":      "request_handled",
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if id := common.RequestIDFromContext(ctx); id != "" {
			metadata["request_id"] = id
		}

		if err != nil {
			metadata["error"] = err.Error()
			log.Log(common.LevelError, name+" failed", metadata)
			return response, err
		}

		log.Log(common.LevelDebug, name+" handled", metadata)
		return response, nil
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
