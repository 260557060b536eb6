package middleware

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
)

// RateLimitedError is returned when a request is rejected by the rate limiter
type RateLimitedError struct {
	Request    string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.Request, e.RetryAfter)
}

// RateLimitMiddleware rejects requests beyond requestsPerSecond (with burst)
// instead of queueing them. A non-positive rate disables limiting.
func RateLimitMiddleware(requestsPerSecond float64, burst int) mediator.Middleware {
	if requestsPerSecond <= 0 {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			return next(ctx, request)
		}
	}
	if burst < 1 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		reservation := limiter.Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			return nil, &RateLimitedError{
				Request:    requestName(request),
				RetryAfter: delay,
			}
		}
		return next(ctx, request)
	}
}
