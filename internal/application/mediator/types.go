package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Request is any catalog query or command value.
type Request interface{}

// Response is whatever the matching handler returns.
type Response interface{}

type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps dispatch. It must call next to reach the handler.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Mediator routes a request to the single handler registered for its type.
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	RegisterMiddleware(middleware Middleware)
}

// SendTyped sends request and asserts the response to T.
func SendTyped[T any](ctx context.Context, m Mediator, request Request) (T, error) {
	var zero T
	resp, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T for %T", resp, request)
	}
	return typed, nil
}
