package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
)

type pingQuery struct {
	Value string
}

type pingHandler struct {
	calls int
}

func (h *pingHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	query := request.(*pingQuery)
	if query.Value == "" {
		return nil, errors.New("empty value")
	}
	return "pong:" + query.Value, nil
}

func TestMediator_SendDispatchesToRegisteredHandler(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RejectsDuplicateAndMissingHandlers(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))

	err := mediator.RegisterHandler[*pingQuery](m, &pingHandler{})
	assert.ErrorContains(t, err, "already registered")

	_, err = m.Send(context.Background(), "unregistered")
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.ErrorContains(t, err, "cannot be nil")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))

	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			resp, err := next(ctx, request)
			order = append(order, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))

	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, errors.New("blocked")
	})

	_, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	assert.EqualError(t, err, "blocked")
	assert.Zero(t, handler.calls)
}

func TestSendTyped(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))
	ctx := context.Background()

	got, err := mediator.SendTyped[string](ctx, m, &pingQuery{Value: "b"})
	require.NoError(t, err)
	assert.Equal(t, "pong:b", got)

	_, err = mediator.SendTyped[int](ctx, m, &pingQuery{Value: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response type string")

	_, err = mediator.SendTyped[string](ctx, m, &pingQuery{})
	assert.EqualError(t, err, "empty value")
}
