package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
)

// MockMediator is a test double for mediator.Mediator that records every
// request and answers with canned responses keyed by request type
type MockMediator struct {
	mu        sync.Mutex
	responses map[reflect.Type]mediator.Response
	errors    map[reflect.Type]error
	sendFunc  func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	requests  []mediator.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		responses: make(map[reflect.Type]mediator.Response),
		errors:    make(map[reflect.Type]error),
	}
}

// Send implements mediator.Mediator
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	sendFunc := m.sendFunc
	requestType := reflect.TypeOf(request)
	response, hasResponse := m.responses[requestType]
	err := m.errors[requestType]
	m.mu.Unlock()

	if sendFunc != nil {
		return sendFunc(ctx, request)
	}
	if err != nil {
		return nil, err
	}
	if hasResponse {
		return response, nil
	}
	return nil, fmt.Errorf("unsupported request type: %T", request)
}

// Register implements mediator.Mediator; handlers are ignored
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements mediator.Mediator; middleware is ignored
func (m *MockMediator) RegisterMiddleware(middleware mediator.Middleware) {}

// Respond sets the response returned for requests of the same type as sample
func (m *MockMediator) Respond(sample mediator.Request, response mediator.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[reflect.TypeOf(sample)] = response
}

// Fail sets the error returned for requests of the same type as sample
func (m *MockMediator) Fail(sample mediator.Request, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[reflect.TypeOf(sample)] = err
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Requests returns every request sent so far
func (m *MockMediator) Requests() []mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mediator.Request(nil), m.requests...)
}

// LastRequest returns the most recent request, or nil
func (m *MockMediator) LastRequest() mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}
