package api

import (
	"errors"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

// ErrorKind groups errors by how a transport reports them
type ErrorKind string

const (
	KindInvalid     ErrorKind = "invalid"
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindInternal    ErrorKind = "internal"
)

// Classify maps an error returned by a Service to its kind
func Classify(err error) ErrorKind {
	var invalid *shared.ValidationError
	var notFound *catalog.ItemNotFoundError
	var limited *middleware.RateLimitedError

	switch {
	case errors.As(err, &invalid):
		return KindInvalid
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &limited):
		return KindRateLimited
	default:
		return KindInternal
	}
}

// NewErrorView describes err for the wire
func NewErrorView(err error) ErrorView {
	view := ErrorView{Error: err.Error(), Kind: string(Classify(err))}

	var invalid *shared.ValidationError
	var notFound *catalog.ItemNotFoundError
	var limited *middleware.RateLimitedError
	switch {
	case errors.As(err, &invalid):
		view.Field = invalid.Field
		view.Message = invalid.Message
	case errors.As(err, &notFound):
		view.ItemID = notFound.ItemID
	case errors.As(err, &limited):
		view.RetryAfter = limited.RetryAfter.String()
	}
	return view
}

// AsError rebuilds the typed error a remote side reported
func (v ErrorView) AsError() error {
	switch ErrorKind(v.Kind) {
	case KindInvalid:
		return shared.NewValidationError(v.Field, v.Message)
	case KindNotFound:
		return &catalog.ItemNotFoundError{ItemID: v.ItemID}
	case KindRateLimited:
		retryAfter, _ := time.ParseDuration(v.RetryAfter)
		return &middleware.RateLimitedError{Request: "remote", RetryAfter: retryAfter}
	default:
		return &RemoteError{Message: v.Error}
	}
}

// RemoteError is an unclassified failure reported by a remote planner
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "remote planner: " + e.Message
}
