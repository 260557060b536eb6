package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError writes err with the status matching its kind
func respondError(w http.ResponseWriter, err error) {
	view := api.NewErrorView(err)
	status := statusFor(api.ErrorKind(view.Kind))

	if status == http.StatusTooManyRequests {
		if limited, ok := rateLimited(err); ok {
			seconds := int(math.Ceil(limited.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
		}
	}

	respondJSON(w, status, view)
}

func statusFor(kind api.ErrorKind) int {
	switch kind {
	case api.KindInvalid:
		return http.StatusBadRequest
	case api.KindNotFound:
		return http.StatusNotFound
	case api.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func rateLimited(err error) (*middleware.RateLimitedError, bool) {
	var limited *middleware.RateLimitedError
	if errors.As(err, &limited) {
		return limited, true
	}
	return nil, false
}
