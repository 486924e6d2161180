package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials     = errors.New("roostoo api key or secret is missing")
	ErrMissingBaseURL         = errors.New("roostoo base url is missing")
	ErrLimitOrderWithoutPrice = errors.New("LIMIT orders require a price")
	ErrExchangeNotRegistered  = errors.New("exchange is not registered")
)

// APIError is returned when the exchange answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("roostoo request failed: status=%d body=%s", e.StatusCode, e.Body)
}
