package httpx

import (
	"errors"
	"net/http"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusCodeOf returns the HTTP status carried anywhere in err's chain, or 0.
func StatusCodeOf(err error) int {
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}

func IsRateLimitStatus(code int) bool {
	return code == http.StatusTooManyRequests
}
