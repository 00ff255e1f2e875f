package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// problemDetails is the RFC 7807 body written by middleware. RetryAfter is an
// extension member mirroring the Retry-After header.
type problemDetails struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail,omitempty"`
	Instance   string `json:"instance,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

const errorTypeRateLimit = "https://fortuna.app/errors/rate-limit"

// tooManyRequestsError writes a 429 telling the client how many seconds to wait
func tooManyRequestsError(c echo.Context, retryAfter int) error {
	return c.JSON(http.StatusTooManyRequests, problemDetails{
		Type:       errorTypeRateLimit,
		Title:      "Rate Limit Exceeded",
		Status:     http.StatusTooManyRequests,
		Detail:     fmt.Sprintf("Too many changes. Please retry after %d seconds.", retryAfter),
		Instance:   c.Request().URL.Path,
		RetryAfter: retryAfter,
	})
}
