// Package middleware contains the HTTP middleware chain: request IDs,
// request-scoped logging, panic recovery and Prometheus metrics.
package middleware

import (
	"net/http"

	"github.com/tavolohq/tavolo/internal/domain"
)

type contextKey string

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ELIFECYCLE:
		return http.StatusConflict
	case domain.ESYNC, domain.EUNCONFIRMED:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
