package http

import (
	"errors"
	"net/http"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// mapDomainErrorToHTTP maps domain errors to HTTP status codes.
func mapDomainErrorToHTTP(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, domain.ErrMalformedPredicate),
		errors.Is(err, domain.ErrInvalidOperand),
		errors.Is(err, domain.ErrUnknownQueryType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSourceFeed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
