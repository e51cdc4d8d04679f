package query

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, domain.ErrMalformedPredicate),
		errors.Is(err, domain.ErrInvalidOperand),
		errors.Is(err, domain.ErrUnknownQueryType):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrSourceFeed):
		return status.Error(codes.Unavailable, "product feed unavailable")

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
