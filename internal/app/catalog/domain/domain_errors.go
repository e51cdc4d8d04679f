package domain

import "errors"

// Domain errors as sentinel values
var (
	// Query errors
	ErrMalformedRequest   = errors.New("malformed query request")
	ErrMalformedPredicate = errors.New("malformed filter predicate")
	ErrInvalidOperand     = errors.New("filter operand is not a number")
	ErrUnknownQueryType   = errors.New("unknown query type")

	// Feed errors
	ErrSourceFeed = errors.New("source feed unavailable or malformed")

	// Record derivation errors
	ErrMissingProductID = errors.New("product id is missing")
	ErrMissingPrice     = errors.New("product price is missing")
	ErrZeroRegularPrice = errors.New("product regular price is zero")
)
