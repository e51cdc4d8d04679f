package query

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
	"github.com/light-bringer/pricecomp-service/internal/observability"
)

// QueryEngine runs decoded queries.
type QueryEngine interface {
	Execute(ctx context.Context, req *engine.Request) (any, error)
}

// Handler implements the gRPC QueryService.
type Handler struct {
	UnimplementedQueryServiceServer

	engine QueryEngine
	logger *observability.Logger
}

// NewHandler creates a new gRPC query handler.
func NewHandler(engine QueryEngine, logger *observability.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// GetData runs one query. The request and reply have the same shape as the
// HTTP /getdata body and response.
func (h *Handler) GetData(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := structToRequest(in)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	reply, err := h.engine.Execute(ctx, req)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	out, err := replyToStruct(reply)
	if err != nil {
		h.logger.Error().Err(err).Str("query_type", req.QueryType).Msg("Failed to convert reply")
		return nil, mapDomainErrorToGRPC(err)
	}
	return out, nil
}
