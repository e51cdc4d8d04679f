package query

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
)

// Client calls a remote QueryService.
type Client struct {
	svc QueryServiceClient
}

// NewClient creates a Client over an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{svc: NewQueryServiceClient(cc)}
}

// Query runs req remotely and returns the reply as JSON.
func (c *Client) Query(ctx context.Context, req *engine.Request) ([]byte, error) {
	in, err := requestToStruct(req)
	if err != nil {
		return nil, err
	}

	out, err := c.svc.GetData(ctx, in)
	if err != nil {
		return nil, err
	}

	return protojson.Marshal(out)
}
