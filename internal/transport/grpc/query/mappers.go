package query

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
)

// structToRequest decodes a Struct payload with the same rules as an HTTP body.
func structToRequest(in *structpb.Struct) (*engine.Request, error) {
	data, err := protojson.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request struct: %w", err)
	}
	return engine.DecodeRequest(data)
}

// replyToStruct converts a query reply into a Struct via its JSON form.
func replyToStruct(reply any) (*structpb.Struct, error) {
	data, err := json.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to convert reply: %w", err)
	}
	return out, nil
}

// requestToStruct encodes a request for the wire.
func requestToStruct(req *engine.Request) (*structpb.Struct, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to convert request: %w", err)
	}
	return out, nil
}
