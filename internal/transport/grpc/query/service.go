package query

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName                         = "pricecomp.query.v1.QueryService"
	QueryService_GetData_FullMethodName = "/pricecomp.query.v1.QueryService/GetData"

	protoFileName = "pricecomp/query/v1/query.proto"
)

// The service has a single unary method over google.protobuf.Struct, so its
// descriptor is registered here for server reflection.
func init() {
	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFileName),
		Package:    proto.String("pricecomp.query.v1"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("QueryService"),
			Method: []*descriptorpb.MethodDescriptorProto{{
				Name:       proto.String("GetData"),
				InputType:  proto.String(".google.protobuf.Struct"),
				OutputType: proto.String(".google.protobuf.Struct"),
			}},
		}},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/light-bringer/pricecomp-service/internal/transport/grpc/query"),
		},
		Syntax: proto.String("proto3"),
	}

	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(err)
	}
}

// QueryServiceServer is the server API for QueryService.
type QueryServiceServer interface {
	GetData(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedQueryServiceServer can be embedded to have forward compatible implementations.
type UnimplementedQueryServiceServer struct{}

func (UnimplementedQueryServiceServer) GetData(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetData not implemented")
}

// RegisterQueryServiceServer registers srv on s.
func RegisterQueryServiceServer(s grpc.ServiceRegistrar, srv QueryServiceServer) {
	s.RegisterService(&QueryService_ServiceDesc, srv)
}

func _QueryService_GetData_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServiceServer).GetData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: QueryService_GetData_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServiceServer).GetData(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// QueryService_ServiceDesc is the grpc.ServiceDesc for QueryService.
var QueryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*QueryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetData",
			Handler:    _QueryService_GetData_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFileName,
}

// QueryServiceClient is the client API for QueryService.
type QueryServiceClient interface {
	GetData(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type queryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewQueryServiceClient creates a client over cc.
func NewQueryServiceClient(cc grpc.ClientConnInterface) QueryServiceClient {
	return &queryServiceClient{cc}
}

func (c *queryServiceClient) GetData(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, QueryService_GetData_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
