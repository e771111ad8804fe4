package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "freightorders.v1.OrderExtractionService"

const (
	methodClassify     = "/" + ServiceName + "/Classify"
	methodExtract      = "/" + ServiceName + "/Extract"
	methodGetOrder     = "/" + ServiceName + "/GetOrder"
	methodListOrders   = "/" + ServiceName + "/ListOrders"
	methodExportOrders = "/" + ServiceName + "/ExportOrders"
)

// OrderExtractionServer is the server API. Requests and responses are
// google.protobuf.Struct documents; ExportOrders answers with raw XLSX bytes.
type OrderExtractionServer interface {
	Classify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Extract(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportOrders(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
}

// RegisterOrderExtractionServer registers srv on s.
func RegisterOrderExtractionServer(s grpc.ServiceRegistrar, srv OrderExtractionServer) {
	s.RegisterService(&OrderExtractionServiceDesc, srv)
}

type unaryCall func(srv OrderExtractionServer, ctx context.Context, in *structpb.Struct) (any, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OrderExtractionServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OrderExtractionServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// OrderExtractionServiceDesc is the grpc.ServiceDesc for OrderExtractionService.
var OrderExtractionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderExtractionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Classify",
			Handler: unaryHandler(methodClassify, func(s OrderExtractionServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Classify(ctx, in)
			}),
		},
		{
			MethodName: "Extract",
			Handler: unaryHandler(methodExtract, func(s OrderExtractionServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Extract(ctx, in)
			}),
		},
		{
			MethodName: "GetOrder",
			Handler: unaryHandler(methodGetOrder, func(s OrderExtractionServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.GetOrder(ctx, in)
			}),
		},
		{
			MethodName: "ListOrders",
			Handler: unaryHandler(methodListOrders, func(s OrderExtractionServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.ListOrders(ctx, in)
			}),
		},
		{
			MethodName: "ExportOrders",
			Handler: unaryHandler(methodExportOrders, func(s OrderExtractionServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.ExportOrders(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "freightorders/v1/orders.proto",
}

// OrderExtractionClient calls OrderExtractionService over a client connection.
type OrderExtractionClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderExtractionClient(cc grpc.ClientConnInterface) *OrderExtractionClient {
	return &OrderExtractionClient{cc: cc}
}

func (c *OrderExtractionClient) Classify(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodClassify, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderExtractionClient) Extract(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodExtract, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderExtractionClient) GetOrder(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetOrder, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderExtractionClient) ListOrders(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodListOrders, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderExtractionClient) ExportOrders(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, methodExportOrders, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
