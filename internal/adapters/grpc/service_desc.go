package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "craftchain.v1.Planner"

const (
	methodListItems   = "ListItems"
	methodGetItem     = "GetItem"
	methodBuildChain  = "BuildChain"
	methodComputePlan = "ComputePlan"
)

// PlannerService is the server side of craftchain.v1.Planner. Every message is a
// google.protobuf.Struct holding the JSON view of the request or response.
type PlannerService interface {
	ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	BuildChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ComputePlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unaryHandler(name string, call func(PlannerService, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PlannerService), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PlannerService), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var plannerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerService)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(methodListItems, PlannerService.ListItems),
		unaryHandler(methodGetItem, PlannerService.GetItem),
		unaryHandler(methodBuildChain, PlannerService.BuildChain),
		unaryHandler(methodComputePlan, PlannerService.ComputePlan),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "craftchain/v1/planner.proto",
}

// RegisterPlannerService registers srv on s
func RegisterPlannerService(s grpc.ServiceRegistrar, srv PlannerService) {
	s.RegisterService(&plannerServiceDesc, srv)
}
