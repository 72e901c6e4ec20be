package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the wallet gRPC service
const ServiceName = "f1r3sky.wallet.v1.WalletService"

// WalletServiceServer is the server API for the wallet service.
// Every method takes and returns a google.protobuf.Struct.
type WalletServiceServer interface {
	ValidateTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitBoost(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBoostSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBalanceGraph(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListWallets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterWalletServiceServer registers srv with a gRPC server
func RegisterWalletServiceServer(s grpc.ServiceRegistrar, srv WalletServiceServer) {
	s.RegisterService(&walletServiceDesc, srv)
}

// FullMethod returns the gRPC path of a wallet service method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type unaryMethod func(WalletServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unary adapts a WalletServiceServer method to a grpc.MethodDesc handler
func unary(method string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(WalletServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(WalletServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var walletServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WalletServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ValidateTransfer", WalletServiceServer.ValidateTransfer),
		unary("SubmitTransfer", WalletServiceServer.SubmitTransfer),
		unary("SubmitBoost", WalletServiceServer.SubmitBoost),
		unary("UpdateBoostSettings", WalletServiceServer.UpdateBoostSettings),
		unary("GetBalanceGraph", WalletServiceServer.GetBalanceGraph),
		unary("GetSummary", WalletServiceServer.GetSummary),
		unary("ListHistory", WalletServiceServer.ListHistory),
		unary("AddWallet", WalletServiceServer.AddWallet),
		unary("ListWallets", WalletServiceServer.ListWallets),
		unary("RemoveWallet", WalletServiceServer.RemoveWallet),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "f1r3sky/wallet/v1/wallet.proto",
}
