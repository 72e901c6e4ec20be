package grpc

import (
	"fmt"
	"strconv"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
)

// stringArg returns a string field, or "" when it is missing or null
func stringArg(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

// optionalArg distinguishes a missing or null field (nil) from an empty string
func optionalArg(in *structpb.Struct, name string) *string {
	v, ok := in.GetFields()[name]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return validator.Input(v.GetStringValue())
}

// intArg reads an integer sent either as a JSON number or as a decimal string
func intArg(in *structpb.Struct, name string) (int, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return 0, nil
	case *structpb.Value_NumberValue:
		return int(kind.NumberValue), nil
	case *structpb.Value_StringValue:
		n, err := strconv.Atoi(kind.StringValue)
		if err != nil {
			return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", name, err)
		}
		return n, nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: expected a number", name)
	}
}

// timestamp renders t the way protojson renders google.protobuf.Timestamp
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// fieldValue encodes a form field as {state, value} or {state, kind, raw}.
// Untracked fields encode as null.
func fieldValue[T fmt.Stringer](f validator.Field[T]) any {
	switch v := f.(type) {
	case validator.Empty[T]:
		return map[string]any{"state": string(v.State())}
	case validator.Valid[T]:
		return map[string]any{"state": string(v.State()), "value": v.Value.String()}
	case validator.Invalid[T]:
		out := map[string]any{"state": string(v.State()), "kind": string(v.Kind)}
		if v.Raw != nil {
			out["raw"] = *v.Raw
		}
		return out
	default:
		return nil
	}
}

// list converts typed rows into the []any structpb expects
func list[T any](rows []T, encode func(T) map[string]any) []any {
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, encode(row))
	}
	return out
}
