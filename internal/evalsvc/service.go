// Package evalsvc exposes the engine as a single-method gRPC service:
// Evaluate(EvaluateRequest) returns (EvaluateResponse). Grounded on the
// teacher's internal/evaluator/builtins_grpc.go, which hand-builds a
// grpc.ServiceDesc and grpc.Server for a dynamically loaded, proto-described
// service (grpcServer/grpcRegister/grpcServe). This service has exactly one
// fixed method known at compile time, so the dynamic proto-descriptor
// machinery (protoreflect, dynamic.Message) has no role here; what carries
// over is the teacher's pattern of constructing a grpc.ServiceDesc and
// grpc.MethodDesc by hand instead of through protoc-gen-go. Request and
// response bodies are JSON rather than protobuf-wire-encoded, via a
// grpc/encoding.Codec registered under the "json" content-subtype, since
// the request/response shape here (a source string, a JSON variable bag,
// a JSON result) has no benefit from a fixed binary schema and this keeps
// the module free of a protoc-generated dependency.
package evalsvc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/funvibe/bel/internal/evalcache"
	"github.com/funvibe/bel/internal/jsonvalue"
	"github.com/funvibe/bel/pkg/bel"
)

// EvaluateRequest is the wire shape of an Evaluate call.
type EvaluateRequest struct {
	// Source is the expression text to compile and run.
	Source string `json:"source"`
	// Variables binds free variable names to JSON-encoded values.
	Variables map[string]json.RawMessage `json:"variables"`
	// Plugins lists which feature plug-ins ("regex", "time", "ip", "yaml")
	// to enable for this call, on top of the core standard library.
	Plugins []string `json:"plugins"`
}

// EvaluateResponse is the wire shape of an Evaluate reply. Exactly one of
// Result or Error is set.
type EvaluateResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Service implements the Evaluate RPC, optionally consulting a Cache for
// reference metadata before compiling.
type Service struct {
	Cache *evalcache.Cache
}

// Evaluate compiles req.Source, binds req.Variables, and runs it, honoring
// req.Plugins for feature opt-in.
func (s *Service) Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	var program *bel.Program
	var err error
	if s.Cache != nil {
		program, _, err = s.Cache.CompileCached(ctx, req.Source)
	} else {
		var errs bel.ParseErrors
		program, errs = bel.Compile(req.Source)
		if errs != nil {
			err = errs
		}
	}
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "compiling: %v", err)
	}

	opts := make([]bel.Option, 0, len(req.Plugins))
	for _, p := range req.Plugins {
		opt, ok := pluginOption(p)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown plug-in %q", p)
		}
		opts = append(opts, opt)
	}
	evalCtx := bel.NewDefaultContext(opts...)
	for name, raw := range req.Variables {
		val, err := jsonvalue.Decode(raw)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "variable %s: %v", name, err)
		}
		evalCtx = evalCtx.WithVariable(name, val)
	}

	result, err := program.Execute(evalCtx)
	if err != nil {
		return &EvaluateResponse{Error: err.Error()}, nil
	}
	resultJSON, err := jsonvalue.Encode(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding result: %v", err)
	}
	return &EvaluateResponse{Result: resultJSON}, nil
}

func pluginOption(name string) (bel.Option, bool) {
	switch name {
	case "regex":
		return bel.WithRegex(), true
	case "time":
		return bel.WithTime(), true
	case "ip":
		return bel.WithIP(), true
	case "yaml":
		return bel.WithYAML(), true
	default:
		return nil, false
	}
}

// serviceDesc is the hand-built grpc.ServiceDesc for the Evaluate RPC,
// following the teacher's builtinGrpcRegister's approach of constructing
// grpc.MethodDesc by hand rather than relying on protoc-gen-go-grpc.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "bel.eval.v1.Evaluator",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    evaluateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bel/eval.proto",
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EvaluateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: svc, FullMethod: "/bel.eval.v1.Evaluator/Evaluate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return svc.Evaluate(ctx, req.(*EvaluateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Register attaches svc to server under the Evaluator service.
func Register(server *grpc.Server, svc *Service) {
	server.RegisterService(&serviceDesc, svc)
}

// NewServer builds a grpc.Server using the JSON codec and registers svc.
func NewServer(svc *Service) *grpc.Server {
	server := grpc.NewServer(grpc.ForceServerCodec(jsonCodec{}))
	Register(server, svc)
	return server
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec by marshalling with encoding/json,
// registered under the "json" content-subtype in place of the default
// protobuf wire codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

