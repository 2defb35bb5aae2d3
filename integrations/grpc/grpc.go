// Package grpc classifies unary gRPC calls into typed responses.
//
// A call that returns no error is a Success with status codes.OK. A call that
// fails with a gRPC status is an Error whose StatusCode is the status code and
// whose Body is the marshalled google.rpc.Status. Any other error is an
// Exception.
package grpc

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/aponysus/outcome/classify"
	"github.com/aponysus/outcome/internal"
	"github.com/aponysus/outcome/observe"
	"github.com/aponysus/outcome/response"
)

// RequestIDKey is the metadata key carrying the per-call request ID.
const RequestIDKey = "x-request-id"

// Invoke runs a unary call and classifies its result. fn must pass the given
// call options through to the generated client method so response headers are
// captured.
func Invoke[T any](ctx context.Context, fn func(ctx context.Context, opts ...grpc.CallOption) (T, error)) response.Response[T] {
	var header metadata.MD
	reply, err := fn(ctx, grpc.Header(&header))
	return Classify(reply, header, err)
}

// Classify builds the Response for a finished unary call.
func Classify[T any](reply T, header metadata.MD, err error) response.Response[T] {
	h := headerOf(header)
	if err == nil {
		return response.NewSuccess(reply, int(codes.OK), h)
	}
	st, ok := status.FromError(err)
	if !ok {
		return classify.FromError[T](err)
	}
	if st.Code() == codes.OK {
		return response.NewSuccess(reply, int(codes.OK), h)
	}
	body, mErr := proto.Marshal(st.Proto())
	if mErr != nil {
		return classify.FromError[T](mErr)
	}
	return response.NewError[T](int(st.Code()), body, h)
}

// StatusOf decodes the gRPC status carried by an Error built by Classify.
func StatusOf(e response.Error) (*status.Status, bool) {
	if len(e.Body) == 0 {
		return status.New(codes.Code(e.StatusCode), ""), true
	}
	var pb spb.Status
	if err := proto.Unmarshal(e.Body, &pb); err != nil {
		return nil, false
	}
	return status.FromProto(&pb), true
}

// UnaryClientInterceptor reports the outcome of every unary call to obs. Calls
// without an x-request-id in their outgoing metadata get a generated one.
func UnaryClientInterceptor(obs observe.Observer) grpc.UnaryClientInterceptor {
	if internal.IsTypedNil(obs) {
		obs = observe.NoopObserver{}
	}
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		id := requestID(ctx)
		if id == "" {
			id = uuid.NewString()
			ctx = metadata.AppendToOutgoingContext(ctx, RequestIDKey, id)
		}

		var header metadata.MD
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, append(opts, grpc.Header(&header))...)
		r := Classify(reply, header, err)

		obs.OnDelivered(observe.WithCallInfo(ctx, observe.CallInfo{Name: method, RequestID: id}),
			observe.EventOf(method, id, r, start, time.Now()))
		return err
	}
}

func requestID(ctx context.Context) string {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(RequestIDKey); len(v) > 0 {
		return v[0]
	}
	return ""
}

func headerOf(md metadata.MD) http.Header {
	if len(md) == 0 {
		return nil
	}
	h := make(http.Header, len(md))
	for k, vs := range md {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return h
}
