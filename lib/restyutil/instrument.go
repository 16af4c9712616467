// Package restyutil traces the requests of a resty client and dumps every
// http exchange to an Output for offline inspection.
package restyutil

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

type instrumentCtx struct {
	output    Output
	tracer    trace.Tracer
	idcounter *atomic.Uint64
}

type exchangeIdKey struct{}

// InstrumentClient registers the tracing and dump middleware on the client.
// `tracer` can be nil, it defaults to a tracer named "resty". The function is
// a no-op when `output` is nil.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output Output) {
	if output == nil {
		return
	}
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	i := instrumentCtx{output: output, tracer: tracer, idcounter: &atomic.Uint64{}}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), req.Method)

	exchangeId := strconv.FormatUint(i.idcounter.Add(1), 10)
	ctx = context.WithValue(ctx, exchangeIdKey{}, exchangeId)
	slog.DebugContext(
		ctx, "dumping request",
		"method", req.Method,
		"url", req.URL,
		"exchange_id", exchangeId,
	)

	req.SetContext(ctx)
	return nil
}

func exchangeId(ctx context.Context) string {
	id, ok := ctx.Value(exchangeIdKey{}).(string)
	if !ok {
		return "unknown"
	}
	return id
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	// request attributes are only available once the raw request is built
	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	if res.Request.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	}
	if res.RawResponse != nil {
		span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	}

	id := exchangeId(ctx)
	i.output.Write(id, formatExchange(res))
	slog.DebugContext(
		ctx, "dumped exchange",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"status", res.StatusCode(),
		"exchange_id", id,
	)

	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
	span.SetName(fmt.Sprintf("http %s", req.Method))
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}

	slog.DebugContext(
		ctx, "request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
		"exchange_id", exchangeId(ctx),
	)
}
