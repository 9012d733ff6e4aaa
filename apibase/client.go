package apibase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/adamwoolhether/asyncrequest/transport"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Client submits prepared requests to a callback-based transport and
// waits for the single result. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	transport transport.Transport
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Build creates a Client. Without [WithTransport] a [transport.HTTP] is
// built from the options given to [WithTransportOptions].
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	switch {
	case opts.transport != nil:
		client.transport = opts.transport
	default:
		topts := append([]transport.Option{transport.WithLogger(client.logger)}, opts.transportOpts...)
		tr, err := transport.New(topts...)
		if err != nil {
			return nil, fmt.Errorf("building transport: %w", err)
		}
		client.transport = tr
	}

	return client, nil
}

// Do prepares the request described by d and sends it.
func (c *Client) Do(ctx context.Context, d Descriptor, opts ...RequestOption) (*Response, error) {
	req, err := Prepare(ctx, d, opts...)
	if err != nil {
		return nil, err
	}

	return c.Send(req)
}

// Send submits req to the transport and blocks until it completes. A
// transport error is returned exactly as the transport reported it.
func (c *Client) Send(req *http.Request) (*Response, error) {
	callID := uuid.NewString()

	ctx, span := c.tracer.Start(req.Context(), "apibase.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("call.id", callID),
		attribute.String("http.method", req.Method),
		attribute.String("url", req.URL.String()),
	)
	req = req.WithContext(ctx)

	start := time.Now()
	c.logger.Debug("request started", "call_id", callID, "method", req.Method, "url", req.URL.String())

	resp, err := roundTrip(c.transport, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("request failed", "call_id", callID, "method", req.Method, "url", req.URL.String(), "error", err, "since", time.Since(start).String())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("request completed", "call_id", callID, "method", req.Method, "url", req.URL.String(), "statusCode", resp.StatusCode, "since", time.Since(start).String())

	return resp, nil
}

type result struct {
	body []byte
	resp *http.Response
	err  error
}

// roundTrip bridges the transport's completion callback into a blocking
// call. The completion may fire only once; a second call panics with
// ErrCompletedTwice.
func roundTrip(t transport.Transport, req *http.Request) (*Response, error) {
	done := make(chan result, 1)
	var fired atomic.Bool

	t.Submit(req, func(body []byte, resp *http.Response, err error) {
		if !fired.CompareAndSwap(false, true) {
			panic(ErrCompletedTwice)
		}
		done <- result{body: body, resp: resp, err: err}
	})

	r := <-done
	switch {
	case r.err != nil:
		return nil, r.err
	case r.resp == nil || r.resp.StatusCode < 100:
		return nil, ErrNonHTTPResponse
	}

	return newResponse(r.body, r.resp), nil
}
