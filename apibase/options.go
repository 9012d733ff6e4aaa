package apibase

import (
	"errors"
	"log/slog"

	"github.com/adamwoolhether/asyncrequest/transport"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	transport     transport.Transport
	transportOpts []transport.Option
	logger        *slog.Logger
	tracer        trace.Tracer
}

// WithTransport sets the transport capability requests are submitted to.
// It takes precedence over [WithTransportOptions].
func WithTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = t
		return nil
	}
}

// WithTransportOptions configures the default [transport.HTTP].
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) error {
		o.transportOpts = append(o.transportOpts, opts...)
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer injects the tracer used to record one span per request.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// RequestOption is a functional option for [Prepare] and [Client.Do].
type RequestOption func(*requestOpts) error

type requestOpts struct {
	encoder BodyEncoder
}

// WithBodyEncoder overrides how the body bytes are derived from the
// Descriptor. A nil encoder keeps the default [PassthroughBody].
func WithBodyEncoder(enc BodyEncoder) RequestOption {
	return func(o *requestOpts) error {
		if enc != nil {
			o.encoder = enc
		}
		return nil
	}
}
