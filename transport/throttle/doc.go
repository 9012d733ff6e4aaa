// Package throttle provides an [http.RoundTripper] that paces outbound
// requests of the default transport with a token bucket from
// [golang.org/x/time/rate].
//
// The apibase layer never limits concurrency itself; pacing is a property
// of the transport capability and is configured there:
//
//	rt, err := throttle.New(throttle.Config{RPS: 10, Burst: 5},
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	tr, err := transport.New(transport.WithRoundTripper(rt))
//
// A request waits for a token until one is available or its context ends.
package throttle
