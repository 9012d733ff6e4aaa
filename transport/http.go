package transport

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/asyncrequest/transport/throttle"
)

// HTTP is the default [Transport]. It wraps an *http.Client and runs
// every submission on its own goroutine, buffering the whole response
// body before reporting.
type HTTP struct {
	c      *http.Client
	logger *slog.Logger
}

// New builds an HTTP transport. Without options a fresh *http.Client
// over [http.DefaultTransport] is used.
func New(optFns ...Option) (*HTTP, error) {
	h := &HTTP{
		c:      &http.Client{},
		logger: slog.Default(),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	if opts.client != nil {
		h.c = opts.client
	}

	if opts.logger != nil {
		h.logger = opts.logger
	}

	if opts.timeout != nil {
		h.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		h.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		rt = opts.client.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	if opts.throttle != nil {
		paced, err := throttle.New(*opts.throttle, func() *slog.Logger { return h.logger }, rt)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		rt = paced
	}
	h.c.Transport = rt

	return h, nil
}

// Submit implements [Transport].
func (h *HTTP) Submit(req *http.Request, done Completion) {
	go func() {
		body, resp, err := h.roundTrip(req)
		done(body, resp, err)
	}()
}

// roundTrip executes req and drains the response. Errors from the
// client are returned as they are so callers can inspect them.
func (h *HTTP) roundTrip(req *http.Request) ([]byte, *http.Response, error) {
	resp, err := h.c.Do(req)
	if err != nil {
		return nil, nil, err
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}

	return body, resp, nil
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
