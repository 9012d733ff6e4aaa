// Package stub serves canned HTTP responses for tests and records every
// request it receives, so callers can assert on the exact wire form of
// what they sent.
package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
)

// Handler is a http.Handler that returns an error.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Middleware defines a signature to chain Handler together.
type Middleware func(handler Handler) Handler

// Recorded is a request as the server received it.
type Recorded struct {
	Method string
	// RequestURI is the unmodified request target, raw query included.
	RequestURI string
	Header     http.Header
	Body       []byte
}

// Server is an httptest.Server with per-route canned handlers.
type Server struct {
	*httptest.Server

	mux      *http.ServeMux
	globalMW []Middleware
	mw       []Middleware
	log      *slog.Logger

	mu       sync.Mutex
	requests []Recorded
}

// New starts a Server that is closed when the test ends.
func New(t testing.TB, optFns ...func(*Options)) *Server {
	t.Helper()

	var opts Options
	for _, opt := range optFns {
		opt(&opts)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		globalMW: opts.globalMW,
		log:      slog.New(slog.DiscardHandler),
	}
	if opts.log != nil {
		s.log = opts.log
	}

	s.Server = httptest.NewServer(s)
	t.Cleanup(s.Close)

	return s
}

// Use appends route middleware applied to handlers registered afterwards.
func (s *Server) Use(mw ...Middleware) {
	s.mw = append(s.mw, mw...)
}

// Handle registers h for method and path. An empty method matches any.
func (s *Server) Handle(method, path string, h Handler, mw ...Middleware) {
	h = wrap(mw, h)
	h = wrap(s.mw, h)

	pattern := path
	if method != "" {
		pattern = fmt.Sprintf("%s %s", method, path)
	}

	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.log.Error("stub handle", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
}

func (s *Server) Get(path string, h Handler, mw ...Middleware) {
	s.Handle(http.MethodGet, path, h, mw...)
}

func (s *Server) Post(path string, h Handler, mw ...Middleware) {
	s.Handle(http.MethodPost, path, h, mw...)
}

func (s *Server) Put(path string, h Handler, mw ...Middleware) {
	s.Handle(http.MethodPut, path, h, mw...)
}

func (s *Server) Patch(path string, h Handler, mw ...Middleware) {
	s.Handle(http.MethodPatch, path, h, mw...)
}

func (s *Server) Delete(path string, h Handler, mw ...Middleware) {
	s.Handle(http.MethodDelete, path, h, mw...)
}

// ServeHTTP records the request, then runs it through the global
// middleware and the route handlers.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.log.Error("stub read body", "error", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:     r.Method,
		RequestURI: r.RequestURI,
		Header:     r.Header.Clone(),
		Body:       body,
	})
	s.mu.Unlock()

	serveHTTP := func(w http.ResponseWriter, r *http.Request) error {
		s.mux.ServeHTTP(w, r)
		return nil
	}
	wrapped := wrap(s.globalMW, serveHTTP)

	if err := wrapped(w, r); err != nil {
		s.log.Error("stub serve http", "error", err)
	}
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// Last returns the most recent request. It reports false if none arrived.
func (s *Server) Last() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Respond returns a Handler writing the given status, headers and body.
func Respond(status int, header map[string]string, body []byte) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range header {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)

		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("writing body: %w", err)
		}
		return nil
	}
}

// JSON returns a Handler writing v as an application/json body.
func JSON(status int, v any) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return Respond(status, map[string]string{"Content-Type": "application/json"}, b)(w, r)
	}
}

// wrap middleware around the handler and execute in order given.
func wrap(mw []Middleware, handler Handler) Handler {
	for _, mwFn := range slices.Backward(mw) {
		if mwFn != nil {
			handler = mwFn(handler)
		}
	}

	return handler
}
