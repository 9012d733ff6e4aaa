package stub

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// Logger logs each request the stub serves.
func Logger(log *slog.Logger) Middleware {
	m := func(handler Handler) Handler {
		h := func(w http.ResponseWriter, r *http.Request) error {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.Info("request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			err := handler(w, r)

			log.Info("request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr, "since", time.Since(now).String())

			return err
		}

		return h
	}

	return m
}

// Delay holds each response for d.
func Delay(d time.Duration) Middleware {
	return func(handler Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return r.Context().Err()
			}
			return handler(w, r)
		}
	}
}

// Panics turns a panicking handler into a handler error, so the stub
// answers 500 instead of dropping the connection.
func Panics() Middleware {
	return func(handler Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("PANIC [%v] TRACE[%s]", rec, debug.Stack())
				}
			}()

			return handler(w, r)
		}
	}
}
