package transport

import "net/http"

// Completion receives the outcome of one submission. On success body holds
// the full response payload (possibly nil) and resp carries the status line
// and headers; resp.Body has already been drained and closed. On failure
// only err is set.
type Completion func(body []byte, resp *http.Response, err error)

// Transport submits prepared requests. Implementations must call done
// exactly once per Submit, from any goroutine. Cancellation and timeouts are
// taken from the request's context and the implementation's own
// configuration.
type Transport interface {
	Submit(req *http.Request, done Completion)
}

// Func adapts an ordinary function to the [Transport] interface.
type Func func(req *http.Request, done Completion)

// Submit calls f(req, done).
func (f Func) Submit(req *http.Request, done Completion) {
	f(req, done)
}
