package apibase

import (
	"errors"
	"fmt"
)

// maxErrBodySize caps the amount of response body echoed
// by ResponseError.Error.
const maxErrBodySize = 4 << 10 // 4KB

var (
	// ErrInvalidURL is returned when a Descriptor cannot form a URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidDescriptor is joined with the FieldErrors of a Descriptor
	// that fails validation.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrNonHTTPResponse is returned when the transport reports a reply
	// without an HTTP status line.
	ErrNonHTTPResponse = errors.New("non-http response")
	// ErrRequestFailed is the sentinel wrapped by [ResponseError] when the
	// status code is not among the accepted ones.
	ErrRequestFailed = errors.New("request failed")
	// ErrAuthFailure is joined with [ErrRequestFailed] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrContentTypeMismatch is the sentinel wrapped by [ResponseError] when
	// the response carries an unexpected Content-Type.
	ErrContentTypeMismatch = errors.New("content type mismatch")
	// ErrCompletedTwice is the panic value raised when a transport invokes
	// its completion more than once.
	ErrCompletedTwice = errors.New("transport completion invoked more than once")
)

// ResponseError is returned by the validation steps. It keeps the whole
// response so callers can log or render the server's error payload.
type ResponseError struct {
	Response *Response
	Err      error
}

func (e *ResponseError) Error() string {
	body := e.Response.Body
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}

	return fmt.Sprintf("%v: %d, content-type: %q, body: %s", e.Err, e.Response.StatusCode, e.Response.Header.Get("Content-Type"), body)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// GetResponse returns the response carried by a [ResponseError] in err's
// chain, or nil if there is none.
func GetResponse(err error) *Response {
	var re *ResponseError
	if !errors.As(err, &re) {
		return nil
	}

	return re.Response
}
