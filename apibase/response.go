package apibase

import (
	"errors"
	"net/http"
	"slices"
	"strings"
)

// Response is the raw result of one completed call. Body is never nil.
// A Response is not modified after it is built and may be read from
// several goroutines.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

func newResponse(body []byte, resp *http.Response) *Response {
	if body == nil {
		body = []byte{}
	}

	header := resp.Header
	if header == nil {
		header = http.Header{}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     header,
		Body:       body,
	}
}

// ValidateStatusCode returns r when its status code is one of codes, and
// a [ResponseError] wrapping [ErrRequestFailed] otherwise.
func (r *Response) ValidateStatusCode(codes ...int) (*Response, error) {
	if slices.Contains(codes, r.StatusCode) {
		return r, nil
	}

	err := ErrRequestFailed
	if r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden {
		err = errors.Join(ErrRequestFailed, ErrAuthFailure)
	}

	return nil, &ResponseError{Response: r, Err: err}
}

// HasContentType returns r when its Content-Type is expected, optionally
// followed by a "; charset=" parameter. A response without a body always
// passes. Anything else yields a [ResponseError] wrapping
// [ErrContentTypeMismatch].
func (r *Response) HasContentType(expected string) (*Response, error) {
	if len(r.Body) == 0 {
		return r, nil
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		if ct == expected || strings.HasPrefix(ct, expected+"; charset=") {
			return r, nil
		}
	}

	return nil, &ResponseError{Response: r, Err: ErrContentTypeMismatch}
}

// StatusRange returns the status codes in [lo, hi).
func StatusRange(lo, hi int) []int {
	if hi <= lo {
		return nil
	}

	codes := make([]int, 0, hi-lo)
	for c := lo; c < hi; c++ {
		codes = append(codes, c)
	}
	return codes
}

// Step is one pass-through check of a response chain.
type Step func(*Response) (*Response, error)

// StatusCode is the Step form of [Response.ValidateStatusCode].
func StatusCode(codes ...int) Step {
	return func(r *Response) (*Response, error) {
		return r.ValidateStatusCode(codes...)
	}
}

// ContentType is the Step form of [Response.HasContentType].
func ContentType(expected string) Step {
	return func(r *Response) (*Response, error) {
		return r.HasContentType(expected)
	}
}

// Chain runs steps left to right and stops at the first failure. A non-nil
// err, typically straight from [Client.Do], is returned untouched without
// running any step.
func Chain(r *Response, err error, steps ...Step) (*Response, error) {
	if err != nil {
		return nil, err
	}

	for _, step := range steps {
		if r, err = step(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}
