package apibase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// BodyEncoder derives the request body bytes from a Descriptor. A nil
// result with a nil error means the encoder has no body to offer, in
// which case the Descriptor's BodyStream, if any, is used.
type BodyEncoder func(ctx context.Context, d Descriptor) ([]byte, error)

// PassthroughBody is the default BodyEncoder: it returns d.Body unchanged.
func PassthroughBody(_ context.Context, d Descriptor) ([]byte, error) {
	return d.Body, nil
}

// JSONBody returns a BodyEncoder that sends v encoded as JSON. The
// Descriptor's ContentType still decides the Content-Type header.
func JSONBody(v any) BodyEncoder {
	return func(context.Context, Descriptor) ([]byte, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding json payload: %w", err)
		}
		return b, nil
	}
}

// Prepare assembles the wire request described by d. The body source is
// picked in order: bytes from the BodyEncoder, then d.BodyStream, then none.
// Content-Type and Content-Length are only set when a body is sent.
func Prepare(ctx context.Context, d Descriptor, opts ...RequestOption) (*http.Request, error) {
	settings := requestOpts{encoder: PassthroughBody}
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}

	d.Method = d.Method.orDefault()
	if err := check(d); err != nil {
		return nil, errors.Join(ErrInvalidDescriptor, err)
	}

	u, err := BuildURL(d.BaseURL, d.Path, d.Query)
	if err != nil {
		return nil, err
	}

	body, err := settings.encoder(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("encoding body: %w", err)
	}

	var req *http.Request
	switch {
	case body != nil:
		req, err = http.NewRequestWithContext(ctx, d.Method.String(), u.String(), bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
		setBodyHeaders(req, d.ContentType, int64(len(body)))

	case d.BodyStream != nil:
		req, err = http.NewRequestWithContext(ctx, d.Method.String(), u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
		rc, ok := d.BodyStream.Reader.(io.ReadCloser)
		if !ok {
			rc = io.NopCloser(d.BodyStream.Reader)
		}
		req.Body = rc
		req.ContentLength = d.BodyStream.Size
		setBodyHeaders(req, d.ContentType, d.BodyStream.Size)

	default:
		req, err = http.NewRequestWithContext(ctx, d.Method.String(), u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
	}

	return req, nil
}

// setBodyHeaders records the body's type and exact length. An empty
// content type leaves the header unset.
func setBodyHeaders(req *http.Request, contentType string, size int64) {
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Content-Length", strconv.FormatInt(size, 10))
}
