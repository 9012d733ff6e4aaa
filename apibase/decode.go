package apibase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decoder turns raw response bytes into the value v points to.
type Decoder interface {
	Decode(data []byte, v any) error
}

// DecoderFunc adapts an ordinary function to the [Decoder] interface.
type DecoderFunc func(data []byte, v any) error

// Decode calls f(data, v).
func (f DecoderFunc) Decode(data []byte, v any) error {
	return f(data, v)
}

// JSONDecoder decodes JSON and then enforces the target's `validate` struct
// tags, so a payload missing a required field is an error rather than a
// zero value.
type JSONDecoder struct {
	// UseNumber keeps numbers as [json.Number] instead of float64.
	UseNumber bool
	// DisallowUnknownFields rejects object keys the target does not declare.
	DisallowUnknownFields bool
}

// Decode implements [Decoder].
func (d JSONDecoder) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if d.UseNumber {
		dec.UseNumber()
	}
	if d.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decoding json: unexpected data after top-level value")
	}

	if err := check(v); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}

	return nil
}

// Decode is the terminal step of a response chain: it decodes r.Body into
// a T with dec. Decoder errors are returned as they are.
func Decode[T any](r *Response, dec Decoder) (T, error) {
	var v T
	if err := dec.Decode(r.Body, &v); err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

// Expect runs the steps over the outcome of a call and decodes the
// surviving response into a T:
//
//	resp, err := c.Do(ctx, d)
//	user, err := apibase.Expect[User](resp, err, apibase.JSONDecoder{},
//		apibase.StatusCode(http.StatusOK),
//		apibase.ContentType("application/json"),
//	)
func Expect[T any](r *Response, err error, dec Decoder, steps ...Step) (T, error) {
	r, err = Chain(r, err, steps...)
	if err != nil {
		var zero T
		return zero, err
	}

	return Decode[T](r, dec)
}
