package apibase

import (
	"context"
	"net/http"
)

// Request is implemented by one type per endpoint. Start performs the
// whole call, usually Prepare, Send, a chain of checks and a Decode, and
// returns the endpoint's result.
type Request[T any] interface {
	Method() Method
	Path() string
	Start(ctx context.Context) (T, error)
}

// Base carries the machinery an endpoint type embeds to satisfy most of
// [Request]; the endpoint supplies Start.
//
//	type getUser struct {
//		apibase.Base
//	}
//
//	func (g *getUser) Start(ctx context.Context) (User, error) {
//		resp, err := g.SendRequest(ctx)
//		return apibase.Expect[User](resp, err, apibase.JSONDecoder{}, apibase.StatusCode(http.StatusOK))
//	}
type Base struct {
	Client     *Client
	Descriptor Descriptor
	// Encoder overrides how the body bytes are derived; nil means
	// PassthroughBody.
	Encoder BodyEncoder
}

// Method returns the descriptor's method, GET when unset.
func (b *Base) Method() Method {
	return b.Descriptor.Method.orDefault()
}

// Path returns the descriptor's path.
func (b *Base) Path() string {
	return b.Descriptor.Path
}

// BuildRequest assembles the prepared request without sending it.
func (b *Base) BuildRequest(ctx context.Context) (*http.Request, error) {
	return Prepare(ctx, b.Descriptor, WithBodyEncoder(b.Encoder))
}

// SendRequest assembles and sends the request, returning the raw response.
func (b *Base) SendRequest(ctx context.Context) (*Response, error) {
	return b.Client.Do(ctx, b.Descriptor, WithBodyEncoder(b.Encoder))
}
