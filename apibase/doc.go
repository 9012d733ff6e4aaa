// Package apibase builds HTTP requests from declarative descriptions,
// sends them through a callback-based [transport.Transport], and checks
// and decodes the responses.
//
// # Describing a Call
//
// A [Descriptor] holds the method, base URL, path, ordered query items,
// content type and body (or body stream) of one call:
//
//	d := apibase.Descriptor{
//		BaseURL: "https://api.example.com",
//		Path:    "/v1/search",
//		Query:   []apibase.QueryItem{apibase.Query("q", "a+b c")},
//	}
//	// https://api.example.com/v1/search?q=a%2Bb%20c
//
// Query strings keep item order and never leave '+' unescaped.
//
// # Sending
//
// [Build] a [Client] and call [Client.Do], or assemble with [Prepare] and
// send with [Client.Send]:
//
//	c, err := apibase.Build(apibase.WithTransportOptions(transport.WithTimeout(10 * time.Second)))
//	resp, err := c.Do(ctx, d)
//
// Transport errors reach the caller unchanged.
//
// # Checking Responses
//
// [Response.ValidateStatusCode] and [Response.HasContentType] pass a
// response through or fail with a [ResponseError] that keeps the response.
// [Chain] composes them as [Step] values and [Decode] ends a chain:
//
//	user, err := apibase.Expect[User](resp, err, apibase.JSONDecoder{},
//		apibase.StatusCode(apibase.StatusRange(200, 300)...),
//		apibase.ContentType("application/json"),
//	)
//
// # Endpoint Types
//
// [Request] is the contract of one type per endpoint; embedding [Base]
// provides everything except Start.
package apibase
