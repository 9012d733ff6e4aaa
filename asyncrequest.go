// Package asyncrequest exposes the client builder.
//
// Endpoints are described with [apibase.Descriptor] values, sent through a
// callback-based [transport.Transport] and checked with the steps in
// package apibase.
package asyncrequest

import (
	"github.com/adamwoolhether/asyncrequest/apibase"
	"github.com/adamwoolhether/asyncrequest/transport"
)

// NewClient instantiates a new *apibase.Client with the provided options.
// If no transport is given, a [transport.HTTP] with the default
// http.Client is used.
func NewClient(opts ...apibase.Option) (*apibase.Client, error) {
	return apibase.Build(opts...)
}

// NewTransport builds the default HTTP transport, for callers that share
// one between several clients.
func NewTransport(opts ...transport.Option) (*transport.HTTP, error) {
	return transport.New(opts...)
}
