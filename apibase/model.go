package apibase

import (
	"io"
	"net/http"
)

// Method is the HTTP method of a request. The zero value means GET.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

func (m Method) orDefault() Method {
	if m == "" {
		return MethodGet
	}
	return m
}

// String returns the wire form of the method.
func (m Method) String() string {
	return string(m.orDefault())
}

// Descriptor describes a single HTTP call. It is built by the caller for
// each call and passed by value; nothing in this package modifies it.
type Descriptor struct {
	// BaseURL is an optional absolute origin Path is resolved against.
	BaseURL string `json:"baseURL"`
	// Path is used as the URL path as given.
	Path   string `json:"path"`
	Method Method `json:"method" validate:"oneof=GET POST PUT PATCH DELETE"`
	// Query is encoded in order; repeated names are kept.
	Query       []QueryItem `json:"query"`
	ContentType string      `json:"contentType"`
	// Body wins over BodyStream when both are set. A non-nil empty
	// slice is sent as an empty body.
	Body       []byte      `json:"-"`
	BodyStream *BodyStream `json:"bodyStream"`
}

// QueryItem is one name/value pair of a query string.
type QueryItem struct {
	Name  string
	Value string
}

// Query is shorthand for a QueryItem literal.
func Query(name, value string) QueryItem {
	return QueryItem{Name: name, Value: value}
}

// BodyStream is a request body read from Reader, whose length is
// declared up front as Size bytes.
type BodyStream struct {
	Reader io.Reader `json:"reader" validate:"required"`
	Size   int64     `json:"size" validate:"gte=0"`
}
