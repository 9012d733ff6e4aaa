// Package transport defines the callback-based transport capability the
// apibase layer submits prepared requests to, and provides a default
// implementation on top of [net/http].
//
// A [Transport] receives a prepared [*http.Request] and must invoke the
// given [Completion] exactly once, either with the received bytes and
// response, or with an error:
//
//	tr, err := transport.New(
//		transport.WithTimeout(10*time.Second),
//		transport.WithUserAgent("myapp/1.0"),
//		transport.WithThrottle(10, 5),
//	)
//	tr.Submit(req, func(body []byte, resp *http.Response, err error) {
//		// called once
//	})
//
// Plain functions can serve as a transport through [Func], which is
// handy for tests.
package transport
