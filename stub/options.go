package stub

import "log/slog"

// Options represents optional parameters.
type Options struct {
	globalMW []Middleware
	log      *slog.Logger
}

// WithGlobalMiddleware wraps every request, routed or not.
func WithGlobalMiddleware(mw ...Middleware) func(opts *Options) {
	return func(opts *Options) {
		opts.globalMW = append(opts.globalMW, mw...)
	}
}

// WithLogger sets the logger handler errors are reported to.
func WithLogger(log *slog.Logger) func(opts *Options) {
	return func(opts *Options) {
		opts.log = log
	}
}
