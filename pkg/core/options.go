package core

import "time"

// Options holds per-call settings. The zero value means no request id
// override and no timeout.
type Options struct {
	RequestID string
	Timeout   time.Duration
}

// Option mutates Options for a single call.
type Option func(*Options)

// WithRequestID sends id as the Request-Id header instead of a generated one.
// An empty id is ignored.
func WithRequestID(id string) Option {
	return func(o *Options) {
		o.RequestID = id
	}
}

// WithTimeout bounds the HTTP exchange. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
