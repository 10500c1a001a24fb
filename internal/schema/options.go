package schema

// Option adjusts how a payload is decoded.
type Option func(*options)

type options struct {
	strict bool
}

// Strict rejects fields that the target shape does not declare.
// By default unknown fields are ignored.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
