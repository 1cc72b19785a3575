package lr

import (
	"github.com/npillmayer/schuko/gconf"
)

// DefaultMaxStates is the ceiling for the number of automaton states, if neither
// an option nor the configuration set a different value.
const DefaultMaxStates = 10000

// Option configures automaton and table construction.
type Option func(*options)

type options struct {
	maxStates int
}

// WithMaxStates sets the maximum number of states an automaton may have.
// Construction fails with a BuildError of kind ResourceExceeded beyond it.
// Values < 1 are ignored.
func WithMaxStates(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxStates = n
		}
	}
}

func makeOptions(opts []Option) options {
	o := options{maxStates: configuredMaxStates()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// configuredMaxStates reads key "lr.max-states" from the global configuration.
func configuredMaxStates() int {
	if n := gconf.GetInt("lr.max-states"); n > 0 {
		return n
	}
	return DefaultMaxStates
}
