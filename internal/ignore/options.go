package ignore

import "github.com/upsuper/deja-dup-auto-ignore/internal/utils"

// Option functions for configuration
type Option func(*Matcher)

func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFileName changes the rule file name looked up by Load
func WithFileName(name string) Option {
	return func(m *Matcher) {
		if name != "" {
			m.fileName = name
		}
	}
}
