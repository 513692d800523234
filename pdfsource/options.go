package pdfsource

import "log/slog"

// Option configures Open, NewDocument and FromBytes
type Option func(*config)

type config struct {
	validate bool
	logger   *slog.Logger
}

// WithValidation checks the file structure with pdfcpu before reading it.
// It only applies to Open.
func WithValidation(enabled bool) Option {
	return func(c *config) {
		c.validate = enabled
	}
}

// WithLogger sets the logger used to report objects that are read in a
// degraded way, such as fonts whose encoding cannot be resolved
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func buildConfig(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}
