package interpreter

import (
	"log/slog"

	"github.com/tsawler/pdfstruct/model"
)

// LevelTrace is below slog.LevelDebug. Unsupported operators are logged
// at this level.
const LevelTrace = slog.Level(-8)

// Listener receives lifecycle callbacks while a document is parsed
type Listener interface {
	StartDocument(doc *model.Document)
	StartPage(page *model.Page)
	EndPage(page *model.Page)
	EndDocument(doc *model.Document)
}

// NopListener ignores all callbacks. Embed it to implement only some of
// them.
type NopListener struct{}

func (NopListener) StartDocument(*model.Document) {}
func (NopListener) StartPage(*model.Page)         {}
func (NopListener) EndPage(*model.Page)           {}
func (NopListener) EndDocument(*model.Document)   {}

// Config holds the engine settings. The zero value is not usable; build it
// with the Option functions passed to New.
type Config struct {
	Pages     []int        // 1-based page numbers; empty means all pages
	Precision int          // decimal places of emitted rectangles
	Logger    *slog.Logger // nil means slog.Default()
	Listener  Listener
	Handlers  map[string]Handler
	// MaxNesting bounds the depth of nested forms and glyph procedures
	MaxNesting int
}

// Option mutates a Config
type Option func(*Config)

// WithPages restricts parsing to the given 1-based pages
func WithPages(p ...int) Option {
	cp := append([]int(nil), p...)
	return func(c *Config) { c.Pages = cp }
}

// WithPrecision sets the number of decimals coordinates are rounded to
func WithPrecision(n int) Option {
	return func(c *Config) { c.Precision = n }
}

// WithLogger injects a slog.Logger (slog.Default when nil)
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithListener registers lifecycle callbacks
func WithListener(l Listener) Option {
	return func(c *Config) { c.Listener = l }
}

// WithHandler adds or replaces the handler of an operator
func WithHandler(op string, h Handler) Option {
	return func(c *Config) {
		if c.Handlers == nil {
			c.Handlers = make(map[string]Handler, 1)
		}
		c.Handlers[op] = h
	}
}

// WithMaxNesting overrides the nesting limit for forms and glyph procedures
func WithMaxNesting(n int) Option {
	return func(c *Config) { c.MaxNesting = n }
}

func buildConfig(opts ...Option) *Config {
	cfg := &Config{
		Precision:  model.DefaultPrecision,
		Logger:     slog.Default(),
		Listener:   NopListener{},
		MaxNesting: 32,
	}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Listener == nil {
		cfg.Listener = NopListener{}
	}
	return cfg
}

func (c *Config) wantPage(n int) bool {
	if len(c.Pages) == 0 {
		return true
	}
	for _, p := range c.Pages {
		if p == n {
			return true
		}
	}
	return false
}
