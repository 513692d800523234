package pdfstruct

import (
	"log/slog"

	"github.com/tsawler/pdfstruct/layout"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Page selection (1-indexed)
	pages []int

	// Layout thresholds; Precision also rounds interpreter coordinates
	layout layout.Config

	// Processing options
	validate bool
	logger   *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:    nil, // nil means all pages
		layout:   layout.DefaultConfig(),
		validate: false,
		logger:   nil, // nil means slog.Default()
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		layout:   o.layout,
		validate: o.validate,
		logger:   o.logger,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

func (o ExtractOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}
