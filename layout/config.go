package layout

import "github.com/tsawler/pdfstruct/model"

// Config holds the thresholds of the tokenizers
type Config struct {
	// WordGapFactor is the horizontal gap between two characters, as a
	// fraction of the line's most common font size, above which they
	// belong to different words (default: 0.15)
	WordGapFactor float64

	// ColumnGapFactor is the minimum width of a vertical lane separating
	// text areas, in multiples of the page's most common character width
	// (default: 1.5)
	ColumnGapFactor float64

	// AreaGapFactor is the minimum height of a horizontal lane separating
	// text areas, in multiples of the page's most common character height
	// (default: 1.5)
	AreaGapFactor float64

	// Tolerance is the slack, in points, of the block rules when comparing
	// pitches and left edges (default: 1.0)
	Tolerance float64

	// Precision is the number of decimals line pitches are rounded to
	// (default: 2)
	Precision int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		WordGapFactor:   0.15,
		ColumnGapFactor: 1.5,
		AreaGapFactor:   1.5,
		Tolerance:       1.0,
		Precision:       model.DefaultPrecision,
	}
}
