// Package model defines the positioned elements, geometry and statistics
// produced by the content-stream interpreter and the layout tokenizers.
//
// # Elements
//
// Every element implements [Element]. The set of variants is closed:
//
//   - [Character] - one glyph with text, [FontFace] and [Color]
//   - [Figure] - raster content
//   - [Shape] - a painted path segment or single-colored image, with [Color]
//   - [Word], [TextLine], [TextArea], [TextBlock] - layout groupings
//
// Capabilities are queried with free functions instead of interfaces:
//
//	if text, ok := model.TextOf(e); ok {
//		fmt.Println(text)
//	}
//
// # Geometry
//
// [Point], [Rectangle], [Line] and [Matrix] use PDF user space, with y
// growing upwards. Matrix follows the PDF [a b c d e f] layout and
// a.Multiply(b) applies a before b.
//
// # Statistics
//
// [CharacterStatistic] and [TextLineStatistic] are bundles of frequency
// counters. They are built bottom-up (line, block, page, document) with
// Merge, which returns a new value and never revisits elements. Unknown
// measurements (NaN) are never counted.
package model
