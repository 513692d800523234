// Package layout groups the characters of a page into text areas, lines,
// words and text blocks.
//
// This package works on the flat character stream produced by the
// interpreter package and rebuilds the reading structure of each page.
//
// # XY-Cut
//
// [XYCut] recursively splits a set of elements at empty lanes. Each axis
// has its own scoring function; a cut is only made where a score is
// positive. The same engine is used twice:
//
//   - per page, to split characters into text areas (columns and
//     separated regions)
//   - per area, to split characters into text lines (horizontal cuts only)
//
// # Text Blocks
//
// Lines are grouped into blocks in a single pass. A new block starts when a
// line does not overlap the current block, when the line pitch grows, on
// indented paragraph starts, on font changes and at reference anchors such
// as "[12] ".
//
// # Usage
//
//	t := layout.NewTokenizer()
//	t.TokenizeDocument(doc)
//	for _, block := range doc.Pages[0].TextBlocks {
//		fmt.Println(block.Text)
//	}
//
// # Configuration
//
// Thresholds are relative to the typography of the page:
//
//	config := layout.DefaultConfig()
//	config.WordGapFactor = 0.2
//	t := layout.NewTokenizerWithConfig(config)
package layout
