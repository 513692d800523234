package layout

import (
	"github.com/tsawler/pdfstruct/model"
	"github.com/tsawler/pdfstruct/stats"
)

// Tokenizer rebuilds text areas, lines, words and blocks from characters
type Tokenizer struct {
	config Config
}

// NewTokenizer creates a tokenizer with default configuration
func NewTokenizer() *Tokenizer {
	return &Tokenizer{config: DefaultConfig()}
}

// NewTokenizerWithConfig creates a tokenizer with custom configuration
func NewTokenizerWithConfig(config Config) *Tokenizer {
	return &Tokenizer{config: config}
}

// Config returns the configuration in use
func (t *Tokenizer) Config() Config {
	return t.config
}

// pageLayout is the intermediate result of the area and line passes
type pageLayout struct {
	areaLines [][]*model.TextLine
}

// TokenizeDocument tokenizes every page of doc. The document-wide line
// statistic gathered from all pages is the expectation the block rules
// compare pitches against.
func (t *Tokenizer) TokenizeDocument(doc *model.Document) {
	layouts := make([]pageLayout, len(doc.Pages))
	charStats := make([]*model.CharacterStatistic, 0, len(doc.Pages))
	var lineStats []*model.TextLineStatistic

	for i, page := range doc.Pages {
		layouts[i] = t.tokenizeLines(page)
		charStats = append(charStats, page.CharacterStatistic)
		for _, lines := range layouts[i].areaLines {
			lineStats = append(lineStats, stats.Lines(lines))
		}
	}
	doc.CharacterStatistic = stats.CombineCharacters(charStats...)
	doc.TextLineStatistic = stats.CombineLines(lineStats...)

	for _, page := range doc.Pages {
		t.tokenizeBlocks(page, doc.TextLineStatistic)
	}
}

// TokenizePage tokenizes a single page. When expected is nil the line
// pitches of the page itself are used. Calling it again on the same page
// gives the same result.
func (t *Tokenizer) TokenizePage(page *model.Page, expected *model.TextLineStatistic) {
	pl := t.tokenizeLines(page)
	if expected == nil {
		lineStats := make([]*model.TextLineStatistic, 0, len(pl.areaLines))
		for _, lines := range pl.areaLines {
			lineStats = append(lineStats, stats.Lines(lines))
		}
		expected = stats.CombineLines(lineStats...)
	}
	t.tokenizeBlocks(page, expected)
}

// tokenizeLines runs the area and line passes
func (t *Tokenizer) tokenizeLines(page *model.Page) pageLayout {
	page.CharacterStatistic = stats.Characters(page.Characters)
	page.TextAreas = t.textAreas(page, page.CharacterStatistic)
	page.TextLines = nil

	var pl pageLayout
	for _, area := range page.TextAreas {
		lines := t.textLines(page, area)
		pl.areaLines = append(pl.areaLines, lines)
		page.TextLines = append(page.TextLines, lines...)
	}
	return pl
}

func (t *Tokenizer) tokenizeBlocks(page *model.Page, expected *model.TextLineStatistic) {
	page.TextBlocks = t.textBlocks(page, page.TextLines, expected)
	lineStats := make([]*model.TextLineStatistic, len(page.TextBlocks))
	for i, b := range page.TextBlocks {
		lineStats[i] = b.LineStatistic
	}
	page.TextLineStatistic = stats.CombineLines(lineStats...)
}
