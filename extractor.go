package pdfstruct

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/interpreter"
	"github.com/tsawler/pdfstruct/layout"
	"github.com/tsawler/pdfstruct/model"
	"github.com/tsawler/pdfstruct/pdfsource"
)

// Extractor provides a fluent interface for extracting the structure of a
// PDF. Each configuration method returns a new Extractor instance, so a
// configured Extractor can be reused as a template.
type Extractor struct {
	// Source
	filename string
	source   content.Document

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if source has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureSource opens the file if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	doc, err := pdfsource.Open(e.filename,
		pdfsource.WithValidation(e.options.validate),
		pdfsource.WithLogger(e.options.log()))
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.source = doc
	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if !e.ownsSource {
		return nil
	}
	e.ownsSource = false
	e.sourceOpened = false
	if doc, ok := e.source.(*pdfsource.Document); ok {
		e.source = nil
		return doc.Close()
	}
	e.source = nil
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := pdfstruct.Open("doc.pdf").Pages(1, 3, 5).Document()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	text, _, err := pdfstruct.Open("doc.pdf").PageRange(5, 10).Text()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Layout replaces the tokenizer thresholds.
//
// Example:
//
//	cfg := layout.DefaultConfig()
//	cfg.ColumnGapFactor = 3
//	doc, _, err := pdfstruct.Open("doc.pdf").Layout(cfg).Document()
func (e *Extractor) Layout(cfg layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layout = cfg
	return newExt
}

// Logger sets the structured logger used while interpreting pages.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// Validate checks the file structure with pdfcpu before reading it.
// It has no effect on extractors created with FromDocument.
func (e *Extractor) Validate() *Extractor {
	newExt := e.clone()
	newExt.options.validate = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// PageCount returns the number of pages in the document.
// Note: This does NOT close the source, allowing further operations.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.source.NumPages(), nil
}

// Document interprets the configured pages and runs the layout pipeline.
// This is a terminal operation that closes the underlying file.
//
// Returns the document, the recoverable problems met while interpreting
// content streams, and an error if the file could not be read.
//
// Example:
//
//	doc, warnings, err := pdfstruct.Open("document.pdf").Document()
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pages, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	log := e.options.log()
	engine := interpreter.New(
		interpreter.WithPages(pages...),
		interpreter.WithPrecision(e.options.layout.Precision),
		interpreter.WithLogger(log),
	)
	doc, err := engine.Parse(e.source)
	if err != nil {
		return nil, nil, err
	}
	doc.Path = e.filename

	layout.NewTokenizerWithConfig(e.options.layout).TokenizeDocument(doc)

	e.warnings = append(e.warnings, engine.Warnings()...)
	log.Debug("document extracted",
		"path", e.filename,
		"pages", doc.PageCount(),
		"warnings", len(e.warnings))
	return doc, e.warnings, nil
}

// Text returns the text of the configured pages: blocks separated by blank
// lines, lines within a block by newlines and pages by form feeds.
// This is a terminal operation that closes the underlying file.
//
// Example:
//
//	text, warnings, err := pdfstruct.Open("document.pdf").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", nil, err
	}
	return doc.Text(), warnings, nil
}

// Blocks returns the text blocks of the configured pages in reading order.
// This is a terminal operation that closes the underlying file.
//
// Example:
//
//	blocks, _, err := pdfstruct.Open("document.pdf").Blocks()
//	for _, b := range blocks {
//	    fmt.Printf("%v\n%s\n\n", b.Rect(), b.Text)
//	}
func (e *Extractor) Blocks() ([]*model.TextBlock, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, nil, err
	}
	var blocks []*model.TextBlock
	for _, p := range doc.Pages {
		blocks = append(blocks, p.TextBlocks...)
	}
	return blocks, warnings, nil
}

// Lines returns the text lines of the configured pages in reading order.
// This is a terminal operation that closes the underlying file.
func (e *Extractor) Lines() ([]*model.TextLine, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, nil, err
	}
	var lines []*model.TextLine
	for _, p := range doc.Pages {
		lines = append(lines, p.TextLines...)
	}
	return lines, warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolvePages validates the page selection and returns it sorted without
// duplicates. An empty selection means all pages and returns nil.
func (e *Extractor) resolvePages() ([]int, error) {
	if len(e.options.pages) == 0 {
		return nil, nil
	}
	pageCount := e.source.NumPages()

	seen := make(map[int]bool)
	var pages []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages, nil
}

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.Error()
	}
	return strings.Join(lines, "\n")
}
