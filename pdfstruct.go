// Package pdfstruct reconstructs the reading structure of PDF pages:
// characters, words, text lines and text blocks, together with the figures
// and shapes drawn around them.
//
// Basic usage:
//
//	doc, warnings, err := pdfstruct.Open("paper.pdf").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfstruct.FormatWarnings(warnings))
//	}
//	for _, block := range doc.Pages[0].TextBlocks {
//	    fmt.Println(block.Text)
//	}
//
// With options:
//
//	text, _, err := pdfstruct.Open("paper.pdf").
//	    Pages(1, 2).
//	    Logger(slog.Default()).
//	    Text()
//
// The interpreter, layout and pdfsource packages can be used directly for
// finer control.
package pdfstruct

import (
	"github.com/tsawler/pdfstruct/content"
)

// Open returns an Extractor for the PDF file at filename. The file is opened
// by the first terminal operation and closed when it returns.
//
// Example:
//
//	text, warnings, err := pdfstruct.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already opened document.
// The caller is responsible for closing it.
//
// Example:
//
//	src, err := pdfsource.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	doc, _, err := pdfstruct.FromDocument(src).Document()
func FromDocument(src content.Document) *Extractor {
	return &Extractor{
		source:       src,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdfstruct.Must(pdfstruct.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Document() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := pdfstruct.MustText(pdfstruct.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
