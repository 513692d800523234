// integration.go provides one-call helpers over the Extractor
package pdfstruct

import (
	"github.com/tsawler/pdfstruct/interpreter"
	"github.com/tsawler/pdfstruct/layout"
	"github.com/tsawler/pdfstruct/model"
)

// Warning is a recoverable problem met while interpreting a page. It
// unwraps to the underlying error.
type Warning = interpreter.Warning

// AnalyzeDocument extracts every page of a PDF file with the default
// layout configuration.
//
// Example:
//
//	doc, err := pdfstruct.AnalyzeDocument("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range doc.Pages {
//	    fmt.Printf("Page %d: %d blocks, %d lines\n",
//	        page.Number, len(page.TextBlocks), len(page.TextLines))
//	}
func AnalyzeDocument(path string) (*model.Document, error) {
	return AnalyzeDocumentWithConfig(path, layout.DefaultConfig())
}

// AnalyzeDocumentWithConfig extracts every page with custom layout
// thresholds. Warnings are logged, not returned.
func AnalyzeDocumentWithConfig(path string, config layout.Config) (*model.Document, error) {
	doc, _, err := Open(path).Layout(config).Document()
	return doc, err
}
