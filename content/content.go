// Package content declares what the interpreter needs from a PDF object
// model: pages, content streams, resource dictionaries, fonts, images and
// color spaces. Package pdfsource implements it on top of a PDF reader; the
// value types in this package implement it for in-memory documents.
package content

import (
	"errors"

	"github.com/tsawler/pdfstruct/model"
)

// ErrNotFound is returned when a named resource does not exist
var ErrNotFound = errors.New("resource not found")

// Document is a sequence of pages
type Document interface {
	NumPages() int
	// Page returns the page with the given 1-indexed number
	Page(number int) (Page, error)
}

// Stream is a content stream with its own matrix and resources. Pages, form
// XObjects and Type 3 glyph procedures are streams.
type Stream interface {
	Matrix() model.Matrix
	// Resources returns the stream's own resources, or nil to inherit the
	// enclosing ones.
	Resources() Resources
	// Content returns the decoded stream bytes
	Content() ([]byte, error)
}

// Page is the top-level stream of a page
type Page interface {
	Stream
	CropBox() model.Rectangle
}

// Resources resolves names used by content-stream operators
type Resources interface {
	Font(name string) (Font, error)
	XObject(name string) (XObject, error)
	ColorSpace(name string) (*ColorSpace, error)
}

// XObject is either an image or a form
type XObject interface {
	Subtype() string
	// Form returns the form stream when Subtype is "Form"
	Form() (Stream, bool)
	// Image returns the image when Subtype is "Image"
	Image() (*Image, error)
}

// Glyph is one decoded character code
type Glyph struct {
	Code int
	// Text is the Unicode text of the glyph, possibly empty
	Text string
	// Width is the horizontal displacement in text space units, i.e. the
	// glyph-space width already multiplied by the font matrix.
	Width float64
	// SingleByte is true when the code was one byte long. Word spacing only
	// applies to single-byte code 32.
	SingleByte bool
}

// Font decodes strings shown with Tj, TJ, ' and "
type Font interface {
	BaseFont() string
	Type3() bool
	// FontMatrix maps glyph space to text space
	FontMatrix() model.Matrix
	// Ascent and Descent are in glyph space (thousandths of text space for
	// non-Type 3 fonts)
	Ascent() float64
	Descent() float64
	Glyphs(raw []byte) []Glyph
	// CharProc returns the glyph procedure of a Type 3 font
	CharProc(code int) (Stream, bool)
}

// NoResources is the empty resource set used when a stream declares none
var NoResources Resources = ResourceMap{}
