package content

import (
	"fmt"

	"github.com/tsawler/pdfstruct/model"
)

// StreamData is a Stream held in memory
type StreamData struct {
	Mat  model.Matrix
	Res  Resources
	Data []byte
}

func (s *StreamData) Matrix() model.Matrix {
	if s.Mat == (model.Matrix{}) {
		return model.Identity()
	}
	return s.Mat
}

func (s *StreamData) Resources() Resources     { return s.Res }
func (s *StreamData) Content() ([]byte, error) { return s.Data, nil }

// PageData is a Page held in memory
type PageData struct {
	StreamData
	Crop model.Rectangle
}

func (p *PageData) CropBox() model.Rectangle { return p.Crop }

// DocumentData is a Document held in memory
type DocumentData struct {
	Pages []Page
}

func (d *DocumentData) NumPages() int { return len(d.Pages) }

func (d *DocumentData) Page(number int) (Page, error) {
	if number < 1 || number > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range [1, %d]", number, len(d.Pages))
	}
	return d.Pages[number-1], nil
}

// ResourceMap is a Resources held in memory
type ResourceMap struct {
	Fonts       map[string]Font
	XObjects    map[string]XObject
	ColorSpaces map[string]*ColorSpace
}

func (r ResourceMap) Font(name string) (Font, error) {
	if f, ok := r.Fonts[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("font %q: %w", name, ErrNotFound)
}

func (r ResourceMap) XObject(name string) (XObject, error) {
	if x, ok := r.XObjects[name]; ok {
		return x, nil
	}
	return nil, fmt.Errorf("xobject %q: %w", name, ErrNotFound)
}

func (r ResourceMap) ColorSpace(name string) (*ColorSpace, error) {
	if cs, ok := r.ColorSpaces[name]; ok {
		return cs, nil
	}
	return nil, fmt.Errorf("color space %q: %w", name, ErrNotFound)
}

// FormXObject wraps a stream as a form XObject
type FormXObject struct {
	Stream Stream
}

func (f *FormXObject) Subtype() string        { return "Form" }
func (f *FormXObject) Form() (Stream, bool)   { return f.Stream, true }
func (f *FormXObject) Image() (*Image, error) { return nil, fmt.Errorf("form xobject is not an image") }

// ImageXObject wraps an Image as an XObject
type ImageXObject struct {
	Img *Image
	Err error
}

func (i *ImageXObject) Subtype() string        { return "Image" }
func (i *ImageXObject) Form() (Stream, bool)   { return nil, false }
func (i *ImageXObject) Image() (*Image, error) { return i.Img, i.Err }
