package pdfsource

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/model"
)

// letter is the page box used when a page declares neither CropBox nor
// MediaBox
var letter = model.NewRectangle(0, 0, 612, 792)

// maxTreeDepth bounds the walk up the page tree for inherited attributes
const maxTreeDepth = 64

// Document is a PDF file read through github.com/ledongthuc/pdf
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	pages  int
	log    *slog.Logger
}

// Ensure Document implements content.Document
var _ content.Document = (*Document)(nil)

// Open opens the PDF file at path. Files that cannot be parsed yield an
// *OpenError wrapping ErrMalformed.
func Open(path string, opts ...Option) (*Document, error) {
	cfg := buildConfig(opts...)

	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	if cfg.validate {
		if _, err := Validate(file); err != nil {
			file.Close()
			return nil, &OpenError{Path: path, Err: err}
		}
	}

	doc, err := newDocument(file, info.Size(), cfg)
	if err != nil {
		file.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	doc.path = path
	doc.file = file
	return doc, nil
}

// NewDocument reads a PDF held by r
func NewDocument(r io.ReaderAt, size int64, opts ...Option) (*Document, error) {
	doc, err := newDocument(r, size, buildConfig(opts...))
	if err != nil {
		return nil, &OpenError{Err: err}
	}
	return doc, nil
}

// FromBytes reads a PDF held in memory
func FromBytes(data []byte, opts ...Option) (*Document, error) {
	return NewDocument(bytes.NewReader(data), int64(len(data)), opts...)
}

func newDocument(r io.ReaderAt, size int64, cfg *config) (*Document, error) {
	doc := &Document{log: cfg.logger}
	err := guard("read", func() error {
		reader, err := pdf.NewReader(r, size)
		if err != nil {
			return err
		}
		doc.reader = reader
		doc.pages = reader.NumPage()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

// Path returns the file path, empty for documents read from memory
func (d *Document) Path() string { return d.path }

// Close releases the underlying file
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// NumPages returns the page count declared by the page tree
func (d *Document) NumPages() int { return d.pages }

// Page returns the page with the given 1-indexed number
func (d *Document) Page(number int) (content.Page, error) {
	if number < 1 || number > d.pages {
		return nil, fmt.Errorf("page %d out of range [1, %d]", number, d.pages)
	}

	var p *page
	err := guard(fmt.Sprintf("page %d", number), func() error {
		pv := d.reader.Page(number)
		if pv.V.IsNull() {
			return fmt.Errorf("page %d: %w", number, ErrMalformed)
		}
		box, ok := rectangleOf(toGo(inherited(pv.V, "CropBox")))
		if !ok {
			box, ok = rectangleOf(toGo(inherited(pv.V, "MediaBox")))
		}
		if !ok {
			box = letter
		}
		rotate := int(numberOr(toGo(inherited(pv.V, "Rotate")), 0))
		m, crop := pageMatrix(box, rotate)
		p = &page{
			stream: stream{v: pv.V, matrix: m, res: newResources(pv.Resources(), d.log)},
			crop:   crop,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// page concatenates its content streams
type page struct {
	stream
	crop model.Rectangle
}

func (p *page) CropBox() model.Rectangle { return p.crop }

func (p *page) Content() ([]byte, error) {
	var data []byte
	err := guard("page contents", func() error {
		contents := p.v.Key("Contents")
		switch contents.Kind() {
		case pdf.Stream:
			b, err := readStream(contents)
			data = b
			return err
		case pdf.Array:
			var buf bytes.Buffer
			for i := 0; i < contents.Len(); i++ {
				b, err := readStream(contents.Index(i))
				if err != nil {
					return fmt.Errorf("contents[%d]: %w", i, err)
				}
				buf.Write(b)
				// streams may split a token; a separator keeps them apart
				buf.WriteByte('\n')
			}
			data = buf.Bytes()
		}
		return nil
	})
	return data, err
}

// inherited looks key up on the page and then its ancestors
func inherited(v pdf.Value, key string) pdf.Value {
	for i := 0; i < maxTreeDepth && !v.IsNull(); i++ {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// pageMatrix returns the matrix mapping default user space to a page space
// whose origin is the lower-left corner of the displayed page, and the
// displayed page box. Rotate is clockwise, in multiples of 90 degrees.
func pageMatrix(box model.Rectangle, rotate int) (model.Matrix, model.Rectangle) {
	w, h := box.Width(), box.Height()
	origin := model.Translate(-box.MinX, -box.MinY)

	rotate = ((rotate % 360) + 360) % 360
	switch int(math.Round(float64(rotate)/90)) % 4 {
	case 1:
		return origin.Multiply(model.NewMatrix(0, -1, 1, 0, 0, w)), model.NewRectangle(0, 0, h, w)
	case 2:
		return origin.Multiply(model.NewMatrix(-1, 0, 0, -1, w, h)), model.NewRectangle(0, 0, w, h)
	case 3:
		return origin.Multiply(model.NewMatrix(0, 1, -1, 0, h, 0)), model.NewRectangle(0, 0, h, w)
	}
	return origin, model.NewRectangle(0, 0, w, h)
}
