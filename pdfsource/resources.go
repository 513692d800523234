package pdfsource

import (
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/model"
)

// stream is a page, form or glyph procedure content stream
type stream struct {
	v      pdf.Value
	matrix model.Matrix
	res    content.Resources
}

func (s *stream) Matrix() model.Matrix         { return s.matrix }
func (s *stream) Resources() content.Resources { return s.res }
func (s *stream) Content() ([]byte, error)     { return readStream(s.v) }

// resources resolves names against a resource dictionary. Fonts and
// XObjects are built once per dictionary.
type resources struct {
	v        pdf.Value
	fonts    map[string]content.Font
	xobjects map[string]content.XObject
	log      *slog.Logger
}

// newResources returns nil when v is not a dictionary so that the stream
// falls back to the page's resources.
func newResources(v pdf.Value, log *slog.Logger) content.Resources {
	if v.Kind() != pdf.Dict {
		return nil
	}
	return &resources{
		v:        v,
		log:      log,
		fonts:    make(map[string]content.Font),
		xobjects: make(map[string]content.XObject),
	}
}

func (r *resources) Font(name string) (font content.Font, err error) {
	if f, ok := r.fonts[name]; ok {
		return f, nil
	}
	err = guard("font "+name, func() error {
		fv := r.v.Key("Font").Key(name)
		if fv.Kind() != pdf.Dict {
			return fmt.Errorf("font %q: %w", name, content.ErrNotFound)
		}
		font = newFont(fv, r.log)
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.fonts[name] = font
	return font, nil
}

func (r *resources) XObject(name string) (xobj content.XObject, err error) {
	if x, ok := r.xobjects[name]; ok {
		return x, nil
	}
	err = guard("xobject "+name, func() error {
		xv := r.v.Key("XObject").Key(name)
		if xv.Kind() != pdf.Stream {
			return fmt.Errorf("xobject %q: %w", name, content.ErrNotFound)
		}
		switch subtype := xv.Key("Subtype").Name(); subtype {
		case "Form":
			xobj = &content.FormXObject{Stream: &stream{
				v:      xv,
				matrix: matrixOf(toGo(xv.Key("Matrix"))),
				res:    newResources(xv.Key("Resources"), r.log),
			}}
		case "Image":
			xobj = &imageXObject{v: xv, res: r}
		default:
			xobj = otherXObject(subtype)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.xobjects[name] = xobj
	return xobj, nil
}

func (r *resources) ColorSpace(name string) (cs *content.ColorSpace, err error) {
	err = guard("color space "+name, func() error {
		v := r.v.Key("ColorSpace").Key(name)
		if v.Kind() == pdf.Null {
			return fmt.Errorf("color space %q: %w", name, content.ErrNotFound)
		}
		cs, err = colorSpaceOf(toGo(v))
		return err
	})
	return cs, err
}

// imageXObject reads its samples when the image is placed
type imageXObject struct {
	v   pdf.Value
	res content.Resources
}

func (x *imageXObject) Subtype() string              { return "Image" }
func (x *imageXObject) Form() (content.Stream, bool) { return nil, false }

func (x *imageXObject) Image() (img *content.Image, err error) {
	err = guard("image", func() error {
		s, ok := toGo(x.v).(Stream)
		if !ok {
			return fmt.Errorf("image is not a stream: %w", ErrMalformed)
		}
		img, err = newImage(s, x.res)
		return err
	})
	return img, err
}

// otherXObject is an XObject of a subtype the interpreter ignores (PS)
type otherXObject string

func (x otherXObject) Subtype() string              { return string(x) }
func (x otherXObject) Form() (content.Stream, bool) { return nil, false }
func (x otherXObject) Image() (*content.Image, error) {
	return nil, fmt.Errorf("%s xobject is not an image", string(x))
}

// newImage describes an image XObject. The reader has already applied the
// stream filters, so the returned image carries no filter chain. A payload
// that cannot be decoded is reported together with the image geometry.
func newImage(s Stream, res content.Resources) (*content.Image, error) {
	d := s.Dict
	img := &content.Image{
		Width:            int(numberOr(d["Width"], 0)),
		Height:           int(numberOr(d["Height"], 0)),
		BitsPerComponent: int(numberOr(d["BitsPerComponent"], 8)),
		ColorSpace:       content.GraySpace,
	}
	if mask, ok := d["ImageMask"].(bool); ok && mask {
		img.ImageMask = true
		img.BitsPerComponent = 1
	}
	if dec, ok := numbers(d["Decode"]); ok {
		img.Decode = dec
	}

	switch cs := d["ColorSpace"].(type) {
	case Name:
		if dev, ok := content.DeviceSpace(string(cs)); ok {
			img.ColorSpace = dev
		} else if res != nil {
			if named, err := res.ColorSpace(string(cs)); err == nil {
				img.ColorSpace = named
			}
		}
	case nil:
	default:
		if conv, err := colorSpaceOf(cs); err == nil {
			img.ColorSpace = conv
		}
	}

	data, err := s.Bytes()
	if err != nil {
		return img, err
	}
	img.Data = data
	return img, nil
}
