package interpreter

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/contentstream"
	"github.com/tsawler/pdfstruct/imaging"
	"github.com/tsawler/pdfstruct/model"
)

func invokeXObject(e *Engine, operands []contentstream.Object) error {
	n, err := name("Do", operands)
	if err != nil {
		return err
	}
	xobj, err := e.Resources().XObject(n)
	if err != nil {
		return err
	}

	switch xobj.Subtype() {
	case "Form":
		form, ok := xobj.Form()
		if !ok {
			return fmt.Errorf("form %q has no content", n)
		}
		if err := e.ProcessStream(form); err != nil {
			return fmt.Errorf("form %q: %w", n, err)
		}
		return nil
	case "Image":
		img, err := xobj.Image()
		e.placeImage(img)
		if err != nil {
			return fmt.Errorf("image %q: %w", n, err)
		}
		return nil
	default:
		e.log.Debug("ignoring xobject", "name", n, "subtype", xobj.Subtype())
		return nil
	}
}

// placeImage maps the unit square through the CTM and emits a Shape when
// the image is a single color, or a Figure otherwise.
func (e *Engine) placeImage(img *content.Image) {
	ctm := e.State().CTM
	box, _ := model.RectangleFromPoints(
		ctm.TransformPoint(model.Point{X: 0, Y: 0}),
		ctm.TransformPoint(model.Point{X: 1, Y: 0}),
		ctm.TransformPoint(model.Point{X: 0, Y: 1}),
		ctm.TransformPoint(model.Point{X: 1, Y: 1}),
	)
	box = e.round(box)

	if img != nil {
		color, ok, err := imaging.ExclusiveColor(img, e.State().NonStrokingColor)
		if err != nil {
			e.log.Debug("image not sampled", "page", e.pageNumber(), "err", err)
		}
		if err == nil && ok {
			e.page.AddShape(&model.Shape{Position: model.Position{Rect: box}, Color: color})
			return
		}
	}
	e.page.AddFigure(&model.Figure{Position: model.Position{Rect: box}})
}

// inlineImage handles BI ... ID ... EI. Inline images in glyph procedures
// are glyph bitmaps and are skipped.
func inlineImage(e *Engine, _ []contentstream.Object) error {
	if e.isType3Stream {
		return nil
	}
	if e.inlineImage == nil {
		return errors.New("inline image without data")
	}
	img, err := e.buildInlineImage(e.inlineImage)
	e.placeImage(img)
	return err
}

func (e *Engine) buildInlineImage(ii *contentstream.InlineImage) (*content.Image, error) {
	p := ii.Params
	img := &content.Image{
		BitsPerComponent: 8,
		ColorSpace:       content.GraySpace,
		Data:             ii.Data,
	}
	img.Width, _ = p.Int("Width")
	img.Height, _ = p.Int("Height")
	if bpc, ok := p.Int("BitsPerComponent"); ok {
		img.BitsPerComponent = bpc
	}
	if mask, ok := p.Bool("ImageMask"); ok && mask {
		img.ImageMask = true
		img.BitsPerComponent = 1
	}
	if d, ok := p["Decode"].(contentstream.Array); ok {
		img.Decode, _ = contentstream.ToFloats(d)
	}
	img.Filters = inlineFilters(p["Filter"], p["DecodeParms"])

	if obj, ok := p["ColorSpace"]; ok && !img.ImageMask {
		cs, err := e.inlineColorSpace(obj)
		if err != nil {
			return nil, err
		}
		img.ColorSpace = cs
	}
	return img, nil
}

func (e *Engine) inlineColorSpace(obj contentstream.Object) (*content.ColorSpace, error) {
	switch v := obj.(type) {
	case contentstream.Name:
		if cs, ok := content.DeviceSpace(string(v)); ok {
			return cs, nil
		}
		return e.Resources().ColorSpace(string(v))
	case contentstream.Array:
		// [/Indexed base hival lookup]
		if len(v) == 4 {
			if fam, _ := v[0].(contentstream.Name); fam == "Indexed" || fam == "I" {
				base, err := e.inlineColorSpace(v[1])
				if err != nil {
					return nil, err
				}
				hival, _ := contentstream.ToFloat(v[2])
				lookup, _ := v[3].(contentstream.String)
				return &content.ColorSpace{
					Family: content.Indexed,
					Base:   base,
					HiVal:  int(hival),
					Lookup: []byte(lookup),
				}, nil
			}
		}
		if len(v) > 0 {
			return e.inlineColorSpace(v[0])
		}
	}
	return nil, fmt.Errorf("%w: inline image color space %s", ErrOperands, obj)
}

// inlineFilters pairs the Filter entry with its DecodeParms
func inlineFilters(filter, parms contentstream.Object) []content.Filter {
	var names []contentstream.Object
	var params []contentstream.Object
	switch f := filter.(type) {
	case contentstream.Name:
		names = []contentstream.Object{f}
		params = []contentstream.Object{parms}
	case contentstream.Array:
		names = f
		if a, ok := parms.(contentstream.Array); ok {
			params = a
		}
	}

	var out []content.Filter
	for i, obj := range names {
		n, ok := obj.(contentstream.Name)
		if !ok {
			continue
		}
		f := content.Filter{Name: string(n)}
		if i < len(params) {
			if d, ok := params[i].(contentstream.Dict); ok {
				f.Params = make(map[string]int, len(d))
				for k, v := range d {
					switch x := v.(type) {
					case contentstream.Int:
						f.Params[k] = int(x)
					case contentstream.Bool:
						if x {
							f.Params[k] = 1
						} else {
							f.Params[k] = 0
						}
					}
				}
			}
		}
		out = append(out, f)
	}
	return out
}
