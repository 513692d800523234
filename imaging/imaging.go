// Package imaging samples the pixels of images placed on a page. The
// interpreter uses it to tell raster figures from images that are a single
// flat color, which are really shapes.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/internal/filters"
	"github.com/tsawler/pdfstruct/model"
)

// MaxSamples bounds the number of pixels inspected per image. Larger images
// are sampled on a regular grid.
const MaxSamples = 64 * 64

// ErrNoData is returned for images without enough sample data
var ErrNoData = errors.New("image has too little data")

// ExclusiveColor reports whether every sampled pixel of img has the same
// color, and returns that color. Image masks paint with maskColor.
func ExclusiveColor(img *content.Image, maskColor model.Color) (model.Color, bool, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return model.Color{}, false, ErrNoData
	}

	data, rest, err := filters.Decode(img.Data, img.Filters)
	switch {
	case errors.Is(err, filters.ErrImageFilter):
		if len(rest) > 1 {
			return model.Color{}, false, fmt.Errorf("filters after %s", rest[0].Name)
		}
		decoded, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return model.Color{}, false, fmt.Errorf("jpeg: %w", err)
		}
		c, ok := exclusiveImageColor(decoded)
		return c, ok, nil
	case err != nil:
		return model.Color{}, false, err
	}

	if img.ImageMask {
		// a mask paints one color wherever it paints at all
		return maskColor, true, nil
	}

	s, err := newSampler(img, data)
	if err != nil {
		return model.Color{}, false, err
	}
	c, ok := s.exclusive()
	return c, ok, nil
}

// sampler reads pixel colors from unpacked sample data
type sampler struct {
	img    *content.Image
	data   []byte
	n      int // components per pixel
	bpc    int
	rowLen int
	decode []float64
	cs     *content.ColorSpace
}

func newSampler(img *content.Image, data []byte) (*sampler, error) {
	cs := img.ColorSpace
	if cs == nil {
		cs = content.GraySpace
	}
	bpc := img.BitsPerComponent
	switch bpc {
	case 1, 2, 4, 8, 16:
	case 0:
		bpc = 8
	default:
		return nil, fmt.Errorf("unsupported bits per component %d", bpc)
	}
	n := cs.Components()
	if n == 0 {
		return nil, fmt.Errorf("color space %s has no components", cs.Family)
	}
	rowLen := (img.Width*n*bpc + 7) / 8
	if len(data) < rowLen*img.Height {
		return nil, ErrNoData
	}

	s := &sampler{img: img, data: data, n: n, bpc: bpc, rowLen: rowLen, cs: cs}
	s.decode = img.Decode
	if len(s.decode) < 2*n {
		s.decode = defaultDecode(cs, n, bpc)
	}
	return s, nil
}

func defaultDecode(cs *content.ColorSpace, n, bpc int) []float64 {
	d := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		if cs.Family == content.Indexed {
			d = append(d, 0, float64(int(1)<<bpc-1))
		} else {
			d = append(d, 0, 1)
		}
	}
	return d
}

// component returns the raw value of component c of pixel (x, y)
func (s *sampler) component(x, y, c int) uint32 {
	bit := (x*s.n + c) * s.bpc
	row := s.data[y*s.rowLen:]
	switch s.bpc {
	case 8:
		return uint32(row[bit/8])
	case 16:
		return uint32(row[bit/8])<<8 | uint32(row[bit/8+1])
	}
	b := row[bit/8]
	shift := 8 - s.bpc - bit%8
	return uint32(b>>shift) & (1<<s.bpc - 1)
}

func (s *sampler) color(x, y int) model.Color {
	maxVal := float64(uint32(1)<<s.bpc - 1)
	comps := make([]float64, s.n)
	for c := 0; c < s.n; c++ {
		v := float64(s.component(x, y, c))
		lo, hi := s.decode[2*c], s.decode[2*c+1]
		comps[c] = lo + v*(hi-lo)/maxVal
	}
	return s.cs.ToRGB(comps)
}

func (s *sampler) exclusive() (model.Color, bool) {
	return exclusive(s.img.Width, s.img.Height, s.color)
}

func exclusiveImageColor(img image.Image) (model.Color, bool) {
	b := img.Bounds()
	return exclusive(b.Dx(), b.Dy(), func(x, y int) model.Color {
		r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return model.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
	})
}

// exclusive walks a grid of at most MaxSamples pixels and stops at the
// first pixel that differs from the first one.
func exclusive(w, h int, at func(x, y int) model.Color) (model.Color, bool) {
	if w <= 0 || h <= 0 {
		return model.Color{}, false
	}
	step := 1
	for (w/step)*(h/step) > MaxSamples {
		step++
	}
	first := at(0, 0)
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			if at(x, y) != first {
				return model.Color{}, false
			}
		}
	}
	return first, true
}
