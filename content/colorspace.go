package content

import (
	"math"

	"github.com/tsawler/pdfstruct/model"
)

// Color space families
const (
	DeviceGray = "DeviceGray"
	DeviceRGB  = "DeviceRGB"
	DeviceCMYK = "DeviceCMYK"
	CalGray    = "CalGray"
	CalRGB     = "CalRGB"
	Lab        = "Lab"
	ICCBased   = "ICCBased"
	Indexed    = "Indexed"
	Separation = "Separation"
	DeviceN    = "DeviceN"
	Pattern    = "Pattern"
)

// ColorSpace describes how color components map to RGB. Tint transform
// functions of Separation and DeviceN spaces are not evaluated; tints are
// rendered as gray levels.
type ColorSpace struct {
	Family string
	// N is the number of components of ICCBased and DeviceN spaces
	N int
	// Base is the base space of Indexed spaces and the alternate space of
	// ICCBased spaces
	Base *ColorSpace
	// HiVal and Lookup describe the palette of an Indexed space
	HiVal  int
	Lookup []byte
}

var (
	GraySpace = &ColorSpace{Family: DeviceGray}
	RGBSpace  = &ColorSpace{Family: DeviceRGB}
	CMYKSpace = &ColorSpace{Family: DeviceCMYK}
)

// DeviceSpace returns the color space for a device family name. Inline
// image abbreviations are accepted.
func DeviceSpace(name string) (*ColorSpace, bool) {
	switch name {
	case DeviceGray, "G", CalGray:
		return GraySpace, true
	case DeviceRGB, "RGB", CalRGB:
		return RGBSpace, true
	case DeviceCMYK, "CMYK":
		return CMYKSpace, true
	case Pattern:
		return &ColorSpace{Family: Pattern}, true
	}
	return nil, false
}

// Components returns the number of color components
func (cs *ColorSpace) Components() int {
	if cs == nil {
		return 1
	}
	switch cs.Family {
	case DeviceRGB, CalRGB, Lab:
		return 3
	case DeviceCMYK:
		return 4
	case ICCBased, DeviceN:
		if cs.N > 0 {
			return cs.N
		}
		if cs.Base != nil {
			return cs.Base.Components()
		}
		return 1
	case Pattern:
		return 0
	default:
		return 1
	}
}

// InitialColor returns the components of the initial color (black for
// device spaces, palette entry 0 for Indexed spaces)
func (cs *ColorSpace) InitialColor() []float64 {
	n := cs.Components()
	comps := make([]float64, n)
	if cs != nil && cs.Family == DeviceCMYK {
		comps[3] = 1
	}
	return comps
}

// ToRGB converts components to a color. Missing components are treated
// as zero.
func (cs *ColorSpace) ToRGB(comps []float64) model.Color {
	at := func(i int) float64 {
		if i < len(comps) {
			return comps[i]
		}
		return 0
	}
	if cs == nil {
		g := at(0)
		return model.ColorFromRGB(g, g, g)
	}

	switch cs.Family {
	case DeviceGray, CalGray:
		g := at(0)
		return model.ColorFromRGB(g, g, g)
	case DeviceRGB, CalRGB:
		return model.ColorFromRGB(at(0), at(1), at(2))
	case DeviceCMYK:
		r, g, b := cmykToRGB(at(0), at(1), at(2), at(3))
		return model.ColorFromRGB(r, g, b)
	case Lab:
		r, g, b := labToRGB(at(0), at(1), at(2))
		return model.ColorFromRGB(r, g, b)
	case ICCBased:
		if cs.Base != nil {
			return cs.Base.ToRGB(comps)
		}
		switch cs.Components() {
		case 3:
			return RGBSpace.ToRGB(comps)
		case 4:
			return CMYKSpace.ToRGB(comps)
		default:
			return GraySpace.ToRGB(comps)
		}
	case Indexed:
		return cs.lookup(int(math.Round(at(0))))
	case Separation, DeviceN:
		tint := 0.0
		for i := 0; i < cs.Components(); i++ {
			tint = math.Max(tint, at(i))
		}
		return model.ColorFromRGB(1-tint, 1-tint, 1-tint)
	}
	return model.Black
}

// lookup resolves a palette index of an Indexed space
func (cs *ColorSpace) lookup(index int) model.Color {
	if index < 0 {
		index = 0
	}
	if cs.HiVal > 0 && index > cs.HiVal {
		index = cs.HiVal
	}
	n := cs.Base.Components()
	start := index * n
	if cs.Base == nil || start+n > len(cs.Lookup) {
		return model.Black
	}
	comps := make([]float64, n)
	for i := range comps {
		comps[i] = float64(cs.Lookup[start+i]) / 255
	}
	return cs.Base.ToRGB(comps)
}

func cmykToRGB(c, m, y, k float64) (r, g, b float64) {
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return
}

// labToRGB converts CIE L*a*b* (D65 white point) to sRGB components
func labToRGB(l, a, bb float64) (r, g, b float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - bb/200
	inv := func(t float64) float64 {
		if t > 6.0/29 {
			return t * t * t
		}
		return 3 * (6.0 / 29) * (6.0 / 29) * (t - 4.0/29)
	}
	x := 0.95047 * inv(fx)
	y := 1.0 * inv(fy)
	z := 1.08883 * inv(fz)

	gamma := func(c float64) float64 {
		if c <= 0.0031308 {
			return 12.92 * c
		}
		return 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	r = gamma(3.2406*x - 1.5372*y - 0.4986*z)
	g = gamma(-0.9689*x + 1.8758*y + 0.0415*z)
	b = gamma(0.0557*x - 0.2040*y + 1.0570*z)
	return
}
