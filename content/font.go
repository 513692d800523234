package content

import "github.com/tsawler/pdfstruct/model"

// Default vertical metrics, in glyph space, used when a font descriptor
// does not provide any. These are Helvetica's.
const (
	DefaultAscent  = 718
	DefaultDescent = -207
	// DefaultWidth is used for codes outside the widths table when the font
	// has no MissingWidth
	DefaultWidth = 500
)

// TextDecoder converts raw character codes to Unicode text
type TextDecoder interface {
	Decode(raw string) string
}

// SimpleFont is a Font described by a widths table. It covers simple fonts
// (one byte per code), composite fonts with two-byte codes and Type 3 fonts.
type SimpleFont struct {
	Name    string
	IsType3 bool
	// Matrix is the font matrix. The zero value means the standard
	// [0.001 0 0 0.001 0 0].
	Matrix model.Matrix
	// CodeLength is the number of bytes per character code (1 or 2)
	CodeLength int

	FirstChar    int
	Widths       []float64 // glyph space, indexed by code - FirstChar
	MissingWidth float64

	Asc, Desc float64 // glyph space; zero means the defaults

	// Decoder maps codes to text. Nil decodes bytes as Latin-1.
	Decoder TextDecoder
	// Procs holds the glyph procedures of a Type 3 font
	Procs map[int]Stream
}

func (f *SimpleFont) BaseFont() string { return f.Name }
func (f *SimpleFont) Type3() bool      { return f.IsType3 }

func (f *SimpleFont) FontMatrix() model.Matrix {
	if f.Matrix == (model.Matrix{}) {
		return model.Scale(0.001, 0.001)
	}
	return f.Matrix
}

func (f *SimpleFont) Ascent() float64 {
	if f.Asc == 0 && f.Desc == 0 {
		return f.toGlyphSpace(DefaultAscent)
	}
	return f.Asc
}

func (f *SimpleFont) Descent() float64 {
	if f.Asc == 0 && f.Desc == 0 {
		return f.toGlyphSpace(DefaultDescent)
	}
	return f.Desc
}

// toGlyphSpace converts a value in thousandths of text space to this
// font's glyph space.
func (f *SimpleFont) toGlyphSpace(v float64) float64 {
	sy := f.FontMatrix().ScaleY()
	if sy == 0 {
		return v
	}
	return v * 0.001 / sy
}

// Width returns the glyph-space width of code
func (f *SimpleFont) Width(code int) float64 {
	i := code - f.FirstChar
	if i >= 0 && i < len(f.Widths) {
		return f.Widths[i]
	}
	if f.MissingWidth != 0 {
		return f.MissingWidth
	}
	return f.toGlyphSpace(DefaultWidth)
}

func (f *SimpleFont) Glyphs(raw []byte) []Glyph {
	n := f.CodeLength
	if n < 1 {
		n = 1
	}
	sx := f.FontMatrix().ScaleX()
	glyphs := make([]Glyph, 0, len(raw)/n)
	for i := 0; i+n <= len(raw); i += n {
		code := 0
		for _, b := range raw[i : i+n] {
			code = code<<8 | int(b)
		}
		var text string
		if f.Decoder != nil {
			text = f.Decoder.Decode(string(raw[i : i+n]))
		} else {
			text = string(rune(code))
		}
		glyphs = append(glyphs, Glyph{
			Code:       code,
			Text:       text,
			Width:      f.Width(code) * sx,
			SingleByte: n == 1,
		})
	}
	return glyphs
}

func (f *SimpleFont) CharProc(code int) (Stream, bool) {
	s, ok := f.Procs[code]
	return s, ok
}
