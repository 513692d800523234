package graphicsstate

import (
	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/model"
)

// WindingRule selects which regions of a path are inside
type WindingRule int

const (
	// NoWindingRule means no rule was given, e.g. plain stroking or no
	// pending clip
	NoWindingRule WindingRule = -1
	EvenOdd       WindingRule = 0
	NonZero       WindingRule = 1
)

func (w WindingRule) String() string {
	switch w {
	case EvenOdd:
		return "even-odd"
	case NonZero:
		return "non-zero"
	default:
		return "none"
	}
}

// GraphicsState is the part of the PDF graphics state the interpreter
// tracks
type GraphicsState struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// ClippingWindingRule is set by W and W* and consumed by the next path
	// painting operator
	ClippingWindingRule WindingRule
	ClipBox             model.Rectangle

	StrokingColor         model.Color
	StrokingColorSpace    *content.ColorSpace
	NonStrokingColor      model.Color
	NonStrokingColorSpace *content.ColorSpace

	LineWidth float64

	Text TextState
}

// TextState holds the text parameters that q and Q save and restore
type TextState struct {
	Font     content.Font
	FontSize float64

	CharSpacing float64
	WordSpacing float64
	// HorizontalScaling is a factor, 1 meaning 100%
	HorizontalScaling float64
	Leading           float64
	RenderingMode     int
	Rise              float64
}

// NewGraphicsState creates a state with the initial values of a page
func NewGraphicsState(ctm model.Matrix, clip model.Rectangle) *GraphicsState {
	return &GraphicsState{
		CTM:                   ctm,
		ClippingWindingRule:   NoWindingRule,
		ClipBox:               clip,
		StrokingColor:         model.Black,
		StrokingColorSpace:    content.GraySpace,
		NonStrokingColor:      model.Black,
		NonStrokingColorSpace: content.GraySpace,
		LineWidth:             1.0,
		Text: TextState{
			HorizontalScaling: 1.0,
		},
	}
}

// Clone returns a copy of the state. Color spaces and fonts are shared;
// they are never mutated.
func (gs *GraphicsState) Clone() *GraphicsState {
	clone := *gs
	return &clone
}

// Concat prepends m to the CTM (cm operator)
func (gs *GraphicsState) Concat(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetStrokingColor sets the stroking color space and color
func (gs *GraphicsState) SetStrokingColor(cs *content.ColorSpace, comps []float64) {
	gs.StrokingColorSpace = cs
	gs.StrokingColor = cs.ToRGB(comps)
}

// SetNonStrokingColor sets the non-stroking color space and color
func (gs *GraphicsState) SetNonStrokingColor(cs *content.ColorSpace, comps []float64) {
	gs.NonStrokingColorSpace = cs
	gs.NonStrokingColor = cs.ToRGB(comps)
}

// PaintColor returns the color used to paint a path. Painting operators
// that carry a winding rule fill, so they use the non-stroking color;
// plain stroking uses the stroking color.
func (gs *GraphicsState) PaintColor(rule WindingRule) model.Color {
	if rule != NoWindingRule {
		return gs.NonStrokingColor
	}
	return gs.StrokingColor
}
