package interpreter

import (
	"github.com/tsawler/pdfstruct/contentstream"
	"github.com/tsawler/pdfstruct/graphicsstate"
)

// ignored operators are understood but have no effect on the extracted
// elements
var ignored = []string{
	"d", "i", "j", "J", "M", "ri", "gs", "sh",
	"d0", "d1",
	"BX", "EX", "MP", "DP", "BMC", "BDC", "EMC",
}

func defaultHandlers() map[string]Handler {
	h := map[string]Handler{
		// general graphics state
		"q":  saveState,
		"Q":  restoreState,
		"cm": concatMatrix,
		"w":  setLineWidth,

		// color
		"G":   setStrokingGray,
		"g":   setNonStrokingGray,
		"RG":  setStrokingRGB,
		"rg":  setNonStrokingRGB,
		"K":   setStrokingCMYK,
		"k":   setNonStrokingCMYK,
		"CS":  setStrokingColorSpace,
		"cs":  setNonStrokingColorSpace,
		"SC":  setStrokingColor,
		"SCN": setStrokingColor,
		"sc":  setNonStrokingColor,
		"scn": setNonStrokingColor,

		// path construction
		"m":  moveTo,
		"l":  lineTo,
		"c":  curveTo,
		"v":  curveToV,
		"y":  curveToY,
		"h":  closePath,
		"re": appendRectangle,

		// path painting
		"S":  paintOp(false, graphicsstate.NoWindingRule),
		"s":  paintOp(true, graphicsstate.NoWindingRule),
		"f":  paintOp(false, graphicsstate.NonZero),
		"F":  paintOp(false, graphicsstate.NonZero),
		"f*": paintOp(false, graphicsstate.EvenOdd),
		"B":  paintOp(false, graphicsstate.NonZero),
		"B*": paintOp(false, graphicsstate.EvenOdd),
		"b":  paintOp(true, graphicsstate.NonZero),
		"b*": paintOp(true, graphicsstate.EvenOdd),
		"n":  endPath,

		// clipping
		"W":  clipOp(graphicsstate.NonZero),
		"W*": clipOp(graphicsstate.EvenOdd),

		// external objects and inline images
		"Do": invokeXObject,
		"BI": inlineImage,

		// text
		"BT":  beginText,
		"ET":  endText,
		"Tc":  setCharSpacing,
		"Tw":  setWordSpacing,
		"Tz":  setHorizontalScaling,
		"TL":  setLeading,
		"Tf":  setFont,
		"Tr":  setRenderingMode,
		"Ts":  setRise,
		"Td":  moveText,
		"TD":  moveTextSetLeading,
		"Tm":  setTextMatrix,
		"T*":  nextLine,
		"Tj":  showText,
		"TJ":  showTextArray,
		"'":   nextLineShowText,
		"\"":  nextLineShowTextSpaced,
	}
	for _, op := range ignored {
		h[op] = noop
	}
	return h
}

func noop(*Engine, []contentstream.Object) error { return nil }

func saveState(e *Engine, _ []contentstream.Object) error {
	e.SaveGraphicsState()
	return nil
}

func restoreState(e *Engine, _ []contentstream.Object) error {
	return e.RestoreGraphicsState()
}

func concatMatrix(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("cm", operands, 6)
	if err != nil {
		return err
	}
	e.State().Concat(matrixOf(v))
	return nil
}

func setLineWidth(e *Engine, operands []contentstream.Object) error {
	w, err := number("w", operands)
	if err != nil {
		return err
	}
	e.State().LineWidth = w
	return nil
}
