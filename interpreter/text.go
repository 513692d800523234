package interpreter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/contentstream"
	"github.com/tsawler/pdfstruct/graphicsstate"
	"github.com/tsawler/pdfstruct/model"
)

var errNoFont = errors.New("text shown without a font")

// Text rendering modes
const (
	renderFill   = 0
	renderStroke = 1
)

func beginText(e *Engine, _ []contentstream.Object) error {
	e.textMatrix = model.Identity()
	e.textLineMatrix = model.Identity()
	return nil
}

func endText(*Engine, []contentstream.Object) error { return nil }

func setCharSpacing(e *Engine, operands []contentstream.Object) error {
	v, err := number("Tc", operands)
	if err != nil {
		return err
	}
	e.State().Text.CharSpacing = v
	return nil
}

func setWordSpacing(e *Engine, operands []contentstream.Object) error {
	v, err := number("Tw", operands)
	if err != nil {
		return err
	}
	e.State().Text.WordSpacing = v
	return nil
}

func setHorizontalScaling(e *Engine, operands []contentstream.Object) error {
	v, err := number("Tz", operands)
	if err != nil {
		return err
	}
	e.State().Text.HorizontalScaling = v / 100
	return nil
}

func setLeading(e *Engine, operands []contentstream.Object) error {
	v, err := number("TL", operands)
	if err != nil {
		return err
	}
	e.State().Text.Leading = v
	return nil
}

func setRenderingMode(e *Engine, operands []contentstream.Object) error {
	v, err := number("Tr", operands)
	if err != nil {
		return err
	}
	e.State().Text.RenderingMode = int(v)
	return nil
}

func setRise(e *Engine, operands []contentstream.Object) error {
	v, err := number("Ts", operands)
	if err != nil {
		return err
	}
	e.State().Text.Rise = v
	return nil
}

// setFont handles Tf. The size is kept even when the font cannot be
// resolved.
func setFont(e *Engine, operands []contentstream.Object) error {
	if len(operands) < 2 {
		return fmt.Errorf("%w: Tf needs a name and a size", ErrOperands)
	}
	size, err := number("Tf", operands)
	if err != nil {
		return err
	}
	n, err := name("Tf", operands[:len(operands)-1])
	if err != nil {
		return err
	}
	ts := &e.State().Text
	ts.FontSize = size
	f, err := e.Resources().Font(n)
	if err != nil {
		ts.Font = nil
		return err
	}
	ts.Font = f
	return nil
}

func moveText(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("Td", operands, 2)
	if err != nil {
		return err
	}
	e.moveTextPosition(v[0], v[1])
	return nil
}

func moveTextSetLeading(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("TD", operands, 2)
	if err != nil {
		return err
	}
	e.State().Text.Leading = -v[1]
	e.moveTextPosition(v[0], v[1])
	return nil
}

func (e *Engine) moveTextPosition(tx, ty float64) {
	e.textLineMatrix = model.Translate(tx, ty).Multiply(e.textLineMatrix)
	e.textMatrix = e.textLineMatrix
}

func setTextMatrix(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("Tm", operands, 6)
	if err != nil {
		return err
	}
	e.textMatrix = matrixOf(v)
	e.textLineMatrix = e.textMatrix
	return nil
}

func nextLine(e *Engine, _ []contentstream.Object) error {
	e.moveTextPosition(0, -e.State().Text.Leading)
	return nil
}

func showText(e *Engine, operands []contentstream.Object) error {
	s, err := str("Tj", operands)
	if err != nil {
		return err
	}
	return e.showString("Tj", s)
}

// showTextArray handles TJ. Numbers move the pen left by thousandths of
// the font size.
func showTextArray(e *Engine, operands []contentstream.Object) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: TJ needs an array", ErrOperands)
	}
	arr, ok := operands[len(operands)-1].(contentstream.Array)
	if !ok {
		return fmt.Errorf("%w: TJ needs an array", ErrOperands)
	}
	var errs []error
	for _, item := range arr {
		if s, ok := item.(contentstream.String); ok {
			if err := e.showString("TJ", []byte(s)); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if adj, ok := contentstream.ToFloat(item); ok {
			ts := e.State().Text
			tx := -adj / 1000 * ts.FontSize * ts.HorizontalScaling
			e.textMatrix = model.Translate(tx, 0).Multiply(e.textMatrix)
		}
	}
	return errors.Join(errs...)
}

func nextLineShowText(e *Engine, operands []contentstream.Object) error {
	s, err := str("'", operands)
	if err != nil {
		return err
	}
	e.moveTextPosition(0, -e.State().Text.Leading)
	return e.showString("'", s)
}

func nextLineShowTextSpaced(e *Engine, operands []contentstream.Object) error {
	if len(operands) < 3 {
		return fmt.Errorf("%w: \" needs 3 operands", ErrOperands)
	}
	v, err := numbers("\"", operands[:len(operands)-1], 2)
	if err != nil {
		return err
	}
	s, err := str("\"", operands)
	if err != nil {
		return err
	}
	ts := &e.State().Text
	ts.WordSpacing = v[0]
	ts.CharSpacing = v[1]
	e.moveTextPosition(0, -ts.Leading)
	return e.showString("\"", s)
}

// showString emits a Character per visible glyph and advances the text
// matrix. Glyphs of Type 3 fonts also run their glyph procedure.
func (e *Engine) showString(op string, raw []byte) error {
	gs := e.State()
	ts := gs.Text
	font := ts.Font
	if font == nil {
		return errNoFont
	}

	fm := font.FontMatrix()
	ascent := font.Ascent() * fm.ScaleY()
	descent := font.Descent() * fm.ScaleY()
	params := model.NewMatrix(ts.FontSize*ts.HorizontalScaling, 0, 0, ts.FontSize, 0, ts.Rise)

	color := gs.NonStrokingColor
	if ts.RenderingMode == renderStroke {
		color = gs.StrokingColor
	}
	modelFont := e.doc.Fonts.Intern(font.BaseFont(), font.Type3())

	for _, g := range font.Glyphs(raw) {
		trm := params.Multiply(e.textMatrix).Multiply(gs.CTM)

		text := norm.NFKC.String(g.Text)
		if strings.TrimSpace(text) != "" {
			box, _ := model.RectangleFromPoints(
				trm.TransformPoint(model.Point{X: 0, Y: descent}),
				trm.TransformPoint(model.Point{X: g.Width, Y: descent}),
				trm.TransformPoint(model.Point{X: 0, Y: ascent}),
				trm.TransformPoint(model.Point{X: g.Width, Y: ascent}),
			)
			e.page.AddCharacter(&model.Character{
				Position: model.Position{Rect: e.round(box)},
				Text:     text,
				FontFace: model.FontFace{Font: modelFont, Size: e.fontSize(trm)},
				Color:    color,
			})
		}

		if font.Type3() {
			if proc, ok := font.CharProc(g.Code); ok {
				if err := e.processType3Stream(proc, trm, font); err != nil {
					e.warn(op, fmt.Errorf("glyph %d: %w", g.Code, err))
				}
			}
		}

		e.advance(g, ts)
	}
	return nil
}

// advance moves the text matrix past a glyph
func (e *Engine) advance(g content.Glyph, ts graphicsstate.TextState) {
	w := g.Width*ts.FontSize + ts.CharSpacing
	if g.SingleByte && g.Code == ' ' {
		w += ts.WordSpacing
	}
	e.textMatrix = model.Translate(w*ts.HorizontalScaling, 0).Multiply(e.textMatrix)
}

// fontSize returns the rendered font size: the length of the text space
// unit vector along y in device space
func (e *Engine) fontSize(trm model.Matrix) float64 {
	return model.Round(math.Hypot(trm.ShearX(), trm.ScaleY()), e.cfg.Precision)
}
