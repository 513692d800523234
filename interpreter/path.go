package interpreter

import (
	"errors"

	"github.com/tsawler/pdfstruct/contentstream"
	"github.com/tsawler/pdfstruct/graphicsstate"
	"github.com/tsawler/pdfstruct/model"
)

var errNoCurrentPoint = errors.New("no current point")

func matrixOf(v []float64) model.Matrix {
	return model.NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5])
}

// userPoint maps a point of user space to device space
func (e *Engine) userPoint(x, y float64) model.Point {
	return e.State().CTM.TransformPoint(model.Point{X: x, Y: y})
}

func moveTo(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("m", operands, 2)
	if err != nil {
		return err
	}
	e.path.MoveTo(e.userPoint(v[0], v[1]))
	return nil
}

func lineTo(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("l", operands, 2)
	if err != nil {
		return err
	}
	e.path.LineTo(e.userPoint(v[0], v[1]))
	return nil
}

func curveTo(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("c", operands, 6)
	if err != nil {
		return err
	}
	e.path.CurveTo(e.userPoint(v[0], v[1]), e.userPoint(v[2], v[3]), e.userPoint(v[4], v[5]))
	return nil
}

// curveToV uses the current point as first control point
func curveToV(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("v", operands, 4)
	if err != nil {
		return err
	}
	cur, ok := e.path.CurrentPoint()
	if !ok {
		return errNoCurrentPoint
	}
	e.path.CurveTo(cur, e.userPoint(v[0], v[1]), e.userPoint(v[2], v[3]))
	return nil
}

// curveToY uses the end point as second control point
func curveToY(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("y", operands, 4)
	if err != nil {
		return err
	}
	end := e.userPoint(v[2], v[3])
	e.path.CurveTo(e.userPoint(v[0], v[1]), end, end)
	return nil
}

func closePath(e *Engine, _ []contentstream.Object) error {
	e.path.ClosePath()
	return nil
}

func appendRectangle(e *Engine, operands []contentstream.Object) error {
	v, err := numbers("re", operands, 4)
	if err != nil {
		return err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	e.path.MoveTo(e.userPoint(x, y))
	e.path.LineTo(e.userPoint(x+w, y))
	e.path.LineTo(e.userPoint(x+w, y+h))
	e.path.LineTo(e.userPoint(x, y+h))
	e.path.ClosePath()
	return nil
}

// paintOp returns the handler of a painting operator. Operators with a
// winding rule fill the path.
func paintOp(closeFirst bool, rule graphicsstate.WindingRule) Handler {
	return func(e *Engine, _ []contentstream.Object) error {
		if closeFirst {
			e.path.ClosePath()
		}
		e.paintPath(rule)
		return nil
	}
}

// paintPath emits one Shape per drawn segment and ends the path
func (e *Engine) paintPath(rule graphicsstate.WindingRule) {
	gs := e.State()
	color := gs.PaintColor(rule)
	for _, box := range e.path.SegmentBoxes(e.cfg.Precision) {
		e.page.AddShape(&model.Shape{
			Position: model.Position{Rect: box},
			Color:    color,
		})
	}
	e.endPath()
}

func endPath(e *Engine, _ []contentstream.Object) error {
	e.endPath()
	return nil
}

// endPath clears the path and consumes a pending clip
func (e *Engine) endPath() {
	e.path.Clear()
	e.State().ClippingWindingRule = graphicsstate.NoWindingRule
}

func clipOp(rule graphicsstate.WindingRule) Handler {
	return func(e *Engine, _ []contentstream.Object) error {
		e.State().ClippingWindingRule = rule
		return nil
	}
}
