package interpreter

import (
	"fmt"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/contentstream"
)

func setStrokingGray(e *Engine, operands []contentstream.Object) error {
	return setDeviceColor(e, "G", operands, content.GraySpace, true)
}

func setNonStrokingGray(e *Engine, operands []contentstream.Object) error {
	return setDeviceColor(e, "g", operands, content.GraySpace, false)
}

func setStrokingRGB(e *Engine, operands []contentstream.Object) error {
	return setDeviceColor(e, "RG", operands, content.RGBSpace, true)
}

func setNonStrokingRGB(e *Engine, operands []contentstream.Object) error {
	return setDeviceColor(e, "rg", operands, content.RGBSpace, false)
}

func setStrokingCMYK(e *Engine, operands []contentstream.Object) error {
	return setDeviceColor(e, "K", operands, content.CMYKSpace, true)
}

func setNonStrokingCMYK(e *Engine, operands []contentstream.Object) error {
	return setDeviceColor(e, "k", operands, content.CMYKSpace, false)
}

func setDeviceColor(e *Engine, op string, operands []contentstream.Object, cs *content.ColorSpace, stroking bool) error {
	comps, err := numbers(op, operands, cs.Components())
	if err != nil {
		return err
	}
	if stroking {
		e.State().SetStrokingColor(cs, comps)
	} else {
		e.State().SetNonStrokingColor(cs, comps)
	}
	return nil
}

func setStrokingColorSpace(e *Engine, operands []contentstream.Object) error {
	cs, err := e.colorSpace("CS", operands)
	if err != nil {
		return err
	}
	e.State().SetStrokingColor(cs, cs.InitialColor())
	return nil
}

func setNonStrokingColorSpace(e *Engine, operands []contentstream.Object) error {
	cs, err := e.colorSpace("cs", operands)
	if err != nil {
		return err
	}
	e.State().SetNonStrokingColor(cs, cs.InitialColor())
	return nil
}

// colorSpace resolves the name operand of CS and cs. Device families are
// looked up directly, anything else in the resources.
func (e *Engine) colorSpace(op string, operands []contentstream.Object) (*content.ColorSpace, error) {
	n, err := name(op, operands)
	if err != nil {
		return nil, err
	}
	if cs, ok := content.DeviceSpace(n); ok {
		return cs, nil
	}
	cs, err := e.Resources().ColorSpace(n)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, fmt.Errorf("color space %q: %w", n, content.ErrNotFound)
	}
	return cs, nil
}

func setStrokingColor(e *Engine, operands []contentstream.Object) error {
	gs := e.State()
	gs.SetStrokingColor(gs.StrokingColorSpace, leadingNumbers(operands))
	return nil
}

func setNonStrokingColor(e *Engine, operands []contentstream.Object) error {
	gs := e.State()
	gs.SetNonStrokingColor(gs.NonStrokingColorSpace, leadingNumbers(operands))
	return nil
}
