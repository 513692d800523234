package interpreter

import (
	"fmt"

	"github.com/tsawler/pdfstruct/contentstream"
)

// numbers returns exactly n numeric operands. Extra leading operands are
// ignored, as readers commonly do.
func numbers(op string, operands []contentstream.Object, n int) ([]float64, error) {
	if len(operands) < n {
		return nil, fmt.Errorf("%w: %s needs %d operands, got %d", ErrOperands, op, n, len(operands))
	}
	vals, ok := contentstream.ToFloats(operands[len(operands)-n:])
	if !ok {
		return nil, fmt.Errorf("%w: %s needs numbers", ErrOperands, op)
	}
	return vals, nil
}

func number(op string, operands []contentstream.Object) (float64, error) {
	v, err := numbers(op, operands, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func name(op string, operands []contentstream.Object) (string, error) {
	if len(operands) == 0 {
		return "", fmt.Errorf("%w: %s needs a name", ErrOperands, op)
	}
	n, ok := operands[len(operands)-1].(contentstream.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s needs a name, got %s", ErrOperands, op, operands[len(operands)-1].Kind())
	}
	return string(n), nil
}

func str(op string, operands []contentstream.Object) ([]byte, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("%w: %s needs a string", ErrOperands, op)
	}
	s, ok := operands[len(operands)-1].(contentstream.String)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs a string, got %s", ErrOperands, op, operands[len(operands)-1].Kind())
	}
	return []byte(s), nil
}

// leadingNumbers returns the numeric operands that come before a trailing
// name, as used by SCN and scn.
func leadingNumbers(operands []contentstream.Object) []float64 {
	var vals []float64
	for _, o := range operands {
		if v, ok := contentstream.ToFloat(o); ok {
			vals = append(vals, v)
		}
	}
	return vals
}
