package pdfsource

import (
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfstruct/model"
)

// maxObjectDepth bounds the conversion of nested objects. Indirect
// references can form cycles (Parent, Kids).
const maxObjectDepth = 8

// Name is a PDF name object converted by toGo
type Name string

// Stream is a PDF stream converted by toGo. The payload is read on demand.
type Stream struct {
	Dict map[string]any
	read func() ([]byte, error)
}

// Bytes returns the decoded stream payload
func (s Stream) Bytes() ([]byte, error) {
	if s.read == nil {
		return nil, nil
	}
	return s.read()
}

// toGo converts a reader value into plain Go values: nil, bool, int64,
// float64, string, Name, []any, map[string]any or Stream.
func toGo(v pdf.Value) any {
	return convert(v, 0)
}

func convert(v pdf.Value, depth int) any {
	if depth > maxObjectDepth {
		return nil
	}
	switch v.Kind() {
	case pdf.Bool:
		return v.Bool()
	case pdf.Integer:
		return v.Int64()
	case pdf.Real:
		return v.Float64()
	case pdf.String:
		return v.RawString()
	case pdf.Name:
		return Name(v.Name())
	case pdf.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = convert(v.Index(i), depth+1)
		}
		return out
	case pdf.Dict:
		return convertDict(v, depth)
	case pdf.Stream:
		return Stream{
			Dict: convertDict(v, depth),
			read: func() ([]byte, error) { return readStream(v) },
		}
	}
	return nil
}

func convertDict(v pdf.Value, depth int) map[string]any {
	out := make(map[string]any)
	for _, k := range v.Keys() {
		out[k] = convert(v.Key(k), depth+1)
	}
	return out
}

// readStream returns the decoded payload of a stream value
func readStream(v pdf.Value) (data []byte, err error) {
	err = guard("read stream", func() error {
		rc := v.Reader()
		defer rc.Close()
		data, err = io.ReadAll(rc)
		return err
	})
	return data, err
}

// number returns a numeric object as float64
func number(o any) (float64, bool) {
	switch n := o.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func numberOr(o any, def float64) float64 {
	if n, ok := number(o); ok {
		return n
	}
	return def
}

// numbers converts an array of numbers; non-numeric entries fail
func numbers(o any) ([]float64, bool) {
	arr, ok := o.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(arr))
	for i, e := range arr {
		n, ok := number(e)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// matrixOf converts a six-number array, or returns the identity
func matrixOf(o any) model.Matrix {
	m, ok := numbers(o)
	if !ok || len(m) != 6 {
		return model.Identity()
	}
	return model.NewMatrix(m[0], m[1], m[2], m[3], m[4], m[5])
}

// rectangleOf converts a four-number box array
func rectangleOf(o any) (model.Rectangle, bool) {
	b, ok := numbers(o)
	if !ok || len(b) != 4 {
		return model.Rectangle{}, false
	}
	return model.NewRectangle(b[0], b[1], b[2], b[3]), true
}

func valueNumber(v pdf.Value) (float64, bool) {
	return number(toGo(v))
}
