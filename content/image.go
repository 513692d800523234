package content

// Filter is one entry of a stream's filter chain with its decode parameters.
// Boolean parameters are stored as 0 or 1.
type Filter struct {
	Name   string
	Params map[string]int
}

// Param returns the named parameter or def when it is absent
func (f Filter) Param(name string, def int) int {
	if v, ok := f.Params[name]; ok {
		return v
	}
	return def
}

// Image is an image XObject or inline image with its still-encoded data
type Image struct {
	Width            int
	Height           int
	BitsPerComponent int
	ColorSpace       *ColorSpace
	ImageMask        bool
	// Decode holds the decode array, if any
	Decode  []float64
	Filters []Filter
	Data    []byte
}
