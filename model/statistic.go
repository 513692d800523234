package model

import "math"

// Counter counts occurrences of comparable keys. When several keys share the
// highest count, the one added first wins.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// NewCounter creates an empty counter
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add records one occurrence of k
func (c *Counter[K]) Add(k K) {
	c.AddN(k, 1)
}

// AddN records n occurrences of k
func (c *Counter[K]) AddN(k K, n int) {
	if n <= 0 {
		return
	}
	if c.counts == nil {
		c.counts = make(map[K]int)
	}
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k] += n
}

// Count returns the number of occurrences of k
func (c *Counter[K]) Count(k K) int {
	if c == nil {
		return 0
	}
	return c.counts[k]
}

// Len returns the number of distinct keys
func (c *Counter[K]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Total returns the number of recorded occurrences
func (c *Counter[K]) Total() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns the distinct keys in insertion order
func (c *Counter[K]) Keys() []K {
	if c == nil {
		return nil
	}
	out := make([]K, len(c.order))
	copy(out, c.order)
	return out
}

// MostCommon returns the most frequent key. ok is false for an empty counter.
func (c *Counter[K]) MostCommon() (k K, ok bool) {
	if c == nil {
		return k, false
	}
	best := 0
	for _, key := range c.order {
		if n := c.counts[key]; n > best {
			best = n
			k = key
			ok = true
		}
	}
	return k, ok
}

// Merge returns a new counter holding the occurrences of c and other
func (c *Counter[K]) Merge(other *Counter[K]) *Counter[K] {
	out := NewCounter[K]()
	if c != nil {
		for _, k := range c.order {
			out.AddN(k, c.counts[k])
		}
	}
	if other != nil {
		for _, k := range other.order {
			out.AddN(k, other.counts[k])
		}
	}
	return out
}

// FloatCounter counts float values rounded to DefaultPrecision. NaN and
// infinite values are never recorded.
type FloatCounter struct {
	c Counter[float64]
}

// NewFloatCounter creates an empty counter
func NewFloatCounter() *FloatCounter {
	return &FloatCounter{c: Counter[float64]{counts: make(map[float64]int)}}
}

// Add records one occurrence of v unless v is NaN or infinite
func (f *FloatCounter) Add(v float64) {
	f.AddN(v, 1)
}

// AddN records n occurrences of v unless v is NaN or infinite
func (f *FloatCounter) AddN(v float64, n int) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	f.c.AddN(Round(v, DefaultPrecision), n)
}

// Count returns the occurrences of v
func (f *FloatCounter) Count(v float64) int {
	if f == nil {
		return 0
	}
	return f.c.Count(Round(v, DefaultPrecision))
}

// Len returns the number of distinct values
func (f *FloatCounter) Len() int {
	if f == nil {
		return 0
	}
	return f.c.Len()
}

// Total returns the number of recorded values
func (f *FloatCounter) Total() int {
	if f == nil {
		return 0
	}
	return f.c.Total()
}

// Values returns the distinct values in insertion order
func (f *FloatCounter) Values() []float64 {
	if f == nil {
		return nil
	}
	return f.c.Keys()
}

// MostCommon returns the most frequent value, or NaN when empty
func (f *FloatCounter) MostCommon() float64 {
	if f == nil {
		return math.NaN()
	}
	v, ok := f.c.MostCommon()
	if !ok {
		return math.NaN()
	}
	return v
}

// Smallest returns the smallest value, or NaN when empty
func (f *FloatCounter) Smallest() float64 {
	out := math.NaN()
	for _, v := range f.Values() {
		if math.IsNaN(out) || v < out {
			out = v
		}
	}
	return out
}

// Largest returns the largest value, or NaN when empty
func (f *FloatCounter) Largest() float64 {
	out := math.NaN()
	for _, v := range f.Values() {
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}

// Average returns the mean over all recorded occurrences, or NaN when empty
func (f *FloatCounter) Average() float64 {
	total := f.Total()
	if total == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range f.Values() {
		sum += v * float64(f.c.counts[v])
	}
	return sum / float64(total)
}

// Merge returns a new counter holding the values of f and other
func (f *FloatCounter) Merge(other *FloatCounter) *FloatCounter {
	out := NewFloatCounter()
	var a, b *Counter[float64]
	if f != nil {
		a = &f.c
	}
	if other != nil {
		b = &other.c
	}
	out.c = *a.Merge(b)
	return out
}

// CharacterStatistic aggregates the typography of a set of characters
type CharacterStatistic struct {
	Heights   *FloatCounter
	Widths    *FloatCounter
	FontSizes *FloatCounter
	FontFaces *Counter[FontFace]
	Colors    *Counter[Color]

	// Extent is the union of all character rectangles. Valid only when
	// Count > 0.
	Extent Rectangle
	Count  int
}

// NewCharacterStatistic creates an empty statistic
func NewCharacterStatistic() *CharacterStatistic {
	return &CharacterStatistic{
		Heights:   NewFloatCounter(),
		Widths:    NewFloatCounter(),
		FontSizes: NewFloatCounter(),
		FontFaces: NewCounter[FontFace](),
		Colors:    NewCounter[Color](),
	}
}

// Add records one character
func (s *CharacterStatistic) Add(c *Character) {
	r := c.Rect()
	s.Heights.Add(r.Height())
	s.Widths.Add(r.Width())
	s.FontSizes.Add(c.FontFace.Size)
	s.FontFaces.Add(c.FontFace)
	s.Colors.Add(c.Color)
	if s.Count == 0 {
		s.Extent = r
	} else {
		s.Extent = s.Extent.Union(r)
	}
	s.Count++
}

func (s *CharacterStatistic) MostCommonHeight() float64   { return s.Heights.MostCommon() }
func (s *CharacterStatistic) MostCommonWidth() float64    { return s.Widths.MostCommon() }
func (s *CharacterStatistic) MostCommonFontSize() float64 { return s.FontSizes.MostCommon() }
func (s *CharacterStatistic) SmallestFontSize() float64   { return s.FontSizes.Smallest() }
func (s *CharacterStatistic) LargestFontSize() float64    { return s.FontSizes.Largest() }
func (s *CharacterStatistic) AverageHeight() float64      { return s.Heights.Average() }

// MostCommonFontFace returns the most frequent face; ok is false when empty
func (s *CharacterStatistic) MostCommonFontFace() (FontFace, bool) {
	if s == nil {
		return FontFace{}, false
	}
	return s.FontFaces.MostCommon()
}

// MostCommonColor returns the most frequent color; ok is false when empty
func (s *CharacterStatistic) MostCommonColor() (Color, bool) {
	if s == nil {
		return Color{}, false
	}
	return s.Colors.MostCommon()
}

// Merge returns a new statistic covering both inputs
func (s *CharacterStatistic) Merge(other *CharacterStatistic) *CharacterStatistic {
	if s == nil {
		s = NewCharacterStatistic()
	}
	if other == nil {
		other = NewCharacterStatistic()
	}
	out := &CharacterStatistic{
		Heights:   s.Heights.Merge(other.Heights),
		Widths:    s.Widths.Merge(other.Widths),
		FontSizes: s.FontSizes.Merge(other.FontSizes),
		FontFaces: s.FontFaces.Merge(other.FontFaces),
		Colors:    s.Colors.Merge(other.Colors),
		Count:     s.Count + other.Count,
	}
	switch {
	case s.Count > 0 && other.Count > 0:
		out.Extent = s.Extent.Union(other.Extent)
	case s.Count > 0:
		out.Extent = s.Extent
	case other.Count > 0:
		out.Extent = other.Extent
	}
	return out
}

// TextLineStatistic aggregates the vertical rhythm of text lines
type TextLineStatistic struct {
	linePitches map[FontFace]*FloatCounter
	faces       []FontFace

	WhitespaceWidths *FloatCounter
	LineHeights      *FloatCounter
}

// NewTextLineStatistic creates an empty statistic
func NewTextLineStatistic() *TextLineStatistic {
	return &TextLineStatistic{
		linePitches:      make(map[FontFace]*FloatCounter),
		WhitespaceWidths: NewFloatCounter(),
		LineHeights:      NewFloatCounter(),
	}
}

// AddLinePitch records the pitch measured for a line set in face. Unknown
// (NaN) pitches are ignored.
func (s *TextLineStatistic) AddLinePitch(face FontFace, pitch float64) {
	s.addLinePitchN(face, pitch, 1)
}

func (s *TextLineStatistic) addLinePitchN(face FontFace, pitch float64, n int) {
	if math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		return
	}
	c, ok := s.linePitches[face]
	if !ok {
		c = NewFloatCounter()
		s.linePitches[face] = c
		s.faces = append(s.faces, face)
	}
	c.AddN(pitch, n)
}

// LinePitches returns the pitch counter for face, or nil
func (s *TextLineStatistic) LinePitches(face FontFace) *FloatCounter {
	if s == nil {
		return nil
	}
	return s.linePitches[face]
}

// FontFaces returns the faces with recorded pitches, in insertion order
func (s *TextLineStatistic) FontFaces() []FontFace {
	if s == nil {
		return nil
	}
	out := make([]FontFace, len(s.faces))
	copy(out, s.faces)
	return out
}

// ExpectedLinePitch returns the most common pitch for face, or NaN when no
// pitch was recorded for it.
func (s *TextLineStatistic) ExpectedLinePitch(face FontFace) float64 {
	return s.LinePitches(face).MostCommon()
}

// MostCommonWhitespaceWidth returns the typical gap between words, or NaN
func (s *TextLineStatistic) MostCommonWhitespaceWidth() float64 {
	if s == nil {
		return math.NaN()
	}
	return s.WhitespaceWidths.MostCommon()
}

// Merge returns a new statistic covering both inputs
func (s *TextLineStatistic) Merge(other *TextLineStatistic) *TextLineStatistic {
	out := NewTextLineStatistic()
	for _, in := range []*TextLineStatistic{s, other} {
		if in == nil {
			continue
		}
		for _, face := range in.faces {
			c := in.linePitches[face]
			for _, v := range c.Values() {
				out.addLinePitchN(face, v, c.Count(v))
			}
		}
		out.WhitespaceWidths = out.WhitespaceWidths.Merge(in.WhitespaceWidths)
		out.LineHeights = out.LineHeights.Merge(in.LineHeights)
	}
	return out
}
