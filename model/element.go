package model

import "strings"

// ElementKind identifies the concrete element variant
type ElementKind int

const (
	KindCharacter ElementKind = iota
	KindFigure
	KindShape
	KindWord
	KindTextLine
	KindTextArea
	KindTextBlock
)

func (k ElementKind) String() string {
	switch k {
	case KindCharacter:
		return "Character"
	case KindFigure:
		return "Figure"
	case KindShape:
		return "Shape"
	case KindWord:
		return "Word"
	case KindTextLine:
		return "TextLine"
	case KindTextArea:
		return "TextArea"
	case KindTextBlock:
		return "TextBlock"
	default:
		return "Unknown"
	}
}

// Position places an element on a page. Page is a back reference and is not
// owned by the element.
type Position struct {
	Page *Page
	Rect Rectangle
}

// Element is implemented by every positioned element variant
type Element interface {
	Kind() ElementKind
	Rect() Rectangle
}

// Character is a single glyph drawn on a page
type Character struct {
	Position Position
	Text     string
	FontFace FontFace
	Color    Color
}

func (c *Character) Kind() ElementKind { return KindCharacter }
func (c *Character) Rect() Rectangle   { return c.Position.Rect }

// Figure is raster content placed on a page
type Figure struct {
	Position Position
}

func (f *Figure) Kind() ElementKind { return KindFigure }
func (f *Figure) Rect() Rectangle   { return f.Position.Rect }

// Shape is a painted vector segment, or an image made of a single color
type Shape struct {
	Position Position
	Color    Color
}

func (s *Shape) Kind() ElementKind { return KindShape }
func (s *Shape) Rect() Rectangle   { return s.Position.Rect }

// Word is a left-to-right run of characters without a whitespace gap
type Word struct {
	Position   Position
	Characters []*Character
	Text       string
}

func (w *Word) Kind() ElementKind { return KindWord }
func (w *Word) Rect() Rectangle   { return w.Position.Rect }

// TextArea is the set of characters found in one rectangular region of a page
type TextArea struct {
	Position   Position
	Characters []*Character
}

func (a *TextArea) Kind() ElementKind { return KindTextArea }
func (a *TextArea) Rect() Rectangle   { return a.Position.Rect }

// TextLine is a left-to-right sequence of words sharing a baseline.
// Baseline is nil when no baseline-aligned character was found.
type TextLine struct {
	Position  Position
	Words     []*Word
	Baseline  *Line
	Statistic *CharacterStatistic
	Text      string
}

func (l *TextLine) Kind() ElementKind { return KindTextLine }
func (l *TextLine) Rect() Rectangle   { return l.Position.Rect }

// Characters returns the characters of all words in order
func (l *TextLine) Characters() []*Character {
	var chars []*Character
	for _, w := range l.Words {
		chars = append(chars, w.Characters...)
	}
	return chars
}

// TextBlock is a run of consecutive lines that belong together
type TextBlock struct {
	Position           Position
	Lines              []*TextLine
	CharacterStatistic *CharacterStatistic
	LineStatistic      *TextLineStatistic
	Text               string
}

func (b *TextBlock) Kind() ElementKind { return KindTextBlock }
func (b *TextBlock) Rect() Rectangle   { return b.Position.Rect }

// TextOf returns the text carried by e. The second value is false for
// elements without text.
func TextOf(e Element) (string, bool) {
	switch v := e.(type) {
	case *Character:
		return v.Text, true
	case *Word:
		return v.Text, true
	case *TextLine:
		return v.Text, true
	case *TextBlock:
		return v.Text, true
	case *TextArea:
		var sb strings.Builder
		for _, c := range v.Characters {
			sb.WriteString(c.Text)
		}
		return sb.String(), true
	}
	return "", false
}

// HasText reports whether e carries text
func HasText(e Element) bool {
	_, ok := TextOf(e)
	return ok
}

// ColorOf returns the color of e, if it has one
func ColorOf(e Element) (Color, bool) {
	switch v := e.(type) {
	case *Character:
		return v.Color, true
	case *Shape:
		return v.Color, true
	}
	return Color{}, false
}

// HasColor reports whether e carries a color
func HasColor(e Element) bool {
	_, ok := ColorOf(e)
	return ok
}

// FontFaceOf returns the font face of a character
func FontFaceOf(e Element) (FontFace, bool) {
	if c, ok := e.(*Character); ok {
		return c.FontFace, true
	}
	return FontFace{}, false
}

// Color is an RGB color
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// ColorFromRGB converts components in the range [0, 1] to a Color, clamping
// out-of-range values.
func ColorFromRGB(r, g, b float64) Color {
	return Color{R: unitToUint8(r), G: unitToUint8(g), B: unitToUint8(b)}
}

func unitToUint8(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
