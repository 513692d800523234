package model

import "strings"

// Page holds everything extracted from one page
type Page struct {
	Number  int       // 1-indexed page number
	CropBox Rectangle // Visible region in default user space

	// Elements emitted by the content-stream interpreter, in drawing order
	Characters []*Character
	Figures    []*Figure
	Shapes     []*Shape

	// Layout produced by the tokenizers
	TextAreas  []*TextArea
	TextLines  []*TextLine
	TextBlocks []*TextBlock

	CharacterStatistic *CharacterStatistic
	TextLineStatistic  *TextLineStatistic
}

// NewPage creates an empty page
func NewPage(number int, cropBox Rectangle) *Page {
	return &Page{
		Number:  number,
		CropBox: cropBox,
	}
}

// PositionOf returns a position on this page
func (p *Page) PositionOf(r Rectangle) Position {
	return Position{Page: p, Rect: r}
}

// AddCharacter appends a character
func (p *Page) AddCharacter(c *Character) {
	c.Position.Page = p
	p.Characters = append(p.Characters, c)
}

// AddFigure appends a figure
func (p *Page) AddFigure(f *Figure) {
	f.Position.Page = p
	p.Figures = append(p.Figures, f)
}

// AddShape appends a shape
func (p *Page) AddShape(s *Shape) {
	s.Position.Page = p
	p.Shapes = append(p.Shapes, s)
}

// Text joins the text of all blocks, separated by blank lines. Before the
// layout pass it falls back to the raw character stream.
func (p *Page) Text() string {
	if len(p.TextBlocks) == 0 {
		var sb strings.Builder
		for _, c := range p.Characters {
			sb.WriteString(c.Text)
		}
		return sb.String()
	}
	parts := make([]string, 0, len(p.TextBlocks))
	for _, b := range p.TextBlocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n\n")
}
