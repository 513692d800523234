package model

import "strings"

// Document is the result of processing a PDF file
type Document struct {
	Path  string
	Pages []*Page
	Fonts *FontRegistry

	CharacterStatistic *CharacterStatistic
	TextLineStatistic  *TextLineStatistic
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
		Fonts: NewFontRegistry(),
	}
}

// AddPage adds a page to the document. Pages without a number are numbered
// by their position.
func (d *Document) AddPage(page *Page) {
	if page.Number == 0 {
		page.Number = len(d.Pages) + 1
	}
	d.Pages = append(d.Pages, page)
}

// Page returns the page with the given 1-indexed number, or nil
func (d *Document) Page(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the number of processed pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Text returns the text of all pages separated by form feeds
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\f")
}
