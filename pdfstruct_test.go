package pdfstruct

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/layout"
	"github.com/tsawler/pdfstruct/model"
	"github.com/tsawler/pdfstruct/pdfsource"
)

const twoLines = "BT /F1 10 Tf 72 700 Td (Hello world) Tj 0 -12 Td (second line) Tj ET"

// memoryDoc builds a document with one page per content stream, all using
// a Helvetica-like font named F1
func memoryDoc(streams ...string) *content.DocumentData {
	res := content.ResourceMap{Fonts: map[string]content.Font{
		"F1": &content.SimpleFont{Name: "Helvetica"},
	}}
	doc := &content.DocumentData{}
	for _, s := range streams {
		doc.Pages = append(doc.Pages, &content.PageData{
			StreamData: content.StreamData{Res: res, Data: []byte(s)},
			Crop:       model.NewRectangle(0, 0, 612, 792),
		})
	}
	return doc
}

// writePDF writes a one-page PDF showing twoLines
func writePDF(t *testing.T) string {
	t.Helper()
	data := twoLines
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R" +
			" /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, o := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "two-lines.pdf")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))
	return path
}

// ============================================================================
// Terminal operations
// ============================================================================

func TestDocument(t *testing.T) {
	doc, warnings, err := FromDocument(memoryDoc(twoLines)).Document()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 1, doc.PageCount())

	page := doc.Pages[0]
	assert.Len(t, page.Characters, 20, "spaces advance the pen but are not characters")
	require.Len(t, page.TextLines, 2)
	assert.Equal(t, "Hello world", page.TextLines[0].Text)
	assert.Equal(t, "second line", page.TextLines[1].Text)
	require.Len(t, page.TextBlocks, 1)
	assert.Equal(t, "Hello world\nsecond line", page.TextBlocks[0].Text)
	assert.NotNil(t, doc.TextLineStatistic)
}

func TestText(t *testing.T) {
	text, _, err := FromDocument(memoryDoc(twoLines, "BT /F1 10 Tf 72 700 Td (Page two) Tj ET")).Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello world\nsecond line\fPage two", text)
}

func TestBlocksAndLines(t *testing.T) {
	src := memoryDoc(twoLines, twoLines)

	blocks, _, err := FromDocument(src).Blocks()
	require.NoError(t, err)
	assert.Len(t, blocks, 2)

	lines, _, err := FromDocument(src).Pages(2).Lines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Position.Page.Number)
}

func TestSingleSpacedLines(t *testing.T) {
	// glyph boxes are 11.17pt tall at 10pt, taller than the 11pt leading
	font := &content.SimpleFont{Name: "ArialMT", Asc: 905, Desc: -212}
	stream := "BT /F1 10 Tf 11 TL 72 700 Td (Hello world) Tj T* (second line) Tj T* (third row) Tj ET"
	src := &content.DocumentData{Pages: []content.Page{&content.PageData{
		StreamData: content.StreamData{
			Res:  content.ResourceMap{Fonts: map[string]content.Font{"F1": font}},
			Data: []byte(stream),
		},
		Crop: model.NewRectangle(0, 0, 612, 792),
	}}}

	lines, _, err := FromDocument(src).Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello world", "second line", "third row"}, lineTexts(lines))
}

func lineTexts(lines []*model.TextLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestPageCount(t *testing.T) {
	count, err := FromDocument(memoryDoc(twoLines, twoLines, twoLines)).PageCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestWarningsAreReturned(t *testing.T) {
	doc, warnings, err := FromDocument(memoryDoc("BT /F9 10 Tf 72 700 Td (x) Tj ET")).Document()
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Equal(t, 1, warnings[0].Page)
	assert.ErrorIs(t, warnings[0], content.ErrNotFound)
	assert.Contains(t, FormatWarnings(warnings), "page 1")
	assert.Empty(t, doc.Pages[0].Characters)
}

func TestOpenFile(t *testing.T) {
	path := writePDF(t)

	doc, _, err := Open(path).Document()
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].TextLines, 2)
	assert.Equal(t, "Hello world", doc.Pages[0].TextLines[0].Text)

	analyzed, err := AnalyzeDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Text(), analyzed.Text())

	validated, _, err := Open(path).Validate().Text()
	require.NoError(t, err)
	assert.Equal(t, doc.Text(), validated)
}

func TestOpenErrors(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Text()
	require.Error(t, err)
	var openErr *pdfsource.OpenError
	assert.True(t, errors.As(err, &openErr))

	_, err = Open("").PageCount()
	assert.Error(t, err)
}

// ============================================================================
// Configuration
// ============================================================================

func TestPageSelection(t *testing.T) {
	src := memoryDoc(twoLines, "BT /F1 10 Tf 72 700 Td (Page two) Tj ET", twoLines)

	doc, _, err := FromDocument(src).Pages(3, 2, 2).Document()
	require.NoError(t, err)
	require.Equal(t, 2, doc.PageCount())
	assert.Equal(t, 2, doc.Pages[0].Number)
	assert.Equal(t, 3, doc.Pages[1].Number)

	doc, _, err = FromDocument(src).PageRange(1, 2).Document()
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())

	_, _, err = FromDocument(src).Pages(4).Document()
	assert.ErrorContains(t, err, "out of range")

	_, _, err = FromDocument(src).PageRange(3, 1).Document()
	assert.Error(t, err)
}

func TestConfigurationIsImmutable(t *testing.T) {
	base := FromDocument(memoryDoc(twoLines, twoLines))
	one := base.Pages(1)
	_ = one.Pages(2)

	assert.Empty(t, base.options.pages)
	assert.Equal(t, []int{1}, one.options.pages)

	cfg := layout.DefaultConfig()
	cfg.WordGapFactor = 10
	wide := base.Layout(cfg)
	assert.Equal(t, layout.DefaultConfig(), base.options.layout)
	assert.Equal(t, 10.0, wide.options.layout.WordGapFactor)
}

func TestLayoutOption(t *testing.T) {
	cfg := layout.DefaultConfig()
	// a gap of two font sizes never separates words
	cfg.WordGapFactor = 2
	lines, _, err := FromDocument(memoryDoc(twoLines)).Layout(cfg).Lines()
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Helloworld", lines[0].Text)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 1, Must(FromDocument(memoryDoc(twoLines)).PageCount()))
	assert.Panics(t, func() { Must(Open("").PageCount()) })
	assert.Panics(t, func() { MustText(Open("nonexistent.pdf").Text()) })
}
