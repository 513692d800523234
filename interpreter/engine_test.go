package interpreter

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/contentstream"
	"github.com/tsawler/pdfstruct/graphicsstate"
	"github.com/tsawler/pdfstruct/model"
)

// ============================================================================
// Helpers
// ============================================================================

var letter = model.NewRectangle(0, 0, 612, 792)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// helvetica has a 747 unit wide "H"; all other codes use the default
// width of 500
func helvetica() *content.SimpleFont {
	return &content.SimpleFont{
		Name:      "ABCDEF+Helvetica",
		FirstChar: 'H',
		Widths:    []float64{747},
		Asc:       680,
	}
}

func pageOf(data string, res content.Resources) *content.PageData {
	return &content.PageData{
		StreamData: content.StreamData{Res: res, Data: []byte(data)},
		Crop:       letter,
	}
}

func docOf(pages ...*content.PageData) *content.DocumentData {
	d := &content.DocumentData{}
	for _, p := range pages {
		d.Pages = append(d.Pages, p)
	}
	return d
}

func fontResources() content.ResourceMap {
	return content.ResourceMap{Fonts: map[string]content.Font{"F1": helvetica()}}
}

func parse(t *testing.T, src content.Document, opts ...Option) (*model.Document, *Engine) {
	t.Helper()
	eng := New(append([]Option{WithLogger(quietLogger())}, opts...)...)
	doc, err := eng.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc, eng
}

func parsePage(t *testing.T, data string, res content.Resources, opts ...Option) (*model.Page, *Engine) {
	t.Helper()
	doc, eng := parse(t, docOf(pageOf(data, res)), opts...)
	if doc.PageCount() != 1 {
		t.Fatalf("PageCount() = %d, want 1", doc.PageCount())
	}
	return doc.Pages[0], eng
}

func rects[E model.Element](elems []E) []model.Rectangle {
	out := make([]model.Rectangle, len(elems))
	for i, e := range elems {
		out[i] = e.Rect()
	}
	return out
}

func approxRect(a, b model.Rectangle) bool {
	const eps = 1e-6
	return math.Abs(a.MinX-b.MinX) < eps && math.Abs(a.MinY-b.MinY) < eps &&
		math.Abs(a.MaxX-b.MaxX) < eps && math.Abs(a.MaxY-b.MaxY) < eps
}

var rectCmp = cmp.Comparer(approxRect)

// brokenStream is a stream whose content cannot be read
type brokenStream struct{}

func (brokenStream) Matrix() model.Matrix         { return model.Identity() }
func (brokenStream) Resources() content.Resources { return nil }
func (brokenStream) Content() ([]byte, error)     { return nil, errors.New("corrupt stream") }

// ============================================================================
// Scenarios
// ============================================================================

func TestScenarioTextOnlyPage(t *testing.T) {
	page, eng := parsePage(t,
		"BT /F1 10 Tf 1 0 0 1 148.71 707.13 Tm (Hello World) Tj 0 -12 Td (Goodbye World) Tj ET",
		fontResources())

	if len(page.Figures) != 0 {
		t.Errorf("Figures = %d, want 0", len(page.Figures))
	}
	if len(page.Shapes) != 0 {
		t.Errorf("Shapes = %d, want 0", len(page.Shapes))
	}
	if len(page.Characters) != 22 {
		t.Fatalf("Characters = %d, want 22", len(page.Characters))
	}

	first := page.Characters[0]
	if first.Text != "H" {
		t.Errorf("first character = %q, want %q", first.Text, "H")
	}
	want := model.NewRectangle(148.71, 707.13, 156.18, 713.93)
	if !approxRect(first.Rect(), want) {
		t.Errorf("first character box = %+v, want %+v", first.Rect(), want)
	}
	if first.FontFace.Font.Name != "Helvetica" || first.FontFace.Size != 10 {
		t.Errorf("font face = %s %v, want Helvetica 10", first.FontFace.Font.Name, first.FontFace.Size)
	}
	if first.Position.Page != page {
		t.Error("character is not linked to its page")
	}
	if len(eng.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", eng.Warnings())
	}
}

func TestScenarioImageAndText(t *testing.T) {
	res := fontResources()
	res.XObjects = map[string]content.XObject{
		"Im1": &content.ImageXObject{Img: &content.Image{
			Width: 2, Height: 1, BitsPerComponent: 8,
			ColorSpace: content.RGBSpace,
			Data:       []byte{255, 0, 0, 0, 0, 255},
		}},
	}
	page, _ := parsePage(t,
		"q 100 0 0 50 72 600 cm /Im1 Do Q BT /F1 12 Tf 72 560 Td (Hello,World!) Tj ET",
		res)

	if len(page.Figures) != 1 {
		t.Fatalf("Figures = %d, want 1", len(page.Figures))
	}
	if len(page.Shapes) != 0 {
		t.Errorf("Shapes = %d, want 0", len(page.Shapes))
	}
	if len(page.Characters) != 12 {
		t.Errorf("Characters = %d, want 12", len(page.Characters))
	}
	want := model.NewRectangle(72, 600, 172, 650)
	if diff := cmp.Diff(want, page.Figures[0].Rect(), rectCmp); diff != "" {
		t.Errorf("figure box mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioVectorRectangles(t *testing.T) {
	page, _ := parsePage(t,
		"0 0 1 RG 50 50 100 40 re S 50 20 m 150 20 l S BT /F1 10 Tf 60 60 Td (A) Tj ET",
		fontResources())

	if len(page.Figures) != 0 {
		t.Errorf("Figures = %d, want 0", len(page.Figures))
	}
	if len(page.Characters) != 1 {
		t.Errorf("Characters = %d, want 1", len(page.Characters))
	}
	want := []model.Rectangle{
		model.NewRectangle(50, 50, 150, 50),
		model.NewRectangle(150, 50, 150, 90),
		model.NewRectangle(50, 90, 150, 90),
		model.NewRectangle(50, 50, 50, 90),
		model.NewRectangle(50, 20, 150, 20),
	}
	if diff := cmp.Diff(want, rects(page.Shapes), rectCmp); diff != "" {
		t.Errorf("shape boxes mismatch (-want +got):\n%s", diff)
	}
	for _, s := range page.Shapes {
		if s.Color != (model.Color{B: 255}) {
			t.Errorf("shape color = %+v, want blue", s.Color)
		}
	}
}

// ============================================================================
// Painting
// ============================================================================

func TestPaintColor(t *testing.T) {
	tests := []struct {
		name string
		op   string
		want model.Color
	}{
		{"stroke uses stroking color", "S", model.Color{B: 255}},
		{"close and stroke", "s", model.Color{B: 255}},
		{"fill uses non-stroking color", "f", model.Color{R: 255}},
		{"even-odd fill", "f*", model.Color{R: 255}},
		{"fill and stroke", "B", model.Color{R: 255}},
		{"close, fill and stroke even-odd", "b*", model.Color{R: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, _ := parsePage(t, "0 0 1 RG 1 0 0 rg 10 10 20 20 re "+tt.op, nil)
			if len(page.Shapes) != 4 {
				t.Fatalf("Shapes = %d, want 4", len(page.Shapes))
			}
			for _, s := range page.Shapes {
				if s.Color != tt.want {
					t.Errorf("color = %+v, want %+v", s.Color, tt.want)
				}
			}
		})
	}
}

func TestEndPathEmitsNothing(t *testing.T) {
	page, eng := parsePage(t, "10 10 20 20 re W n 0 0 m 5 5 l S", nil)
	if len(page.Shapes) != 1 {
		t.Fatalf("Shapes = %d, want 1", len(page.Shapes))
	}
	if got := eng.State().ClippingWindingRule; got != graphicsstate.NoWindingRule {
		t.Errorf("ClippingWindingRule = %v, want none", got)
	}
}

func TestPathUsesCTM(t *testing.T) {
	page, _ := parsePage(t, "2 0 0 2 10 10 cm 0 0 m 5 0 l S", nil)
	want := []model.Rectangle{model.NewRectangle(10, 10, 20, 10)}
	if diff := cmp.Diff(want, rects(page.Shapes), rectCmp); diff != "" {
		t.Errorf("shape boxes mismatch (-want +got):\n%s", diff)
	}
}

func TestCurveSegments(t *testing.T) {
	page, _ := parsePage(t, "0 0 m 10 10 20 10 30 0 c 40 10 50 0 v S", nil)
	want := []model.Rectangle{
		model.NewRectangle(0, 0, 30, 0),
		model.NewRectangle(30, 0, 50, 0),
	}
	if diff := cmp.Diff(want, rects(page.Shapes), rectCmp); diff != "" {
		t.Errorf("shape boxes mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Images
// ============================================================================

func TestSingleColorImageIsShape(t *testing.T) {
	res := content.ResourceMap{XObjects: map[string]content.XObject{
		"Im1": &content.ImageXObject{Img: &content.Image{
			Width: 2, Height: 2, BitsPerComponent: 8,
			ColorSpace: content.GraySpace,
			Data:       []byte{0, 0, 0, 0},
		}},
	}}
	page, _ := parsePage(t, "q 20 0 0 10 5 5 cm /Im1 Do Q", res)
	if len(page.Figures) != 0 || len(page.Shapes) != 1 {
		t.Fatalf("Figures = %d, Shapes = %d, want 0 and 1", len(page.Figures), len(page.Shapes))
	}
	if page.Shapes[0].Color != model.Black {
		t.Errorf("color = %+v, want black", page.Shapes[0].Color)
	}
}

func TestUndecodableImageIsFigure(t *testing.T) {
	res := content.ResourceMap{XObjects: map[string]content.XObject{
		"Im1": &content.ImageXObject{Img: &content.Image{
			Width: 2, Height: 2, BitsPerComponent: 8,
			Filters: []content.Filter{{Name: "JBIG2Decode"}},
			Data:    []byte{1, 2, 3},
		}},
	}}
	page, _ := parsePage(t, "/Im1 Do", res)
	if len(page.Figures) != 1 || len(page.Shapes) != 0 {
		t.Errorf("Figures = %d, Shapes = %d, want 1 and 0", len(page.Figures), len(page.Shapes))
	}
}

func TestInlineImage(t *testing.T) {
	page, eng := parsePage(t, "q 10 0 0 10 100 100 cm BI /W 1 /H 1 /BPC 8 /CS /G ID \x80 EI Q", nil)
	if len(page.Shapes) != 1 {
		t.Fatalf("Shapes = %d, want 1 (warnings %v)", len(page.Shapes), eng.Warnings())
	}
	want := model.NewRectangle(100, 100, 110, 110)
	if !approxRect(page.Shapes[0].Rect(), want) {
		t.Errorf("box = %+v, want %+v", page.Shapes[0].Rect(), want)
	}
	if got := page.Shapes[0].Color; got != (model.Color{R: 128, G: 128, B: 128}) {
		t.Errorf("color = %+v, want mid gray", got)
	}
}

func TestInlineFilters(t *testing.T) {
	filters := inlineFilters(
		contentstream.Array{contentstream.Name("ASCIIHexDecode"), contentstream.Name("FlateDecode")},
		contentstream.Array{contentstream.Null{}, contentstream.Dict{"Predictor": contentstream.Int(12), "Columns": contentstream.Int(3)}},
	)
	want := []content.Filter{
		{Name: "ASCIIHexDecode"},
		{Name: "FlateDecode", Params: map[string]int{"Predictor": 12, "Columns": 3}},
	}
	if diff := cmp.Diff(want, filters); diff != "" {
		t.Errorf("inlineFilters() mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Text
// ============================================================================

func TestTextPositioning(t *testing.T) {
	tests := []struct {
		name  string
		ops   string
		wantX []float64
	}{
		{"advance by width", "BT /F1 10 Tf 0 0 Td (AB) Tj ET", []float64{0, 5}},
		{"TJ adjustment", "BT /F1 10 Tf [(A) -1000 (B)] TJ ET", []float64{0, 15}},
		{"character spacing", "BT /F1 10 Tf 2 Tc (AB) Tj ET", []float64{0, 7}},
		{"word spacing on space", "BT /F1 10 Tf 5 Tw (A B) Tj ET", []float64{0, 15}},
		{"horizontal scaling", "BT /F1 10 Tf 50 Tz (AB) Tj ET", []float64{0, 2.5}},
		{"Td is relative to line start", "BT /F1 10 Tf 10 0 Td (A) Tj 10 0 Td (B) Tj ET", []float64{10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, _ := parsePage(t, tt.ops, fontResources())
			var got []float64
			for _, c := range page.Characters {
				got = append(got, c.Rect().MinX)
			}
			if diff := cmp.Diff(tt.wantX, got); diff != "" {
				t.Errorf("x positions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextLineUsesLeading(t *testing.T) {
	page, _ := parsePage(t, "BT /F1 10 Tf 12 TL 0 100 Td (A) Tj T* (B) Tj (C) ' ET", fontResources())
	var got []float64
	for _, c := range page.Characters {
		got = append(got, c.Rect().MinY)
	}
	if diff := cmp.Diff([]float64{100, 88, 76}, got); diff != "" {
		t.Errorf("y positions mismatch (-want +got):\n%s", diff)
	}
}

func TestTextColorAndRenderingMode(t *testing.T) {
	page, _ := parsePage(t, "0 1 0 RG 1 0 0 rg BT /F1 10 Tf (A) Tj 1 Tr (B) Tj ET", fontResources())
	if len(page.Characters) != 2 {
		t.Fatalf("Characters = %d, want 2", len(page.Characters))
	}
	if page.Characters[0].Color != (model.Color{R: 255}) {
		t.Errorf("fill color = %+v, want red", page.Characters[0].Color)
	}
	if page.Characters[1].Color != (model.Color{G: 255}) {
		t.Errorf("stroke color = %+v, want green", page.Characters[1].Color)
	}
}

func TestRenderedFontSize(t *testing.T) {
	page, _ := parsePage(t, "BT /F1 1 Tf 12 0 0 12 0 0 Tm (A) Tj ET", fontResources())
	if got := page.Characters[0].FontFace.Size; got != 12 {
		t.Errorf("font size = %v, want 12", got)
	}
}

type ligatures struct{}

func (ligatures) Decode(raw string) string {
	if raw == "\x01" {
		return "ﬁ"
	}
	return raw
}

func TestGlyphTextNormalized(t *testing.T) {
	f := helvetica()
	f.Decoder = ligatures{}
	res := content.ResourceMap{Fonts: map[string]content.Font{"F1": f}}
	page, _ := parsePage(t, "BT /F1 10 Tf (\\001) Tj ET", res)
	if len(page.Characters) != 1 || page.Characters[0].Text != "fi" {
		t.Errorf("characters = %v, want one \"fi\"", page.Characters)
	}
}

func TestMissingFont(t *testing.T) {
	page, eng := parsePage(t, "BT /F9 10 Tf (A) Tj ET", fontResources())
	if len(page.Characters) != 0 {
		t.Errorf("Characters = %d, want 0", len(page.Characters))
	}
	if len(eng.Warnings()) != 2 {
		t.Fatalf("warnings = %v, want Tf and Tj failures", eng.Warnings())
	}
	if !errors.Is(eng.Warnings()[0], content.ErrNotFound) {
		t.Errorf("first warning = %v, want ErrNotFound", eng.Warnings()[0])
	}
}

func TestType3Glyph(t *testing.T) {
	proc := &content.StreamData{Data: []byte(
		"1000 0 d0 0 0 m 1000 0 l S BI /W 1 /H 1 /BPC 8 /CS /G ID \x00 EI")}
	f := &content.SimpleFont{
		Name:      "T3",
		IsType3:   true,
		FirstChar: 'A',
		Widths:    []float64{1000},
		Asc:       1000,
		Procs:     map[int]content.Stream{'A': proc},
	}
	res := content.ResourceMap{Fonts: map[string]content.Font{"T3": f}}
	page, eng := parsePage(t, "BT /T3 10 Tf 1 0 0 1 100 100 Tm (AA) Tj ET", res)

	if len(page.Characters) != 2 {
		t.Fatalf("Characters = %d, want 2", len(page.Characters))
	}
	if len(page.Figures) != 0 {
		t.Errorf("Figures = %d, want 0: inline images in glyph procedures are skipped", len(page.Figures))
	}
	want := []model.Rectangle{
		model.NewRectangle(100, 100, 110, 100),
		model.NewRectangle(110, 100, 120, 100),
	}
	if diff := cmp.Diff(want, rects(page.Shapes), rectCmp); diff != "" {
		t.Errorf("glyph shapes mismatch (-want +got):\n%s", diff)
	}
	if !page.Characters[0].FontFace.Font.Type3 {
		t.Error("font not marked Type3")
	}
	if len(eng.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", eng.Warnings())
	}
}

// ============================================================================
// Scoped restore and error recovery
// ============================================================================

func TestFormRestoresState(t *testing.T) {
	form := &content.FormXObject{Stream: &content.StreamData{
		Mat:  model.Translate(100, 0),
		Data: []byte("q q 2 0 0 2 0 0 cm 1 0 0 rg 0 0 m 10 0 l f"),
	}}
	res := content.ResourceMap{XObjects: map[string]content.XObject{"Fm1": form}}
	page, eng := parsePage(t, "/Fm1 Do 0 0 m 10 0 l f", res)

	want := []model.Rectangle{
		model.NewRectangle(100, 0, 120, 0),
		model.NewRectangle(0, 0, 10, 0),
	}
	if diff := cmp.Diff(want, rects(page.Shapes), rectCmp); diff != "" {
		t.Errorf("shape boxes mismatch (-want +got):\n%s", diff)
	}
	if page.Shapes[1].Color != model.Black {
		t.Errorf("color after form = %+v, want black", page.Shapes[1].Color)
	}
	if !eng.State().CTM.IsIdentity() {
		t.Errorf("CTM after form = %v, want identity", eng.State().CTM)
	}
	if eng.StackDepth() != 1 {
		t.Errorf("stack depth = %d, want 1", eng.StackDepth())
	}
}

func TestRestoreOnHandlerFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		wantErr error
	}{
		{"error", func(*Engine, []contentstream.Object) error { return errors.New("boom") }, nil},
		{"panic", func(*Engine, []contentstream.Object) error { panic("boom") }, ErrPanic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &content.FormXObject{Stream: &content.StreamData{
				Data: []byte("q 3 0 0 3 0 0 cm Xx 0 0 m 1 0 l S"),
			}}
			res := content.ResourceMap{XObjects: map[string]content.XObject{"Fm1": form}}
			page, eng := parsePage(t, "/Fm1 Do 0 0 m 1 0 l S", res, WithHandler("Xx", tt.handler))

			if len(page.Shapes) != 2 {
				t.Fatalf("Shapes = %d, want 2: processing continues after a failure", len(page.Shapes))
			}
			if !approxRect(page.Shapes[0].Rect(), model.NewRectangle(0, 0, 3, 0)) {
				t.Errorf("shape in form = %+v", page.Shapes[0].Rect())
			}
			if !eng.State().CTM.IsIdentity() {
				t.Errorf("CTM = %v, want identity", eng.State().CTM)
			}
			warnings := eng.Warnings()
			if len(warnings) != 1 || warnings[0].Operator != "Xx" || warnings[0].Page != 1 {
				t.Fatalf("warnings = %v, want one for Xx on page 1", warnings)
			}
			if tt.wantErr != nil && !errors.Is(warnings[0], tt.wantErr) {
				t.Errorf("warning = %v, want %v", warnings[0], tt.wantErr)
			}
		})
	}
}

func TestNestedContentError(t *testing.T) {
	res := content.ResourceMap{XObjects: map[string]content.XObject{
		"Fm1": &content.FormXObject{Stream: brokenStream{}},
	}}
	page, eng := parsePage(t, "2 0 0 2 0 0 cm /Fm1 Do 0 0 m 1 0 l S", res)
	if len(page.Shapes) != 1 || !approxRect(page.Shapes[0].Rect(), model.NewRectangle(0, 0, 2, 0)) {
		t.Errorf("shapes = %v, want one scaled segment", rects(page.Shapes))
	}
	if len(eng.Warnings()) != 1 || eng.Warnings()[0].Operator != "Do" {
		t.Errorf("warnings = %v, want one for Do", eng.Warnings())
	}
}

func TestSelfReferencingForm(t *testing.T) {
	res := content.ResourceMap{XObjects: map[string]content.XObject{}}
	res.XObjects["Fm1"] = &content.FormXObject{Stream: &content.StreamData{
		Res:  res,
		Data: []byte("/Fm1 Do"),
	}}
	_, eng := parsePage(t, "/Fm1 Do", res, WithMaxNesting(4))
	found := false
	for _, w := range eng.Warnings() {
		if errors.Is(w, ErrNesting) {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want ErrNesting", eng.Warnings())
	}
}

func TestRestoreUnderflow(t *testing.T) {
	_, eng := parsePage(t, "Q Q", nil)
	if len(eng.Warnings()) != 2 {
		t.Fatalf("warnings = %v, want 2", eng.Warnings())
	}
	if !errors.Is(eng.Warnings()[0], graphicsstate.ErrStackUnderflow) {
		t.Errorf("warning = %v, want ErrStackUnderflow", eng.Warnings()[0])
	}
	if eng.StackDepth() != 1 {
		t.Errorf("stack depth = %d, want 1", eng.StackDepth())
	}
}

func TestUnknownOperatorIsTraced(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	eng := New(WithLogger(logger))
	if _, err := eng.Parse(docOf(pageOf("1 2 foo", nil))); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(eng.Warnings()) != 0 {
		t.Errorf("unknown operator produced warnings: %v", eng.Warnings())
	}
	if !strings.Contains(buf.String(), "op=foo") {
		t.Errorf("log = %q, want a trace entry for foo", buf.String())
	}
}

func TestSyntaxErrorEndsStream(t *testing.T) {
	page, eng := parsePage(t, "0 0 m 1 0 l S ) 0 0 m 2 0 l S", nil)
	if len(page.Shapes) != 1 {
		t.Errorf("Shapes = %d, want 1", len(page.Shapes))
	}
	if len(eng.Warnings()) != 1 || !errors.Is(eng.Warnings()[0], contentstream.ErrSyntax) {
		t.Errorf("warnings = %v, want one syntax error", eng.Warnings())
	}
}

func TestOperandErrors(t *testing.T) {
	_, eng := parsePage(t, "1 2 cm (x) w /N m", nil)
	if len(eng.Warnings()) != 3 {
		t.Fatalf("warnings = %v, want 3", eng.Warnings())
	}
	for _, w := range eng.Warnings() {
		if !errors.Is(w, ErrOperands) {
			t.Errorf("warning = %v, want ErrOperands", w)
		}
	}
}

// ============================================================================
// Resources, pages and listeners
// ============================================================================

func TestFormInheritsResources(t *testing.T) {
	res := fontResources()
	res.XObjects = map[string]content.XObject{
		"Fm1": &content.FormXObject{Stream: &content.StreamData{
			Data: []byte("BT /F1 10 Tf (A) Tj ET"),
		}},
	}
	page, eng := parsePage(t, "/Fm1 Do", res)
	if len(page.Characters) != 1 {
		t.Errorf("Characters = %d, want 1 (warnings %v)", len(page.Characters), eng.Warnings())
	}
}

func TestNestedFormUsesPageResources(t *testing.T) {
	inner := &content.FormXObject{Stream: &content.StreamData{
		Data: []byte("BT /F1 10 Tf (A) Tj ET"),
	}}
	// the outer form has its own resources, without F1
	outer := &content.FormXObject{Stream: &content.StreamData{
		Res:  content.ResourceMap{XObjects: map[string]content.XObject{"Fm2": inner}},
		Data: []byte("/Fm2 Do"),
	}}
	res := fontResources()
	res.XObjects = map[string]content.XObject{"Fm1": outer}

	page, eng := parsePage(t, "/Fm1 Do", res)
	if len(page.Characters) != 1 {
		t.Errorf("Characters = %d, want 1 (warnings %v)", len(page.Characters), eng.Warnings())
	}
	if len(eng.Warnings()) != 0 {
		t.Errorf("Warnings = %v, want none", eng.Warnings())
	}
}

func TestPageMatrix(t *testing.T) {
	p := pageOf("0 0 m 10 0 l S", nil)
	p.Mat = model.NewMatrix(0, 1, -1, 0, 612, 0)
	doc, _ := parse(t, docOf(p))
	want := []model.Rectangle{model.NewRectangle(612, 0, 612, 10)}
	if diff := cmp.Diff(want, rects(doc.Pages[0].Shapes), rectCmp); diff != "" {
		t.Errorf("shape boxes mismatch (-want +got):\n%s", diff)
	}
}

func TestWithPages(t *testing.T) {
	src := docOf(
		pageOf("0 0 m 1 0 l S", nil),
		pageOf("0 0 m 2 0 l S", nil),
		pageOf("0 0 m 3 0 l S", nil),
	)
	doc, _ := parse(t, src, WithPages(3, 1))
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}
	if doc.Pages[0].Number != 1 || doc.Pages[1].Number != 3 {
		t.Errorf("page numbers = %d, %d, want 1, 3", doc.Pages[0].Number, doc.Pages[1].Number)
	}
}

type recorder struct {
	NopListener
	events []string
}

func (r *recorder) StartDocument(*model.Document) { r.events = append(r.events, "start-doc") }
func (r *recorder) StartPage(p *model.Page)       { r.events = append(r.events, "start-page") }
func (r *recorder) EndPage(p *model.Page)         { r.events = append(r.events, "end-page") }
func (r *recorder) EndDocument(*model.Document)   { r.events = append(r.events, "end-doc") }

func TestListenerCallbacks(t *testing.T) {
	rec := &recorder{}
	parse(t, docOf(pageOf("", nil), pageOf("", nil)), WithListener(rec))
	want := []string{"start-doc", "start-page", "end-page", "start-page", "end-page", "end-doc"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerOverride(t *testing.T) {
	calls := 0
	count := func(*Engine, []contentstream.Object) error {
		calls++
		return nil
	}
	page, _ := parsePage(t, "0 0 m 1 0 l S S", nil, WithHandler("S", count))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(page.Shapes) != 0 {
		t.Errorf("Shapes = %d, want 0", len(page.Shapes))
	}
}

func TestParseNilDocument(t *testing.T) {
	if _, err := New().Parse(nil); err == nil {
		t.Error("Parse(nil) succeeded")
	}
}

func TestUnreadablePageIsSkipped(t *testing.T) {
	src := docOf(pageOf("0 0 m 1 0 l S", nil))
	src.Pages = append(src.Pages, nil)
	doc, eng := parse(t, &failingDoc{src})
	if doc.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1", doc.PageCount())
	}
	if len(eng.Warnings()) != 1 || eng.Warnings()[0].Page != 2 {
		t.Errorf("warnings = %v, want one for page 2", eng.Warnings())
	}
}

type failingDoc struct{ *content.DocumentData }

func (d *failingDoc) Page(n int) (content.Page, error) {
	if n == 2 {
		return nil, errors.New("broken page object")
	}
	return d.DocumentData.Page(n)
}
