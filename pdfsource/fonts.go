package pdfsource

import (
	"log/slog"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/model"
)

// maxCode bounds the widths table built for composite fonts
const maxCode = 0xFFFF

// fontEncoder resolves the text decoding of a font dictionary
var fontEncoder = func(v pdf.Value) pdf.TextEncoding {
	return pdf.Font{V: v}.Encoder()
}

// newFont builds a font from its dictionary. Widths, font matrix and
// descriptor metrics come from the dictionary; text decoding uses the
// reader's encoder (Encoding, Differences and ToUnicode).
// A broken encoding leaves the decoder nil, which decodes codes as Latin-1.
func newFont(v pdf.Value, log *slog.Logger) *content.SimpleFont {
	f := &content.SimpleFont{Name: v.Key("BaseFont").Name()}

	err := guard("font encoding", func() error {
		if enc := fontEncoder(v); enc != nil {
			f.Decoder = enc
		}
		return nil
	})
	if err != nil {
		log.Debug("font encoding unreadable, decoding as Latin-1", "font", f.Name, "err", err)
	}

	switch v.Key("Subtype").Name() {
	case "Type0":
		f.CodeLength = 2
		cid := v.Key("DescendantFonts").Index(0)
		dw := numberOr(toGo(cid.Key("DW")), 1000)
		w, _ := toGo(cid.Key("W")).([]any)
		f.FirstChar, f.Widths = cidWidths(w, dw)
		f.MissingWidth = dw
		descriptorMetrics(f, cid.Key("FontDescriptor"))
	case "Type3":
		f.IsType3 = true
		f.Matrix = matrixOf(toGo(v.Key("FontMatrix")))
		simpleWidths(f, v)
		descriptorMetrics(f, v.Key("FontDescriptor"))
		f.Procs = charProcs(v, log)
	default:
		simpleWidths(f, v)
		descriptorMetrics(f, v.Key("FontDescriptor"))
	}
	return f
}

func simpleWidths(f *content.SimpleFont, v pdf.Value) {
	f.FirstChar = int(numberOr(toGo(v.Key("FirstChar")), 0))
	if w, ok := numbers(toGo(v.Key("Widths"))); ok {
		f.Widths = w
		return
	}
	if f.IsType3 {
		return
	}
	if first, w, ok := standardWidths(f.Name); ok {
		f.FirstChar, f.Widths = first, w
	}
}

func descriptorMetrics(f *content.SimpleFont, fd pdf.Value) {
	if fd.Kind() != pdf.Dict {
		return
	}
	asc, okA := valueNumber(fd.Key("Ascent"))
	desc, okD := valueNumber(fd.Key("Descent"))
	if okA && okD && asc != desc {
		f.Asc, f.Desc = asc, desc
	}
	if mw, ok := valueNumber(fd.Key("MissingWidth")); ok && mw > 0 {
		f.MissingWidth = mw
	}
}

// cidWidths expands a CIDFont W array into a dense table starting at the
// returned first code. Entries are either "c [w1 w2 ...]" or
// "cFirst cLast w". Gaps take the default width.
func cidWidths(w []any, dw float64) (int, []float64) {
	widths := make(map[int]float64)
	for i := 0; i+1 < len(w); {
		c, ok := number(w[i])
		if !ok {
			break
		}
		if list, ok := w[i+1].([]any); ok {
			for j, e := range list {
				if n, ok := number(e); ok && int(c)+j <= maxCode {
					widths[int(c)+j] = n
				}
			}
			i += 2
			continue
		}
		if i+2 >= len(w) {
			break
		}
		last, okL := number(w[i+1])
		width, okW := number(w[i+2])
		if !okL || !okW {
			break
		}
		for code := int(c); code <= int(last) && code <= maxCode; code++ {
			widths[code] = width
		}
		i += 3
	}
	if len(widths) == 0 {
		return 0, nil
	}

	codes := make([]int, 0, len(widths))
	for c := range widths {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	first, last := codes[0], codes[len(codes)-1]
	table := make([]float64, last-first+1)
	for i := range table {
		table[i] = dw
	}
	for c, width := range widths {
		table[c-first] = width
	}
	return first, table
}

// differences maps codes to glyph names from an Encoding Differences array
func differences(d []any) map[int]string {
	out := make(map[int]string)
	code := -1
	for _, e := range d {
		switch v := e.(type) {
		case int64:
			code = int(v)
		case float64:
			code = int(v)
		case Name:
			if code >= 0 {
				out[code] = string(v)
				code++
			}
		}
	}
	return out
}

// charProcs resolves the glyph procedures of a Type 3 font by code
func charProcs(v pdf.Value, log *slog.Logger) map[int]content.Stream {
	procs := v.Key("CharProcs")
	if procs.Kind() != pdf.Dict {
		return nil
	}
	enc := v.Key("Encoding")
	d, _ := toGo(enc.Key("Differences")).([]any)
	res := newResources(v.Key("Resources"), log)

	out := make(map[int]content.Stream)
	for code, glyph := range differences(d) {
		p := procs.Key(glyph)
		if p.Kind() != pdf.Stream {
			continue
		}
		out[code] = &stream{v: p, matrix: model.Identity(), res: res}
	}
	return out
}
