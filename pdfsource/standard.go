package pdfsource

import "strings"

// firstStandardCode is the code of the first entry in the standard tables
const firstStandardCode = 32

// Printable ASCII widths, codes 32 to 126, of the base standard fonts in
// thousandths of text space. Oblique and italic faces share the upright
// tables.
var (
	helveticaWidths = []float64{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
	}
	helveticaBoldWidths = []float64{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
		975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
		333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
		611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
	}
	timesWidths = []float64{
		250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
		921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
		556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
		333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
		500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
	}
	timesBoldWidths = []float64{
		250, 333, 555, 500, 500, 1000, 833, 278, 333, 333, 500, 570, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
		930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
		611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
		333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
		556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
	}
	courierWidths = monospaced(600)
)

// standardFonts maps the standard font names, and the names commonly used
// for their metric-compatible substitutes, to their width tables. Symbol and
// ZapfDingbats are absent: their codes are not ASCII.
var standardFonts = map[string][]float64{
	"Helvetica":             helveticaWidths,
	"Helvetica-Bold":        helveticaBoldWidths,
	"Helvetica-Oblique":     helveticaWidths,
	"Helvetica-BoldOblique": helveticaBoldWidths,
	"Times-Roman":           timesWidths,
	"Times-Bold":            timesBoldWidths,
	"Times-Italic":          timesWidths,
	"Times-BoldItalic":      timesBoldWidths,
	"Courier":               courierWidths,
	"Courier-Bold":          courierWidths,
	"Courier-Oblique":       courierWidths,
	"Courier-BoldOblique":   courierWidths,

	"Arial":                  helveticaWidths,
	"ArialMT":                helveticaWidths,
	"Arial-BoldMT":           helveticaBoldWidths,
	"TimesNewRoman":          timesWidths,
	"TimesNewRomanPSMT":      timesWidths,
	"TimesNewRomanPS-BoldMT": timesBoldWidths,
	"CourierNew":             courierWidths,
	"CourierNewPSMT":         courierWidths,
	"CourierNewPS-BoldMT":    courierWidths,
}

func monospaced(w float64) []float64 {
	table := make([]float64, 127-firstStandardCode)
	for i := range table {
		table[i] = w
	}
	return table
}

// standardWidths returns the built-in widths for a standard font. A subset
// tag ("ABCDEF+Helvetica") and a ",Bold" style suffix are understood.
func standardWidths(baseFont string) (int, []float64, bool) {
	if i := strings.IndexByte(baseFont, '+'); i == 6 {
		baseFont = baseFont[i+1:]
	}
	if name, style, ok := strings.Cut(baseFont, ","); ok {
		baseFont = name
		if strings.HasPrefix(style, "Bold") {
			baseFont += "-Bold"
		}
	}
	if w, ok := standardFonts[baseFont]; ok {
		return firstStandardCode, w, true
	}
	switch baseFont {
	case "Arial-Bold":
		return firstStandardCode, helveticaBoldWidths, true
	case "TimesNewRoman-Bold":
		return firstStandardCode, timesBoldWidths, true
	}
	return 0, nil, false
}
