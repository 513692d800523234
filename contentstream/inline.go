package contentstream

import "fmt"

var inlineKeys = map[string]string{
	"BPC": "BitsPerComponent",
	"CS":  "ColorSpace",
	"D":   "Decode",
	"DP":  "DecodeParms",
	"F":   "Filter",
	"H":   "Height",
	"IM":  "ImageMask",
	"I":   "Interpolate",
	"L":   "Length",
	"W":   "Width",
}

var inlineValues = map[string]string{
	"G":    "DeviceGray",
	"RGB":  "DeviceRGB",
	"CMYK": "DeviceCMYK",
	"I":    "Indexed",
	"AHx":  "ASCIIHexDecode",
	"A85":  "ASCII85Decode",
	"LZW":  "LZWDecode",
	"Fl":   "FlateDecode",
	"RL":   "RunLengthDecode",
	"CCF":  "CCITTFaxDecode",
	"DCT":  "DCTDecode",
}

// parseInlineImage reads the dictionary and data of an inline image. The
// BI keyword has already been consumed.
func (p *Parser) parseInlineImage() (*InlineImage, error) {
	params := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("inline image without ID")
		}
		if p.data[p.pos] != '/' {
			kw := p.readKeyword()
			if kw == "ID" {
				break
			}
			return nil, fmt.Errorf("unexpected %q in inline image dictionary", kw)
		}
		key := string(p.parseName())
		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if full, ok := inlineKeys[key]; ok {
			key = full
		}
		if key == "ColorSpace" || key == "Filter" {
			value = expandInlineValue(value)
		}
		params[key] = value
	}

	// exactly one whitespace byte separates ID from the data
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
	start := p.pos

	if n := inlineImageLength(params); n >= 0 && start+n <= len(p.data) {
		if end, ok := p.matchEI(start + n); ok {
			p.pos = end
			return &InlineImage{Params: params, Data: p.data[start : start+n]}, nil
		}
	}

	for i := start; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		if i > start && !isWhitespace(p.data[i-1]) {
			continue
		}
		if i+2 < len(p.data) && isRegular(p.data[i+2]) {
			continue
		}
		end := i
		if end > start {
			end-- // whitespace before EI
		}
		p.pos = i + 2
		return &InlineImage{Params: params, Data: p.data[start:end]}, nil
	}
	return nil, fmt.Errorf("inline image without EI")
}

// matchEI reports whether EI follows at pos (after optional whitespace) and
// returns the offset just past it.
func (p *Parser) matchEI(pos int) (int, bool) {
	for pos < len(p.data) && isWhitespace(p.data[pos]) {
		pos++
	}
	if pos+1 >= len(p.data) || p.data[pos] != 'E' || p.data[pos+1] != 'I' {
		return 0, false
	}
	if pos+2 < len(p.data) && isRegular(p.data[pos+2]) {
		return 0, false
	}
	return pos + 2, true
}

func expandInlineValue(v Object) Object {
	switch t := v.(type) {
	case Name:
		if full, ok := inlineValues[string(t)]; ok {
			return Name(full)
		}
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = expandInlineValue(e)
		}
		return out
	}
	return v
}

// inlineImageLength computes the byte size of unfiltered image data, or -1
// when it cannot be known in advance.
func inlineImageLength(params Dict) int {
	if l, ok := params.Int("Length"); ok && l >= 0 {
		return l
	}
	if _, filtered := params["Filter"]; filtered {
		return -1
	}
	w, okW := params.Int("Width")
	h, okH := params.Int("Height")
	if !okW || !okH || w <= 0 || h <= 0 {
		return -1
	}
	bpc, ok := params.Int("BitsPerComponent")
	if !ok {
		bpc = 8
	}
	colors := 1
	if mask, _ := params.Bool("ImageMask"); mask {
		bpc = 1
	} else {
		switch cs := params["ColorSpace"].(type) {
		case Name:
			switch cs {
			case "DeviceGray", "CalGray":
				colors = 1
			case "DeviceRGB", "CalRGB":
				colors = 3
			case "DeviceCMYK":
				colors = 4
			default:
				return -1
			}
		case Array:
			if len(cs) == 0 || cs[0] != Name("Indexed") {
				return -1
			}
		case nil:
		default:
			return -1
		}
	}
	return ((w*colors*bpc + 7) / 8) * h
}
