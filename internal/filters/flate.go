package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"golang.org/x/image/tiff/lzw"

	"github.com/tsawler/pdfstruct/content"
)

// FlateDecode inflates zlib data and undoes any predictor
func FlateDecode(data []byte, f content.Filter) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	// truncated streams are common; keep what was inflated
	out, err := io.ReadAll(r)
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return unpredict(out, f)
}

// LZWDecode decompresses LZW data. PDF's default EarlyChange of 1 is the
// TIFF variant of LZW; EarlyChange 0 is not supported.
func LZWDecode(data []byte, f content.Filter) ([]byte, error) {
	if f.Param("EarlyChange", 1) != 1 {
		return nil, fmt.Errorf("%w: LZW without early change", ErrUnsupported)
	}
	r := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil && len(out) == 0 {
		return nil, err
	}
	return unpredict(out, f)
}

// unpredict reverses the Predictor decode parameter: 1 is none, 2 is TIFF
// predictor 2, 10 to 15 are PNG predictors selected per row.
func unpredict(data []byte, f content.Filter) ([]byte, error) {
	predictor := f.Param("Predictor", 1)
	if predictor == 1 {
		return data, nil
	}

	colors := f.Param("Colors", 1)
	bpc := f.Param("BitsPerComponent", 8)
	columns := f.Param("Columns", 1)
	bpp := (colors*bpc + 7) / 8
	rowLen := (columns*colors*bpc + 7) / 8

	switch {
	case predictor == 2:
		if bpc != 8 {
			return nil, fmt.Errorf("%w: TIFF predictor with %d bits per component", ErrUnsupported, bpc)
		}
		out := make([]byte, len(data))
		copy(out, data)
		for row := 0; row+rowLen <= len(out); row += rowLen {
			for i := bpp; i < rowLen; i++ {
				out[row+i] += out[row+i-bpp]
			}
		}
		return out, nil
	case predictor >= 10 && predictor <= 15:
		return unpredictPNG(data, bpp, rowLen)
	}
	return nil, fmt.Errorf("%w: predictor %d", ErrUnsupported, predictor)
}

func unpredictPNG(data []byte, bpp, rowLen int) ([]byte, error) {
	stride := rowLen + 1
	rows := len(data) / stride
	out := make([]byte, rows*rowLen)
	prev := make([]byte, rowLen)

	for r := 0; r < rows; r++ {
		in := data[r*stride : (r+1)*stride]
		cur := out[r*rowLen : (r+1)*rowLen]
		copy(cur, in[1:])

		switch in[0] {
		case 0:
		case 1: // Sub
			for i := bpp; i < rowLen; i++ {
				cur[i] += cur[i-bpp]
			}
		case 2: // Up
			for i := range cur {
				cur[i] += prev[i]
			}
		case 3: // Average
			for i := range cur {
				var left byte
				if i >= bpp {
					left = cur[i-bpp]
				}
				cur[i] += byte((int(left) + int(prev[i])) / 2)
			}
		case 4: // Paeth
			for i := range cur {
				var left, upLeft byte
				if i >= bpp {
					left = cur[i-bpp]
					upLeft = prev[i-bpp]
				}
				cur[i] += paeth(left, prev[i], upLeft)
			}
		default:
			return nil, fmt.Errorf("unknown PNG filter type %d in row %d", in[0], r)
		}
		prev = cur
	}
	return out, nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
