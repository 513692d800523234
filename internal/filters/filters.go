package filters

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfstruct/content"
)

var (
	// ErrImageFilter reports a filter that decodes to an image rather
	// than to samples (DCTDecode)
	ErrImageFilter = errors.New("image filter")
	// ErrUnsupported reports a filter this package cannot decode
	ErrUnsupported = errors.New("unsupported filter")
)

// Decode applies the filter chain to data. When an image filter is reached
// it returns the data decoded so far, the remaining filters and
// ErrImageFilter.
func Decode(data []byte, chain []content.Filter) ([]byte, []content.Filter, error) {
	var err error
	for i, f := range chain {
		switch f.Name {
		case "FlateDecode", "Fl":
			data, err = FlateDecode(data, f)
		case "LZWDecode", "LZW":
			data, err = LZWDecode(data, f)
		case "ASCIIHexDecode", "AHx":
			data, err = ASCIIHexDecode(data)
		case "ASCII85Decode", "A85":
			data, err = ASCII85Decode(data)
		case "RunLengthDecode", "RL":
			data, err = RunLengthDecode(data)
		case "CCITTFaxDecode", "CCF":
			data, err = CCITTFaxDecode(data, f)
		case "DCTDecode", "DCT":
			return data, chain[i:], ErrImageFilter
		default:
			return nil, chain[i:], fmt.Errorf("%w: %s", ErrUnsupported, f.Name)
		}
		if err != nil {
			return nil, chain[i:], fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return data, nil, nil
}
