package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"

	"github.com/tsawler/pdfstruct/content"
)

// CCITTFaxDecode decodes Group 3 or Group 4 fax data into 1-bit rows,
// padded to whole bytes. K < 0 selects Group 4; BlackIs1 maps to the
// decoder's Invert option.
func CCITTFaxDecode(data []byte, f content.Filter) ([]byte, error) {
	columns := f.Param("Columns", 1728)
	rows := f.Param("Rows", 0)
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}

	sf := ccitt.Group3
	if f.Param("K", 0) < 0 {
		sf = ccitt.Group4
	}
	opts := &ccitt.Options{Invert: f.Param("BlackIs1", 0) != 0}

	return io.ReadAll(ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, opts))
}
