package pdfsource

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validate reads the cross-reference structure and page tree of a PDF with
// pdfcpu in relaxed mode and returns the page count. It catches damaged
// files that the content reader would only trip over page by page.
func Validate(rs io.ReadSeeker) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	conf := pdfcpu.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpu.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("%w: page tree: %v", ErrMalformed, err)
	}
	return ctx.PageCount, nil
}
