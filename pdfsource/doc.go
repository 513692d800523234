// Package pdfsource reads PDF files for the interpreter. It implements the
// content interfaces on top of github.com/ledongthuc/pdf: the page tree with
// inherited attributes, resource dictionaries, fonts with their widths and
// encodings, form and image XObjects, and color spaces.
//
// Page content is expressed in a page space whose origin is the lower-left
// corner of the displayed crop box, with the page Rotate entry applied.
//
// The underlying reader panics on some malformed input and unsupported
// filters; every entry point recovers these into errors wrapping
// ErrUnsupported.
//
// Basic usage:
//
//	doc, err := pdfsource.Open("paper.pdf")
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//	parsed, err := interpreter.New().Parse(doc)
package pdfsource
