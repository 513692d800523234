// Package contentstream tokenizes decoded PDF content streams.
//
// A content stream is a sequence of operands followed by the operator that
// consumes them. [Parser.Next] yields one [Token] at a time, which is what
// the interpreter uses; [Parser.Parse] groups the whole stream into
// [Operation] values for tools and tests:
//
//	p := contentstream.NewParser(data)
//	for {
//		tok, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
//
// Inline images (BI ... ID ... EI) are returned as one BI operator carrying
// an [InlineImage] with its dictionary expanded to full key names.
package contentstream
