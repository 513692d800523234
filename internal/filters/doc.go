// Package filters decodes PDF stream filter chains for image sampling.
//
// [Decode] applies a chain of [content.Filter] values in order:
//
//	samples, rest, err := filters.Decode(img.Data, img.Filters)
//
// Supported filters are FlateDecode and LZWDecode (with TIFF and PNG
// predictors), ASCIIHexDecode, ASCII85Decode, RunLengthDecode and
// CCITTFaxDecode. DCTDecode is left to the caller, which decodes JPEG data
// into an image; Decode returns [ErrImageFilter] when it reaches it.
package filters
