// Package interpreter executes PDF content streams.
//
// An Engine walks the operators of every page, keeping a stack of graphics
// states, the current path and the text matrices, and turns what is drawn
// into absolutely positioned records on a model.Page:
//
//   - Characters for shown glyphs
//   - Figures for raster images
//   - Shapes for painted path segments and single-color images
//
// Form XObjects and Type 3 glyph procedures are processed as nested streams.
// The graphics state is restored when a nested stream ends, however it ends.
//
// Operators are dispatched through a table of handlers that can be extended
// with WithHandler. A failing handler does not stop the page: its error is
// logged and kept as a Warning.
//
//	eng := interpreter.New(interpreter.WithLogger(logger))
//	doc, err := eng.Parse(src)
//	for _, w := range eng.Warnings() {
//		fmt.Println(w)
//	}
package interpreter
