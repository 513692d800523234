// Package graphicsstate holds the graphics state tracked while a content
// stream is interpreted.
//
// [GraphicsState] carries the CTM, the pending clipping winding rule, the
// stroking and non-stroking colors with their color spaces, and the text
// parameters saved by q and Q. [Stack] implements q and Q:
//
//	stack := graphicsstate.NewStack(graphicsstate.NewGraphicsState(pageMatrix, cropBox))
//	stack.Save()                      // q
//	stack.Current().Concat(m)         // cm
//	if err := stack.Restore(); err != nil { // Q
//		...
//	}
//
// [Path] collects path construction operators in page space and reports
// the bounding box of each drawn segment when the path is painted.
package graphicsstate
