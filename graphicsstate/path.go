package graphicsstate

import (
	"github.com/tsawler/pdfstruct/model"
)

// SegmentType defines the type of path segment
type SegmentType int

const (
	// MoveTo starts a new subpath
	MoveTo SegmentType = iota
	// LineTo draws a line to a point
	LineTo
	// CurveTo draws a cubic Bézier curve
	CurveTo
	// Close closes the current subpath
	Close
)

func (t SegmentType) String() string {
	switch t {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case CurveTo:
		return "CurveTo"
	case Close:
		return "Close"
	}
	return "Unknown"
}

// Segment is one path element. Points are in page space: MoveTo and LineTo
// carry one point, CurveTo carries two control points and the end point,
// Close carries none.
type Segment struct {
	Type   SegmentType
	Points []model.Point
}

// Path is the path under construction. The interpreter keeps one per page
// and transforms points by the CTM before appending them.
type Path struct {
	Segments []Segment

	current      model.Point
	subpathStart model.Point
	hasCurrent   bool
}

// NewPath creates a new empty path
func NewPath() *Path {
	return &Path{}
}

// CurrentPoint returns the current point; ok is false for an empty path
func (p *Path) CurrentPoint() (pt model.Point, ok bool) {
	return p.current, p.hasCurrent
}

// MoveTo starts a new subpath (m operator)
func (p *Path) MoveTo(pt model.Point) {
	p.Segments = append(p.Segments, Segment{Type: MoveTo, Points: []model.Point{pt}})
	p.current = pt
	p.subpathStart = pt
	p.hasCurrent = true
}

// LineTo appends a line from the current point (l operator). Without a
// current point it starts a subpath instead.
func (p *Path) LineTo(pt model.Point) {
	if !p.hasCurrent {
		p.MoveTo(pt)
		return
	}
	p.Segments = append(p.Segments, Segment{Type: LineTo, Points: []model.Point{pt}})
	p.current = pt
}

// CurveTo appends a cubic Bézier curve (c, v and y operators)
func (p *Path) CurveTo(c1, c2, end model.Point) {
	if !p.hasCurrent {
		p.MoveTo(c1)
	}
	p.Segments = append(p.Segments, Segment{Type: CurveTo, Points: []model.Point{c1, c2, end}})
	p.current = end
}

// ClosePath closes the current subpath (h operator)
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.Segments = append(p.Segments, Segment{Type: Close})
	p.current = p.subpathStart
}

// Clear resets the path
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.hasCurrent = false
}

// IsEmpty returns true if the path has no segments
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// SegmentBoxes returns one rectangle per drawn segment, spanning the
// segment's start and end points rounded to precision decimals. A subpath
// start only contributes as the start point of the segment following it.
// Close contributes the edge back to the subpath start unless the subpath
// already ends there.
func (p *Path) SegmentBoxes(precision int) []model.Rectangle {
	var boxes []model.Rectangle
	var current, start model.Point
	have := false

	for _, seg := range p.Segments {
		switch seg.Type {
		case MoveTo:
			current = seg.Points[0]
			start = current
			have = true
		case LineTo, CurveTo:
			end := seg.Points[len(seg.Points)-1]
			if have {
				boxes = append(boxes, segmentBox(current, end, precision))
			}
			current = end
			have = true
		case Close:
			if have && current != start {
				boxes = append(boxes, segmentBox(current, start, precision))
			}
			current = start
		}
	}
	return boxes
}

func segmentBox(a, b model.Point, precision int) model.Rectangle {
	a = a.Round(precision)
	b = b.Round(precision)
	return model.NewRectangle(a.X, a.Y, b.X, b.Y)
}
