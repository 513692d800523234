package model

import "math"

// DefaultPrecision is the number of decimal places coordinates are rounded
// to when elements are emitted.
const DefaultPrecision = 2

// Point represents a 2D point in page space
type Point struct {
	X, Y float64
}

// NewPoint creates a point
func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

// Transform applies m to the point in place. Both coordinates are computed
// from the point's values before the call.
func (p *Point) Transform(m Matrix) {
	x, y := p.X, p.Y
	p.X = m[0]*x + m[2]*y + m[4]
	p.Y = m[1]*x + m[3]*y + m[5]
}

// Transformed returns a copy of the point transformed by m
func (p Point) Transformed(m Matrix) Point {
	p.Transform(m)
	return p
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Round rounds both coordinates to the given number of decimal places
func (p Point) Round(precision int) Point {
	return Point{X: Round(p.X, precision), Y: Round(p.Y, precision)}
}

// Rectangle is an axis-aligned rectangle. MinX <= MaxX and MinY <= MaxY
// hold for every rectangle built through NewRectangle.
type Rectangle struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRectangle creates a rectangle from two opposite corners, in any order
func NewRectangle(x1, y1, x2, y2 float64) Rectangle {
	return Rectangle{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// RectangleFromPoints returns the smallest rectangle containing all points.
// The second return value is false when no points are given.
func RectangleFromPoints(points ...Point) (Rectangle, bool) {
	if len(points) == 0 {
		return Rectangle{}, false
	}
	r := Rectangle{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r, true
}

// Width returns the horizontal extent
func (r Rectangle) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent
func (r Rectangle) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the center point
func (r Rectangle) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Union returns the smallest rectangle containing both rectangles
func (r Rectangle) Union(other Rectangle) Rectangle {
	return Rectangle{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// OverlapsHorizontally reports whether the x-ranges of both rectangles share
// at least one coordinate.
func (r Rectangle) OverlapsHorizontally(other Rectangle) bool {
	return r.MinX <= other.MaxX && other.MinX <= r.MaxX
}

// OverlapsVertically reports whether the y-ranges of both rectangles share
// at least one coordinate.
func (r Rectangle) OverlapsVertically(other Rectangle) bool {
	return r.MinY <= other.MaxY && other.MinY <= r.MaxY
}

// Contains checks if a point is inside the rectangle
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// IsEmpty returns true if the rectangle has zero area
func (r Rectangle) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Round rounds all coordinates to the given number of decimal places
func (r Rectangle) Round(precision int) Rectangle {
	return Rectangle{
		MinX: Round(r.MinX, precision),
		MinY: Round(r.MinY, precision),
		MaxX: Round(r.MaxX, precision),
		MaxY: Round(r.MaxY, precision),
	}
}

// Line is a straight segment, used for baselines
type Line struct {
	Start, End Point
}

// NewHorizontalLine creates a horizontal line at y from x1 to x2
func NewHorizontalLine(x1, x2, y float64) *Line {
	return &Line{Start: Point{X: x1, Y: y}, End: Point{X: x2, Y: y}}
}

// Length returns the length of the segment
func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// Matrix represents a 2D affine transformation
// [ScaleX ShearY ShearX ScaleY TranslateX TranslateY], i.e. the PDF
// [a b c d e f] layout.
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// NewMatrix creates a matrix from the six PDF components
func NewMatrix(a, b, c, d, e, f float64) Matrix {
	return Matrix{a, b, c, d, e, f}
}

func (m Matrix) ScaleX() float64     { return m[0] }
func (m Matrix) ShearY() float64     { return m[1] }
func (m Matrix) ShearX() float64     { return m[2] }
func (m Matrix) ScaleY() float64     { return m[3] }
func (m Matrix) TranslateX() float64 { return m[4] }
func (m Matrix) TranslateY() float64 { return m[5] }

// TransformPoint applies the matrix to a point value
func (m Matrix) TransformPoint(p Point) Point {
	return p.Transformed(m)
}

// Multiply concatenates two matrices. The result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Round rounds v to precision decimal places. NaN and infinities are
// returned unchanged.
func Round(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	pow := math.Pow(10, float64(precision))
	return math.Round(v*pow) / pow
}
