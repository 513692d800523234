package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pdfstruct/model"
)

// Axis is the orientation of a cut
type Axis int

const (
	// Vertical cuts separate left from right
	Vertical Axis = iota
	// Horizontal cuts separate top from bottom
	Horizontal
)

// String returns a string representation of the axis
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Half is one side of a candidate cut. For vertical cuts the first half is
// the left one, for horizontal cuts the upper one.
type Half[E model.Element] struct {
	Elements []E

	// Union is the extent of the elements
	Union model.Rectangle

	// Inner holds the innermost edges: the largest MinX and MinY and the
	// smallest MaxX and MaxY. It is not normalised.
	Inner model.Rectangle
}

// Size returns the number of elements
func (h Half[E]) Size() int {
	return len(h.Elements)
}

// Scorer rates a cut between two halves. Values <= 0 reject the cut.
type Scorer[E model.Element] func(first, second Half[E]) float64

// Reject is a Scorer that disables an axis
func Reject[E model.Element](Half[E], Half[E]) float64 {
	return -1
}

// XYCut partitions elements by recursive cuts along empty lanes
type XYCut[E model.Element] struct {
	Vertical   Scorer[E]
	Horizontal Scorer[E]

	// Overlapping makes every position of the sorted order a candidate,
	// not only empty lanes. The scorers alone then decide whether a cut
	// is admissible.
	Overlapping bool
}

// Cut returns the leaves of the partition, left before right and upper
// before lower. Every element appears in exactly one leaf.
func (x XYCut[E]) Cut(elements []E) [][]E {
	if len(elements) == 0 {
		return nil
	}
	var leaves [][]E
	x.cut(elements, &leaves)
	return leaves
}

func (x XYCut[E]) cut(elements []E, leaves *[][]E) {
	if len(elements) <= 1 {
		*leaves = append(*leaves, elements)
		return
	}

	vFirst, vSecond, vScore := bestCut(elements, Vertical, x.Vertical, x.Overlapping)
	hFirst, hSecond, hScore := bestCut(elements, Horizontal, x.Horizontal, x.Overlapping)

	switch {
	case vScore > 0 && vScore >= hScore:
		x.cut(vFirst, leaves)
		x.cut(vSecond, leaves)
	case hScore > 0:
		x.cut(hFirst, leaves)
		x.cut(hSecond, leaves)
	default:
		*leaves = append(*leaves, elements)
	}
}

// bestCut finds the lane with the highest positive score. It returns a
// score <= 0 when there is none.
func bestCut[E model.Element](elements []E, axis Axis, score Scorer[E], overlapping bool) (first, second []E, best float64) {
	best = math.Inf(-1)
	if score == nil {
		return nil, nil, best
	}

	sorted := make([]E, len(elements))
	copy(sorted, elements)
	if axis == Vertical {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rect().MinX < sorted[j].Rect().MinX
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rect().MaxY > sorted[j].Rect().MaxY
		})
	}

	prefix := accumulate(sorted, false)
	suffix := accumulate(sorted, true)

	for i := 1; i < len(sorted); i++ {
		if !overlapping && !isLane(prefix[i-1], sorted[i].Rect(), axis) {
			continue
		}
		a := Half[E]{Elements: sorted[:i], Union: prefix[i-1].union, Inner: prefix[i-1].inner}
		b := Half[E]{Elements: sorted[i:], Union: suffix[i].union, Inner: suffix[i].inner}
		s := score(a, b)
		if s > 0 && s > best {
			best = s
			first, second = a.Elements, b.Elements
		}
	}
	if first == nil {
		return nil, nil, -1
	}
	return first, second, best
}

// isLane reports whether nothing before the candidate extends past its
// leading edge
func isLane(before extent, next model.Rectangle, axis Axis) bool {
	if axis == Vertical {
		return before.union.MaxX <= next.MinX
	}
	return before.union.MinY >= next.MaxY
}

type extent struct {
	union model.Rectangle
	inner model.Rectangle
}

// accumulate returns the running extents of sorted from the front, or from
// the back when reverse is set. Entry i covers sorted[:i+1], or sorted[i:].
func accumulate[E model.Element](sorted []E, reverse bool) []extent {
	out := make([]extent, len(sorted))
	step := func(i int, prev *extent) {
		r := sorted[i].Rect()
		if prev == nil {
			out[i] = extent{union: r, inner: r}
			return
		}
		out[i] = extent{
			union: prev.union.Union(r),
			inner: model.Rectangle{
				MinX: math.Max(prev.inner.MinX, r.MinX),
				MinY: math.Max(prev.inner.MinY, r.MinY),
				MaxX: math.Min(prev.inner.MaxX, r.MaxX),
				MaxY: math.Min(prev.inner.MaxY, r.MaxY),
			},
		}
	}
	if reverse {
		for i := len(sorted) - 1; i >= 0; i-- {
			if i == len(sorted)-1 {
				step(i, nil)
			} else {
				step(i, &out[i+1])
			}
		}
		return out
	}
	for i := range sorted {
		if i == 0 {
			step(i, nil)
		} else {
			step(i, &out[i-1])
		}
	}
	return out
}
