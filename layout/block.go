package layout

import (
	"math"
	"regexp"
	"strings"

	"github.com/tsawler/pdfstruct/model"
	"github.com/tsawler/pdfstruct/stats"
)

// referenceAnchor matches the start of a bibliography entry such as "[12] "
var referenceAnchor = regexp.MustCompile(`^\[(.*)\]\s+`)

// textBlocks groups the lines of a page in a single pass. expected holds
// the typical line pitch per font face.
func (t *Tokenizer) textBlocks(page *model.Page, lines []*model.TextLine, expected *model.TextLineStatistic) []*model.TextBlock {
	var blocks []*model.TextBlock
	var current []*model.TextLine
	var currentRect model.Rectangle

	for i, line := range lines {
		var prev, next *model.TextLine
		if i > 0 {
			prev = lines[i-1]
		}
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		if t.introducesNewBlock(current, currentRect, prev, line, next, expected) && len(current) > 0 {
			blocks = append(blocks, sealBlock(page, current))
			current = nil
		}
		if len(current) == 0 {
			currentRect = line.Rect()
		} else {
			currentRect = currentRect.Union(line.Rect())
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, sealBlock(page, current))
	}
	return blocks
}

// introducesNewBlock applies the block rules in order and stops at the
// first that decides
func (t *Tokenizer) introducesNewBlock(block []*model.TextLine, blockRect model.Rectangle, prev, cur, next *model.TextLine, expected *model.TextLineStatistic) bool {
	tol := t.config.Tolerance

	if prev == nil {
		return true
	}
	if len(block) == 0 {
		return false
	}
	if !cur.Rect().OverlapsHorizontally(blockRect) {
		return true
	}

	pitchPrev := t.pitch(prev, cur)
	pitchNext := t.pitch(cur, next)

	if face, ok := stats.MostCommonFontFace(cur); ok {
		if pitchPrev-expected.ExpectedLinePitch(face) > tol {
			return true
		}
	}
	if pitchPrev-pitchNext > tol {
		return true
	}
	if next != nil && t.isIndentedParagraphStart(prev, cur, next, pitchPrev, pitchNext) {
		return true
	}
	if fontFaceChanged(prev, cur) {
		return true
	}
	if isReferenceAnchor(cur) &&
		(t.differentMinX(prev, cur) || isReferenceAnchor(prev)) &&
		(next == nil || t.differentMinX(next, cur) || isReferenceAnchor(next)) {
		return true
	}
	return false
}

// isIndentedParagraphStart detects a first line indented against evenly
// spaced, aligned neighbours that are not both reference entries
func (t *Tokenizer) isIndentedParagraphStart(prev, cur, next *model.TextLine, pitchPrev, pitchNext float64) bool {
	tol := t.config.Tolerance
	minX := cur.Rect().MinX
	indented := minX-prev.Rect().MinX > tol && minX-next.Rect().MinX > tol
	evenPitch := math.Abs(pitchPrev-pitchNext) <= tol
	anchored := isReferenceAnchor(prev) && isReferenceAnchor(next)
	aligned := !t.differentMinX(prev, next)
	return indented && evenPitch && !anchored && aligned
}

func (t *Tokenizer) differentMinX(a, b *model.TextLine) bool {
	return math.Abs(a.Rect().MinX-b.Rect().MinX) > t.config.Tolerance
}

// pitch returns the rounded line pitch, NaN when unknown. Lines that do
// not overlap horizontally, such as the last line of a column and the first
// line of the next, have no pitch.
func (t *Tokenizer) pitch(prev, cur *model.TextLine) float64 {
	if prev == nil || cur == nil || !prev.Rect().OverlapsHorizontally(cur.Rect()) {
		return math.NaN()
	}
	return model.Round(stats.LinePitch(prev, cur), t.config.Precision)
}

// fontFaceChanged compares the dominant faces of two lines by family name
// and size
func fontFaceChanged(prev, cur *model.TextLine) bool {
	a, okA := stats.MostCommonFontFace(prev)
	b, okB := stats.MostCommonFontFace(cur)
	if !okA || !okB {
		return false
	}
	return !a.SameFamily(b) || a.Size != b.Size
}

func isReferenceAnchor(line *model.TextLine) bool {
	return line != nil && referenceAnchor.MatchString(line.Text)
}

// sealBlock computes the aggregates of a finished block
func sealBlock(page *model.Page, lines []*model.TextLine) *model.TextBlock {
	charStats := make([]*model.CharacterStatistic, len(lines))
	texts := make([]string, len(lines))
	for i, l := range lines {
		charStats[i] = l.Statistic
		texts[i] = l.Text
	}
	return &model.TextBlock{
		Position:           page.PositionOf(unionOf(lines)),
		Lines:              lines,
		CharacterStatistic: stats.CombineCharacters(charStats...),
		LineStatistic:      stats.Lines(lines),
		Text:               strings.Join(texts, "\n"),
	}
}
