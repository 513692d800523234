// Package stats computes the typographic statistics the layout heuristics
// rely on. Statistics are built bottom-up from characters and lines and
// combined with pure merges, so a page or document statistic never needs
// to revisit the elements it summarises.
package stats

import (
	"math"

	"github.com/tsawler/pdfstruct/model"
)

// Characters computes the statistic of a set of characters
func Characters(chars []*model.Character) *model.CharacterStatistic {
	s := model.NewCharacterStatistic()
	for _, c := range chars {
		s.Add(c)
	}
	return s
}

// CombineCharacters merges character statistics. Nil entries are skipped.
func CombineCharacters(stats ...*model.CharacterStatistic) *model.CharacterStatistic {
	out := model.NewCharacterStatistic()
	for _, s := range stats {
		if s != nil {
			out = out.Merge(s)
		}
	}
	return out
}

// CombineLines merges text line statistics. Nil entries are skipped.
func CombineLines(stats ...*model.TextLineStatistic) *model.TextLineStatistic {
	out := model.NewTextLineStatistic()
	for _, s := range stats {
		if s != nil {
			out = out.Merge(s)
		}
	}
	return out
}

// LinePitch returns the baseline distance from prev down to cur, or NaN
// when either line is missing or has no baseline.
func LinePitch(prev, cur *model.TextLine) float64 {
	if prev == nil || cur == nil || prev.Baseline == nil || cur.Baseline == nil {
		return math.NaN()
	}
	return prev.Baseline.Start.Y - cur.Baseline.Start.Y
}

// MostCommonFontFace returns the dominant face of a line
func MostCommonFontFace(line *model.TextLine) (model.FontFace, bool) {
	if line == nil {
		return model.FontFace{}, false
	}
	return line.Statistic.MostCommonFontFace()
}

// Lines computes the statistic of a run of consecutive lines, such as the
// lines of one text area or one block. The pitch between two neighbours is
// recorded under the most common face of the lower line.
func Lines(lines []*model.TextLine) *model.TextLineStatistic {
	s := model.NewTextLineStatistic()
	for i, line := range lines {
		s.LineHeights.Add(line.Rect().Height())
		addWhitespace(s, line)
		if i == 0 {
			continue
		}
		if face, ok := MostCommonFontFace(line); ok {
			s.AddLinePitch(face, LinePitch(lines[i-1], line))
		}
	}
	return s
}

// addWhitespace records the gaps between the words of a line
func addWhitespace(s *model.TextLineStatistic, line *model.TextLine) {
	for i := 1; i < len(line.Words); i++ {
		gap := line.Words[i].Rect().MinX - line.Words[i-1].Rect().MaxX
		if gap > 0 {
			s.WhitespaceWidths.Add(gap)
		}
	}
}
