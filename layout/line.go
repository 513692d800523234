package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pdfstruct/model"
	"github.com/tsawler/pdfstruct/stats"
)

// lineCutter splits a text area into lines. Only horizontal cuts are made;
// a cut is scored by how far the lowest top of the upper half is above the
// highest top of the lower half. Boxes of consecutive lines may overlap.
var lineCutter = XYCut[*model.Character]{
	Overlapping: true,
	Vertical:    Reject[*model.Character],
	Horizontal: func(upper, lower Half[*model.Character]) float64 {
		return upper.Inner.MaxY - lower.Union.MaxY
	},
}

// textLines builds the lines of an area, top to bottom
func (t *Tokenizer) textLines(page *model.Page, area *model.TextArea) []*model.TextLine {
	leaves := lineCutter.Cut(area.Characters)
	lines := make([]*model.TextLine, 0, len(leaves))
	for _, leaf := range leaves {
		lines = append(lines, t.textLine(page, leaf))
	}
	return lines
}

// textLine builds a line from the characters of one leaf
func (t *Tokenizer) textLine(page *model.Page, chars []*model.Character) *model.TextLine {
	sorted := make([]*model.Character, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rect().MinX < sorted[j].Rect().MinX
	})

	line := &model.TextLine{
		Position:  page.PositionOf(unionOf(sorted)),
		Statistic: stats.Characters(sorted),
	}
	line.Baseline = baseline(sorted, line.Rect())
	line.Words = t.words(page, sorted, line.Statistic.MostCommonFontSize())

	texts := make([]string, len(line.Words))
	for i, w := range line.Words {
		texts[i] = w.Text
	}
	line.Text = strings.Join(texts, " ")
	return line
}

// baseline returns a horizontal line across rect at the most common bottom
// of the baseline characters, or nil if there are none
func baseline(chars []*model.Character, rect model.Rectangle) *model.Line {
	bottoms := model.NewFloatCounter()
	for _, c := range chars {
		if IsBaselineCharacter(c.Text) {
			bottoms.Add(c.Rect().MinY)
		}
	}
	if bottoms.Total() == 0 {
		return nil
	}
	return model.NewHorizontalLine(rect.MinX, rect.MaxX, bottoms.MostCommon())
}

// words splits left-to-right sorted characters at gaps wider than a
// fraction of the font size
func (t *Tokenizer) words(page *model.Page, chars []*model.Character, fontSize float64) []*model.Word {
	minGap := t.config.WordGapFactor * fontSize

	var words []*model.Word
	start := 0
	for i := 1; i <= len(chars); i++ {
		if i < len(chars) && !(chars[i].Rect().MinX-chars[i-1].Rect().MaxX > minGap) {
			continue
		}
		words = append(words, newWord(page, chars[start:i]))
		start = i
	}
	return words
}

func newWord(page *model.Page, chars []*model.Character) *model.Word {
	var sb strings.Builder
	for _, c := range chars {
		sb.WriteString(c.Text)
	}
	return &model.Word{
		Position:   page.PositionOf(unionOf(chars)),
		Characters: chars,
		Text:       sb.String(),
	}
}
