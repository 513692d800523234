package layout

import (
	"github.com/tsawler/pdfstruct/model"
)

// areaCutter splits a page into text areas. Lanes must be wider, or
// taller, than a multiple of the page's typical character.
func (t *Tokenizer) areaCutter(stat *model.CharacterStatistic) XYCut[*model.Character] {
	minWidth := t.config.ColumnGapFactor * stat.MostCommonWidth()
	minHeight := t.config.AreaGapFactor * stat.MostCommonHeight()
	return XYCut[*model.Character]{
		Vertical: func(left, right Half[*model.Character]) float64 {
			return right.Union.MinX - left.Union.MaxX - minWidth
		},
		Horizontal: func(upper, lower Half[*model.Character]) float64 {
			return upper.Union.MinY - lower.Union.MaxY - minHeight
		},
	}
}

// textAreas partitions the characters of a page
func (t *Tokenizer) textAreas(page *model.Page, stat *model.CharacterStatistic) []*model.TextArea {
	leaves := t.areaCutter(stat).Cut(page.Characters)
	areas := make([]*model.TextArea, 0, len(leaves))
	for _, leaf := range leaves {
		areas = append(areas, &model.TextArea{
			Position:   page.PositionOf(unionOf(leaf)),
			Characters: leaf,
		})
	}
	return areas
}

// unionOf returns the extent of elements
func unionOf[E model.Element](elements []E) model.Rectangle {
	var r model.Rectangle
	for i, e := range elements {
		if i == 0 {
			r = e.Rect()
		} else {
			r = r.Union(e.Rect())
		}
	}
	return r
}
