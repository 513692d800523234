package layout

// Characters that sit on the baseline, i.e. without descenders. The line
// tokenizer places the baseline at the bottom of these.
var baselineCharacters = runeSet(
	// Latin
	"abcdefhiklmnorstuvwxz",
	"ABCDEFGHIKLMNOPRSTUVWXYZ",
	"0123456789",
	// Greek
	"αδεικλνοπστυω",
	"ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ",
	// Cyrillic
	"абвгеёжзийклмнопстхчшыьэюя",
	"АБВГЕЁЖЗИЙКЛМНОПРСТУФХЧШЫЬЭЮЯ",
)

func runeSet(groups ...string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, g := range groups {
		for _, r := range g {
			set[r] = struct{}{}
		}
	}
	return set
}

// IsBaselineCharacter reports whether text is a single character that sits
// on the baseline
func IsBaselineCharacter(text string) bool {
	runes := []rune(text)
	if len(runes) != 1 {
		return false
	}
	_, ok := baselineCharacters[runes[0]]
	return ok
}
