package workspace

// unknownIcon is shown for icon ids the set does not know. No known icon
// uses it in either set.
const unknownIcon = "?"

// Icons resolves opaque icon ids to short terminal labels.
type Icons struct {
	glyphs map[string]string
}

// glyphIcons needs a terminal with Unicode symbols.
var glyphIcons = map[string]string{
	"OcArrowSwitch16":  "⇄",
	"LiBrackets":       "[[",
	"LiStickyNote":     "![[",
	"LiBold":           "B",
	"LiItalic":         "I",
	"LiHeading":        "H1",
	"LiHeading2":       "H2",
	"LiPercent":        "%%",
	"LiUndo2":          "↶",
	"LiRedo2":          "↷",
	"LiSigma":          "Σ",
	"LiAlignCenter":    "≡",
	"TiBackslash":      "\\\\",
	"LiLetterText":     "Tx",
	"LiSpace":          "␣",
	"TiMathXDivideY":   "x/y",
	"LiMoveHorizontal": "⇔",
	"LiList":           "•",
	"TiListNumbers":    "1.",
	"LiCheckSquare":    "☑",
	"LiIndentIncrease": "⇥",
	"LiIndentDecrease": "⇤",
	"LiStrikethrough":  "S̶",
	"LiCode":           "<>",
	"LiCodeSquare":     "```",
	"LiArrowBigRight":  "→",
	"LiBraces":         "{}",
	"LiEqual":          "=",
	"semicolon":        ";",
	"LiParentheses":    "()",
}

// asciiIcons is used when the terminal cannot be trusted with Unicode.
var asciiIcons = map[string]string{
	"OcArrowSwitch16":  "<>",
	"LiUndo2":          "undo",
	"LiRedo2":          "redo",
	"LiSigma":          "$$",
	"LiAlignCenter":    "align",
	"LiSpace":          "sp",
	"LiMoveHorizontal": "<=>",
	"LiList":           "-",
	"LiCheckSquare":    "[ ]",
	"LiIndentIncrease": ">>",
	"LiIndentDecrease": "<<",
	"LiStrikethrough":  "~~",
	"LiArrowBigRight":  "tab",
}

// NewIcons returns the icon set. ascii selects plain ASCII labels.
func NewIcons(ascii bool) *Icons {
	glyphs := make(map[string]string, len(glyphIcons))
	for id, g := range glyphIcons {
		glyphs[id] = g
	}

	if ascii {
		for id, g := range asciiIcons {
			glyphs[id] = g
		}
	}

	return &Icons{glyphs: glyphs}
}

// Glyph returns the label for id.
func (i *Icons) Glyph(id string) string {
	if g, ok := i.glyphs[id]; ok {
		return g
	}
	return unknownIcon
}
