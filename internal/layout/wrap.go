package layout

// Measurer provides text width measurement for a given emphasis state and
// font size. The export package implements it with real font metrics; tests
// use fixed per-rune widths.
type Measurer interface {
	TextWidth(text string, bold bool, size float64) float64
}

// Line is one wrapped output line: the tokens it holds and their total
// measured width.
type Line struct {
	Tokens []Token
	Width  float64
}

// Wrap greedily packs tokens into lines no wider than maxWidth. Width is
// accumulated per token using that token's emphasis state at the given size.
// Only non-whitespace tokens trigger the overflow check: a pending whitespace
// run never closes a line by itself, it rides along with whichever line it is
// on. A single token wider than maxWidth is placed anyway, unsplit.
func Wrap(tokens []Token, maxWidth float64, size float64, m Measurer) []Line {
	var lines []Line
	var cur []Token
	var width float64

	for _, tok := range tokens {
		w := m.TextWidth(tok.Text, tok.Bold, size)
		if !tok.Space && len(cur) > 0 && width+w > maxWidth {
			lines = append(lines, Line{Tokens: cur, Width: width})
			cur = nil
			width = 0
		}
		cur = append(cur, tok)
		width += w
	}
	if len(cur) > 0 {
		lines = append(lines, Line{Tokens: cur, Width: width})
	}
	return lines
}
