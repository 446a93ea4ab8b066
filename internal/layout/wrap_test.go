package layout

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// fixedMeasurer measures every rune as half the font size, regardless of
// emphasis. Deterministic metrics keep wrap decisions exact in tests.
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(text string, _ bool, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * 0.5
}

func words(texts ...string) []Token {
	var tokens []Token
	for i, txt := range texts {
		if i > 0 {
			tokens = append(tokens, Token{Text: " ", Space: true})
		}
		tokens = append(tokens, Token{Text: txt})
	}
	return tokens
}

func TestWrap_FitsOnOneLine(t *testing.T) {
	// size 10 -> 5 per rune: "abc def" = 35 wide.
	lines := Wrap(words("abc", "def"), 100, 10, fixedMeasurer{})
	assert.Len(t, lines, 1)
	assert.InDelta(t, 35, lines[0].Width, 0.001)
}

func TestWrap_BreaksBeforeOverflowingWord(t *testing.T) {
	// 8-rune words are 40 wide, spaces 5. The third word would make the
	// first line 130 wide, so it carries over.
	lines := Wrap(words("aaaaaaaa", "bbbbbbbb", "cccccccc", "dddddddd"), 100, 10, fixedMeasurer{})
	assert.Len(t, lines, 2)
	assert.Equal(t, "cccccccc", lines[1].Tokens[0].Text)
}

func TestWrap_NoLineExceedsMaxWidth(t *testing.T) {
	lines := Wrap(words("alpha", "beta", "gamma", "delta", "epsilon", "zeta"), 80, 10, fixedMeasurer{})
	for _, line := range lines {
		var nonSpace float64
		for _, tok := range line.Tokens {
			if !tok.Space {
				nonSpace += fixedMeasurer{}.TextWidth(tok.Text, tok.Bold, 10)
			}
		}
		assert.LessOrEqual(t, nonSpace, 80.0)
	}
}

func TestWrap_OversizedTokenPlacedUnsplit(t *testing.T) {
	tok := []Token{{Text: "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"}} // 150 wide
	lines := Wrap(tok, 100, 10, fixedMeasurer{})
	assert.Len(t, lines, 1)
	assert.InDelta(t, 150, lines[0].Width, 0.001)
}

func TestWrap_WhitespaceNeverTriggersBreak(t *testing.T) {
	// The trailing whitespace run pushes cumulative width past the max but
	// must not close the line on its own.
	tokens := []Token{
		{Text: "word"},                         // 20
		{Text: "                    ", Space: true}, // 100
	}
	lines := Wrap(tokens, 100, 10, fixedMeasurer{})
	assert.Len(t, lines, 1)
}

func TestWrap_WidthUsesPerTokenEmphasis(t *testing.T) {
	// A measurer where bold runes are twice as wide. The bold word must be
	// measured with the bold face when deciding the break.
	m := boldAwareMeasurer{}
	tokens := []Token{
		{Text: "aaaa"},              // 20
		{Text: " ", Space: true},    // 5
		{Text: "bbbb", Bold: true},  // 40 bold
	}
	lines := Wrap(tokens, 60, 10, m)
	assert.Len(t, lines, 2)
}

type boldAwareMeasurer struct{}

func (boldAwareMeasurer) TextWidth(text string, bold bool, size float64) float64 {
	w := float64(utf8.RuneCountInString(text)) * size * 0.5
	if bold {
		w *= 2
	}
	return w
}
