package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a contiguous run of text sharing one emphasis state.
type Span struct {
	Text string
	Bold bool
}

// Token is a word or a whitespace run within a span. Whitespace is kept as
// its own token so wrapped lines preserve the original spacing and width
// accumulation works at word granularity.
type Token struct {
	Text  string
	Bold  bool
	Space bool
}

const boldMarker = "**"

// SplitSpans splits a line (marker already stripped) into ordered spans by
// locating non-overlapping **...** substrings. Delimiters are removed from
// the emitted text; an unmatched ** is treated as literal text. Spans never
// nest.
func SplitSpans(s string) []Span {
	var spans []Span
	for {
		start := strings.Index(s, boldMarker)
		if start < 0 {
			break
		}
		end := strings.Index(s[start+len(boldMarker):], boldMarker)
		if end < 0 {
			// Unmatched opener stays literal.
			break
		}
		if start > 0 {
			spans = append(spans, Span{Text: s[:start]})
		}
		bold := s[start+len(boldMarker) : start+len(boldMarker)+end]
		if bold != "" {
			spans = append(spans, Span{Text: bold, Bold: true})
		}
		s = s[start+len(boldMarker)+end+len(boldMarker):]
	}
	if s != "" {
		spans = append(spans, Span{Text: s})
	}
	return spans
}

// Tokenize splits spans into word and whitespace tokens, preserving whitespace
// runs verbatim and tagging every token with its span's emphasis state.
func Tokenize(spans []Span) []Token {
	var tokens []Token
	for _, sp := range spans {
		rest := sp.Text
		for rest != "" {
			first, _ := utf8.DecodeRuneInString(rest)
			isSpace := unicode.IsSpace(first)
			cut := len(rest)
			for i, r := range rest {
				if unicode.IsSpace(r) != isSpace {
					cut = i
					break
				}
			}
			tokens = append(tokens, Token{Text: rest[:cut], Bold: sp.Bold, Space: isSpace})
			rest = rest[cut:]
		}
	}
	return tokens
}
