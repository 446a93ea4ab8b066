package layout

import "strings"

// TextPlacement is one positioned text run. Coordinates use a bottom-left
// origin: X grows rightward, Y is the top of the line box and decreases down
// the page. Pages are numbered from 1.
type TextPlacement struct {
	Page  int
	X, Y  float64
	Text  string
	Bold  bool
	Size  float64
	Color Color
}

// RulePlacement is a horizontal rule line.
type RulePlacement struct {
	Page   int
	X1, X2 float64
	Y      float64
}

// Result is the full output of a layout pass: deterministic for identical
// input and identical font metrics.
type Result struct {
	Pages int
	Texts []TextPlacement
	Rules []RulePlacement
}

// Engine runs the layout pass with an injected Measurer.
type Engine struct {
	m Measurer
}

// NewEngine returns an engine measuring text with m.
func NewEngine(m Measurer) *Engine {
	return &Engine{m: m}
}

// state is the explicit layout cursor threaded through each placement call:
// current page and current vertical offset. The cursor is never left below
// the bottom margin; running out of room allocates a new page and resets it
// to the top margin.
type state struct {
	res    *Result
	page   int
	cursor float64
}

func (st *state) newPage() {
	st.page++
	st.res.Pages = st.page
	st.cursor = PageHeight - Margin
}

// ensureRoom allocates a new page when the remaining height above the bottom
// margin cannot fit one more line of the given height.
func (st *state) ensureRoom(lineHeight float64) {
	if st.cursor-lineHeight < Margin {
		st.newPage()
	}
}

// Layout lays out the markdown text and returns every placement. An input
// with no non-blank content fails before any page is allocated.
func (e *Engine) Layout(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	st := &state{res: &Result{}}
	st.newPage()

	for i := range lines {
		kind := Classify(lines, i)
		e.placeBlock(st, lines[i], kind)
	}
	return st.res, nil
}

// placeBlock classifies, wraps and places one source line.
func (e *Engine) placeBlock(st *state, raw string, kind BlockKind) {
	if kind == BlockBlank {
		st.cursor -= BlankGap
		return
	}

	style := styleFor(kind)
	if kind == BlockSection {
		st.cursor -= SectionGapBefore
	}

	content := Content(raw, kind)
	tokens := Tokenize(SplitSpans(content))
	if style.bold {
		// The font in effect for every span of a bold block is bold, so
		// wrap widths must be measured with the bold face too.
		for i := range tokens {
			tokens[i].Bold = true
		}
	}
	maxWidth := PageWidth - 2*Margin - style.indent
	wrapped := Wrap(tokens, maxWidth, style.size, e.m)
	if len(wrapped) == 0 {
		wrapped = []Line{{}}
	}

	lineHeight := style.spacing * style.size
	var lastY float64

	for li, line := range wrapped {
		// The overflow check runs per wrapped line, not per block, so a
		// multi-line bullet or paragraph may split across pages and a
		// header may be orphaned at a page bottom.
		st.ensureRoom(lineHeight)

		x := Margin + style.indent
		if style.centered {
			x = (PageWidth - line.Width) / 2
		}

		if kind == BlockBullet && li == 0 {
			st.res.Texts = append(st.res.Texts, TextPlacement{
				Page: st.page, X: Margin, Y: st.cursor,
				Text: BulletGlyph, Size: style.size, Color: style.color,
			})
		}

		e.placeRuns(st, line, x, style)
		lastY = st.cursor
		st.cursor -= lineHeight
	}

	switch kind {
	case BlockTitle:
		st.cursor -= TitleGapAfter
	case BlockSection:
		st.res.Rules = append(st.res.Rules, RulePlacement{
			Page: st.page,
			X1:   Margin,
			X2:   PageWidth - Margin,
			Y:    lastY - SectionSize - RuleOffset,
		})
		st.cursor -= SectionGapAfter
	}
}

// placeRuns emits one text placement per contiguous emphasis run of the line,
// at increasing x offsets. Whitespace tokens contribute width and travel with
// the run they sit in.
func (e *Engine) placeRuns(st *state, line Line, x float64, style blockStyle) {
	i := 0
	for i < len(line.Tokens) {
		bold := line.Tokens[i].Bold
		var run strings.Builder
		var runWidth float64
		for i < len(line.Tokens) && line.Tokens[i].Bold == bold {
			run.WriteString(line.Tokens[i].Text)
			runWidth += e.m.TextWidth(line.Tokens[i].Text, bold, style.size)
			i++
		}
		st.res.Texts = append(st.res.Texts, TextPlacement{
			Page: st.page, X: x, Y: st.cursor,
			Text: run.String(), Bold: bold,
			Size: style.size, Color: style.color,
		})
		x += runWidth
	}
}
