package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutOf(t *testing.T, text string) *Result {
	t.Helper()
	res, err := NewEngine(fixedMeasurer{}).Layout(text)
	require.NoError(t, err)
	return res
}

func TestLayout_EmptyInputFailsBeforePageAllocation(t *testing.T) {
	res, err := NewEngine(fixedMeasurer{}).Layout("   \n\n  ")
	assert.Nil(t, res)
	var emptyErr *EmptyDocumentError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestLayout_ScenarioJaneDoe(t *testing.T) {
	res := layoutOf(t, "# Jane Doe\njane@x.com | 555-1234\n## Experience\n- Built **critical** systems")

	require.Equal(t, 1, res.Pages)
	require.Len(t, res.Texts, 7)

	title := res.Texts[0]
	assert.Equal(t, "Jane Doe", title.Text)
	assert.True(t, title.Bold)
	assert.InDelta(t, TitleSize, title.Size, 0.001)
	titleWidth := fixedMeasurer{}.TextWidth("Jane Doe", true, TitleSize)
	assert.InDelta(t, (PageWidth-titleWidth)/2, title.X, 0.001)
	assert.InDelta(t, PageHeight-Margin, title.Y, 0.001)

	contact := res.Texts[1]
	assert.Equal(t, "jane@x.com | 555-1234", contact.Text)
	assert.False(t, contact.Bold)
	assert.Equal(t, ColorMuted, contact.Color)
	contactWidth := fixedMeasurer{}.TextWidth(contact.Text, false, BodySize)
	assert.InDelta(t, (PageWidth-contactWidth)/2, contact.X, 0.001)

	section := res.Texts[2]
	assert.Equal(t, "Experience", section.Text)
	assert.True(t, section.Bold)
	assert.Equal(t, ColorSection, section.Color)
	require.Len(t, res.Rules, 1)
	assert.InDelta(t, section.Y-SectionSize-RuleOffset, res.Rules[0].Y, 0.001)

	glyph := res.Texts[3]
	assert.Equal(t, BulletGlyph, glyph.Text)
	assert.InDelta(t, Margin, glyph.X, 0.001)

	assert.Equal(t, "Built ", res.Texts[4].Text)
	assert.False(t, res.Texts[4].Bold)
	assert.InDelta(t, Margin+BulletIndent, res.Texts[4].X, 0.001)

	assert.Equal(t, "critical", res.Texts[5].Text)
	assert.True(t, res.Texts[5].Bold)

	assert.Equal(t, " systems", res.Texts[6].Text)
	assert.False(t, res.Texts[6].Bold)

	// Runs sit at increasing x offsets on the same baseline.
	assert.Greater(t, res.Texts[5].X, res.Texts[4].X)
	assert.Greater(t, res.Texts[6].X, res.Texts[5].X)
	assert.InDelta(t, res.Texts[4].Y, res.Texts[6].Y, 0.001)
}

func TestLayout_RuleEmittedUnderEverySectionHeader(t *testing.T) {
	res := layoutOf(t, "## One\nbody\n## Two\nbody\n## Three")
	assert.Len(t, res.Rules, 3)
	for _, rule := range res.Rules {
		assert.InDelta(t, Margin, rule.X1, 0.001)
		assert.InDelta(t, PageWidth-Margin, rule.X2, 0.001)
	}
}

func TestLayout_BulletContinuationAlignsToIndent(t *testing.T) {
	long := strings.Repeat("word ", 60)
	res := layoutOf(t, "- "+strings.TrimSpace(long))

	glyphs := 0
	for _, p := range res.Texts {
		if p.Text == BulletGlyph {
			glyphs++
			continue
		}
		assert.InDelta(t, Margin+BulletIndent, p.X, 0.001,
			"wrapped bullet lines align to the bullet indent, not the margin")
	}
	assert.Equal(t, 1, glyphs, "glyph only on the first wrapped line")
	// The item actually wrapped.
	assert.Greater(t, len(res.Texts), 3)
}

func TestLayout_PageBreakResetsCursorToTopMargin(t *testing.T) {
	res := layoutOf(t, strings.TrimSuffix(strings.Repeat("line\n", 60), "\n"))

	require.Equal(t, 2, res.Pages)
	var firstOnSecond *TextPlacement
	for i := range res.Texts {
		if res.Texts[i].Page == 2 {
			firstOnSecond = &res.Texts[i]
			break
		}
	}
	require.NotNil(t, firstOnSecond)
	assert.InDelta(t, PageHeight-Margin, firstOnSecond.Y, 0.001)
}

func TestLayout_LongParagraphSplitsMidBlock(t *testing.T) {
	// One logical paragraph whose wrapped text cannot fit a page: the
	// overflow check is per wrapped line, so the block splits.
	res := layoutOf(t, strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 400)))
	assert.GreaterOrEqual(t, res.Pages, 2)
}

func TestLayout_NoPlacementBelowBottomMargin(t *testing.T) {
	res := layoutOf(t, strings.Repeat("some body text that wraps over and over again ", 300))
	for _, p := range res.Texts {
		assert.GreaterOrEqual(t, p.Y, Margin)
	}
}

func TestLayout_SectionHeaderCanBeOrphaned(t *testing.T) {
	// No keep-with-next handling exists: a header that fits at the bottom
	// of a page stays there even when its body lands on the next page.
	var sb strings.Builder
	for i := 0; i < 45; i++ {
		sb.WriteString("filler\n")
	}
	sb.WriteString("## Orphan\nbody after the break")
	res := layoutOf(t, sb.String())

	require.Equal(t, 2, res.Pages)
	var header, body *TextPlacement
	for i := range res.Texts {
		switch res.Texts[i].Text {
		case "Orphan":
			header = &res.Texts[i]
		case "body after the break":
			body = &res.Texts[i]
		}
	}
	require.NotNil(t, header)
	require.NotNil(t, body)
	assert.Equal(t, header.Page+1, body.Page)
}

func TestLayout_Idempotent(t *testing.T) {
	input := "# T\ncontact\n## S\n- one **two** three\n\nbody " + strings.Repeat("x ", 500)
	a := layoutOf(t, input)
	b := layoutOf(t, input)
	assert.Equal(t, a, b)
}

func TestLayout_BlankLineAddsGapWithoutContent(t *testing.T) {
	with := layoutOf(t, "a\n\nb")
	without := layoutOf(t, "a\nb")
	require.Len(t, with.Texts, 2)
	require.Len(t, without.Texts, 2)
	assert.InDelta(t, without.Texts[1].Y-BlankGap, with.Texts[1].Y, 0.001)
}
