// Package layout turns markdown-like resume text into a paginated sequence of
// positioned text runs and rule lines on fixed-size A4 pages. It is a single
// forward pass: each source line is classified, split into bold/regular spans,
// greedily word-wrapped against measured widths, and placed with a
// monotonically decreasing vertical cursor that resets when a new page is
// allocated. Text measurement is injected through the Measurer interface so
// the pass can run against fake metrics in tests and real font metrics at
// export time.
package layout

// Page geometry in PostScript points (A4).
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 50.0
)

// Type scale and spacing. Line advance is a fixed multiple of the font size;
// bullets advance by a slightly larger multiple than body lines.
const (
	BodySize       = 11.0
	TitleSize      = 22.0
	SectionSize    = 14.0
	SubsectionSize = 12.0

	LineSpacing   = 1.4
	BulletSpacing = 1.5

	BlankGap         = 6.0
	TitleGapAfter    = 6.0
	SectionGapBefore = 10.0
	SectionGapAfter  = 8.0
	RuleOffset       = 4.0
	BulletIndent     = 14.0
)

// BulletGlyph is drawn at the left margin before the first wrapped line of a
// bullet block.
const BulletGlyph = "•"

// Color is an RGB text color.
type Color struct {
	R, G, B int
}

// Palette used by the placement pass.
var (
	ColorBody    = Color{R: 40, G: 40, B: 40}
	ColorMuted   = Color{R: 120, G: 120, B: 120}
	ColorSection = Color{R: 24, G: 80, B: 140}
	ColorRule    = Color{R: 180, G: 180, B: 180}
)

// blockStyle is the resolved typography for one block kind.
type blockStyle struct {
	size     float64
	bold     bool
	color    Color
	centered bool
	indent   float64 // extra left indent beyond the margin
	spacing  float64 // line advance as a multiple of size
}

// styleFor maps a block kind to its typography. Font selection is purely a
// function of the block kind and span tag, never of page position.
func styleFor(kind BlockKind) blockStyle {
	switch kind {
	case BlockTitle:
		return blockStyle{size: TitleSize, bold: true, color: ColorBody, centered: true, spacing: LineSpacing}
	case BlockContact:
		return blockStyle{size: BodySize, color: ColorMuted, centered: true, spacing: LineSpacing}
	case BlockSection:
		return blockStyle{size: SectionSize, bold: true, color: ColorSection, spacing: LineSpacing}
	case BlockSubsection:
		return blockStyle{size: SubsectionSize, bold: true, color: ColorBody, spacing: LineSpacing}
	case BlockBullet:
		return blockStyle{size: BodySize, color: ColorBody, indent: BulletIndent, spacing: BulletSpacing}
	default:
		return blockStyle{size: BodySize, color: ColorBody, spacing: LineSpacing}
	}
}
