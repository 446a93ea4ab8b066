// Package export serializes laid-out documents to PDF bytes using gofpdf.
// It supplies the layout engine with real font metrics and replays the
// resulting placements onto A4 pages with an embedded Helvetica family
// (regular and bold faces).
package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-studio/internal/layout"
)

const fontFamily = "Helvetica"

// Document wraps a gofpdf instance and implements layout.Measurer with its
// font metrics.
type Document struct {
	pdf *gofpdf.Fpdf
	// tr maps UTF-8 to cp1252, the encoding the core fonts use. Every string
	// must pass through it before being measured or drawn, or the bullet
	// glyph and accented characters come out as multi-byte garbage with
	// widths to match.
	tr func(string) string
}

// NewDocument creates an empty A4 portrait document measured in points.
func NewDocument() *Document {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	return &Document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// TextWidth measures text in the regular or bold face at the given size.
func (d *Document) TextWidth(text string, bold bool, size float64) float64 {
	d.pdf.SetFont(fontFamily, fontStyle(bold), size)
	return d.pdf.GetStringWidth(d.tr(text))
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// Render lays out the markdown text and returns the finished PDF. Any layout
// or font error aborts the whole export; no partial document is returned.
func Render(markdown string) ([]byte, error) {
	doc := NewDocument()

	res, err := layout.NewEngine(doc).Layout(markdown)
	if err != nil {
		return nil, &Error{Message: "layout failed", Cause: err}
	}

	doc.replay(res)

	if err := doc.pdf.Error(); err != nil {
		return nil, &Error{Message: "pdf generation failed", Cause: err}
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, &Error{Message: "pdf serialization failed", Cause: err}
	}
	return buf.Bytes(), nil
}

// replay draws every placement, converting the layout engine's bottom-left
// origin to gofpdf's top-left origin.
func (d *Document) replay(res *layout.Result) {
	ti := 0
	ri := 0
	for page := 1; page <= res.Pages; page++ {
		d.pdf.AddPage()
		for ; ti < len(res.Texts) && res.Texts[ti].Page == page; ti++ {
			p := res.Texts[ti]
			d.pdf.SetFont(fontFamily, fontStyle(p.Bold), p.Size)
			d.pdf.SetTextColor(p.Color.R, p.Color.G, p.Color.B)
			// Placement Y is the top of the line box; the baseline sits
			// one font size below it.
			d.pdf.Text(p.X, layout.PageHeight-p.Y+p.Size, d.tr(p.Text))
		}
		for ; ri < len(res.Rules) && res.Rules[ri].Page == page; ri++ {
			r := res.Rules[ri]
			d.pdf.SetDrawColor(layout.ColorRule.R, layout.ColorRule.G, layout.ColorRule.B)
			d.pdf.SetLineWidth(0.75)
			d.pdf.Line(r.X1, layout.PageHeight-r.Y, r.X2, layout.PageHeight-r.Y)
		}
	}
}
