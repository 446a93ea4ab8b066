package export

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/layout"
)

// contentStreams inflates every FlateDecode stream in the PDF and returns the
// concatenated page content so tests can assert on the drawn bytes.
func contentStreams(t *testing.T, pdf []byte) []byte {
	t.Helper()
	var out []byte
	rest := pdf
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		chunk := rest[i+len("stream\n"):]
		j := bytes.Index(chunk, []byte("endstream"))
		if j < 0 {
			break
		}
		raw := bytes.TrimSuffix(chunk[:j], []byte("\n"))
		if r, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(r); err == nil {
				out = append(out, inflated...)
			}
		}
		rest = chunk[j:]
	}
	return out
}

func TestRender_ProducesPDFBytes(t *testing.T) {
	data, err := Render("# Jane Doe\njane@x.com\n## Experience\n- Built **critical** systems")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRender_EmptyInputFails(t *testing.T) {
	data, err := Render("")
	assert.Nil(t, data)

	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	var emptyErr *layout.EmptyDocumentError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestDocument_TextWidthBoldWiderThanRegular(t *testing.T) {
	doc := NewDocument()
	regular := doc.TextWidth("Experience", false, 11)
	bold := doc.TextWidth("Experience", true, 11)
	assert.Greater(t, regular, 0.0)
	assert.Greater(t, bold, regular)
}

func TestDocument_TextWidthScalesWithSize(t *testing.T) {
	doc := NewDocument()
	small := doc.TextWidth("Jane Doe", false, 11)
	large := doc.TextWidth("Jane Doe", false, 22)
	assert.InDelta(t, small*2, large, 0.01)
}

func TestDocument_TextWidthMeasuresBulletAsOneGlyph(t *testing.T) {
	doc := NewDocument()
	bullet := doc.TextWidth(layout.BulletGlyph, false, 11)
	// Helvetica's bullet advance is 350/1000 em; measuring the raw UTF-8
	// bytes instead would come out almost five times wider.
	assert.InDelta(t, 0.350*11, bullet, 0.1)
}

func TestRender_ContentStreamUsesWinAnsiBytes(t *testing.T) {
	data, err := Render("# José Muñoz\n## Experience\n- Built systems")
	require.NoError(t, err)

	content := string(contentStreams(t, data))
	require.NotEmpty(t, content)

	assert.Contains(t, content, "Built systems")
	// The bullet must be drawn as the single cp1252 byte, never the raw
	// UTF-8 sequence.
	assert.Contains(t, content, "\x95")
	assert.NotContains(t, content, "\xe2\x80\xa2")
	assert.Contains(t, content, "Jos\xe9 Mu\xf1oz")
	assert.NotContains(t, content, "José")
}

func TestRender_MultiPageDocument(t *testing.T) {
	var md string
	for i := 0; i < 120; i++ {
		md += "- a bullet line that should take some horizontal space on the page\n"
	}
	data, err := Render(md)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
