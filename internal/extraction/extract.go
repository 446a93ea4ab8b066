// Package extraction decodes uploaded resume files into plain text.
// Supported inputs are PDF (github.com/ledongthuc/pdf), DOCX (the
// word/document.xml part of the OOXML zip) and plain text/markdown; anything
// else is rejected up front by declared extension.
package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Extract decodes file bytes into text using the declared file name's
// extension. Empty decoded output is treated as a failure: the caller never
// receives a blank resume silently.
func Extract(data []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt", ".md":
		text, err = extractPlain(data)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &DecodeError{Format: ext, Message: "no text content found"}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: ".pdf", Message: "failed to open document", Cause: err}
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &DecodeError{Format: ".pdf", Message: "failed to extract text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &DecodeError{Format: ".pdf", Message: "failed to read text stream", Cause: err}
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &DecodeError{Format: ".docx", Message: "empty file"}
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: ".docx", Message: "not a valid OOXML archive", Cause: err}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", &DecodeError{Format: ".docx", Message: "word/document.xml not found"}
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", &DecodeError{Format: ".docx", Message: "failed to open document.xml", Cause: err}
	}
	defer func() { _ = rc.Close() }()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", &DecodeError{Format: ".docx", Message: "failed to read document.xml", Cause: err}
	}

	return stripDocxXML(raw), nil
}

// stripDocxXML walks the document XML keeping character data and inserting
// line breaks at paragraph and break boundaries.
func stripDocxXML(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return string(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &DecodeError{Format: ".txt", Message: "file is not valid UTF-8"}
	}
	return string(data), nil
}
