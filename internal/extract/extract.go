// Package extract pulls titles and full text out of uploaded PDF and DOCX
// payloads. Unknown formats degrade gracefully: the title falls back to the
// file name and the text to an empty string.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	untitledPDF  = "Untitled PDF"
	untitledWord = "Untitled Word"
)

// ErrCorrupt indicates the payload could not be parsed as its declared format.
var ErrCorrupt = errors.New("unreadable document")

// Title derives a document title from the payload. Never returns an empty
// string: PDF falls back to the metadata title, then the largest-font text on
// the first page, then "Untitled PDF"; DOCX uses the first non-blank
// paragraph or "Untitled Word"; anything else uses the file name without its
// extension.
func Title(data []byte, fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return pdfTitle(data)
	case ".docx":
		return docxTitle(data)
	default:
		base := filepath.Base(fileName)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
}

// FullText extracts the complete text content of the payload. Unsupported
// extensions yield an empty string without error; corrupt PDF/DOCX input
// yields an error wrapping ErrCorrupt.
func FullText(data []byte, fileName string) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return pdfText(data)
	case ".docx":
		return docxText(data)
	default:
		return "", nil
	}
}

func pdfText(data []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: pdf: %v", ErrCorrupt, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrCorrupt, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrCorrupt, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrCorrupt, err)
	}
	return buf.String(), nil
}

func pdfTitle(data []byte) (title string) {
	defer func() {
		if rec := recover(); rec != nil {
			title = untitledPDF
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return untitledPDF
	}

	if meta := reader.Trailer().Key("Info").Key("Title"); !meta.IsNull() {
		if t := strings.TrimSpace(meta.Text()); t != "" {
			return t
		}
	}

	// No metadata title: take the largest-font text on the first page.
	page := reader.Page(1)
	if page.V.IsNull() {
		return untitledPDF
	}

	var largest float64
	for _, txt := range page.Content().Text {
		if strings.TrimSpace(txt.S) == "" {
			continue
		}
		if txt.FontSize > largest {
			largest = txt.FontSize
		}
	}
	if largest == 0 {
		return untitledPDF
	}

	var b strings.Builder
	for _, txt := range page.Content().Text {
		if txt.FontSize == largest {
			b.WriteString(txt.S)
		}
	}
	if t := strings.TrimSpace(b.String()); t != "" {
		return t
	}
	return untitledPDF
}

func docxText(data []byte) (string, error) {
	raw, err := docxDocumentXML(data)
	if err != nil {
		return "", err
	}
	return stripDocxXML(raw), nil
}

func docxTitle(data []byte) string {
	raw, err := docxDocumentXML(data)
	if err != nil {
		return untitledWord
	}
	for _, para := range docxParagraphs(raw) {
		if t := strings.TrimSpace(para); t != "" {
			return t
		}
	}
	return untitledWord
}

func docxDocumentXML(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: docx: empty payload", ErrCorrupt)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrCorrupt, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: docx: document.xml not found", ErrCorrupt)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrCorrupt, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrCorrupt, err)
	}
	return string(raw), nil
}

// stripDocxXML flattens document.xml to plain text, inserting newlines at
// paragraph and line-break boundaries.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
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

// docxParagraphs returns the text of each paragraph in document order.
func docxParagraphs(raw string) []string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var paras []string
	var current strings.Builder
	inParagraph := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				inParagraph = true
				current.Reset()
			}
		case xml.CharData:
			if inParagraph {
				current.WriteString(string(t))
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				paras = append(paras, current.String())
				inParagraph = false
			}
		}
	}
	return paras
}
