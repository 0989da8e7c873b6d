// Package extract pulls plain text out of uploaded CV documents.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MinReadableChars is the quality gate: shorter extractions are treated as
// scanned images or otherwise unreadable documents, not crashes.
const MinReadableChars = 100

// DocumentExtractor extracts text from PDF and Word documents
type DocumentExtractor struct{}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// ExtractText extracts plain text from document bytes, dispatching on the
// filename extension.
func (e *DocumentExtractor) ExtractText(content []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.extractPDF(content)
	case ".docx":
		return e.extractDocx(content)
	case ".doc":
		return e.extractDoc(content), nil
	default:
		// Unknown extension: treat as plain text
		return normalizeWhitespace(string(content)), nil
	}
}

func (e *DocumentExtractor) extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return normalizeWhitespace(buf.String()), nil
}

func (e *DocumentExtractor) extractDocx(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	return normalizeWhitespace(stripXMLTags(doc.Editable().GetContent())), nil
}

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]*>`)
)

func stripXMLTags(content string) string {
	content = paragraphEndRe.ReplaceAllString(content, "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// extractDoc scans a legacy .doc binary for printable runs. The OLE
// compound format has no maintained Go reader, so this keeps the
// printable-byte heuristic: good enough for the quality gate to decide
// readability.
func (e *DocumentExtractor) extractDoc(content []byte) string {
	var sb strings.Builder
	for _, r := range string(content) {
		if (r >= 0x20 && r <= 0x7E) || isLatinExtended(r) || r == '\n' || r == '\r' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return normalizeWhitespace(sb.String())
}

func isLatinExtended(r rune) bool {
	return r >= 0x00C0 && r <= 0x017F
}

var multiSpaceRe = regexp.MustCompile(`[ \t]+`)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
