package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText_PlainFallback(t *testing.T) {
	e := NewDocumentExtractor()

	text, err := e.ExtractText([]byte("Ana Pérez\nDesarrolladora   Backend"), "cv.txt")
	assert.NoError(t, err)
	assert.Equal(t, "Ana Pérez\nDesarrolladora Backend", text)
}

func TestExtractText_LegacyDocKeepsPrintableRuns(t *testing.T) {
	e := NewDocumentExtractor()

	// Binary noise around readable content, as a real .doc body looks
	raw := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0x01, 0x02}, []byte("Ingeniera de Software con experiencia en Go")...)
	raw = append(raw, 0x00, 0x03, 0x04)

	text, err := e.ExtractText(raw, "cv.doc")
	assert.NoError(t, err)
	assert.Contains(t, text, "Ingeniera de Software con experiencia en Go")
	assert.NotContains(t, text, "\x00")
}

func TestExtractText_InvalidPDF(t *testing.T) {
	e := NewDocumentExtractor()

	_, err := e.ExtractText([]byte("not a pdf at all"), "cv.pdf")
	assert.Error(t, err)
}

func TestExtractText_InvalidDocx(t *testing.T) {
	e := NewDocumentExtractor()

	_, err := e.ExtractText([]byte("not a zip archive"), "cv.docx")
	assert.Error(t, err)
}

func TestStripXMLTags(t *testing.T) {
	in := `<w:document><w:body><w:p><w:r><w:t>Ana P&#233;rez</w:t></w:r></w:p><w:p><w:r><w:t>Backend</w:t></w:r></w:p></w:body></w:document>`
	out := stripXMLTags(in)
	assert.Contains(t, out, "Ana Pérez")
	assert.Contains(t, out, "Backend")
	assert.True(t, strings.Contains(out, "\n"), "paragraph breaks should become newlines")
	assert.NotContains(t, out, "<")
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", normalizeWhitespace("  a \t b\r\nc  "))
}
