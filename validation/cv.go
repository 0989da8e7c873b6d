// Package validation checks declared CV file metadata before any bytes are
// read from the request body. These are metadata-only checks: the file is
// never opened or sniffed, so a mislabeled MIME type passes. Magic-byte
// verification is a known hardening gap, not part of the contract.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/portalempleos/backend/models"
)

// MaxCVSize is the maximum accepted CV size: 5 MiB
const MaxCVSize = 5 * 1024 * 1024

// MaxFileNameLength is the maximum accepted filename length
const MaxFileNameLength = 255

// AllowedCVTypes are the accepted MIME types: PDF and the two Word formats
var AllowedCVTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true, // .doc
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
}

const unsafeFileNameChars = `<>:"|?*`

// ValidateCVFile validates a CV's declared MIME type, size, and filename.
// Checks run in order and the first failure is returned (fail-fast).
func ValidateCVFile(contentType string, size int64, filename string) error {
	// Strip any charset parameter before matching the MIME type
	mimeType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if !AllowedCVTypes[mimeType] {
		return models.NewValidationError("cv", "Solo se aceptan archivos PDF o Word (.doc, .docx)")
	}

	if size > MaxCVSize {
		return models.NewValidationError("cv", fmt.Sprintf("El archivo no puede superar %dMB", MaxCVSize/1024/1024))
	}
	if size <= 0 {
		return models.NewValidationError("cv", "El archivo está vacío")
	}

	if len(filename) > MaxFileNameLength {
		return models.NewValidationError("cv", "El nombre del archivo es demasiado largo")
	}
	for _, r := range filename {
		if r < 0x20 || strings.ContainsRune(unsafeFileNameChars, r) {
			return models.NewValidationError("cv", "El nombre del archivo contiene caracteres no permitidos")
		}
	}

	return nil
}

// SanitizeFileName reduces a client-supplied filename to a form safe to
// embed in a storage key: base name only, spaces and disallowed runes
// replaced with underscores.
func SanitizeFileName(filename string) string {
	name := filepath.Base(filename)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
