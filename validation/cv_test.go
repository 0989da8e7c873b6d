package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCVFile(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		filename    string
		wantErr     string
	}{
		{
			name:        "valid pdf",
			contentType: "application/pdf",
			size:        2 * 1024 * 1024,
			filename:    "cv_ana_perez.pdf",
		},
		{
			name:        "valid doc",
			contentType: "application/msword",
			size:        1024,
			filename:    "cv.doc",
		},
		{
			name:        "valid docx",
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			size:        1024,
			filename:    "cv.docx",
		},
		{
			name:        "mime with charset parameter",
			contentType: "application/pdf; charset=utf-8",
			size:        1024,
			filename:    "cv.pdf",
		},
		{
			name:        "disallowed mime",
			contentType: "image/png",
			size:        1024,
			filename:    "cv.png",
			wantErr:     "PDF o Word",
		},
		{
			name:        "too large",
			contentType: "application/pdf",
			size:        5*1024*1024 + 1,
			filename:    "cv.pdf",
			wantErr:     "no puede superar 5MB",
		},
		{
			name:        "exactly at limit is accepted",
			contentType: "application/pdf",
			size:        5 * 1024 * 1024,
			filename:    "cv.pdf",
		},
		{
			name:        "empty file",
			contentType: "application/pdf",
			size:        0,
			filename:    "cv.pdf",
			wantErr:     "vacío",
		},
		{
			name:        "filename too long",
			contentType: "application/pdf",
			size:        1024,
			filename:    strings.Repeat("a", 256) + ".pdf",
			wantErr:     "demasiado largo",
		},
		{
			name:        "filename with control character",
			contentType: "application/pdf",
			size:        1024,
			filename:    "cv\x00.pdf",
			wantErr:     "caracteres no permitidos",
		},
		{
			name:        "filename with pipe",
			contentType: "application/pdf",
			size:        1024,
			filename:    "cv|final.pdf",
			wantErr:     "caracteres no permitidos",
		},
		{
			name:        "filename with angle bracket",
			contentType: "application/pdf",
			size:        1024,
			filename:    "<script>.pdf",
			wantErr:     "caracteres no permitidos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCVFile(tt.contentType, tt.size, tt.filename)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCVFile_MimeBeatsSize(t *testing.T) {
	// Fail-fast: the MIME check runs first, so its message wins even when
	// the size is also out of bounds.
	err := ValidateCVFile("image/png", 10*1024*1024, "cv.png")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PDF o Word")
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cv ana pérez.pdf", "cv_ana_p_rez.pdf"},
		{"../../etc/passwd", "passwd"},
		{"CV-Final_v2.docx", "CV-Final_v2.docx"},
		{"résumé?.pdf", "r_sum__.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}
