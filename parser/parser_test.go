package parser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalempleos/backend/models"
)

const readableCV = `Ana Pérez, Ingeniera de Software. Cinco años de experiencia
en desarrollo backend con Go y PostgreSQL. Email: ana@example.com.
Experiencia: Acme Chile (2021-presente), Beta Ltda (2019-2020).`

type fakeDownloader struct {
	objects map[string][]byte
}

func (f *fakeDownloader) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, models.ErrObjectNotFound
	}
	return data, nil
}

type fakeExtractor struct {
	err error
}

func (f *fakeExtractor) ExtractText(content []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return string(content), nil
}

type fakeAI struct {
	md    *models.CVMetadata
	err   error
	calls int
}

func (f *fakeAI) ParseCV(_ context.Context, _ string) (*models.CVMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// Return a copy so the pipeline's mutations don't leak between calls
	md := *f.md
	return &md, nil
}

func (f *fakeAI) ModelName() string { return "gemini-2.5-flash" }

type fakeMetadataStore struct {
	rows map[string]*models.CVMetadata
	err  error
}

func (f *fakeMetadataStore) UpsertCVMetadata(_ context.Context, md *models.CVMetadata) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = make(map[string]*models.CVMetadata)
	}
	f.rows[md.ApplicationID] = md
	return nil
}

func newTestParser(store *fakeMetadataStore, ai *fakeAI) *Parser {
	return New(
		&fakeDownloader{objects: map[string][]byte{
			"cvs/offer-1/app-1-cv.pdf": []byte(readableCV),
		}},
		&fakeExtractor{},
		ai,
		store,
	)
}

func TestParse_Success(t *testing.T) {
	store := &fakeMetadataStore{}
	ai := &fakeAI{md: &models.CVMetadata{
		FullName: "Ana Pérez",
		Email:    "ana@example.com",
		Skills:   []string{"Go", "PostgreSQL"},
	}}
	p := newTestParser(store, ai)

	data, err := p.Parse(context.Background(), "app-1", "cvs/offer-1/app-1-cv.pdf")
	require.NoError(t, err)

	assert.Equal(t, "app-1", data.ApplicationID)
	assert.Equal(t, len(readableCV), data.ExtractedChars)
	assert.Equal(t, data.Metadata.Confidence, data.ConfidenceScore)

	row, ok := store.rows["app-1"]
	require.True(t, ok, "metadata row should be persisted")
	assert.Equal(t, "Ana Pérez", row.FullName)
	assert.Equal(t, "gemini-2.5-flash", row.Model)
	assert.Equal(t, readableCV, row.RawText)
	assert.False(t, row.ParsedAt.IsZero())
	assert.GreaterOrEqual(t, row.Confidence, 0.0)
	assert.LessOrEqual(t, row.Confidence, 1.0)
}

func TestParse_IdempotentOverwrite(t *testing.T) {
	store := &fakeMetadataStore{}
	ai := &fakeAI{md: &models.CVMetadata{FullName: "Ana Pérez"}}
	p := newTestParser(store, ai)

	_, err := p.Parse(context.Background(), "app-1", "cvs/offer-1/app-1-cv.pdf")
	require.NoError(t, err)

	ai.md = &models.CVMetadata{FullName: "Ana María Pérez", Email: "ana@example.com"}
	_, err = p.Parse(context.Background(), "app-1", "cvs/offer-1/app-1-cv.pdf")
	require.NoError(t, err)

	assert.Len(t, store.rows, 1, "re-parsing must overwrite, not duplicate")
	assert.Equal(t, "Ana María Pérez", store.rows["app-1"].FullName)
	assert.Equal(t, "ana@example.com", store.rows["app-1"].Email)
}

func TestParse_DownloadFailure(t *testing.T) {
	store := &fakeMetadataStore{}
	p := newTestParser(store, &fakeAI{md: &models.CVMetadata{}})

	_, err := p.Parse(context.Background(), "app-1", "cvs/offer-1/missing.pdf")

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageDownload, stageErr.Stage)
	assert.Empty(t, store.rows)
}

func TestParse_UnreadableShortText(t *testing.T) {
	store := &fakeMetadataStore{}
	ai := &fakeAI{md: &models.CVMetadata{}}
	p := New(
		&fakeDownloader{objects: map[string][]byte{
			"cvs/offer-1/scan.pdf": []byte("solo 40 caracteres de texto extraíble.."),
		}},
		&fakeExtractor{},
		ai,
		store,
	)

	_, err := p.Parse(context.Background(), "app-1", "cvs/offer-1/scan.pdf")

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageExtraction, stageErr.Stage)
	assert.ErrorIs(t, err, models.ErrCVUnreadable)
	assert.Zero(t, ai.calls, "the model must not be called for unreadable documents")
	assert.Empty(t, store.rows, "no metadata row for unreadable documents")
}

func TestParse_ExtractorFailure(t *testing.T) {
	store := &fakeMetadataStore{}
	p := New(
		&fakeDownloader{objects: map[string][]byte{"k": []byte("x")}},
		&fakeExtractor{err: errors.New("corrupt document")},
		&fakeAI{md: &models.CVMetadata{}},
		store,
	)

	_, err := p.Parse(context.Background(), "app-1", "k")

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageExtraction, stageErr.Stage)
}

func TestParse_AIFailureStages(t *testing.T) {
	tests := []struct {
		name      string
		aiErr     error
		wantStage string
	}{
		{
			name:      "request failure",
			aiErr:     errors.New("deadline exceeded"),
			wantStage: StageAIRequest,
		},
		{
			name:      "malformed response",
			aiErr:     models.ErrAIResponseMalformed,
			wantStage: StageAIResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeMetadataStore{}
			p := newTestParser(store, &fakeAI{err: tt.aiErr})

			_, err := p.Parse(context.Background(), "app-1", "cvs/offer-1/app-1-cv.pdf")

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, tt.wantStage, stageErr.Stage)
			assert.Empty(t, store.rows)
		})
	}
}

func TestParse_PersistFailure(t *testing.T) {
	store := &fakeMetadataStore{err: errors.New("store unavailable")}
	p := newTestParser(store, &fakeAI{md: &models.CVMetadata{FullName: "Ana"}})

	_, err := p.Parse(context.Background(), "app-1", "cvs/offer-1/app-1-cv.pdf")

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StagePersist, stageErr.Stage)
}

func TestParse_RawTextCapped(t *testing.T) {
	longText := strings.Repeat("experiencia profesional en desarrollo de software. ", 2000)
	store := &fakeMetadataStore{}
	p := New(
		&fakeDownloader{objects: map[string][]byte{"k": []byte(longText)}},
		&fakeExtractor{},
		&fakeAI{md: &models.CVMetadata{FullName: "Ana"}},
		store,
	)

	data, err := p.Parse(context.Background(), "app-1", "k")
	require.NoError(t, err)

	assert.Equal(t, models.MaxRawTextChars, len(store.rows["app-1"].RawText))
	assert.Greater(t, data.ExtractedChars, models.MaxRawTextChars,
		"extracted char count reflects the full text, not the cap")
}

func TestParse_RawTextCapKeepsValidUTF8(t *testing.T) {
	// A two-byte rune straddles the byte cap; the stored text must back
	// off to the rune boundary instead of keeping half the rune.
	longText := strings.Repeat("a", models.MaxRawTextChars-1) + strings.Repeat("é", 50)
	store := &fakeMetadataStore{}
	p := New(
		&fakeDownloader{objects: map[string][]byte{"k": []byte(longText)}},
		&fakeExtractor{},
		&fakeAI{md: &models.CVMetadata{FullName: "Ana"}},
		store,
	)

	_, err := p.Parse(context.Background(), "app-1", "k")
	require.NoError(t, err)

	raw := store.rows["app-1"].RawText
	assert.True(t, utf8.ValidString(raw), "raw text must stay valid UTF-8")
	assert.Equal(t, models.MaxRawTextChars-1, len(raw))
	assert.True(t, strings.HasSuffix(raw, "a"))
}
