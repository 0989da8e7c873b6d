// Package parser runs the out-of-band CV parsing pipeline: download the
// stored document, extract text, ask the model for structured metadata,
// score completeness, and upsert the result keyed by application id.
// Invocations are idempotent: re-parsing overwrites, never duplicates.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"time"
	"unicode/utf8"

	"github.com/portalempleos/backend/extract"
	"github.com/portalempleos/backend/models"
)

// Pipeline stages reported on failure so an automated trigger can decide
// whether a retry makes sense.
const (
	StageDownload   = "download"
	StageExtraction = "extraction"
	StageAIRequest  = "ai_request"
	StageAIResponse = "ai_response"
	StagePersist    = "persist"
)

// StageError couples a failure with the pipeline stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ObjectDownloader retrieves stored CV bytes
type ObjectDownloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// TextExtractor pulls plain text out of document bytes
type TextExtractor interface {
	ExtractText(content []byte, filename string) (string, error)
}

// AI turns CV text into structured metadata
type AI interface {
	ParseCV(ctx context.Context, cvText string) (*models.CVMetadata, error)
	ModelName() string
}

// MetadataStore persists parsed metadata
type MetadataStore interface {
	UpsertCVMetadata(ctx context.Context, md *models.CVMetadata) error
}

// Parser orchestrates the CV parsing pipeline
type Parser struct {
	storage   ObjectDownloader
	extractor TextExtractor
	ai        AI
	store     MetadataStore
}

// New creates a parser from its collaborators
func New(storage ObjectDownloader, extractor TextExtractor, ai AI, store MetadataStore) *Parser {
	return &Parser{
		storage:   storage,
		extractor: extractor,
		ai:        ai,
		store:     store,
	}
}

// Parse runs the pipeline for one application. Failures carry a *StageError;
// the caller may retry the whole invocation, nothing retries automatically.
func (p *Parser) Parse(ctx context.Context, applicationID, storageKey string) (*models.ParseCVData, error) {
	log.Printf("[Parser] processing CV for application %s (%s)", applicationID, storageKey)

	content, err := p.storage.Download(ctx, storageKey)
	if err != nil {
		return nil, &StageError{Stage: StageDownload, Err: err}
	}

	text, err := p.extractor.ExtractText(content, path.Base(storageKey))
	if err != nil {
		return nil, &StageError{Stage: StageExtraction, Err: err}
	}
	if len(text) < extract.MinReadableChars {
		return nil, &StageError{Stage: StageExtraction, Err: models.ErrCVUnreadable}
	}
	log.Printf("[Parser] extracted %d characters from %s", len(text), storageKey)

	md, err := p.ai.ParseCV(ctx, text)
	if err != nil {
		stage := StageAIRequest
		if errors.Is(err, models.ErrAIResponseMalformed) {
			stage = StageAIResponse
		}
		return nil, &StageError{Stage: stage, Err: err}
	}

	md.ApplicationID = applicationID
	md.RawText = truncate(text, models.MaxRawTextChars)
	md.Confidence = ConfidenceScore(md)
	md.Model = p.ai.ModelName()
	md.ParsedAt = time.Now()

	if err := p.store.UpsertCVMetadata(ctx, md); err != nil {
		return nil, &StageError{Stage: StagePersist, Err: err}
	}

	log.Printf("[Parser] saved metadata for application %s (confidence %.2f)", applicationID, md.Confidence)

	return &models.ParseCVData{
		ApplicationID:   applicationID,
		Metadata:        md,
		ConfidenceScore: md.Confidence,
		ExtractedChars:  len(text),
	}, nil
}

// truncate caps s at max bytes without splitting a rune; the stored raw
// text must remain valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
