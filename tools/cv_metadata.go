package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/portalempleos/backend/models"
)

// MetadataReader looks up previously parsed CV metadata
type MetadataReader interface {
	GetCVMetadata(ctx context.Context, applicationID string) (*models.CVMetadata, error)
}

// CVMetadataTool returns the parsed metadata stored for an application
type CVMetadataTool struct {
	store MetadataReader
}

// NewCVMetadataTool creates a new metadata lookup tool
func NewCVMetadataTool(store MetadataReader) *CVMetadataTool {
	return &CVMetadataTool{store: store}
}

func (t *CVMetadataTool) Name() string {
	return "get_cv_metadata"
}

func (t *CVMetadataTool) Description() string {
	return `Fetch the structured metadata previously extracted from an application's CV,
including skills, work history and the extraction confidence score.`
}

func (t *CVMetadataTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"application_id": map[string]interface{}{
				"type":        "string",
				"description": "The application whose metadata should be fetched",
			},
		},
		"required": []string{"application_id"},
	}
}

// CVMetadataInput represents the input for a metadata lookup
type CVMetadataInput struct {
	ApplicationID string `json:"application_id"`
}

func (t *CVMetadataTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var lookupInput CVMetadataInput
	if err := json.Unmarshal(input, &lookupInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if lookupInput.ApplicationID == "" {
		return NewErrorResult("application_id is required")
	}

	md, err := t.store.GetCVMetadata(ctx, lookupInput.ApplicationID)
	if err != nil {
		return NewErrorResult(fmt.Sprintf("metadata lookup failed: %v", err))
	}

	return NewSuccessResult(md)
}
