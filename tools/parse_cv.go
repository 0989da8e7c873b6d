package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/portalempleos/backend/models"
)

// CVParser runs the parsing pipeline for one stored CV
type CVParser interface {
	Parse(ctx context.Context, applicationID, storageKey string) (*models.ParseCVData, error)
}

// ParseCVTool runs the full CV parsing pipeline for a stored application CV
type ParseCVTool struct {
	parser CVParser
}

// NewParseCVTool creates a new CV parsing tool
func NewParseCVTool(parser CVParser) *ParseCVTool {
	return &ParseCVTool{parser: parser}
}

func (t *ParseCVTool) Name() string {
	return "parse_cv"
}

func (t *ParseCVTool) Description() string {
	return `Parse a stored CV for an application: download the file, extract its text
and produce structured metadata (name, skills, work history, education) plus a
confidence score. Re-running for the same application overwrites its metadata.`
}

func (t *ParseCVTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"application_id": map[string]interface{}{
				"type":        "string",
				"description": "The application whose CV should be parsed",
			},
			"cv_storage_key": map[string]interface{}{
				"type":        "string",
				"description": "Storage key of the CV object (cvs/{offer}/{file})",
			},
		},
		"required": []string{"application_id", "cv_storage_key"},
	}
}

// ParseCVInput represents the input for CV parsing
type ParseCVInput struct {
	ApplicationID string `json:"application_id"`
	CVStorageKey  string `json:"cv_storage_key"`
}

func (t *ParseCVTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var parseInput ParseCVInput
	if err := json.Unmarshal(input, &parseInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if parseInput.ApplicationID == "" || parseInput.CVStorageKey == "" {
		return NewErrorResult("application_id and cv_storage_key are required")
	}

	data, err := t.parser.Parse(ctx, parseInput.ApplicationID, parseInput.CVStorageKey)
	if err != nil {
		return NewErrorResult(fmt.Sprintf("CV parsing failed: %v", err))
	}

	return NewSuccessResult(data)
}
