package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalempleos/backend/models"
)

type fakeCVParser struct {
	err error
}

func (f *fakeCVParser) Parse(_ context.Context, applicationID, _ string) (*models.ParseCVData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ParseCVData{
		ApplicationID:   applicationID,
		Metadata:        &models.CVMetadata{FullName: "Ana Pérez"},
		ConfidenceScore: 0.75,
	}, nil
}

func execute(t *testing.T, tool Tool, input string) ToolResult {
	t.Helper()
	raw, err := tool.Execute(context.Background(), json.RawMessage(input))
	require.NoError(t, err)
	var result ToolResult
	require.NoError(t, json.Unmarshal(raw, &result))
	return result
}

func TestParseCVTool_Execute(t *testing.T) {
	tool := NewParseCVTool(&fakeCVParser{})

	result := execute(t, tool, `{"application_id":"app-1","cv_storage_key":"cvs/o/app-1.pdf"}`)
	require.True(t, result.Success, result.Error)

	var data models.ParseCVData
	require.NoError(t, json.Unmarshal(result.Data, &data))
	assert.Equal(t, "app-1", data.ApplicationID)
	assert.Equal(t, 0.75, data.ConfidenceScore)
}

func TestParseCVTool_MissingInput(t *testing.T) {
	tool := NewParseCVTool(&fakeCVParser{})

	result := execute(t, tool, `{"application_id":"app-1"}`)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "required")
}

func TestParseCVTool_ParserFailure(t *testing.T) {
	tool := NewParseCVTool(&fakeCVParser{err: errors.New("extraction: documento ilegible")})

	result := execute(t, tool, `{"application_id":"app-1","cv_storage_key":"k"}`)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "CV parsing failed")
}

func TestRegistry(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(NewParseCVTool(&fakeCVParser{}))

	tool, ok := registry.Get("parse_cv")
	require.True(t, ok)
	assert.Equal(t, "parse_cv", tool.Name())
	assert.Len(t, registry.List(), 1)

	_, ok = registry.Get("desconocida")
	assert.False(t, ok)
}
