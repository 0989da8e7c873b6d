package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/portalempleos/backend/config"
	"github.com/portalempleos/backend/models"
)

// Client wraps the Vertex AI Gemini client for CV extraction
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)

	// Low temperature favors deterministic extraction
	model.SetTemperature(0.3)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(4096)

	return &Client{
		client:    client,
		model:     model,
		modelName: cfg.GeminiModel,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// ModelName returns the configured model identifier
func (c *Client) ModelName() string {
	return c.modelName
}

// ParseCV extracts structured metadata from CV text
func (c *Client) ParseCV(ctx context.Context, cvText string) (*models.CVMetadata, error) {
	prompt := fmt.Sprintf(`Eres un experto en recursos humanos. Extrae información estructurada de este CV en español.

IMPORTANTE: Responde ÚNICAMENTE con JSON válido, sin texto adicional antes o después.

CV:
%s

Extrae la siguiente información y responde en formato JSON:
{
  "nombre_completo": "string (nombre completo del candidato)",
  "email_extraido": "string (email si aparece en el CV)",
  "telefono_extraido": "string (teléfono chileno en formato +56...)",
  "titulo_profesional": "string (título profesional o cargo actual)",
  "resumen": "string (resumen profesional, máximo 500 caracteres)",
  "anos_experiencia": number (años totales de experiencia laboral),
  "habilidades": ["array", "de", "habilidades", "técnicas", "y", "profesionales"],
  "idiomas": [
    {"idioma": "Español", "nivel": "Nativo"},
    {"idioma": "Inglés", "nivel": "Avanzado (C1)"}
  ],
  "experiencia": [
    {
      "empresa": "string",
      "cargo": "string",
      "desde": "YYYY-MM",
      "hasta": "YYYY-MM o 'presente'",
      "descripcion": "string (breve descripción)"
    }
  ],
  "educacion": [
    {
      "institucion": "string",
      "titulo": "string",
      "desde": "YYYY",
      "hasta": "YYYY"
    }
  ],
  "certificaciones": ["array", "de", "certificaciones"]
}

Reglas:
- Si un campo no está disponible, usa null o array vacío
- Para años de experiencia, suma todos los períodos laborales
- Normaliza habilidades a nombres estándar (ej: "Javascript" → "JavaScript")
- Niveles de idiomas: Básico, Intermedio, Avanzado, Nativo
- Responde SOLO con el JSON, sin explicaciones`, cvText)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	text := cleanJSON(extractText(resp))

	var md models.CVMetadata
	if err := json.Unmarshal([]byte(text), &md); err != nil {
		log.Printf("[Gemini] Failed to parse CV response: %s", text)
		return nil, fmt.Errorf("%w: %v", models.ErrAIResponseMalformed, err)
	}

	log.Printf("[Gemini] Parsed CV: name=%s, skills=%d, experience=%.1f years",
		md.FullName, len(md.Skills), md.YearsExp)

	return &md, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	// Safety-blocked candidates come back with a nil Content.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func cleanJSON(text string) string {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
