package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adaptador que implementa LLMService llamando a la API REST de Google Gemini.
// Pide la respuesta con responseMimeType=application/json y un responseSchema,
// así el modelo devuelve JSON puro con los tres campos esperados.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption configura el adaptador.
type GeminiOption func(*GeminiService)

// WithGeminiBaseURL apunta el adaptador a otro host (tests, proxies).
func WithGeminiBaseURL(u string) GeminiOption {
	return func(s *GeminiService) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithGeminiHTTPClient reemplaza el cliente HTTP.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(s *GeminiService) { s.httpClient = c }
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
// Si apiKey está vacío, las llamadas devuelven error sin tocar la red.
func NewGeminiService(apiKey, model string, opts ...GeminiOption) *GeminiService {
	s := &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiDefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // techo de red; el use case pone además WithTimeout
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
	Temperature      float32       `json:"temperature"`
	MaxOutputTokens  int           `json:"maxOutputTokens"`
}

// geminiSchema subconjunto OpenAPI que acepta responseSchema.
type geminiSchema struct {
	Type        string                  `json:"type"`
	Description string                  `json:"description,omitempty"`
	Properties  map[string]geminiSchema `json:"properties,omitempty"`
	Required    []string                `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func predictionSchema() *geminiSchema {
	return &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]geminiSchema{
			"category":       {Type: "STRING", Description: categoryFieldDesc()},
			"estimatedValue": {Type: "NUMBER", Description: valueFieldDesc},
			"description":    {Type: "STRING", Description: descriptionFieldDesc},
		},
		Required: []string{"category", "estimatedValue", "description"},
	}
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SuggestItemDetails llama a Gemini con el nombre del ítem y devuelve la sugerencia validada.
func (s *GeminiService) SuggestItemDetails(ctx context.Context, itemName string) (*entity.AIPrediction, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: userPrompt(itemName)}},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   predictionSchema(),
			Temperature:      0.2,
			MaxOutputTokens:  512,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	// la key nunca en la URL: los errores de transporte la incluyen y se loguean
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, url.PathEscape(s.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	// El texto puede venir partido en varias parts.
	var sb strings.Builder
	for _, p := range gemResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	return parsePrediction(text)
}
