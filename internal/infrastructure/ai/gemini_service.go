// Package ai contiene el adaptador del servicio de sugerencias sobre la API
// REST de Google Gemini. Usa únicamente net/http de la librería estándar;
// no requiere el SDK oficial.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qmd-apps/inventario-ledger/internal/application/dto"
	"github.com/qmd-apps/inventario-ledger/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa SuggestionService.
var _ ports.SuggestionService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// responseMimeType=application/json obliga a Gemini a devolver JSON puro,
	// sin bloques de markdown que haya que limpiar.

	descriptionPrompt = `Eres un experto en marketing y redacción publicitaria.
Genera una descripción concisa y atractiva para un artículo de inventario.
La descripción debe ser breve (1-2 frases), destacar características o usos principales y ser adecuada para un catálogo.
Evita frases como "Este artículo es..." o "Se trata de...". Ve directo al grano.
Devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{"description": "<descripción generada>"}`

	categoryPrompt = `Eres un experto en organización de inventarios.
Dado el nombre y la descripción (si se proporciona) de un artículo, sugiere una categoría única y concisa, preferiblemente de una o dos palabras.
Ejemplos: "Electrónicos", "Herramientas", "Ropa".
Devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{"suggested_category": "<categoría sugerida>"}`

	pricePrompt = `Eres un experto en fijación de precios de mercado y comercio electrónico.
Basándote en el nombre del artículo, su descripción y su categoría (si se proporcionan), sugiere un precio de venta competitivo en USD.
Devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{"suggested_price": <número, p. ej. 29.99>, "reasoning": "<justificación breve>"}
Si no puedes determinar un precio razonable, omite suggested_price y explica el motivo en reasoning.`
)

// GeminiService adaptador que implementa SuggestionService llamando a la
// API REST de Google Gemini.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// Con apiKey vacío las llamadas devuelven un error descriptivo en lugar de
// fallar en el arranque.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el use case añade WithTimeout
		},
	}
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
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type descriptionPayload struct {
	Description string `json:"description"`
}

type categoryPayload struct {
	SuggestedCategory string `json:"suggested_category"`
}

type pricePayload struct {
	SuggestedPrice *float64 `json:"suggested_price"`
	Reasoning      string   `json:"reasoning"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// GenerateDescription redacta la descripción de catálogo del artículo.
func (s *GeminiService) GenerateDescription(ctx context.Context, itemName, itemCategory string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Nombre del artículo: %s", itemName)
	if itemCategory != "" {
		fmt.Fprintf(&sb, "\nCategoría: %s", itemCategory)
	}

	var out descriptionPayload
	if err := s.generate(ctx, descriptionPrompt, sb.String(), 0.7, &out); err != nil {
		return "", err
	}
	if out.Description == "" {
		return "", fmt.Errorf("AI: el modelo no generó descripción")
	}
	return out.Description, nil
}

// SuggestCategory propone una categoría concisa para el artículo.
func (s *GeminiService) SuggestCategory(ctx context.Context, itemName, itemDescription string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Nombre del artículo: %s", itemName)
	if itemDescription != "" {
		fmt.Fprintf(&sb, "\nDescripción: %s", itemDescription)
	}

	var out categoryPayload
	if err := s.generate(ctx, categoryPrompt, sb.String(), 0.4, &out); err != nil {
		return "", err
	}
	if out.SuggestedCategory == "" {
		return "", fmt.Errorf("AI: el modelo no sugirió categoría")
	}
	return out.SuggestedCategory, nil
}

// SuggestPrice estima un precio de venta. Temperatura baja para precios más
// deterministas. Un resultado sin precio es válido: el modelo declinó.
func (s *GeminiService) SuggestPrice(ctx context.Context, itemName, itemDescription, itemCategory string) (*dto.PriceSuggestionDTO, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Nombre del artículo: %s", itemName)
	if itemDescription != "" {
		fmt.Fprintf(&sb, "\nDescripción: %s", itemDescription)
	}
	if itemCategory != "" {
		fmt.Fprintf(&sb, "\nCategoría: %s", itemCategory)
	}

	var out pricePayload
	if err := s.generate(ctx, pricePrompt, sb.String(), 0.3, &out); err != nil {
		return nil, err
	}

	suggestion := &dto.PriceSuggestionDTO{Reasoning: out.Reasoning}
	if out.SuggestedPrice != nil {
		price := decimal.NewFromFloat(*out.SuggestedPrice)
		if price.IsNegative() {
			return nil, fmt.Errorf("AI: el modelo devolvió un precio negativo")
		}
		suggestion.SuggestedPrice = &price
	}
	return suggestion, nil
}

// generate hace la llamada a Gemini y deserializa el JSON del modelo en out.
func (s *GeminiService) generate(ctx context.Context, systemPrompt, userText string, temperature float32, out any) error {
	if s.apiKey == "" {
		return fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userText}}},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      temperature,
			MaxOutputTokens:  512,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if gemResp.Error != nil {
		return fmt.Errorf("AI: Gemini error %d: %s", gemResp.Error.Code, gemResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AI: Gemini HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	text := gemResp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("AI: el modelo no devolvió el JSON esperado: %w", err)
	}
	return nil
}
