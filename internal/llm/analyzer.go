package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kalustehaku/server/catalog/products"
	"golang.org/x/time/rate"
)

const openaiChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// ErrAnalysisRefused marks completions the model declined to produce, as
// opposed to transport or API failures. Callers fall back to default
// metadata on this error instead of failing the product.
var ErrAnalysisRefused = errors.New("model refused analysis")

// rate limiter for analysis calls (1 request/second, matches the
// throughput the OpenAI tier allows for vision-sized requests)
var analyzerRateLimiter = rate.NewLimiter(rate.Every(time.Second), 1)

const analyzerSystemPrompt = `Olet sisustussuunnittelija-asiantuntija, joka analysoi huonekaluja ja luo niistä tarkkaa metadataa.
Keskity kuvailemaan huonekalun tyyliä, materiaaleja, värejä ja käyttötarkoitusta ammattilaisen näkökulmasta.
Jos et pysty analysoimaan tuotetta kunnolla, palauta tyhjät listat ja yleisluontoiset kuvaukset.`

type AnalyzerConfig struct {
	APIKey      string
	Model       string // e.g., "gpt-4o"
	MaxTokens   int
	Temperature float32
}

// OpenAIAnalyzer asks a vision-capable chat model for structured furniture
// metadata. The response is bound to a strict JSON schema so the model
// cannot hand back free-form JSON.
type OpenAIAnalyzer struct {
	config     AnalyzerConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewOpenAIAnalyzer(config AnalyzerConfig) *OpenAIAnalyzer {
	if config.Model == "" {
		config.Model = "gpt-4o"
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = 1000
	}

	return &OpenAIAnalyzer{
		config:     config,
		httpClient: openaiHTTPClient,
		limiter:    analyzerRateLimiter,
	}
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens"`
	Temperature    float32       `json:"temperature"`
	ResponseFormat any           `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string  `json:"content"`
			Refusal *string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// metadataResponseFormat pins the completion to the furniture metadata schema
var metadataResponseFormat = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "furniture_metadata",
		"strict": true,
		"schema": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required": []string{
				"style", "materials", "category", "colors", "roomType",
				"functionalFeatures", "designStyle", "condition",
				"suitableFor", "visualDescription",
			},
			"properties": map[string]any{
				"style":              map[string]any{"type": "string", "description": "Vallitseva tyyli (esim. moderni, skandinaavinen, teollinen)"},
				"materials":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Päämateriaalit listana"},
				"category":           map[string]any{"type": "string", "description": "Tuotekategoria"},
				"colors":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Päävärit ja sävyt listana"},
				"roomType":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Sopivat huoneet/tilat listana"},
				"functionalFeatures": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Toiminnalliset ominaisuudet ja erityispiirteet"},
				"designStyle":        map[string]any{"type": "string", "description": "Suunnittelutyyli ja -aikakausi"},
				"condition":          map[string]any{"type": "string", "description": "Kunnon tarkempi analyysi"},
				"suitableFor":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Sopivat käyttötarkoitukset ja -tilanteet"},
				"visualDescription":  map[string]any{"type": "string", "description": "Yksityiskohtainen visuaalinen kuvaus huonekalusta"},
			},
		},
	},
}

// AnalyzeProduct derives structured metadata for a scraped listing.
// The product image is inlined base64 when it can be fetched; a missing
// image degrades to a text-only analysis rather than failing.
func (a *OpenAIAnalyzer) AnalyzeProduct(ctx context.Context, product products.ScrapedProduct) (products.Metadata, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return products.Metadata{}, fmt.Errorf("rate limiter error: %w", err)
	}

	description := "Ei kuvausta"
	if product.Description != nil && *product.Description != "" {
		description = *product.Description
	}

	userText := fmt.Sprintf(`Analysoi tämä huonekalu sisustussuunnittelijan näkökulmasta:

TUOTETIEDOT:
Nimi: %s
Kuvaus: %s
Kunto: %s
Kategoria: %s
Saatavuus: %s

Huomioi erityisesti:
- Tyyli ja design
- Materiaalit ja värit
- Käyttötarkoitukset ja soveltuvuus eri tiloihin
- Ergonomiset ominaisuudet
- Kunnon vaikutus käytettävyyteen
- Yhdisteltävyys muihin kalusteisiin`,
		product.Name, description, product.Condition, product.Category, product.Availability)

	userContent := []chatContentPart{{Type: "text", Text: userText}}

	if product.ImageURL != "" {
		if encoded, err := a.fetchImageAsBase64(ctx, product.ImageURL); err == nil {
			userContent = append(userContent, chatContentPart{
				Type:     "image_url",
				ImageURL: &chatImageURL{URL: "data:image/jpeg;base64," + encoded},
			})
		}
	}

	reqBody := chatRequest{
		Model: a.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: analyzerSystemPrompt},
			{Role: "user", Content: userContent},
		},
		MaxTokens:      a.config.MaxTokens,
		Temperature:    a.config.Temperature,
		ResponseFormat: metadataResponseFormat,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return products.Metadata{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openaiChatCompletionsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return products.Metadata{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.config.APIKey))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return products.Metadata{}, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return products.Metadata{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return products.Metadata{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return products.Metadata{}, fmt.Errorf("no completion choices returned")
	}

	choice := chatResp.Choices[0]

	if choice.Message.Refusal != nil && *choice.Message.Refusal != "" {
		return products.Metadata{}, fmt.Errorf("%w: %s", ErrAnalysisRefused, *choice.Message.Refusal)
	}

	if choice.FinishReason == "length" {
		return products.Metadata{}, fmt.Errorf("%w: token limit reached", ErrAnalysisRefused)
	}

	// validate against the metadata contract at the boundary
	var metadata products.Metadata
	if err := json.Unmarshal([]byte(choice.Message.Content), &metadata); err != nil {
		return products.Metadata{}, fmt.Errorf("invalid metadata payload: %w", err)
	}

	return metadata, nil
}

// fetchImageAsBase64 downloads a product image for vision analysis
func (a *OpenAIAnalyzer) fetchImageAsBase64(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image request failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
