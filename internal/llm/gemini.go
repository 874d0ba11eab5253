package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Provider defines the interface for interacting with a language model.
type Provider interface {
	GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error)
}

type geminiProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGeminiProvider returns a Provider for the Gemini generateContent API.
// The client has no timeout of its own; the caller's context bounds a call.
func NewGeminiProvider(baseURL, apiKey string) Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &geminiProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type Part struct {
	Text string `json:"text,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GoogleMaps enables the maps grounding tool. It has no options.
type GoogleMaps struct{}

type Tool struct {
	GoogleMaps *GoogleMaps `json:"googleMaps,omitempty"`
}

type GenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type GenerateContentRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	Tools             []Tool            `json:"tools,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content           *Content           `json:"content,omitempty"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

// GroundingChunk mirrors the API's citation object; at most one field is set.
type GroundingChunk struct {
	Web  *WebSource  `json:"web,omitempty"`
	Maps *MapsSource `json:"maps,omitempty"`
}

type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type MapsSource struct {
	URI                string              `json:"uri"`
	Title              string              `json:"title"`
	PlaceID            string              `json:"placeId,omitempty"`
	PlaceAnswerSources *PlaceAnswerSources `json:"placeAnswerSources,omitempty"`
}

type PlaceAnswerSources struct {
	ReviewSnippets []ReviewSnippet `json:"reviewSnippets,omitempty"`
}

type ReviewSnippet struct {
	ReviewText string `json:"reviewText,omitempty"`
}

// Text concatenates the text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// GroundingChunks returns the citations of the first candidate, if any.
func (r *GenerateContentResponse) GroundingChunks() []GroundingChunk {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	return r.Candidates[0].GroundingMetadata.GroundingChunks
}

func (p *geminiProvider) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return &out, nil
}
