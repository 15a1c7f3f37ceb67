package dream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	pkgerrors "dreamscape/pkg/errors"
)

const (
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
)

// GeminiExtractor asks a Gemini model for the proper nouns in a dream
// entry. Callers are expected to fall back to FallbackExtractor when a
// call fails; this type never retries.
type GeminiExtractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// GeminiOption customizes a GeminiExtractor.
type GeminiOption func(*GeminiExtractor)

// WithModel overrides the model name.
func WithModel(model string) GeminiOption {
	return func(g *GeminiExtractor) { g.model = model }
}

// WithEndpoint overrides the API base URL. Used by tests.
func WithEndpoint(endpoint string) GeminiOption {
	return func(g *GeminiExtractor) { g.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(g *GeminiExtractor) { g.client = client }
}

// NewGeminiExtractor creates an extractor backed by the generateContent
// endpoint.
func NewGeminiExtractor(apiKey string, opts ...GeminiOption) *GeminiExtractor {
	g := &GeminiExtractor{
		apiKey:   apiKey,
		model:    defaultGeminiModel,
		endpoint: defaultGeminiEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Extract implements Extractor.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Extract all proper nouns (people, places, objects, named things) "+
			"from the following dream entry. Return them as a comma-separated list.\n\nDream: %s",
		text,
	)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "encode extraction request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build extraction request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("gemini", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewExternalError("gemini",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.NewExternalError("gemini", err)
	}

	raw := ""
	if len(decoded.Candidates) > 0 {
		for _, part := range decoded.Candidates[0].Content.Parts {
			raw += part.Text
		}
	}

	return NormalizeEntities(splitEntityList(raw)), nil
}

// splitEntityList breaks a model response into candidate entities,
// splitting on newlines, commas, and semicolons.
func splitEntityList(raw string) []string {
	parts := []string{}
	for _, line := range strings.Split(raw, "\n") {
		for _, piece := range strings.Split(line, ",") {
			parts = append(parts, strings.Split(piece, ";")...)
		}
	}
	return parts
}
